package repository

import (
	"context"
	"testing"
	"time"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/schema"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/testutil"
)

func TestGoalRepositorySaveProgressAndCount(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()

	g := &schema.Goal{UserID: 4, Title: "Menos tela", TargetValue: 10, StartDate: "2025-03-01", Frequency: "weekly"}
	if err := repo.Create(ctx, g); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	other := &schema.Goal{UserID: 4, Title: "Ler", TargetValue: 3, StartDate: "2025-03-01"}
	_ = repo.Create(ctx, other)

	now := time.Now()
	g.CurrentValue = 10
	g.IsCompleted = true
	g.CompletedAt = &now
	if err := repo.SaveProgress(ctx, g); err != nil {
		t.Fatalf("SaveProgress error: %v", err)
	}

	got, err := repo.GetByID(ctx, g.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID got=%v err=%v", got, err)
	}
	if got.CurrentValue != 10 || !got.IsCompleted || got.CompletedAt == nil {
		t.Fatalf("got=%+v", got)
	}

	count, err := repo.CountCompletedByUser(ctx, 4)
	if err != nil || count != 1 {
		t.Fatalf("count=%d err=%v, want 1", count, err)
	}

	goals, _ := repo.ListByUser(ctx, 4)
	if len(goals) != 2 {
		t.Fatalf("goals=%d, want 2", len(goals))
	}

	missing, err := repo.GetByID(ctx, 999)
	if err != nil || missing != nil {
		t.Fatalf("missing=%v err=%v", missing, err)
	}
}
