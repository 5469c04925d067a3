package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/schema"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/testutil"
)

func TestSeedDefaultCatalogIsIdempotent(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()

	n, err := SeedDefaultCatalog(db)
	if err != nil {
		t.Fatalf("SeedDefaultCatalog error: %v", err)
	}
	if n != int64(len(DefaultCatalog())) {
		t.Fatalf("seeded=%d, want %d", n, len(DefaultCatalog()))
	}
	n, err = SeedDefaultCatalog(db)
	if err != nil || n != 0 {
		t.Fatalf("second seed n=%d err=%v, want 0 nil", n, err)
	}

	items, err := NewAchievementRepository(db).ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(items) != len(DefaultCatalog()) {
		t.Fatalf("catalog=%d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].ID >= items[i].ID {
			t.Fatalf("catalog not in id order: %+v", items)
		}
	}
	if items[0].Requirement.Type != schema.RequirementDiaryEntries || items[0].Requirement.Value != 1 {
		t.Fatalf("requirement=%+v", items[0].Requirement)
	}
}

func TestAchievementRepositoryUpsertByName(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewAchievementRepository(db)
	ctx := context.Background()

	a := &schema.Achievement{Name: "Maratona", Requirement: schema.Requirement{Type: schema.RequirementTotalDays, Value: 10}}
	if err := repo.Upsert(ctx, a); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	b := &schema.Achievement{Name: "Maratona", Description: "nova", Requirement: schema.Requirement{Type: schema.RequirementTotalDays, Value: 12}}
	if err := repo.Upsert(ctx, b); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}

	items, _ := repo.ListAll(ctx)
	if len(items) != 1 || items[0].Requirement.Value != 12 || items[0].Description != "nova" {
		t.Fatalf("items=%+v", items)
	}
}

func TestLedgerRepositoryGrantOnce(t *testing.T) {
	db := testutil.OpenTestDB(t)
	if _, err := SeedDefaultCatalog(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	repo := NewLedgerRepository(db)
	ctx := context.Background()

	exists, err := repo.Exists(ctx, 3, 1)
	if err != nil || exists {
		t.Fatalf("Exists=%v err=%v, want false", exists, err)
	}

	row, err := repo.Grant(ctx, 3, 1, time.Time{})
	if err != nil {
		t.Fatalf("Grant error: %v", err)
	}
	if row.ID == 0 || row.UnlockedAt.IsZero() {
		t.Fatalf("row=%+v", row)
	}

	if _, err := repo.Grant(ctx, 3, 1, time.Now()); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second Grant err=%v, want ErrDuplicate", err)
	}

	exists, _ = repo.Exists(ctx, 3, 1)
	if !exists {
		t.Fatalf("expected ledger row")
	}
}

func TestLedgerRepositoryListByUserNewestFirst(t *testing.T) {
	db := testutil.OpenTestDB(t)
	if _, err := SeedDefaultCatalog(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	repo := NewLedgerRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	if _, err := repo.Grant(ctx, 9, 1, base); err != nil {
		t.Fatalf("Grant error: %v", err)
	}
	if _, err := repo.Grant(ctx, 9, 2, base.Add(time.Hour)); err != nil {
		t.Fatalf("Grant error: %v", err)
	}
	if _, err := repo.Grant(ctx, 10, 3, base); err != nil {
		t.Fatalf("Grant error: %v", err)
	}

	rows, err := repo.ListByUser(ctx, 9)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows=%d, want 2", len(rows))
	}
	if rows[0].AchievementID != 2 || rows[1].AchievementID != 1 {
		t.Fatalf("order=%d,%d, want 2,1", rows[0].AchievementID, rows[1].AchievementID)
	}
	if rows[0].Achievement == nil || rows[0].Achievement.Name == "" {
		t.Fatalf("achievement not preloaded: %+v", rows[0])
	}
}
