package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/schema"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/testutil"
	"gorm.io/gorm"
)

func TestDiaryRepositoryCreateAndFind(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewDiaryRepository(db)
	ctx := context.Background()

	entry := &schema.DiaryEntry{UserID: 7, Date: "2025-03-01", TimeOnline: 4, Mood: schema.MoodHappy,
		Activities: schema.JSONArray{"leitura", "caminhada"}}
	if err := repo.Create(ctx, entry); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if entry.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}

	got, err := repo.FindByUserAndDate(ctx, 7, "2025-03-01")
	if err != nil {
		t.Fatalf("FindByUserAndDate error: %v", err)
	}
	if got == nil || got.TimeOnline != 4 || len(got.Activities) != 2 || got.Activities[1] != "caminhada" {
		t.Fatalf("got=%+v", got)
	}

	missing, err := repo.FindByUserAndDate(ctx, 7, "2025-03-02")
	if err != nil || missing != nil {
		t.Fatalf("missing=%+v err=%v, want nil nil", missing, err)
	}
}

func TestDiaryRepositoryCreateDuplicateDate(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewDiaryRepository(db)
	ctx := context.Background()

	first := &schema.DiaryEntry{UserID: 1, Date: "2025-03-01", TimeOnline: 2, Mood: schema.MoodNeutral}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	second := &schema.DiaryEntry{UserID: 1, Date: "2025-03-01", TimeOnline: 3, Mood: schema.MoodSad}
	if err := repo.Create(ctx, second); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err=%v, want ErrDuplicate", err)
	}

	// another user on the same day is fine
	other := &schema.DiaryEntry{UserID: 2, Date: "2025-03-01", TimeOnline: 3, Mood: schema.MoodSad}
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create other user error: %v", err)
	}
}

func TestDiaryRepositoryUpdateContentInPlace(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewDiaryRepository(db)
	ctx := context.Background()

	entry := &schema.DiaryEntry{UserID: 1, Date: "2025-03-01", TimeOnline: 2, Mood: schema.MoodNeutral, Triggers: "tédio"}
	if err := repo.Create(ctx, entry); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	id := entry.ID

	entry.TimeOnline = 6
	entry.Mood = schema.MoodAnxious
	entry.Triggers = ""
	entry.Activities = schema.JSONArray{"yoga"}
	if err := repo.UpdateContent(ctx, entry); err != nil {
		t.Fatalf("UpdateContent error: %v", err)
	}

	got, _ := repo.GetByID(ctx, id)
	if got == nil || got.ID != id || got.TimeOnline != 6 || got.Mood != schema.MoodAnxious || got.Triggers != "" {
		t.Fatalf("got=%+v", got)
	}
	if len(got.Activities) != 1 || got.Activities[0] != "yoga" {
		t.Fatalf("activities=%v", got.Activities)
	}

	count, _ := repo.CountByUser(ctx, 1)
	if count != 1 {
		t.Fatalf("count=%d, want 1", count)
	}
}

func TestDiaryRepositoryListRecentByUser(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewDiaryRepository(db)
	ctx := context.Background()

	for _, d := range []string{"2025-03-02", "2025-03-04", "2025-03-01", "2025-03-03"} {
		e := &schema.DiaryEntry{UserID: 5, Date: d, TimeOnline: 1, Mood: schema.MoodHappy}
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	got, err := repo.ListRecentByUser(ctx, 5, 3)
	if err != nil {
		t.Fatalf("ListRecentByUser error: %v", err)
	}
	want := []string{"2025-03-04", "2025-03-03", "2025-03-02"}
	if len(got) != len(want) {
		t.Fatalf("len=%d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Date != want[i] {
			t.Fatalf("got[%d]=%s, want %s", i, got[i].Date, want[i])
		}
	}

	all, _ := repo.ListRecentByUser(ctx, 5, 0)
	if len(all) != 4 {
		t.Fatalf("all=%d, want 4", len(all))
	}
}

func TestDiaryRepositoryDelete(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewDiaryRepository(db)
	ctx := context.Background()

	e := &schema.DiaryEntry{UserID: 1, Date: "2025-03-01", TimeOnline: 1, Mood: schema.MoodHappy}
	_ = repo.Create(ctx, e)

	ok, err := repo.Delete(ctx, e.ID)
	if err != nil || !ok {
		t.Fatalf("Delete ok=%v err=%v", ok, err)
	}
	ok, err = repo.Delete(ctx, e.ID)
	if err != nil || ok {
		t.Fatalf("second Delete ok=%v err=%v, want false nil", ok, err)
	}
}

func TestDiaryRepositoryUpdateMovesDate(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewDiaryRepository(db)
	ctx := context.Background()

	a := &schema.DiaryEntry{UserID: 1, Date: "2025-03-01", TimeOnline: 2, Mood: schema.MoodNeutral}
	b := &schema.DiaryEntry{UserID: 1, Date: "2025-03-02", TimeOnline: 3, Mood: schema.MoodSad}
	for _, e := range []*schema.DiaryEntry{a, b} {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	moved := &schema.DiaryEntry{ID: a.ID, UserID: 1, Date: "2025-03-05", TimeOnline: 5, Mood: schema.MoodHappy}
	if err := repo.Update(ctx, moved); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if moved.Date != "2025-03-05" || moved.TimeOnline != 5 || moved.CreatedAt.IsZero() {
		t.Fatalf("moved=%+v", moved)
	}
	if old, _ := repo.FindByUserAndDate(ctx, 1, "2025-03-01"); old != nil {
		t.Fatalf("old date still present: %+v", old)
	}

	clash := &schema.DiaryEntry{ID: a.ID, UserID: 1, Date: "2025-03-02", TimeOnline: 1, Mood: schema.MoodHappy}
	if err := repo.Update(ctx, clash); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err=%v, want ErrDuplicate", err)
	}

	ghost := &schema.DiaryEntry{ID: 9999, UserID: 1, Date: "2025-04-01", TimeOnline: 1, Mood: schema.MoodHappy}
	if err := repo.Update(ctx, ghost); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err=%v, want ErrRecordNotFound", err)
	}
}
