package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/eventbus"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/repository"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/schema"
)

// AchievementService evaluates the catalog against a user's history and
// records new unlocks in the ledger.
type AchievementService struct {
	catalog AchievementCatalog
	ledger  LedgerRepository
	diary   DiaryRepository
	goals   GoalRepository
	streak  StreakPolicy
	pub     Publisher
	now     func() time.Time
}

// NewAchievementService creates the service. streak defaults to
// CountStreakPolicy with the default margin; pub may be nil.
func NewAchievementService(
	catalog AchievementCatalog,
	ledger LedgerRepository,
	diary DiaryRepository,
	goals GoalRepository,
	streak StreakPolicy,
	pub Publisher,
) *AchievementService {
	if streak == nil {
		streak = CountStreakPolicy{Margin: DefaultStreakMargin}
	}
	return &AchievementService{
		catalog: catalog,
		ledger:  ledger,
		diary:   diary,
		goals:   goals,
		streak:  streak,
		pub:     pub,
		now:     time.Now,
	}
}

// Evaluate returns the achievements unlocked by this run, in catalog order.
// Any storage failure aborts the run: it is logged and the result is empty.
func (s *AchievementService) Evaluate(ctx context.Context, userID int64) []schema.Achievement {
	unlocked, err := s.evaluate(ctx, userID)
	if err != nil {
		slog.Error("achievement evaluation failed", "user_id", userID, "error", err)
		return []schema.Achievement{}
	}
	return unlocked
}

// userFacts caches per-run lookups so each is read at most once.
type userFacts struct {
	s      *AchievementService
	userID int64

	entryCount     *int64
	completedGoals *int64
	recent         map[int][]schema.DiaryEntry
}

func (f *userFacts) entries(ctx context.Context) (int64, error) {
	if f.entryCount == nil {
		n, err := f.s.diary.CountByUser(ctx, f.userID)
		if err != nil {
			return 0, err
		}
		f.entryCount = &n
	}
	return *f.entryCount, nil
}

func (f *userFacts) goalsDone(ctx context.Context) (int64, error) {
	if f.completedGoals == nil {
		n, err := f.s.goals.CountCompletedByUser(ctx, f.userID)
		if err != nil {
			return 0, err
		}
		f.completedGoals = &n
	}
	return *f.completedGoals, nil
}

func (f *userFacts) recentEntries(ctx context.Context, window int) ([]schema.DiaryEntry, error) {
	if got, ok := f.recent[window]; ok {
		return got, nil
	}
	got, err := f.s.diary.ListRecentByUser(ctx, f.userID, window)
	if err != nil {
		return nil, err
	}
	if f.recent == nil {
		f.recent = make(map[int][]schema.DiaryEntry)
	}
	f.recent[window] = got
	return got, nil
}

func (s *AchievementService) evaluate(ctx context.Context, userID int64) ([]schema.Achievement, error) {
	catalog, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	facts := &userFacts{s: s, userID: userID}
	unlocked := make([]schema.Achievement, 0)

	for _, a := range catalog {
		held, err := s.ledger.Exists(ctx, userID, a.ID)
		if err != nil {
			return nil, fmt.Errorf("check ledger for achievement %d: %w", a.ID, err)
		}
		if held {
			continue
		}

		ok, err := s.satisfied(ctx, facts, a.Requirement)
		if err != nil {
			return nil, fmt.Errorf("check requirement of achievement %d: %w", a.ID, err)
		}
		if !ok {
			continue
		}

		if _, err := s.ledger.Grant(ctx, userID, a.ID, s.now()); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				// granted by a concurrent run
				continue
			}
			return nil, fmt.Errorf("grant achievement %d: %w", a.ID, err)
		}
		unlocked = append(unlocked, a)
		s.publishUnlock(userID, a)
	}

	if len(unlocked) > 0 {
		slog.Info("achievements unlocked", "user_id", userID, "count", len(unlocked))
	}
	return unlocked, nil
}

func (s *AchievementService) satisfied(ctx context.Context, f *userFacts, req schema.Requirement) (bool, error) {
	switch req.Type {
	case schema.RequirementDiaryEntries, schema.RequirementTotalDays:
		n, err := f.entries(ctx)
		if err != nil {
			return false, err
		}
		return n >= int64(req.Value), nil
	case schema.RequirementConsecutiveDays:
		recent, err := f.recentEntries(ctx, s.streak.Window(req.Value))
		if err != nil {
			return false, err
		}
		return s.streak.Satisfied(recent, req.Value), nil
	case schema.RequirementWeeklyGoals:
		n, err := f.goalsDone(ctx)
		if err != nil {
			return false, err
		}
		return n >= int64(req.Value), nil
	default:
		return false, nil
	}
}

func (s *AchievementService) publishUnlock(userID int64, a schema.Achievement) {
	if s.pub == nil {
		return
	}
	s.pub.Publish(eventbus.Event{
		Type: eventbus.TypeAchievementUnlocked,
		Data: map[string]any{
			"user_id":        userID,
			"achievement_id": a.ID,
			"name":           a.Name,
		},
	})
}

// ListUnlocked returns the user's ledger rows with definitions, newest first.
func (s *AchievementService) ListUnlocked(ctx context.Context, userID int64) ([]schema.UnlockedAchievement, error) {
	if userID <= 0 {
		return nil, newValidationError("user_id", "must be a positive integer")
	}
	rows, err := s.ledger.ListByUser(ctx, userID)
	if err != nil {
		return nil, persistence("list unlocked achievements", err)
	}
	if rows == nil {
		rows = []schema.UnlockedAchievement{}
	}
	return rows, nil
}

// Catalog returns every achievement definition.
func (s *AchievementService) Catalog(ctx context.Context) ([]schema.Achievement, error) {
	items, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, persistence("list achievements", err)
	}
	if items == nil {
		items = []schema.Achievement{}
	}
	return items, nil
}
