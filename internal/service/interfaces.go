package service

import (
	"context"
	"time"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/eventbus"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/schema"
)

// Minimal repository interfaces consumed by the services.

type DiaryRepository interface {
	FindByUserAndDate(ctx context.Context, userID int64, date string) (*schema.DiaryEntry, error)
	GetByID(ctx context.Context, id int64) (*schema.DiaryEntry, error)
	Create(ctx context.Context, entry *schema.DiaryEntry) error
	UpdateContent(ctx context.Context, entry *schema.DiaryEntry) error
	Update(ctx context.Context, entry *schema.DiaryEntry) error
	CountByUser(ctx context.Context, userID int64) (int64, error)
	ListRecentByUser(ctx context.Context, userID int64, limit int) ([]schema.DiaryEntry, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type GoalRepository interface {
	GetByID(ctx context.Context, id int64) (*schema.Goal, error)
	Create(ctx context.Context, goal *schema.Goal) error
	SaveProgress(ctx context.Context, goal *schema.Goal) error
	ListByUser(ctx context.Context, userID int64) ([]schema.Goal, error)
	CountCompletedByUser(ctx context.Context, userID int64) (int64, error)
}

type AchievementCatalog interface {
	ListAll(ctx context.Context) ([]schema.Achievement, error)
}

type LedgerRepository interface {
	Exists(ctx context.Context, userID, achievementID int64) (bool, error)
	Grant(ctx context.Context, userID, achievementID int64, at time.Time) (*schema.UnlockedAchievement, error)
	ListByUser(ctx context.Context, userID int64) ([]schema.UnlockedAchievement, error)
}

// Evaluator runs achievement evaluation for one user. Failures are
// absorbed: the result is the list of newly unlocked achievements, maybe empty.
type Evaluator interface {
	Evaluate(ctx context.Context, userID int64) []schema.Achievement
}

// Publisher receives domain events. *eventbus.Hub satisfies it.
type Publisher interface {
	Publish(evt eventbus.Event)
}
