package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepository is the append-only record of unlocked achievements.
type LedgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates the repository.
func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Exists reports whether the user already holds the achievement.
func (r *LedgerRepository) Exists(ctx context.Context, userID, achievementID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&schema.UnlockedAchievement{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("query ledger: %w", err)
	}
	return count > 0, nil
}

// Grant records an unlock. If the pair is already present (a concurrent
// run got there first) it returns ErrDuplicate and writes nothing.
func (r *LedgerRepository) Grant(ctx context.Context, userID, achievementID int64, at time.Time) (*schema.UnlockedAchievement, error) {
	if at.IsZero() {
		at = time.Now()
	}
	row := &schema.UnlockedAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		UnlockedAt:    at,
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("grant achievement: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrDuplicate
	}
	return row, nil
}

// ListByUser returns the user's unlocks with their definitions, newest first.
func (r *LedgerRepository) ListByUser(ctx context.Context, userID int64) ([]schema.UnlockedAchievement, error) {
	var rows []schema.UnlockedAchievement
	err := r.db.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ?", userID).
		Order("unlocked_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list unlocked achievements: %w", err)
	}
	return rows, nil
}
