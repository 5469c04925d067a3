package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/schema"
	"gorm.io/gorm"
)

// GoalRepository stores goals.
type GoalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates the repository.
func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// GetByID returns nil, nil when absent.
func (r *GoalRepository) GetByID(ctx context.Context, id int64) (*schema.Goal, error) {
	var goal schema.Goal
	err := r.db.WithContext(ctx).First(&goal, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query goal: %w", err)
	}
	return &goal, nil
}

func (r *GoalRepository) Create(ctx context.Context, goal *schema.Goal) error {
	if err := r.db.WithContext(ctx).Create(goal).Error; err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	return nil
}

// SaveProgress persists current_value, is_completed and completed_at.
func (r *GoalRepository) SaveProgress(ctx context.Context, goal *schema.Goal) error {
	res := r.db.WithContext(ctx).
		Model(&schema.Goal{}).
		Where("id = ?", goal.ID).
		Updates(map[string]any{
			"current_value": goal.CurrentValue,
			"is_completed":  goal.IsCompleted,
			"completed_at":  goal.CompletedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("update goal progress: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update goal %d: %w", goal.ID, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *GoalRepository) ListByUser(ctx context.Context, userID int64) ([]schema.Goal, error) {
	var goals []schema.Goal
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&goals).Error
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

// CountCompletedByUser counts goals that reached their target.
func (r *GoalRepository) CountCompletedByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&schema.Goal{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count completed goals: %w", err)
	}
	return count, nil
}
