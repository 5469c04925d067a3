package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/schema"
	"gorm.io/gorm"
)

// DiaryRepository stores diary entries.
type DiaryRepository struct {
	db *gorm.DB
}

// NewDiaryRepository creates the repository.
func NewDiaryRepository(db *gorm.DB) *DiaryRepository {
	return &DiaryRepository{db: db}
}

// FindByUserAndDate returns nil, nil when the user has no entry that day.
func (r *DiaryRepository) FindByUserAndDate(ctx context.Context, userID int64, date string) (*schema.DiaryEntry, error) {
	var entry schema.DiaryEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query diary entry: %w", err)
	}
	return &entry, nil
}

// GetByID returns nil, nil when absent.
func (r *DiaryRepository) GetByID(ctx context.Context, id int64) (*schema.DiaryEntry, error) {
	var entry schema.DiaryEntry
	err := r.db.WithContext(ctx).First(&entry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query diary entry: %w", err)
	}
	return &entry, nil
}

// Create inserts a new entry. A (user_id, date) collision yields ErrDuplicate.
func (r *DiaryRepository) Create(ctx context.Context, entry *schema.DiaryEntry) error {
	if entry.Activities == nil {
		entry.Activities = schema.JSONArray{}
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create diary entry: %w", err)
	}
	return nil
}

// UpdateContent overwrites the mutable fields of an entry in place.
func (r *DiaryRepository) UpdateContent(ctx context.Context, entry *schema.DiaryEntry) error {
	return r.updateFields(ctx, entry, contentFields(entry))
}

// Update overwrites the date and content of entry.ID. Moving the entry onto
// a date the user already has yields ErrDuplicate.
func (r *DiaryRepository) Update(ctx context.Context, entry *schema.DiaryEntry) error {
	fields := contentFields(entry)
	fields["date"] = entry.Date
	return r.updateFields(ctx, entry, fields)
}

func contentFields(entry *schema.DiaryEntry) map[string]any {
	activities := entry.Activities
	if activities == nil {
		activities = schema.JSONArray{}
	}
	return map[string]any{
		"time_online": entry.TimeOnline,
		"mood":        entry.Mood,
		"triggers":    entry.Triggers,
		"activities":  activities,
	}
}

func (r *DiaryRepository) updateFields(ctx context.Context, entry *schema.DiaryEntry, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&schema.DiaryEntry{}).
		Where("id = ?", entry.ID).
		Updates(fields)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return ErrDuplicate
		}
		return fmt.Errorf("update diary entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update diary entry %d: %w", entry.ID, gorm.ErrRecordNotFound)
	}
	if err := r.db.WithContext(ctx).First(entry, entry.ID).Error; err != nil {
		return fmt.Errorf("reload diary entry: %w", err)
	}
	return nil
}

// CountByUser counts every entry of a user.
func (r *DiaryRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&schema.DiaryEntry{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count diary entries: %w", err)
	}
	return count, nil
}

// ListRecentByUser returns entries newest date first. limit <= 0 means all.
func (r *DiaryRepository) ListRecentByUser(ctx context.Context, userID int64, limit int) ([]schema.DiaryEntry, error) {
	var entries []schema.DiaryEntry
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list diary entries: %w", err)
	}
	return entries, nil
}

// Delete removes an entry. It reports false when nothing matched.
func (r *DiaryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&schema.DiaryEntry{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete diary entry: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
