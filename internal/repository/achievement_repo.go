package repository

import (
	"context"
	"fmt"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AchievementRepository reads the achievement catalog.
type AchievementRepository struct {
	db *gorm.DB
}

// NewAchievementRepository creates the repository.
func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// ListAll returns the catalog in id order.
func (r *AchievementRepository) ListAll(ctx context.Context) ([]schema.Achievement, error) {
	var items []schema.Achievement
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	return items, nil
}

// Upsert inserts a definition or refreshes the one with the same name.
func (r *AchievementRepository) Upsert(ctx context.Context, a *schema.Achievement) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "requirement", "updated_at"}),
	}).Create(a).Error
	if err != nil {
		return fmt.Errorf("upsert achievement: %w", err)
	}
	return nil
}

// DefaultCatalog is the catalog installed on a fresh database.
func DefaultCatalog() []schema.Achievement {
	return []schema.Achievement{
		{Name: "Primeiro Registro", Description: "Registrou a primeira entrada no diário.",
			Requirement: schema.Requirement{Type: schema.RequirementDiaryEntries, Value: 1}},
		{Name: "Cinco Dias", Description: "Registrou o diário em 5 dias.",
			Requirement: schema.Requirement{Type: schema.RequirementTotalDays, Value: 5}},
		{Name: "Uma Semana Seguida", Description: "Manteve o diário por 7 dias.",
			Requirement: schema.Requirement{Type: schema.RequirementConsecutiveDays, Value: 7}},
		{Name: "Diário de Ouro", Description: "Registrou 30 entradas no diário.",
			Requirement: schema.Requirement{Type: schema.RequirementDiaryEntries, Value: 30}},
		{Name: "Meta Cumprida", Description: "Concluiu a primeira meta.",
			Requirement: schema.Requirement{Type: schema.RequirementWeeklyGoals, Value: 1}},
	}
}

// SeedDefaultCatalog inserts missing default achievements and leaves
// existing ones untouched. It returns how many rows were added.
func SeedDefaultCatalog(db *gorm.DB) (int64, error) {
	items := DefaultCatalog()
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&items)
	if res.Error != nil {
		return 0, fmt.Errorf("seed achievements: %w", res.Error)
	}
	return res.RowsAffected, nil
}
