package schema

import "time"

// Requirement types understood by the evaluator.
const (
	RequirementDiaryEntries    = "diary_entries"
	RequirementTotalDays       = "total_days"
	RequirementConsecutiveDays = "consecutive_days"
	RequirementWeeklyGoals     = "weekly_goals"
)

// Requirement is the unlock predicate of an achievement, stored as JSON
// text ({"type":..,"value":..}).
type Requirement struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

// Achievement is a catalog entry. The evaluator only reads it.
type Achievement struct {
	ID          int64       `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Requirement Requirement `gorm:"type:text;not null;serializer:json" json:"requirement"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// UnlockedAchievement is an append-only ledger row: a user holds an
// achievement at most once.
type UnlockedAchievement struct {
	ID            int64        `gorm:"primaryKey" json:"id"`
	UserID        int64        `gorm:"not null;index;uniqueIndex:unique_user_achievement,priority:1" json:"user_id"`
	AchievementID int64        `gorm:"not null;uniqueIndex:unique_user_achievement,priority:2" json:"achievement_id"`
	UnlockedAt    time.Time    `gorm:"not null;index" json:"unlocked_at"`
	Achievement   *Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
	CreatedAt     time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UnlockedAchievement) TableName() string {
	return "user_achievements"
}
