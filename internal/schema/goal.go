package schema

import "time"

// Goal is a numeric target tracked by a user.
type Goal struct {
	ID           int64      `gorm:"primaryKey" json:"id"`
	UserID       int64      `gorm:"not null;index" json:"user_id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	TargetValue  int        `gorm:"not null" json:"target_value"`
	CurrentValue int        `gorm:"not null;default:0" json:"current_value"`
	Frequency    string     `gorm:"size:20" json:"frequency"`
	StartDate    string     `gorm:"size:10;not null" json:"start_date"`
	EndDate      string     `gorm:"size:10" json:"end_date,omitempty"`
	IsCompleted  bool       `gorm:"not null;default:false;index" json:"is_completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Goal) TableName() string {
	return "goals"
}
