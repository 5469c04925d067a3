package dto

// This package holds the external HTTP contract. Keep persistence details
// out of it: storage models live in internal/schema, business rules in
// internal/service.

// Envelope wraps every JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Created bool   `json:"created,omitempty"`
	Updated bool   `json:"updated,omitempty"`

	UnlockedAchievements any `json:"unlocked_achievements,omitempty"`

	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
}

// DiaryEntryRequest is the diary submission body. UserID and TimeOnline
// accept a JSON number or a numeric string.
type DiaryEntryRequest struct {
	UserID     any      `json:"user_id"`
	Date       string   `json:"date"`
	TimeOnline any      `json:"time_online"`
	Mood       string   `json:"mood"`
	Triggers   string   `json:"triggers"`
	Activities []string `json:"activities"`
}

type DiaryEntryDTO struct {
	ID         int64    `json:"id"`
	UserID     int64    `json:"user_id"`
	Date       string   `json:"date"`
	TimeOnline int      `json:"time_online"`
	Mood       string   `json:"mood"`
	Triggers   string   `json:"triggers"`
	Activities []string `json:"activities"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

type DiaryStatsDTO struct {
	TotalEntries     int             `json:"total_entries"`
	AvgTimeOnline    float64         `json:"avg_time_online"`
	MoodDistribution map[string]int  `json:"mood_distribution"`
	RecentEntries    []DiaryEntryDTO `json:"recent_entries"`
}

type RequirementDTO struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

type AchievementDTO struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Requirement RequirementDTO `json:"requirement"`
}

type UnlockedAchievementDTO struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	AchievementID int64           `json:"achievement_id"`
	UnlockedAt    string          `json:"unlocked_at"`
	Achievement   *AchievementDTO `json:"achievement,omitempty"`
}

// CheckAchievementsRequest optionally names the user when no principal
// header is present.
type CheckAchievementsRequest struct {
	UserID any `json:"user_id"`
}

type GoalRequest struct {
	UserID      any    `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TargetValue int    `json:"target_value"`
	Frequency   string `json:"frequency"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type GoalProgressRequest struct {
	CurrentValue *int `json:"current_value"`
}

type GoalDTO struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	TargetValue  int    `json:"target_value"`
	CurrentValue int    `json:"current_value"`
	Frequency    string `json:"frequency,omitempty"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date,omitempty"`
	IsCompleted  bool   `json:"is_completed"`
	CompletedAt  string `json:"completed_at,omitempty"`
}
