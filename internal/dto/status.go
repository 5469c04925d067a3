package dto

type HealthDTO struct {
	Success       bool             `json:"success"`
	Name          string           `json:"name"`
	Version       string           `json:"version"`
	Build         string           `json:"build"`
	Commit        string           `json:"commit"`
	Environment   string           `json:"environment"`
	SchemaVersion int              `json:"schema_version"`
	StartedAt     string           `json:"started_at"`
	UptimeSec     int64            `json:"uptime_sec"`
	Storage       StorageStatusDTO `json:"storage"`
}

type StorageStatusDTO struct {
	Driver         string `json:"driver"`
	Reachable      bool   `json:"reachable"`
	SchemaVersion  int    `json:"schema_version"`
	SafeMode       bool   `json:"safe_mode"`
	SafeModeReason string `json:"safe_mode_reason,omitempty"`
}

// StatusDTO is the operator view served at /api/status.
type StatusDTO struct {
	Health       HealthDTO            `json:"health"`
	Storage      PoolStatusDTO        `json:"pool"`
	Achievements AchievementStatusDTO `json:"achievements"`
	Events       EventStatusDTO       `json:"events"`
}

type PoolStatusDTO struct {
	MaxOpen int `json:"max_open"`
	Open    int `json:"open"`
	InUse   int `json:"in_use"`
	Idle    int `json:"idle"`
}

type AchievementStatusDTO struct {
	CatalogSize       int    `json:"catalog_size"`
	StreakMode        string `json:"streak_mode"`
	ConsecutiveMargin int    `json:"consecutive_margin"`
}

type EventStatusDTO struct {
	Subscribers int `json:"subscribers"`
}
