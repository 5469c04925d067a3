package schema

import "time"

// SchemaMeta records the schema version so upgrades are gated instead of
// relying on AutoMigrate alone. The table holds a single row (ID=1).
type SchemaMeta struct {
	ID            int       `gorm:"primaryKey"`
	SchemaVersion int       `gorm:"not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (SchemaMeta) TableName() string {
	return "schema_meta"
}

// All lists every model managed by migrations, schema_meta excluded.
func All() []any {
	return []any{
		&DiaryEntry{},
		&Goal{},
		&Achievement{},
		&UnlockedAchievement{},
	}
}
