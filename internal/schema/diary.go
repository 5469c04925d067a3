package schema

import "time"

// DateLayout is the storage form of calendar dates.
const DateLayout = "2006-01-02"

// Mood is the closed set of moods a diary entry may carry.
type Mood string

const (
	MoodHappy    Mood = "Feliz"
	MoodNeutral  Mood = "Neutro"
	MoodSad      Mood = "Triste"
	MoodAnxious  Mood = "Ansioso"
	MoodStressed Mood = "Estressado"
)

// Moods returns the accepted moods in display order.
func Moods() []Mood {
	return []Mood{MoodHappy, MoodNeutral, MoodSad, MoodAnxious, MoodStressed}
}

// Valid reports whether m is one of the accepted moods. Matching is exact.
func (m Mood) Valid() bool {
	for _, v := range Moods() {
		if m == v {
			return true
		}
	}
	return false
}

// DiaryEntry is one user's record for one calendar day.
// (user_id, date) is unique.
type DiaryEntry struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	UserID     int64     `gorm:"not null;index;uniqueIndex:unique_user_date,priority:1" json:"user_id"`
	Date       string    `gorm:"size:10;not null;index;uniqueIndex:unique_user_date,priority:2" json:"date"`
	TimeOnline int       `gorm:"not null" json:"time_online"` // hours, 0..24
	Mood       Mood      `gorm:"size:20;not null" json:"mood"`
	Triggers   string    `gorm:"type:text" json:"triggers"`
	Activities JSONArray `gorm:"type:text" json:"activities"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DiaryEntry) TableName() string {
	return "diary_entries"
}
