package service

import (
	"strings"
	"time"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/schema"
)

// StreakPolicy decides consecutive_days requirements (replaceable).
type StreakPolicy interface {
	// Window is how many of the most recent entries to fetch for a
	// requirement of the given length.
	Window(required int) int
	// Satisfied inspects those entries, newest date first.
	Satisfied(recent []schema.DiaryEntry, required int) bool
}

// DefaultStreakMargin is the extra entries fetched beyond the requirement.
const DefaultStreakMargin = 3

// CountStreakPolicy is satisfied when the window holds at least `required`
// entries. Dates are not checked for gaps.
type CountStreakPolicy struct {
	Margin int
}

func (p CountStreakPolicy) Window(required int) int {
	m := p.Margin
	if m < 0 {
		m = 0
	}
	return required + m
}

func (p CountStreakPolicy) Satisfied(recent []schema.DiaryEntry, required int) bool {
	return len(recent) >= required
}

// CalendarStreakPolicy requires `required` consecutive calendar days ending
// at the newest entry.
type CalendarStreakPolicy struct{}

func (CalendarStreakPolicy) Window(required int) int { return required }

func (CalendarStreakPolicy) Satisfied(recent []schema.DiaryEntry, required int) bool {
	if required <= 0 {
		return true
	}
	if len(recent) < required {
		return false
	}
	prev, err := time.Parse(schema.DateLayout, recent[0].Date)
	if err != nil {
		return false
	}
	run := 1
	for _, e := range recent[1:] {
		if run >= required {
			break
		}
		d, err := time.Parse(schema.DateLayout, e.Date)
		if err != nil || !d.AddDate(0, 0, 1).Equal(prev) {
			return false
		}
		run++
		prev = d
	}
	return run >= required
}

// NewStreakPolicy maps a config mode to a policy. Unknown modes fall back
// to counting.
func NewStreakPolicy(mode string, margin int) StreakPolicy {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "calendar":
		return CalendarStreakPolicy{}
	default:
		return CountStreakPolicy{Margin: margin}
	}
}
