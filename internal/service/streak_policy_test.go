package service

import (
	"testing"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/schema"
)

func entriesOn(dates ...string) []schema.DiaryEntry {
	out := make([]schema.DiaryEntry, 0, len(dates))
	for _, d := range dates {
		out = append(out, schema.DiaryEntry{Date: d})
	}
	return out
}

func TestCountStreakPolicy_IgnoresGaps(t *testing.T) {
	p := CountStreakPolicy{Margin: DefaultStreakMargin}
	if w := p.Window(7); w != 10 {
		t.Fatalf("window=%d, want 10", w)
	}
	// non-consecutive dates still count
	recent := entriesOn("2025-03-20", "2025-03-10", "2025-03-01")
	if !p.Satisfied(recent, 3) {
		t.Fatalf("3 entries should satisfy 3")
	}
	if p.Satisfied(recent, 4) {
		t.Fatalf("3 entries should not satisfy 4")
	}
}

func TestCalendarStreakPolicy(t *testing.T) {
	p := CalendarStreakPolicy{}
	if !p.Satisfied(entriesOn("2025-03-03", "2025-03-02", "2025-03-01"), 3) {
		t.Fatalf("three consecutive days should satisfy 3")
	}
	if p.Satisfied(entriesOn("2025-03-04", "2025-03-02", "2025-03-01"), 3) {
		t.Fatalf("gap should break the streak")
	}
	if !p.Satisfied(entriesOn("2025-03-01", "2025-02-28"), 2) {
		t.Fatalf("month boundary should be consecutive")
	}
	if p.Satisfied(entriesOn("2025-03-01"), 2) {
		t.Fatalf("too few entries")
	}
}

func TestNewStreakPolicy(t *testing.T) {
	if _, ok := NewStreakPolicy("calendar", 3).(CalendarStreakPolicy); !ok {
		t.Fatalf("calendar mode should build CalendarStreakPolicy")
	}
	p, ok := NewStreakPolicy("", 2).(CountStreakPolicy)
	if !ok || p.Margin != 2 {
		t.Fatalf("default mode should count with margin 2, got %#v", p)
	}
}
