package service

import (
	"encoding/json"
	"testing"
)

func TestParseTimeOnline(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    int
		wantErr bool
	}{
		{"zero", float64(0), 0, false},
		{"upper bound", float64(24), 24, false},
		{"string", "5", 5, false},
		{"padded string", " 12 ", 12, false},
		{"integral float", 5.0, 5, false},
		{"integral float string", "5.0", 5, false},
		{"json number", json.Number("8"), 8, false},
		{"negative", float64(-1), 0, true},
		{"too large", float64(25), 0, true},
		{"too large string", "25", 0, true},
		{"fraction", 5.5, 0, true},
		{"fraction string", "2.25", 0, true},
		{"not a number", "abc", 0, true},
		{"exponent string", "1e1", 0, true},
		{"exponent with fraction", "2.0e0", 0, true},
		{"hex float string", "0x1p3", 0, true},
		{"signed string", "+5", 0, true},
		{"negative string", "-1", 0, true},
		{"empty", "", 0, true},
		{"missing", nil, 0, true},
		{"bool", true, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOnline(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v, wantErr=%v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("got=%d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-01")
	if err != nil || got != "2025-03-01" {
		t.Fatalf("got=%q err=%v", got, err)
	}
	got, err = ParseDate("2025-03-01T23:10:00-03:00")
	if err != nil || got != "2025-03-01" {
		t.Fatalf("rfc3339 got=%q err=%v", got, err)
	}
	for _, bad := range []string{"", "01/03/2025", "2025-02-30", "ontem"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("ParseDate(%q) should fail", bad)
		}
	}
}

func TestParseMood(t *testing.T) {
	if m, err := ParseMood("Ansioso"); err != nil || m != "Ansioso" {
		t.Fatalf("m=%q err=%v", m, err)
	}
	for _, bad := range []string{"", "ansioso", "Happy", "Feliz!"} {
		if _, err := ParseMood(bad); err == nil {
			t.Fatalf("ParseMood(%q) should fail", bad)
		}
	}
}

func TestParseUserID(t *testing.T) {
	for _, ok := range []any{float64(3), "3", json.Number("3"), int64(3)} {
		if id, err := ParseUserID(ok); err != nil || id != 3 {
			t.Fatalf("ParseUserID(%v)=%d,%v", ok, id, err)
		}
	}
	for _, bad := range []any{nil, float64(0), float64(-2), 1.5, "x", "0"} {
		if _, err := ParseUserID(bad); err == nil {
			t.Fatalf("ParseUserID(%v) should fail", bad)
		}
	}
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	v := &ValidationError{}
	v.add("mood", "is required")
	v.add("date", "is required")
	v.add("mood", "ignored second message")
	want := "invalid input: date: is required; mood: is required"
	if v.Error() != want {
		t.Fatalf("got=%q, want %q", v.Error(), want)
	}
}
