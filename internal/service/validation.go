package service

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/schema"
)

// plainHours accepts decimal digits with an optional all-zero fraction;
// exponents, signs and hex floats are rejected.
var plainHours = regexp.MustCompile(`^\d+(\.0+)?$`)

const (
	minTimeOnline = 0
	maxTimeOnline = 24
)

// ParseTimeOnline accepts a JSON number or numeric string holding a whole
// number of hours in [0,24]. Integral floats such as 5.0 are accepted.
func ParseTimeOnline(v any) (int, error) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, fmt.Errorf("is required")
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case float64:
		f = x
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, fmt.Errorf("must be a number")
		}
		f = parsed
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, fmt.Errorf("is required")
		}
		if !plainHours.MatchString(s) {
			return 0, fmt.Errorf("must be a whole number of hours")
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("must be a number")
		}
		f = parsed
	default:
		return 0, fmt.Errorf("must be a number")
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("must be a whole number of hours")
	}
	if f < minTimeOnline || f > maxTimeOnline {
		return 0, fmt.Errorf("must be between %d and %d", minTimeOnline, maxTimeOnline)
	}
	return int(f), nil
}

// ParseDate normalizes YYYY-MM-DD or an RFC 3339 timestamp to YYYY-MM-DD.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("is required")
	}
	if t, err := time.Parse(schema.DateLayout, s); err == nil {
		return t.Format(schema.DateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(schema.DateLayout), nil
	}
	return "", fmt.Errorf("must be a date in YYYY-MM-DD format")
}

// ParseMood checks membership in the mood enum. No case folding.
func ParseMood(s string) (schema.Mood, error) {
	if s == "" {
		return "", fmt.Errorf("is required")
	}
	m := schema.Mood(s)
	if !m.Valid() {
		return "", fmt.Errorf("must be one of Feliz, Neutro, Triste, Ansioso, Estressado")
	}
	return m, nil
}

// ParseUserID accepts a positive integer given as a JSON number or string.
func ParseUserID(v any) (int64, error) {
	var id int64
	switch x := v.(type) {
	case nil:
		return 0, fmt.Errorf("is required")
	case int:
		id = int64(x)
	case int64:
		id = x
	case float64:
		if x != math.Trunc(x) || x > math.MaxInt64 {
			return 0, fmt.Errorf("must be a positive integer")
		}
		id = int64(x)
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return 0, fmt.Errorf("must be a positive integer")
		}
		id = n
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("must be a positive integer")
		}
		id = n
	default:
		return 0, fmt.Errorf("must be a positive integer")
	}
	if id <= 0 {
		return 0, fmt.Errorf("must be a positive integer")
	}
	return id, nil
}

func copyActivities(in []string) schema.JSONArray {
	out := make(schema.JSONArray, len(in))
	copy(out, in)
	return out
}
