package repository

import (
	"errors"
	"strings"
	"testing"
)

func TestHasSSLMode(t *testing.T) {
	tests := []struct {
		name    string
		connStr string
		want    bool
	}{
		{"no sslmode", "host=localhost dbname=lacos", false},
		{"key value", "host=localhost sslmode=disable", true},
		{"uppercase", "host=localhost SSLMODE=require", true},
		{"url query", "postgres://u@localhost/db?sslmode=disable", true},
		{"password lookalike", "host=localhost password=sslmode123", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasSSLMode(tt.connStr); got != tt.want {
				t.Fatalf("hasSSLMode(%q)=%v, want %v", tt.connStr, got, tt.want)
			}
		})
	}
}

func TestPreparePostgresDSN(t *testing.T) {
	got, err := PreparePostgresDSN("postgres://u:p@db.example.com:5432/lacos", true)
	if err != nil {
		t.Fatalf("PreparePostgresDSN error: %v", err)
	}
	if !strings.Contains(got, "sslmode=require") {
		t.Fatalf("got=%q, want sslmode=require", got)
	}

	got, err = PreparePostgresDSN("host=localhost user=lacos dbname=lacos sslmode=disable", true)
	if err != nil || strings.Contains(got, "require") {
		t.Fatalf("explicit sslmode must be kept, got=%q err=%v", got, err)
	}

	got, err = PreparePostgresDSN("host=localhost user=lacos dbname=lacos", false)
	if err != nil || got != "host=localhost user=lacos dbname=lacos" {
		t.Fatalf("got=%q err=%v", got, err)
	}

	if _, err := PreparePostgresDSN("  ", true); !errors.Is(err, ErrInvalidConnectionString) {
		t.Fatalf("empty err=%v", err)
	}
}
