package utils

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "PT0S"},
		{15 * time.Minute, "PT15M"},
		{90 * time.Second, "PT1M30S"},
		{2 * time.Hour, "PT2H"},
		{26*time.Hour + 3*time.Minute + 4*time.Second, "P1DT2H3M4S"},
		{48 * time.Hour, "P2D"},
	}
	for _, tc := range cases {
		got, err := FormatDuration(tc.in)
		if err != nil {
			t.Errorf("FormatDuration(%v): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("FormatDuration(%v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestFormatDuration_Invalid(t *testing.T) {
	if _, err := FormatDuration(-time.Second); err == nil {
		t.Errorf("negative duration must be rejected")
	}
	if _, err := FormatDuration(1500 * time.Millisecond); err == nil {
		t.Errorf("sub-second duration must be rejected")
	}
}

func TestFormatDateTime(t *testing.T) {
	got, err := FormatDateTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got != "2024-01-01T00:00:00Z" {
		t.Errorf("got %s", got)
	}

	loc := time.FixedZone("CET", 3600)
	got, err = FormatDateTime(time.Date(2024, 6, 1, 13, 30, 0, 0, loc))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got != "2024-06-01T12:30:00Z" {
		t.Errorf("non-UTC input must be converted, got %s", got)
	}
}

func TestFormatDateTime_OutOfRange(t *testing.T) {
	if _, err := FormatDateTime(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Errorf("year 10000 must be rejected")
	}
}
