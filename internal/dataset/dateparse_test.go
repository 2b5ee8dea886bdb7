package dataset

import (
	"testing"
	"time"
)

func TestParseDateFormats(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2024-06-15", time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local)},
		{"15/06/2024", time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local)},
		{"15/06/2024 13:45:30", time.Date(2024, 6, 15, 13, 45, 30, 0, time.Local)},
		{"15/06/2024 13:45", time.Date(2024, 6, 15, 13, 45, 0, 0, time.Local)},
		{"  01/01/2023  ", time.Date(2023, 1, 1, 0, 0, 0, 0, time.Local)},
		{"2025-07-03T06:52:00Z", time.Date(2025, 7, 3, 6, 52, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, ok := ParseDate(tt.raw)
		if !ok {
			t.Errorf("ParseDate(%q) failed, want %v", tt.raw, tt.want)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParseDateRoundTripsCalendarDate(t *testing.T) {
	for _, raw := range []string{"07/03/2024", "2024-03-07"} {
		got, ok := ParseDate(raw)
		if !ok {
			t.Fatalf("ParseDate(%q) failed", raw)
		}
		if formatted := got.Format("02/01/2006"); formatted != "07/03/2024" {
			t.Errorf("ParseDate(%q) reformatted = %q, want 07/03/2024", raw, formatted)
		}
	}
}

func TestParseDateRejects(t *testing.T) {
	for _, raw := range []string{"", "N/A", "not-a-date", "32/13/2024", "ontem"} {
		if _, ok := ParseDate(raw); ok {
			t.Errorf("ParseDate(%q) = ok, want rejection", raw)
		}
	}
}

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2024, 6, 15, 13, 45, 30, 999, time.Local)
	got := TruncateToDay(in)
	want := time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("TruncateToDay = %v, want %v", got, want)
	}
}
