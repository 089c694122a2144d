package timeutil

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	in := time.Date(2025, 6, 4, 15, 42, 7, 123, time.UTC)
	want := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	if got := StartOfDay(in); !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", got, want)
	}
}

func TestStartOfWeek(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   time.Time
	}{
		{"monday itself", time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)},
		{"wednesday", time.Date(2025, 6, 4, 18, 30, 0, 0, time.UTC)},
		{"sunday", time.Date(2025, 6, 8, 23, 59, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfWeek(tt.in); !got.Equal(monday) {
				t.Errorf("StartOfWeek(%v) = %v, want %v", tt.in, got, monday)
			}
		})
	}
}

func TestStartOfMonth(t *testing.T) {
	in := time.Date(2025, 6, 17, 12, 0, 0, 0, time.UTC)
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := StartOfMonth(in); !got.Equal(want) {
		t.Errorf("StartOfMonth() = %v, want %v", got, want)
	}
}

func TestMonthGridRange(t *testing.T) {
	// June 2025 starts on a Sunday and ends on a Monday, so the grid runs
	// from Monday May 26 through Sunday July 6.
	in := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	start, end := MonthGridRange(in)

	wantStart := time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC)

	if !start.Equal(wantStart) {
		t.Errorf("grid start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("grid end = %v, want %v", end, wantEnd)
	}
	if days := int(end.Sub(start).Hours() / 24); days%7 != 0 {
		t.Errorf("grid covers %d days, want a multiple of 7", days)
	}
}

func TestMonthGridRangeExactWeeks(t *testing.T) {
	// September 2025 runs Monday Sep 1 through Tuesday Sep 30.
	in := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
	start, end := MonthGridRange(in)

	if want := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("grid start = %v, want %v", start, want)
	}
	if want := time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC); !end.Equal(want) {
		t.Errorf("grid end = %v, want %v", end, want)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"9:30", 570, false},
		{"24:00", 1440, false},
		{"25:00", 0, true},
		{"09:60", 0, true},
		{"0900", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(540); got != "09:00" {
		t.Errorf("FormatClock(540) = %q, want %q", got, "09:00")
	}
	if got := FormatClock(1439); got != "23:59" {
		t.Errorf("FormatClock(1439) = %q, want %q", got, "23:59")
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 6, 4, 23, 59, 59, 0, time.UTC)
	c := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Error("expected same day")
	}
	if SameDay(a, c) {
		t.Error("expected different days")
	}
}
