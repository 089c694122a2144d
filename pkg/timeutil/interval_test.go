package timeutil

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 2, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart time.Time
		aEnd   time.Time
		bStart time.Time
		bEnd   time.Time
		want   bool
	}{
		{"identical", at(9, 0), at(10, 0), at(9, 0), at(10, 0), true},
		{"partial overlap", at(9, 0), at(10, 0), at(9, 30), at(10, 30), true},
		{"contained", at(9, 0), at(11, 0), at(9, 30), at(10, 0), true},
		{"containing", at(9, 30), at(10, 0), at(9, 0), at(11, 0), true},
		{"back to back", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
		{"back to back reversed", at(10, 0), at(11, 0), at(9, 0), at(10, 0), false},
		{"disjoint", at(9, 0), at(10, 0), at(14, 0), at(15, 0), false},
		{"one minute overlap", at(9, 0), at(10, 1), at(10, 0), at(11, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntervalOverlaps(t *testing.T) {
	a := Interval{Start: at(9, 0), End: at(10, 0)}
	b := Interval{Start: at(9, 30), End: at(10, 30)}
	c := Interval{Start: at(10, 0), End: at(11, 0)}

	if !a.Overlaps(b) {
		t.Error("expected a to overlap b")
	}
	if a.Overlaps(c) {
		t.Error("touching intervals should not overlap")
	}
}

func TestIntervalDuration(t *testing.T) {
	i := Interval{Start: at(9, 0), End: at(10, 30)}
	if got := i.Duration(); got != 90*time.Minute {
		t.Errorf("Duration() = %v, want 90m", got)
	}
}

func TestIntervalIsValid(t *testing.T) {
	if !(Interval{Start: at(9, 0), End: at(10, 0)}).IsValid() {
		t.Error("expected valid interval")
	}
	if (Interval{Start: at(10, 0), End: at(10, 0)}).IsValid() {
		t.Error("zero-length interval should be invalid")
	}
	if (Interval{Start: at(11, 0), End: at(10, 0)}).IsValid() {
		t.Error("reversed interval should be invalid")
	}
}
