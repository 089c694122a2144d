package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	// time.Weekday puts Sunday at 0; shift so Monday is the anchor.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// StartOfMonth returns midnight of the first day of the month containing t.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// MonthGridRange returns the [start, end) range of the calendar grid for the
// month containing t: leading and trailing days from adjacent months are
// included so the grid is made of whole Monday-anchored weeks.
func MonthGridRange(t time.Time) (time.Time, time.Time) {
	first := StartOfMonth(t)
	gridStart := StartOfWeek(first)
	nextMonth := first.AddDate(0, 1, 0)
	gridEnd := StartOfWeek(nextMonth)
	if gridEnd.Before(nextMonth) {
		// the month ends mid-week; pad out the final week
		gridEnd = gridEnd.AddDate(0, 0, 7)
	}
	return gridStart, gridEnd
}

// ParseClock parses a "HH:MM" wall-clock string into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}
