package timeutil

import "time"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Intervals that merely touch at an endpoint
// (one ends exactly when the other starts) do not overlap, which is what
// makes back-to-back bookings legal.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Interval is a half-open [Start, End) time range.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether i intersects other.
func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i.Start, i.End, other.Start, other.End)
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// IsValid reports whether the interval has strictly positive duration.
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}
