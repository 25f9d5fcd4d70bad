package timeutil

import (
	"fmt"
	"time"
)

// Interval is a half-open time range [Start, End). All payroll arithmetic
// deals in these; an interval is only meaningful when End is after Start.
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// IsValid reports whether the interval has positive length.
func (iv Interval) IsValid() bool {
	return iv.End.After(iv.Start)
}

func (iv Interval) Duration() time.Duration {
	if !iv.IsValid() {
		return 0
	}
	return iv.End.Sub(iv.Start)
}

// Contains reports whether t falls inside the half-open range.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Intersect returns the overlap of two intervals. ok is false when they do
// not overlap.
func (iv Interval) Intersect(other Interval) (Interval, bool) {
	start := iv.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := iv.End
	if other.End.Before(end) {
		end = other.End
	}
	result := Interval{Start: start, End: end}
	if !result.IsValid() {
		return Interval{}, false
	}
	return result, true
}

// Subtract removes other from iv and returns the remaining pieces, in order.
// The result has zero, one, or two intervals.
func (iv Interval) Subtract(other Interval) []Interval {
	if !iv.Overlaps(other) {
		return []Interval{iv}
	}

	var parts []Interval
	if other.Start.After(iv.Start) {
		parts = append(parts, Interval{Start: iv.Start, End: other.Start})
	}
	if other.End.Before(iv.End) {
		parts = append(parts, Interval{Start: other.End, End: iv.End})
	}
	return parts
}

// AtClock builds the instant for a civil date ("2006-01-02") and a local
// time-of-day ("HH:mm" or "HH:mm:ss") in the given location.
func AtClock(date string, clock string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	h, m, s, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(day.Year(), day.Month(), day.Day(), h, m, s, 0, loc), nil
}

// ClockInterval builds the interval for a civil date between two local
// times-of-day in the given location.
func ClockInterval(date string, startClock, endClock string, loc *time.Location) (Interval, error) {
	start, err := AtClock(date, startClock, loc)
	if err != nil {
		return Interval{}, err
	}
	end, err := AtClock(date, endClock, loc)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}
