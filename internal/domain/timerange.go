package domain

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("end_time must be after start_time")

// TimeRange is a half-open interval [Start, End) in UTC.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	start = start.UTC()
	end = end.UTC()
	if !end.After(start) {
		return TimeRange{}, ErrInvalidRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// Overlaps reports whether the half-open intervals intersect. Touching
// endpoints do not overlap, so back-to-back bookings are legal.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}
