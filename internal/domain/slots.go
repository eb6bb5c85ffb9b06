package domain

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Slot is a concrete bookable candidate derived from a host's weekly
// availability windows.
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
}

// ParseClock parses an "HH:MM" wall-clock value (a trailing seconds
// component is tolerated) into minutes from midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
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
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	return h*60 + m, nil
}

type clockSpan struct {
	startMin int
	endMin   int
}

// ExpandWeeklySlots expands weekly availability windows across
// [windowStart, windowEnd) into slots of the given duration, dropping any
// slot that overlaps a busy range. Days are interpreted in UTC; slots step
// from each window's opening time and a trailing partial window produces
// no slot.
func ExpandWeeklySlots(windows []Availability, duration time.Duration, windowStart, windowEnd time.Time, busy []TimeRange) ([]Slot, error) {
	if duration <= 0 {
		return nil, errors.New("invalid duration")
	}
	windowStart = windowStart.UTC()
	windowEnd = windowEnd.UTC()
	if !windowEnd.After(windowStart) {
		return nil, ErrInvalidRange
	}

	byWeekday := make(map[time.Weekday][]clockSpan, len(windows))
	for _, w := range windows {
		if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
			return nil, fmt.Errorf("invalid day_of_week %d", w.DayOfWeek)
		}
		startMin, err := ParseClock(w.StartClock)
		if err != nil {
			return nil, err
		}
		endMin, err := ParseClock(w.EndClock)
		if err != nil {
			return nil, err
		}
		if endMin <= startMin {
			return nil, fmt.Errorf("availability window %s ends before it starts", w.ID)
		}
		wd := time.Weekday(w.DayOfWeek)
		byWeekday[wd] = append(byWeekday[wd], clockSpan{startMin: startMin, endMin: endMin})
	}
	if len(byWeekday) == 0 {
		return nil, nil
	}

	out := make([]Slot, 0, 16)
	day := time.Date(windowStart.Year(), windowStart.Month(), windowStart.Day(), 0, 0, 0, 0, time.UTC)
	for ; day.Before(windowEnd); day = day.AddDate(0, 0, 1) {
		for _, span := range byWeekday[day.Weekday()] {
			opens := day.Add(time.Duration(span.startMin) * time.Minute)
			closes := day.Add(time.Duration(span.endMin) * time.Minute)
			for start := opens; !start.Add(duration).After(closes); start = start.Add(duration) {
				end := start.Add(duration)
				if start.Before(windowStart) || end.After(windowEnd) {
					continue
				}
				candidate := TimeRange{Start: start, End: end}
				blocked := false
				for _, b := range busy {
					if candidate.Overlaps(b) {
						blocked = true
						break
					}
				}
				if !blocked {
					out = append(out, Slot{StartTime: start, EndTime: end})
				}
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}
