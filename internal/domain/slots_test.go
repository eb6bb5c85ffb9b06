package domain

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"09:30:00", 570, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"0900", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseClock(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseClock(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestExpandWeeklySlots_StepsFromWindowOpening(t *testing.T) {
	// 2026-03-02 is a Monday.
	windowStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 0, 1)

	windows := []Availability{
		{DayOfWeek: 1, StartClock: "09:00", EndClock: "11:00"},
	}

	slots, err := ExpandWeeklySlots(windows, 45*time.Minute, windowStart, windowEnd, nil)
	if err != nil {
		t.Fatalf("ExpandWeeklySlots error: %v", err)
	}

	// 09:00-09:45 and 09:45-10:30 fit; 10:30-11:15 spills past the close.
	if len(slots) != 2 {
		t.Fatalf("len(slots) = %d, want 2", len(slots))
	}
	wantFirst := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	if !slots[0].StartTime.Equal(wantFirst) {
		t.Fatalf("first slot start = %v, want %v", slots[0].StartTime, wantFirst)
	}
	wantSecond := time.Date(2026, 3, 2, 9, 45, 0, 0, time.UTC)
	if !slots[1].StartTime.Equal(wantSecond) {
		t.Fatalf("second slot start = %v, want %v", slots[1].StartTime, wantSecond)
	}
}

func TestExpandWeeklySlots_SkipsBusyRanges(t *testing.T) {
	windowStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 0, 1)

	windows := []Availability{
		{DayOfWeek: 1, StartClock: "09:00", EndClock: "12:00"},
	}
	busy := []TimeRange{
		{Start: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), End: time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)},
	}

	slots, err := ExpandWeeklySlots(windows, time.Hour, windowStart, windowEnd, busy)
	if err != nil {
		t.Fatalf("ExpandWeeklySlots error: %v", err)
	}

	if len(slots) != 2 {
		t.Fatalf("len(slots) = %d, want 2", len(slots))
	}
	for _, slot := range slots {
		if slot.StartTime.Hour() == 10 {
			t.Fatalf("busy slot at 10:00 was not excluded")
		}
	}
}

func TestExpandWeeklySlots_TouchingBusyRangeIsBookable(t *testing.T) {
	windowStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 0, 1)

	windows := []Availability{
		{DayOfWeek: 1, StartClock: "09:00", EndClock: "11:00"},
	}
	// Busy exactly 09:00-10:00; the 10:00-11:00 slot shares only the
	// boundary instant and must survive.
	busy := []TimeRange{
		{Start: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), End: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)},
	}

	slots, err := ExpandWeeklySlots(windows, time.Hour, windowStart, windowEnd, busy)
	if err != nil {
		t.Fatalf("ExpandWeeklySlots error: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("len(slots) = %d, want 1", len(slots))
	}
	want := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	if !slots[0].StartTime.Equal(want) {
		t.Fatalf("slot start = %v, want %v", slots[0].StartTime, want)
	}
}

func TestExpandWeeklySlots_MultipleDaysSortedOutput(t *testing.T) {
	// Monday through Sunday window covering two availability days.
	windowStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 0, 7)

	windows := []Availability{
		{DayOfWeek: 3, StartClock: "14:00", EndClock: "15:00"},
		{DayOfWeek: 1, StartClock: "09:00", EndClock: "10:00"},
	}

	slots, err := ExpandWeeklySlots(windows, time.Hour, windowStart, windowEnd, nil)
	if err != nil {
		t.Fatalf("ExpandWeeklySlots error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("len(slots) = %d, want 2", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].StartTime.Before(slots[i-1].StartTime) {
			t.Fatalf("slots out of order: %v before %v", slots[i].StartTime, slots[i-1].StartTime)
		}
	}
	if slots[0].StartTime.Weekday() != time.Monday || slots[1].StartTime.Weekday() != time.Wednesday {
		t.Fatalf("unexpected weekdays: %v, %v", slots[0].StartTime.Weekday(), slots[1].StartTime.Weekday())
	}
}

func TestExpandWeeklySlots_NoWindowsNoSlots(t *testing.T) {
	windowStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	slots, err := ExpandWeeklySlots(nil, time.Hour, windowStart, windowStart.AddDate(0, 0, 7), nil)
	if err != nil {
		t.Fatalf("ExpandWeeklySlots error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("len(slots) = %d, want 0", len(slots))
	}
}
