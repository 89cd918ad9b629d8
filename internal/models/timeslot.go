package models

import (
	"fmt"
	"time"

	appErrors "github.com/campus-kit/timetable-api/pkg/errors"
)

// Day identifies a teaching day. Weekends are outside the timetable.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
)

var dayOrder = map[Day]int{
	Monday:    1,
	Tuesday:   2,
	Wednesday: 3,
	Thursday:  4,
	Friday:    5,
}

// Order returns the 1-based weekday position, 0 for unknown days.
func (d Day) Order() int {
	return dayOrder[d]
}

// Valid reports whether the day is a recognised teaching day.
func (d Day) Valid() bool {
	return dayOrder[d] != 0
}

// TimeSlot is a day plus a half-open wall-clock interval [StartTime, EndTime).
type TimeSlot struct {
	Day       Day    `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

const clockLayout = "15:04"

// ClockMinutes converts an HH:MM wall-clock value to minutes since midnight.
func ClockMinutes(value string) (int, error) {
	t, err := time.Parse(clockLayout, value)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInvalidSlot.Code, appErrors.ErrInvalidSlot.Status, fmt.Sprintf("invalid clock value %q", value))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesToClock renders minutes since midnight as HH:MM.
func MinutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Bounds returns the slot interval in minutes since midnight.
func (s TimeSlot) Bounds() (start, end int, err error) {
	start, err = ClockMinutes(s.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err = ClockMinutes(s.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// DurationMinutes returns the slot length, rejecting slots that are
// malformed, non-positive or not aligned to the grid unit.
func DurationMinutes(slot TimeSlot, gridMinutes int) (int, error) {
	if !slot.Day.Valid() {
		return 0, appErrors.Clone(appErrors.ErrInvalidSlot, fmt.Sprintf("invalid day %q", slot.Day))
	}
	start, end, err := slot.Bounds()
	if err != nil {
		return 0, err
	}
	duration := end - start
	if duration <= 0 {
		return 0, appErrors.Clone(appErrors.ErrInvalidSlot, fmt.Sprintf("slot %s-%s has non-positive duration", slot.StartTime, slot.EndTime))
	}
	if gridMinutes > 0 && (duration%gridMinutes != 0 || start%gridMinutes != 0) {
		return 0, appErrors.Clone(appErrors.ErrInvalidSlot, fmt.Sprintf("slot %s-%s is not aligned to the %d-minute grid", slot.StartTime, slot.EndTime, gridMinutes))
	}
	return duration, nil
}

// Overlaps reports whether two slots fall on the same day and their
// half-open intervals intersect. Touching boundaries do not overlap.
func Overlaps(a, b TimeSlot) bool {
	if a.Day != b.Day {
		return false
	}
	aStart, aEnd, err := a.Bounds()
	if err != nil {
		return false
	}
	bStart, bEnd, err := b.Bounds()
	if err != nil {
		return false
	}
	return aStart < bEnd && bStart < aEnd
}

// Contains reports whether inner lies fully within outer on the same day.
func Contains(outer, inner TimeSlot) bool {
	if outer.Day != inner.Day {
		return false
	}
	oStart, oEnd, err := outer.Bounds()
	if err != nil {
		return false
	}
	iStart, iEnd, err := inner.Bounds()
	if err != nil {
		return false
	}
	return oStart <= iStart && iEnd <= oEnd
}
