package utils

import (
	"fmt"
	"time"

	"github.com/bookwise/bookwise/models"
)

var weekdays = map[string]bool{
	"Sun": true, "Mon": true, "Tue": true, "Wed": true,
	"Thu": true, "Fri": true, "Sat": true,
}

// ValidateWindows checks a schedule before it replaces the stored one:
// known weekday names, parseable "HH:MM" clocks, start strictly before end,
// and no two windows on the same day overlapping.
func ValidateWindows(hours models.HourWindows) error {
	type span struct {
		day        string
		start, end int
	}
	spans := make([]span, 0, len(hours))

	for _, w := range hours {
		if !weekdays[w.Day] {
			return fmt.Errorf("unknown day %q", w.Day)
		}
		start, err := parseClock(w.Start)
		if err != nil {
			return fmt.Errorf("invalid start time %q", w.Start)
		}
		end, err := parseClock(w.End)
		if err != nil {
			return fmt.Errorf("invalid end time %q", w.End)
		}
		if start >= end {
			return fmt.Errorf("window %s %s-%s does not end after it starts", w.Day, w.Start, w.End)
		}
		for _, s := range spans {
			if s.day == w.Day && start < s.end && s.start < end {
				return fmt.Errorf("overlapping windows on %s", w.Day)
			}
		}
		spans = append(spans, span{day: w.Day, start: start, end: end})
	}
	return nil
}

// SlotWithinHours reports whether the slot's weekday and clock time fall
// inside any declared window. End is exclusive so a 09:00-17:00 day does
// not accept a 17:00 booking.
func SlotWithinHours(hours models.HourWindows, slot time.Time) bool {
	day := slot.Weekday().String()[:3]
	minute := slot.Hour()*60 + slot.Minute()

	for _, w := range hours {
		if w.Day != day {
			continue
		}
		start, err := parseClock(w.Start)
		if err != nil {
			continue
		}
		end, err := parseClock(w.End)
		if err != nil {
			continue
		}
		if minute >= start && minute < end {
			return true
		}
	}
	return false
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
