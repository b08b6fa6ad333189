// Package calendar provides the pure date computations behind the content
// planner: week windows, week ids, and newsletter recurrence rules.
//
// All functions operate on civil calendar dates (UTC midnight) so daylight
// saving transitions can never change the set of days in a week, and all
// arithmetic is absolute date arithmetic so year boundaries behave.
package calendar

import (
	"fmt"
	"time"
)

// DateFormat is the canonical wire format for calendar dates.
const DateFormat = "2006-01-02"

// DateOf truncates t to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// MonthDays enumerates every calendar day of the month containing t,
// in order.
func MonthDays(t time.Time) []time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)

	var days []time.Time
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DaysBetween returns the number of whole days from a to b (negative when
// b precedes a). Both arguments are treated as civil dates.
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}
