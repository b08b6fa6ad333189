package calendar

import (
	"fmt"
	"time"
)

// DefaultWeekStart is the canonical week-start day for the planner.
// The calendar view scrolls Sunday-first weeks; all week ids derive from
// this convention.
const DefaultWeekStart = time.Sunday

// Week is a fixed 7-consecutive-day scheduling window.
type Week struct {
	Start  time.Time // first day, UTC midnight
	End    time.Time // last day (Start+6d), inclusive
	Year   int       // ISO year of the week's midpoint
	Number int       // ISO week-of-year of the week's midpoint
	Days   [7]time.Time
}

// WeekContaining returns the 7-day window containing date, starting on
// weekStart. Pure and total for any date.
func WeekContaining(date time.Time, weekStart time.Weekday) Week {
	d := DateOf(date)
	back := (int(d.Weekday()) - int(weekStart) + 7) % 7
	return weekStartingAt(d.AddDate(0, 0, -back))
}

func weekStartingAt(start time.Time) Week {
	w := Week{Start: start, End: start.AddDate(0, 0, 6)}
	for i := range w.Days {
		w.Days[i] = start.AddDate(0, 0, i)
	}

	// Week number and year come from the window's midpoint so every one of
	// the 7 days re-derives the identical id, and weeks straddling a year
	// boundary get a single unambiguous year.
	w.Year, w.Number = w.Days[3].ISOWeek()
	return w
}

// Shift returns the week n windows forward (n may be negative).
// w.Shift(n).Shift(-n) is w.
func (w Week) Shift(n int) Week {
	return weekStartingAt(w.Start.AddDate(0, 0, 7*n))
}

// Contains reports whether date falls inside the window.
func (w Week) Contains(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(w.Start) && !d.After(w.End)
}

// ID returns the deterministic week identifier "<isoYear>-W<weekNumber>"
// used as the sole key for week configuration.
func (w Week) ID() string {
	return fmt.Sprintf("%d-W%d", w.Year, w.Number)
}

// WeekIDFor is a convenience for the id of the canonical week containing
// date.
func WeekIDFor(date time.Time) string {
	return WeekContaining(date, DefaultWeekStart).ID()
}

// ParseWeekID splits a "<year>-W<week>" id into its components. Only
// the canonical form emitted by Week.ID is accepted, so "2024-W05" and
// "2024-W41xyz" are rejected rather than aliasing "2024-W5" and
// "2024-W41".
func ParseWeekID(id string) (year, week int, err error) {
	if _, err := fmt.Sscanf(id, "%d-W%d", &year, &week); err != nil {
		return 0, 0, fmt.Errorf("parse week id %q: %w", id, err)
	}
	if year < 1 || week < 1 || week > 53 {
		return 0, 0, fmt.Errorf("parse week id %q: out of range", id)
	}
	if id != fmt.Sprintf("%d-W%d", year, week) {
		return 0, 0, fmt.Errorf("parse week id %q: not canonical", id)
	}
	return year, week, nil
}

// WeeksAround produces before+after+1 contiguous, non-overlapping weeks
// covering centerDate's week and the requested neighbors, chronologically.
func WeeksAround(centerDate time.Time, before, after int, weekStart time.Weekday) []Week {
	center := WeekContaining(centerDate, weekStart)

	weeks := make([]Week, 0, before+after+1)
	for i := -before; i <= after; i++ {
		weeks = append(weeks, center.Shift(i))
	}
	return weeks
}
