package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epicplan/planner/internal/calendar"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekContaining_SundayStart(t *testing.T) {
	// 2024-10-09 is a Wednesday; the Sunday-start week runs Oct 6 - Oct 12.
	w := calendar.WeekContaining(date(2024, time.October, 9), time.Sunday)

	assert.Equal(t, date(2024, time.October, 6), w.Start)
	assert.Equal(t, date(2024, time.October, 12), w.End)
	assert.Equal(t, time.Sunday, w.Start.Weekday())

	for i, d := range w.Days {
		assert.Equal(t, w.Start.AddDate(0, 0, i), d)
	}
}

func TestWeekContaining_StartDayMapsToItself(t *testing.T) {
	// A Sunday is the first day of its own week, not the last of the previous.
	sunday := date(2024, time.October, 6)
	w := calendar.WeekContaining(sunday, time.Sunday)
	assert.Equal(t, sunday, w.Start)
}

func TestWeekID_StableAcrossAllSevenDays(t *testing.T) {
	w := calendar.WeekContaining(date(2024, time.October, 9), time.Sunday)
	want := w.ID()

	for _, d := range w.Days {
		assert.Equal(t, want, calendar.WeekIDFor(d), "day %s", calendar.FormatDate(d))
	}
}

func TestWeekID_YearBoundary(t *testing.T) {
	// The Sunday-start week 2024-12-29 .. 2025-01-04 straddles the year
	// boundary. Every day of it must yield a single id, taken from the
	// midpoint (2025-01-01, ISO week 1 of 2025).
	w := calendar.WeekContaining(date(2024, time.December, 30), time.Sunday)
	require.Equal(t, date(2024, time.December, 29), w.Start)

	assert.Equal(t, "2025-W1", w.ID())
	for _, d := range w.Days {
		assert.Equal(t, "2025-W1", calendar.WeekIDFor(d))
	}
}

func TestWeekShift_RoundTrip(t *testing.T) {
	w := calendar.WeekContaining(date(2024, time.October, 9), time.Sunday)

	next := w.Shift(1)
	assert.Equal(t, w.End.AddDate(0, 0, 1), next.Start)
	assert.Equal(t, w, next.Shift(-1))
	assert.Equal(t, w, w.Shift(0))
}

func TestWeekContains(t *testing.T) {
	w := calendar.WeekContaining(date(2024, time.October, 9), time.Sunday)

	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.End))
	assert.False(t, w.Contains(w.Start.AddDate(0, 0, -1)))
	assert.False(t, w.Contains(w.End.AddDate(0, 0, 1)))
}

func TestWeeksAround_ContiguousWindow(t *testing.T) {
	weeks := calendar.WeeksAround(date(2024, time.October, 9), 2, 3, time.Sunday)
	require.Len(t, weeks, 6)

	center := calendar.WeekContaining(date(2024, time.October, 9), time.Sunday)
	assert.Equal(t, center, weeks[2])

	for i := 1; i < len(weeks); i++ {
		assert.Equal(t, weeks[i-1].End.AddDate(0, 0, 1), weeks[i].Start,
			"weeks %d and %d must be adjacent", i-1, i)
	}
}

func TestParseWeekID(t *testing.T) {
	year, week, err := calendar.ParseWeekID("2024-W41")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, 41, week)
}

func TestParseWeekID_Invalid(t *testing.T) {
	for _, id := range []string{"", "garbage", "2024-41", "2024-W0", "2024-W54", "0-W10"} {
		_, _, err := calendar.ParseWeekID(id)
		assert.Error(t, err, "id %q", id)
	}
}

func TestParseWeekID_NonCanonical(t *testing.T) {
	// Only ids that Week.ID would emit are valid keys; zero-padded or
	// suffixed variants would address rows no calendar view reads.
	for _, id := range []string{"2024-W05", "2024-W41xyz", "02024-W41", " 2024-W41"} {
		_, _, err := calendar.ParseWeekID(id)
		assert.Error(t, err, "id %q", id)
	}
}

func TestMonthDays(t *testing.T) {
	days := calendar.MonthDays(date(2024, time.February, 15))
	require.Len(t, days, 29) // 2024 is a leap year
	assert.Equal(t, date(2024, time.February, 1), days[0])
	assert.Equal(t, date(2024, time.February, 29), days[28])
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 7, calendar.DaysBetween(date(2024, time.October, 4), date(2024, time.October, 11)))
	assert.Equal(t, -7, calendar.DaysBetween(date(2024, time.October, 11), date(2024, time.October, 4)))
	assert.Equal(t, 0, calendar.DaysBetween(date(2024, time.October, 11), date(2024, time.October, 11)))
}

func TestDateOf_TruncatesToUTCMidnight(t *testing.T) {
	stamp := time.Date(2024, time.October, 9, 18, 30, 12, 0, time.UTC)
	assert.Equal(t, date(2024, time.October, 9), calendar.DateOf(stamp))
}
