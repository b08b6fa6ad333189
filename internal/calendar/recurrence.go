package calendar

import (
	"time"

	"github.com/epicplan/planner/internal/domain"
)

// Rule describes a weekday recurrence: every IntervalWeeks-th occurrence of
// Weekday, anchored to a reference date that fixes the parity for
// multi-week intervals. A zero Anchor with IntervalWeeks 1 is plain
// weekly recurrence.
type Rule struct {
	Weekday       time.Weekday
	IntervalWeeks int
	Anchor        time.Time
}

// Matches evaluates the rule against a date. Pure and total.
func (r Rule) Matches(date time.Time) bool {
	d := DateOf(date)
	if d.Weekday() != r.Weekday {
		return false
	}

	interval := r.IntervalWeeks
	if interval <= 1 {
		return true
	}

	// Matching weekdays are whole weeks apart, so the division is exact
	// and sign-safe: -14 days is -2 weeks, still anchor parity.
	weeks := DaysBetween(r.Anchor, d) / 7
	return weeks%interval == 0
}

// Newsletter publication rules. Roland's Riff goes out every Friday;
// Crazy Experiments every other Friday, anchored to 2024-10-11 (a known
// Crazy Experiments Friday).
var (
	RolandsRiffRule = Rule{Weekday: time.Friday, IntervalWeeks: 1}

	CrazyExperimentsRule = Rule{
		Weekday:       time.Friday,
		IntervalWeeks: 2,
		Anchor:        time.Date(2024, time.October, 11, 0, 0, 0, 0, time.UTC),
	}
)

// NewsletterRule returns the publication rule for a newsletter type.
func NewsletterRule(typ domain.NewsletterType) Rule {
	if typ == domain.NewsletterCrazyExperiments {
		return CrazyExperimentsRule
	}
	return RolandsRiffRule
}

// NewslettersDueOn lists the newsletter types due on a date, in a stable
// order. Empty on non-Fridays.
func NewslettersDueOn(date time.Time) []domain.NewsletterType {
	var due []domain.NewsletterType
	if RolandsRiffRule.Matches(date) {
		due = append(due, domain.NewsletterRolandsRiff)
	}
	if CrazyExperimentsRule.Matches(date) {
		due = append(due, domain.NewsletterCrazyExperiments)
	}
	return due
}

// NewsletterDue is one scheduled newsletter issue in a date range.
type NewsletterDue struct {
	Date time.Time
	Type domain.NewsletterType
}

// UpcomingNewsletters enumerates every newsletter issue due in [from, to],
// chronologically.
func UpcomingNewsletters(from, to time.Time) []NewsletterDue {
	var due []NewsletterDue
	for d := DateOf(from); !d.After(DateOf(to)); d = d.AddDate(0, 0, 1) {
		for _, typ := range NewslettersDueOn(d) {
			due = append(due, NewsletterDue{Date: d, Type: typ})
		}
	}
	return due
}
