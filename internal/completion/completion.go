// Package completion derives per-day and per-period completion state from
// a content snapshot. Everything here is synchronous and pure: inputs are
// read through the ContentSource interface and nothing is ever mutated.
package completion

import (
	"time"

	"github.com/epicplan/planner/internal/calendar"
	"github.com/epicplan/planner/internal/domain"
)

// ContentSource supplies persisted content state for a date. The planner
// snapshot implements it; tests use small fakes.
type ContentSource interface {
	// Post returns the post for (date, platform), reporting whether one exists.
	Post(date time.Time, platform domain.Platform) (domain.Post, bool)
	// Stories returns the stories record for a date.
	Stories(date time.Time) (domain.Stories, bool)
	// Newsletter returns the newsletter issue for (type, date).
	Newsletter(typ domain.NewsletterType, date time.Time) (domain.Newsletter, bool)
}

// corePlatforms are due every single day.
var corePlatforms = []domain.Platform{
	domain.PlatformInstagram,
	domain.PlatformLinkedIn,
	domain.PlatformYouTube,
}

// DayPlatforms lists the platforms due on a date, in display order.
// Business Lunch co-posts run Tuesdays and Thursdays only.
func DayPlatforms(date time.Time) []domain.Platform {
	platforms := make([]domain.Platform, len(corePlatforms), len(corePlatforms)+1)
	copy(platforms, corePlatforms)

	switch calendar.DateOf(date).Weekday() {
	case time.Tuesday, time.Thursday:
		platforms = append(platforms, domain.PlatformBusinessLunch)
	}
	return platforms
}

// PlatformStatus is the done flag for one due platform.
type PlatformStatus struct {
	Name domain.Platform
	Done bool
}

// DayStatus is the completion state of a single day.
type DayStatus struct {
	Platforms   []PlatformStatus
	StoriesDone bool
	AllComplete bool
}

// DayCompletion reports per-platform state for a date. AllComplete is true
// only when every due platform is done and the day's stories are done.
func DayCompletion(date time.Time, src ContentSource) DayStatus {
	d := calendar.DateOf(date)

	status := DayStatus{AllComplete: true}
	for _, platform := range DayPlatforms(d) {
		post, ok := src.Post(d, platform)
		done := ok && post.Done
		status.Platforms = append(status.Platforms, PlatformStatus{Name: platform, Done: done})
		if !done {
			status.AllComplete = false
		}
	}

	stories, ok := src.Stories(d)
	status.StoriesDone = ok && stories.Done
	if !status.StoriesDone {
		status.AllComplete = false
	}

	return status
}

// DayPercentage is the day's completion as an integer 0-100.
//
// The pool is the day's due platforms plus the newsletters due that day.
// Instagram only counts as complete when both the post and the day's
// stories are done; a newsletter counts when its status is completed.
// An empty pool yields 0.
func DayPercentage(date time.Time, src ContentSource) int {
	d := calendar.DateOf(date)
	status := DayCompletion(d, src)
	due := calendar.NewslettersDueOn(d)

	total := len(status.Platforms) + len(due)
	completed := 0

	for _, p := range status.Platforms {
		if p.Name == domain.PlatformInstagram {
			if p.Done && status.StoriesDone {
				completed++
			}
			continue
		}
		if p.Done {
			completed++
		}
	}

	for _, typ := range due {
		if issue, ok := src.Newsletter(typ, d); ok && issue.Status == domain.ContentStatusCompleted {
			completed++
		}
	}

	return roundPercent(completed, total)
}

// roundPercent computes completed/total as a percentage, rounding half up.
// Zero total yields 0, never a division error.
func roundPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return (completed*100*2 + total) / (total * 2)
}

// PeriodStats aggregates completion across a sequence of days.
type PeriodStats struct {
	CompletionRate int // 0-100, rounded half up
	CompletedCount int
	TotalCount     int
}

// PeriodCompletion aggregates the three core platforms plus the stories
// record for every day in days. Monthly analytics sums this pool; the
// business-lunch co-post and newsletters are tracked separately.
func PeriodCompletion(days []time.Time, src ContentSource) PeriodStats {
	var stats PeriodStats

	for _, day := range days {
		d := calendar.DateOf(day)
		for _, platform := range corePlatforms {
			stats.TotalCount++
			if post, ok := src.Post(d, platform); ok && post.Done {
				stats.CompletedCount++
			}
		}

		stats.TotalCount++
		if stories, ok := src.Stories(d); ok && stories.Done {
			stats.CompletedCount++
		}
	}

	stats.CompletionRate = roundPercent(stats.CompletedCount, stats.TotalCount)
	return stats
}
