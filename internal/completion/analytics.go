package completion

import (
	"time"

	"github.com/epicplan/planner/internal/calendar"
	"github.com/epicplan/planner/internal/domain"
)

// PlatformCounts is a completed/total pair for one analytics row.
type PlatformCounts struct {
	Completed int
	Total     int
}

// Rate returns the row's completion percentage, rounded half up.
func (c PlatformCounts) Rate() int {
	return roundPercent(c.Completed, c.Total)
}

// MonthlyStats is the analytics view for one calendar month.
type MonthlyStats struct {
	Posts PeriodStats

	// Per-platform breakdown over the month; "stories" appears as its own row.
	Platforms map[string]PlatformCounts

	TaskCompletionRate int
	CompletedTasks     int
	TotalTasks         int

	// TagDistribution counts tasks by tag; untagged tasks group under "untagged".
	TagDistribution map[string]int
}

// Monthly computes the analytics view for the month containing anchor.
// Task statistics cover the full task list, matching the dashboard's
// all-time task counters.
func Monthly(anchor time.Time, src ContentSource, tasks []domain.Task) MonthlyStats {
	days := calendar.MonthDays(anchor)

	stats := MonthlyStats{
		Posts:           PeriodCompletion(days, src),
		Platforms:       make(map[string]PlatformCounts),
		TagDistribution: make(map[string]int),
	}

	for _, day := range days {
		d := calendar.DateOf(day)
		for _, platform := range corePlatforms {
			row := stats.Platforms[string(platform)]
			row.Total++
			if post, ok := src.Post(d, platform); ok && post.Done {
				row.Completed++
			}
			stats.Platforms[string(platform)] = row
		}

		row := stats.Platforms["stories"]
		row.Total++
		if stories, ok := src.Stories(d); ok && stories.Done {
			row.Completed++
		}
		stats.Platforms["stories"] = row
	}

	for _, task := range tasks {
		stats.TotalTasks++
		if task.Status == domain.TaskStatusCompleted {
			stats.CompletedTasks++
		}

		tag := task.Tag
		if tag == "" {
			tag = "untagged"
		}
		stats.TagDistribution[tag]++
	}
	stats.TaskCompletionRate = roundPercent(stats.CompletedTasks, stats.TotalTasks)

	return stats
}
