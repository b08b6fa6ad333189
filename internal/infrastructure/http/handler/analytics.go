package handler

import (
	"net/http"
	"time"

	"github.com/epicplan/planner/internal/completion"
	"github.com/epicplan/planner/internal/infrastructure/http/response"
)

// PlatformCountsDTO is one analytics breakdown row.
type PlatformCountsDTO struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Rate      int `json:"rate"`
}

// MonthlyStatsDTO is the analytics view for one month.
type MonthlyStatsDTO struct {
	Month              string                       `json:"month"`
	PostCompletionRate int                          `json:"postCompletionRate"`
	CompletedPosts     int                          `json:"completedPosts"`
	TotalPosts         int                          `json:"totalPosts"`
	Platforms          map[string]PlatformCountsDTO `json:"platforms"`
	TaskCompletionRate int                          `json:"taskCompletionRate"`
	CompletedTasks     int                          `json:"completedTasks"`
	TotalTasks         int                          `json:"totalTasks"`
	TagDistribution    map[string]int               `json:"tagDistribution"`
}

// GetAnalytics returns the monthly completion breakdown.
// GET /analytics?month=YYYY-MM
func (h *PlannerHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	anchor := time.Now().UTC()
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			response.BadRequest(w, "invalid month, expected YYYY-MM")
			return
		}
		anchor = parsed
	}

	snap := h.planner.Snapshot()
	stats := completion.Monthly(anchor, snap, snap.AllTasks())

	platforms := make(map[string]PlatformCountsDTO, len(stats.Platforms))
	for name, counts := range stats.Platforms {
		platforms[name] = PlatformCountsDTO{
			Completed: counts.Completed,
			Total:     counts.Total,
			Rate:      counts.Rate(),
		}
	}

	response.OK(w, MonthlyStatsDTO{
		Month:              anchor.Format("2006-01"),
		PostCompletionRate: stats.Posts.CompletionRate,
		CompletedPosts:     stats.Posts.CompletedCount,
		TotalPosts:         stats.Posts.TotalCount,
		Platforms:          platforms,
		TaskCompletionRate: stats.TaskCompletionRate,
		CompletedTasks:     stats.CompletedTasks,
		TotalTasks:         stats.TotalTasks,
		TagDistribution:    stats.TagDistribution,
	})
}
