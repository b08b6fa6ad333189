package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/epicplan/planner/internal/calendar"
	"github.com/epicplan/planner/internal/domain"
	"github.com/epicplan/planner/internal/infrastructure/http/response"
)

// PutPost applies a partial update to the post for (date, platform).
// PUT /posts/{date}/{platform}
func (h *PlannerHandler) PutPost(w http.ResponseWriter, r *http.Request) {
	date, err := calendar.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		response.BadRequest(w, "invalid date, expected YYYY-MM-DD")
		return
	}
	platform, err := domain.NewPlatform(chi.URLParam(r, "platform"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	var req struct {
		Done          *bool     `json:"done"`
		Link          *string   `json:"link"`
		Caption       *string   `json:"caption"`
		CarouselLinks *[]string `json:"carouselLinks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	update := domain.PostUpdate{
		Done:    req.Done,
		Link:    req.Link,
		Caption: req.Caption,
	}
	if req.CarouselLinks != nil {
		update.CarouselLinks = *req.CarouselLinks
		if update.CarouselLinks == nil {
			update.CarouselLinks = []string{}
		}
	}

	saved, err := h.planner.UpdatePost(r.Context(), date, platform, update)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to update post via HTTP",
			"date", calendar.FormatDate(date),
			"platform", string(platform),
			"error", err)
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapPostToDTO(saved))
}

// PutStories applies a partial update to the day's stories record.
// PUT /stories/{date}
func (h *PlannerHandler) PutStories(w http.ResponseWriter, r *http.Request) {
	date, err := calendar.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		response.BadRequest(w, "invalid date, expected YYYY-MM-DD")
		return
	}

	var req struct {
		Done  *bool   `json:"done"`
		Notes *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	saved, err := h.planner.UpdateStories(r.Context(), date, domain.StoriesUpdate{
		Done:  req.Done,
		Notes: req.Notes,
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to update stories via HTTP",
			"date", calendar.FormatDate(date),
			"error", err)
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapStoriesToDTO(saved))
}

// PutNewsletter applies a partial update to a newsletter issue.
// PUT /newsletters/{type}/{date}
func (h *PlannerHandler) PutNewsletter(w http.ResponseWriter, r *http.Request) {
	typ, err := domain.NewNewsletterType(chi.URLParam(r, "type"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	date, err := calendar.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		response.BadRequest(w, "invalid date, expected YYYY-MM-DD")
		return
	}

	var req struct {
		Status *string `json:"status"`
		Link   *string `json:"link"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	update := domain.NewsletterUpdate{Link: req.Link}
	if req.Status != nil {
		status, err := domain.NewContentStatus(*req.Status)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}
		update.Status = &status
	}

	saved, err := h.planner.UpdateNewsletter(r.Context(), typ, date, update)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to update newsletter via HTTP",
			"type", string(typ),
			"date", calendar.FormatDate(date),
			"error", err)
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapNewsletterToDTO(saved))
}

// GetUpcomingNewsletters lists the newsletter issues due in the coming
// weeks, with stored state merged over the schedule.
// GET /newsletters/upcoming?days=N
func (h *PlannerHandler) GetUpcomingNewsletters(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 28)
	if days < 1 || days > 365 {
		response.BadRequest(w, "days out of range")
		return
	}

	from := calendar.DateOf(time.Now().UTC())
	to := from.AddDate(0, 0, days)

	snap := h.planner.Snapshot()

	issues := make([]NewsletterDTO, 0, 8)
	for _, due := range calendar.UpcomingNewsletters(from, to) {
		issues = append(issues, mapNewsletterToDTO(snap.NewsletterOrDefault(due.Type, due.Date)))
	}

	response.OK(w, struct {
		Issues []NewsletterDTO `json:"issues"`
	}{Issues: issues})
}
