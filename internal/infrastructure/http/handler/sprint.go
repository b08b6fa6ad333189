package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/epicplan/planner/internal/domain"
	"github.com/epicplan/planner/internal/infrastructure/http/response"
)

// ListFocuses returns the active focus catalog, defaults before custom.
// GET /focuses
func (h *PlannerHandler) ListFocuses(w http.ResponseWriter, r *http.Request) {
	focuses := h.planner.Snapshot().Focuses()
	dtos := make([]FocusDTO, 0, len(focuses))
	for _, f := range focuses {
		dtos = append(dtos, mapFocusToDTO(f))
	}

	response.OK(w, struct {
		Focuses []FocusDTO `json:"focuses"`
	}{Focuses: dtos})
}

// CreateFocus adds a custom sprint focus.
// POST /focuses
func (h *PlannerHandler) CreateFocus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Color       string   `json:"color"`
		Products    []string `json:"products"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	created, err := h.planner.AddFocus(r.Context(), domain.SprintFocus{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Products:    req.Products,
	})
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "sprint focus created via HTTP", "focus_id", created.ID)
	response.Created(w, mapFocusToDTO(created))
}

// UpdateFocus applies a partial update to a focus.
// PATCH /focuses/{id}
func (h *PlannerHandler) UpdateFocus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Name        *string   `json:"name"`
		Description *string   `json:"description"`
		Color       *string   `json:"color"`
		Products    *[]string `json:"products"`
		Active      *bool     `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	update := domain.FocusUpdate{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Active:      req.Active,
	}
	if req.Products != nil {
		update.Products = *req.Products
		if update.Products == nil {
			update.Products = []string{}
		}
	}

	saved, err := h.planner.UpdateFocus(r.Context(), id, update)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapFocusToDTO(saved))
}

// DeleteFocus soft-deletes a focus; weeks pointing at it fall back to
// their default classification.
// DELETE /focuses/{id}
func (h *PlannerHandler) DeleteFocus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.planner.DeleteFocus(r.Context(), id); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "sprint focus deactivated via HTTP", "focus_id", id)
	response.NoContent(w)
}

// PutWeekFocus assigns (or clears) a week's sprint focus.
// PUT /weeks/{weekID}/focus
func (h *PlannerHandler) PutWeekFocus(w http.ResponseWriter, r *http.Request) {
	weekID := chi.URLParam(r, "weekID")

	var req struct {
		FocusID *string `json:"focusId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	saved, err := h.planner.SetWeekFocus(r.Context(), weekID, req.FocusID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapWeekConfigToDTO(saved))
}

// PutWeekLandingPage sets a week's landing page URL. An empty URL clears it.
// PUT /weeks/{weekID}/landing-page
func (h *PlannerHandler) PutWeekLandingPage(w http.ResponseWriter, r *http.Request) {
	h.putWeekURL(w, r, h.planner.SetWeekLandingPage)
}

// PutWeekOfferPage sets a week's offer page URL. An empty URL clears it.
// PUT /weeks/{weekID}/offer-page
func (h *PlannerHandler) PutWeekOfferPage(w http.ResponseWriter, r *http.Request) {
	h.putWeekURL(w, r, h.planner.SetWeekOfferPage)
}

// PutWeekCTA flags or unflags a week as a call-to-action week.
// PUT /weeks/{weekID}/cta
func (h *PlannerHandler) PutWeekCTA(w http.ResponseWriter, r *http.Request) {
	weekID := chi.URLParam(r, "weekID")

	var req struct {
		IsCTAWeek bool `json:"isCtaWeek"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	saved, err := h.planner.SetWeekCTA(r.Context(), weekID, req.IsCTAWeek)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapWeekConfigToDTO(saved))
}

func (h *PlannerHandler) putWeekURL(w http.ResponseWriter, r *http.Request, set func(ctx context.Context, weekID, url string) (domain.WeekConfig, error)) {
	weekID := chi.URLParam(r, "weekID")

	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	saved, err := set(r.Context(), weekID, req.URL)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapWeekConfigToDTO(saved))
}
