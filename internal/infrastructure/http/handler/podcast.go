package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/epicplan/planner/internal/calendar"
	"github.com/epicplan/planner/internal/domain"
	"github.com/epicplan/planner/internal/infrastructure/http/response"
)

// GetPodcast returns all episodes and clips, newest-first.
// GET /podcast
func (h *PlannerHandler) GetPodcast(w http.ResponseWriter, r *http.Request) {
	snap := h.planner.Snapshot()

	episodes := snap.Episodes()
	episodeDTOs := make([]EpisodeDTO, 0, len(episodes))
	for _, e := range episodes {
		episodeDTOs = append(episodeDTOs, mapEpisodeToDTO(e))
	}

	clips := snap.Clips()
	clipDTOs := make([]ClipDTO, 0, len(clips))
	for _, c := range clips {
		clipDTOs = append(clipDTOs, mapClipToDTO(c))
	}

	response.OK(w, struct {
		Episodes []EpisodeDTO `json:"episodes"`
		Clips    []ClipDTO    `json:"clips"`
	}{Episodes: episodeDTOs, Clips: clipDTOs})
}

// CreateEpisode adds a podcast episode.
// POST /podcast/episodes
func (h *PlannerHandler) CreateEpisode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title         string  `json:"title"`
		CaptivateLink string  `json:"captivateLink"`
		YouTubeLink   string  `json:"youtubeLink"`
		ShowNotes     string  `json:"showNotes"`
		Status        string  `json:"status"`
		Date          *string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	episode := domain.PodcastEpisode{
		Title:         req.Title,
		CaptivateLink: req.CaptivateLink,
		YouTubeLink:   req.YouTubeLink,
		ShowNotes:     req.ShowNotes,
		Status:        domain.ContentStatus(req.Status),
	}
	if req.Date != nil && *req.Date != "" {
		date, err := calendar.ParseDate(*req.Date)
		if err != nil {
			response.BadRequest(w, "invalid date, expected YYYY-MM-DD")
			return
		}
		episode.Date = &date
	}

	created, err := h.planner.AddEpisode(r.Context(), episode)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "episode created via HTTP", "episode_id", created.ID)
	response.Created(w, mapEpisodeToDTO(created))
}

// UpdateEpisode applies a partial update to an episode.
// PATCH /podcast/episodes/{id}
func (h *PlannerHandler) UpdateEpisode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Title         *string `json:"title"`
		CaptivateLink *string `json:"captivateLink"`
		YouTubeLink   *string `json:"youtubeLink"`
		ShowNotes     *string `json:"showNotes"`
		Status        *string `json:"status"`
		Date          *string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	update := domain.EpisodeUpdate{
		Title:         req.Title,
		CaptivateLink: req.CaptivateLink,
		YouTubeLink:   req.YouTubeLink,
		ShowNotes:     req.ShowNotes,
	}
	if req.Status != nil {
		status, err := domain.NewContentStatus(*req.Status)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}
		update.Status = &status
	}
	if req.Date != nil && *req.Date != "" {
		date, err := calendar.ParseDate(*req.Date)
		if err != nil {
			response.BadRequest(w, "invalid date, expected YYYY-MM-DD")
			return
		}
		update.Date = &date
	}

	saved, err := h.planner.UpdateEpisode(r.Context(), id, update)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapEpisodeToDTO(saved))
}

// CreateClip adds a podcast clip.
// POST /podcast/clips
func (h *PlannerHandler) CreateClip(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title         string  `json:"title"`
		CaptivateLink string  `json:"captivateLink"`
		YouTubeLink   string  `json:"youtubeLink"`
		Date          *string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	clip := domain.PodcastClip{
		Title:         req.Title,
		CaptivateLink: req.CaptivateLink,
		YouTubeLink:   req.YouTubeLink,
	}
	if req.Date != nil && *req.Date != "" {
		date, err := calendar.ParseDate(*req.Date)
		if err != nil {
			response.BadRequest(w, "invalid date, expected YYYY-MM-DD")
			return
		}
		clip.Date = &date
	}

	created, err := h.planner.AddClip(r.Context(), clip)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "clip created via HTTP", "clip_id", created.ID)
	response.Created(w, mapClipToDTO(created))
}

// UpdateClip applies a partial update to a clip.
// PATCH /podcast/clips/{id}
func (h *PlannerHandler) UpdateClip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Title         *string `json:"title"`
		CaptivateLink *string `json:"captivateLink"`
		YouTubeLink   *string `json:"youtubeLink"`
		Date          *string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	update := domain.ClipUpdate{
		Title:         req.Title,
		CaptivateLink: req.CaptivateLink,
		YouTubeLink:   req.YouTubeLink,
	}
	if req.Date != nil && *req.Date != "" {
		date, err := calendar.ParseDate(*req.Date)
		if err != nil {
			response.BadRequest(w, "invalid date, expected YYYY-MM-DD")
			return
		}
		update.Date = &date
	}

	saved, err := h.planner.UpdateClip(r.Context(), id, update)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapClipToDTO(saved))
}
