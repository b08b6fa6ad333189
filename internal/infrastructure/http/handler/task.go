package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/epicplan/planner/internal/application/planner"
	"github.com/epicplan/planner/internal/calendar"
	"github.com/epicplan/planner/internal/domain"
	"github.com/epicplan/planner/internal/infrastructure/http/response"
)

// ListTasks returns tasks newest-first, optionally filtered.
// GET /tasks?date=YYYY-MM-DD&tag=...
func (h *PlannerHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	var filter planner.TaskFilter

	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err := calendar.ParseDate(raw)
		if err != nil {
			response.BadRequest(w, "invalid date, expected YYYY-MM-DD")
			return
		}
		filter.Date = &date
	}
	filter.Tag = r.URL.Query().Get("tag")

	tasks := h.planner.Snapshot().Tasks(filter)
	response.OK(w, struct {
		Tasks []TaskDTO `json:"tasks"`
	}{Tasks: mapTasksToDTO(tasks)})
}

type taskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Tag         string  `json:"tag"`
	Status      string  `json:"status"`
	Date        *string `json:"date"`
}

// CreateTask adds a new task.
// POST /tasks
func (h *PlannerHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	task := domain.Task{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
		Status:      domain.TaskStatus(req.Status),
	}
	if req.Date != nil && *req.Date != "" {
		date, err := calendar.ParseDate(*req.Date)
		if err != nil {
			response.BadRequest(w, "invalid date, expected YYYY-MM-DD")
			return
		}
		task.Date = &date
	}

	created, err := h.planner.AddTask(r.Context(), task)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "task created via HTTP", "task_id", created.ID)
	response.Created(w, mapTaskToDTO(created))
}

// UpdateTask applies a partial update to a task. Sending "date": "" clears
// the task's calendar date.
// PATCH /tasks/{id}
func (h *PlannerHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Tag         *string `json:"tag"`
		Status      *string `json:"status"`
		Date        *string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	update := domain.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
	}
	if req.Status != nil {
		status, err := domain.NewTaskStatus(*req.Status)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}
		update.Status = &status
	}
	if req.Date != nil {
		if *req.Date == "" {
			update.ClearDate = true
		} else {
			date, err := calendar.ParseDate(*req.Date)
			if err != nil {
				response.BadRequest(w, "invalid date, expected YYYY-MM-DD")
				return
			}
			update.Date = &date
		}
	}

	saved, err := h.planner.UpdateTask(r.Context(), id, update)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapTaskToDTO(saved))
}

// DeleteTask removes a task.
// DELETE /tasks/{id}
func (h *PlannerHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.planner.DeleteTask(r.Context(), id); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "task deleted via HTTP", "task_id", id)
	response.NoContent(w)
}
