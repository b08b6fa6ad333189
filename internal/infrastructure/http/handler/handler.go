// Package handler adapts HTTP requests to planner service calls.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/epicplan/planner/internal/application/planner"
	"github.com/epicplan/planner/internal/application/session"
	mw "github.com/epicplan/planner/internal/infrastructure/http/middleware"
)

// PlannerHandler holds the application services the routes call into.
type PlannerHandler struct {
	planner *planner.Service
	gate    *session.Gate
}

// NewPlannerHandler creates a new HTTP API handler.
func NewPlannerHandler(plannerService *planner.Service, gate *session.Gate) *PlannerHandler {
	return &PlannerHandler{
		planner: plannerService,
		gate:    gate,
	}
}

// NewRouter builds the API router. Login is the only open route; every
// other route sits behind the session middleware.
func NewRouter(plannerService *planner.Service, gate *session.Gate) http.Handler {
	h := NewPlannerHandler(plannerService, gate)

	r := chi.NewRouter()
	r.Post("/session", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(mw.NewSession(gate).Validate)

		r.Delete("/session", h.Logout)

		r.Get("/calendar", h.GetCalendar)
		r.Get("/days/{date}", h.GetDay)

		r.Put("/posts/{date}/{platform}", h.PutPost)
		r.Put("/stories/{date}", h.PutStories)
		r.Put("/newsletters/{type}/{date}", h.PutNewsletter)
		r.Get("/newsletters/upcoming", h.GetUpcomingNewsletters)

		r.Get("/tasks", h.ListTasks)
		r.Post("/tasks", h.CreateTask)
		r.Patch("/tasks/{id}", h.UpdateTask)
		r.Delete("/tasks/{id}", h.DeleteTask)

		r.Get("/podcast", h.GetPodcast)
		r.Post("/podcast/episodes", h.CreateEpisode)
		r.Patch("/podcast/episodes/{id}", h.UpdateEpisode)
		r.Post("/podcast/clips", h.CreateClip)
		r.Patch("/podcast/clips/{id}", h.UpdateClip)

		r.Get("/focuses", h.ListFocuses)
		r.Post("/focuses", h.CreateFocus)
		r.Patch("/focuses/{id}", h.UpdateFocus)
		r.Delete("/focuses/{id}", h.DeleteFocus)

		r.Get("/weeks/{weekID}", h.GetWeek)
		r.Put("/weeks/{weekID}/focus", h.PutWeekFocus)
		r.Put("/weeks/{weekID}/landing-page", h.PutWeekLandingPage)
		r.Put("/weeks/{weekID}/offer-page", h.PutWeekOfferPage)
		r.Put("/weeks/{weekID}/cta", h.PutWeekCTA)

		r.Get("/analytics", h.GetAnalytics)

		r.Post("/import/legacy", h.ImportLegacy)
	})

	return r
}
