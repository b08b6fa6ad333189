package handler

import (
	"log/slog"
	"net/http"

	"github.com/epicplan/planner/internal/infrastructure/http/response"
)

// ImportLegacy runs the one-time import of an exported local-storage
// blob. The request body is the blob itself.
// POST /import/legacy
func (h *PlannerHandler) ImportLegacy(w http.ResponseWriter, r *http.Request) {
	result, err := h.planner.ImportLegacy(r.Context(), r.Body)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	// Reload so the snapshot reflects the imported rows.
	h.planner.Load(r.Context())

	slog.InfoContext(r.Context(), "legacy import via HTTP",
		"migrated", result.Migrated,
		"errors", len(result.Errors))

	errs := result.Errors
	if errs == nil {
		errs = []string{}
	}
	response.OK(w, struct {
		Migrated int      `json:"migrated"`
		Errors   []string `json:"errors"`
	}{Migrated: result.Migrated, Errors: errs})
}
