package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/epicplan/planner/internal/infrastructure/http/response"
)

// Login verifies the shared password and issues a session token.
// POST /session
func (h *PlannerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	sess, err := h.gate.Login(r.Context(), req.Password)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.Created(w, struct {
		Token     string `json:"token"`
		ExpiresAt string `json:"expiresAt"`
	}{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Logout revokes the session token carried in the Authorization header.
// DELETE /session
func (h *PlannerHandler) Logout(w http.ResponseWriter, r *http.Request) {
	// The session middleware already validated the header's shape.
	token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	h.gate.Logout(r.Context(), token)

	slog.InfoContext(r.Context(), "session revoked via HTTP")
	response.NoContent(w)
}
