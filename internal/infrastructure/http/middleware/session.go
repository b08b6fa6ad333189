package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/epicplan/planner/internal/application/session"
	"github.com/epicplan/planner/internal/domain"
	"github.com/epicplan/planner/internal/infrastructure/http/response"
)

// Session is HTTP middleware that checks the bearer token issued by the
// login endpoint.
type Session struct {
	gate *session.Gate
}

// NewSession creates a new session middleware.
func NewSession(gate *session.Gate) *Session {
	return &Session{gate: gate}
}

// Validate is a Chi middleware that validates session tokens from the
// Authorization header. Expects format: "Authorization: Bearer <token>"
func (s *Session) Validate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			slog.WarnContext(r.Context(), "authentication failed: missing Authorization header",
				"path", r.URL.Path,
				"method", r.Method)
			response.Unauthorized(w, "missing Authorization header")
			return
		}

		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			slog.WarnContext(r.Context(), "authentication failed: invalid Authorization header format",
				"path", r.URL.Path,
				"method", r.Method)
			response.Unauthorized(w, "invalid Authorization header format, expected: Bearer <token>")
			return
		}

		if err := s.gate.Validate(r.Context(), token); err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				slog.WarnContext(r.Context(), "authentication failed: invalid or expired session",
					"path", r.URL.Path,
					"method", r.Method)
			} else {
				slog.ErrorContext(r.Context(), "authentication failed: unexpected error",
					"path", r.URL.Path,
					"method", r.Method,
					"error", err)
			}
			response.Unauthorized(w, "invalid or expired session")
			return
		}

		next.ServeHTTP(w, r)
	})
}
