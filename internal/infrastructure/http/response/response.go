// Package response writes the JSON envelope every endpoint uses.
// Success responses are the payload itself; errors are wrapped as
// {"error":{"code","message","details"}}.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/epicplan/planner/internal/domain"
)

// ErrorBody is the error payload inside the envelope.
type ErrorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}

// ErrorResponse is the envelope for all error responses.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// internalErrorJSON is pre-marshaled so we can always answer, even when
// encoding the real payload fails.
const internalErrorJSON = `{"error":{"code":"INTERNAL_ERROR","message":"failed to encode response","details":[]}}`

// writeJSON marshals first and writes after, so an encoding failure can
// still produce a clean 500 instead of a half-written 200.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to encode response payload", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(internalErrorJSON))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// OK writes a 200 response with the given payload.
func OK(w http.ResponseWriter, payload any) {
	writeJSON(w, http.StatusOK, payload)
}

// Created writes a 201 response with the given payload.
func Created(w http.ResponseWriter, payload any) {
	writeJSON(w, http.StatusCreated, payload)
}

// NoContent writes a 204 response with no body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes an error envelope with the given status and code.
func Error(w http.ResponseWriter, status int, code, message string, details ...string) {
	if details == nil {
		details = []string{}
	}
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

// BadRequest writes a 400 error envelope.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", message)
}

// Unauthorized writes a 401 error envelope.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// NotFound writes a 404 error envelope.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, "NOT_FOUND", message)
}

// FromDomainError maps a domain error to the matching HTTP error envelope.
// Unrecognized errors become an opaque 500 so internals never leak.
func FromDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotConfigured):
		Error(w, http.StatusServiceUnavailable, "READ_ONLY", "no store configured, planner is read-only")

	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrEpisodeNotFound),
		errors.Is(err, domain.ErrClipNotFound),
		errors.Is(err, domain.ErrFocusNotFound):
		NotFound(w, err.Error())

	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidPassword):
		Unauthorized(w, "invalid credentials")

	case errors.Is(err, domain.ErrMigrationDone):
		Error(w, http.StatusConflict, "ALREADY_DONE", err.Error())

	case errors.Is(err, domain.ErrTitleRequired),
		errors.Is(err, domain.ErrTitleTooLong),
		errors.Is(err, domain.ErrInvalidTag),
		errors.Is(err, domain.ErrInvalidTaskStatus),
		errors.Is(err, domain.ErrInvalidContentStatus),
		errors.Is(err, domain.ErrInvalidPlatform),
		errors.Is(err, domain.ErrInvalidNewsletterType),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidWeekID):
		BadRequest(w, err.Error())

	default:
		slog.ErrorContext(r.Context(), "unhandled error in HTTP response",
			"path", r.URL.Path,
			"method", r.Method,
			"error", err)
		Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
	}
}
