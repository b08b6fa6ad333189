package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epicplan/planner/internal/application/session"
	"github.com/epicplan/planner/internal/infrastructure/http/middleware"
)

func newValidateHandler(t *testing.T) (http.Handler, *session.Gate) {
	t.Helper()
	gate, err := session.NewGate("correct horse", session.DefaultTTL)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return middleware.NewSession(gate).Validate(next), gate
}

func TestSessionValidate_ValidToken(t *testing.T) {
	handler, gate := newValidateHandler(t)

	sess, err := gate.Login(context.Background(), "correct horse")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/calendar", nil)
	r.Header.Set("Authorization", "Bearer "+sess.Token)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionValidate_MissingHeader(t *testing.T) {
	handler, _ := newValidateHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/calendar", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionValidate_WrongScheme(t *testing.T) {
	handler, _ := newValidateHandler(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/calendar", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwdw==")
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionValidate_UnknownToken(t *testing.T) {
	handler, _ := newValidateHandler(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/calendar", nil)
	r.Header.Set("Authorization", "Bearer ps-forged-token")
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionValidate_RevokedToken(t *testing.T) {
	handler, gate := newValidateHandler(t)
	ctx := context.Background()

	sess, err := gate.Login(ctx, "correct horse")
	require.NoError(t, err)
	gate.Logout(ctx, sess.Token)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/calendar", nil)
	r.Header.Set("Authorization", "Bearer "+sess.Token)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
