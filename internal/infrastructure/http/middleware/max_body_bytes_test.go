package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/epicplan/planner/internal/infrastructure/http/middleware"
)

func TestMaxBodyBytes_AllowsSmallBody(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("Handler failed to read body: %v", err)
		}
		got = string(body)
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.MaxBodyBytes(64)(next)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(`{"title":"ok"}`))
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if got != `{"title":"ok"}` {
		t.Errorf("Handler saw wrong body: %q", got)
	}
}

func TestMaxBodyBytes_RejectsOversizedBody(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler must not run for an oversized body")
	})

	handler := middleware.MaxBodyBytes(16)(next)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(strings.Repeat("x", 64)))
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413, got %d", w.Code)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("Response body is not valid JSON: %v", err)
	}
	if envelope.Error.Code != "PAYLOAD_TOO_LARGE" {
		t.Errorf("Expected PAYLOAD_TOO_LARGE, got %s", envelope.Error.Code)
	}
}

func TestMaxBodyBytes_RejectsByContentLength(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler must not run when Content-Length exceeds the limit")
	})

	handler := middleware.MaxBodyBytes(16)(next)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(strings.Repeat("x", 64)))
	r.ContentLength = 64
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413, got %d", w.Code)
	}
}
