package session

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"sync"
	"time"

	"github.com/epicplan/planner/internal/domain"
	"github.com/epicplan/planner/internal/infrastructure/keygen"
)

// DefaultTTL is how long a session stays valid without re-login.
const DefaultTTL = 30 * 24 * time.Hour

// Session is an issued login session.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Gate guards the dashboard behind a single shared password. A correct
// login yields an opaque bearer token; sessions live in memory, so a
// restart logs everyone out.
type Gate struct {
	passwordHash string
	ttl          time.Duration

	mu       sync.RWMutex
	sessions map[string]time.Time // token hash -> expiry
}

// NewGate creates a gate for the given shared password.
// Zero or negative ttl gets the default.
func NewGate(password string, ttl time.Duration) (*Gate, error) {
	if password == "" {
		return nil, domain.ErrInvalidPassword
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Gate{
		passwordHash: keygen.HashSecret(password),
		ttl:          ttl,
		sessions:     make(map[string]time.Time),
	}, nil
}

// Login verifies the shared password and issues a new session token.
// Returns domain.ErrInvalidPassword on a wrong password.
func (g *Gate) Login(ctx context.Context, password string) (Session, error) {
	// Hash first so comparison time does not depend on the input.
	providedHash := keygen.HashSecret(password)
	if subtle.ConstantTimeCompare([]byte(g.passwordHash), []byte(providedHash)) != 1 {
		slog.WarnContext(ctx, "login rejected: wrong password")
		return Session{}, domain.ErrInvalidPassword
	}

	token, err := keygen.GenerateSessionToken()
	if err != nil {
		return Session{}, err
	}
	expiresAt := time.Now().UTC().Add(g.ttl)

	g.mu.Lock()
	g.pruneLocked()
	// Only token hashes are stored, never the token itself.
	g.sessions[keygen.HashSecret(token)] = expiresAt
	g.mu.Unlock()

	slog.InfoContext(ctx, "session issued", "token", keygen.MaskToken(token))
	return Session{Token: token, ExpiresAt: expiresAt}, nil
}

// Validate checks a bearer token against the live sessions.
// Returns domain.ErrUnauthorized for unknown or expired tokens.
func (g *Gate) Validate(ctx context.Context, token string) error {
	hash := keygen.HashSecret(token)

	g.mu.RLock()
	expiresAt, ok := g.sessions[hash]
	g.mu.RUnlock()

	if !ok {
		return domain.ErrUnauthorized
	}
	if expiresAt.Before(time.Now().UTC()) {
		g.mu.Lock()
		delete(g.sessions, hash)
		g.mu.Unlock()
		return domain.ErrUnauthorized
	}
	return nil
}

// Logout revokes a session token. Revoking an unknown token is a no-op.
func (g *Gate) Logout(ctx context.Context, token string) {
	g.mu.Lock()
	delete(g.sessions, keygen.HashSecret(token))
	g.mu.Unlock()
}

// ActiveSessions returns the number of unexpired sessions.
func (g *Gate) ActiveSessions() int {
	now := time.Now().UTC()

	g.mu.RLock()
	defer g.mu.RUnlock()

	count := 0
	for _, expiresAt := range g.sessions {
		if expiresAt.After(now) {
			count++
		}
	}
	return count
}

// pruneLocked drops expired sessions. Caller must hold mu.
func (g *Gate) pruneLocked() {
	now := time.Now().UTC()
	for hash, expiresAt := range g.sessions {
		if expiresAt.Before(now) {
			delete(g.sessions, hash)
		}
	}
}
