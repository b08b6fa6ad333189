package session_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epicplan/planner/internal/application/session"
	"github.com/epicplan/planner/internal/domain"
)

func TestNewGate_EmptyPassword(t *testing.T) {
	_, err := session.NewGate("", session.DefaultTTL)
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)
}

func TestLogin(t *testing.T) {
	gate, err := session.NewGate("open sesame", session.DefaultTTL)
	require.NoError(t, err)
	ctx := context.Background()

	sess, err := gate.Login(ctx, "open sesame")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(sess.Token, "ps-"))
	assert.True(t, sess.ExpiresAt.After(time.Now().UTC()))
	assert.Equal(t, 1, gate.ActiveSessions())

	require.NoError(t, gate.Validate(ctx, sess.Token))
}

func TestLogin_WrongPassword(t *testing.T) {
	gate, err := session.NewGate("open sesame", session.DefaultTTL)
	require.NoError(t, err)

	_, err = gate.Login(context.Background(), "open says me")
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)
	assert.Zero(t, gate.ActiveSessions())
}

func TestLogin_TokensAreUnique(t *testing.T) {
	gate, err := session.NewGate("pw", session.DefaultTTL)
	require.NoError(t, err)
	ctx := context.Background()

	first, err := gate.Login(ctx, "pw")
	require.NoError(t, err)
	second, err := gate.Login(ctx, "pw")
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, 2, gate.ActiveSessions())
}

func TestValidate_UnknownToken(t *testing.T) {
	gate, err := session.NewGate("pw", session.DefaultTTL)
	require.NoError(t, err)

	err = gate.Validate(context.Background(), "ps-never-issued")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidate_ExpiredToken(t *testing.T) {
	gate, err := session.NewGate("pw", time.Nanosecond)
	require.NoError(t, err)
	ctx := context.Background()

	sess, err := gate.Login(ctx, "pw")
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	assert.ErrorIs(t, gate.Validate(ctx, sess.Token), domain.ErrUnauthorized)
	assert.Zero(t, gate.ActiveSessions())
}

func TestLogout(t *testing.T) {
	gate, err := session.NewGate("pw", session.DefaultTTL)
	require.NoError(t, err)
	ctx := context.Background()

	sess, err := gate.Login(ctx, "pw")
	require.NoError(t, err)

	gate.Logout(ctx, sess.Token)
	assert.ErrorIs(t, gate.Validate(ctx, sess.Token), domain.ErrUnauthorized)

	// Revoking again is a no-op.
	gate.Logout(ctx, sess.Token)
}
