package service

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minatbaca/minatbaca-server/internal/auth"
	domainerrors "github.com/minatbaca/minatbaca-server/internal/errors"
	"github.com/minatbaca/minatbaca-server/internal/store/memory"
	"github.com/minatbaca/minatbaca-server/internal/validation"
)

func newTestAuthService(t *testing.T) (*AuthService, *ProfileService) {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	tokens, err := auth.NewTokenService(strings.Repeat("ab", 32), 15*time.Minute)
	require.NoError(t, err)

	profiles := NewProfileService(memory.NewProfileRepository(), NoopPublisher{}, logger)
	authSvc := NewAuthService(memory.NewUserRepository(), profiles, tokens, validation.New(), logger)
	return authSvc, profiles
}

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	authSvc, profiles := newTestAuthService(t)
	ctx := context.Background()

	resp, err := authSvc.Register(ctx, RegisterRequest{Username: "alice", Password: "sup3rsecret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(900), resp.ExpiresIn)

	// The access token verifies and carries the user identity.
	claims, err := authSvc.VerifyAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	// Registration also created an empty profile.
	snap, err := profiles.GetSnapshot(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Empty(t, snap.Genres)
	assert.Zero(t, snap.BooksRead)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	authSvc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := authSvc.Register(ctx, RegisterRequest{Username: "alice", Password: "sup3rsecret"})
	require.NoError(t, err)

	_, err = authSvc.Register(ctx, RegisterRequest{Username: "alice", Password: "otherpassword"})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestRegisterValidation(t *testing.T) {
	authSvc, _ := newTestAuthService(t)
	ctx := context.Background()

	// Too-short password.
	_, err := authSvc.Register(ctx, RegisterRequest{Username: "alice", Password: "short"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	// Username with invalid characters.
	_, err = authSvc.Register(ctx, RegisterRequest{Username: "not a name", Password: "sup3rsecret"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestLogin(t *testing.T) {
	authSvc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := authSvc.Register(ctx, RegisterRequest{Username: "alice", Password: "sup3rsecret"})
	require.NoError(t, err)

	resp, err := authSvc.Login(ctx, LoginRequest{Username: "alice", Password: "sup3rsecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = authSvc.Login(ctx, LoginRequest{Username: "alice", Password: "wrongpassword"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	// Unknown user fails the same way as a wrong password.
	_, err = authSvc.Login(ctx, LoginRequest{Username: "mallory", Password: "sup3rsecret"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestVerifyAccessTokenRejectsGarbage(t *testing.T) {
	authSvc, _ := newTestAuthService(t)

	_, err := authSvc.VerifyAccessToken("v4.local.garbage")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}
