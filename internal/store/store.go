// Package store defines the persistence contracts for the MinatBaca server.
//
// Repositories are the serialization point for aggregate mutations: the profile
// repository hands out a per-identity lock that callers hold for the whole
// load-mutate-save cycle, so concurrent mutations of the same profile never
// interleave while different users proceed independently. Aggregates themselves
// perform no I/O and carry no locks.
package store

import (
	"context"

	"github.com/minatbaca/minatbaca-server/internal/domain"
)

// ProfileRepository loads and saves profile aggregates by user identity.
//
// Save is an idempotent full-state overwrite keyed by the profile's user ID.
// Implementations must not alias the stored state with the caller's copy: a
// profile returned by FindByID is the caller's to mutate freely.
type ProfileRepository interface {
	Save(ctx context.Context, profile *domain.Profile) error
	FindByID(ctx context.Context, userID domain.UserID) (*domain.Profile, error)
	Exists(ctx context.Context, userID domain.UserID) (bool, error)

	// Lock acquires the mutation lock for the given identity and returns the
	// release func. At most one load-mutate-save cycle per identity runs at a
	// time; locks for different identities are independent.
	Lock(userID domain.UserID) (unlock func())
}

// UserRepository stores auth-subsystem user accounts.
type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
