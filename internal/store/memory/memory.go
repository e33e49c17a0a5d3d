// Package memory provides in-memory repository implementations. They are the
// reference adapters: tests run against them, and they document the concurrency
// contract durable adapters must also satisfy.
package memory

import (
	"context"
	"sync"

	"github.com/minatbaca/minatbaca-server/internal/domain"
	"github.com/minatbaca/minatbaca-server/internal/store"
)

// ProfileRepository is an in-memory store.ProfileRepository. Stored profiles are
// deep-copied on the way in and out, so callers can never mutate shared state
// behind the repository's back.
type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[domain.UserID]*domain.Profile

	locksMu sync.Mutex
	locks   map[domain.UserID]*sync.Mutex
}

// NewProfileRepository creates an empty in-memory profile repository.
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		profiles: make(map[domain.UserID]*domain.Profile),
		locks:    make(map[domain.UserID]*sync.Mutex),
	}
}

// Save stores a deep copy of the profile, overwriting any previous state for the
// same identity.
func (r *ProfileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID()] = profile.Clone()
	return nil
}

// FindByID returns a deep copy of the stored profile, or store.ErrProfileNotFound.
func (r *ProfileRepository) FindByID(ctx context.Context, userID domain.UserID) (*domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	return profile.Clone(), nil
}

// Exists reports whether a profile is stored for the identity.
func (r *ProfileRepository) Exists(ctx context.Context, userID domain.UserID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.profiles[userID]
	return ok, nil
}

// Lock acquires the per-identity mutation lock.
func (r *ProfileRepository) Lock(userID domain.UserID) func() {
	r.locksMu.Lock()
	mu, ok := r.locks[userID]
	if !ok {
		mu = &sync.Mutex{}
		r.locks[userID] = mu
	}
	r.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// UserRepository is an in-memory store.UserRepository.
type UserRepository struct {
	mu         sync.RWMutex
	byID       map[string]*domain.User
	byUsername map[string]*domain.User
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:       make(map[string]*domain.User),
		byUsername: make(map[string]*domain.User),
	}
}

// Save stores a copy of the user, keyed by ID and username.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *user
	r.byID[user.ID] = &copied
	r.byUsername[user.Username] = &copied
	return nil
}

// FindByID returns the user with the given ID, or store.ErrUserNotFound.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// FindByUsername returns the user with the given username, or store.ErrUserNotFound.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byUsername[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}
