// Package service implements the application layer: request validation, the
// load-mutate-save cycle around the profile aggregate, and event publishing.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/minatbaca/minatbaca-server/internal/domain"
	domainerrors "github.com/minatbaca/minatbaca-server/internal/errors"
	"github.com/minatbaca/minatbaca-server/internal/store"
)

// ProfileService manages reading-personalization profiles. Every mutation runs
// under the repository's per-identity lock: load, mutate the aggregate, save,
// then publish the drained events. Events are only published after a
// successful save.
type ProfileService struct {
	profiles  store.ProfileRepository
	publisher EventPublisher
	logger    *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(profiles store.ProfileRepository, publisher EventPublisher, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		profiles:  profiles,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateProfile creates an empty profile for the user.
// Returns an AlreadyExists error if the user already has one.
func (s *ProfileService) CreateProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	uid, err := domain.NewUserID(userID)
	if err != nil {
		return nil, err
	}

	unlock := s.profiles.Lock(uid)
	defer unlock()

	exists, err := s.profiles.Exists(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("check profile exists: %w", err)
	}
	if exists {
		return nil, domainerrors.AlreadyExistsf("profile already exists for user %s", uid)
	}

	profile := domain.NewProfile(uid)
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	s.logger.Info("profile created", "user_id", uid.String())
	return profile, nil
}

// GetProfile returns the user's profile.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	uid, err := domain.NewUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, uid)
}

// GetSnapshot returns the read-model projection of the user's profile.
func (s *ProfileService) GetSnapshot(ctx context.Context, userID string) (*domain.Snapshot, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.NewSnapshot(profile), nil
}

// AddGenre appends a genre to the user's favorites. Adding a genre that is
// already present is a no-op.
func (s *ProfileService) AddGenre(ctx context.Context, userID, genreName string) (*domain.Snapshot, error) {
	genre, err := domain.NewGenre(genreName)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, userID, func(p *domain.Profile) error {
		return p.AddGenre(genre)
	})
}

// RemoveGenre removes a genre from the user's favorites. Removing an absent
// genre is a no-op.
func (s *ProfileService) RemoveGenre(ctx context.Context, userID, genreName string) (*domain.Snapshot, error) {
	genre, err := domain.NewGenre(genreName)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, userID, func(p *domain.Profile) error {
		return p.RemoveGenre(genre)
	})
}

// MarkRead records that the user has read a book, without a rating.
func (s *ProfileService) MarkRead(ctx context.Context, userID, bookID string) (*domain.Snapshot, error) {
	bid, err := domain.NewBookID(bookID)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, userID, func(p *domain.Profile) error {
		return p.MarkRead(bid)
	})
}

// RateBook records or replaces the user's rating for a book.
func (s *ProfileService) RateBook(ctx context.Context, userID, bookID string, rating int) (*domain.Snapshot, error) {
	bid, err := domain.NewBookID(bookID)
	if err != nil {
		return nil, err
	}
	r, err := domain.NewRating(rating)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, userID, func(p *domain.Profile) error {
		return p.RateBook(bid, r)
	})
}

// BlockBook adds a book to the user's block list. Blocking an already blocked
// book is a no-op; blocking a rated book fails.
func (s *ProfileService) BlockBook(ctx context.Context, userID, bookID string) (*domain.Snapshot, error) {
	bid, err := domain.NewBookID(bookID)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, userID, func(p *domain.Profile) error {
		return p.BlockBook(bid)
	})
}

// mutate runs a single load-mutate-save cycle under the per-identity lock and
// publishes the drained events after the save succeeds.
func (s *ProfileService) mutate(ctx context.Context, userID string, fn func(*domain.Profile) error) (*domain.Snapshot, error) {
	uid, err := domain.NewUserID(userID)
	if err != nil {
		return nil, err
	}

	unlock := s.profiles.Lock(uid)
	defer unlock()

	profile, err := s.load(ctx, uid)
	if err != nil {
		return nil, err
	}

	if err := fn(profile); err != nil {
		return nil, err
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	for _, event := range profile.DrainEvents() {
		s.publisher.Publish(event)
		s.logger.Debug("event published",
			"event", event.EventName(),
			"user_id", event.EventUserID().String())
	}

	return domain.NewSnapshot(profile), nil
}

func (s *ProfileService) load(ctx context.Context, uid domain.UserID) (*domain.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, uid)
	if errors.Is(err, store.ErrProfileNotFound) {
		return nil, domainerrors.NotFoundf("profile not found for user %s", uid)
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return profile, nil
}
