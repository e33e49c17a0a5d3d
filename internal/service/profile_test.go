package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minatbaca/minatbaca-server/internal/domain"
	domainerrors "github.com/minatbaca/minatbaca-server/internal/errors"
	"github.com/minatbaca/minatbaca-server/internal/store"
	"github.com/minatbaca/minatbaca-server/internal/store/memory"
)

// capturePublisher records published events for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *capturePublisher) Publish(e domain.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *capturePublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, len(p.events))
	for i, e := range p.events {
		names[i] = e.EventName()
	}
	return names
}

func newTestProfileService(t *testing.T) (*ProfileService, *capturePublisher) {
	t.Helper()
	publisher := &capturePublisher{}
	logger := slog.New(slog.DiscardHandler)
	return NewProfileService(memory.NewProfileRepository(), publisher, logger), publisher
}

func TestCreateProfile(t *testing.T) {
	svc, _ := newTestProfileService(t)
	ctx := context.Background()

	profile, err := svc.CreateProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("user-1"), profile.UserID())

	_, err = svc.CreateProfile(ctx, "user-1")
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestCreateProfileRejectsEmptyUserID(t *testing.T) {
	svc, _ := newTestProfileService(t)

	_, err := svc.CreateProfile(context.Background(), "  ")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestGetProfileNotFound(t *testing.T) {
	svc, _ := newTestProfileService(t)

	_, err := svc.GetProfile(context.Background(), "nobody")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAddGenrePublishesEvent(t *testing.T) {
	svc, publisher := newTestProfileService(t)
	ctx := context.Background()

	_, err := svc.CreateProfile(ctx, "user-1")
	require.NoError(t, err)

	snap, err := svc.AddGenre(ctx, "user-1", "Fantasy")
	require.NoError(t, err)
	assert.Equal(t, []domain.Genre{"Fantasy"}, snap.Genres)
	assert.Equal(t, []string{"profile.genre_changed"}, publisher.names())

	// Duplicate add is a no-op and publishes nothing.
	snap, err = svc.AddGenre(ctx, "user-1", "Fantasy")
	require.NoError(t, err)
	assert.Equal(t, []domain.Genre{"Fantasy"}, snap.Genres)
	assert.Len(t, publisher.names(), 1)
}

func TestRateAndBlockFlow(t *testing.T) {
	svc, publisher := newTestProfileService(t)
	ctx := context.Background()

	_, err := svc.CreateProfile(ctx, "user-1")
	require.NoError(t, err)

	snap, err := svc.RateBook(ctx, "user-1", "book-1", 5)
	require.NoError(t, err)
	require.NotNil(t, snap.AverageRating)
	assert.InDelta(t, 5.0, *snap.AverageRating, 0.001)

	snap, err = svc.MarkRead(ctx, "user-1", "book-2")
	require.NoError(t, err)
	assert.Equal(t, 2, snap.BooksRead)
	require.NotNil(t, snap.AverageRating)
	assert.InDelta(t, 5.0, *snap.AverageRating, 0.001)

	snap, err = svc.BlockBook(ctx, "user-1", "book-3")
	require.NoError(t, err)
	assert.Equal(t, []domain.BookID{"book-3"}, snap.BlockedBooks)

	_, err = svc.RateBook(ctx, "user-1", "book-3", 4)
	assert.ErrorIs(t, err, domainerrors.ErrBookBlocked)

	_, err = svc.BlockBook(ctx, "user-1", "book-1")
	assert.ErrorIs(t, err, domainerrors.ErrCannotBlockActiveBook)

	assert.Equal(t, []string{
		"profile.rating_given",
		"profile.book_read",
		"profile.book_blocked",
	}, publisher.names())
}

func TestRateBookRejectsInvalidRating(t *testing.T) {
	svc, _ := newTestProfileService(t)
	ctx := context.Background()

	_, err := svc.CreateProfile(ctx, "user-1")
	require.NoError(t, err)

	for _, v := range []int{0, -1, 6} {
		_, err := svc.RateBook(ctx, "user-1", "book-1", v)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidRating, "rating %d", v)
	}
}

func TestRemoveGenre(t *testing.T) {
	svc, publisher := newTestProfileService(t)
	ctx := context.Background()

	_, err := svc.CreateProfile(ctx, "user-1")
	require.NoError(t, err)

	_, err = svc.AddGenre(ctx, "user-1", "Fantasy")
	require.NoError(t, err)

	snap, err := svc.RemoveGenre(ctx, "user-1", "Fantasy")
	require.NoError(t, err)
	assert.Empty(t, snap.Genres)

	// Removing an absent genre is a no-op.
	snap, err = svc.RemoveGenre(ctx, "user-1", "Fantasy")
	require.NoError(t, err)
	assert.Empty(t, snap.Genres)

	assert.Equal(t, []string{"profile.genre_changed", "profile.genre_changed"}, publisher.names())
}

// failingRepo wraps the in-memory repository and fails every Save after the
// profile was seeded.
type failingRepo struct {
	store.ProfileRepository
	failSaves bool
}

func (r *failingRepo) Save(ctx context.Context, p *domain.Profile) error {
	if r.failSaves {
		return errors.New("disk full")
	}
	return r.ProfileRepository.Save(ctx, p)
}

func TestNoEventsPublishedWhenSaveFails(t *testing.T) {
	repo := &failingRepo{ProfileRepository: memory.NewProfileRepository()}
	publisher := &capturePublisher{}
	svc := NewProfileService(repo, publisher, slog.New(slog.DiscardHandler))
	ctx := context.Background()

	_, err := svc.CreateProfile(ctx, "user-1")
	require.NoError(t, err)

	repo.failSaves = true
	_, err = svc.AddGenre(ctx, "user-1", "Fantasy")
	require.Error(t, err)
	assert.Empty(t, publisher.names())
}

func TestConcurrentGenreAddsNeverExceedLimit(t *testing.T) {
	svc, _ := newTestProfileService(t)
	ctx := context.Background()

	_, err := svc.CreateProfile(ctx, "user-1")
	require.NoError(t, err)
	for _, name := range []string{"Fantasy", "Horror", "Sci-Fi", "Mystery"} {
		_, err := svc.AddGenre(ctx, "user-1", name)
		require.NoError(t, err)
	}

	// Two concurrent adds onto a profile with 4 genres: exactly one succeeds.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, name := range []string{"Romance", "Thriller"} {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			_, errs[i] = svc.AddGenre(ctx, "user-1", name)
		}(i, name)
	}
	wg.Wait()

	var failures int
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, domainerrors.ErrGenreLimitExceeded)
			failures++
		}
	}
	assert.Equal(t, 1, failures)

	snap, err := svc.GetSnapshot(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, snap.Genres, domain.MaxFavoriteGenres)
}
