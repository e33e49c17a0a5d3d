package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/minatbaca/minatbaca-server/internal/domain"
	"github.com/minatbaca/minatbaca-server/internal/store"
)

func mustGenre(t *testing.T, name string) domain.Genre {
	t.Helper()
	g, err := domain.NewGenre(name)
	if err != nil {
		t.Fatalf("NewGenre(%q): %v", name, err)
	}
	return g
}

func mustRating(t *testing.T, v int) domain.Rating {
	t.Helper()
	r, err := domain.NewRating(v)
	if err != nil {
		t.Fatalf("NewRating(%d): %v", v, err)
	}
	return r
}

func TestSaveAndFindProfile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := domain.NewProfile("user-rt-1")
	for _, name := range []string{"Fantasy", "Sci-Fi", "Mystery"} {
		if err := p.AddGenre(mustGenre(t, name)); err != nil {
			t.Fatalf("AddGenre(%s): %v", name, err)
		}
	}
	if err := p.RateBook("book-1", mustRating(t, 5)); err != nil {
		t.Fatalf("RateBook: %v", err)
	}
	if err := p.MarkRead("book-2"); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if err := p.BlockBook("book-3"); err != nil {
		t.Fatalf("BlockBook: %v", err)
	}

	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.FindByID(ctx, "user-rt-1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}

	genres := got.Genres()
	want := []domain.Genre{"Fantasy", "Sci-Fi", "Mystery"}
	if len(genres) != len(want) {
		t.Fatalf("Genres: got %d, want %d", len(genres), len(want))
	}
	for i := range want {
		if genres[i] != want[i] {
			t.Errorf("Genres[%d]: got %q, want %q", i, genres[i], want[i])
		}
	}

	history := got.History()
	if len(history) != 2 {
		t.Fatalf("History: got %d entries, want 2", len(history))
	}
	if history[0].BookID != "book-1" {
		t.Errorf("History[0].BookID: got %q, want book-1", history[0].BookID)
	}
	if history[0].Rating == nil || history[0].Rating.Int() != 5 {
		t.Errorf("History[0].Rating: got %v, want 5", history[0].Rating)
	}
	if history[1].BookID != "book-2" {
		t.Errorf("History[1].BookID: got %q, want book-2", history[1].BookID)
	}
	if history[1].Rating != nil {
		t.Errorf("History[1].Rating: got %v, want nil", history[1].Rating)
	}
	if history[0].ReadAt.IsZero() {
		t.Error("History[0].ReadAt: expected non-zero time")
	}

	blocked := got.BlockedBooks()
	if len(blocked) != 1 || blocked[0] != "book-3" {
		t.Errorf("BlockedBooks: got %v, want [book-3]", blocked)
	}

	if !got.CreatedAt().Equal(p.CreatedAt()) {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt(), p.CreatedAt())
	}
	if !got.UpdatedAt().Equal(p.UpdatedAt()) {
		t.Errorf("UpdatedAt: got %v, want %v", got.UpdatedAt(), p.UpdatedAt())
	}
}

func TestFindProfileNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.FindByID(context.Background(), "missing")
	if !errors.Is(err, store.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestProfileExists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	exists, err := s.Exists(ctx, "user-ex-1")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Error("expected profile to not exist")
	}

	if err := s.Save(ctx, domain.NewProfile("user-ex-1")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	exists, err = s.Exists(ctx, "user-ex-1")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Error("expected profile to exist")
	}
}

func TestSaveProfileOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := domain.NewProfile("user-ow-1")
	if err := p.AddGenre(mustGenre(t, "Fantasy")); err != nil {
		t.Fatalf("AddGenre: %v", err)
	}
	if err := p.RateBook("book-1", mustRating(t, 3)); err != nil {
		t.Fatalf("RateBook: %v", err)
	}
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Mutate and save again: the stored state must match the latest aggregate.
	if err := p.RemoveGenre(mustGenre(t, "Fantasy")); err != nil {
		t.Fatalf("RemoveGenre: %v", err)
	}
	if err := p.AddGenre(mustGenre(t, "Horror")); err != nil {
		t.Fatalf("AddGenre: %v", err)
	}
	if err := p.RateBook("book-1", mustRating(t, 4)); err != nil {
		t.Fatalf("RateBook: %v", err)
	}
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("re-Save: %v", err)
	}

	got, err := s.FindByID(ctx, "user-ow-1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	genres := got.Genres()
	if len(genres) != 1 || genres[0] != "Horror" {
		t.Errorf("Genres: got %v, want [Horror]", genres)
	}
	entry := got.HistoryFor("book-1")
	if entry == nil || entry.Rating == nil || entry.Rating.Int() != 4 {
		t.Errorf("History book-1: got %v, want rating 4", entry)
	}
}

func TestRehydratedProfileEnforcesRules(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := domain.NewProfile("user-rule-1")
	if err := p.RateBook("book-1", mustRating(t, 5)); err != nil {
		t.Fatalf("RateBook: %v", err)
	}
	if err := p.BlockBook("book-2"); err != nil {
		t.Fatalf("BlockBook: %v", err)
	}
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.FindByID(ctx, "user-rule-1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}

	// Invariants follow the state across the round trip.
	if err := got.BlockBook("book-1"); err == nil {
		t.Error("expected blocking a rated book to fail after reload")
	}
	if err := got.RateBook("book-2", mustRating(t, 3)); err == nil {
		t.Error("expected rating a blocked book to fail after reload")
	}
}
