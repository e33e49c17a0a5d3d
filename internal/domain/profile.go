package domain

import (
	"time"

	domainerrors "github.com/minatbaca/minatbaca-server/internal/errors"
)

// MaxFavoriteGenres is the maximum number of favorite genres a profile may hold.
const MaxFavoriteGenres = 5

// Profile is the reading-personalization aggregate root for a single user. It owns
// the user's favorite genres, reading history, and block list, and is the only place
// those are mutated. Every mutation either fully applies and leaves all invariants
// intact, or rejects with a domain error and no state change.
//
// Invariants:
//   - at most MaxFavoriteGenres distinct genres, insertion order preserved
//   - at most one history entry per book
//   - every present rating is within [MinRating, MaxRating] (value object enforced)
//   - a rated book can never enter the block list
//
// A Profile is a plain in-memory value and is not safe for concurrent use; the
// repository serializes access per user identity.
type Profile struct {
	userID UserID

	genres       []Genre
	history      map[BookID]*HistoryEntry
	historyOrder []BookID
	blocked      map[BookID]struct{}
	blockedOrder []BookID

	events []Event

	createdAt time.Time
	updatedAt time.Time
}

// NewProfile creates an empty profile for the given user.
func NewProfile(userID UserID) *Profile {
	now := time.Now().UTC()
	return &Profile{
		userID:    userID,
		history:   make(map[BookID]*HistoryEntry),
		blocked:   make(map[BookID]struct{}),
		createdAt: now,
		updatedAt: now,
	}
}

// RehydrateProfile reconstructs a profile from persisted state. It is intended for
// repository adapters only and records no events.
func RehydrateProfile(userID UserID, genres []Genre, entries []*HistoryEntry, blocked []BookID, createdAt, updatedAt time.Time) *Profile {
	p := &Profile{
		userID:    userID,
		genres:    append([]Genre(nil), genres...),
		history:   make(map[BookID]*HistoryEntry, len(entries)),
		blocked:   make(map[BookID]struct{}, len(blocked)),
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
	for _, e := range entries {
		if _, ok := p.history[e.BookID]; ok {
			continue
		}
		p.history[e.BookID] = e.clone()
		p.historyOrder = append(p.historyOrder, e.BookID)
	}
	for _, id := range blocked {
		if _, ok := p.blocked[id]; ok {
			continue
		}
		p.blocked[id] = struct{}{}
		p.blockedOrder = append(p.blockedOrder, id)
	}
	return p
}

// UserID returns the aggregate identity.
func (p *Profile) UserID() UserID { return p.userID }

// CreatedAt returns when the profile was created.
func (p *Profile) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns when the profile was last mutated.
func (p *Profile) UpdatedAt() time.Time { return p.updatedAt }

// Genres returns the favorite genres in insertion order.
func (p *Profile) Genres() []Genre {
	return append([]Genre(nil), p.genres...)
}

// HasGenre reports whether the genre is already a favorite.
func (p *Profile) HasGenre(g Genre) bool {
	for _, existing := range p.genres {
		if existing == g {
			return true
		}
	}
	return false
}

// History returns copies of the reading history entries in insertion order.
func (p *Profile) History() []*HistoryEntry {
	entries := make([]*HistoryEntry, 0, len(p.historyOrder))
	for _, id := range p.historyOrder {
		entries = append(entries, p.history[id].clone())
	}
	return entries
}

// HistoryFor returns a copy of the entry for the given book, or nil if the book has
// no entry.
func (p *Profile) HistoryFor(bookID BookID) *HistoryEntry {
	e, ok := p.history[bookID]
	if !ok {
		return nil
	}
	return e.clone()
}

// BlockedBooks returns the blocked book IDs in insertion order.
func (p *Profile) BlockedBooks() []BookID {
	return append([]BookID(nil), p.blockedOrder...)
}

// IsBlocked reports whether the book is on the block list.
func (p *Profile) IsBlocked(bookID BookID) bool {
	_, ok := p.blocked[bookID]
	return ok
}

// AddGenre appends a favorite genre. Adding a genre that is already present is an
// idempotent no-op: it succeeds without recording an event. Returns
// ErrGenreLimitExceeded when the profile already holds MaxFavoriteGenres genres.
func (p *Profile) AddGenre(g Genre) error {
	if p.HasGenre(g) {
		return nil
	}
	if len(p.genres) >= MaxFavoriteGenres {
		return domainerrors.GenreLimitExceeded("cannot have more than 5 favorite genres")
	}
	p.genres = append(p.genres, g)
	p.record(GenreChanged{
		UserID:    p.userID,
		Genre:     g,
		Action:    GenreAdded,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// RemoveGenre removes a favorite genre. Removing an absent genre is a no-op.
func (p *Profile) RemoveGenre(g Genre) error {
	for i, existing := range p.genres {
		if existing == g {
			p.genres = append(p.genres[:i], p.genres[i+1:]...)
			p.record(GenreChanged{
				UserID:    p.userID,
				Genre:     g,
				Action:    GenreRemoved,
				Timestamp: time.Now().UTC(),
			})
			return nil
		}
	}
	return nil
}

// MarkRead records that the user read a book, without rating it. Marking a book
// that already has a history entry is a no-op; the existing entry (and any rating)
// is kept. Returns ErrBookBlocked when the book is on the block list.
func (p *Profile) MarkRead(bookID BookID) error {
	if p.IsBlocked(bookID) {
		return domainerrors.BookBlocked("cannot mark blocked book as read: " + bookID.String())
	}
	if _, ok := p.history[bookID]; ok {
		return nil
	}
	now := time.Now().UTC()
	p.history[bookID] = NewHistoryEntry(bookID, nil, now)
	p.historyOrder = append(p.historyOrder, bookID)
	p.record(BookRead{
		UserID:    p.userID,
		BookID:    bookID,
		Timestamp: now,
	})
	return nil
}

// RateBook inserts or replaces the rating for a book. The history holds exactly one
// entry per book, so rating the same book twice replaces the value rather than adding
// a second entry. Returns ErrBookBlocked when the book is on the block list.
func (p *Profile) RateBook(bookID BookID, rating Rating) error {
	if p.IsBlocked(bookID) {
		return domainerrors.BookBlocked("cannot rate blocked book: " + bookID.String())
	}

	var previous *Rating
	now := time.Now().UTC()
	if entry, ok := p.history[bookID]; ok {
		if entry.Rating != nil {
			prev := *entry.Rating
			previous = &prev
		}
		entry.SetRating(rating)
	} else {
		p.history[bookID] = NewHistoryEntry(bookID, &rating, now)
		p.historyOrder = append(p.historyOrder, bookID)
	}

	p.record(RatingGiven{
		UserID:    p.userID,
		BookID:    bookID,
		Rating:    rating,
		Previous:  previous,
		Timestamp: now,
	})
	return nil
}

// BlockBook adds a book to the block list. Blocking an already blocked book is an
// idempotent no-op without an event. Returns ErrCannotBlockActiveBook when the book
// has a rated history entry.
func (p *Profile) BlockBook(bookID BookID) error {
	if entry, ok := p.history[bookID]; ok && entry.Rated() {
		return domainerrors.CannotBlockActiveBook("cannot block active book: " + bookID.String())
	}
	if p.IsBlocked(bookID) {
		return nil
	}
	p.blocked[bookID] = struct{}{}
	p.blockedOrder = append(p.blockedOrder, bookID)
	p.record(BookBlocked{
		UserID:    p.userID,
		BookID:    bookID,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// PendingEvents returns a copy of the events recorded since the last drain.
func (p *Profile) PendingEvents() []Event {
	return append([]Event(nil), p.events...)
}

// DrainEvents returns and clears the pending events. The application layer calls
// this after a successful save; events must not be published before the state that
// produced them is durable.
func (p *Profile) DrainEvents() []Event {
	events := p.events
	p.events = nil
	return events
}

// Clone returns a deep copy of the profile. Pending events are not carried over;
// a clone handed out by a repository starts with a clean event list.
func (p *Profile) Clone() *Profile {
	c := RehydrateProfile(p.userID, p.genres, p.History(), p.blockedOrder, p.createdAt, p.updatedAt)
	return c
}

// record appends a domain event and bumps the update timestamp.
func (p *Profile) record(e Event) {
	p.events = append(p.events, e)
	p.updatedAt = e.OccurredAt()
}
