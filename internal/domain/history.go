package domain

import "time"

// HistoryEntry records that a user has read (and possibly rated) a book.
// Identity is the (profile, book) pair: a profile holds at most one entry per book,
// so re-rating a book updates the existing entry instead of appending a second one.
type HistoryEntry struct {
	BookID BookID    `json:"book_id"`
	Rating *Rating   `json:"rating,omitempty"` // nil when read but not rated
	ReadAt time.Time `json:"read_at"`
}

// NewHistoryEntry creates an entry for a book read at the given time.
func NewHistoryEntry(bookID BookID, rating *Rating, readAt time.Time) *HistoryEntry {
	return &HistoryEntry{
		BookID: bookID,
		Rating: rating,
		ReadAt: readAt,
	}
}

// Rated reports whether the entry carries a rating.
func (e *HistoryEntry) Rated() bool {
	return e.Rating != nil
}

// SetRating replaces the entry's rating.
func (e *HistoryEntry) SetRating(r Rating) {
	e.Rating = &r
}

// clone returns an independent copy of the entry.
func (e *HistoryEntry) clone() *HistoryEntry {
	c := *e
	if e.Rating != nil {
		r := *e.Rating
		c.Rating = &r
	}
	return &c
}
