package domain

import "time"

// Event is a domain event recorded by the profile aggregate as a side effect of a
// successful mutation. Events stay pending on the aggregate until the mutation that
// produced them has been persisted; the application layer then drains and publishes
// them.
type Event interface {
	// EventName returns the stable wire name of the event.
	EventName() string
	// EventUserID returns the profile the event belongs to.
	EventUserID() UserID
	// OccurredAt returns when the event was recorded.
	OccurredAt() time.Time
}

// GenreAction describes how a favorite genre changed.
type GenreAction string

const (
	// GenreAdded indicates a genre was appended to the favorites.
	GenreAdded GenreAction = "added"
	// GenreRemoved indicates a genre was removed from the favorites.
	GenreRemoved GenreAction = "removed"
)

// GenreChanged is emitted when a favorite genre is added or removed.
type GenreChanged struct {
	UserID    UserID      `json:"user_id"`
	Genre     Genre       `json:"genre"`
	Action    GenreAction `json:"action"`
	Timestamp time.Time   `json:"timestamp"`
}

// EventName implements Event.
func (e GenreChanged) EventName() string { return "profile.genre_changed" }

// EventUserID implements Event.
func (e GenreChanged) EventUserID() UserID { return e.UserID }

// OccurredAt implements Event.
func (e GenreChanged) OccurredAt() time.Time { return e.Timestamp }

// RatingGiven is emitted when a book is rated. Previous carries the replaced rating
// when the book had already been rated, nil on first rating.
type RatingGiven struct {
	UserID    UserID    `json:"user_id"`
	BookID    BookID    `json:"book_id"`
	Rating    Rating    `json:"rating"`
	Previous  *Rating   `json:"previous,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EventName implements Event.
func (e RatingGiven) EventName() string { return "profile.rating_given" }

// EventUserID implements Event.
func (e RatingGiven) EventUserID() UserID { return e.UserID }

// OccurredAt implements Event.
func (e RatingGiven) OccurredAt() time.Time { return e.Timestamp }

// BookRead is emitted when a book is first marked as read without a rating.
type BookRead struct {
	UserID    UserID    `json:"user_id"`
	BookID    BookID    `json:"book_id"`
	Timestamp time.Time `json:"timestamp"`
}

// EventName implements Event.
func (e BookRead) EventName() string { return "profile.book_read" }

// EventUserID implements Event.
func (e BookRead) EventUserID() UserID { return e.UserID }

// OccurredAt implements Event.
func (e BookRead) OccurredAt() time.Time { return e.Timestamp }

// BookBlocked is emitted when a book is added to the block list.
type BookBlocked struct {
	UserID    UserID    `json:"user_id"`
	BookID    BookID    `json:"book_id"`
	Timestamp time.Time `json:"timestamp"`
}

// EventName implements Event.
func (e BookBlocked) EventName() string { return "profile.book_blocked" }

// EventUserID implements Event.
func (e BookBlocked) EventUserID() UserID { return e.UserID }

// OccurredAt implements Event.
func (e BookBlocked) OccurredAt() time.Time { return e.Timestamp }
