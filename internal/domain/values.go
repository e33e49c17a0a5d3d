// Package domain contains the reading-personalization domain model: value objects,
// the profile aggregate, domain events, and the snapshot read model.
package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	domainerrors "github.com/minatbaca/minatbaca-server/internal/errors"
)

// UserID identifies a user. Opaque, non-empty, compared by value.
type UserID string

// NewUserID validates and constructs a UserID.
func NewUserID(value string) (UserID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domainerrors.Validation("user id cannot be empty")
	}
	return UserID(value), nil
}

// String returns the raw identifier.
func (id UserID) String() string { return string(id) }

// BookID identifies a book. Opaque, non-empty, compared by value.
type BookID string

// NewBookID validates and constructs a BookID.
func NewBookID(value string) (BookID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domainerrors.Validation("book id cannot be empty")
	}
	return BookID(value), nil
}

// String returns the raw identifier.
func (id BookID) String() string { return string(id) }

// Genre is a favorite-genre label. Labels are trimmed and NFC-normalized so that
// visually identical labels compare equal; case is preserved.
type Genre string

// NewGenre validates and constructs a Genre.
func NewGenre(name string) (Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerrors.InvalidGenre("genre name cannot be empty")
	}
	return Genre(norm.NFC.String(name)), nil
}

// String returns the genre label.
func (g Genre) String() string { return string(g) }

// Rating bounds. Ratings are integer stars.
const (
	MinRating = 1
	MaxRating = 5
)

// Rating is a book rating in [MinRating, MaxRating].
type Rating int

// NewRating validates and constructs a Rating.
func NewRating(value int) (Rating, error) {
	if value < MinRating || value > MaxRating {
		return 0, domainerrors.InvalidRating("rating must be between 1 and 5")
	}
	return Rating(value), nil
}

// Int returns the rating as a plain int.
func (r Rating) Int() int { return int(r) }
