package domain

// Snapshot is the denormalized read model of a profile. It carries derived
// statistics and copies of the underlying state, and is recomputed from the
// aggregate on every read; mutating a snapshot never affects the profile.
type Snapshot struct {
	UserID        UserID          `json:"user_id"`
	Genres        []Genre         `json:"genres"`
	BooksRead     int             `json:"books_read"`
	AverageRating *float64        `json:"average_rating,omitempty"` // nil when no entry is rated
	BlockedBooks  []BookID        `json:"blocked_books"`
	History       []*HistoryEntry `json:"history"`
}

// NewSnapshot projects a profile into its read model. The average is the arithmetic
// mean over rated entries only; entries without a rating contribute to neither the
// numerator nor the denominator, and with zero rated entries the average is absent
// rather than zero.
func NewSnapshot(p *Profile) *Snapshot {
	history := p.History()

	var sum, rated int
	for _, entry := range history {
		if entry.Rated() {
			sum += entry.Rating.Int()
			rated++
		}
	}

	var average *float64
	if rated > 0 {
		avg := float64(sum) / float64(rated)
		average = &avg
	}

	return &Snapshot{
		UserID:        p.UserID(),
		Genres:        p.Genres(),
		BooksRead:     len(history),
		AverageRating: average,
		BlockedBooks:  p.BlockedBooks(),
		History:       history,
	}
}
