// Package sse implements Server-Sent Events for pushing profile changes to
// connected clients.
package sse

import (
	"time"

	"github.com/minatbaca/minatbaca-server/internal/domain"
)

// EventType represents the type of SSE event.
type EventType string

const (
	// EventGenreChanged represents a favorite-genre addition or removal.
	EventGenreChanged EventType = "profile.genre_changed"
	// EventRatingGiven represents a new or replaced book rating.
	EventRatingGiven EventType = "profile.rating_given"
	// EventBookRead represents a book marked as read.
	EventBookRead EventType = "profile.book_read"
	// EventBookBlocked represents a book added to the block list.
	EventBookBlocked EventType = "profile.book_blocked"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`

	// UserID filters delivery to clients of that user. Empty string means
	// broadcast to all connected clients (heartbeats only).
	UserID string `json:"-"`
}

// FromDomain converts a drained domain event into its SSE representation.
// The domain event itself is the payload; its json tags define the wire shape.
func FromDomain(e domain.Event) Event {
	return Event{
		Type:      EventType(e.EventName()),
		Timestamp: e.OccurredAt(),
		Data:      e,
		UserID:    e.EventUserID().String(),
	}
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	now := time.Now()
	return Event{
		Type:      EventHeartbeat,
		Timestamp: now,
		Data:      HeartbeatEventData{ServerTime: now},
	}
}
