package service

import (
	"github.com/minatbaca/minatbaca-server/internal/domain"
	"github.com/minatbaca/minatbaca-server/internal/sse"
)

// EventPublisher receives domain events drained from an aggregate after its
// mutation has been persisted.
type EventPublisher interface {
	Publish(event domain.Event)
}

// SSEPublisher forwards domain events to connected SSE clients.
type SSEPublisher struct {
	manager *sse.Manager
}

// NewSSEPublisher creates a publisher backed by the SSE manager.
func NewSSEPublisher(manager *sse.Manager) *SSEPublisher {
	return &SSEPublisher{manager: manager}
}

// Publish implements EventPublisher.
func (p *SSEPublisher) Publish(event domain.Event) {
	p.manager.Emit(sse.FromDomain(event))
}

// NoopPublisher discards events.
type NoopPublisher struct{}

// Publish implements EventPublisher.
func (NoopPublisher) Publish(domain.Event) {}
