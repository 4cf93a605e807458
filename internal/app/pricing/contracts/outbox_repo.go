package contracts

import (
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
)

// OutboxEvent is a pricing event staged in outbox_events by a domain create.
//
// EventType is one of the domain.EventType constants. AggregateID names what the
// event is about: the token string for a redemption, the recurrence id for a new
// recurrence and the history id for a priced create.
type OutboxEvent struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string // JSON encoding of the domain event
	Status      string
}

// NewOutboxEvent encodes event under id. Status is left for the repository to set.
func NewOutboxEvent(id string, event domain.DomainEvent) (*OutboxEvent, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %w", event.EventType(), err)
	}
	return &OutboxEvent{
		EventID:     id,
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     string(payload),
	}, nil
}

// OutboxRepository stages the events of a domain create so they land in the same
// commit as the token redemption and the billing recurrence.
type OutboxRepository interface {
	// StageMuts returns one pending outbox insert per event, in order.
	StageMuts(events []domain.DomainEvent) ([]*spanner.Mutation, error)
}
