package list_events

import (
	"context"

	"github.com/light-bringer/registry-pricing-service/internal/models/m_outbox"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Request contains filtering parameters for listing outbox events.
type Request struct {
	EventType   *string // e.g. "allocation_token.redeemed"
	AggregateID *string
	Status      *string // pending, processing, completed, failed
	Limit       int64
}

// EventsReadModel defines the interface for reading outbox events.
type EventsReadModel interface {
	ListEvents(ctx context.Context, req *Request) ([]*m_outbox.Data, error)
}

// Query handles the list events query use case.
type Query struct {
	readModel EventsReadModel
}

// NewQuery creates a new list events query.
func NewQuery(readModel EventsReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute lists the newest events matching the filters.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*m_outbox.Data, error) {
	if req.Limit <= 0 {
		req.Limit = defaultLimit
	}
	if req.Limit > maxLimit {
		req.Limit = maxLimit
	}
	return q.readModel.ListEvents(ctx, req)
}
