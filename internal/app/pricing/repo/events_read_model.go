package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/registry-pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/registry-pricing-service/internal/pkg/query"
)

// EventsReadModel implements list_events.EventsReadModel for Spanner.
type EventsReadModel struct {
	client *spanner.Client
}

// NewEventsReadModel creates a new EventsReadModel.
func NewEventsReadModel(client *spanner.Client) *EventsReadModel {
	return &EventsReadModel{
		client: client,
	}
}

// ListEvents returns the newest outbox events matching the request filters.
func (r *EventsReadModel) ListEvents(ctx context.Context, req *list_events.Request) ([]*m_outbox.Data, error) {
	stmt := EventsStatement(req)

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var events []*m_outbox.Data
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate events: %w", err)
		}

		var event m_outbox.Data
		if err := row.ToStruct(&event); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, &event)
	}

	return events, nil
}

// EventsStatement builds the outbox listing query.
func EventsStatement(req *list_events.Request) spanner.Statement {
	b := query.From(m_outbox.TableName).Select(m_outbox.Columns...)
	if req.EventType != nil {
		b = b.Where(query.Eq(m_outbox.EventType, *req.EventType))
	}
	if req.AggregateID != nil {
		b = b.Where(query.Eq(m_outbox.AggregateID, *req.AggregateID))
	}
	if req.Status != nil {
		b = b.Where(query.Eq(m_outbox.Status, *req.Status))
	}
	return b.OrderBy(m_outbox.CreatedAt, query.Desc).Limit(req.Limit).Build()
}
