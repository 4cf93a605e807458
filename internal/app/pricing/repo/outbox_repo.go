package repo

import (
	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/registry-pricing-service/internal/models/m_outbox"
)

// OutboxRepo implements OutboxRepository for Spanner.
type OutboxRepo struct {
	model *m_outbox.Model
}

// NewOutboxRepo creates a new OutboxRepo.
func NewOutboxRepo() contracts.OutboxRepository {
	return &OutboxRepo{
		model: m_outbox.NewModel(),
	}
}

// StageMuts encodes events as pending outbox rows with fresh ids.
func (r *OutboxRepo) StageMuts(events []domain.DomainEvent) ([]*spanner.Mutation, error) {
	muts := make([]*spanner.Mutation, 0, len(events))
	for _, event := range events {
		staged, err := contracts.NewOutboxEvent(uuid.New().String(), event)
		if err != nil {
			return nil, err
		}
		muts = append(muts, r.model.InsertMut(&m_outbox.Data{
			EventID:     staged.EventID,
			EventType:   staged.EventType,
			AggregateID: staged.AggregateID,
			Payload:     spanner.NullJSON{Value: staged.Payload, Valid: true},
			Status:      m_outbox.StatusPending,
		}))
	}
	return muts, nil
}
