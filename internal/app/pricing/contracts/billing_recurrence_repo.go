package contracts

import (
	"context"

	"cloud.google.com/go/spanner"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
)

// BillingRecurrenceRepository defines the interface for autorenew recurrence persistence.
type BillingRecurrenceRepository interface {
	// GetByDomainName loads the open recurrence of a domain, returning
	// domain.ErrBillingRecurrenceNotFound when the domain has none.
	GetByDomainName(ctx context.Context, domainName string) (*domain.BillingRecurrence, error)

	// InsertMut creates a mutation that stores a new recurrence.
	InsertMut(recurrence *domain.BillingRecurrence) (*spanner.Mutation, error)
}
