package contracts

import (
	"context"

	"cloud.google.com/go/spanner"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
)

// TldRepository defines the interface for TLD pricing configuration persistence.
type TldRepository interface {
	// GetByName loads a TLD, returning domain.ErrTldNotFound when absent.
	GetByName(ctx context.Context, name string) (*domain.Tld, error)

	// InsertMut creates a mutation that stores the TLD configuration.
	InsertMut(tld *domain.Tld) (*spanner.Mutation, error)
}
