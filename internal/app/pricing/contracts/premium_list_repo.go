package contracts

import (
	"context"

	"cloud.google.com/go/spanner"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
)

//go:generate mockgen -destination=mocks/mock_premium_list_repo.go -package=mocks . PremiumListRepository

// PremiumListRepository looks up premium prices by list name and second-level label.
type PremiumListRepository interface {
	// GetPremiumPrice returns the premium price of label, or nil if the label is not premium.
	GetPremiumPrice(ctx context.Context, listName, label string) (*domain.Money, error)

	// InsertEntryMut creates a mutation that stores one premium list entry.
	InsertEntryMut(listName, label string, price domain.Money) *spanner.Mutation
}
