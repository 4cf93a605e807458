package services

import (
	"context"
	"fmt"
	"time"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
)

// PremiumPricer determines whether a name is premium and what it costs.
type PremiumPricer interface {
	DomainPrices(ctx context.Context, tld *domain.Tld, name domain.DomainName, at time.Time) (domain.DomainPrices, error)
}

// StaticPremiumListPricingEngine prices names from the TLD's premium list. Premium
// names cost the listed price for both create and renew; everything else costs the
// TLD's standard prices.
type StaticPremiumListPricingEngine struct {
	premiumLists contracts.PremiumListRepository
}

var _ PremiumPricer = (*StaticPremiumListPricingEngine)(nil)

// NewStaticPremiumListPricingEngine creates the engine.
func NewStaticPremiumListPricingEngine(premiumLists contracts.PremiumListRepository) *StaticPremiumListPricingEngine {
	return &StaticPremiumListPricingEngine{premiumLists: premiumLists}
}

// DomainPrices looks up the second-level label in the TLD's premium list.
func (e *StaticPremiumListPricingEngine) DomainPrices(
	ctx context.Context,
	tld *domain.Tld,
	name domain.DomainName,
	at time.Time,
) (domain.DomainPrices, error) {
	standard := domain.DomainPrices{
		IsPremium:  false,
		CreateCost: tld.CreateBillingCost(at),
		RenewCost:  tld.StandardRenewCost(at),
	}
	if tld.PremiumListName() == "" {
		return standard, nil
	}

	premium, err := e.premiumLists.GetPremiumPrice(ctx, tld.PremiumListName(), name.Label())
	if err != nil {
		return domain.DomainPrices{}, fmt.Errorf("failed to look up premium price for %s: %w", name, err)
	}
	if premium == nil {
		return standard, nil
	}
	if premium.Currency() != tld.Currency() {
		return domain.DomainPrices{}, fmt.Errorf("%w: premium list %s prices %s in %s, tld %s bills in %s",
			domain.ErrCurrencyMismatch, tld.PremiumListName(), name.Label(), premium.Currency(),
			tld.Name(), tld.Currency())
	}
	return domain.DomainPrices{
		IsPremium:  true,
		CreateCost: *premium,
		RenewCost:  *premium,
	}, nil
}
