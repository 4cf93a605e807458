package services

import (
	"context"
	"time"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
)

// PriceParameters is the context handed to a price customizer along with the
// computed breakdown. Years is zero for operations without a term.
type PriceParameters struct {
	FeesAndCredits *domain.FeesAndCredits
	Tld            *domain.Tld
	DomainName     domain.DomainName
	AsOfDate       time.Time
	Years          int
}

// CreatePriceCustomizer adjusts create prices.
type CreatePriceCustomizer interface {
	CustomizeCreatePrice(ctx context.Context, params PriceParameters) (*domain.FeesAndCredits, error)
}

// RenewPriceCustomizer adjusts renew prices.
type RenewPriceCustomizer interface {
	CustomizeRenewPrice(ctx context.Context, params PriceParameters) (*domain.FeesAndCredits, error)
}

// RestorePriceCustomizer adjusts restore prices.
type RestorePriceCustomizer interface {
	CustomizeRestorePrice(ctx context.Context, params PriceParameters) (*domain.FeesAndCredits, error)
}

// TransferPriceCustomizer adjusts transfer prices.
type TransferPriceCustomizer interface {
	CustomizeTransferPrice(ctx context.Context, params PriceParameters) (*domain.FeesAndCredits, error)
}

// UpdatePriceCustomizer adjusts update prices.
type UpdatePriceCustomizer interface {
	CustomizeUpdatePrice(ctx context.Context, params PriceParameters) (*domain.FeesAndCredits, error)
}

// CustomLogic groups the per-operation customizers of a deployment.
// Nil fields fall back to pass-through behavior.
type CustomLogic struct {
	Create   CreatePriceCustomizer
	Renew    RenewPriceCustomizer
	Restore  RestorePriceCustomizer
	Transfer TransferPriceCustomizer
	Update   UpdatePriceCustomizer
}

// DefaultCustomLogic returns customizers that leave every price unchanged.
func DefaultCustomLogic() CustomLogic {
	p := PassThroughPricing{}
	return CustomLogic{Create: p, Renew: p, Restore: p, Transfer: p, Update: p}
}

func (c CustomLogic) withDefaults() CustomLogic {
	p := PassThroughPricing{}
	if c.Create == nil {
		c.Create = p
	}
	if c.Renew == nil {
		c.Renew = p
	}
	if c.Restore == nil {
		c.Restore = p
	}
	if c.Transfer == nil {
		c.Transfer = p
	}
	if c.Update == nil {
		c.Update = p
	}
	return c
}

// PassThroughPricing implements every customizer by returning the input breakdown.
type PassThroughPricing struct{}

func (PassThroughPricing) CustomizeCreatePrice(_ context.Context, p PriceParameters) (*domain.FeesAndCredits, error) {
	return p.FeesAndCredits, nil
}

func (PassThroughPricing) CustomizeRenewPrice(_ context.Context, p PriceParameters) (*domain.FeesAndCredits, error) {
	return p.FeesAndCredits, nil
}

func (PassThroughPricing) CustomizeRestorePrice(_ context.Context, p PriceParameters) (*domain.FeesAndCredits, error) {
	return p.FeesAndCredits, nil
}

func (PassThroughPricing) CustomizeTransferPrice(_ context.Context, p PriceParameters) (*domain.FeesAndCredits, error) {
	return p.FeesAndCredits, nil
}

func (PassThroughPricing) CustomizeUpdatePrice(_ context.Context, p PriceParameters) (*domain.FeesAndCredits, error) {
	return p.FeesAndCredits, nil
}
