package domain

import (
	"fmt"
	"time"
)

// TldConfig holds the registry-operator supplied pricing configuration of a TLD.
type TldConfig struct {
	Name               string
	Currency           CurrencyUnit
	CreateCost         *TimedTransitions[Money] // nil falls back to the renew cost schedule
	RenewCost          TimedTransitions[Money]
	EapFee             *TimedTransitions[Money] // nil means no EAP fee
	RestoreCost        Money
	PremiumListName    string
	DefaultPromoTokens []string
}

// Tld is the read-only pricing view of a top-level domain.
type Tld struct {
	name               string
	currency           CurrencyUnit
	createCost         *TimedTransitions[Money]
	renewCost          TimedTransitions[Money]
	eapFee             TimedTransitions[Money]
	restoreCost        Money
	premiumListName    string
	defaultPromoTokens []string
}

// NewTld validates a configuration and returns the TLD.
// All configured amounts must share the TLD currency.
func NewTld(cfg TldConfig) (*Tld, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidTld)
	}
	if cfg.Currency.IsZero() {
		return nil, fmt.Errorf("%w: %s: currency is required", ErrInvalidTld, cfg.Name)
	}
	if cfg.RenewCost.IsEmpty() {
		return nil, fmt.Errorf("%w: %s: renew cost schedule is required", ErrInvalidTld, cfg.Name)
	}

	eapFee := ConstantTransitions(ZeroIn(cfg.Currency))
	if cfg.EapFee != nil {
		eapFee = *cfg.EapFee
	}

	schedules := map[string]TimedTransitions[Money]{"renew": cfg.RenewCost, "eap": eapFee}
	if cfg.CreateCost != nil {
		schedules["create"] = *cfg.CreateCost
	}
	for name, schedule := range schedules {
		for _, entry := range schedule.Entries() {
			if entry.Value.Currency() != cfg.Currency {
				return nil, fmt.Errorf("%w: %s: %s cost at %s is in %s, expected %s",
					ErrInvalidTld, cfg.Name, name, entry.At.Format(time.RFC3339),
					entry.Value.Currency(), cfg.Currency)
			}
		}
	}

	restore := cfg.RestoreCost
	if restore.Currency().IsZero() {
		restore = ZeroIn(cfg.Currency)
	}
	if restore.Currency() != cfg.Currency {
		return nil, fmt.Errorf("%w: %s: restore cost is in %s, expected %s",
			ErrInvalidTld, cfg.Name, restore.Currency(), cfg.Currency)
	}

	promos := make([]string, len(cfg.DefaultPromoTokens))
	copy(promos, cfg.DefaultPromoTokens)

	return &Tld{
		name:               cfg.Name,
		currency:           cfg.Currency,
		createCost:         cfg.CreateCost,
		renewCost:          cfg.RenewCost,
		eapFee:             eapFee,
		restoreCost:        restore,
		premiumListName:    cfg.PremiumListName,
		defaultPromoTokens: promos,
	}, nil
}

// Name returns the TLD string, e.g. "example".
func (t *Tld) Name() string {
	return t.name
}

// Currency returns the billing currency.
func (t *Tld) Currency() CurrencyUnit {
	return t.currency
}

// CreateBillingCost returns the standard (non-premium) create cost at the given time.
func (t *Tld) CreateBillingCost(at time.Time) Money {
	if t.createCost == nil {
		return t.renewCost.ValueAt(at)
	}
	return t.createCost.ValueAt(at)
}

// StandardRenewCost returns the standard (non-premium) renew cost at the given time.
func (t *Tld) StandardRenewCost(at time.Time) Money {
	return t.renewCost.ValueAt(at)
}

// EapFeeFor returns the EAP fee line item in effect at the given time.
func (t *Tld) EapFeeFor(at time.Time) Fee {
	return NewFee(t.eapFee.ValueAt(at).Amount(), FeeTypeEap, false)
}

// RestoreBillingCost returns the flat restore fee.
func (t *Tld) RestoreBillingCost() Money {
	return t.restoreCost
}

// PremiumListName returns the name of the premium list, empty if none.
func (t *Tld) PremiumListName() string {
	return t.premiumListName
}

// DefaultPromoTokens returns the ordered default-promotion token strings.
func (t *Tld) DefaultPromoTokens() []string {
	out := make([]string, len(t.defaultPromoTokens))
	copy(out, t.defaultPromoTokens)
	return out
}

// Config returns the configuration the TLD was built from.
func (t *Tld) Config() TldConfig {
	eap := t.eapFee
	return TldConfig{
		Name:               t.name,
		Currency:           t.currency,
		CreateCost:         t.createCost,
		RenewCost:          t.renewCost,
		EapFee:             &eap,
		RestoreCost:        t.restoreCost,
		PremiumListName:    t.premiumListName,
		DefaultPromoTokens: t.DefaultPromoTokens(),
	}
}
