package domain

import (
	"fmt"
	"time"
)

// BillingRecurrence is the ongoing autorenew billing event of a registered domain.
type BillingRecurrence struct {
	id                   string
	domainName           string
	registrarID          string
	renewalPriceBehavior RenewalPriceBehavior
	renewalPrice         *Money
	eventTime            time.Time
	recurrenceEndTime    time.Time
}

// BillingRecurrenceParams carries the attributes of a recurrence.
type BillingRecurrenceParams struct {
	ID                   string
	DomainName           string
	RegistrarID          string
	RenewalPriceBehavior RenewalPriceBehavior
	RenewalPrice         *Money
	EventTime            time.Time
	RecurrenceEndTime    time.Time
}

// EndOfTime marks an open-ended recurrence.
var EndOfTime = time.Date(294276, time.December, 31, 23, 59, 59, 0, time.UTC)

// NewBillingRecurrence validates params and returns the recurrence.
func NewBillingRecurrence(p BillingRecurrenceParams) (*BillingRecurrence, error) {
	if p.RenewalPriceBehavior == "" {
		p.RenewalPriceBehavior = RenewalPriceBehaviorDefault
	}
	switch p.RenewalPriceBehavior {
	case RenewalPriceBehaviorDefault, RenewalPriceBehaviorNonpremium:
		if p.RenewalPrice != nil {
			return nil, fmt.Errorf("renewal price requires SPECIFIED renewal behavior, got %s", p.RenewalPriceBehavior)
		}
	case RenewalPriceBehaviorSpecified:
		if p.RenewalPrice == nil {
			return nil, ErrMissingRenewalPrice
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenewalPriceBehavior, p.RenewalPriceBehavior)
	}
	if p.RecurrenceEndTime.IsZero() {
		p.RecurrenceEndTime = EndOfTime
	}
	return &BillingRecurrence{
		id:                   p.ID,
		domainName:           p.DomainName,
		registrarID:          p.RegistrarID,
		renewalPriceBehavior: p.RenewalPriceBehavior,
		renewalPrice:         p.RenewalPrice,
		eventTime:            p.EventTime,
		recurrenceEndTime:    p.RecurrenceEndTime,
	}, nil
}

func (r *BillingRecurrence) ID() string          { return r.id }
func (r *BillingRecurrence) DomainName() string  { return r.domainName }
func (r *BillingRecurrence) RegistrarID() string { return r.registrarID }

// RenewalPriceBehavior returns how renewals are priced.
func (r *BillingRecurrence) RenewalPriceBehavior() RenewalPriceBehavior {
	return r.renewalPriceBehavior
}

// RenewalPrice returns the per-year price captured at creation when SPECIFIED.
func (r *BillingRecurrence) RenewalPrice() (Money, bool) {
	if r.renewalPrice == nil {
		return Money{}, false
	}
	return *r.renewalPrice, true
}

func (r *BillingRecurrence) EventTime() time.Time         { return r.eventTime }
func (r *BillingRecurrence) RecurrenceEndTime() time.Time { return r.recurrenceEndTime }
