package domain

import "time"

// Outbox event types raised by a domain create.
const (
	EventTypeTokenRedeemed            = "allocation_token.redeemed"
	EventTypeBillingRecurrenceCreated = "billing_recurrence.created"
	EventTypeDomainCreatePriced       = "domain.create_priced"
)

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// TokenRedeemedEvent is emitted when a single-use token is consumed by a create.
type TokenRedeemedEvent struct {
	Token       string
	HistoryID   string
	DomainName  string
	RegistrarID string
	RedeemedAt  time.Time
}

func (e *TokenRedeemedEvent) EventType() string {
	return EventTypeTokenRedeemed
}

func (e *TokenRedeemedEvent) AggregateID() string {
	return e.Token
}

// BillingRecurrenceCreatedEvent is emitted when a create opens the autorenew recurrence.
type BillingRecurrenceCreatedEvent struct {
	RecurrenceID         string
	DomainName           string
	RegistrarID          string
	RenewalPriceBehavior string
	RenewalPrice         string `json:",omitempty"`
	CreatedAt            time.Time
}

func (e *BillingRecurrenceCreatedEvent) EventType() string {
	return EventTypeBillingRecurrenceCreated
}

func (e *BillingRecurrenceCreatedEvent) AggregateID() string {
	return e.RecurrenceID
}

// DomainCreatePricedEvent records the fee charged for a domain create.
type DomainCreatePricedEvent struct {
	HistoryID   string
	DomainName  string
	RegistrarID string
	Currency    string
	CreateCost  string
	EapCost     string
	IsPremium   bool
	Token       string `json:",omitempty"`
	PricedAt    time.Time
}

func (e *DomainCreatePricedEvent) EventType() string {
	return EventTypeDomainCreatePriced
}

func (e *DomainCreatePricedEvent) AggregateID() string {
	return e.HistoryID
}
