package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TokenType controls how many times a token can be used.
type TokenType string

const (
	TokenTypeSingleUse    TokenType = "SINGLE_USE"
	TokenTypeUnlimitedUse TokenType = "UNLIMITED_USE"
	TokenTypeDefaultPromo TokenType = "DEFAULT_PROMO"
)

// IsOneTimeUse reports whether a token of this type is consumed on redemption.
func (t TokenType) IsOneTimeUse() bool {
	return t == TokenTypeSingleUse
}

// TokenStatus is the promotion state of a token at an instant.
type TokenStatus string

const (
	TokenStatusNotStarted TokenStatus = "NOT_STARTED"
	TokenStatusValid      TokenStatus = "VALID"
	TokenStatusEnded      TokenStatus = "ENDED"
	TokenStatusCancelled  TokenStatus = "CANCELLED"
)

// TokenBehavior selects special token semantics.
type TokenBehavior string

const (
	TokenBehaviorDefault           TokenBehavior = "DEFAULT"
	TokenBehaviorRemoveBulkPricing TokenBehavior = "REMOVE_BULK_PRICING"
)

// RegistrationBehavior alters how the create is priced.
type RegistrationBehavior string

const (
	RegistrationBehaviorDefault          RegistrationBehavior = "DEFAULT"
	RegistrationBehaviorAnchorTenant     RegistrationBehavior = "ANCHOR_TENANT"
	RegistrationBehaviorNonpremiumCreate RegistrationBehavior = "NONPREMIUM_CREATE"
)

// RenewalPriceBehavior determines how renewals of a domain are priced.
type RenewalPriceBehavior string

const (
	RenewalPriceBehaviorDefault    RenewalPriceBehavior = "DEFAULT"
	RenewalPriceBehaviorSpecified  RenewalPriceBehavior = "SPECIFIED"
	RenewalPriceBehaviorNonpremium RenewalPriceBehavior = "NONPREMIUM"
)

// CommandName is an EPP domain command a token can be restricted to.
type CommandName string

const (
	CommandCreate   CommandName = "CREATE"
	CommandRenew    CommandName = "RENEW"
	CommandRestore  CommandName = "RESTORE"
	CommandTransfer CommandName = "TRANSFER"
	CommandUpdate   CommandName = "UPDATE"
)

// ParseCommandName accepts upper or lower case command names.
func ParseCommandName(s string) (CommandName, error) {
	switch c := CommandName(strings.ToUpper(s)); c {
	case CommandCreate, CommandRenew, CommandRestore, CommandTransfer, CommandUpdate:
		return c, nil
	default:
		return "", fmt.Errorf("unknown command %q", s)
	}
}

// Discount is either a FractionDiscount or a FixedPriceDiscount.
type Discount interface {
	isDiscount()
	// IsSet reports whether the discount changes any price.
	IsSet() bool
}

// FractionDiscount takes a fraction (0.0 to 1.0) off the discounted years.
type FractionDiscount struct {
	Fraction decimal.Decimal
}

func (FractionDiscount) isDiscount() {}

func (d FractionDiscount) IsSet() bool {
	return !d.Fraction.IsZero()
}

// FixedPriceDiscount prices every discounted year at Price.
type FixedPriceDiscount struct {
	Price Money
}

func (FixedPriceDiscount) isDiscount() {}

func (FixedPriceDiscount) IsSet() bool {
	return true
}

// AllocationTokenParams carries the attributes of a token at construction time.
type AllocationTokenParams struct {
	Token                string
	TokenType            TokenType
	TokenBehavior        TokenBehavior
	RedemptionHistoryID  string
	DomainName           string
	AllowedRegistrarIDs  []string
	AllowedTlds          []string
	AllowedEppActions    []CommandName
	Discount             Discount
	DiscountYears        int
	DiscountPremiums     bool
	RegistrationBehavior RegistrationBehavior
	RenewalPriceBehavior RenewalPriceBehavior
	RenewalPrice         *Money
	StatusTransitions    TimedTransitions[TokenStatus]
	Version              int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// AllocationToken is a promotional or single-use discount code.
type AllocationToken struct {
	p AllocationTokenParams
}

const maxDiscountYears = 10

// NewAllocationToken validates params and returns the token.
func NewAllocationToken(p AllocationTokenParams) (*AllocationToken, error) {
	if p.Token == "" {
		return nil, fmt.Errorf("%w: token string is required", ErrInvalidAllocationToken)
	}
	switch p.TokenType {
	case TokenTypeSingleUse, TokenTypeUnlimitedUse, TokenTypeDefaultPromo:
	default:
		return nil, fmt.Errorf("%w: %s: unknown token type %q", ErrInvalidAllocationToken, p.Token, p.TokenType)
	}
	if p.TokenBehavior == "" {
		p.TokenBehavior = TokenBehaviorDefault
	}
	if p.RegistrationBehavior == "" {
		p.RegistrationBehavior = RegistrationBehaviorDefault
	}
	if p.RenewalPriceBehavior == "" {
		p.RenewalPriceBehavior = RenewalPriceBehaviorDefault
	}
	if p.DiscountYears == 0 {
		p.DiscountYears = 1
	}
	if p.DiscountYears < 1 || p.DiscountYears > maxDiscountYears {
		return nil, fmt.Errorf("%w: %s: discount years must be between 1 and %d",
			ErrInvalidAllocationToken, p.Token, maxDiscountYears)
	}

	switch d := p.Discount.(type) {
	case nil:
		p.Discount = FractionDiscount{Fraction: decimal.Zero}
	case FractionDiscount:
		if d.Fraction.IsNegative() || d.Fraction.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("%w: %s: discount fraction must be between 0 and 1",
				ErrInvalidAllocationToken, p.Token)
		}
	case FixedPriceDiscount:
		if d.Price.IsNegative() {
			return nil, fmt.Errorf("%w: %s: discount price cannot be negative", ErrInvalidAllocationToken, p.Token)
		}
	}

	if p.RenewalPriceBehavior == RenewalPriceBehaviorSpecified && p.RenewalPrice == nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidAllocationToken, p.Token, ErrMissingRenewalPrice)
	}
	if p.RenewalPriceBehavior != RenewalPriceBehaviorSpecified && p.RenewalPrice != nil {
		return nil, fmt.Errorf("%w: %s: renewal price requires SPECIFIED renewal behavior",
			ErrInvalidAllocationToken, p.Token)
	}
	if p.DomainName != "" && !p.TokenType.IsOneTimeUse() {
		return nil, fmt.Errorf("%w: %s: domain name can only be set on SINGLE_USE tokens",
			ErrInvalidAllocationToken, p.Token)
	}
	if p.RedemptionHistoryID != "" && !p.TokenType.IsOneTimeUse() {
		return nil, fmt.Errorf("%w: %s: only SINGLE_USE tokens can be redeemed", ErrInvalidAllocationToken, p.Token)
	}
	if p.StatusTransitions.IsEmpty() {
		p.StatusTransitions = ConstantTransitions(TokenStatusNotStarted)
	}

	p.AllowedRegistrarIDs = slices.Clone(p.AllowedRegistrarIDs)
	p.AllowedTlds = slices.Clone(p.AllowedTlds)
	p.AllowedEppActions = slices.Clone(p.AllowedEppActions)
	return &AllocationToken{p: p}, nil
}

// Token returns the token string.
func (t *AllocationToken) Token() string { return t.p.Token }

// TokenType returns the token type.
func (t *AllocationToken) TokenType() TokenType { return t.p.TokenType }

// TokenBehavior returns the token behavior.
func (t *AllocationToken) TokenBehavior() TokenBehavior { return t.p.TokenBehavior }

// DomainName returns the bound domain name, empty if unbound.
func (t *AllocationToken) DomainName() string { return t.p.DomainName }

// Discount returns the discount specification; never nil.
func (t *AllocationToken) Discount() Discount { return t.p.Discount }

// DiscountYears returns the number of years the discount applies to.
func (t *AllocationToken) DiscountYears() int { return t.p.DiscountYears }

// ShouldDiscountPremiums reports whether the discount applies to premium names.
func (t *AllocationToken) ShouldDiscountPremiums() bool { return t.p.DiscountPremiums }

// RegistrationBehavior returns the registration behavior.
func (t *AllocationToken) RegistrationBehavior() RegistrationBehavior { return t.p.RegistrationBehavior }

// RenewalPriceBehavior returns the renewal price behavior.
func (t *AllocationToken) RenewalPriceBehavior() RenewalPriceBehavior { return t.p.RenewalPriceBehavior }

// RenewalPrice returns the fixed renewal price; set only for SPECIFIED behavior.
func (t *AllocationToken) RenewalPrice() (Money, bool) {
	if t.p.RenewalPrice == nil {
		return Money{}, false
	}
	return *t.p.RenewalPrice, true
}

// RedemptionHistoryID returns the history entry that redeemed the token.
func (t *AllocationToken) RedemptionHistoryID() string { return t.p.RedemptionHistoryID }

// IsRedeemed reports whether the token has been consumed.
func (t *AllocationToken) IsRedeemed() bool { return t.p.RedemptionHistoryID != "" }

// StatusTransitions returns the promotion schedule.
func (t *AllocationToken) StatusTransitions() TimedTransitions[TokenStatus] { return t.p.StatusTransitions }

// HasPromotionSchedule is false for tokens carrying only the start-of-time entry.
func (t *AllocationToken) HasPromotionSchedule() bool {
	return t.p.StatusTransitions.Len() > 1
}

// StatusAt resolves the promotion status at the given instant.
func (t *AllocationToken) StatusAt(at time.Time) TokenStatus {
	return t.p.StatusTransitions.ValueAt(at)
}

// AllowedRegistrarIDs returns the registrar allow-list; empty allows all.
func (t *AllocationToken) AllowedRegistrarIDs() []string { return slices.Clone(t.p.AllowedRegistrarIDs) }

// AllowedTlds returns the TLD allow-list; empty allows all.
func (t *AllocationToken) AllowedTlds() []string { return slices.Clone(t.p.AllowedTlds) }

// AllowedEppActions returns the command allow-list; empty allows all.
func (t *AllocationToken) AllowedEppActions() []CommandName { return slices.Clone(t.p.AllowedEppActions) }

// AllowsRegistrar applies the registrar allow-list.
func (t *AllocationToken) AllowsRegistrar(registrarID string) bool {
	return len(t.p.AllowedRegistrarIDs) == 0 || slices.Contains(t.p.AllowedRegistrarIDs, registrarID)
}

// AllowsTld applies the TLD allow-list.
func (t *AllocationToken) AllowsTld(tld string) bool {
	return len(t.p.AllowedTlds) == 0 || slices.Contains(t.p.AllowedTlds, tld)
}

// AllowsCommand applies the EPP action allow-list.
func (t *AllocationToken) AllowsCommand(command CommandName) bool {
	return len(t.p.AllowedEppActions) == 0 || slices.Contains(t.p.AllowedEppActions, command)
}

// Version returns the persisted version used for optimistic locking.
func (t *AllocationToken) Version() int64 { return t.p.Version }

// CreatedAt returns the creation time.
func (t *AllocationToken) CreatedAt() time.Time { return t.p.CreatedAt }

// UpdatedAt returns the last modification time.
func (t *AllocationToken) UpdatedAt() time.Time { return t.p.UpdatedAt }

// Params returns a copy of the token attributes.
func (t *AllocationToken) Params() AllocationTokenParams {
	p := t.p
	p.AllowedRegistrarIDs = slices.Clone(p.AllowedRegistrarIDs)
	p.AllowedTlds = slices.Clone(p.AllowedTlds)
	p.AllowedEppActions = slices.Clone(p.AllowedEppActions)
	return p
}

// WithRedemption returns a redeemed copy stamped with the history entry id.
func (t *AllocationToken) WithRedemption(historyID string, at time.Time) (*AllocationToken, error) {
	if !t.p.TokenType.IsOneTimeUse() {
		return nil, ErrOnlySingleUseRedeemable
	}
	p := t.Params()
	p.RedemptionHistoryID = historyID
	p.UpdatedAt = at
	return &AllocationToken{p: p}, nil
}
