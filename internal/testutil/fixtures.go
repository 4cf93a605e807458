package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
)

// USD is the currency of the default fixture TLD.
var USD = domain.USD

// Money builds a USD amount.
func Money(amount string) domain.Money {
	return domain.MustMoney(USD, amount)
}

// MoneyPtr builds a pointer to a USD amount.
func MoneyPtr(amount string) *domain.Money {
	m := Money(amount)
	return &m
}

// DefaultTldConfig returns a TLD with create 13, renew 11 and restore 17 in USD.
func DefaultTldConfig(name string) domain.TldConfig {
	create := domain.ConstantTransitions(Money("13"))
	return domain.TldConfig{
		Name:        name,
		Currency:    USD,
		CreateCost:  &create,
		RenewCost:   domain.ConstantTransitions(Money("11")),
		RestoreCost: Money("17"),
	}
}

// NewTld builds a TLD from a config, failing the test on error.
func NewTld(t *testing.T, cfg domain.TldConfig) *domain.Tld {
	t.Helper()
	tld, err := domain.NewTld(cfg)
	require.NoError(t, err)
	return tld
}

// ExampleTld returns the "example" TLD whose renew cost moves from 1 to 10 at Now,
// backed by the premium list "tld2".
func ExampleTld(t *testing.T) *domain.Tld {
	t.Helper()
	renew, err := domain.NewTimedTransitions(map[time.Time]domain.Money{
		domain.StartOfTime: Money("1"),
		Now:                Money("10"),
	})
	require.NoError(t, err)

	cfg := DefaultTldConfig("example")
	cfg.RenewCost = renew
	cfg.PremiumListName = "tld2"
	return NewTld(t, cfg)
}

// SeedExample stores ExampleTld and the premium entry "premium" at USD 100.
func SeedExample(t *testing.T, store *Store) *domain.Tld {
	t.Helper()
	tld := ExampleTld(t)
	store.PutTld(tld)
	store.PutPremium("tld2", "premium", Money("100"))
	return tld
}

// TokenParams returns SINGLE_USE token params with no discount.
func TokenParams(token string) domain.AllocationTokenParams {
	return domain.AllocationTokenParams{
		Token:     token,
		TokenType: domain.TokenTypeSingleUse,
	}
}

// Fraction builds a fraction discount.
func Fraction(f string) domain.FractionDiscount {
	return domain.FractionDiscount{Fraction: decimal.RequireFromString(f)}
}

// FixedPrice builds a fixed-price discount.
func FixedPrice(price domain.Money) domain.FixedPriceDiscount {
	return domain.FixedPriceDiscount{Price: price}
}

// NewToken builds a token, failing the test on error.
func NewToken(t *testing.T, p domain.AllocationTokenParams) *domain.AllocationToken {
	t.Helper()
	token, err := domain.NewAllocationToken(p)
	require.NoError(t, err)
	return token
}

// ValidPromotion returns a status schedule that is VALID from an hour before at
// until an hour after it.
func ValidPromotion(t *testing.T, at time.Time) domain.TimedTransitions[domain.TokenStatus] {
	t.Helper()
	tt, err := domain.NewTimedTransitions(map[time.Time]domain.TokenStatus{
		domain.StartOfTime: domain.TokenStatusNotStarted,
		at.Add(-time.Hour):  domain.TokenStatusValid,
		at.Add(time.Hour):   domain.TokenStatusEnded,
	})
	require.NoError(t, err)
	return tt
}

// NewRecurrence builds a recurrence, failing the test on error.
func NewRecurrence(t *testing.T, domainName string, behavior domain.RenewalPriceBehavior, price *domain.Money) *domain.BillingRecurrence {
	t.Helper()
	r, err := domain.NewBillingRecurrence(domain.BillingRecurrenceParams{
		ID:                   "recurrence-" + domainName,
		DomainName:           domainName,
		RegistrarID:          "TheRegistrar",
		RenewalPriceBehavior: behavior,
		RenewalPrice:         price,
		EventTime:            time.Date(1999, time.January, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return r
}
