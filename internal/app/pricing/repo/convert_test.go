package repo_test

import (
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/registry-pricing-service/internal/models/m_billing_recurrence"
	"github.com/light-bringer/registry-pricing-service/internal/testutil"
)

func TestTldDataConversion(t *testing.T) {
	eap, err := domain.NewTimedTransitions(map[time.Time]domain.Money{
		domain.StartOfTime: testutil.Money("0"),
		testutil.Now:       testutil.Money("25.5"),
	})
	require.NoError(t, err)
	cfg := testutil.DefaultTldConfig("example")
	cfg.EapFee = &eap
	cfg.PremiumListName = "tld2"
	cfg.DefaultPromoTokens = []string{"promo-a", "promo-b"}
	tld := testutil.NewTld(t, cfg)

	data := repo.TldToData(tld)
	assert.Equal(t, "example", data.TldName)
	assert.Equal(t, "USD", data.Currency)
	assert.True(t, data.CreateCostTransitions.Valid)
	assert.True(t, data.EapFeeTransitions.Valid)
	assert.Equal(t, spanner.NullString{StringVal: "tld2", Valid: true}, data.PremiumListName)

	back, err := repo.TldFromData(data)
	require.NoError(t, err)
	assert.Equal(t, "example", back.Name())
	assert.Equal(t, domain.USD, back.Currency())
	assert.Equal(t, "13.00", back.CreateBillingCost(testutil.Now).AmountString())
	assert.Equal(t, "11.00", back.StandardRenewCost(testutil.Now).AmountString())
	assert.Equal(t, "17.00", back.RestoreBillingCost().AmountString())
	assert.Equal(t, "25.50", back.EapFeeFor(testutil.Now).Amount().StringFixed(2))
	assert.True(t, back.EapFeeFor(testutil.Now.Add(-time.Hour)).HasZeroCost())
	assert.Equal(t, "tld2", back.PremiumListName())
	assert.Equal(t, []string{"promo-a", "promo-b"}, back.DefaultPromoTokens())
}

func TestTldDataConversion_CreateFallsBackToRenew(t *testing.T) {
	cfg := testutil.DefaultTldConfig("tld")
	cfg.CreateCost = nil

	data := repo.TldToData(testutil.NewTld(t, cfg))
	assert.False(t, data.CreateCostTransitions.Valid)
	assert.False(t, data.EapFeeTransitions.Valid)
	assert.False(t, data.PremiumListName.Valid)

	back, err := repo.TldFromData(data)
	require.NoError(t, err)
	assert.Equal(t, "11.00", back.CreateBillingCost(testutil.Now).AmountString())
}

func TestTldFromData_Invalid(t *testing.T) {
	data := repo.TldToData(testutil.NewTld(t, testutil.DefaultTldConfig("tld")))

	unknown := *data
	unknown.Currency = "XXX"
	_, err := repo.TldFromData(&unknown)
	assert.ErrorIs(t, err, domain.ErrUnknownCurrency)

	missing := *data
	missing.RenewCostTransitions = spanner.NullJSON{}
	_, err = repo.TldFromData(&missing)
	assert.ErrorIs(t, err, domain.ErrInvalidTld)
}

func TestAllocationTokenDataConversion(t *testing.T) {
	p := domain.AllocationTokenParams{
		Token:                "abc123",
		TokenType:            domain.TokenTypeSingleUse,
		DomainName:           "standard.example",
		AllowedRegistrarIDs:  []string{"TheRegistrar"},
		AllowedTlds:          []string{"example"},
		AllowedEppActions:    []domain.CommandName{domain.CommandCreate, domain.CommandRenew},
		Discount:             testutil.Fraction("0.25"),
		DiscountYears:        3,
		DiscountPremiums:     true,
		RegistrationBehavior: domain.RegistrationBehaviorNonpremiumCreate,
		RenewalPriceBehavior: domain.RenewalPriceBehaviorSpecified,
		RenewalPrice:         testutil.MoneyPtr("17"),
		StatusTransitions:    testutil.ValidPromotion(t, testutil.Now),
		Version:              4,
	}
	token := testutil.NewToken(t, p)

	data, err := repo.AllocationTokenToData(token)
	require.NoError(t, err)
	assert.Equal(t, []string{"CREATE", "RENEW"}, data.AllowedEppActions)
	assert.True(t, data.DiscountFraction.Valid)
	assert.False(t, data.DiscountPrice.Valid)
	assert.Equal(t, spanner.NullString{StringVal: "USD", Valid: true}, data.RenewalCurrency)

	back, err := repo.AllocationTokenFromData(data)
	require.NoError(t, err)
	assert.Equal(t, "abc123", back.Token())
	assert.Equal(t, domain.TokenTypeSingleUse, back.TokenType())
	assert.Equal(t, "standard.example", back.DomainName())
	assert.Equal(t, []string{"TheRegistrar"}, back.AllowedRegistrarIDs())
	assert.Equal(t, []string{"example"}, back.AllowedTlds())
	assert.Equal(t, []domain.CommandName{domain.CommandCreate, domain.CommandRenew}, back.AllowedEppActions())
	assert.Equal(t, 3, back.DiscountYears())
	assert.True(t, back.ShouldDiscountPremiums())
	assert.Equal(t, domain.RegistrationBehaviorNonpremiumCreate, back.RegistrationBehavior())
	assert.Equal(t, int64(4), back.Version())

	fraction, ok := back.Discount().(domain.FractionDiscount)
	require.True(t, ok)
	assert.True(t, fraction.Fraction.Equal(decimal.RequireFromString("0.25")))

	renewal, ok := back.RenewalPrice()
	require.True(t, ok)
	assert.Equal(t, "USD 17.00", renewal.String())

	assert.True(t, back.HasPromotionSchedule())
	assert.Equal(t, domain.TokenStatusValid, back.StatusAt(testutil.Now))
	assert.Equal(t, domain.TokenStatusEnded, back.StatusAt(testutil.Now.Add(2*time.Hour)))
}

func TestAllocationTokenDataConversion_FixedPrice(t *testing.T) {
	p := testutil.TokenParams("fixed")
	p.Discount = testutil.FixedPrice(domain.MustMoney(domain.EUR, "5"))
	p.RedemptionHistoryID = "history-1"

	data, err := repo.AllocationTokenToData(testutil.NewToken(t, p))
	require.NoError(t, err)
	assert.False(t, data.DiscountFraction.Valid)
	assert.Equal(t, spanner.NullString{StringVal: "EUR", Valid: true}, data.DiscountCurrency)
	assert.False(t, data.RenewalPrice.Valid)

	back, err := repo.AllocationTokenFromData(data)
	require.NoError(t, err)
	fixed, ok := back.Discount().(domain.FixedPriceDiscount)
	require.True(t, ok)
	assert.Equal(t, "EUR 5.00", fixed.Price.String())
	assert.True(t, back.IsRedeemed())
	assert.False(t, back.HasPromotionSchedule())
}

func TestAllocationTokenFromData_UnknownCommand(t *testing.T) {
	data, err := repo.AllocationTokenToData(testutil.NewToken(t, testutil.TokenParams("t")))
	require.NoError(t, err)
	data.AllowedEppActions = []string{"DELETE"}

	_, err = repo.AllocationTokenFromData(data)
	assert.ErrorContains(t, err, `unknown command "DELETE"`)
}

func TestBillingRecurrenceFromData(t *testing.T) {
	data := &m_billing_recurrence.Data{
		RecurrenceID:         "r1",
		DomainName:           "premium.example",
		RegistrarID:          "TheRegistrar",
		RenewalPriceBehavior: string(domain.RenewalPriceBehaviorSpecified),
		RenewalPrice:         spanner.NullNumeric{Numeric: *decimal.RequireFromString("17").Rat(), Valid: true},
		RenewalPriceCurrency: spanner.NullString{StringVal: "USD", Valid: true},
		EventTime:            testutil.Now,
		RecurrenceEndTime:    domain.EndOfTime,
	}

	r, err := repo.BillingRecurrenceFromData(data)
	require.NoError(t, err)
	assert.Equal(t, "r1", r.ID())
	assert.Equal(t, domain.RenewalPriceBehaviorSpecified, r.RenewalPriceBehavior())
	price, ok := r.RenewalPrice()
	require.True(t, ok)
	assert.Equal(t, "USD 17.00", price.String())

	data.RenewalPriceCurrency = spanner.NullString{}
	_, err = repo.BillingRecurrenceFromData(data)
	assert.ErrorContains(t, err, "has no currency")
}

func TestEventsStatement(t *testing.T) {
	eventType := "allocation_token.redeemed"
	stmt := repo.EventsStatement(&list_events.Request{EventType: &eventType, Limit: 10})

	assert.Contains(t, stmt.SQL, "FROM outbox_events WHERE event_type = @p0")
	assert.Contains(t, stmt.SQL, "ORDER BY created_at DESC LIMIT @limit")
	assert.Equal(t, eventType, stmt.Params["p0"])
	assert.Equal(t, int64(10), stmt.Params["limit"])

	all := repo.EventsStatement(&list_events.Request{Limit: 5})
	assert.NotContains(t, all.SQL, "WHERE")
}
