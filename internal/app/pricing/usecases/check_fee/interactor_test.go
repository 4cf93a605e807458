package check_fee_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/usecases/check_fee"
	fixtures "github.com/light-bringer/registry-pricing-service/internal/testutil"
	"github.com/light-bringer/registry-pricing-service/internal/testutil/harness"
)

func strPtr(s string) *string { return &s }

func TestCheckFee_Commands(t *testing.T) {
	ctx := context.Background()
	svc := harness.New(t)
	svc.Store.PutRecurrence(fixtures.NewRecurrence(t, "specified.example", domain.RenewalPriceBehaviorSpecified, fixtures.MoneyPtr("17")))

	tests := []struct {
		name string
		req  check_fee.Request
		want string
	}{
		{"create defaults to one year", check_fee.Request{Command: domain.CommandCreate, DomainName: "standard.example"}, "USD[CREATE 13.00 premium=false]"},
		{"create premium", check_fee.Request{Command: domain.CommandCreate, DomainName: "premium.example", Years: 2}, "USD[CREATE 200.00 premium=true]"},
		{"create sunrise", check_fee.Request{Command: domain.CommandCreate, DomainName: "standard.example", Years: 2, IsSunrise: true}, "USD[CREATE 19.55 premium=false]"},
		{"renew", check_fee.Request{Command: domain.CommandRenew, DomainName: "standard.example", Years: 10}, "USD[RENEW 100.00 premium=false]"},
		{"renew specified recurrence", check_fee.Request{Command: domain.CommandRenew, DomainName: "specified.example", Years: 2}, "USD[RENEW 34.00 premium=false]"},
		{"renew before price change", check_fee.Request{Command: domain.CommandRenew, DomainName: "standard.example", AsOf: fixtures.Now.Add(-time.Hour)}, "USD[RENEW 1.00 premium=false]"},
		{"restore expired", check_fee.Request{Command: domain.CommandRestore, DomainName: "standard.example", IsExpired: true}, "USD[RESTORE 17.00 premium=false, RENEW 10.00 premium=false]"},
		{"transfer", check_fee.Request{Command: domain.CommandTransfer, DomainName: "premium.example"}, "USD[RENEW 100.00 premium=true]"},
		{"update", check_fee.Request{Command: domain.CommandUpdate, DomainName: "premium.example"}, "USD[UPDATE 0.00 premium=false]"},
		{"name is normalized", check_fee.Request{Command: domain.CommandCreate, DomainName: "Standard.Example."}, "USD[CREATE 13.00 premium=false]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.RegistrarID = "TheRegistrar"
			resp, err := svc.CheckFee.Execute(ctx, &req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Fees.String())
			assert.Nil(t, resp.Token)
		})
	}
}

func TestCheckFee_ResponseEcho(t *testing.T) {
	svc := harness.New(t)

	resp, err := svc.CheckFee.Execute(context.Background(), &check_fee.Request{
		Command: domain.CommandRenew, DomainName: "Standard.EXAMPLE", RegistrarID: "TheRegistrar",
	})
	require.NoError(t, err)
	assert.Equal(t, "standard.example", resp.DomainName)
	assert.Equal(t, domain.CommandRenew, resp.Command)
	assert.Equal(t, 1, resp.Years)
	assert.Equal(t, fixtures.Now, resp.AsOf)
}

func TestCheckFee_Tokens(t *testing.T) {
	ctx := context.Background()
	svc := harness.New(t)

	p := fixtures.TokenParams("half-off")
	p.Discount = fixtures.Fraction("0.5")
	svc.Store.PutToken(fixtures.NewToken(t, p))

	resp, err := svc.CheckFee.Execute(ctx, &check_fee.Request{
		Command: domain.CommandCreate, DomainName: "standard.example", RegistrarID: "TheRegistrar",
		Years: 2, Token: strPtr("half-off"),
	})
	require.NoError(t, err)
	assert.Equal(t, "16.50", resp.Fees.TotalCost().AmountString())
	require.NotNil(t, resp.Token)
	assert.Equal(t, "half-off", resp.Token.Token())

	// checking a fee never redeems
	assert.False(t, svc.Store.Token("half-off").IsRedeemed())

	_, err = svc.CheckFee.Execute(ctx, &check_fee.Request{
		Command: domain.CommandCreate, DomainName: "premium.example", RegistrarID: "TheRegistrar", Token: strPtr("half-off"),
	})
	assert.ErrorIs(t, err, domain.ErrAllocationTokenInvalidForPremiumName)

	_, err = svc.CheckFee.Execute(ctx, &check_fee.Request{
		Command: domain.CommandRestore, DomainName: "standard.example", RegistrarID: "TheRegistrar", Token: strPtr("missing"),
	})
	assert.ErrorIs(t, err, domain.ErrNonexistentAllocationToken)

	assert.Equal(t, 1.0, testutil.ToFloat64(svc.Metrics.TokenResolutions.WithLabelValues("explicit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(svc.Metrics.TokenResolutions.WithLabelValues("rejected")))
}

func TestCheckFee_DefaultPromotion(t *testing.T) {
	ctx := context.Background()
	svc := harness.New(t)

	cfg := fixtures.DefaultTldConfig("promo")
	cfg.DefaultPromoTokens = []string{"launch"}
	svc.Store.PutTld(fixtures.NewTld(t, cfg))
	svc.Store.PutToken(fixtures.NewToken(t, domain.AllocationTokenParams{
		Token:             "launch",
		TokenType:         domain.TokenTypeDefaultPromo,
		Discount:          fixtures.Fraction("0.2"),
		StatusTransitions: fixtures.ValidPromotion(t, fixtures.Now),
	}))

	resp, err := svc.CheckFee.Execute(ctx, &check_fee.Request{
		Command: domain.CommandCreate, DomainName: "name.promo", RegistrarID: "TheRegistrar",
	})
	require.NoError(t, err)
	assert.Equal(t, "10.40", resp.Fees.TotalCost().AmountString())
	require.NotNil(t, resp.Token)
	assert.Equal(t, "launch", resp.Token.Token())

	// outside the promotion window the default no longer applies
	resp, err = svc.CheckFee.Execute(ctx, &check_fee.Request{
		Command: domain.CommandCreate, DomainName: "name.promo", RegistrarID: "TheRegistrar",
		AsOf: fixtures.Now.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "13.00", resp.Fees.TotalCost().AmountString())
	assert.Nil(t, resp.Token)

	// restores ignore default promotions
	resp, err = svc.CheckFee.Execute(ctx, &check_fee.Request{
		Command: domain.CommandRestore, DomainName: "name.promo", RegistrarID: "TheRegistrar",
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Token)

	assert.Equal(t, 1.0, testutil.ToFloat64(svc.Metrics.TokenResolutions.WithLabelValues("default")))
	assert.Equal(t, 2.0, testutil.ToFloat64(svc.Metrics.TokenResolutions.WithLabelValues("none")))
}

func TestCheckFee_Errors(t *testing.T) {
	ctx := context.Background()
	svc := harness.New(t)
	anchor := fixtures.TokenParams("anchor")
	anchor.RegistrationBehavior = domain.RegistrationBehaviorAnchorTenant
	svc.Store.PutToken(fixtures.NewToken(t, anchor))

	tests := []struct {
		name    string
		req     check_fee.Request
		wantErr error
	}{
		{"unknown tld", check_fee.Request{Command: domain.CommandCreate, DomainName: "name.unknown"}, domain.ErrTldNotFound},
		{"invalid name", check_fee.Request{Command: domain.CommandCreate, DomainName: "nodot"}, domain.ErrInvalidDomainName},
		{"negative years", check_fee.Request{Command: domain.CommandRenew, DomainName: "standard.example", Years: -1}, domain.ErrInvalidYears},
		{"anchor tenant create with negative years", check_fee.Request{Command: domain.CommandCreate, DomainName: "premium.example", Years: -3, Token: strPtr("anchor")}, domain.ErrInvalidYears},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.RegistrarID = "TheRegistrar"
			_, err := svc.CheckFee.Execute(ctx, &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := svc.CheckFee.Execute(ctx, &check_fee.Request{Command: "DELETE", DomainName: "standard.example"})
	assert.ErrorContains(t, err, "unsupported command")

	assert.Equal(t, 3.0, testutil.ToFloat64(svc.Metrics.PricingRequests.WithLabelValues("CREATE", "error")))
}
