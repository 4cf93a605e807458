package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain/services"
	"github.com/light-bringer/registry-pricing-service/internal/testutil"
)

type resolverFixture struct {
	store    *testutil.Store
	resolver *services.AllocationTokenResolver
	tld      *domain.Tld
}

func newResolverFixture(t *testing.T) resolverFixture {
	t.Helper()
	store := testutil.NewStore()
	tld := testutil.SeedExample(t, store)
	engine := services.NewStaticPremiumListPricingEngine(testutil.NewMemoryPremiumListRepo(store))
	return resolverFixture{
		store:    store,
		resolver: services.NewAllocationTokenResolver(testutil.NewMemoryAllocationTokenRepo(store), engine),
		tld:      tld,
	}
}

func (f resolverFixture) request(domainName string) services.TokenRequest {
	return services.TokenRequest{
		RegistrarID: "TheRegistrar",
		DomainName:  domainName,
		Tld:         f.tld,
		Command:     domain.CommandCreate,
		Now:         testutil.Now,
	}
}

func (f resolverFixture) put(t *testing.T, token string, mutate func(*domain.AllocationTokenParams)) *domain.AllocationToken {
	t.Helper()
	p := testutil.TokenParams(token)
	if mutate != nil {
		mutate(&p)
	}
	at := testutil.NewToken(t, p)
	f.store.PutToken(at)
	return at
}

func TestLoadAllocationTokenFromExtension(t *testing.T) {
	ctx := context.Background()
	f := newResolverFixture(t)

	f.put(t, "plain", nil)
	f.put(t, "redeemed", func(p *domain.AllocationTokenParams) { p.RedemptionHistoryID = "h1" })
	f.put(t, "other-registrar", func(p *domain.AllocationTokenParams) { p.AllowedRegistrarIDs = []string{"NewRegistrar"} })
	f.put(t, "in-promo", func(p *domain.AllocationTokenParams) { p.StatusTransitions = testutil.ValidPromotion(t, testutil.Now) })
	f.put(t, "out-of-promo", func(p *domain.AllocationTokenParams) {
		p.StatusTransitions = testutil.ValidPromotion(t, testutil.Now.Add(48*time.Hour))
	})
	f.put(t, "bound", func(p *domain.AllocationTokenParams) { p.DomainName = "other.example" })
	f.put(t, "other-tld", func(p *domain.AllocationTokenParams) { p.AllowedTlds = []string{"tld"} })
	f.put(t, "renew-only", func(p *domain.AllocationTokenParams) { p.AllowedEppActions = []domain.CommandName{domain.CommandRenew} })
	f.put(t, "discount", func(p *domain.AllocationTokenParams) { p.Discount = testutil.Fraction("0.5") })
	f.put(t, "redeemed-other-registrar", func(p *domain.AllocationTokenParams) {
		p.RedemptionHistoryID = "h1"
		p.AllowedRegistrarIDs = []string{"NewRegistrar"}
	})

	tests := []struct {
		name    string
		token   string
		domain  string
		wantErr error
	}{
		{name: "valid", token: "plain", domain: "standard.example"},
		{name: "inside promotion", token: "in-promo", domain: "standard.example"},
		{name: "discount on standard name", token: "discount", domain: "standard.example"},
		{name: "empty", token: "", domain: "standard.example", wantErr: domain.ErrNonexistentAllocationToken},
		{name: "nonexistent", token: "missing", domain: "standard.example", wantErr: domain.ErrNonexistentAllocationToken},
		{name: "redeemed", token: "redeemed", domain: "standard.example", wantErr: domain.ErrAlreadyRedeemedAllocationToken},
		{name: "registrar", token: "other-registrar", domain: "standard.example", wantErr: domain.ErrAllocationTokenNotValidForRegistrar},
		{name: "promotion", token: "out-of-promo", domain: "standard.example", wantErr: domain.ErrAllocationTokenNotInPromotion},
		{name: "bound domain", token: "bound", domain: "standard.example", wantErr: domain.ErrAllocationTokenNotValidForDomain},
		{name: "tld", token: "other-tld", domain: "standard.example", wantErr: domain.ErrAllocationTokenNotValidForTld},
		{name: "command", token: "renew-only", domain: "standard.example", wantErr: domain.ErrAllocationTokenNotValidForCommand},
		{name: "discount on premium name", token: "discount", domain: "premium.example", wantErr: domain.ErrAllocationTokenInvalidForPremiumName},
		{name: "redemption checked first", token: "redeemed-other-registrar", domain: "standard.example", wantErr: domain.ErrAlreadyRedeemedAllocationToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := f.resolver.LoadAllocationTokenFromExtension(ctx, f.request(tt.domain), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.token, token.Token())
		})
	}
}

func TestLoadTokenFromExtensionOrGetDefault(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore()
	cfg := testutil.DefaultTldConfig("example")
	cfg.PremiumListName = "tld2"
	cfg.DefaultPromoTokens = []string{"missing", "wrong-registrar", "bound-elsewhere", "first-valid", "second-valid"}
	tld := testutil.NewTld(t, cfg)
	store.PutTld(tld)
	store.PutPremium("tld2", "premium", testutil.Money("100"))

	put := func(token string, mutate func(*domain.AllocationTokenParams)) {
		p := domain.AllocationTokenParams{Token: token, TokenType: domain.TokenTypeDefaultPromo}
		if mutate != nil {
			mutate(&p)
		}
		store.PutToken(testutil.NewToken(t, p))
	}
	put("wrong-registrar", func(p *domain.AllocationTokenParams) { p.AllowedRegistrarIDs = []string{"NewRegistrar"} })
	put("first-valid", func(p *domain.AllocationTokenParams) { p.Discount = testutil.Fraction("0.1") })
	put("second-valid", nil)
	store.PutToken(testutil.NewToken(t, domain.AllocationTokenParams{
		Token: "bound-elsewhere", TokenType: domain.TokenTypeSingleUse, DomainName: "other.example",
	}))
	store.PutToken(testutil.NewToken(t, testutil.TokenParams("explicit")))

	resolver := services.NewAllocationTokenResolver(
		testutil.NewMemoryAllocationTokenRepo(store),
		services.NewStaticPremiumListPricingEngine(testutil.NewMemoryPremiumListRepo(store)))
	req := services.TokenRequest{
		RegistrarID: "TheRegistrar",
		DomainName:  "standard.example",
		Tld:         tld,
		Command:     domain.CommandCreate,
		Now:         testutil.Now,
	}

	t.Run("first valid default wins", func(t *testing.T) {
		token, err := resolver.LoadTokenFromExtensionOrGetDefault(ctx, req, nil)
		require.NoError(t, err)
		require.NotNil(t, token)
		assert.Equal(t, "first-valid", token.Token())
	})

	t.Run("premium names skip discount defaults", func(t *testing.T) {
		premiumReq := req
		premiumReq.DomainName = "premium.example"
		token, err := resolver.LoadTokenFromExtensionOrGetDefault(ctx, premiumReq, nil)
		require.NoError(t, err)
		require.NotNil(t, token)
		assert.Equal(t, "second-valid", token.Token())
	})

	t.Run("explicit token overrides defaults", func(t *testing.T) {
		explicit := "explicit"
		token, err := resolver.LoadTokenFromExtensionOrGetDefault(ctx, req, &explicit)
		require.NoError(t, err)
		assert.Equal(t, "explicit", token.Token())
	})

	t.Run("explicit invalid token does not fall back", func(t *testing.T) {
		missing := "missing"
		_, err := resolver.LoadTokenFromExtensionOrGetDefault(ctx, req, &missing)
		assert.ErrorIs(t, err, domain.ErrNonexistentAllocationToken)
	})

	t.Run("no defaults", func(t *testing.T) {
		plain := req
		plain.Tld = testutil.NewTld(t, testutil.DefaultTldConfig("tld"))
		plain.DomainName = "standard.tld"
		token, err := resolver.LoadTokenFromExtensionOrGetDefault(ctx, plain, nil)
		require.NoError(t, err)
		assert.Nil(t, token)
	})
}

func TestTokenIsValidAgainstDomain(t *testing.T) {
	ctx := context.Background()
	f := newResolverFixture(t)

	valid, err := f.resolver.TokenIsValidAgainstDomain(ctx, f.request("standard.example"), f.put(t, "plain", nil))
	require.NoError(t, err)
	assert.True(t, valid)

	otherTld := f.put(t, "other-tld", func(p *domain.AllocationTokenParams) { p.AllowedTlds = []string{"tld"} })
	valid, err = f.resolver.TokenIsValidAgainstDomain(ctx, f.request("standard.example"), otherTld)
	require.NoError(t, err)
	assert.False(t, valid)

	discount := f.put(t, "discount", func(p *domain.AllocationTokenParams) { p.Discount = testutil.Fraction("0.5") })
	valid, err = f.resolver.TokenIsValidAgainstDomain(ctx, f.request("premium.example"), discount)
	require.NoError(t, err)
	assert.False(t, valid)

	bound := f.put(t, "bound", func(p *domain.AllocationTokenParams) { p.DomainName = "other.example" })
	valid, err = f.resolver.TokenIsValidAgainstDomain(ctx, f.request("standard.example"), bound)
	assert.ErrorIs(t, err, domain.ErrAllocationTokenNotValidForDomain)
	assert.False(t, valid)
}

func TestRedeemToken(t *testing.T) {
	single := testutil.NewToken(t, testutil.TokenParams("single"))
	redeemed, err := services.RedeemToken(single, "history-1", testutil.Now)
	require.NoError(t, err)
	assert.True(t, redeemed.IsRedeemed())

	unlimited := testutil.NewToken(t, domain.AllocationTokenParams{Token: "unlimited", TokenType: domain.TokenTypeUnlimitedUse})
	_, err = services.RedeemToken(unlimited, "history-1", testutil.Now)
	assert.ErrorIs(t, err, domain.ErrOnlySingleUseRedeemable)
}

func TestDiscountTokenInvalidForPremiumName(t *testing.T) {
	plain := testutil.NewToken(t, testutil.TokenParams("plain"))
	discount := tokenWith(t, func(p *domain.AllocationTokenParams) { p.Discount = testutil.Fraction("0.5") })
	premiums := tokenWith(t, func(p *domain.AllocationTokenParams) {
		p.Discount = testutil.Fraction("0.5")
		p.DiscountPremiums = true
	})

	assert.False(t, services.DiscountTokenInvalidForPremiumName(plain, true))
	assert.False(t, services.DiscountTokenInvalidForPremiumName(discount, false))
	assert.True(t, services.DiscountTokenInvalidForPremiumName(discount, true))
	assert.False(t, services.DiscountTokenInvalidForPremiumName(premiums, true))
}

func TestResolvedTokenStaysValid(t *testing.T) {
	ctx := context.Background()
	f := newResolverFixture(t)
	f.put(t, "premium-discount", func(p *domain.AllocationTokenParams) {
		p.Discount = testutil.Fraction("0.5")
		p.DiscountPremiums = true
		p.StatusTransitions = testutil.ValidPromotion(t, testutil.Now)
	})

	for _, name := range []string{"standard.example", "premium.example"} {
		req := f.request(name)
		token, err := f.resolver.LoadAllocationTokenFromExtension(ctx, req, "premium-discount")
		require.NoError(t, err)

		valid, err := f.resolver.TokenIsValidAgainstDomain(ctx, req, token)
		require.NoError(t, err)
		assert.True(t, valid, name)
	}
}
