package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/contracts/mocks"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain/services"
	"github.com/light-bringer/registry-pricing-service/internal/testutil"
)

func mustName(t *testing.T, s string) domain.DomainName {
	t.Helper()
	name, err := domain.ParseDomainName(s)
	require.NoError(t, err)
	return name
}

func TestStaticPremiumListPricingEngine(t *testing.T) {
	ctx := context.Background()
	tld := testutil.ExampleTld(t)

	t.Run("premium label", func(t *testing.T) {
		repo := mocks.NewMockPremiumListRepository(gomock.NewController(t))
		repo.EXPECT().GetPremiumPrice(gomock.Any(), "tld2", "premium").Return(testutil.MoneyPtr("100"), nil)

		prices, err := services.NewStaticPremiumListPricingEngine(repo).
			DomainPrices(ctx, tld, mustName(t, "premium.example"), testutil.Now)
		require.NoError(t, err)
		assert.True(t, prices.IsPremium)
		assert.Equal(t, "100.00", prices.CreateCost.AmountString())
		assert.Equal(t, "100.00", prices.RenewCost.AmountString())
	})

	t.Run("standard label", func(t *testing.T) {
		repo := mocks.NewMockPremiumListRepository(gomock.NewController(t))
		repo.EXPECT().GetPremiumPrice(gomock.Any(), "tld2", "standard").Return(nil, nil)

		prices, err := services.NewStaticPremiumListPricingEngine(repo).
			DomainPrices(ctx, tld, mustName(t, "standard.example"), testutil.Now)
		require.NoError(t, err)
		assert.False(t, prices.IsPremium)
		assert.Equal(t, "13.00", prices.CreateCost.AmountString())
		assert.Equal(t, "10.00", prices.RenewCost.AmountString())
	})

	t.Run("tld without premium list skips lookup", func(t *testing.T) {
		repo := mocks.NewMockPremiumListRepository(gomock.NewController(t))
		plain := testutil.NewTld(t, testutil.DefaultTldConfig("tld"))

		prices, err := services.NewStaticPremiumListPricingEngine(repo).
			DomainPrices(ctx, plain, mustName(t, "premium.tld"), testutil.Now)
		require.NoError(t, err)
		assert.False(t, prices.IsPremium)
		assert.Equal(t, "11.00", prices.RenewCost.AmountString())
	})

	t.Run("currency mismatch", func(t *testing.T) {
		repo := mocks.NewMockPremiumListRepository(gomock.NewController(t))
		eur := domain.MustMoney(domain.EUR, "100")
		repo.EXPECT().GetPremiumPrice(gomock.Any(), "tld2", "premium").Return(&eur, nil)

		_, err := services.NewStaticPremiumListPricingEngine(repo).
			DomainPrices(ctx, tld, mustName(t, "premium.example"), testutil.Now)
		assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)
	})

	t.Run("lookup failure", func(t *testing.T) {
		repo := mocks.NewMockPremiumListRepository(gomock.NewController(t))
		boom := errors.New("spanner unavailable")
		repo.EXPECT().GetPremiumPrice(gomock.Any(), "tld2", "premium").Return(nil, boom)

		_, err := services.NewStaticPremiumListPricingEngine(repo).
			DomainPrices(ctx, tld, mustName(t, "premium.example"), testutil.Now)
		assert.ErrorIs(t, err, boom)
	})
}
