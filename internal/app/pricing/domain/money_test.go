package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(amount string) Money {
	return MustMoney(USD, amount)
}

func TestMoneyOf(t *testing.T) {
	t.Run("rounds to currency scale", func(t *testing.T) {
		m, err := MoneyOf(USD, "13.005")
		require.NoError(t, err)
		assert.Equal(t, "13.00", m.AmountString()) // half-even
	})

	t.Run("yen has no minor unit", func(t *testing.T) {
		m, err := MoneyOf(JPY, "1500.5")
		require.NoError(t, err)
		assert.Equal(t, "1500", m.AmountString())
	})

	t.Run("invalid amount returns error", func(t *testing.T) {
		_, err := MoneyOf(USD, "thirteen")
		assert.Error(t, err)
	})
}

func TestCurrencyOf(t *testing.T) {
	unit, err := CurrencyOf("usd")
	require.NoError(t, err)
	assert.Equal(t, USD, unit)

	_, err = CurrencyOf("XXX")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("plus", func(t *testing.T) {
		sum, err := usd("13").Plus(usd("10.50"))
		require.NoError(t, err)
		assert.Equal(t, "USD 23.50", sum.String())
	})

	t.Run("minus", func(t *testing.T) {
		diff, err := usd("23").Minus(usd("6.50"))
		require.NoError(t, err)
		assert.Equal(t, "16.50", diff.AmountString())
	})

	t.Run("currency mismatch", func(t *testing.T) {
		_, err := usd("1").Plus(MustMoney(JPY, "1"))
		assert.ErrorIs(t, err, ErrCurrencyMismatch)
		_, err = usd("1").Minus(MustMoney(EUR, "1"))
		assert.ErrorIs(t, err, ErrCurrencyMismatch)
	})

	t.Run("multiplied by years", func(t *testing.T) {
		assert.Equal(t, "50.00", usd("10").MultipliedBy(5).AmountString())
	})

	t.Run("multiplied by fraction rounds half-even", func(t *testing.T) {
		// 0.125 rounds down to the even cent
		assert.Equal(t, "0.12", usd("0.25").MultipliedByFraction(decimal.RequireFromString("0.5")).AmountString())
		assert.Equal(t, "19.55", usd("23").MultipliedByFraction(decimal.RequireFromString("0.85")).AmountString())
	})
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, ZeroIn(USD).IsZero())
	assert.True(t, usd("-1").IsNegative())
	assert.True(t, usd("10").Equals(usd("10.00")))
	assert.False(t, usd("10").Equals(MustMoney(EUR, "10")))
}
