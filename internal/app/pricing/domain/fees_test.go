package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFeesAndCredits(t *testing.T) {
	fees := NewFeesAndCredits(USD,
		NewFee(decimal.RequireFromString("100"), FeeTypeCreate, true),
		NewFee(decimal.RequireFromString("25.5"), FeeTypeEap, false),
	)

	assert.Equal(t, "100.00", fees.CreateCost().AmountString())
	assert.Equal(t, "25.50", fees.EapCost().AmountString())
	assert.True(t, fees.RenewCost().IsZero())
	assert.Equal(t, "USD 125.50", fees.TotalCost().String())
	assert.True(t, fees.HasAnyPremiumFees())
	assert.Equal(t, "USD[CREATE 100.00 premium=true, EAP 25.50 premium=false]", fees.String())
}

func TestFeesAndCredits_WithFeeDoesNotMutate(t *testing.T) {
	base := NewFeesAndCredits(USD, NewFee(decimal.NewFromInt(13), FeeTypeCreate, false))
	extended := base.WithFee(NewFee(decimal.NewFromInt(5), FeeTypeEap, false))

	assert.Len(t, base.Fees(), 1)
	assert.Len(t, extended.Fees(), 2)
	assert.False(t, extended.HasAnyPremiumFees())
}

func TestFee_HasZeroCost(t *testing.T) {
	assert.True(t, NewFee(decimal.Zero, FeeTypeEap, false).HasZeroCost())
	assert.False(t, NewFee(decimal.NewFromInt(1), FeeTypeEap, false).HasZeroCost())
}
