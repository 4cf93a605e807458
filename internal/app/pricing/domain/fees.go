package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FeeType classifies a fee line item.
type FeeType string

const (
	FeeTypeCreate   FeeType = "CREATE"
	FeeTypeRenew    FeeType = "RENEW"
	FeeTypeRestore  FeeType = "RESTORE"
	FeeTypeUpdate   FeeType = "UPDATE"
	FeeTypeTransfer FeeType = "TRANSFER"
	FeeTypeEap      FeeType = "EAP"
)

// Fee is a single line item of a fee breakdown.
type Fee struct {
	amount  decimal.Decimal
	feeType FeeType
	premium bool
}

// NewFee creates a fee line item.
func NewFee(amount decimal.Decimal, feeType FeeType, premium bool) Fee {
	return Fee{amount: amount, feeType: feeType, premium: premium}
}

// Amount returns the fee amount.
func (f Fee) Amount() decimal.Decimal {
	return f.amount
}

// Type returns the fee type.
func (f Fee) Type() FeeType {
	return f.feeType
}

// IsPremium reports whether the fee was computed at a premium rate.
func (f Fee) IsPremium() bool {
	return f.premium
}

// HasZeroCost is true when the amount is zero.
func (f Fee) HasZeroCost() bool {
	return f.amount.IsZero()
}

// FeesAndCredits is an immutable fee breakdown in a single currency.
type FeesAndCredits struct {
	currency CurrencyUnit
	fees     []Fee
}

// NewFeesAndCredits creates a breakdown from fees in order.
func NewFeesAndCredits(currency CurrencyUnit, fees ...Fee) *FeesAndCredits {
	copied := make([]Fee, len(fees))
	copy(copied, fees)
	return &FeesAndCredits{currency: currency, fees: copied}
}

// Currency returns the breakdown currency.
func (f *FeesAndCredits) Currency() CurrencyUnit {
	return f.currency
}

// Fees returns a copy of the line items.
func (f *FeesAndCredits) Fees() []Fee {
	out := make([]Fee, len(f.fees))
	copy(out, f.fees)
	return out
}

// WithFee returns a new breakdown with fee appended.
func (f *FeesAndCredits) WithFee(fee Fee) *FeesAndCredits {
	return NewFeesAndCredits(f.currency, append(f.Fees(), fee)...)
}

// CreateCost sums all CREATE items.
func (f *FeesAndCredits) CreateCost() Money {
	return f.costOf(FeeTypeCreate)
}

// RenewCost sums all RENEW items.
func (f *FeesAndCredits) RenewCost() Money {
	return f.costOf(FeeTypeRenew)
}

// EapCost sums all EAP items.
func (f *FeesAndCredits) EapCost() Money {
	return f.costOf(FeeTypeEap)
}

// TotalCost sums every item.
func (f *FeesAndCredits) TotalCost() Money {
	total := decimal.Zero
	for _, fee := range f.fees {
		total = total.Add(fee.amount)
	}
	return NewMoney(f.currency, total)
}

// HasAnyPremiumFees reports whether any item was priced at a premium rate.
func (f *FeesAndCredits) HasAnyPremiumFees() bool {
	for _, fee := range f.fees {
		if fee.premium {
			return true
		}
	}
	return false
}

func (f *FeesAndCredits) costOf(feeType FeeType) Money {
	total := decimal.Zero
	for _, fee := range f.fees {
		if fee.feeType == feeType {
			total = total.Add(fee.amount)
		}
	}
	return NewMoney(f.currency, total)
}

// String renders e.g. "USD[CREATE 13.00 premium=false]".
func (f *FeesAndCredits) String() string {
	parts := make([]string, 0, len(f.fees))
	for _, fee := range f.fees {
		parts = append(parts, fmt.Sprintf("%s %s premium=%t",
			fee.feeType, fee.amount.StringFixed(f.currency.Scale), fee.premium))
	}
	return f.currency.Code + "[" + strings.Join(parts, ", ") + "]"
}
