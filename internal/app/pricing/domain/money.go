package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyUnit identifies a currency and the number of decimal places its amounts carry.
type CurrencyUnit struct {
	Code  string
	Scale int32
}

// Supported currencies.
var (
	USD = CurrencyUnit{Code: "USD", Scale: 2}
	EUR = CurrencyUnit{Code: "EUR", Scale: 2}
	GBP = CurrencyUnit{Code: "GBP", Scale: 2}
	CAD = CurrencyUnit{Code: "CAD", Scale: 2}
	JPY = CurrencyUnit{Code: "JPY", Scale: 0}
)

var currencies = map[string]CurrencyUnit{
	USD.Code: USD,
	EUR.Code: EUR,
	GBP.Code: GBP,
	CAD.Code: CAD,
	JPY.Code: JPY,
}

// CurrencyOf returns the currency unit for an ISO 4217 code.
func CurrencyOf(code string) (CurrencyUnit, error) {
	unit, ok := currencies[strings.ToUpper(code)]
	if !ok {
		return CurrencyUnit{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return unit, nil
}

// IsZero returns true for the unset currency unit.
func (c CurrencyUnit) IsZero() bool {
	return c.Code == ""
}

func (c CurrencyUnit) String() string {
	return c.Code
}

// Money is an exact decimal amount in a single currency.
// Amounts are always held at the scale of their currency.
type Money struct {
	amount   decimal.Decimal
	currency CurrencyUnit
}

// NewMoney creates Money, rounding the amount half-even to the currency scale.
func NewMoney(currency CurrencyUnit, amount decimal.Decimal) Money {
	return Money{amount: amount.RoundBank(currency.Scale), currency: currency}
}

// MoneyOf parses a decimal string amount, e.g. MoneyOf(USD, "13.00").
func MoneyOf(currency CurrencyUnit, amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return NewMoney(currency, d), nil
}

// MustMoney is MoneyOf for literals known to be valid.
func MustMoney(currency CurrencyUnit, amount string) Money {
	m, err := MoneyOf(currency, amount)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroIn returns a zero amount in the given currency.
func ZeroIn(currency CurrencyUnit) Money {
	return NewMoney(currency, decimal.Zero)
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency unit.
func (m Money) Currency() CurrencyUnit {
	return m.currency
}

// Plus adds two amounts of the same currency.
func (m Money) Plus(other Money) (Money, error) {
	if err := m.checkCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Minus subtracts an amount of the same currency.
func (m Money) Minus(other Money) (Money, error) {
	if err := m.checkCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// MultipliedBy multiplies by a whole number. No rounding is involved.
func (m Money) MultipliedBy(n int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n))), currency: m.currency}
}

// MultipliedByFraction multiplies by an arbitrary decimal factor, rounding half-even
// to the currency scale.
func (m Money) MultipliedByFraction(factor decimal.Decimal) Money {
	return NewMoney(m.currency, m.amount.Mul(factor))
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative returns true if the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Equals compares currency and numeric value.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// AmountString renders the amount at currency scale, e.g. "13.00".
func (m Money) AmountString() string {
	return m.amount.StringFixed(m.currency.Scale)
}

// String renders as "USD 13.00".
func (m Money) String() string {
	return m.currency.Code + " " + m.AmountString()
}

func (m Money) checkCurrency(other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}
