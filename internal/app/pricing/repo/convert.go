package repo

import (
	"encoding/json"
	"fmt"
	"math/big"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
)

// moneyToRat converts Money to a NUMERIC column value.
func moneyToRat(m domain.Money) *big.Rat {
	return m.Amount().Rat()
}

// ratToMoney converts a NUMERIC column value to Money at the currency scale.
func ratToMoney(rat *big.Rat, currencyCode string) (domain.Money, error) {
	currency, err := domain.CurrencyOf(currencyCode)
	if err != nil {
		return domain.Money{}, err
	}
	return domain.NewMoney(currency, decimal.NewFromBigRat(rat, currency.Scale)), nil
}

// nullMoney converts an optional Money to nullable amount and currency columns.
func nullMoney(m *domain.Money) (spanner.NullNumeric, spanner.NullString) {
	if m == nil {
		return spanner.NullNumeric{}, spanner.NullString{}
	}
	return spanner.NullNumeric{Numeric: *moneyToRat(*m), Valid: true},
		spanner.NullString{StringVal: m.Currency().Code, Valid: true}
}

// fromNullMoney converts nullable amount and currency columns to an optional Money.
func fromNullMoney(amount spanner.NullNumeric, currency spanner.NullString) (*domain.Money, error) {
	if !amount.Valid {
		return nil, nil
	}
	if !currency.Valid {
		return nil, fmt.Errorf("amount %s has no currency", amount.Numeric.FloatString(2))
	}
	m, err := ratToMoney(&amount.Numeric, currency.StringVal)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// toNullJSON wraps a value for a JSON column.
func toNullJSON(v interface{}) spanner.NullJSON {
	return spanner.NullJSON{Value: v, Valid: v != nil}
}

// decodeNullJSON decodes a JSON column into out. It returns false for NULL.
func decodeNullJSON(col spanner.NullJSON, out interface{}) (bool, error) {
	if !col.Valid {
		return false, nil
	}
	raw, err := json.Marshal(col.Value)
	if err != nil {
		return false, fmt.Errorf("failed to re-encode json column: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode json column: %w", err)
	}
	return true, nil
}

// nullString maps "" to NULL.
func nullString(s string) spanner.NullString {
	return spanner.NullString{StringVal: s, Valid: s != ""}
}
