package m_allocation_token

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the allocation_tokens table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a token.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns,
		[]interface{}{
			data.Token,
			data.TokenType,
			data.TokenBehavior,
			data.RedemptionHistoryID,
			data.DomainName,
			data.AllowedRegistrarIDs,
			data.AllowedTlds,
			data.AllowedEppActions,
			data.DiscountFraction,
			data.DiscountPrice,
			data.DiscountCurrency,
			data.DiscountYears,
			data.DiscountPremiums,
			data.RegistrationBehavior,
			data.RenewalPriceBehavior,
			data.RenewalPrice,
			data.RenewalCurrency,
			data.StatusTransitions,
			data.Version,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific token fields.
// The updates map should contain field names as keys and new values.
func (m *Model) UpdateMut(token string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	updates[UpdatedAt] = spanner.CommitTimestamp

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, Token)
	values = append(values, token)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}
