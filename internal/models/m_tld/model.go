package m_tld

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the tlds table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation that inserts or replaces a TLD configuration.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		Columns,
		[]interface{}{
			data.TldName,
			data.Currency,
			data.CreateCostTransitions,
			data.RenewCostTransitions,
			data.EapFeeTransitions,
			&data.RestoreCost,
			data.PremiumListName,
			data.DefaultPromoTokens,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteMut creates a Spanner mutation for deleting a TLD.
func (m *Model) DeleteMut(tldName string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{tldName})
}
