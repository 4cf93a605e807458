package m_billing_recurrence

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the billing_recurrences table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a recurrence.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns,
		[]interface{}{
			data.RecurrenceID,
			data.DomainName,
			data.RegistrarID,
			data.RenewalPriceBehavior,
			data.RenewalPrice,
			data.RenewalPriceCurrency,
			data.EventTime,
			data.RecurrenceEndTime,
			spanner.CommitTimestamp,
		},
	)
}
