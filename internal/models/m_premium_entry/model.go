package m_premium_entry

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the premium_entries table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation that inserts or replaces a premium entry.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{PremiumListName, Label, Price, Currency, CreatedAt},
		[]interface{}{data.PremiumListName, data.Label, &data.Price, data.Currency, spanner.CommitTimestamp},
	)
}

// Key returns the primary key of an entry.
func (m *Model) Key(listName, label string) spanner.Key {
	return spanner.Key{listName, label}
}

// DeleteListMut creates a Spanner mutation deleting every entry of a list.
func (m *Model) DeleteListMut(listName string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{listName}.AsPrefix())
}
