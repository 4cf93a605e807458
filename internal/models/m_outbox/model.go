package m_outbox

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the outbox_events table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a pending outbox event.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns,
		[]interface{}{
			data.EventID,
			data.EventType,
			data.AggregateID,
			data.Payload,
			data.Status,
			spanner.CommitTimestamp,
			spanner.NullTime{},
			int64(0),
			spanner.NullString{},
		},
	)
}

const purgeFilter = " WHERE " + Status + " = @status AND " + ProcessedAt + " < @cutoff"

// PurgeStatement builds a partitioned DML statement deleting events of the given
// status processed before cutoff.
func (m *Model) PurgeStatement(status string, cutoff time.Time) spanner.Statement {
	return spanner.Statement{
		SQL:    "DELETE FROM " + TableName + purgeFilter,
		Params: map[string]interface{}{"status": status, "cutoff": cutoff},
	}
}

// CountStatement builds a query counting the events PurgeStatement would delete.
func (m *Model) CountStatement(status string, cutoff time.Time) spanner.Statement {
	return spanner.Statement{
		SQL:    "SELECT COUNT(*) FROM " + TableName + purgeFilter,
		Params: map[string]interface{}{"status": status, "cutoff": cutoff},
	}
}
