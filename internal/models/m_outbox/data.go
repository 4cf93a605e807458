package m_outbox

import (
	"encoding/json"
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the outbox_events table.
type Data struct {
	EventID      string             `spanner:"event_id"`
	EventType    string             `spanner:"event_type"`
	AggregateID  string             `spanner:"aggregate_id"`
	Payload      spanner.NullJSON   `spanner:"payload"`
	Status       string             `spanner:"status"`
	CreatedAt    time.Time          `spanner:"created_at"`
	ProcessedAt  spanner.NullTime   `spanner:"processed_at"`
	RetryCount   int64              `spanner:"retry_count"`
	ErrorMessage spanner.NullString `spanner:"error_message"`
}

// PayloadString renders the JSON payload as text, or "" when it is NULL.
func (d *Data) PayloadString() string {
	switch p := d.Payload.Value.(type) {
	case nil:
		return ""
	case string:
		return p
	default:
		raw, err := json.Marshal(p)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}
