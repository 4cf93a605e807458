package m_billing_recurrence

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the billing_recurrences table.
type Data struct {
	RecurrenceID         string              `spanner:"recurrence_id"`
	DomainName           string              `spanner:"domain_name"`
	RegistrarID          string              `spanner:"registrar_id"`
	RenewalPriceBehavior string              `spanner:"renewal_price_behavior"`
	RenewalPrice         spanner.NullNumeric `spanner:"renewal_price"`
	RenewalPriceCurrency spanner.NullString  `spanner:"renewal_price_currency"`
	EventTime            time.Time           `spanner:"event_time"`
	RecurrenceEndTime    time.Time           `spanner:"recurrence_end_time"`
	CreatedAt            time.Time           `spanner:"created_at"`
}
