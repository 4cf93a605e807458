package m_billing_recurrence

// Field name constants for the billing_recurrences table.
const (
	TableName = "billing_recurrences"

	RecurrenceID         = "recurrence_id"
	DomainName           = "domain_name"
	RegistrarID          = "registrar_id"
	RenewalPriceBehavior = "renewal_price_behavior"
	RenewalPrice         = "renewal_price"
	RenewalPriceCurrency = "renewal_price_currency"
	EventTime            = "event_time"
	RecurrenceEndTime    = "recurrence_end_time"
	CreatedAt            = "created_at"
)

// Columns lists every column in read order.
var Columns = []string{
	RecurrenceID,
	DomainName,
	RegistrarID,
	RenewalPriceBehavior,
	RenewalPrice,
	RenewalPriceCurrency,
	EventTime,
	RecurrenceEndTime,
	CreatedAt,
}
