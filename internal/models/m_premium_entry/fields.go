package m_premium_entry

// Field name constants for the premium_entries table.
const (
	TableName = "premium_entries"

	PremiumListName = "premium_list_name"
	Label           = "label"
	Price           = "price"
	Currency        = "currency"
	CreatedAt       = "created_at"
)
