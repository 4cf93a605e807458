package m_tld

// Field name constants for the tlds table.
const (
	TableName = "tlds"

	TldName               = "tld_name"
	Currency              = "currency"
	CreateCostTransitions = "create_cost_transitions"
	RenewCostTransitions  = "renew_cost_transitions"
	EapFeeTransitions     = "eap_fee_transitions"
	RestoreCost           = "restore_cost"
	PremiumListName       = "premium_list_name"
	DefaultPromoTokens    = "default_promo_tokens"
	CreatedAt             = "created_at"
	UpdatedAt             = "updated_at"
)

// Columns lists every column in read order.
var Columns = []string{
	TldName,
	Currency,
	CreateCostTransitions,
	RenewCostTransitions,
	EapFeeTransitions,
	RestoreCost,
	PremiumListName,
	DefaultPromoTokens,
	CreatedAt,
	UpdatedAt,
}
