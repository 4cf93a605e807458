package m_allocation_token

// Field name constants for the allocation_tokens table.
const (
	TableName = "allocation_tokens"

	Token                = "token"
	TokenType            = "token_type"
	TokenBehavior        = "token_behavior"
	RedemptionHistoryID  = "redemption_history_id"
	DomainName           = "domain_name"
	AllowedRegistrarIDs  = "allowed_registrar_ids"
	AllowedTlds          = "allowed_tlds"
	AllowedEppActions    = "allowed_epp_actions"
	DiscountFraction     = "discount_fraction"
	DiscountPrice        = "discount_price"
	DiscountCurrency     = "discount_currency"
	DiscountYears        = "discount_years"
	DiscountPremiums     = "discount_premiums"
	RegistrationBehavior = "registration_behavior"
	RenewalPriceBehavior = "renewal_price_behavior"
	RenewalPrice         = "renewal_price"
	RenewalCurrency      = "renewal_currency"
	StatusTransitions    = "status_transitions"
	Version              = "version"
	CreatedAt            = "created_at"
	UpdatedAt            = "updated_at"
)

// Columns lists every column in read order.
var Columns = []string{
	Token,
	TokenType,
	TokenBehavior,
	RedemptionHistoryID,
	DomainName,
	AllowedRegistrarIDs,
	AllowedTlds,
	AllowedEppActions,
	DiscountFraction,
	DiscountPrice,
	DiscountCurrency,
	DiscountYears,
	DiscountPremiums,
	RegistrationBehavior,
	RenewalPriceBehavior,
	RenewalPrice,
	RenewalCurrency,
	StatusTransitions,
	Version,
	CreatedAt,
	UpdatedAt,
}
