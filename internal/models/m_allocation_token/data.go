package m_allocation_token

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the allocation_tokens table.
// Exactly one of DiscountFraction and DiscountPrice is non-null.
type Data struct {
	Token                string              `spanner:"token"`
	TokenType            string              `spanner:"token_type"`
	TokenBehavior        string              `spanner:"token_behavior"`
	RedemptionHistoryID  spanner.NullString  `spanner:"redemption_history_id"`
	DomainName           spanner.NullString  `spanner:"domain_name"`
	AllowedRegistrarIDs  []string            `spanner:"allowed_registrar_ids"`
	AllowedTlds          []string            `spanner:"allowed_tlds"`
	AllowedEppActions    []string            `spanner:"allowed_epp_actions"`
	DiscountFraction     spanner.NullNumeric `spanner:"discount_fraction"`
	DiscountPrice        spanner.NullNumeric `spanner:"discount_price"`
	DiscountCurrency     spanner.NullString  `spanner:"discount_currency"`
	DiscountYears        int64               `spanner:"discount_years"`
	DiscountPremiums     bool                `spanner:"discount_premiums"`
	RegistrationBehavior string              `spanner:"registration_behavior"`
	RenewalPriceBehavior string              `spanner:"renewal_price_behavior"`
	RenewalPrice         spanner.NullNumeric `spanner:"renewal_price"`
	RenewalCurrency      spanner.NullString  `spanner:"renewal_currency"`
	StatusTransitions    spanner.NullJSON    `spanner:"status_transitions"`
	Version              int64               `spanner:"version"`
	CreatedAt            time.Time           `spanner:"created_at"`
	UpdatedAt            time.Time           `spanner:"updated_at"`
}

// StatusTransitionData is one serialized status schedule entry.
type StatusTransitionData struct {
	At     time.Time `json:"at"`
	Status string    `json:"status"`
}
