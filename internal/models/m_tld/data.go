package m_tld

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the tlds table.
// Schedules are stored as JSON arrays of {"at": RFC3339, "amount": "13.00"}.
type Data struct {
	TldName               string             `spanner:"tld_name"`
	Currency              string             `spanner:"currency"`
	CreateCostTransitions spanner.NullJSON   `spanner:"create_cost_transitions"`
	RenewCostTransitions  spanner.NullJSON   `spanner:"renew_cost_transitions"`
	EapFeeTransitions     spanner.NullJSON   `spanner:"eap_fee_transitions"`
	RestoreCost           big.Rat            `spanner:"restore_cost"`
	PremiumListName       spanner.NullString `spanner:"premium_list_name"`
	DefaultPromoTokens    []string           `spanner:"default_promo_tokens"`
	CreatedAt             time.Time          `spanner:"created_at"`
	UpdatedAt             time.Time          `spanner:"updated_at"`
}

// TransitionData is one serialized schedule entry.
type TransitionData struct {
	At     time.Time `json:"at"`
	Amount string    `json:"amount"`
}
