package m_premium_entry

import (
	"math/big"
	"time"
)

// Data represents the database model for the premium_entries table.
type Data struct {
	PremiumListName string    `spanner:"premium_list_name"`
	Label           string    `spanner:"label"`
	Price           big.Rat   `spanner:"price"`
	Currency        string    `spanner:"currency"`
	CreatedAt       time.Time `spanner:"created_at"`
}
