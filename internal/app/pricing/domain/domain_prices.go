package domain

// DomainPrices is the premium lookup result for a name at an instant.
type DomainPrices struct {
	IsPremium  bool
	CreateCost Money
	RenewCost  Money
}
