package get_token

import (
	"context"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
)

// Request contains the token string to retrieve.
type Request struct {
	Token string
}

// Query handles the get token query use case.
type Query struct {
	tokens contracts.AllocationTokenRepository
}

// NewQuery creates a new get token query.
func NewQuery(tokens contracts.AllocationTokenRepository) *Query {
	return &Query{
		tokens: tokens,
	}
}

// Execute retrieves a token by its string.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.AllocationToken, error) {
	if req.Token == "" {
		return nil, domain.ErrNonexistentAllocationToken
	}
	return q.tokens.GetByToken(ctx, req.Token)
}
