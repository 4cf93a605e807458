package contracts

import (
	"context"

	"cloud.google.com/go/spanner"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/registry-pricing-service/internal/pkg/committer"
)

// AllocationTokenRepository defines the interface for allocation token persistence.
type AllocationTokenRepository interface {
	// GetByToken loads a token, returning domain.ErrNonexistentAllocationToken when absent.
	GetByToken(ctx context.Context, token string) (*domain.AllocationToken, error)

	// GetByTokens loads the tokens that exist among the given strings, keyed by token string.
	GetByTokens(ctx context.Context, tokens []string) (map[string]*domain.AllocationToken, error)

	// GetByTokenInTxn loads a token inside a read-write transaction so that the
	// transaction conflicts with concurrent redemptions of the same token.
	GetByTokenInTxn(ctx context.Context, txn committer.Transaction, token string) (*domain.AllocationToken, error)

	// InsertMut creates a mutation that stores a new token.
	InsertMut(token *domain.AllocationToken) (*spanner.Mutation, error)

	// RedeemMut creates a mutation persisting the redemption stamp and bumping the version.
	RedeemMut(token *domain.AllocationToken) *spanner.Mutation
}
