package pricing

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/registry-pricing-service/internal/pkg/committer"
)

func TestMapDomainErrorToGRPC(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode codes.Code
		wantEpp  int
		wantMsg  string
	}{
		{"nonexistent token", fmt.Errorf("%w: abc", domain.ErrNonexistentAllocationToken), codes.NotFound, EppAuthorizationError, ""},
		{"already redeemed", domain.ErrAlreadyRedeemedAllocationToken, codes.FailedPrecondition, EppStatusProhibitsOperation, "Alloc token was already redeemed"},
		{"not in promotion", domain.ErrAllocationTokenNotInPromotion, codes.FailedPrecondition, EppStatusProhibitsOperation, "Alloc token not in promo period"},
		{"wrong registrar", domain.ErrAllocationTokenNotValidForRegistrar, codes.FailedPrecondition, EppStatusProhibitsOperation, ""},
		{"premium name", domain.ErrAllocationTokenInvalidForPremiumName, codes.FailedPrecondition, EppCommandUseError, "Token not valid for premium name"},
		{"currency", domain.ErrAllocationTokenInvalidForCurrency, codes.FailedPrecondition, EppCommandUseError, ""},
		{"years", domain.ErrInvalidYears, codes.InvalidArgument, EppParameterValueRangeError, "Number of years must be positive"},
		{"domain name", domain.ErrInvalidDomainName, codes.InvalidArgument, EppParameterValueSyntaxError, ""},
		{"tld", fmt.Errorf("%w: zz", domain.ErrTldNotFound), codes.NotFound, EppObjectDoesNotExist, ""},
		{"version conflict", committer.ErrVersionConflict, codes.Aborted, EppCommandFailed, ""},
		{"wrapped commit failure", fmt.Errorf("failed to commit domain create: %w", domain.ErrAlreadyRedeemedAllocationToken), codes.FailedPrecondition, EppStatusProhibitsOperation, ""},
		{"unknown", errors.New("boom"), codes.Internal, EppCommandFailed, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapDomainErrorToGRPC(tt.err)

			st, ok := status.FromError(err)
			assert.True(t, ok)
			assert.Equal(t, tt.wantCode, st.Code())
			assert.Equal(t, tt.wantEpp, EppCode(err))
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, st.Message())
			}
		})
	}
}

func TestMapDomainErrorToGRPC_PassesThroughStatus(t *testing.T) {
	in := status.Error(codes.InvalidArgument, "token is required")
	assert.Equal(t, in, mapDomainErrorToGRPC(in))
	assert.Zero(t, EppCode(in))
}

func TestMapDomainErrorToGRPC_Nil(t *testing.T) {
	assert.NoError(t, mapDomainErrorToGRPC(nil))
}
