package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
)

// TokenRequest is the context an allocation token is validated against.
type TokenRequest struct {
	RegistrarID string
	DomainName  string
	Tld         *domain.Tld
	Command     domain.CommandName
	Now         time.Time
}

// AllocationTokenResolver loads allocation tokens and checks that they may be used
// for a request.
type AllocationTokenResolver struct {
	tokens        contracts.AllocationTokenRepository
	premiumPricer PremiumPricer
}

// NewAllocationTokenResolver creates a resolver.
func NewAllocationTokenResolver(tokens contracts.AllocationTokenRepository, premiumPricer PremiumPricer) *AllocationTokenResolver {
	return &AllocationTokenResolver{tokens: tokens, premiumPricer: premiumPricer}
}

// LoadAllocationTokenFromExtension loads the token named in a request extension and
// validates it. Checks run in this order and the first failure wins: redemption,
// registrar, promotion window, then the domain checks of CheckTokenAgainstDomain.
func (r *AllocationTokenResolver) LoadAllocationTokenFromExtension(
	ctx context.Context,
	req TokenRequest,
	tokenString string,
) (*domain.AllocationToken, error) {
	if tokenString == "" {
		return nil, domain.ErrNonexistentAllocationToken
	}

	token, err := r.tokens.GetByToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if err := validateTokenEntity(token, req); err != nil {
		return nil, err
	}
	if err := r.CheckTokenAgainstDomain(ctx, req, token); err != nil {
		return nil, err
	}
	return token, nil
}

// LoadTokenFromExtensionOrGetDefault returns the explicit token when extension is
// non-nil, even if a default promotion would also apply. Without an extension it
// returns the first default-promotion token of the TLD that is valid for the request,
// or nil if there is none.
func (r *AllocationTokenResolver) LoadTokenFromExtensionOrGetDefault(
	ctx context.Context,
	req TokenRequest,
	extension *string,
) (*domain.AllocationToken, error) {
	if extension != nil {
		return r.LoadAllocationTokenFromExtension(ctx, req, *extension)
	}
	return r.checkForDefaultToken(ctx, req)
}

// CheckTokenAgainstDomain verifies that token may be used on the requested domain:
// the bound domain name, the TLD and command allow-lists, and premium eligibility.
//
// A bound domain that differs from the request yields
// domain.ErrAllocationTokenNotValidForDomain. Flows validate the extension before
// pricing, so seeing it here means the caller is broken.
func (r *AllocationTokenResolver) CheckTokenAgainstDomain(
	ctx context.Context,
	req TokenRequest,
	token *domain.AllocationToken,
) error {
	name, err := domain.ParseDomainName(req.DomainName)
	if err != nil {
		return err
	}
	if token.DomainName() != "" && token.DomainName() != name.String() {
		return domain.ErrAllocationTokenNotValidForDomain
	}
	if !token.AllowsTld(name.Tld()) {
		return domain.ErrAllocationTokenNotValidForTld
	}
	if !token.AllowsCommand(req.Command) {
		return domain.ErrAllocationTokenNotValidForCommand
	}

	prices, err := r.premiumPricer.DomainPrices(ctx, req.Tld, name, req.Now)
	if err != nil {
		return err
	}
	if DiscountTokenInvalidForPremiumName(token, prices.IsPremium) {
		return domain.ErrAllocationTokenInvalidForPremiumName
	}
	return nil
}

// TokenIsValidAgainstDomain is CheckTokenAgainstDomain as a predicate. Ordinary
// rejections return false with a nil error; a bound-domain mismatch and lookup
// failures are returned as errors.
func (r *AllocationTokenResolver) TokenIsValidAgainstDomain(
	ctx context.Context,
	req TokenRequest,
	token *domain.AllocationToken,
) (bool, error) {
	err := r.CheckTokenAgainstDomain(ctx, req, token)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrAllocationTokenNotValidForDomain):
		return false, err
	case errors.Is(err, domain.ErrAllocationTokenInvalid),
		errors.Is(err, domain.ErrAllocationTokenInvalidForPremiumName):
		return false, nil
	default:
		return false, err
	}
}

// checkForDefaultToken walks the TLD's default promotions in order.
func (r *AllocationTokenResolver) checkForDefaultToken(ctx context.Context, req TokenRequest) (*domain.AllocationToken, error) {
	ids := req.Tld.DefaultPromoTokens()
	if len(ids) == 0 {
		return nil, nil
	}
	tokens, err := r.tokens.GetByTokens(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load default tokens of tld %s: %w", req.Tld.Name(), err)
	}

	for _, id := range ids {
		token, ok := tokens[id]
		if !ok {
			continue
		}
		if err := validateTokenEntity(token, req); err != nil {
			continue
		}
		valid, err := r.TokenIsValidAgainstDomain(ctx, req, token)
		if errors.Is(err, domain.ErrAllocationTokenNotValidForDomain) {
			// a default bound to another name is simply not applicable here
			continue
		}
		if err != nil {
			return nil, err
		}
		if valid {
			return token, nil
		}
	}
	return nil, nil
}

// validateTokenEntity checks redemption, registrar and promotion window.
func validateTokenEntity(token *domain.AllocationToken, req TokenRequest) error {
	if token.IsRedeemed() {
		return domain.ErrAlreadyRedeemedAllocationToken
	}
	if !token.AllowsRegistrar(req.RegistrarID) {
		return domain.ErrAllocationTokenNotValidForRegistrar
	}
	// a token with only the start-of-time entry has no promotion window
	if token.HasPromotionSchedule() && token.StatusAt(req.Now) != domain.TokenStatusValid {
		return domain.ErrAllocationTokenNotInPromotion
	}
	return nil
}

// DiscountTokenInvalidForPremiumName reports whether token carries a discount that
// may not be applied because the name is premium and the token does not discount
// premiums.
func DiscountTokenInvalidForPremiumName(token *domain.AllocationToken, isPremium bool) bool {
	return token.Discount().IsSet() && isPremium && !token.ShouldDiscountPremiums()
}

// RedeemToken returns a copy of a SINGLE_USE token stamped with the history entry
// that consumed it. Any other token type is a caller error.
func RedeemToken(token *domain.AllocationToken, historyID string, at time.Time) (*domain.AllocationToken, error) {
	redeemed, err := token.WithRedemption(historyID, at)
	if err != nil {
		return nil, fmt.Errorf("token %s (%s): %w", token.Token(), token.TokenType(), err)
	}
	return redeemed, nil
}
