package domain

import "errors"

// Domain errors as sentinel values
var (
	// Money and configuration errors
	ErrCurrencyMismatch   = errors.New("currency mismatch")
	ErrUnknownCurrency    = errors.New("unknown currency")
	ErrInvalidTransitions = errors.New("invalid timed transitions")
	ErrInvalidTld         = errors.New("invalid tld configuration")
	ErrTldNotFound        = errors.New("tld not found")
	ErrInvalidDomainName  = errors.New("invalid domain name")

	// Pricing errors
	ErrInvalidYears                         = errors.New("Number of years must be positive")
	ErrAllocationTokenInvalidForPremiumName = errors.New("Token not valid for premium name")
	ErrAllocationTokenInvalidForCurrency    = errors.New("Token and domain currencies do not match.")
	ErrMissingRenewalPrice                  = errors.New("renewal price cannot be empty when renewal behavior is SPECIFIED")
	ErrUnknownRenewalPriceBehavior          = errors.New("unknown renewal price behavior")

	// Allocation token errors
	ErrNonexistentAllocationToken = errors.New("The allocation token is invalid")
	ErrInvalidAllocationToken     = errors.New("invalid allocation token")
	ErrOnlySingleUseRedeemable    = errors.New("Only SINGLE_USE tokens can be marked as redeemed")

	// ErrAllocationTokenInvalid is the category shared by every rejection of an
	// existing token. Match it with errors.Is.
	ErrAllocationTokenInvalid = errors.New("allocation token invalid")

	ErrAllocationTokenNotInPromotion       = tokenInvalid("Alloc token not in promo period")
	ErrAllocationTokenNotValidForRegistrar = tokenInvalid("Alloc token invalid for client")
	ErrAlreadyRedeemedAllocationToken      = tokenInvalid("Alloc token was already redeemed")
	ErrAllocationTokenNotValidForTld       = tokenInvalid("Alloc token invalid for TLD")
	ErrAllocationTokenNotValidForCommand   = tokenInvalid("Alloc token invalid for command")
	ErrAllocationTokenNotValidForDomain    = tokenInvalid("Alloc token invalid for domain")

	// Billing recurrence errors
	ErrBillingRecurrenceNotFound = errors.New("billing recurrence not found")
)

// tokenInvalidError is a token rejection. Messages stay within 32 characters so they
// fit in domain check results.
type tokenInvalidError struct {
	msg string
}

func tokenInvalid(msg string) error {
	return &tokenInvalidError{msg: msg}
}

func (e *tokenInvalidError) Error() string {
	return e.msg
}

func (e *tokenInvalidError) Is(target error) bool {
	return target == ErrAllocationTokenInvalid
}
