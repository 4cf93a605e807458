package pricing

import (
	"errors"
	"strconv"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/registry-pricing-service/internal/pkg/committer"
)

// ErrorDomain is the ErrorInfo domain attached to pricing failures.
const ErrorDomain = "registry.pricing"

// EPP result codes carried in the epp_code metadata of an error.
const (
	EppCommandUseError           = 2002
	EppParameterValueRangeError  = 2004
	EppParameterValueSyntaxError = 2005
	EppAuthorizationError        = 2201
	EppObjectDoesNotExist        = 2303
	EppStatusProhibitsOperation  = 2304
	EppCommandFailed             = 2400
	eppCodeMetadataKey           = "epp_code"
)

type errorMapping struct {
	target  error
	code    codes.Code
	eppCode int
	reason  string
}

// Ordered: the first mapping whose target matches wins.
var errorMappings = []errorMapping{
	{domain.ErrNonexistentAllocationToken, codes.NotFound, EppAuthorizationError, "TOKEN_NONEXISTENT"},
	{domain.ErrAllocationTokenInvalid, codes.FailedPrecondition, EppStatusProhibitsOperation, "TOKEN_INVALID"},
	{domain.ErrAllocationTokenInvalidForPremiumName, codes.FailedPrecondition, EppCommandUseError, "TOKEN_INVALID_FOR_PREMIUM_NAME"},
	{domain.ErrAllocationTokenInvalidForCurrency, codes.FailedPrecondition, EppCommandUseError, "TOKEN_INVALID_FOR_CURRENCY"},
	{domain.ErrInvalidYears, codes.InvalidArgument, EppParameterValueRangeError, "INVALID_YEARS"},
	{domain.ErrInvalidDomainName, codes.InvalidArgument, EppParameterValueSyntaxError, "INVALID_DOMAIN_NAME"},
	{domain.ErrTldNotFound, codes.NotFound, EppObjectDoesNotExist, "TLD_NOT_FOUND"},
	{domain.ErrBillingRecurrenceNotFound, codes.NotFound, EppObjectDoesNotExist, "RECURRENCE_NOT_FOUND"},
	{domain.ErrCurrencyMismatch, codes.FailedPrecondition, EppCommandFailed, "CURRENCY_MISMATCH"},
	{committer.ErrVersionConflict, codes.Aborted, EppCommandFailed, "VERSION_CONFLICT"},
}

// mapDomainErrorToGRPC converts domain errors to gRPC statuses. Known errors keep
// their message and carry the EPP result code as ErrorInfo metadata.
func mapDomainErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}

	// Already a status, e.g. from validation
	if _, ok := status.FromError(err); ok {
		return err
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return withEppCode(status.New(m.code, err.Error()), m.reason, m.eppCode)
		}
	}
	return withEppCode(status.New(codes.Internal, "internal server error"), "INTERNAL", EppCommandFailed)
}

func withEppCode(st *status.Status, reason string, eppCode int) error {
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   reason,
		Domain:   ErrorDomain,
		Metadata: map[string]string{eppCodeMetadataKey: strconv.Itoa(eppCode)},
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

// EppCode extracts the EPP result code from a status error, or 0 if none is attached.
func EppCode(err error) int {
	st, ok := status.FromError(err)
	if !ok {
		return 0
	}
	for _, d := range st.Details() {
		info, ok := d.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != ErrorDomain {
			continue
		}
		code, err := strconv.Atoi(info.GetMetadata()[eppCodeMetadataKey])
		if err == nil {
			return code
		}
	}
	return 0
}

// StatusFromError maps a use-case error to its gRPC status.
func StatusFromError(err error) *status.Status {
	return status.Convert(mapDomainErrorToGRPC(err))
}
