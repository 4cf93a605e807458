package pricing

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
)

// validateCheckFeeRequest validates the CheckFee request.
func validateCheckFeeRequest(req *structpb.Struct) error {
	if req == nil {
		return status.Error(codes.InvalidArgument, "request is required")
	}
	if stringField(req, FieldCommand) == "" {
		return status.Error(codes.InvalidArgument, "command is required")
	}
	if _, err := domain.ParseCommandName(stringField(req, FieldCommand)); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if stringField(req, FieldDomainName) == "" {
		return status.Error(codes.InvalidArgument, "domain_name is required")
	}
	if stringField(req, FieldRegistrarID) == "" {
		return status.Error(codes.InvalidArgument, "registrar_id is required")
	}
	if _, err := intField(req, FieldYears); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if _, err := timeField(req, FieldAsOf); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

// validateCreateDomainRequest validates the CreateDomain request.
func validateCreateDomainRequest(req *structpb.Struct) error {
	if req == nil {
		return status.Error(codes.InvalidArgument, "request is required")
	}
	if stringField(req, FieldDomainName) == "" {
		return status.Error(codes.InvalidArgument, "domain_name is required")
	}
	if stringField(req, FieldRegistrarID) == "" {
		return status.Error(codes.InvalidArgument, "registrar_id is required")
	}
	if _, err := intField(req, FieldYears); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

// validateGetTokenRequest validates the GetToken request.
func validateGetTokenRequest(req *structpb.Struct) error {
	if req == nil || stringField(req, FieldToken) == "" {
		return status.Error(codes.InvalidArgument, "token is required")
	}
	return nil
}

// validateListEventsRequest validates the ListEvents request.
func validateListEventsRequest(req *structpb.Struct) error {
	if req == nil {
		return nil
	}
	limit, err := intField(req, FieldLimit)
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if limit < 0 {
		return status.Error(codes.InvalidArgument, "limit cannot be negative")
	}
	return nil
}
