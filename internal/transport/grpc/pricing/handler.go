package pricing

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/queries/get_token"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/usecases/check_fee"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/usecases/create_domain"
)

// Handler implements PricingServiceServer.
// It's a thin coordinator that delegates to use cases and queries.
type Handler struct {
	// Commands
	checkFee     *check_fee.Interactor
	createDomain *create_domain.Interactor

	// Queries
	getToken   *get_token.Query
	listEvents *list_events.Query
}

var _ PricingServiceServer = (*Handler)(nil)

// NewHandler creates a new gRPC pricing handler.
func NewHandler(
	checkFee *check_fee.Interactor,
	createDomain *create_domain.Interactor,
	getToken *get_token.Query,
	listEvents *list_events.Query,
) *Handler {
	return &Handler{
		checkFee:     checkFee,
		createDomain: createDomain,
		getToken:     getToken,
		listEvents:   listEvents,
	}
}

// CheckFee prices a command for a domain.
func (h *Handler) CheckFee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	// 1. Validate request
	if err := validateCheckFeeRequest(req); err != nil {
		return nil, err
	}

	// 2. Map to application request
	appReq, err := structToCheckFeeRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	// 3. Execute use case
	resp, err := h.checkFee.Execute(ctx, appReq)
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	// 4. Map reply
	return encodeReply(checkFeeResponseToStruct(resp))
}

// CreateDomain prices a create and commits its billing side effects.
func (h *Handler) CreateDomain(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := validateCreateDomainRequest(req); err != nil {
		return nil, err
	}

	appReq, err := structToCreateDomainRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	resp, err := h.createDomain.Execute(ctx, appReq)
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return encodeReply(createDomainResponseToStruct(resp))
}

// GetToken retrieves an allocation token.
func (h *Handler) GetToken(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := validateGetTokenRequest(req); err != nil {
		return nil, err
	}

	token, err := h.getToken.Execute(ctx, &get_token.Request{Token: stringField(req, FieldToken)})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return encodeReply(tokenToStruct(token))
}

// ListEvents lists outbox events for debugging and monitoring.
func (h *Handler) ListEvents(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := validateListEventsRequest(req); err != nil {
		return nil, err
	}

	appReq, err := structToListEventsRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	events, err := h.listEvents.Execute(ctx, appReq)
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return encodeReply(eventsToStruct(events))
}

func encodeReply(reply *structpb.Struct, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode reply: %v", err)
	}
	return reply, nil
}
