package pricing

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "registry.pricing.v1.PricingService"

// Full method names.
const (
	CheckFeeMethod     = "/" + ServiceName + "/CheckFee"
	CreateDomainMethod = "/" + ServiceName + "/CreateDomain"
	GetTokenMethod     = "/" + ServiceName + "/GetToken"
	ListEventsMethod   = "/" + ServiceName + "/ListEvents"
)

// PricingServiceServer is the server API of the pricing service. Requests and replies
// are google.protobuf.Struct messages whose fields are described in mappers.go.
type PricingServiceServer interface {
	CheckFee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateDomain(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetToken(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListEvents(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterPricingServiceServer registers srv with a gRPC server.
func RegisterPricingServiceServer(s grpc.ServiceRegistrar, srv PricingServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes the pricing service for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PricingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CheckFee", Handler: unaryHandler(CheckFeeMethod, PricingServiceServer.CheckFee)},
		{MethodName: "CreateDomain", Handler: unaryHandler(CreateDomainMethod, PricingServiceServer.CreateDomain)},
		{MethodName: "GetToken", Handler: unaryHandler(GetTokenMethod, PricingServiceServer.GetToken)},
		{MethodName: "ListEvents", Handler: unaryHandler(ListEventsMethod, PricingServiceServer.ListEvents)},
	},
	Metadata: "registry/pricing/v1/pricing.proto",
}

type unaryMethod func(PricingServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PricingServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(PricingServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// PricingServiceClient is the client API of the pricing service.
type PricingServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPricingServiceClient creates a client over a connection.
func NewPricingServiceClient(cc grpc.ClientConnInterface) *PricingServiceClient {
	return &PricingServiceClient{cc: cc}
}

func (c *PricingServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckFee prices a command.
func (c *PricingServiceClient) CheckFee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CheckFeeMethod, in, opts...)
}

// CreateDomain prices and commits a create.
func (c *PricingServiceClient) CreateDomain(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CreateDomainMethod, in, opts...)
}

// GetToken reads an allocation token.
func (c *PricingServiceClient) GetToken(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GetTokenMethod, in, opts...)
}

// ListEvents lists outbox events.
func (c *PricingServiceClient) ListEvents(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ListEventsMethod, in, opts...)
}
