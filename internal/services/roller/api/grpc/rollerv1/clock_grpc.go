package rollerv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ClockService_ServiceName                = "troller.v1.ClockService"
	ClockService_CreateClock_FullMethodName = "/troller.v1.ClockService/CreateClock"
	ClockService_GetClock_FullMethodName    = "/troller.v1.ClockService/GetClock"
	ClockService_ListClocks_FullMethodName  = "/troller.v1.ClockService/ListClocks"
	ClockService_BumpClock_FullMethodName   = "/troller.v1.ClockService/BumpClock"
	ClockService_DeleteClock_FullMethodName = "/troller.v1.ClockService/DeleteClock"
	ClockService_RenderClock_FullMethodName = "/troller.v1.ClockService/RenderClock"
)

// ClockServiceServer is the server API for troller.v1.ClockService.
type ClockServiceServer interface {
	CreateClock(context.Context, *CreateClockRequest) (*CreateClockResponse, error)
	GetClock(context.Context, *GetClockRequest) (*GetClockResponse, error)
	ListClocks(context.Context, *ListClocksRequest) (*ListClocksResponse, error)
	BumpClock(context.Context, *BumpClockRequest) (*BumpClockResponse, error)
	DeleteClock(context.Context, *DeleteClockRequest) (*DeleteClockResponse, error)
	RenderClock(context.Context, *RenderClockRequest) (*RenderClockResponse, error)
}

// UnimplementedClockServiceServer returns Unimplemented for every method.
type UnimplementedClockServiceServer struct{}

func (UnimplementedClockServiceServer) CreateClock(context.Context, *CreateClockRequest) (*CreateClockResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateClock not implemented")
}

func (UnimplementedClockServiceServer) GetClock(context.Context, *GetClockRequest) (*GetClockResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetClock not implemented")
}

func (UnimplementedClockServiceServer) ListClocks(context.Context, *ListClocksRequest) (*ListClocksResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListClocks not implemented")
}

func (UnimplementedClockServiceServer) BumpClock(context.Context, *BumpClockRequest) (*BumpClockResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method BumpClock not implemented")
}

func (UnimplementedClockServiceServer) DeleteClock(context.Context, *DeleteClockRequest) (*DeleteClockResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteClock not implemented")
}

func (UnimplementedClockServiceServer) RenderClock(context.Context, *RenderClockRequest) (*RenderClockResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RenderClock not implemented")
}

// ClockService_ServiceDesc describes troller.v1.ClockService for grpc.Server.
var ClockService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ClockService_ServiceName,
	HandlerType: (*ClockServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateClock",
			Handler: unaryHandler(ClockService_CreateClock_FullMethodName, func(srv any, ctx context.Context, in *CreateClockRequest) (*CreateClockResponse, error) {
				return srv.(ClockServiceServer).CreateClock(ctx, in)
			}),
		},
		{
			MethodName: "GetClock",
			Handler: unaryHandler(ClockService_GetClock_FullMethodName, func(srv any, ctx context.Context, in *GetClockRequest) (*GetClockResponse, error) {
				return srv.(ClockServiceServer).GetClock(ctx, in)
			}),
		},
		{
			MethodName: "ListClocks",
			Handler: unaryHandler(ClockService_ListClocks_FullMethodName, func(srv any, ctx context.Context, in *ListClocksRequest) (*ListClocksResponse, error) {
				return srv.(ClockServiceServer).ListClocks(ctx, in)
			}),
		},
		{
			MethodName: "BumpClock",
			Handler: unaryHandler(ClockService_BumpClock_FullMethodName, func(srv any, ctx context.Context, in *BumpClockRequest) (*BumpClockResponse, error) {
				return srv.(ClockServiceServer).BumpClock(ctx, in)
			}),
		},
		{
			MethodName: "DeleteClock",
			Handler: unaryHandler(ClockService_DeleteClock_FullMethodName, func(srv any, ctx context.Context, in *DeleteClockRequest) (*DeleteClockResponse, error) {
				return srv.(ClockServiceServer).DeleteClock(ctx, in)
			}),
		},
		{
			MethodName: "RenderClock",
			Handler: unaryHandler(ClockService_RenderClock_FullMethodName, func(srv any, ctx context.Context, in *RenderClockRequest) (*RenderClockResponse, error) {
				return srv.(ClockServiceServer).RenderClock(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "troller/v1/clock.proto",
}

// RegisterClockServiceServer registers srv on s.
func RegisterClockServiceServer(s grpc.ServiceRegistrar, srv ClockServiceServer) {
	s.RegisterService(&ClockService_ServiceDesc, srv)
}

// ClockServiceClient is the client API for troller.v1.ClockService.
type ClockServiceClient interface {
	CreateClock(ctx context.Context, in *CreateClockRequest, opts ...grpc.CallOption) (*CreateClockResponse, error)
	GetClock(ctx context.Context, in *GetClockRequest, opts ...grpc.CallOption) (*GetClockResponse, error)
	ListClocks(ctx context.Context, in *ListClocksRequest, opts ...grpc.CallOption) (*ListClocksResponse, error)
	BumpClock(ctx context.Context, in *BumpClockRequest, opts ...grpc.CallOption) (*BumpClockResponse, error)
	DeleteClock(ctx context.Context, in *DeleteClockRequest, opts ...grpc.CallOption) (*DeleteClockResponse, error)
	RenderClock(ctx context.Context, in *RenderClockRequest, opts ...grpc.CallOption) (*RenderClockResponse, error)
}

type clockServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewClockServiceClient returns a client bound to cc.
func NewClockServiceClient(cc grpc.ClientConnInterface) ClockServiceClient {
	return &clockServiceClient{cc: cc}
}

func (c *clockServiceClient) CreateClock(ctx context.Context, in *CreateClockRequest, opts ...grpc.CallOption) (*CreateClockResponse, error) {
	return invoke[CreateClockRequest, CreateClockResponse](ctx, c.cc, ClockService_CreateClock_FullMethodName, in, opts...)
}

func (c *clockServiceClient) GetClock(ctx context.Context, in *GetClockRequest, opts ...grpc.CallOption) (*GetClockResponse, error) {
	return invoke[GetClockRequest, GetClockResponse](ctx, c.cc, ClockService_GetClock_FullMethodName, in, opts...)
}

func (c *clockServiceClient) ListClocks(ctx context.Context, in *ListClocksRequest, opts ...grpc.CallOption) (*ListClocksResponse, error) {
	return invoke[ListClocksRequest, ListClocksResponse](ctx, c.cc, ClockService_ListClocks_FullMethodName, in, opts...)
}

func (c *clockServiceClient) BumpClock(ctx context.Context, in *BumpClockRequest, opts ...grpc.CallOption) (*BumpClockResponse, error) {
	return invoke[BumpClockRequest, BumpClockResponse](ctx, c.cc, ClockService_BumpClock_FullMethodName, in, opts...)
}

func (c *clockServiceClient) DeleteClock(ctx context.Context, in *DeleteClockRequest, opts ...grpc.CallOption) (*DeleteClockResponse, error) {
	return invoke[DeleteClockRequest, DeleteClockResponse](ctx, c.cc, ClockService_DeleteClock_FullMethodName, in, opts...)
}

func (c *clockServiceClient) RenderClock(ctx context.Context, in *RenderClockRequest, opts ...grpc.CallOption) (*RenderClockResponse, error) {
	return invoke[RenderClockRequest, RenderClockResponse](ctx, c.cc, ClockService_RenderClock_FullMethodName, in, opts...)
}
