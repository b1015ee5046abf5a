package rollerv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	DiceService_ServiceName         = "troller.v1.DiceService"
	DiceService_Roll_FullMethodName = "/troller.v1.DiceService/Roll"
)

// DiceServiceServer is the server API for troller.v1.DiceService.
type DiceServiceServer interface {
	Roll(context.Context, *RollRequest) (*RollResponse, error)
}

// UnimplementedDiceServiceServer returns Unimplemented for every method.
type UnimplementedDiceServiceServer struct{}

// Roll implements DiceServiceServer.
func (UnimplementedDiceServiceServer) Roll(context.Context, *RollRequest) (*RollResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Roll not implemented")
}

// DiceService_ServiceDesc describes troller.v1.DiceService for grpc.Server.
var DiceService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: DiceService_ServiceName,
	HandlerType: (*DiceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Roll",
			Handler: unaryHandler(DiceService_Roll_FullMethodName, func(srv any, ctx context.Context, in *RollRequest) (*RollResponse, error) {
				return srv.(DiceServiceServer).Roll(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "troller/v1/dice.proto",
}

// RegisterDiceServiceServer registers srv on s.
func RegisterDiceServiceServer(s grpc.ServiceRegistrar, srv DiceServiceServer) {
	s.RegisterService(&DiceService_ServiceDesc, srv)
}

// DiceServiceClient is the client API for troller.v1.DiceService.
type DiceServiceClient interface {
	Roll(ctx context.Context, in *RollRequest, opts ...grpc.CallOption) (*RollResponse, error)
}

type diceServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDiceServiceClient returns a client bound to cc.
func NewDiceServiceClient(cc grpc.ClientConnInterface) DiceServiceClient {
	return &diceServiceClient{cc: cc}
}

func (c *diceServiceClient) Roll(ctx context.Context, in *RollRequest, opts ...grpc.CallOption) (*RollResponse, error) {
	return invoke[RollRequest, RollResponse](ctx, c.cc, DiceService_Roll_FullMethodName, in, opts...)
}
