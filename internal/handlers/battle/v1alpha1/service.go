// Package v1alpha1 handles the battle grpc service interface
package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified grpc service name
const ServiceName = "miniaturebattle.api.v1alpha1.BattleService"

// Method names exposed by the battle service
const (
	MethodInitializeBattle      = "InitializeBattle"
	MethodRollInitiative        = "RollInitiative"
	MethodSelectAction          = "SelectAction"
	MethodResolveSelectedAction = "ResolveSelectedAction"
	MethodGetBattleLog          = "GetBattleLog"
	MethodGetParticipantStatus  = "GetParticipantStatus"
	MethodGetBattle             = "GetBattle"
	MethodGetAvailableActions   = "GetAvailableActions"
	MethodCancelSelection       = "CancelSelection"
	MethodPauseBattle           = "PauseBattle"
	MethodResumeBattle          = "ResumeBattle"
	MethodAbortBattle           = "AbortBattle"
	MethodTickTimer             = "TickTimer"
	MethodTakeAITurn            = "TakeAITurn"
	MethodApplyCondition        = "ApplyCondition"
	MethodApplyHealing          = "ApplyHealing"
	MethodApplyAreaDamage       = "ApplyAreaDamage"
	MethodResetBattle           = "ResetBattle"
	MethodListHistory           = "ListHistory"
	MethodGetHistory            = "GetHistory"
	MethodGetStats              = "GetStats"
)

// BattleServiceServer is the server API for the battle service.
// Requests and responses are JSON-shaped structpb.Struct messages.
type BattleServiceServer interface {
	InitializeBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollInitiative(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SelectAction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResolveSelectedAction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetBattleLog(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetParticipantStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetAvailableActions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CancelSelection(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PauseBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResumeBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AbortBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	TickTimer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	TakeAITurn(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ApplyCondition(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ApplyHealing(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ApplyAreaDamage(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResetBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetStats(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(BattleServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func method(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(
			srv interface{},
			ctx context.Context,
			dec func(interface{}) error,
			interceptor grpc.UnaryServerInterceptor,
		) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(BattleServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(BattleServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// FullMethod returns the grpc path for a method name
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// BattleServiceDesc is the grpc.ServiceDesc for the battle service
var BattleServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BattleServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		method(MethodInitializeBattle, BattleServiceServer.InitializeBattle),
		method(MethodRollInitiative, BattleServiceServer.RollInitiative),
		method(MethodSelectAction, BattleServiceServer.SelectAction),
		method(MethodResolveSelectedAction, BattleServiceServer.ResolveSelectedAction),
		method(MethodGetBattleLog, BattleServiceServer.GetBattleLog),
		method(MethodGetParticipantStatus, BattleServiceServer.GetParticipantStatus),
		method(MethodGetBattle, BattleServiceServer.GetBattle),
		method(MethodGetAvailableActions, BattleServiceServer.GetAvailableActions),
		method(MethodCancelSelection, BattleServiceServer.CancelSelection),
		method(MethodPauseBattle, BattleServiceServer.PauseBattle),
		method(MethodResumeBattle, BattleServiceServer.ResumeBattle),
		method(MethodAbortBattle, BattleServiceServer.AbortBattle),
		method(MethodTickTimer, BattleServiceServer.TickTimer),
		method(MethodTakeAITurn, BattleServiceServer.TakeAITurn),
		method(MethodApplyCondition, BattleServiceServer.ApplyCondition),
		method(MethodApplyHealing, BattleServiceServer.ApplyHealing),
		method(MethodApplyAreaDamage, BattleServiceServer.ApplyAreaDamage),
		method(MethodResetBattle, BattleServiceServer.ResetBattle),
		method(MethodListHistory, BattleServiceServer.ListHistory),
		method(MethodGetHistory, BattleServiceServer.GetHistory),
		method(MethodGetStats, BattleServiceServer.GetStats),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "miniaturebattle/api/v1alpha1/battle.proto",
}

// RegisterBattleServiceServer registers the battle service on s
func RegisterBattleServiceServer(s grpc.ServiceRegistrar, srv BattleServiceServer) {
	s.RegisterService(&BattleServiceDesc, srv)
}

// BattleServiceClient calls battle service methods by name
type BattleServiceClient interface {
	Call(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type battleServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewBattleServiceClient creates a client for the battle service
func NewBattleServiceClient(cc grpc.ClientConnInterface) BattleServiceClient {
	return &battleServiceClient{cc: cc}
}

func (c *battleServiceClient) Call(
	ctx context.Context,
	method string,
	req *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	if req == nil {
		req = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
