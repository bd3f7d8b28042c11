package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// The alarm service exchanges google.protobuf.Struct messages, so clients
// need no generated stubs: any gRPC client can call it with JSON-like fields.
const ServiceName = "alarm.v1.AlarmService"

const (
	MethodAddRule        = "/" + ServiceName + "/AddRule"
	MethodPostReading    = "/" + ServiceName + "/PostReading"
	MethodGetOccurrences = "/" + ServiceName + "/GetOccurrences"
	MethodPostLimiter    = "/" + ServiceName + "/PostLimiter"
)

type AlarmServiceServer interface {
	AddRule(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PostReading(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetOccurrences(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PostLimiter(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(AlarmServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AlarmServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AlarmServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var AlarmServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AlarmServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "AddRule",
			Handler:    unaryHandler(MethodAddRule, AlarmServiceServer.AddRule),
		},
		{
			MethodName: "PostReading",
			Handler:    unaryHandler(MethodPostReading, AlarmServiceServer.PostReading),
		},
		{
			MethodName: "GetOccurrences",
			Handler:    unaryHandler(MethodGetOccurrences, AlarmServiceServer.GetOccurrences),
		},
		{
			MethodName: "PostLimiter",
			Handler:    unaryHandler(MethodPostLimiter, AlarmServiceServer.PostLimiter),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "alarm/v1/alarm_service",
}

func RegisterAlarmServiceServer(s grpc.ServiceRegistrar, srv AlarmServiceServer) {
	s.RegisterService(&AlarmServiceDesc, srv)
}

type AlarmServiceClient interface {
	AddRule(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	PostReading(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetOccurrences(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	PostLimiter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type alarmServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAlarmServiceClient(cc grpc.ClientConnInterface) AlarmServiceClient {
	return &alarmServiceClient{cc: cc}
}

func (c *alarmServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *alarmServiceClient) AddRule(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodAddRule, in, opts...)
}

func (c *alarmServiceClient) PostReading(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodPostReading, in, opts...)
}

func (c *alarmServiceClient) GetOccurrences(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetOccurrences, in, opts...)
}

func (c *alarmServiceClient) PostLimiter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodPostLimiter, in, opts...)
}
