package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "configurator.v1alpha1.ConfiguratorService"

// Method names of the configurator service
const (
	MethodStartSession  = "StartSession"
	MethodSetContainer  = "SetContainer"
	MethodSetSize       = "SetSize"
	MethodToggleOption  = "ToggleOption"
	MethodReset         = "Reset"
	MethodGetSnapshot   = "GetSnapshot"
	MethodQuoteLineItem = "QuoteLineItem"
	MethodEndSession    = "EndSession"
)

// ConfiguratorServer is the server API of the configurator service. Requests
// and responses are google.protobuf.Struct messages.
type ConfiguratorServer interface {
	StartSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetContainer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetSize(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ToggleOption(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Reset(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSnapshot(context.Context, *structpb.Struct) (*structpb.Struct, error)
	QuoteLineItem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EndSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(ConfiguratorServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// ServiceDesc describes the configurator service for grpc.Server
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ConfiguratorServer)(nil),
	Methods: []grpc.MethodDesc{
		method(MethodStartSession, ConfiguratorServer.StartSession),
		method(MethodSetContainer, ConfiguratorServer.SetContainer),
		method(MethodSetSize, ConfiguratorServer.SetSize),
		method(MethodToggleOption, ConfiguratorServer.ToggleOption),
		method(MethodReset, ConfiguratorServer.Reset),
		method(MethodGetSnapshot, ConfiguratorServer.GetSnapshot),
		method(MethodQuoteLineItem, ConfiguratorServer.QuoteLineItem),
		method(MethodEndSession, ConfiguratorServer.EndSession),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "configurator/v1alpha1/configurator.proto",
}

// RegisterConfiguratorServer registers srv with a gRPC server
func RegisterConfiguratorServer(s grpc.ServiceRegistrar, srv ConfiguratorServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// FullMethod returns the path a client invokes for a method name
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func method(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ConfiguratorServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ConfiguratorServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
