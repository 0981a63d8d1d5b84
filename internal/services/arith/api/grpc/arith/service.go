// Package arith publishes binding modules as gRPC services.
//
// Each module becomes one service whose name is the module name and whose
// unary methods are the module's functions, so a call to add on pycpp_build
// is the RPC /pycpp_build/add.
package arith

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/louisbranch/arithbind/internal/binding"
	apperrors "github.com/louisbranch/arithbind/internal/platform/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// localeHeader carries the caller's preferred locale for error messages.
const localeHeader = "x-arithbind-locale"

// CallRequest holds the two operands of a bound function.
type CallRequest struct {
	I int `json:"i"`
	J int `json:"j"`
}

// CallResponse holds the result of a bound function.
type CallResponse struct {
	Result int `json:"result"`
}

// ModuleServer serves calls for one module.
type ModuleServer interface {
	Call(ctx context.Context, function string, req *CallRequest) (*CallResponse, error)
}

// Service implements ModuleServer on top of a binding module.
type Service struct {
	module *binding.Module
}

// NewService creates a gRPC service for module.
func NewService(module *binding.Module) *Service {
	return &Service{module: module}
}

// Module returns the module served by s.
func (s *Service) Module() *binding.Module {
	return s.module
}

// Call invokes function with the request operands.
func (s *Service) Call(ctx context.Context, function string, req *CallRequest) (*CallResponse, error) {
	if req == nil {
		req = &CallRequest{}
	}
	result, err := s.module.Call(function, req.I, req.J)
	if err != nil {
		log.Printf("%s.%s: %v", s.module.Name(), function, err)
		return nil, apperrors.ToGRPC(err, localeFromContext(ctx))
	}
	return &CallResponse{Result: result}, nil
}

// FullMethod returns the RPC path for function on module.
func FullMethod(module, function string) string {
	return "/" + module + "/" + function
}

// ServiceDesc builds the service description for module. Method handlers
// follow the shape protoc-gen-go-grpc emits for unary methods.
func ServiceDesc(module *binding.Module) *grpc.ServiceDesc {
	functions := module.Functions()
	methods := make([]grpc.MethodDesc, 0, len(functions))
	for _, fn := range functions {
		methods = append(methods, grpc.MethodDesc{
			MethodName: fn.Name,
			Handler:    methodHandler(module.Name(), fn.Name),
		})
	}
	return &grpc.ServiceDesc{
		ServiceName: module.Name(),
		HandlerType: (*ModuleServer)(nil),
		Methods:     methods,
		Streams:     []grpc.StreamDesc{},
		Metadata:    module.Name(),
	}
}

// Register publishes svc's module on registrar.
func Register(registrar grpc.ServiceRegistrar, svc *Service) {
	registrar.RegisterService(ServiceDesc(svc.module), svc)
}

func methodHandler(module, function string) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(CallRequest)
		if err := dec(in); err != nil {
			decodeErr := &apperrors.Error{
				Code:     apperrors.CodeArgumentInvalid,
				Message:  fmt.Sprintf("decode %s.%s request: %v", module, function, err),
				Metadata: map[string]string{"Function": function, "Argument": "i, j"},
				Cause:    err,
			}
			return nil, apperrors.ToGRPC(decodeErr, localeFromContext(ctx))
		}
		if interceptor == nil {
			return srv.(ModuleServer).Call(ctx, function, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(module, function),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return srv.(ModuleServer).Call(ctx, function, req.(*CallRequest))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// UnknownHandler answers calls no registered service matched. Calls to a
// published module report CodeFunctionNotFound; any other service reports
// CodeModuleNotFound. Install it with grpc.UnknownServiceHandler.
func UnknownHandler(modules []string) grpc.StreamHandler {
	known := make(map[string]bool, len(modules))
	for _, name := range modules {
		known[name] = true
	}
	return func(_ any, stream grpc.ServerStream) error {
		fullMethod, _ := grpc.MethodFromServerStream(stream)
		service, method, _ := strings.Cut(strings.TrimPrefix(fullMethod, "/"), "/")
		var err error
		if known[service] {
			err = apperrors.WithMetadata(apperrors.CodeFunctionNotFound,
				fmt.Sprintf("module %s has no function %q", service, method),
				map[string]string{"Module": service, "Function": method})
		} else {
			err = apperrors.WithMetadata(apperrors.CodeModuleNotFound,
				fmt.Sprintf("module %q is not registered", service),
				map[string]string{"Module": service})
		}
		return apperrors.ToGRPC(err, localeFromContext(stream.Context()))
	}
}

func localeFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(localeHeader); len(values) > 0 {
		return values[0]
	}
	return ""
}

// WithLocale attaches the preferred locale for error messages to an outgoing
// call context.
func WithLocale(ctx context.Context, locale string) context.Context {
	if locale == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, localeHeader, locale)
}
