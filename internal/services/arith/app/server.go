// Package server wires the arith gRPC runtime and lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"

	"github.com/louisbranch/arithbind/internal/binding"
	arithservice "github.com/louisbranch/arithbind/internal/services/arith/api/grpc/arith"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// Server hosts one gRPC service per binding module.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	modules    []string
}

// New creates a configured arith server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a configured arith server for the provided address.
func NewWithAddr(addr string) (*Server, error) {
	return NewWithModules(addr, binding.Names())
}

// NewWithModules creates a server publishing only the named modules.
func NewWithModules(addr string, names []string) (*Server, error) {
	modules := make([]*binding.Module, 0, len(names))
	served := make([]string, 0, len(names))
	for _, name := range names {
		module, err := binding.Open(name)
		if err != nil {
			return nil, err
		}
		modules = append(modules, module)
		served = append(served, module.Name())
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.UnknownServiceHandler(arithservice.UnknownHandler(served)),
	)
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	for _, module := range modules {
		arithservice.Register(grpcServer, arithservice.NewService(module))
		healthServer.SetServingStatus(module.Name(), grpc_health_v1.HealthCheckResponse_SERVING)
	}

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		modules:    served,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Modules returns the module names published by the server.
func (s *Server) Modules() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.modules...)
}

// Run creates and serves an arith server until context cancellation.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the gRPC server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("arith server listening at %v with modules %v", s.listener.Addr(), s.modules)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		if s.health != nil {
			s.health.Shutdown()
		}
		s.grpcServer.GracefulStop()
		err := <-serveErr
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
}

// Close releases server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
}
