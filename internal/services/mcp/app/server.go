// Package app serves one binding module as an MCP server, one tool per
// function, over stdio or streamable HTTP.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/louisbranch/arithbind/internal/binding"
	"github.com/louisbranch/arithbind/internal/platform/timeouts"
	arithclient "github.com/louisbranch/arithbind/internal/services/arith/client"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"

	// TransportStdio serves MCP over stdin/stdout.
	TransportStdio = "stdio"
	// TransportHTTP serves MCP over streamable HTTP.
	TransportHTTP = "http"

	defaultHTTPAddr = "localhost:8091"
)

// Config selects the module and transport for Run.
type Config struct {
	Module    string
	Transport string
	HTTPAddr  string
	// ArithAddr, when set, forwards tool calls to the arith gRPC server
	// instead of calling the module in process.
	ArithAddr string
}

// Server exposes one module's functions as MCP tools.
type Server struct {
	module    *binding.Module
	mcpServer *mcp.Server
	remote    *arithclient.Client
}

// New creates an MCP server for module whose tools call through caller.
func New(module *binding.Module, caller Caller) (*Server, error) {
	if module == nil {
		return nil, errors.New("module is required")
	}
	if caller == nil {
		caller = LocalCaller(module)
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    module.Name(),
		Version: serverVersion,
	}, &mcp.ServerOptions{
		Instructions: fmt.Sprintf("Integer arithmetic published as module %s: %s.", module.Name(), strings.Join(module.FunctionNames(), ", ")),
	})
	registerTools(mcpServer, module, caller)
	return &Server{module: module, mcpServer: mcpServer}, nil
}

// MCPServer returns the underlying SDK server.
func (s *Server) MCPServer() *mcp.Server {
	if s == nil {
		return nil
	}
	return s.mcpServer
}

// Serve runs the server on transport until the session ends or ctx is done.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if closeErr := s.Close(); closeErr != nil {
		if err == nil {
			return fmt.Errorf("close arith connection: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close arith connection: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// Close releases the remote arith connection, if any.
func (s *Server) Close() error {
	if s == nil || s.remote == nil {
		return nil
	}
	err := s.remote.Close()
	s.remote = nil
	return err
}

// Run builds a server from cfg and serves it on the configured transport.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	if cfg.Transport != TransportStdio && cfg.Transport != TransportHTTP {
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}

	server, err := newFromConfig(ctx, cfg)
	if err != nil {
		return err
	}

	switch cfg.Transport {
	case TransportHTTP:
		defer server.Close()
		if server.remote != nil {
			healthCtx, healthCancel := context.WithCancel(ctx)
			defer healthCancel()
			go server.remote.Monitor(healthCtx, timeouts.HealthPoll, log.Printf)
		}
		httpAddr := cfg.HTTPAddr
		if httpAddr == "" {
			httpAddr = defaultHTTPAddr
		}
		return NewHTTPTransport(httpAddr, server.mcpServer).Start(ctx)
	default:
		log.Printf("MCP server %s serving on stdio", server.module.Name())
		return server.Serve(ctx, &mcp.StdioTransport{})
	}
}

func newFromConfig(ctx context.Context, cfg Config) (*Server, error) {
	name := cfg.Module
	if name == "" {
		name = binding.PyCppBuild
	}
	module, err := binding.Open(name)
	if err != nil {
		return nil, err
	}
	if cfg.ArithAddr == "" {
		return New(module, nil)
	}

	client, err := arithclient.Dial(ctx, cfg.ArithAddr)
	if err != nil {
		return nil, fmt.Errorf("connect arith server: %w", err)
	}
	server, err := New(module, client)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	server.remote = client
	return server, nil
}
