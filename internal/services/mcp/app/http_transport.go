package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/louisbranch/arithbind/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/net/netutil"
)

// defaultMaxConnections bounds concurrent HTTP connections.
const defaultMaxConnections = 64

// HTTPTransport serves an MCP server over streamable HTTP.
type HTTPTransport struct {
	addr           string
	server         *mcp.Server
	maxConnections int
}

// NewHTTPTransport creates an HTTP transport for server on addr.
func NewHTTPTransport(addr string, server *mcp.Server) *HTTPTransport {
	return &HTTPTransport{
		addr:           addr,
		server:         server,
		maxConnections: defaultMaxConnections,
	}
}

// Handler returns the HTTP routes:
//
//	/mcp         streamable MCP endpoint
//	/mcp/health  liveness probe
func (t *HTTPTransport) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return t.server
	}, nil))
	mux.HandleFunc("/mcp/health", t.handleHealth)
	return mux
}

// Start listens on the configured address and serves until ctx ends.
func (t *HTTPTransport) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", t.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", t.addr, err)
	}
	return t.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx ends.
func (t *HTTPTransport) Serve(ctx context.Context, listener net.Listener) error {
	if t == nil || t.server == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if t.maxConnections > 0 {
		listener = netutil.LimitListener(listener, t.maxConnections)
	}

	httpServer := &http.Server{
		Handler:           t.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	log.Printf("MCP HTTP server listening at %v", listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown MCP HTTP server: %w", err)
		}
		<-serveErr
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve MCP HTTP: %w", err)
	}
}

// handleHealth handles GET /mcp/health for health checks.
func (t *HTTPTransport) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Printf("Failed to write health response: %v", err)
	}
}
