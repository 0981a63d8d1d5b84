// Package client calls binding modules published by the arith gRPC server.
package client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	apperrors "github.com/louisbranch/arithbind/internal/platform/errors"
	platformgrpc "github.com/louisbranch/arithbind/internal/platform/grpc"
	"github.com/louisbranch/arithbind/internal/platform/timeouts"
	arithservice "github.com/louisbranch/arithbind/internal/services/arith/api/grpc/arith"
	"google.golang.org/grpc"
)

// Client calls module functions over one gRPC connection.
type Client struct {
	conn   *grpc.ClientConn
	locale string
}

// Option configures a Client.
type Option func(*Client)

// WithLocale sets the locale the server renders error messages in.
func WithLocale(locale string) Option {
	return func(c *Client) {
		c.locale = locale
	}
}

// Dial connects to addr and waits until the server reports SERVING.
func Dial(ctx context.Context, addr string, opts ...Option) (*Client, error) {
	conn, err := platformgrpc.DialWithHealth(ctx, nil, addr, "", timeouts.GRPCDial, log.Printf, platformgrpc.DefaultClientDialOptions()...)
	if err != nil {
		return nil, err
	}
	return New(conn, opts...), nil
}

// New wraps an existing connection.
func New(conn *grpc.ClientConn, opts ...Option) *Client {
	c := &Client{conn: conn}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call invokes function on module with operands i and j. Domain errors
// reported by the server are returned as *apperrors.Error.
func (c *Client) Call(ctx context.Context, module, function string, i, j int) (int, error) {
	if c == nil || c.conn == nil {
		return 0, errors.New("arith client is not connected")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	callCtx, cancel := context.WithTimeout(arithservice.WithLocale(ctx, c.locale), timeouts.GRPCRequest)
	defer cancel()

	var resp arithservice.CallResponse
	err := c.conn.Invoke(callCtx, arithservice.FullMethod(module, function),
		&arithservice.CallRequest{I: i, J: j}, &resp,
		grpc.CallContentSubtype(arithservice.CodecName))
	if err != nil {
		if domainErr := apperrors.FromGRPCStatus(err); domainErr != nil {
			return 0, domainErr
		}
		return 0, fmt.Errorf("call %s.%s: %w", module, function, err)
	}
	return resp.Result, nil
}

// Monitor polls the server health every interval until ctx ends and reports
// failures through logf. The connection stays open either way.
func (c *Client) Monitor(ctx context.Context, interval time.Duration, logf func(string, ...any)) {
	if c == nil {
		return
	}
	platformgrpc.MonitorHealth(ctx, c.conn, "", interval, logf)
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
