package grpc

import (
	"context"
	"fmt"
	"time"

	gogrpc "google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	healthCallTimeout = time.Second
	healthMinBackoff  = 200 * time.Millisecond
	healthMaxBackoff  = time.Second
)

// WaitForHealth blocks until the gRPC health check reports SERVING or the context ends.
func WaitForHealth(ctx context.Context, conn *gogrpc.ClientConn, service string, logf func(string, ...any)) error {
	if conn == nil {
		return fmt.Errorf("gRPC connection is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}

	healthClient := grpc_health_v1.NewHealthClient(conn)
	backoff := healthMinBackoff
	for {
		servingStatus, err := checkHealth(ctx, healthClient, service)
		if err == nil && servingStatus == grpc_health_v1.HealthCheckResponse_SERVING {
			logf("gRPC health check for %q is SERVING", service)
			return nil
		}
		if err != nil {
			logf("waiting for gRPC health: %v", err)
		} else {
			logf("waiting for gRPC health: status %s", servingStatus)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for gRPC health: %w", ctx.Err())
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, healthMaxBackoff)
	}
}

// MonitorHealth polls the health check every interval until ctx ends and
// reports every failed or non-SERVING check through logf. It never closes
// conn; callers keep serving and let individual calls surface errors.
func MonitorHealth(ctx context.Context, conn *gogrpc.ClientConn, service string, interval time.Duration, logf func(string, ...any)) {
	if conn == nil || interval <= 0 {
		return
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}
	healthClient := grpc_health_v1.NewHealthClient(conn)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			servingStatus, err := checkHealth(ctx, healthClient, service)
			switch {
			case err != nil:
				logf("gRPC health check failed: %v", err)
			case servingStatus != grpc_health_v1.HealthCheckResponse_SERVING:
				logf("gRPC health check status: %s", servingStatus)
			}
		}
	}
}

func checkHealth(ctx context.Context, client grpc_health_v1.HealthClient, service string) (grpc_health_v1.HealthCheckResponse_ServingStatus, error) {
	callCtx, cancel := context.WithTimeout(ctx, healthCallTimeout)
	defer cancel()
	response, err := client.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: service})
	if err != nil {
		return grpc_health_v1.HealthCheckResponse_UNKNOWN, err
	}
	return response.GetStatus(), nil
}
