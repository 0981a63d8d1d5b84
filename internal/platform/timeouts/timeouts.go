// Package timeouts defines shared timeout constants used across commands.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing the arith gRPC service.
const GRPCDial = 2 * time.Second

// GRPCRequest caps the time allowed for a single remote call.
const GRPCRequest = 2 * time.Second

// HealthPoll is the interval between background gRPC health checks.
const HealthPoll = 30 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long servers and telemetry wait during graceful shutdown.
const Shutdown = 5 * time.Second

// WatchDebounce coalesces bursts of file events into one script rerun.
const WatchDebounce = 100 * time.Millisecond
