// Package arith parses arith service flags and launches the gRPC server.
package arith

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/arithbind/internal/platform/cmd"
	server "github.com/louisbranch/arithbind/internal/services/arith/app"
)

// Config holds arith command configuration.
type Config struct {
	Port int `env:"ARITH_PORT" envDefault:"8090"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The arith gRPC server port")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the arith gRPC service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceArith, func(ctx context.Context) error {
		return server.Run(ctx, cfg.Port)
	})
}
