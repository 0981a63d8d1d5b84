// Package hei parses hei flags and prints a greeting through the Lua binding.
package hei

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/louisbranch/arithbind/internal/binding"
	entrypoint "github.com/louisbranch/arithbind/internal/platform/cmd"
	"github.com/louisbranch/arithbind/internal/services/greeting"
)

// Config holds hei command configuration.
type Config struct {
	Module string `env:"MODULE" envDefault:"pycpp_build"`
	Lang   string `env:"LANG"`
	Hello  bool
}

// ParseConfig parses environment and flags into Config. Without an explicit
// language the process LANG variable is used.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Lang == "" {
		cfg.Lang = os.Getenv("LANG")
	}
	fs.StringVar(&cfg.Module, "module", cfg.Module, "module the greeting calls add through")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "greeting language, e.g. en-US or nb-NO")
	fs.BoolVar(&cfg.Hello, "hello", false, "print the hello world greeting instead of hei")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run prints the selected greeting to w.
func Run(ctx context.Context, cfg Config, w io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceHei, func(context.Context) error {
		module, err := binding.Open(cfg.Module)
		if err != nil {
			return err
		}
		greeter, err := greeting.New(module, w, cfg.Lang)
		if err != nil {
			return err
		}
		if cfg.Hello {
			return greeter.SayHello()
		}
		return greeter.SayHei()
	})
}
