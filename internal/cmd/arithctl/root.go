// Package arithctl implements the arithctl command line: call module
// functions locally or on an arith server, list them, and run Lua scripts.
package arithctl

import (
	"context"
	"errors"
	"io"

	entrypoint "github.com/louisbranch/arithbind/internal/platform/cmd"
	apperrors "github.com/louisbranch/arithbind/internal/platform/errors"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X ...arithctl.Version=...".
var Version = "dev"

// Config holds arithctl defaults read from the environment.
type Config struct {
	Module string `env:"MODULE"     envDefault:"pycpp_build"`
	Addr   string `env:"ARITH_ADDR"`
	Lang   string `env:"LANG"`
}

type options struct {
	cfg Config
	out io.Writer
}

// NewRootCommand builds the command tree with defaults from cfg. Output is
// written to out.
func NewRootCommand(cfg Config, out io.Writer) *cobra.Command {
	opts := &options{cfg: cfg, out: out}
	root := &cobra.Command{
		Use:   "arithctl",
		Short: "Call the add and subtract bindings",
		Long: `Call the add and subtract bindings.

Functions run in process unless --addr names an arith gRPC server.
Negative operands follow "--":

  arithctl add -- -1 1`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.cfg.Module, "module", cfg.Module, "module to call")
	root.PersistentFlags().StringVar(&opts.cfg.Addr, "addr", cfg.Addr, "arith gRPC server address (empty calls in process)")
	root.PersistentFlags().StringVar(&opts.cfg.Lang, "lang", cfg.Lang, "language for messages")

	root.AddCommand(
		newCallCmd(opts, "add", "Add two ints"),
		newCallCmd(opts, "subtract", "Subtract two ints"),
		newFunctionsCmd(opts),
		newLuaCmd(opts),
		newVersionCmd(opts),
	)
	return root
}

// Error is a failed command together with the language its message should
// be rendered in.
type Error struct {
	Err  error
	Lang string
}

func (e *Error) Error() string {
	return ErrorMessage(e.Err, e.Lang)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Execute parses configuration, runs the command named by args and reports
// the first error as an *Error localized to the effective --lang.
func Execute(ctx context.Context, args []string, out io.Writer) error {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCtl, func(ctx context.Context) error {
		return run(ctx, NewRootCommand(cfg, out), args)
	})
}

func run(ctx context.Context, root *cobra.Command, args []string) error {
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	lang, _ := root.PersistentFlags().GetString("lang")
	return &Error{Err: err, Lang: lang}
}

// ErrorMessage renders err for the terminal. Domain errors are localized.
func ErrorMessage(err error, lang string) string {
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		return domainErr.LocalizedMessage(lang)
	}
	return err.Error()
}
