package arithctl

import (
	"context"
	"fmt"
	"strconv"

	"github.com/louisbranch/arithbind/internal/binding"
	apperrors "github.com/louisbranch/arithbind/internal/platform/errors"
	arithclient "github.com/louisbranch/arithbind/internal/services/arith/client"
	"github.com/spf13/cobra"
)

func newCallCmd(opts *options, function, short string) *cobra.Command {
	return &cobra.Command{
		Use:   function + " <i> <j>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseOperand(function, "i", args[0])
			if err != nil {
				return err
			}
			j, err := parseOperand(function, "j", args[1])
			if err != nil {
				return err
			}
			result, err := call(cmd.Context(), opts, function, i, j)
			if err != nil {
				return err
			}
			fmt.Fprintln(opts.out, result)
			return nil
		},
	}
}

func parseOperand(function, name, raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &apperrors.Error{
			Code:     apperrors.CodeArgumentInvalid,
			Message:  fmt.Sprintf("%s argument %s: %v", function, name, err),
			Metadata: map[string]string{"Function": function, "Argument": name},
			Cause:    err,
		}
	}
	return v, nil
}

func call(ctx context.Context, opts *options, function string, i, j int) (int, error) {
	if opts.cfg.Addr == "" {
		module, err := binding.Open(opts.cfg.Module)
		if err != nil {
			return 0, err
		}
		return module.Call(function, i, j)
	}

	client, err := arithclient.Dial(ctx, opts.cfg.Addr, arithclient.WithLocale(opts.cfg.Lang))
	if err != nil {
		return 0, err
	}
	defer client.Close()
	return client.Call(ctx, opts.cfg.Module, function, i, j)
}
