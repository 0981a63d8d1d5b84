package arithctl

import (
	"fmt"

	"github.com/louisbranch/arithbind/internal/binding"
	"github.com/spf13/cobra"
)

func newFunctionsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List the functions a module publishes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := binding.Open(opts.cfg.Module)
			if err != nil {
				return err
			}
			for _, fn := range module.Functions() {
				fmt.Fprintf(opts.out, "%s.%s\t%s\n", module.Name(), fn.Name, fn.Doc)
			}
			return nil
		},
	}
}
