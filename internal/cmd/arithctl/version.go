package arithctl

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of arithctl",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(opts.out, "arithctl %s\n", Version)
		},
	}
}
