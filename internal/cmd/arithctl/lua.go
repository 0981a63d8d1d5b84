package arithctl

import (
	"log"

	"github.com/louisbranch/arithbind/internal/binding"
	"github.com/louisbranch/arithbind/internal/services/luabind"
	"github.com/spf13/cobra"
)

func newLuaCmd(opts *options) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "lua <script>",
		Short: "Run a Lua script with the module opened",
		Long: `Run a Lua script with the module opened.

The module is reachable as a global and through require:

  local m = require(binding_module)
  print(m.add(2, 3))

With --watch the script runs again each time the file changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := binding.Open(opts.cfg.Module)
			if err != nil {
				return err
			}
			path := args[0]
			run := func() error {
				runtime := luabind.NewRuntime(module,
					luabind.WithOutput(opts.out),
					luabind.WithLocale(opts.cfg.Lang))
				return runtime.RunFile(path)
			}
			if !watch {
				return run()
			}
			if err := run(); err != nil {
				log.Printf("run %s: %v", path, err)
			}
			return luabind.Watch(cmd.Context(), path, run, log.Printf)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "re-run the script when it changes")
	return cmd
}
