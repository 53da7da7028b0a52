package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coregx/revm/meta"
)

func newProgCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prog <regexp>",
		Short: "Print the bytecode program of a regular expression.",
		Example: "revm prog 'a+b'\n" +
			"revm prog --anchored '(a|b)*c'",
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			config, _, err := a.engineConfig()
			if err != nil {
				return err
			}
			engine, err := meta.CompileWithConfig(args[0], config)
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, engine.Program())
			return nil
		},
	}
}
