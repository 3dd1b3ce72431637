package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile [contracts...]",
		Short: "Run a single build pass",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := configPath(cmd)
			if err != nil {
				return err
			}
			return c.app.RunOnce(cmd.Context(), cfgPath, args...)
		},
	}
}
