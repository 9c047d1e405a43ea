package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oleg578/typedcsv/internal/cmdrun"
	"github.com/oleg578/typedcsv/internal/config"
)

func newShowConfigCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show-config",
		Short: "print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdrun.RunShowConfig(cfg, cmd.OutOrStdout())
		},
	}
}
