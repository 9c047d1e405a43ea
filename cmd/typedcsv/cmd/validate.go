package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oleg578/typedcsv/internal/cmdrun"
	"github.com/oleg578/typedcsv/internal/config"
)

func newValidateCmd(cfg *config.Config) *cobra.Command {
	c := &cobra.Command{
		Use:   "validate FILE...",
		Short: "check that every line of each FILE decodes and print a summary per file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := cmdrun.RunValidate(cmd.Context(), cfg, args, cmd.OutOrStdout())
			return exitWith(code, err)
		},
	}
	c.Flags().Int("jobs", cfg.Validate.Jobs, "number of files validated at once")
	return c
}
