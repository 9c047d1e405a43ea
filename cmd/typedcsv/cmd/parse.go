package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oleg578/typedcsv/internal/cmdrun"
	"github.com/oleg578/typedcsv/internal/config"
)

func newParseCmd(cfg *config.Config) *cobra.Command {
	c := &cobra.Command{
		Use:   "parse FILE",
		Short: "decode every line of FILE and print the rows, use - for standard input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := cmdrun.RunParse(cmd.Context(), cfg, args[0], cmd.OutOrStdout())
			return exitWith(code, err)
		},
	}
	c.Flags().String("on-error", cfg.OnError, "bad line policy [abort|skip]")
	c.Flags().String("format", cfg.Output.Format, "output format [table|json|text|csv]")
	return c
}

// exitWith turns a run result into the command error.
func exitWith(code int, err error) error {
	if err != nil {
		return err
	}
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}
