// Package commands provides the command-line interface of the gost2-cbc and
// gost2-gcm tools.
//
// Each tool is a single root command taking a mode letter and a file. Flags are
// bound through viper into a config.Config, which is validated before anything
// on disk is touched.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gost2/internal/config"
	"github.com/idelchi/gost2/internal/logic"
)

// preRun returns a PreRunE handler that resolves flags and positional args into
// cfg, validates it and sets up logging.
func preRun(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(cmd, cfg); err != nil {
			return err
		}

		cfg.Mode = args[0]
		cfg.File = args[1]

		if err := cfg.Validate(); err != nil {
			return err
		}

		logic.ConfigureLogging(cfg, cmd.ErrOrStderr())

		return nil
	}
}
