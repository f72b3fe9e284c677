package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gost2/internal/config"
	"github.com/idelchi/gost2/internal/logic"
	"github.com/idelchi/gost2/internal/prompt"
)

const positionalArgs = 2

// NewRootCommand creates the root command of the tool for cfg.Scheme.
// Flags are bound through viper; the two positional arguments are the mode
// letter and the file.
func NewRootCommand(cfg *config.Config, version string, passwords prompt.Source) *cobra.Command {
	root := &cobra.Command{
		Use:   fmt.Sprintf("gost2-%s [flags] c|d <file>", cfg.Scheme),
		Short: fmt.Sprintf("GOST2-128 %s file encryption", cfg.Scheme),
		Long: fmt.Sprintf(`Encrypt (c) or decrypt (d) a file with GOST2-128 in %s mode.

The key is derived from a password read from the terminal, or from the first
line of standard input when it is not a terminal. Encrypted files get the
.gost2 suffix; decryption strips it, or appends .dec when it is missing.

Exit status is 0 on success, 1 on failure and 2 on usage errors. A failed
authentication check after streaming decryption is reported but exits 0;
use --verify-first to make it a failure.`, cfg.Scheme),
		Version:       version,
		Args:          exactArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PreRunE:       preRun(cfg),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.Run(cfg, passwords, cmd.OutOrStdout())
		},
	}

	root.Flags().Bool("verify-first", false, "Decrypt to a temporary file and keep it only if authentication succeeds")
	root.Flags().BoolP("preserve-timestamps", "p", false, "Copy the input's modification time to the output")
	root.Flags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.Flags().Bool("verbose", false, "Log diagnostics to stderr")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", config.ErrUsage, err)
	})

	return root
}

func exactArgs(_ *cobra.Command, args []string) error {
	if len(args) != positionalArgs {
		return fmt.Errorf("%w: expected a mode (c or d) and a file, got %d argument(s)", config.ErrUsage, len(args))
	}

	return nil
}

// Execute runs the tool for scheme with the process arguments and returns its exit status.
func Execute(scheme, version string) int {
	cfg := &config.Config{Scheme: scheme}
	root := NewRootCommand(cfg, version, prompt.Stdio())

	return execute(root, os.Stderr)
}

func execute(root *cobra.Command, stderr io.Writer) int {
	err := root.Execute()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)

		if errors.Is(err, config.ErrUsage) {
			fmt.Fprint(stderr, root.UsageString())
		}
	}

	return logic.ExitCode(err)
}

// bindFlags copies the parsed flags into cfg.
func bindFlags(cmd *cobra.Command, cfg *config.Config) error {
	v := viper.New()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	return nil
}
