// Package logic implements the core business logic for the encryption/decryption.
package logic

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/idelchi/gost2/internal/config"
	"github.com/idelchi/gost2/internal/encryption"
	"github.com/idelchi/gost2/internal/prompt"
	"github.com/idelchi/gost2/pkg/gost2"
)

// Exit statuses of the tools.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Run is the main logic of the application. It asks passwords for the key,
// processes cfg.File and reports the outcome on out.
//
// An authentication mismatch in streaming mode is reported, not returned.
func Run(cfg *config.Config, passwords prompt.Source, out io.Writer) error {
	if err := checkInput(cfg.File); err != nil {
		return err
	}

	password, err := passwords.Password("Enter password: ")
	if err != nil {
		return fmt.Errorf("%w: %w", encryption.ErrIO, err)
	}

	start := time.Now()
	block := gost2.NewFromPassword(password)

	prompt.Wipe(password)

	slog.Debug("derived key schedule", "duration", time.Since(start).Round(time.Microsecond))

	proc, err := encryption.NewProcessor(cfg, block)
	if err != nil {
		block.Wipe()

		return fmt.Errorf("creating processor: %w", err)
	}
	defer proc.Close()

	result, err := proc.Process()
	if err != nil {
		return fmt.Errorf("processing %q: %w", cfg.File, err)
	}

	report(out, cfg, result)

	return nil
}

// checkInput fails before the password prompt when the input is not a regular file.
func checkInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: input file: %w", encryption.ErrIO, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%w: input file %q is a directory", encryption.ErrIO, path)
	}

	return nil
}

func report(out io.Writer, cfg *config.Config, result encryption.Result) {
	if !result.Decrypted {
		if !cfg.Quiet {
			fmt.Fprintf(out, "Encryption completed. Output: %s\n", result.Output)
		}

		return
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "Decryption completed. Output: %s\n", result.Output)
	}

	switch {
	case !result.Authenticated:
		fmt.Fprintln(out, "Authentication FAILED")
	case !cfg.Quiet:
		fmt.Fprintln(out, "Authentication OK")
	}
}

// ExitCode maps the error returned by a tool run to its exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, config.ErrUsage):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// ConfigureLogging installs the diagnostic logger: debug level with verbose,
// warnings only otherwise.
func ConfigureLogging(cfg *config.Config, w io.Writer) {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
