package logic_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/gost2/internal/config"
	"github.com/idelchi/gost2/internal/encryption"
	"github.com/idelchi/gost2/internal/logic"
	"github.com/idelchi/gost2/internal/prompt"
)

func password(s string) prompt.Source {
	return prompt.Reader{R: strings.NewReader(s + "\n")}
}

func run(t *testing.T, cfg *config.Config, pw string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	err := logic.Run(cfg, password(pw), &out)

	return out.String(), err
}

func TestRunMessages(t *testing.T) {
	t.Parallel()

	for _, scheme := range []string{"cbc", "gcm"} {
		t.Run(scheme, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			input := filepath.Join(dir, "notes.txt")
			require.NoError(t, os.WriteFile(input, []byte("meeting at noon"), 0o600))

			out, err := run(t, &config.Config{Scheme: scheme, Mode: "c", File: input}, "pw")
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("Encryption completed. Output: %s.gost2\n", input), out)

			out, err = run(t, &config.Config{Scheme: scheme, Mode: "d", File: input + ".gost2"}, "pw")
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("Decryption completed. Output: %s\nAuthentication OK\n", input), out)

			got, err := os.ReadFile(input)
			require.NoError(t, err)
			assert.Equal(t, "meeting at noon", string(got))
		})
	}
}

func TestRunAuthenticationFailed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(input, []byte("meeting at noon"), 0o600))

	_, err := run(t, &config.Config{Scheme: "gcm", Mode: "c", File: input}, "pw")
	require.NoError(t, err)

	out, err := run(t, &config.Config{Scheme: "gcm", Mode: "d", File: input + ".gost2", Quiet: true}, "other")
	require.NoError(t, err, "a mismatch is not an error in streaming mode")
	assert.Equal(t, "Authentication FAILED\n", out)
	assert.Equal(t, logic.ExitOK, logic.ExitCode(err))

	_, err = run(t, &config.Config{Scheme: "gcm", Mode: "d", File: input + ".gost2", VerifyFirst: true}, "other")
	require.ErrorIs(t, err, encryption.ErrAuthentication)
	assert.Equal(t, logic.ExitFailure, logic.ExitCode(err))
}

func TestRunQuiet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "a")
	require.NoError(t, os.WriteFile(input, nil, 0o600))

	out, err := run(t, &config.Config{Scheme: "cbc", Mode: "c", File: input, Quiet: true}, "")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = run(t, &config.Config{Scheme: "cbc", Mode: "d", File: input + ".gost2", Quiet: true}, "")
	require.NoError(t, err)
	assert.Empty(t, out)
}

// countingSource records how often a password was requested.
type countingSource struct {
	calls int
}

func (s *countingSource) Password(string) ([]byte, error) {
	s.calls++

	return []byte("pw"), nil
}

func TestRunChecksInputBeforePrompt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := map[string]string{
		"missing":   filepath.Join(dir, "missing.txt"),
		"directory": dir,
	}

	for name, file := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var source countingSource

			var out bytes.Buffer

			err := logic.Run(&config.Config{Scheme: "cbc", Mode: "c", File: file}, &source, &out)
			require.ErrorIs(t, err, encryption.ErrIO)
			assert.Zero(t, source.calls, "no password is asked for")
			assert.Empty(t, out.String())
			assert.Equal(t, logic.ExitFailure, logic.ExitCode(err))
		})
	}
}

func TestRunPasswordError(t *testing.T) {
	t.Parallel()

	input := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(input, []byte("x"), 0o600))

	cfg := &config.Config{Scheme: "cbc", Mode: "c", File: input}

	err := logic.Run(cfg, prompt.Reader{R: iotest.ErrReader(errors.New("tty gone"))}, &bytes.Buffer{})
	require.ErrorIs(t, err, encryption.ErrIO)
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: logic.ExitOK},
		{name: "usage", err: fmt.Errorf("wrapped: %w", config.ErrUsage), want: logic.ExitUsage},
		{name: "io", err: fmt.Errorf("processing: %w", encryption.ErrIO), want: logic.ExitFailure},
		{name: "format", err: encryption.ErrInvalidPadding, want: logic.ExitFailure},
		{name: "verify first", err: encryption.ErrAuthentication, want: logic.ExitFailure},
		{name: "other", err: errors.New("anything"), want: logic.ExitFailure},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, logic.ExitCode(tt.err), tt.name)
	}
}
