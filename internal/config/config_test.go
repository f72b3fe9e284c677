package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/gost2/internal/config"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{name: "encrypt", cfg: config.Config{Scheme: "cbc", Mode: "c", File: "a.txt"}},
		{name: "decrypt upper case", cfg: config.Config{Scheme: "gcm", Mode: "D", File: "a.gost2"}},
		{
			name:    "unknown mode",
			cfg:     config.Config{Scheme: "cbc", Mode: "x", File: "a.txt"},
			wantErr: `invalid mode "x"`,
		},
		{
			name:    "word instead of letter",
			cfg:     config.Config{Scheme: "cbc", Mode: "decrypt", File: "a.txt"},
			wantErr: "invalid mode",
		},
		{
			name:    "missing file",
			cfg:     config.Config{Scheme: "gcm", Mode: "c"},
			wantErr: "missing file",
		},
		{
			name:    "unknown scheme",
			cfg:     config.Config{Scheme: "ecb", Mode: "c", File: "a.txt"},
			wantErr: "invalid scheme",
		},
		{
			name:    "quiet and verbose",
			cfg:     config.Config{Scheme: "cbc", Mode: "c", File: "a.txt", Quiet: true, Verbose: true},
			wantErr: "verbose cannot be combined with quiet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, config.ErrUsage)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecrypt(t *testing.T) {
	t.Parallel()

	for mode, want := range map[string]bool{"c": false, "C": false, "d": true, "D": true} {
		assert.Equal(t, want, config.Config{Mode: mode}.Decrypt(), "mode %q", mode)
	}
}
