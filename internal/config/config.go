// Package config holds the validated settings of one tool invocation.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrUsage marks invalid invocations: wrong argument count, unknown mode letter
// or conflicting flags. Nothing on disk has been touched when it is returned.
var ErrUsage = errors.New("usage error")

const (
	// EncryptedSuffix is appended to encrypted files and stripped on decryption.
	EncryptedSuffix = ".gost2"
	// DecryptedSuffix is appended on decryption when the input lacks EncryptedSuffix.
	DecryptedSuffix = ".dec"
)

// Config is the configuration of one tool run.
type Config struct {
	// Scheme is fixed per binary, either "cbc" or "gcm"
	Scheme string `validate:"required,oneof=cbc gcm" label:"scheme"`

	// Mode is the first positional argument: c to encrypt, d to decrypt, in either case
	Mode string `validate:"required,mode" label:"mode"`

	// File is the second positional argument
	File string `validate:"required" label:"file"`

	// VerifyFirst withholds decrypted output until the trailer has been checked
	VerifyFirst bool `mapstructure:"verify-first"`

	// PreserveTimestamps copies the input's modification time to the output
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	Quiet   bool
	Verbose bool `validate:"exclusive=Quiet" label:"verbose"`
}

// Decrypt reports whether the run decrypts.
func (c Config) Decrypt() bool {
	return strings.EqualFold(c.Mode, "d")
}

// Validate validates the configuration against the struct tags.
// Every failure wraps ErrUsage.
func (c Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := registerValidators(validate); err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating configuration: %w", err)
		}

		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describe(fe))
		}

		return fmt.Errorf("%w: %s", ErrUsage, strings.Join(msgs, "; "))
	}

	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("missing %s", fe.Field())
	case "mode":
		return fmt.Sprintf("invalid mode %q, expected c or d", fe.Value())
	case "exclusive":
		return fmt.Sprintf("%s cannot be combined with %s", fe.Field(), strings.ToLower(fe.Param()))
	default:
		return fmt.Sprintf("invalid %s %v", fe.Field(), fe.Value())
	}
}
