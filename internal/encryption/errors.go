package encryption

import (
	"errors"
	"fmt"
)

var (
	// ErrIO is the class of failures reading the input or writing the output.
	ErrIO = errors.New("i/o error")
	// ErrNotSeekable is returned when decryption is handed an input it cannot seek.
	ErrNotSeekable = fmt.Errorf("%w: input is not seekable", ErrIO)

	// ErrFormat is the class of malformed encrypted inputs.
	ErrFormat = errors.New("malformed input")
	// ErrTooShort is returned when the input cannot hold the IV and the trailer.
	ErrTooShort = fmt.Errorf("%w: input too short", ErrFormat)
	// ErrInvalidLength is returned when the ciphertext region is not a positive multiple of the block size.
	ErrInvalidLength = fmt.Errorf("%w: ciphertext is not a positive multiple of block size", ErrFormat)
	// ErrInvalidPadding is returned when PKCS#7 padding is malformed.
	ErrInvalidPadding = fmt.Errorf("%w: invalid padding", ErrFormat)

	// ErrInvalidBlockSize is returned when a scheme is built on a cipher whose block is not 16 bytes.
	ErrInvalidBlockSize = errors.New("cipher block size must be 16 bytes")

	// ErrAuthentication is returned by verify-first decryption when the checksum or tag does not match.
	// Streaming decryption reports the outcome in Result.Authenticated instead.
	ErrAuthentication = errors.New("authentication failed")
)

// ioError tags err as an I/O failure while keeping the underlying cause inspectable.
func ioError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
}
