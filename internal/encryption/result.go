package encryption

import "time"

// Result represents the outcome of processing a single file.
type Result struct {
	// Input file path
	Input string

	// Output file path
	Output string

	// Output file size in bytes
	OutputSize int64

	// Decrypted is set for decryption runs
	Decrypted bool

	// Authenticated reports whether the trailer matched. Only meaningful when Decrypted is set.
	Authenticated bool

	// Duration is the wall time spent on the file
	Duration time.Duration
}
