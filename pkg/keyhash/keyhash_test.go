package keyhash_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/idelchi/gost2/pkg/keyhash"
)

func TestEmptyPassword(t *testing.T) {
	t.Parallel()

	digest := keyhash.Sum(nil)

	want, _ := hex.DecodeString("24ea3b2ca12ef364dab441ee8eb7a562")
	if !bytes.Equal(digest[:len(want)], want) {
		t.Fatalf("digest prefix = %x, want %x", digest[:len(want)], want)
	}

	if digest != keyhash.Sum([]byte{}) {
		t.Fatal("nil and empty passwords differ")
	}
}

func TestChunkedWrites(t *testing.T) {
	t.Parallel()

	password := bytes.Repeat([]byte("chunked password "), 70) // crosses two windows
	want := keyhash.Sum(password)

	tests := []struct {
		name  string
		chunk int
	}{
		{name: "byte at a time", chunk: 1},
		{name: "odd chunks", chunk: 7},
		{name: "window sized", chunk: keyhash.WindowSize},
		{name: "larger than window", chunk: keyhash.WindowSize + 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := keyhash.New()

			for p := password; len(p) > 0; {
				n := min(tt.chunk, len(p))

				if _, err := h.Write(p[:n]); err != nil {
					t.Fatalf("Write: %v", err)
				}

				p = p[n:]
			}

			got, err := h.Finalize()
			if err != nil {
				t.Fatalf("Finalize: %v", err)
			}

			if got != want {
				t.Fatal("chunked digest differs from one-shot digest")
			}
		})
	}
}

func TestFinalizedHasher(t *testing.T) {
	t.Parallel()

	h := keyhash.New()

	if _, err := h.Finalize(); err != nil {
		t.Fatalf("first Finalize: %v", err)
	}

	if _, err := h.Write([]byte("late")); !errors.Is(err, keyhash.ErrFinalized) {
		t.Errorf("Write after Finalize = %v, want %v", err, keyhash.ErrFinalized)
	}

	if _, err := h.Finalize(); !errors.Is(err, keyhash.ErrFinalized) {
		t.Errorf("second Finalize = %v, want %v", err, keyhash.ErrFinalized)
	}
}

func TestWindowBoundary(t *testing.T) {
	t.Parallel()

	// A password that exactly fills a window is padded with a whole window of zeros,
	// which must not collide with the one-byte-shorter password.
	full := bytes.Repeat([]byte{'w'}, keyhash.WindowSize)

	if keyhash.Sum(full) == keyhash.Sum(full[:keyhash.WindowSize-1]) {
		t.Fatal("window-aligned password collides with its prefix")
	}
}

func TestProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	properties.Property("split point does not change the digest", prop.ForAll(
		func(password []byte, split int) bool {
			split %= len(password) + 1

			h := keyhash.New()
			_, _ = h.Write(password[:split])
			_, _ = h.Write(password[split:])

			got, err := h.Finalize()

			return err == nil && got == keyhash.Sum(password)
		},
		gen.SliceOf(gen.UInt8()),
		gen.IntRange(0, 1<<16),
	))

	properties.Property("derivation is deterministic", prop.ForAll(
		func(password string) bool {
			return keyhash.Sum([]byte(password)) == keyhash.Sum([]byte(password))
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func BenchmarkSum(b *testing.B) {
	password := []byte("My secret password!0123456789abc")

	for b.Loop() {
		_ = keyhash.Sum(password)
	}
}
