// Package keyhash implements the MD2II-style compression hash used to stretch
// a password into the 4096-bit GOST2-128 subkey schedule.
//
// The hash is a key derivation step only. It makes no collision-resistance
// claims and must not be used as a general-purpose digest.
package keyhash

import (
	"errors"
)

const (
	// WindowSize is the number of input bytes absorbed between compressions.
	WindowSize = 512
	// DigestSize is the size of the finalized digest in bytes.
	DigestSize = WindowSize

	bufferSize = 3 * WindowSize
	rounds     = WindowSize + 2
)

// ErrFinalized is returned when a Hasher is used after Finalize.
var ErrFinalized = errors.New("keyhash: hasher already finalized")

// Digest is the 512-byte output of the hash.
type Digest [DigestSize]byte

// Hasher holds the streaming state of one derivation. The zero value is ready to use.
// A Hasher is single-use: once Finalize has been called it rejects further input.
type Hasher struct {
	// checksum accumulates the substituted input bytes
	checksum [WindowSize]byte

	// buf is split into three lanes: state, raw input, input XOR state
	buf [bufferSize]byte

	// pos is the fill cursor within the current window
	pos int

	// feedback is the last checksum byte written
	feedback byte

	finalized bool
}

// New returns an empty Hasher.
func New() *Hasher {
	return &Hasher{}
}

// Write absorbs p into the hash state. It never returns a short count.
func (h *Hasher) Write(p []byte) (int, error) {
	if h.finalized {
		return 0, ErrFinalized
	}

	h.absorb(p)

	return len(p), nil
}

// Finalize pads the current window, folds in the checksum and returns the digest.
// The internal state is wiped afterwards.
func (h *Hasher) Finalize() (Digest, error) {
	var digest Digest

	if h.finalized {
		return digest, ErrFinalized
	}

	// The pad value is the pad length; a full 512-byte pad wraps to zero.
	n := WindowSize - h.pos

	var pad [WindowSize]byte
	for i := range n {
		pad[i] = byte(n)
	}

	h.absorb(pad[:n])

	checksum := h.checksum
	h.absorb(checksum[:])

	copy(digest[:], h.buf[:DigestSize])

	wipe(checksum[:])
	h.reset()
	h.finalized = true

	return digest, nil
}

// Sum hashes password in a fresh Hasher and returns the digest.
func Sum(password []byte) Digest {
	h := New()

	// A fresh Hasher cannot fail.
	_, _ = h.Write(password)
	digest, _ := h.Finalize()

	return digest
}

func (h *Hasher) absorb(p []byte) {
	for len(p) > 0 {
		for len(p) > 0 && h.pos < WindowSize {
			b := p[0]
			p = p[1:]

			h.buf[WindowSize+h.pos] = b
			h.buf[2*WindowSize+h.pos] = b ^ h.buf[h.pos]

			h.feedback = h.checksum[h.pos] ^ sbox[b^h.feedback]
			h.checksum[h.pos] = h.feedback
			h.pos++
		}

		if h.pos == WindowSize {
			h.compress()
		}
	}
}

// compress mixes the whole working buffer and resets the cursor.
func (h *Hasher) compress() {
	var acc byte

	for round := range rounds {
		for i := range h.buf {
			acc = h.buf[i] ^ sbox[acc]
			h.buf[i] = acc
		}

		acc += byte(round)
	}

	h.pos = 0
}

func (h *Hasher) reset() {
	wipe(h.checksum[:])
	wipe(h.buf[:])
	h.pos = 0
	h.feedback = 0
}

func wipe(b []byte) {
	clear(b)
}
