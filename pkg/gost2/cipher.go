package gost2

import (
	"crypto/cipher"
	"encoding/binary"
	"fmt"
)

// BlockSize is the GOST2-128 block size in bytes.
const BlockSize = 16

// Cipher is a GOST2-128 instance keyed with a subkey schedule.
// It is read-only after construction and safe for concurrent use.
type Cipher struct {
	key Schedule
}

var _ cipher.Block = (*Cipher)(nil)

// New returns a Cipher holding a copy of the schedule. The caller remains
// responsible for wiping its own copy.
func New(schedule *Schedule) *Cipher {
	return &Cipher{key: *schedule}
}

// NewFromPassword derives a schedule from password and returns a Cipher for it.
// The intermediate schedule is wiped before returning.
func NewFromPassword(password []byte) *Cipher {
	schedule := DeriveSchedule(password)
	defer schedule.Wipe()

	return New(&schedule)
}

// BlockSize returns the cipher's block size.
func (c *Cipher) BlockSize() int {
	return BlockSize
}

// Encrypt encrypts the first block in src into dst. Dst and src may overlap entirely.
func (c *Cipher) Encrypt(dst, src []byte) {
	checkBlocks(dst, src)

	a, b := c.EncryptWords(binary.BigEndian.Uint64(src[0:8]), binary.BigEndian.Uint64(src[8:16]))

	binary.BigEndian.PutUint64(dst[0:8], a)
	binary.BigEndian.PutUint64(dst[8:16], b)
}

// Decrypt decrypts the first block in src into dst. Dst and src may overlap entirely.
func (c *Cipher) Decrypt(dst, src []byte) {
	checkBlocks(dst, src)

	a, b := c.DecryptWords(binary.BigEndian.Uint64(src[0:8]), binary.BigEndian.Uint64(src[8:16]))

	binary.BigEndian.PutUint64(dst[0:8], a)
	binary.BigEndian.PutUint64(dst[8:16], b)
}

// EncryptWords runs the 32 Feistel rounds forward over the block (a, b).
func (c *Cipher) EncryptWords(a, b uint64) (uint64, uint64) {
	k := &c.key

	for i := 0; i < len(k); i += 2 {
		b ^= f(a + k[i])
		a ^= f(b + k[i+1])
	}

	return b, a
}

// DecryptWords is the inverse of EncryptWords.
func (c *Cipher) DecryptWords(a, b uint64) (uint64, uint64) {
	k := &c.key

	for i := len(k) - 1; i > 0; i -= 2 {
		b ^= f(a + k[i])
		a ^= f(b + k[i-1])
	}

	return b, a
}

// Wipe zeroes the cipher's schedule. The Cipher must not be used afterwards.
func (c *Cipher) Wipe() {
	c.key.Wipe()
}

func checkBlocks(dst, src []byte) {
	if len(src) < BlockSize {
		panic(fmt.Sprintf("gost2: input not full block (%d bytes)", len(src)))
	}

	if len(dst) < BlockSize {
		panic(fmt.Sprintf("gost2: output not full block (%d bytes)", len(dst)))
	}
}
