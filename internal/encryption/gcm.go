package encryption

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/idelchi/gost2/pkg/gf128"
)

// TagSize is the length of the GCM trailer.
const TagSize = 16

// GCM is the GCM file scheme: IV || CTR(plaintext) || tag, following SP 800-38D
// with a 16-byte IV and no additional data. The IV always goes through GHASH;
// there is no 12-byte shortcut.
type GCM struct {
	block  cipher.Block
	random io.Reader
}

// NewGCM returns the GCM scheme over block. IVs are drawn from random, or from
// crypto/rand when random is nil.
func NewGCM(block cipher.Block, random io.Reader) (*GCM, error) {
	if block.BlockSize() != BlockSize {
		return nil, ErrInvalidBlockSize
	}

	if random == nil {
		random = rand.Reader
	}

	return &GCM{block: block, random: random}, nil
}

// gcmState is the per-operation state: the GHASH accumulator, the running
// counter and the encrypted pre-counter block that masks the tag.
type gcmState struct {
	block   cipher.Block
	ghash   *gf128.GHASH
	counter [BlockSize]byte
	tagMask [BlockSize]byte
	length  uint64
}

func (g *GCM) newState(iv []byte) *gcmState {
	var h [BlockSize]byte

	g.block.Encrypt(h[:], h[:])
	key := gf128.FromBytes(h[:])
	clear(h[:])

	// J0 = GHASH(IV || 0^64 || [len(IV) in bits]_64)
	j0hash := gf128.NewGHASH(key)
	j0hash.Update(iv)
	j0hash.UpdateLengths(0, uint64(len(iv))*8)

	s := &gcmState{block: g.block, ghash: gf128.NewGHASH(key)}

	j0hash.Sum().Put(s.counter[:])
	j0hash.Reset()

	g.block.Encrypt(s.tagMask[:], s.counter[:])
	inc32(&s.counter)

	return s
}

// xorKeyStream applies the counter keystream to src and writes the result to dst.
// Every call but the last must cover a whole number of blocks.
func (s *gcmState) xorKeyStream(dst, src []byte) {
	var keystream [BlockSize]byte

	for len(src) > 0 {
		s.block.Encrypt(keystream[:], s.counter[:])
		inc32(&s.counter)

		n := subtle.XORBytes(dst, src, keystream[:])
		dst, src = dst[n:], src[n:]
	}

	clear(keystream[:])
}

// authenticate folds ciphertext into the tag.
func (s *gcmState) authenticate(ciphertext []byte) {
	s.ghash.Update(ciphertext)
	s.length += uint64(len(ciphertext))
}

// tag closes the GHASH with the lengths block and masks it with E(J0).
func (s *gcmState) tag() []byte {
	s.ghash.UpdateLengths(0, s.length*8)

	tag := s.ghash.Sum().Bytes()
	subtle.XORBytes(tag[:], tag[:], s.tagMask[:])

	return tag[:]
}

func (s *gcmState) wipe() {
	s.ghash.Reset()
	clear(s.counter[:])
	clear(s.tagMask[:])
}

// Encrypt streams r into w as a GCM file.
func (g *GCM) Encrypt(r io.Reader, w io.Writer) error {
	iv := make([]byte, BlockSize)
	if _, err := io.ReadFull(g.random, iv); err != nil {
		return fmt.Errorf("generating IV: %w", err)
	}

	if _, err := w.Write(iv); err != nil {
		return ioError("writing IV", err)
	}

	state := g.newState(iv)
	defer state.wipe()

	buf := getBuffer()
	defer putBuffer(buf)

	for {
		n, last, err := readChunk(r, buf)
		if err != nil {
			return err
		}

		chunk := buf[:n]

		state.xorKeyStream(chunk, chunk)
		state.authenticate(chunk)

		if _, err := w.Write(chunk); err != nil {
			return ioError("writing encrypted chunk", err)
		}

		if last {
			break
		}
	}

	if _, err := w.Write(state.tag()); err != nil {
		return ioError("writing tag", err)
	}

	return nil
}

// Decrypt streams a GCM file from r into w. Each ciphertext block is hashed
// before it is decrypted and plaintext is written immediately, so the tag is
// compared only after all output has been produced.
func (g *GCM) Decrypt(r io.ReadSeeker, w io.Writer) (bool, error) {
	size, err := inputSize(r)
	if err != nil {
		return false, err
	}

	if size < BlockSize+TagSize {
		return false, fmt.Errorf("%w: %d bytes", ErrTooShort, size)
	}

	iv := make([]byte, BlockSize)
	if err := readAt(r, iv, 0); err != nil {
		return false, ioError("reading IV", err)
	}

	state := g.newState(iv)
	defer state.wipe()

	buf := getBuffer()
	defer putBuffer(buf)

	for remaining := size - BlockSize - TagSize; remaining > 0; {
		chunk := buf[:min(int64(len(buf)), remaining)]
		if _, err := io.ReadFull(r, chunk); err != nil {
			return false, ioError("reading ciphertext", err)
		}

		remaining -= int64(len(chunk))

		state.authenticate(chunk)
		state.xorKeyStream(chunk, chunk)

		if _, err := w.Write(chunk); err != nil {
			return false, ioError("writing decrypted chunk", err)
		}
	}

	stored := make([]byte, TagSize)
	if _, err := io.ReadFull(r, stored); err != nil {
		return false, ioError("reading tag", err)
	}

	return subtle.ConstantTimeCompare(state.tag(), stored) == 1, nil
}

// inc32 increments the low 32 bits of the counter block modulo 2^32,
// leaving the other 96 bits untouched.
func inc32(counter *[BlockSize]byte) {
	ctr := binary.BigEndian.Uint32(counter[12:])
	binary.BigEndian.PutUint32(counter[12:], ctr+1)
}
