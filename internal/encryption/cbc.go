package encryption

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"hash"
	"io"
)

// BlockSize is the block size both schemes require of their cipher.
const BlockSize = 16

// ChecksumSize is the length of the CBC trailer.
const ChecksumSize = sha256.Size

// CBC is the CBC file scheme: IV || CBC(PKCS#7(plaintext)) || SHA-256(ciphertext).
//
// The trailer is an unkeyed checksum over the ciphertext. It detects corruption,
// but anyone who can modify the file can also recompute it, so it is not a MAC.
type CBC struct {
	block  cipher.Block
	random io.Reader
}

// NewCBC returns the CBC scheme over block. IVs are drawn from random, or from
// crypto/rand when random is nil.
func NewCBC(block cipher.Block, random io.Reader) (*CBC, error) {
	if block.BlockSize() != BlockSize {
		return nil, ErrInvalidBlockSize
	}

	if random == nil {
		random = rand.Reader
	}

	return &CBC{block: block, random: random}, nil
}

// Encrypt streams r into w as a CBC file.
func (c *CBC) Encrypt(r io.Reader, w io.Writer) error {
	iv := make([]byte, BlockSize)
	if _, err := io.ReadFull(c.random, iv); err != nil {
		return fmt.Errorf("generating IV: %w", err)
	}

	if _, err := w.Write(iv); err != nil {
		return ioError("writing IV", err)
	}

	cbcMode := cipher.NewCBCEncrypter(c.block, iv)
	checksum := sha256.New()
	out := io.MultiWriter(w, checksum)

	buf := getBuffer()
	defer putBuffer(buf)

	for {
		n, last, err := readChunk(r, buf)
		if err != nil {
			return err
		}

		if !last {
			cbcMode.CryptBlocks(buf, buf)

			if _, err := out.Write(buf); err != nil {
				return ioError("writing encrypted chunk", err)
			}

			continue
		}

		// The pooled buffer has a spare block for the padding.
		padded := pkcs7Pad(buf[:n], BlockSize)
		cbcMode.CryptBlocks(padded, padded)

		if _, err := out.Write(padded); err != nil {
			return ioError("writing final encrypted chunk", err)
		}

		break
	}

	if _, err := w.Write(checksum.Sum(nil)); err != nil {
		return ioError("writing checksum", err)
	}

	return nil
}

// Decrypt streams a CBC file from r into w. Plaintext is written before the
// checksum can be compared; authenticated reports whether it matched.
func (c *CBC) Decrypt(r io.ReadSeeker, w io.Writer) (bool, error) {
	size, err := inputSize(r)
	if err != nil {
		return false, err
	}

	if size < BlockSize+ChecksumSize {
		return false, fmt.Errorf("%w: %d bytes", ErrTooShort, size)
	}

	body := size - BlockSize - ChecksumSize
	if body == 0 || body%BlockSize != 0 {
		return false, fmt.Errorf("%w: %d bytes", ErrInvalidLength, body)
	}

	stored := make([]byte, ChecksumSize)
	if err := readAt(r, stored, size-ChecksumSize); err != nil {
		return false, ioError("reading checksum", err)
	}

	iv := make([]byte, BlockSize)
	if err := readAt(r, iv, 0); err != nil {
		return false, ioError("reading IV", err)
	}

	cbcMode := cipher.NewCBCDecrypter(c.block, iv)
	checksum := sha256.New()

	if err := decryptCBCBody(r, body, w, cbcMode, checksum); err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(checksum.Sum(nil), stored) == 1, nil
}

// decryptCBCBody decrypts the next remaining bytes of block-aligned ciphertext,
// hashing every ciphertext byte before it is overwritten and stripping the
// padding from the last block.
func decryptCBCBody(
	r io.Reader,
	remaining int64,
	w io.Writer,
	cbcMode cipher.BlockMode,
	checksum hash.Hash,
) error {
	buf := getBuffer()
	defer putBuffer(buf)

	for remaining > 0 {
		chunk := buf[:min(int64(len(buf)), remaining)]
		if _, err := io.ReadFull(r, chunk); err != nil {
			return ioError("reading ciphertext", err)
		}

		remaining -= int64(len(chunk))

		checksum.Write(chunk)
		cbcMode.CryptBlocks(chunk, chunk)

		if remaining == 0 {
			plaintext, err := pkcs7Unpad(chunk, BlockSize)
			if err != nil {
				return fmt.Errorf("removing padding: %w", err)
			}

			chunk = plaintext
		}

		if _, err := w.Write(chunk); err != nil {
			return ioError("writing decrypted chunk", err)
		}
	}

	return nil
}
