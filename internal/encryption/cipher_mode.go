package encryption

import (
	"crypto/cipher"
	"fmt"
	"io"
	"strings"
)

// CipherMode selects the file format, one per tool.
type CipherMode byte

const (
	// ModeCBC is IV || CBC(PKCS#7(plaintext)) || SHA-256(ciphertext).
	ModeCBC CipherMode = iota
	// ModeGCM is IV || CTR(plaintext) || GHASH tag.
	ModeGCM
)

// Scheme is a streaming file format.
//
// Decrypt writes plaintext as it is recovered and reports afterwards whether the
// trailer matched. A false result is not an error.
type Scheme interface {
	Encrypt(r io.Reader, w io.Writer) error
	Decrypt(r io.ReadSeeker, w io.Writer) (authenticated bool, err error)
}

// ParseMode maps a scheme name to its CipherMode.
func ParseMode(name string) (CipherMode, error) {
	switch strings.ToLower(name) {
	case "cbc":
		return ModeCBC, nil
	case "gcm":
		return ModeGCM, nil
	default:
		return 0, fmt.Errorf("unknown scheme %q", name)
	}
}

// String returns the scheme name.
func (m CipherMode) String() string {
	switch m {
	case ModeCBC:
		return "cbc"
	case ModeGCM:
		return "gcm"
	default:
		return fmt.Sprintf("CipherMode(%d)", byte(m))
	}
}

// RemovesPartialOutput reports whether a failed operation deletes what it already wrote.
// The CBC tool cleans up after itself, the GCM tool leaves the partial file in place.
func (m CipherMode) RemovesPartialOutput() bool {
	return m == ModeCBC
}

// New builds the scheme for m over block. A nil random source means crypto/rand.
func (m CipherMode) New(block cipher.Block, random io.Reader) (Scheme, error) {
	switch m {
	case ModeCBC:
		return NewCBC(block, random)
	case ModeGCM:
		return NewGCM(block, random)
	default:
		return nil, fmt.Errorf("unknown scheme %v", m)
	}
}
