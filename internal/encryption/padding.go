package encryption

import (
	"bytes"
	"fmt"
)

// pkcs7Pad appends between 1 and blockSize bytes of PKCS#7 padding.
// Aligned input gets a full block.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	padText := bytes.Repeat([]byte{byte(padding)}, padding)

	return append(data, padText...)
}

// pkcs7Unpad strips PKCS#7 padding from the final block(s) in data.
// A pad byte of zero, larger than the block size or larger than data,
// or not repeated across the whole pad is rejected.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	length := len(data)
	if length == 0 || length%blockSize != 0 {
		return nil, ErrInvalidLength
	}

	padding := int(data[length-1])
	if padding == 0 || padding > blockSize || padding > length {
		return nil, fmt.Errorf("%w: pad byte %d", ErrInvalidPadding, padding)
	}

	for _, b := range data[length-padding:] {
		if int(b) != padding {
			return nil, ErrInvalidPadding
		}
	}

	return data[:length-padding], nil
}
