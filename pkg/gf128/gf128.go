// Package gf128 implements multiplication in GF(2^128) with the GCM bit order
// and the GHASH universal hash built on it.
package gf128

import "encoding/binary"

// Size is the size of a field element in bytes.
const Size = 16

// r is the reduction constant 0xE1 || 0^120, kept as the high word.
const r = 0xE1 << 56

// Element is a field element. Hi holds the first eight bytes of the block
// big-endian, so the most significant bit of Hi is the coefficient of x^0.
type Element struct {
	Hi, Lo uint64
}

// FromBytes reads a 16-byte block as an Element.
func FromBytes(b []byte) Element {
	_ = b[Size-1]

	return Element{
		Hi: binary.BigEndian.Uint64(b[0:8]),
		Lo: binary.BigEndian.Uint64(b[8:16]),
	}
}

// Bytes returns the block encoding of e.
func (e Element) Bytes() [Size]byte {
	var b [Size]byte

	e.Put(b[:])

	return b
}

// Put writes the block encoding of e into b.
func (e Element) Put(b []byte) {
	_ = b[Size-1]

	binary.BigEndian.PutUint64(b[0:8], e.Hi)
	binary.BigEndian.PutUint64(b[8:16], e.Lo)
}

// Xor returns e + o.
func (e Element) Xor(o Element) Element {
	return Element{Hi: e.Hi ^ o.Hi, Lo: e.Lo ^ o.Lo}
}

// Mul returns x * y using the right-shift algorithm of SP 800-38D.
func Mul(x, y Element) Element {
	var z Element

	v := y

	for _, word := range [2]uint64{x.Hi, x.Lo} {
		for bit := 63; bit >= 0; bit-- {
			if word>>bit&1 == 1 {
				z.Hi ^= v.Hi
				z.Lo ^= v.Lo
			}

			carry := v.Lo & 1
			v.Lo = v.Lo>>1 | v.Hi<<63
			v.Hi >>= 1

			if carry == 1 {
				v.Hi ^= r
			}
		}
	}

	return z
}
