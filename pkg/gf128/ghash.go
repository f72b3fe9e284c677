package gf128

// GHASH accumulates y = (y + block) * H over a stream of 16-byte blocks.
// A GHASH is used for one message and is not safe for concurrent use.
type GHASH struct {
	h Element
	y Element
}

// NewGHASH returns an accumulator keyed with the hash subkey h.
func NewGHASH(h Element) *GHASH {
	return &GHASH{h: h}
}

// Update folds p into the accumulator. A trailing partial block is zero-padded,
// so only the last call for a given input segment may pass a length that is not
// a multiple of Size.
func (g *GHASH) Update(p []byte) {
	for len(p) >= Size {
		g.block(FromBytes(p))
		p = p[Size:]
	}

	if len(p) > 0 {
		var last [Size]byte

		copy(last[:], p)
		g.block(FromBytes(last[:]))
	}
}

// UpdateLengths folds in the final lengths block, both lengths in bits.
func (g *GHASH) UpdateLengths(aadBits, ciphertextBits uint64) {
	g.block(Element{Hi: aadBits, Lo: ciphertextBits})
}

// Sum returns the current accumulator value.
func (g *GHASH) Sum() Element {
	return g.y
}

// Reset clears the accumulator and the hash subkey.
func (g *GHASH) Reset() {
	g.y = Element{}
	g.h = Element{}
}

func (g *GHASH) block(x Element) {
	g.y = Mul(g.y.Xor(x), g.h)
}
