package gost2

import "math/bits"

// sboxes are the sixteen 4-bit permutations of the round function, s1 through s16.
//
//nolint:gochecknoglobals
var sboxes = [16][16]byte{
	{0x4, 0xA, 0x9, 0x2, 0xD, 0x8, 0x0, 0xE, 0x6, 0xB, 0x1, 0xC, 0x7, 0xF, 0x5, 0x3},
	{0xE, 0xB, 0x4, 0xC, 0x6, 0xD, 0xF, 0xA, 0x2, 0x3, 0x8, 0x1, 0x0, 0x7, 0x5, 0x9},
	{0x5, 0x8, 0x1, 0xD, 0xA, 0x3, 0x4, 0x2, 0xE, 0xF, 0xC, 0x7, 0x6, 0x0, 0x9, 0xB},
	{0x7, 0xD, 0xA, 0x1, 0x0, 0x8, 0x9, 0xF, 0xE, 0x4, 0x6, 0xC, 0xB, 0x2, 0x5, 0x3},
	{0x6, 0xC, 0x7, 0x1, 0x5, 0xF, 0xD, 0x8, 0x4, 0xA, 0x9, 0xE, 0x0, 0x3, 0xB, 0x2},
	{0x4, 0xB, 0xA, 0x0, 0x7, 0x2, 0x1, 0xD, 0x3, 0x6, 0x8, 0x5, 0x9, 0xC, 0xF, 0xE},
	{0xD, 0xB, 0x4, 0x1, 0x3, 0xF, 0x5, 0x9, 0x0, 0xA, 0xE, 0x7, 0x6, 0x8, 0x2, 0xC},
	{0x1, 0xF, 0xD, 0x0, 0x5, 0x7, 0xA, 0x4, 0x9, 0x2, 0x3, 0xE, 0x6, 0xB, 0x8, 0xC},
	{0xC, 0x4, 0x6, 0x2, 0xA, 0x5, 0xB, 0x9, 0xE, 0x8, 0xD, 0x7, 0x0, 0x3, 0xF, 0x1},
	{0x6, 0x8, 0x2, 0x3, 0x9, 0xA, 0x5, 0xC, 0x1, 0xE, 0x4, 0x7, 0xB, 0xD, 0x0, 0xF},
	{0xB, 0x3, 0x5, 0x8, 0x2, 0xF, 0xA, 0xD, 0xE, 0x1, 0x7, 0x4, 0xC, 0x9, 0x6, 0x0},
	{0xC, 0x8, 0x2, 0x1, 0xD, 0x4, 0xF, 0x6, 0x7, 0x0, 0xA, 0x5, 0x3, 0xE, 0x9, 0xB},
	{0x7, 0xF, 0x5, 0xA, 0x8, 0x1, 0x6, 0xD, 0x0, 0x9, 0x3, 0xE, 0xB, 0x4, 0x2, 0xC},
	{0x5, 0xD, 0xF, 0x6, 0x9, 0x2, 0xC, 0xA, 0xB, 0x7, 0x8, 0x1, 0x4, 0x3, 0xE, 0x0},
	{0x8, 0xE, 0x2, 0x5, 0x6, 0x9, 0x1, 0xC, 0xF, 0x4, 0xB, 0x0, 0xD, 0xA, 0x3, 0x7},
	{0x1, 0x7, 0xE, 0xD, 0x0, 0x5, 0x8, 0x3, 0x4, 0xF, 0xA, 0x6, 0x9, 0xC, 0xB, 0x2},
}

// byteTables packs pairs of 4-bit boxes into byte-wide lookups.
// Index 0 serves the most significant byte of the low half (s16 over s15),
// index 7 the least significant byte of the high half (s2 over s1).
type byteTables [8][256]byte

//nolint:gochecknoglobals
var tables = newByteTables()

func newByteTables() *byteTables {
	var t byteTables

	for n := range t {
		hi := &sboxes[15-2*n]
		lo := &sboxes[14-2*n]

		for i := range t[n] {
			t[n][i] = hi[i>>4]<<4 | lo[i&15]
		}
	}

	return &t
}

// f is the round function: byte substitution on each half, then a left rotation by 11.
func f(x uint64) uint64 {
	t := tables

	y := uint64(t[4][byte(x>>56)])<<56 |
		uint64(t[5][byte(x>>48)])<<48 |
		uint64(t[6][byte(x>>40)])<<40 |
		uint64(t[7][byte(x>>32)])<<32 |
		uint64(t[0][byte(x>>24)])<<24 |
		uint64(t[1][byte(x>>16)])<<16 |
		uint64(t[2][byte(x>>8)])<<8 |
		uint64(t[3][byte(x)])

	return bits.RotateLeft64(y, 11)
}
