// Package gost2 implements the GOST2-128 block cipher: a 32-round unbalanced
// Feistel network over two 64-bit words, keyed by a 64-word schedule derived
// from a password through package keyhash.
//
// Blocks are 16 bytes read as two big-endian words. Cipher satisfies
// crypto/cipher.Block, so it composes with the standard library modes.
package gost2
