// Package encryption implements the two GOST2-128 file formats and the
// processing of a single file with them.
//
// Both formats start with a random 16-byte IV and are streamed in 64KiB chunks:
//
//	CBC: IV || CBC(PKCS#7(plaintext)) || SHA-256(ciphertext)
//	GCM: IV || CTR(plaintext) || tag
//
// Decryption writes plaintext before the trailer has been checked. Processor
// offers a verify-first mode that buffers the output in a temporary file instead.
package encryption
