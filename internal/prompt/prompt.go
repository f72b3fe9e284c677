// Package prompt reads the password a tool run is keyed with.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Source supplies a password. The caller owns the returned slice and wipes it.
type Source interface {
	Password(prompt string) ([]byte, error)
}

// Terminal prompts on Out and reads from In without echo when In is a terminal.
// Otherwise it reads a single line, which lets scripts pipe the password in.
type Terminal struct {
	In  *os.File
	Out io.Writer
}

// Stdio returns a Terminal over the process's standard streams. The prompt goes to
// stderr so stdout carries only the result messages.
func Stdio() Terminal {
	return Terminal{In: os.Stdin, Out: os.Stderr}
}

// Password prints prompt and reads the reply. An empty password is allowed.
func (t Terminal) Password(prompt string) ([]byte, error) {
	fmt.Fprint(t.Out, prompt)

	fd := int(t.In.Fd()) //nolint:gosec // file descriptors fit in int
	if term.IsTerminal(fd) {
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(t.Out)

		if err != nil {
			return nil, fmt.Errorf("reading password: %w", err)
		}

		return password, nil
	}

	return readLine(t.In)
}

// Reader reads the password as one line from R, for non-interactive use.
type Reader struct {
	R io.Reader
}

// Password ignores prompt and returns the next line of R.
func (r Reader) Password(string) ([]byte, error) {
	return readLine(r.R)
}

// readLine returns the first line of r without its terminator. Input that ends
// without a newline is accepted. r is read one byte at a time so nothing past the
// line is consumed and no buffered copy of the password is left behind.
func readLine(r io.Reader) ([]byte, error) {
	var (
		line []byte
		b    [1]byte
	)

	defer clear(b[:])

	for {
		n, err := r.Read(b[:])
		if n > 0 {
			if b[0] == '\n' {
				break
			}

			line = appendSecret(line, b[0])
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			Wipe(line)

			return nil, fmt.Errorf("reading password: %w", err)
		}
	}

	if len(line) > 0 && line[len(line)-1] == '\r' {
		line[len(line)-1] = 0
		line = line[:len(line)-1]
	}

	return line, nil
}

// appendSecret appends c to line, zeroing the old backing array when it has to grow.
func appendSecret(line []byte, c byte) []byte {
	if len(line) < cap(line) {
		return append(line, c)
	}

	grown := make([]byte, len(line), max(2*cap(line), 32)) //nolint:mnd
	copy(grown, line)
	Wipe(line)

	return append(grown, c)
}

// Wipe zeroes a password once it is no longer needed.
func Wipe(password []byte) {
	clear(password)
}
