package encryption

import (
	"errors"
	"fmt"
	"io"
)

// readChunk fills buf from r. last is set once r is exhausted, in which case
// n may be anything from zero to len(buf)-1.
func readChunk(r io.Reader, buf []byte) (n int, last bool, err error) {
	n, err = io.ReadFull(r, buf)

	switch {
	case err == nil:
		return n, false, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return n, true, nil
	default:
		return n, false, ioError("reading input", err)
	}
}

// inputSize returns the total length of r and leaves the offset at the end.
func inputSize(r io.Seeker) (int64, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNotSeekable, err)
	}

	return size, nil
}

// readAt fills p from offset off of r and leaves the offset just after it.
func readAt(r io.ReadSeeker, p []byte, off int64) error {
	if _, err := r.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to %d: %w", off, err)
	}

	if _, err := io.ReadFull(r, p); err != nil {
		return err
	}

	return nil
}
