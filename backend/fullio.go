package backend

import (
	"errors"
	"io"
	"syscall"
)

// AtFunc transfers bytes between p and the file at off in a single call and
// reports how many bytes it moved. It may move fewer than len(p).
type AtFunc func(p []byte, off int64) (int, error)

// ReadFullAt fills p from off by calling readOnce until p is full.
//
// A call that makes no progress, or reports io.EOF before p is full, ends the
// loop with io.ErrUnexpectedEOF. EINTR is retried; every other error is returned
// as is.
func ReadFullAt(readOnce AtFunc, p []byte, off int64) error {
	for len(p) > 0 {
		n, err := readOnce(p, off)
		if n < 0 || n > len(p) {
			return ErrNotSuitable
		}
		p = p[n:]
		off += int64(n)
		switch {
		case err == nil:
		case errors.Is(err, syscall.EINTR):
			continue
		case errors.Is(err, io.EOF):
			if len(p) == 0 {
				return nil
			}
			return io.ErrUnexpectedEOF
		default:
			return err
		}
		if n == 0 {
			return io.ErrUnexpectedEOF
		}
	}
	return nil
}

// WriteFullAt writes all of p at off by calling writeOnce until nothing is left.
// A call that makes no progress ends the loop with io.ErrShortWrite.
func WriteFullAt(writeOnce AtFunc, p []byte, off int64) error {
	for len(p) > 0 {
		n, err := writeOnce(p, off)
		if n < 0 || n > len(p) {
			return ErrNotSuitable
		}
		p = p[n:]
		off += int64(n)
		switch {
		case err == nil:
		case errors.Is(err, syscall.EINTR):
			continue
		default:
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
	}
	return nil
}
