//go:build !windows

package file

import (
	"errors"
	"io"
	"os"
)

// (*os.File).ReadAt keeps reading until the buffer is full, so one call is
// enough; running out of file is reported as io.EOF.
func readAt(f *os.File, p []byte, off int64) error {
	_, err := f.ReadAt(p, off)
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

func writeAt(f *os.File, p []byte, off int64) error {
	_, err := f.WriteAt(p, off)
	return err
}
