package testhelper

import (
	"io"
	"sync"
)

type reader func(b []byte, offset int64) (int, error)
type writer func(b []byte, offset int64) (int, error)

// FileImpl is a file whose positional reads and writes are supplied by the test,
// used to script exactly what a single I/O call returns
type FileImpl struct {
	Reader reader
	Writer writer
}

// ReadAt read at a particular offset
func (f *FileImpl) ReadAt(b []byte, offset int64) (int, error) {
	return f.Reader(b, offset)
}

// WriteAt write at a particular offset
func (f *FileImpl) WriteAt(b []byte, offset int64) (int, error) {
	return f.Writer(b, offset)
}

// ChunkedFile is an in-memory file that moves at most Chunk bytes per call,
// the way a positional primitive allowed to return short counts behaves.
// Calls counts every ReadAt and WriteAt.
type ChunkedFile struct {
	mu    sync.Mutex
	Data  []byte
	Chunk int
	Calls int
}

func (f *ChunkedFile) ReadAt(b []byte, offset int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if offset >= int64(len(f.Data)) {
		return 0, io.EOF
	}
	n := copy(b[:min(len(b), f.Chunk)], f.Data[offset:])
	return n, nil
}

// WriteAt grows Data when the write ends past it
func (f *ChunkedFile) WriteAt(b []byte, offset int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	n := min(len(b), f.Chunk)
	if end := int(offset) + n; end > len(f.Data) {
		f.Data = append(f.Data, make([]byte, end-len(f.Data))...)
	}
	copy(f.Data[offset:], b[:n])
	return n, nil
}
