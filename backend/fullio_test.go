package backend_test

import (
	"bytes"
	"errors"
	"io"
	"syscall"
	"testing"

	"github.com/diskfs/go-pagefile/backend"
	"github.com/diskfs/go-pagefile/testhelper"
)

func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 251)
	}
	return b
}

func TestReadFullAtShortReads(t *testing.T) {
	data := pattern(10000)
	tests := []struct {
		chunk  int
		offset int64
		length int
		calls  int
	}{
		{1, 0, 7, 7},
		{3, 100, 10, 4},
		{4096, 17, 9000, 3},
		{10000, 0, 10000, 1},
		{7, 9990, 10, 2},
	}
	for _, tt := range tests {
		f := &testhelper.ChunkedFile{Data: data, Chunk: tt.chunk}
		buf := make([]byte, tt.length)
		if err := backend.ReadFullAt(f.ReadAt, buf, tt.offset); err != nil {
			t.Fatalf("chunk %d: ReadFullAt(%d, %d): %v", tt.chunk, tt.offset, tt.length, err)
		}
		if !bytes.Equal(buf, data[tt.offset:tt.offset+int64(tt.length)]) {
			t.Errorf("chunk %d: ReadFullAt(%d, %d) returned wrong bytes", tt.chunk, tt.offset, tt.length)
		}
		if f.Calls != tt.calls {
			t.Errorf("chunk %d: ReadFullAt(%d, %d) made %d calls, expected %d", tt.chunk, tt.offset, tt.length, f.Calls, tt.calls)
		}
	}
}

func TestReadFullAtEOF(t *testing.T) {
	f := &testhelper.ChunkedFile{Data: pattern(100), Chunk: 8}
	buf := make([]byte, 20)
	err := backend.ReadFullAt(f.ReadAt, buf, 90)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("read across the end: mismatched error, actual %v expected %v", err, io.ErrUnexpectedEOF)
	}
}

func TestReadFullAtZeroProgress(t *testing.T) {
	calls := 0
	f := &testhelper.FileImpl{
		Reader: func(b []byte, offset int64) (int, error) {
			calls++
			if calls == 1 {
				return 2, nil
			}
			return 0, nil
		},
	}
	err := backend.ReadFullAt(f.ReadAt, make([]byte, 5), 0)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("mismatched error, actual %v expected %v", err, io.ErrUnexpectedEOF)
	}
	if calls != 2 {
		t.Errorf("made %d calls, expected 2", calls)
	}
}

func TestReadFullAtOffsets(t *testing.T) {
	var offsets []int64
	f := &testhelper.FileImpl{
		Reader: func(b []byte, offset int64) (int, error) {
			offsets = append(offsets, offset)
			n := min(len(b), 3)
			for i := 0; i < n; i++ {
				b[i] = byte(offset) + byte(i)
			}
			return n, nil
		},
	}
	buf := make([]byte, 8)
	if err := backend.ReadFullAt(f.ReadAt, buf, 40); err != nil {
		t.Fatalf("ReadFullAt(): %v", err)
	}
	if expected := []int64{40, 43, 46}; !equalInts(offsets, expected) {
		t.Errorf("offsets requested %v, expected %v", offsets, expected)
	}
	if expected := []byte{40, 41, 42, 43, 44, 45, 46, 47}; !bytes.Equal(buf, expected) {
		t.Errorf("buffer %v, expected %v", buf, expected)
	}
}

func TestReadFullAtErrors(t *testing.T) {
	failure := errors.New("device gone")
	tests := []struct {
		name    string
		replies []reply
		err     error
	}{
		{"error first call", []reply{{0, failure}}, failure},
		{"error after progress", []reply{{3, nil}, {0, failure}}, failure},
		{"interrupted then done", []reply{{2, syscall.EINTR}, {0, syscall.EINTR}, {4, nil}}, nil},
		{"eof with full buffer", []reply{{6, io.EOF}}, nil},
		{"eof short", []reply{{5, io.EOF}}, io.ErrUnexpectedEOF},
		{"overlong count", []reply{{7, nil}}, backend.ErrNotSuitable},
	}
	for _, tt := range tests {
		f := scripted(tt.replies)
		err := backend.ReadFullAt(f.ReadAt, make([]byte, 6), 0)
		if !errors.Is(err, tt.err) || (err == nil) != (tt.err == nil) {
			t.Errorf("%s: mismatched errors, actual %v expected %v", tt.name, err, tt.err)
		}
	}
}

func TestWriteFullAtShortWrites(t *testing.T) {
	data := pattern(5000)
	for _, chunk := range []int{1, 5, 512, 4999, 5000, 8192} {
		f := &testhelper.ChunkedFile{Data: make([]byte, 10), Chunk: chunk}
		if err := backend.WriteFullAt(f.WriteAt, data, 10); err != nil {
			t.Fatalf("chunk %d: WriteFullAt(): %v", chunk, err)
		}
		if !bytes.Equal(f.Data[10:], data) || len(f.Data) != 5010 {
			t.Errorf("chunk %d: written data does not match", chunk)
		}
		expected := (len(data) + chunk - 1) / chunk
		if f.Calls != expected {
			t.Errorf("chunk %d: made %d calls, expected %d", chunk, f.Calls, expected)
		}
	}
}

func TestWriteFullAtErrors(t *testing.T) {
	failure := errors.New("disk full")
	tests := []struct {
		name    string
		replies []reply
		err     error
	}{
		{"stalled", []reply{{2, nil}, {0, nil}}, io.ErrShortWrite},
		{"error after progress", []reply{{4, nil}, {1, failure}}, failure},
		{"interrupted then done", []reply{{0, syscall.EINTR}, {3, syscall.EINTR}, {3, nil}}, nil},
		{"overlong count", []reply{{9, nil}}, backend.ErrNotSuitable},
	}
	for _, tt := range tests {
		f := scripted(tt.replies)
		err := backend.WriteFullAt(f.WriteAt, make([]byte, 6), 0)
		if !errors.Is(err, tt.err) || (err == nil) != (tt.err == nil) {
			t.Errorf("%s: mismatched errors, actual %v expected %v", tt.name, err, tt.err)
		}
	}
}

type reply struct {
	n   int
	err error
}

// scripted answers successive calls with replies in order, and fails the
// read or write with io.ErrNoProgress once they run out
func scripted(replies []reply) *testhelper.FileImpl {
	next := func(b []byte, offset int64) (int, error) {
		if len(replies) == 0 {
			return 0, io.ErrNoProgress
		}
		r := replies[0]
		replies = replies[1:]
		return r.n, r.err
	}
	return &testhelper.FileImpl{Reader: next, Writer: next}
}

func equalInts(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
