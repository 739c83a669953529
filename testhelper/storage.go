package testhelper

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/diskfs/go-pagefile/backend"
)

// CheckStorage runs the behaviour every backend.Storage must share against s.
// s must be empty and open; it is resized freely and closed at the end.
func CheckStorage(t *testing.T, s backend.Storage) {
	t.Helper()

	const size = 64 * 1024

	t.Run("set len", func(t *testing.T) {
		for _, n := range []uint64{size, 4096, 0, size} {
			if err := s.SetLen(n); err != nil {
				t.Fatalf("SetLen(%d): %v", n, err)
			}
			l, err := s.Len()
			if err != nil {
				t.Fatalf("Len(): %v", err)
			}
			if l != n {
				t.Errorf("Len() after SetLen(%d) = %d", n, l)
			}
		}
	})

	t.Run("round trip", func(t *testing.T) {
		tests := []struct {
			offset uint64
			length int
		}{
			{0, 1},
			{0, 512},
			{511, 2},
			{4095, 4097},
			{size - 3, 3},
			{12345, 0},
		}
		for _, tt := range tests {
			data := make([]byte, tt.length)
			_, _ = rand.Read(data)
			if err := s.Write(tt.offset, data); err != nil {
				t.Fatalf("Write(%d, %d bytes): %v", tt.offset, tt.length, err)
			}
			got, err := s.Read(tt.offset, tt.length)
			if err != nil {
				t.Fatalf("Read(%d, %d): %v", tt.offset, tt.length, err)
			}
			if !bytes.Equal(got, data) {
				t.Errorf("Read(%d, %d) did not return what was written", tt.offset, tt.length)
			}
		}
	})

	t.Run("read past end", func(t *testing.T) {
		l, err := s.Len()
		if err != nil {
			t.Fatalf("Len(): %v", err)
		}
		for _, tt := range []struct {
			offset uint64
			length int
		}{
			{l - 10, 11},
			{l, 1},
			{l + 4096, 16},
		} {
			got, err := s.Read(tt.offset, tt.length)
			if err == nil {
				t.Errorf("Read(%d, %d) past length %d returned %d bytes and no error", tt.offset, tt.length, l, len(got))
			}
		}
	})

	t.Run("grown region is zero", func(t *testing.T) {
		if err := s.SetLen(4096); err != nil {
			t.Fatalf("SetLen(4096): %v", err)
		}
		if err := s.Write(0, bytes.Repeat([]byte{0xff}, 4096)); err != nil {
			t.Fatalf("Write(): %v", err)
		}
		if err := s.SetLen(1024); err != nil {
			t.Fatalf("SetLen(1024): %v", err)
		}
		if err := s.SetLen(8192); err != nil {
			t.Fatalf("SetLen(8192): %v", err)
		}
		got, err := s.Read(1024, 8192-1024)
		if err != nil {
			t.Fatalf("Read(): %v", err)
		}
		if !bytes.Equal(got, make([]byte, len(got))) {
			t.Errorf("region grown by SetLen is not zero filled")
		}
		kept, err := s.Read(0, 1024)
		if err != nil {
			t.Fatalf("Read(): %v", err)
		}
		if !bytes.Equal(kept, bytes.Repeat([]byte{0xff}, 1024)) {
			t.Errorf("bytes below the truncation point changed")
		}
	})

	t.Run("sync keeps content", func(t *testing.T) {
		data := make([]byte, 3000)
		_, _ = rand.Read(data)
		if err := s.Write(100, data); err != nil {
			t.Fatalf("Write(): %v", err)
		}
		for _, eventual := range []bool{true, false} {
			if err := s.SyncData(eventual); err != nil {
				t.Fatalf("SyncData(%v): %v", eventual, err)
			}
			got, err := s.Read(100, len(data))
			if err != nil {
				t.Fatalf("Read(): %v", err)
			}
			if !bytes.Equal(got, data) {
				t.Errorf("content changed after SyncData(%v)", eventual)
			}
		}
	})

	t.Run("close twice", func(t *testing.T) {
		if err := s.Close(); err != nil {
			t.Fatalf("first Close(): %v", err)
		}
		if err := s.Close(); err != nil {
			t.Errorf("second Close(): %v", err)
		}
	})
}
