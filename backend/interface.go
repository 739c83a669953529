// Package backend defines the storage contract a page store reads and writes through.
//
// A Storage is a flat, byte-addressable file: every read and write names its offset
// explicitly, the extent only changes through SetLen, and SyncData is the only
// durability point. Implementations live in sub-packages, e.g. backend/file.
package backend

import (
	"errors"
	"math"
)

var (
	ErrDatabaseAlreadyOpen = errors.New("database already open")
	ErrInvalidOffset       = errors.New("offset or length out of range")
	ErrNotSuitable         = errors.New("backing file is not suitable")
)

// Storage is the contract consumed by the page store.
type Storage interface {
	// Len returns the current size in bytes.
	Len() (uint64, error)
	// Read returns exactly n bytes starting at offset, or an error. It never
	// returns a short buffer.
	Read(offset uint64, n int) ([]byte, error)
	// Write writes all of data at offset, or returns an error.
	Write(offset uint64, data []byte) error
	// SetLen truncates or extends to exactly n bytes.
	SetLen(n uint64) error
	// SyncData flushes written data to stable storage. With eventual set, a
	// write barrier is used where the platform has one.
	SyncData(eventual bool) error
	// Close releases any exclusive claim on the storage. Calling it more than
	// once is allowed.
	Close() error
}

// Position converts an offset and length into a file position, rejecting spans
// that do not fit in an int64.
func Position(offset uint64, n int) (int64, error) {
	if n < 0 || offset > math.MaxInt64 || uint64(n) > math.MaxInt64-offset {
		return 0, ErrInvalidOffset
	}
	return int64(offset), nil
}
