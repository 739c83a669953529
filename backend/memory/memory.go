// Package memory implements backend.Storage in process memory. Nothing is ever
// persisted; it is meant for tests and throwaway stores.
package memory

import (
	"io"
	"sync"

	"github.com/diskfs/go-pagefile/backend"
)

// Storage is a growable byte slice behind a backend.Storage
type Storage struct {
	mu   sync.RWMutex
	data []byte
}

// backend.Storage interface guard
var _ backend.Storage = (*Storage)(nil)

// New returns an empty Storage
func New() *Storage {
	return &Storage{}
}

func (s *Storage) Len() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.data)), nil
}

func (s *Storage) Read(offset uint64, n int) ([]byte, error) {
	if _, err := backend.Position(offset, n); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if offset+uint64(n) > uint64(len(s.data)) {
		return nil, io.ErrUnexpectedEOF
	}
	buf := make([]byte, n)
	copy(buf, s.data[offset:])
	return buf, nil
}

// Write grows the buffer with zeroes when data ends past the current length.
func (s *Storage) Write(offset uint64, data []byte) error {
	if _, err := backend.Position(offset, len(data)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if end := offset + uint64(len(data)); end > uint64(len(s.data)) {
		s.resize(end)
	}
	copy(s.data[offset:], data)
	return nil
}

func (s *Storage) SetLen(n uint64) error {
	if _, err := backend.Position(n, 0); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resize(n)
	return nil
}

func (s *Storage) SyncData(_ bool) error {
	return nil
}

func (s *Storage) Close() error {
	return nil
}

// resize must be called with mu held for writing
func (s *Storage) resize(n uint64) {
	if n <= uint64(len(s.data)) {
		clear(s.data[n:])
		s.data = s.data[:n]
		return
	}
	if n <= uint64(cap(s.data)) {
		s.data = s.data[:n]
		return
	}
	grown := make([]byte, n)
	copy(grown, s.data)
	s.data = grown
}
