// Package pagefile opens single-file page stores on local disk.
//
// The byte-level work happens in github.com/diskfs/go-pagefile/backend/file, which
// takes an already open handle. This package is the thin layer on top that turns a
// path into such a handle, and closes the handle again together with the lock.
//
// Some examples:
//
// 1. Create a 1 MB store and write a page to it.
//
//	store, err := pagefile.Create("/tmp/pages.db", 1024*1024)
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//	err = store.Write(4096, page)
//	err = store.SyncData(false)
//
// 2. Open an existing store; a second opener gets backend.ErrDatabaseAlreadyOpen.
//
//	store, err := pagefile.Open("/tmp/pages.db")
//	if errors.Is(err, backend.ErrDatabaseAlreadyOpen) {
//		// someone else has it
//	}
package pagefile

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/diskfs/go-pagefile/backend"
	"github.com/diskfs/go-pagefile/backend/file"
)

// Store is a file.Backend together with the handle it was built on.
type Store struct {
	*file.Backend
	File *os.File

	closeOnce sync.Once
	closeErr  error
}

// backend.Storage interface guard
var _ backend.Storage = (*Store)(nil)

// Open a Store from a path to an existing file.
// The file must exist at the time you call Open()
func Open(path string, opts ...file.Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("must pass store file name")
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("could not open store %s: %w", path, err)
	}
	return initStore(f, opts)
}

// Create a Store at a path and size it to size bytes.
// The file must not exist at the time you call Create()
func Create(path string, size int64, opts ...file.Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("must pass store file name")
	}
	if size < 0 {
		return nil, errors.New("must pass valid store size to create")
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_EXCL|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("could not create store %s: %w", path, err)
	}
	store, err := initStore(f, opts)
	if err != nil {
		return nil, err
	}
	if err := store.SetLen(uint64(size)); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("could not expand store %s to size %d: %w", path, size, err)
	}
	return store, nil
}

func initStore(f *os.File, opts []file.Option) (*Store, error) {
	b, err := file.New(f, opts...)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Store{Backend: b, File: f}, nil
}

// Close releases the lock and then closes the file. Only the first call does
// anything; later calls return the first call's result.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = errors.Join(s.Backend.Close(), s.File.Close())
	})
	return s.closeErr
}
