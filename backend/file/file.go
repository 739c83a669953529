// Package file implements backend.Storage on top of an open *os.File.
//
// The backend never opens, creates or closes the file itself. New takes an exclusive
// advisory lock on the handle so that two processes cannot mutate the same store;
// Close releases it again. Positional I/O, locking and data sync go through the
// primitive each platform provides, selected at build time.
package file

import (
	"fmt"
	"math"
	"os"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/diskfs/go-pagefile/backend"
)

// Backend stores a database in a single on-disk file.
type Backend struct {
	file          *os.File
	lockSupported bool
	released      atomic.Bool
	log           logrus.FieldLogger
}

// Option configures a Backend at construction time
type Option func(*options)

type options struct {
	logger logrus.FieldLogger
}

// WithLogger sets the logger warnings and debug messages are written to.
// The default is logrus.StandardLogger().
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// backend.Storage interface guard
var _ backend.Storage = (*Backend)(nil)

// New creates a backend storing data in f.
//
// It fails with backend.ErrDatabaseAlreadyOpen if another handle holds the lock.
// If the platform or filesystem cannot lock files, the backend is created anyway
// and a warning is logged: the caller must then make sure only one process opens
// the file at a time.
func New(f *os.File, opts ...Option) (*Backend, error) {
	if f == nil {
		return nil, backend.ErrNotSuitable
	}
	o := options{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger.WithFields(logrus.Fields{
		"file":    f.Name(),
		"backend": uuid.New().String(),
	})

	state, err := tryLockFile(f)
	switch state {
	case lockAcquired:
		log.Debug("acquired exclusive file lock")
		return &Backend{file: f, lockSupported: true, log: log}, nil
	case lockUnsupported:
		if err != nil {
			log = log.WithError(err)
		}
		log.Warn("file locks not supported on this platform, you must ensure that only a single process opens the database file at a time")
		return &Backend{file: f, lockSupported: false, log: log}, nil
	case lockContended:
		return nil, fmt.Errorf("could not lock %s: %w", f.Name(), backend.ErrDatabaseAlreadyOpen)
	default:
		return nil, fmt.Errorf("could not lock %s: %w", f.Name(), err)
	}
}

// LockSupported reports whether New took an advisory lock on the file.
func (b *Backend) LockSupported() bool {
	return b.lockSupported
}

// Len returns the size of the file in bytes
func (b *Backend) Len() (uint64, error) {
	info, err := b.file.Stat()
	if err != nil {
		return 0, err
	}
	return uint64(info.Size()), nil
}

// Read returns exactly n bytes starting at offset.
func (b *Backend) Read(offset uint64, n int) ([]byte, error) {
	off, err := backend.Position(offset, n)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := readAt(b.file, buf, off); err != nil {
		return nil, fmt.Errorf("read %d bytes at %d from %s: %w", n, offset, b.file.Name(), err)
	}
	return buf, nil
}

// Write writes all of data starting at offset. Writing past the end of the
// file extends it the way the OS does.
func (b *Backend) Write(offset uint64, data []byte) error {
	off, err := backend.Position(offset, len(data))
	if err != nil {
		return err
	}
	if err := writeAt(b.file, data, off); err != nil {
		return fmt.Errorf("write %d bytes at %d to %s: %w", len(data), offset, b.file.Name(), err)
	}
	return nil
}

// SetLen truncates or extends the file to exactly n bytes.
func (b *Backend) SetLen(n uint64) error {
	if n > math.MaxInt64 {
		return backend.ErrInvalidOffset
	}
	return b.file.Truncate(int64(n))
}

// SyncData flushes file contents to stable storage. eventual asks for a write
// barrier instead of a full flush; platforms without one ignore it.
func (b *Backend) SyncData(eventual bool) error {
	return syncData(b.file, eventual)
}

// Close releases the file lock, if one was taken. It does not close the file.
func (b *Backend) Close() error {
	if !b.lockSupported || !b.released.CompareAndSwap(false, true) {
		return nil
	}
	if err := unlockFile(b.file); err != nil {
		return fmt.Errorf("could not unlock %s: %w", b.file.Name(), err)
	}
	b.log.Debug("released exclusive file lock")
	return nil
}
