package file

import (
	"errors"
	"os"
)

// errLockUnsupported is reported by platforms with no advisory locking at all.
var errLockUnsupported = errors.New("file locking not supported")

type lockState int

const (
	lockFailed lockState = iota
	lockAcquired
	lockUnsupported
	lockContended
)

func (s lockState) String() string {
	switch s {
	case lockAcquired:
		return "acquired"
	case lockUnsupported:
		return "unsupported"
	case lockContended:
		return "contended"
	default:
		return "failed"
	}
}

// swapped out by tests to simulate platforms without locking
var (
	tryLockFile func(f *os.File) (lockState, error) = tryLock
	unlockFile  func(f *os.File) error              = unlock
)
