//go:build windows

package file

import (
	"errors"
	"math"
	"os"

	"golang.org/x/sys/windows"
)

// lock the whole file, whatever its size
const (
	lockRangeLow  = math.MaxUint32
	lockRangeHigh = math.MaxUint32
)

func tryLock(f *os.File) (lockState, error) {
	err := windows.LockFileEx(windows.Handle(f.Fd()),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		0, lockRangeLow, lockRangeHigh, new(windows.Overlapped))
	switch {
	case err == nil:
		return lockAcquired, nil
	case errors.Is(err, windows.ERROR_LOCK_VIOLATION):
		return lockContended, nil
	case errors.Is(err, windows.ERROR_NOT_SUPPORTED), errors.Is(err, windows.ERROR_INVALID_FUNCTION):
		return lockUnsupported, os.NewSyscallError("LockFileEx", err)
	default:
		return lockFailed, os.NewSyscallError("LockFileEx", err)
	}
}

func unlock(f *os.File) error {
	err := windows.UnlockFileEx(windows.Handle(f.Fd()), 0, lockRangeLow, lockRangeHigh, new(windows.Overlapped))
	return os.NewSyscallError("UnlockFileEx", err)
}
