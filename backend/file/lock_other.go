//go:build !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd && !windows

package file

import "os"

func tryLock(_ *os.File) (lockState, error) {
	return lockUnsupported, errLockUnsupported
}

func unlock(_ *os.File) error {
	return nil
}
