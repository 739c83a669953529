//go:build darwin

package file

import (
	"os"

	"golang.org/x/sys/unix"
)

// F_BARRIERFSYNC orders writes without waiting for the drive to flush its
// cache. (*os.File).Sync issues F_FULLFSYNC.
func syncData(f *os.File, eventual bool) error {
	if !eventual {
		return f.Sync()
	}
	if _, err := unix.FcntlInt(f.Fd(), unix.F_BARRIERFSYNC, 0); err != nil {
		return os.NewSyscallError("fcntl", err)
	}
	return nil
}
