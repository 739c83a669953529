//go:build windows

package file

import (
	"errors"
	"os"

	"golang.org/x/sys/windows"

	"github.com/diskfs/go-pagefile/backend"
)

// ReadFile and WriteFile with an OVERLAPPED offset may move fewer bytes than
// asked for, so both go through the shared retry loop.

func readAt(f *os.File, p []byte, off int64) error {
	h := windows.Handle(f.Fd())
	return backend.ReadFullAt(func(b []byte, at int64) (int, error) {
		var done uint32
		err := windows.ReadFile(h, b, &done, overlappedAt(at))
		if errors.Is(err, windows.ERROR_HANDLE_EOF) {
			return int(done), nil
		}
		if err != nil {
			return int(done), os.NewSyscallError("ReadFile", err)
		}
		return int(done), nil
	}, p, off)
}

func writeAt(f *os.File, p []byte, off int64) error {
	h := windows.Handle(f.Fd())
	return backend.WriteFullAt(func(b []byte, at int64) (int, error) {
		var done uint32
		if err := windows.WriteFile(h, b, &done, overlappedAt(at)); err != nil {
			return int(done), os.NewSyscallError("WriteFile", err)
		}
		return int(done), nil
	}, p, off)
}

func overlappedAt(off int64) *windows.Overlapped {
	return &windows.Overlapped{
		Offset:     uint32(off),
		OffsetHigh: uint32(off >> 32),
	}
}
