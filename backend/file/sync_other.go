//go:build !linux && !darwin

package file

import "os"

func syncData(f *os.File, _ bool) error {
	return f.Sync()
}
