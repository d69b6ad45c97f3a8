//go:build unix

package mmap

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapFile prefers a shared read-only mapping for zero-copy views and
// falls back to loading the file when mmap fails (some filesystems and
// special files refuse it).
func mapFile(f *os.File, size int) ([]byte, bool, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		return data, true, nil
	}
	data, err = readAllAt(f, size)
	return data, false, err
}

// Unmap releases a region returned by Map with mapped == true.
func Unmap(data []byte) error {
	return unix.Munmap(data)
}
