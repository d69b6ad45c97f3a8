//go:build !unix

package mmap

import "os"

// mapFile loads the file into memory on platforms without the unix mmap
// surface.
func mapFile(f *os.File, size int) ([]byte, bool, error) {
	data, err := readAllAt(f, size)
	return data, false, err
}

// Unmap is a no-op here; regions are ordinary heap memory.
func Unmap(data []byte) error {
	return nil
}
