// Package mmap acquires a read-only byte region over an open file,
// preferring a shared memory mapping and falling back to reading the file
// into memory where mapping is unavailable.
package mmap

import (
	"errors"
	"io"
	"os"
)

// ErrTooLarge is returned when a file cannot be indexed as a []byte on
// this architecture.
var ErrTooLarge = errors.New("mmap: file too large to map")

// Map returns a read-only region covering the first size bytes of f, and
// whether the region is a real mapping. When mapped is true the region
// must be released with Unmap; the file descriptor itself is no longer
// needed either way.
func Map(f *os.File, size int64) (data []byte, mapped bool, err error) {
	if size == 0 {
		return []byte{}, false, nil
	}
	if size < 0 || size > int64(int(^uint(0)>>1)) {
		return nil, false, ErrTooLarge
	}
	return mapFile(f, int(size))
}

// ReadAll loads the first size bytes of f into memory without mapping,
// for callers that opt out of mmap.
func ReadAll(f *os.File, size int64) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	if size < 0 || size > int64(int(^uint(0)>>1)) {
		return nil, ErrTooLarge
	}
	return readAllAt(f, int(size))
}

// readAllAt loads the whole file into memory; the portable fallback when
// no mapping can be established.
func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}
