package fitsview

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/fitsview/internal/binary"
	"github.com/simonhull/fitsview/internal/hdu"
	"github.com/simonhull/fitsview/internal/mmap"
)

// File represents an opened FITS file: the ordered sequence of its HDUs
// plus the single read-only byte region they all share.
//
// Opening a file reads and validates every header but never copies data;
// data segments are reached through zero-copy ArrayViews built on demand.
// The region is acquired once in Open and released in Close, so every
// view's lifetime is bounded by the File's:
//
//	file, err := fitsview.Open("image.fits")
//	if err != nil {
//		return err
//	}
//	defer file.Close()
type File struct {
	// Path to the FITS file.
	Path string

	// Size is the file length in bytes.
	Size int64

	// Warnings encountered during parsing (non-fatal issues).
	Warnings []Warning

	// Internal state (unexported)
	hdus   []*HDU
	data   []byte // shared region backing all views
	mapped bool   // region is a real mmap, not a heap copy
	closed bool
}

// HDU is one discovered Header/Data Unit.
type HDU struct {
	// Index is the HDU's position in the file, 0 for the primary.
	Index int

	// Header holds every retained card in encounter order.
	Header *Header

	// Desc summarizes the HDU's kind and data layout.
	Desc Descriptor

	// Columns holds table column byte ranges for TABLE and BINTABLE
	// HDUs, nil otherwise.
	Columns []Column

	file *File // nil for walker-produced HDUs
}

// Open opens a FITS file, maps it read-only, and discovers all its HDUs.
//
// The file contents are memory-mapped where the platform allows it, so
// arbitrarily large files open without loading data into process memory;
// WithoutMmap forces a heap copy instead. Headers are fully validated up
// front; an unrecognized extension type does not fail the open, it only
// yields an HDU without a typed view (and a warning).
//
// Always call Close when done; views must not be used afterwards.
//
// Example:
//
//	file, err := fitsview.Open("image.fits")
//	if err != nil {
//		return err
//	}
//	defer file.Close()
//	view, err := file.Primary().View()
func Open(path string, opts ...Option) (*File, error) {
	// Apply options
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat file: %w", err)
	}
	size := stat.Size()

	// Acquire the shared region. The descriptor is not needed once the
	// region exists, on either path.
	var (
		data   []byte
		mapped bool
	)
	if options.noMmap {
		data, err = mmap.ReadAll(f, size)
	} else {
		data, mapped, err = mmap.Map(f, size)
	}
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("map file: %w", err)
	}

	file := &File{
		Path:   path,
		Size:   size,
		data:   data,
		mapped: mapped,
	}

	// Release the region on every failing exit path below.
	release := func() {
		if mapped {
			_ = mmap.Unmap(data)
		}
	}

	sr := binary.NewSafeReader(bytes.NewReader(data), size, path)
	w := hdu.NewWalker(sr)
	for {
		u, err := w.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			release()
			return nil, err
		}
		file.Warnings = append(file.Warnings, u.Warnings...)
		file.hdus = append(file.hdus, &HDU{
			Index:   len(file.hdus),
			Header:  u.Header,
			Desc:    *u.Desc,
			Columns: u.Columns,
			file:    file,
		})
	}

	// Check strict parsing mode
	if options.strictParsing && len(file.Warnings) > 0 {
		release()
		return nil, &StrictModeError{Path: path, Warning: file.Warnings[0]}
	}

	return file, nil
}

// Close releases the underlying region. Every ArrayView built from this
// file becomes invalid; Close is idempotent.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	data := f.data
	f.data = nil
	if f.mapped {
		return mmap.Unmap(data)
	}
	return nil
}

// NumHDUs returns the number of HDUs in the file.
func (f *File) NumHDUs() int {
	return len(f.hdus)
}

// HDU returns the i-th HDU, or nil when i is out of range.
func (f *File) HDU(i int) *HDU {
	if i < 0 || i >= len(f.hdus) {
		return nil
	}
	return f.hdus[i]
}

// Primary returns the primary HDU.
func (f *File) Primary() *HDU {
	return f.HDU(0)
}

// HDUs returns all HDUs in file order. The caller must not modify the
// returned slice.
func (f *File) HDUs() []*HDU {
	return f.hdus
}

// HDUByName returns the first extension whose EXTNAME matches name, or
// nil when there is none.
func (f *File) HDUByName(name string) *HDU {
	for _, h := range f.hdus {
		if h.Desc.Name == name {
			return h
		}
	}
	return nil
}

// Name returns the HDU's EXTNAME, "" when the header declares none.
func (h *HDU) Name() string {
	return h.Desc.Name
}

// View constructs a zero-copy typed array view over the HDU's data
// segment. Construction never copies data; it fails only when the HDU has
// no defined element type (UnsupportedExtensionError), when the declared
// data range exceeds the mapped region (OutOfBoundsError), or when the
// file is already closed.
//
// Views stay valid until File.Close and are safe for concurrent reads.
func (h *HDU) View() (*ArrayView, error) {
	if h.file == nil {
		return nil, ErrDetached
	}
	if h.file.closed {
		return nil, ErrClosed
	}
	if h.Desc.Element == ElementInvalid {
		return nil, &UnsupportedExtensionError{
			Path:      h.file.Path,
			Offset:    h.Desc.HeaderOffset,
			Extension: h.Desc.Extension,
		}
	}
	end := h.Desc.DataOffset + h.Desc.DataLength
	if end > int64(len(h.file.data)) {
		return nil, &OutOfBoundsError{
			Path:   h.file.Path,
			Offset: h.Desc.DataOffset,
			Length: h.Desc.DataLength,
			Size:   int64(len(h.file.data)),
		}
	}
	return newView(h.file.data[h.Desc.DataOffset:end:end], h.Desc), nil
}

// RowBytes returns the raw bytes of one table row, a zero-copy slice into
// the shared region. It applies to TABLE and BINTABLE HDUs; column byte
// ranges within the row come from Columns.
func (h *HDU) RowBytes(row int) ([]byte, error) {
	if h.file == nil {
		return nil, ErrDetached
	}
	if h.file.closed {
		return nil, ErrClosed
	}
	if h.Desc.Kind != KindTable && h.Desc.Kind != KindBinTable || len(h.Desc.Shape) != 2 {
		return nil, fmt.Errorf("%s: HDU %d is not a table", h.file.Path, h.Index)
	}
	rows, width := h.Desc.Shape[0], h.Desc.Shape[1]
	if row < 0 || row >= rows {
		return nil, fmt.Errorf("%s: row %d out of range (table has %d rows)", h.file.Path, row, rows)
	}
	start := h.Desc.DataOffset + int64(row)*int64(width)
	end := start + int64(width)
	if end > int64(len(h.file.data)) {
		return nil, &OutOfBoundsError{
			Path:   h.file.Path,
			Offset: start,
			Length: int64(width),
			Size:   int64(len(h.file.data)),
		}
	}
	return h.file.data[start:end:end], nil
}

// OpenContext opens a file with context support for cancellation.
//
// This is a thin wrapper around Open that checks the context before
// starting; parsing itself is a bounded, non-blocking pass over the
// mapped region.
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenMany opens multiple FITS files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths.
//
// If any file fails to open, all successfully opened files are closed
// and an error is returned.
func OpenMany(ctx context.Context, paths ...string) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			file, err := Open(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, file := range results {
			if file != nil {
				file.Close()
			}
		}
		return nil, err
	}

	return results, nil
}
