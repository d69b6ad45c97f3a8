package fitsview

import (
	"io"

	"github.com/simonhull/fitsview/internal/binary"
	"github.com/simonhull/fitsview/internal/hdu"
)

// Walker enumerates HDUs lazily, one per Next call, without mapping the
// file. It suits a quick structural scan of very large files where no
// data access is needed; HDUs it produces carry headers and descriptors
// but no view backing (View returns ErrDetached).
//
// The walk is a pure cursor over byte offsets: persist Offset and Index
// at any point and resume later with ResumeWalker.
type Walker struct {
	w    *hdu.Walker
	path string
}

// NewWalker returns a walker over size bytes of r, positioned at the
// start of the file. path is used in error messages only.
func NewWalker(r io.ReaderAt, size int64, path string) *Walker {
	sr := binary.NewSafeReader(r, size, path)
	return &Walker{w: hdu.NewWalker(sr), path: path}
}

// ResumeWalker returns a walker resumed at a block-aligned header offset
// previously observed via Offset, with index HDUs already emitted.
func ResumeWalker(r io.ReaderAt, size int64, path string, offset int64, index int) *Walker {
	sr := binary.NewSafeReader(r, size, path)
	return &Walker{w: hdu.NewWalkerAt(sr, offset, index), path: path}
}

// Next returns the next HDU, or io.EOF once the file is exhausted. Any
// other error ends the walk; HDUs already returned remain valid.
func (w *Walker) Next() (*HDU, error) {
	u, err := w.w.Next()
	if err != nil {
		return nil, err
	}
	return &HDU{
		Index:   w.w.Index() - 1,
		Header:  u.Header,
		Desc:    *u.Desc,
		Columns: u.Columns,
	}, nil
}

// Offset returns the cursor: the byte offset the walk continues from.
func (w *Walker) Offset() int64 {
	return w.w.Offset()
}

// Index returns the number of HDUs emitted so far.
func (w *Walker) Index() int {
	return w.w.Index()
}
