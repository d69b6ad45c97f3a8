package hdu

import (
	"io"

	"github.com/simonhull/fitsview/internal/binary"
	"github.com/simonhull/fitsview/internal/header"
	"github.com/simonhull/fitsview/internal/types"
)

// Unit is one discovered Header/Data Unit: the accumulated header, its
// derived descriptor, table column ranges when applicable, and any
// non-fatal anomalies noticed along the way.
type Unit struct {
	Header   *types.Header
	Desc     *types.Descriptor
	Columns  []types.Column
	Warnings []types.Warning
}

// walkState is the walker's position in the header/data alternation.
type walkState int

const (
	stateHeader walkState = iota // cursor at the start of a header
	stateData                    // cursor before an unskipped data segment
	stateDone                    // end of file reached
)

// Walker discovers HDUs sequentially. It is a pull-based cursor over the
// byte offsets of the file: each Next call reads one header, derives one
// descriptor, and arranges to skip the padded data segment on the call
// after. The walk is restartable: persist Offset and Index and resume with
// NewWalkerAt.
type Walker struct {
	sr     *binary.SafeReader
	offset int64
	next   int64 // end of the pending data segment
	index  int
	state  walkState
}

// NewWalker returns a walker positioned at the start of the file.
func NewWalker(sr *binary.SafeReader) *Walker {
	return &Walker{sr: sr}
}

// NewWalkerAt returns a walker resumed at a previously observed
// block-aligned header offset. index is the number of HDUs already
// emitted; it must be nonzero unless offset is zero, since only the first
// HDU is validated against the primary keyword set.
func NewWalkerAt(sr *binary.SafeReader, offset int64, index int) *Walker {
	return &Walker{sr: sr, offset: offset, index: index}
}

// Offset returns the cursor: the offset of the next header to be read, or
// of the pending data segment end before it is skipped.
func (w *Walker) Offset() int64 {
	if w.state == stateData {
		return w.next
	}
	return w.offset
}

// Index returns the number of HDUs emitted so far.
func (w *Walker) Index() int {
	return w.index
}

// Next emits the next HDU, or io.EOF once the file is exhausted. Any other
// error terminates the walk; units already emitted remain valid.
func (w *Walker) Next() (*Unit, error) {
	switch w.state {
	case stateDone:
		return nil, io.EOF
	case stateData:
		w.offset = w.next
		w.state = stateHeader
	}

	// A cursor at end-of-file is exhaustion, whether reached in sequence
	// or resumed from a persisted offset. Only an empty file with no HDU
	// emitted is an error.
	if w.offset >= w.sr.Size() {
		w.state = stateDone
		if w.index == 0 {
			return nil, &types.NotFITSError{Path: w.sr.Path(), Reason: "empty file"}
		}
		return nil, io.EOF
	}

	hdr, dataOffset, err := header.Read(w.sr, w.offset)
	if err != nil {
		w.state = stateDone
		return nil, err
	}

	desc, warns, err := Build(hdr, w.sr.Path(), w.offset, dataOffset, w.index == 0)
	if err != nil {
		w.state = stateDone
		return nil, err
	}

	cols, colWarns, err := Columns(hdr, desc, w.sr.Path())
	if err != nil {
		w.state = stateDone
		return nil, err
	}
	warns = append(warns, colWarns...)

	// The segment occupies its padded length on disk; running past the
	// end of the file means the file was cut mid-data.
	end := dataOffset + desc.PaddedDataLength()
	if end > w.sr.Size() {
		w.state = stateDone
		return nil, &types.TruncatedFileError{
			Path:   w.sr.Path(),
			Offset: dataOffset,
			Need:   end,
			Size:   w.sr.Size(),
		}
	}

	w.next = end
	w.state = stateData
	w.index++

	return &Unit{Header: hdr, Desc: desc, Columns: cols, Warnings: warns}, nil
}
