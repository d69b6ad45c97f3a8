package fitsview

import (
	"errors"
	"fmt"

	"github.com/simonhull/fitsview/internal/types"
)

// Error types live in internal/types so the internal packages can share
// them; they are re-exported here as aliases to keep the public API at the
// package root. Every parse error carries the byte offset at which it was
// detected.

// MalformedCardError reports an 80-byte header record that violates the
// fixed-column card grammar.
type MalformedCardError = types.MalformedCardError

// UnterminatedHeaderError reports end-of-file before a header's END card.
type UnterminatedHeaderError = types.UnterminatedHeaderError

// NotFITSError reports a file whose first HDU lacks a valid SIMPLE = T.
type NotFITSError = types.NotFITSError

// MissingKeywordError reports an absent required structural keyword.
type MissingKeywordError = types.MissingKeywordError

// DuplicateKeywordError reports a structural keyword that appears more
// than once with conflicting values.
type DuplicateKeywordError = types.DuplicateKeywordError

// InvalidElementTypeError reports a BITPIX value outside the legal set.
type InvalidElementTypeError = types.InvalidElementTypeError

// UnsupportedExtensionError reports a typed-view request against an HDU
// whose extension type is not recognized.
type UnsupportedExtensionError = types.UnsupportedExtensionError

// TruncatedFileError reports a data segment extending past end-of-file.
type TruncatedFileError = types.TruncatedFileError

// OutOfBoundsError reports a descriptor whose data range exceeds the
// mapped region.
type OutOfBoundsError = types.OutOfBoundsError

// Warning is a non-fatal anomaly collected in File.Warnings.
type Warning = types.Warning

// StrictModeError is returned by Open under WithStrictParsing when the
// file parsed with warnings. It carries the first promoted warning, which
// includes the offset of the anomaly.
type StrictModeError struct {
	Path    string
	Warning Warning
}

func (e *StrictModeError) Error() string {
	return fmt.Sprintf("%s: strict parsing: %s", e.Path, e.Warning)
}

// ErrClosed is returned when a view is requested from a closed File.
var ErrClosed = errors.New("fitsview: file is closed")

// ErrDetached is returned when a view is requested from an HDU produced
// by a standalone Walker, which has no mapped region behind it.
var ErrDetached = errors.New("fitsview: hdu is not backed by an open file")
