package types

import "fmt"

// Every parse failure carries the absolute byte offset at which it was
// detected, so callers can produce diagnostics without re-scanning the
// file.

// MalformedCardError is returned when an 80-byte header record violates
// the fixed-column card grammar.
type MalformedCardError struct {
	Path    string
	Offset  int64 // offset of the offending card
	Keyword string
	Reason  string
}

func (e *MalformedCardError) Error() string {
	if e.Keyword != "" {
		return fmt.Sprintf("%s: malformed card %q at offset %d: %s", e.Path, e.Keyword, e.Offset, e.Reason)
	}
	return fmt.Sprintf("%s: malformed card at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// UnterminatedHeaderError is returned when end-of-file is reached before a
// header's END card.
type UnterminatedHeaderError struct {
	Path   string
	Offset int64 // offset of the block that could not be read
}

func (e *UnterminatedHeaderError) Error() string {
	return fmt.Sprintf("%s: header starting before offset %d has no END card", e.Path, e.Offset)
}

// NotFITSError is returned when the first HDU does not open with a valid
// SIMPLE = T card.
type NotFITSError struct {
	Path   string
	Reason string
}

func (e *NotFITSError) Error() string {
	return fmt.Sprintf("%s: not a FITS file: %s", e.Path, e.Reason)
}

// MissingKeywordError is returned when a required structural keyword is
// absent from a header.
type MissingKeywordError struct {
	Path    string
	Offset  int64 // offset of the header
	Keyword string
}

func (e *MissingKeywordError) Error() string {
	return fmt.Sprintf("%s: header at offset %d: missing required keyword %s", e.Path, e.Offset, e.Keyword)
}

// DuplicateKeywordError is returned when a structural keyword that must be
// unique appears more than once with conflicting values. Identical
// duplicates are accepted (with a warning).
type DuplicateKeywordError struct {
	Path    string
	Offset  int64 // offset of the header
	Keyword string
}

func (e *DuplicateKeywordError) Error() string {
	return fmt.Sprintf("%s: header at offset %d: conflicting duplicate keyword %s", e.Path, e.Offset, e.Keyword)
}

// InvalidElementTypeError is returned when BITPIX is not one of the six
// legal values.
type InvalidElementTypeError struct {
	Path   string
	Offset int64 // offset of the header
	Bitpix int64
}

func (e *InvalidElementTypeError) Error() string {
	return fmt.Sprintf("%s: header at offset %d: invalid BITPIX value %d", e.Path, e.Offset, e.Bitpix)
}

// UnsupportedExtensionError is returned when a typed view is requested for
// an HDU whose extension type is not recognized. Parsing itself does not
// fail for such HDUs; their data segments are measured and skipped.
type UnsupportedExtensionError struct {
	Path      string
	Offset    int64 // offset of the header
	Extension string
}

func (e *UnsupportedExtensionError) Error() string {
	return fmt.Sprintf("%s: HDU at offset %d: unsupported extension type %q", e.Path, e.Offset, e.Extension)
}

// TruncatedFileError is returned when a declared data segment extends past
// the end of the file.
type TruncatedFileError struct {
	Path   string
	Offset int64 // offset where the data segment begins
	Need   int64 // offset the padded segment would end at
	Size   int64 // actual file size
}

func (e *TruncatedFileError) Error() string {
	return fmt.Sprintf("%s: truncated file: data segment at offset %d ends at %d but file is %d bytes", e.Path, e.Offset, e.Need, e.Size)
}

// OutOfBoundsError is returned when a descriptor's data range exceeds the
// mapped region, which signals a truncated or corrupt mapping.
type OutOfBoundsError struct {
	Path   string
	Offset int64
	Length int64
	Size   int64 // mapped region length
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s: data range [%d, %d) out of bounds of %d-byte region", e.Path, e.Offset, e.Offset+e.Length, e.Size)
}

// Warning represents a non-fatal anomaly encountered during parsing, such
// as an identical duplicate structural keyword or an extension type that
// had to be skipped. Warnings are collected on the File.
type Warning struct {
	// Stage where the warning occurred: "header", "descriptor", "table".
	Stage string

	// Warning message.
	Message string

	// File offset where the issue occurred (0 if not applicable).
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
