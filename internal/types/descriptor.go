package types

import "fmt"

// HDUKind classifies a Header/Data Unit.
type HDUKind int

const (
	// KindPrimary is the first HDU of a file (SIMPLE = T).
	KindPrimary HDUKind = iota
	// KindImage is an IMAGE extension.
	KindImage
	// KindTable is an ASCII TABLE extension.
	KindTable
	// KindBinTable is a BINTABLE extension.
	KindBinTable
	// KindUnknown is an extension whose XTENSION value is not recognized.
	// Its data segment can still be measured and skipped, but it carries
	// no element type and no typed view can be built over it.
	KindUnknown
)

func (k HDUKind) String() string {
	switch k {
	case KindPrimary:
		return "PRIMARY"
	case KindImage:
		return "IMAGE"
	case KindTable:
		return "TABLE"
	case KindBinTable:
		return "BINTABLE"
	case KindUnknown:
		return "UNKNOWN"
	default:
		return fmt.Sprintf("hdukind(%d)", int(k))
	}
}

// ElementType is the storage type of one data element. FITS stores all
// multi-byte elements big-endian.
type ElementType int

const (
	// ElementInvalid means the HDU has no defined element type.
	ElementInvalid ElementType = iota
	// ElementUint8 is an unsigned 8-bit integer (BITPIX 8).
	ElementUint8
	// ElementInt16 is a signed big-endian 16-bit integer (BITPIX 16).
	ElementInt16
	// ElementInt32 is a signed big-endian 32-bit integer (BITPIX 32).
	ElementInt32
	// ElementInt64 is a signed big-endian 64-bit integer (BITPIX 64).
	ElementInt64
	// ElementFloat32 is a big-endian IEEE 754 single (BITPIX -32).
	ElementFloat32
	// ElementFloat64 is a big-endian IEEE 754 double (BITPIX -64).
	ElementFloat64
)

// Size returns the element width in bytes, 0 for ElementInvalid.
func (e ElementType) Size() int {
	switch e {
	case ElementUint8:
		return 1
	case ElementInt16:
		return 2
	case ElementInt32, ElementFloat32:
		return 4
	case ElementInt64, ElementFloat64:
		return 8
	}
	return 0
}

func (e ElementType) String() string {
	switch e {
	case ElementUint8:
		return "uint8"
	case ElementInt16:
		return "int16"
	case ElementInt32:
		return "int32"
	case ElementInt64:
		return "int64"
	case ElementFloat32:
		return "float32"
	case ElementFloat64:
		return "float64"
	case ElementInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("elementtype(%d)", int(e))
	}
}

// bitpixElements is the closed set of legal BITPIX values. Any other value
// is an InvalidElementTypeError.
var bitpixElements = map[int64]ElementType{
	8:   ElementUint8,
	16:  ElementInt16,
	32:  ElementInt32,
	64:  ElementInt64,
	-32: ElementFloat32,
	-64: ElementFloat64,
}

// ElementFromBitpix maps a BITPIX value to its element type.
func ElementFromBitpix(bitpix int64) (ElementType, bool) {
	e, ok := bitpixElements[bitpix]
	return e, ok
}

// Scale is the optional affine transform applied logically to raw stored
// values: logical = raw*Mult + Offset. A nil *Scale on a descriptor means
// the identity and signals that no scaling was declared.
type Scale struct {
	Mult   float64 // BSCALE
	Offset float64 // BZERO
}

// Column is the byte range of one table column within a table row. Cell
// values are not decoded; the column only identifies where the bytes live.
type Column struct {
	// Name is the TTYPEn value, trailing blanks stripped, or "COLn" when
	// the header does not name the column.
	Name string
	// Index is the zero-based column position.
	Index int
	// Offset is the byte offset of the column within a row.
	Offset int
	// Width is the total byte width of the column within a row.
	Width int
	// Repeat is the element repeat count from TFORMn.
	Repeat int
	// Code is the TFORMn type code character.
	Code byte
}

// Descriptor is the derived, read-only summary of one HDU: what the data
// segment holds and exactly where its bytes live in the file.
type Descriptor struct {
	// Kind classifies the HDU.
	Kind HDUKind
	// Name is the EXTNAME value, "" when absent.
	Name string
	// Extension is the raw XTENSION value for extensions, "" for primary.
	Extension string

	// Element is the storage element type, ElementInvalid for
	// unrecognized extensions.
	Element ElementType
	// Shape holds the dimension sizes in logical order: the slowest
	// varying axis first, which is the reverse of the NAXISn order the
	// header declares. Empty means no data segment.
	Shape []int

	// HeaderOffset is the absolute offset of the HDU's first header
	// block. Always a BlockSize multiple.
	HeaderOffset int64
	// DataOffset is the absolute offset of the first data byte. Always a
	// BlockSize multiple.
	DataOffset int64
	// DataLength is the exact data segment byte count before padding.
	DataLength int64

	// Scale is the declared affine scaling, nil when the header declares
	// none (or declares the identity).
	Scale *Scale
}

// PaddedDataLength returns the byte count the data segment occupies on
// disk, rounded up to the block boundary.
func (d *Descriptor) PaddedDataLength() int64 {
	if d.DataLength == 0 {
		return 0
	}
	return (d.DataLength + BlockSize - 1) / BlockSize * BlockSize
}

// HasData reports whether the HDU carries a data segment.
func (d *Descriptor) HasData() bool {
	return d.DataLength > 0
}

// Elements returns the total element count, 0 when the shape is empty.
func (d *Descriptor) Elements() int {
	if len(d.Shape) == 0 {
		return 0
	}
	n := 1
	for _, ax := range d.Shape {
		n *= ax
	}
	return n
}
