package fitsview

import "github.com/simonhull/fitsview/internal/types"

// Descriptor is the derived, read-only summary of one HDU: kind, element
// type, logical shape, and the exact byte range of its data segment.
type Descriptor = types.Descriptor

// HDUKind classifies a Header/Data Unit.
type HDUKind = types.HDUKind

// Re-export all HDU kinds.
const (
	KindPrimary  = types.KindPrimary
	KindImage    = types.KindImage
	KindTable    = types.KindTable
	KindBinTable = types.KindBinTable
	KindUnknown  = types.KindUnknown
)

// ElementType is the storage type of one data element.
type ElementType = types.ElementType

// Re-export all element types.
const (
	ElementInvalid = types.ElementInvalid
	ElementUint8   = types.ElementUint8
	ElementInt16   = types.ElementInt16
	ElementInt32   = types.ElementInt32
	ElementInt64   = types.ElementInt64
	ElementFloat32 = types.ElementFloat32
	ElementFloat64 = types.ElementFloat64
)

// Scale is the optional affine transform applied to raw values on read.
type Scale = types.Scale

// Column is the byte range of one table column within a table row.
type Column = types.Column
