package binary

import (
	"encoding/binary"
	"math"

	"github.com/simonhull/fitsview/internal/types"
)

// Element decoders over raw big-endian bytes. Callers guarantee b holds at
// least the element width; views establish that once at construction.

// Int16BE decodes a signed big-endian 16-bit integer.
func Int16BE(b []byte) int16 {
	return int16(binary.BigEndian.Uint16(b))
}

// Int32BE decodes a signed big-endian 32-bit integer.
func Int32BE(b []byte) int32 {
	return int32(binary.BigEndian.Uint32(b))
}

// Int64BE decodes a signed big-endian 64-bit integer.
func Int64BE(b []byte) int64 {
	return int64(binary.BigEndian.Uint64(b))
}

// Float32BE decodes a big-endian IEEE 754 single.
func Float32BE(b []byte) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(b))
}

// Float64BE decodes a big-endian IEEE 754 double.
func Float64BE(b []byte) float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(b))
}

// DecodeElement decodes one element of type e starting at b[0] and returns
// it as its native Go type: uint8, int16, int32, int64, float32, or
// float64. Returns nil for ElementInvalid.
func DecodeElement(b []byte, e types.ElementType) any {
	switch e {
	case types.ElementUint8:
		return b[0]
	case types.ElementInt16:
		return Int16BE(b)
	case types.ElementInt32:
		return Int32BE(b)
	case types.ElementInt64:
		return Int64BE(b)
	case types.ElementFloat32:
		return Float32BE(b)
	case types.ElementFloat64:
		return Float64BE(b)
	}
	return nil
}

// DecodeInt decodes one element as int64. Float elements truncate toward
// zero.
func DecodeInt(b []byte, e types.ElementType) int64 {
	switch e {
	case types.ElementUint8:
		return int64(b[0])
	case types.ElementInt16:
		return int64(Int16BE(b))
	case types.ElementInt32:
		return int64(Int32BE(b))
	case types.ElementInt64:
		return Int64BE(b)
	case types.ElementFloat32:
		return int64(Float32BE(b))
	case types.ElementFloat64:
		return int64(Float64BE(b))
	}
	return 0
}

// DecodeFloat decodes one element as float64.
func DecodeFloat(b []byte, e types.ElementType) float64 {
	switch e {
	case types.ElementUint8:
		return float64(b[0])
	case types.ElementInt16:
		return float64(Int16BE(b))
	case types.ElementInt32:
		return float64(Int32BE(b))
	case types.ElementInt64:
		return float64(Int64BE(b))
	case types.ElementFloat32:
		return float64(Float32BE(b))
	case types.ElementFloat64:
		return Float64BE(b)
	}
	return 0
}
