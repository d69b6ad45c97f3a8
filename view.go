package fitsview

import (
	"fmt"
	"iter"
	"slices"

	"github.com/simonhull/fitsview/internal/binary"
)

// ArrayView is a read-only, zero-copy, multi-dimensional view over one
// HDU's data segment. It references the file's shared region without
// owning it: the view must not be used after the File is closed.
//
// Elements are decoded big-endian on every read; nothing is materialized.
// When the HDU declares an affine scale, scaled accessors return
// raw*mult + offset as float64 regardless of the storage type. Concurrent
// reads from any number of goroutines are safe since the region is never
// mutated.
type ArrayView struct {
	data    []byte
	desc    Descriptor
	strides []int // element strides, row-major over the logical shape
}

// newView builds a view over exactly the data segment bytes.
func newView(data []byte, desc Descriptor) *ArrayView {
	strides := make([]int, len(desc.Shape))
	stride := 1
	for i := len(desc.Shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= desc.Shape[i]
	}
	return &ArrayView{data: data, desc: desc, strides: strides}
}

// Shape returns the dimension sizes in logical order (slowest axis
// first).
func (v *ArrayView) Shape() []int {
	return slices.Clone(v.desc.Shape)
}

// Element returns the storage element type.
func (v *ArrayView) Element() ElementType {
	return v.desc.Element
}

// Strides returns the element stride of each axis.
func (v *ArrayView) Strides() []int {
	return slices.Clone(v.strides)
}

// Len returns the total element count.
func (v *ArrayView) Len() int {
	return v.desc.Elements()
}

// Scaled reports whether an affine scale applies on read.
func (v *ArrayView) Scaled() bool {
	return v.desc.Scale != nil
}

// At returns the element at the given multi-index. Without a scale the
// value keeps its native type (uint8, int16, int32, int64, float32, or
// float64); with one it is the scaled float64. The index must match the
// view's rank and range exactly or At panics, mirroring slice indexing;
// a view over an HDU with no data segment has no addressable elements and
// any access panics.
func (v *ArrayView) At(index ...int) any {
	if v.desc.Scale != nil {
		return v.FloatAt(index...)
	}
	return binary.DecodeElement(v.data[v.byteOffset(index):], v.desc.Element)
}

// IntAt returns the raw (unscaled) element at the given multi-index as
// int64. Float elements truncate toward zero.
func (v *ArrayView) IntAt(index ...int) int64 {
	return binary.DecodeInt(v.data[v.byteOffset(index):], v.desc.Element)
}

// FloatAt returns the element at the given multi-index as float64, the
// scale applied when one is declared.
func (v *ArrayView) FloatAt(index ...int) float64 {
	f := binary.DecodeFloat(v.data[v.byteOffset(index):], v.desc.Element)
	if s := v.desc.Scale; s != nil {
		f = f*s.Mult + s.Offset
	}
	return f
}

// Values yields every element as a (possibly scaled) float64 in row-major
// order.
func (v *ArrayView) Values() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		size := v.desc.Element.Size()
		s := v.desc.Scale
		for off := 0; off < len(v.data); off += size {
			f := binary.DecodeFloat(v.data[off:], v.desc.Element)
			if s != nil {
				f = f*s.Mult + s.Offset
			}
			if !yield(f) {
				return
			}
		}
	}
}

// Raw returns the exact data segment bytes, excluding block padding. The
// slice aliases the shared region: read-only, invalid after File.Close.
func (v *ArrayView) Raw() []byte {
	return v.data
}

// byteOffset maps a multi-index to the element's byte offset within the
// segment. Panics on rank or range violations.
func (v *ArrayView) byteOffset(index []int) int {
	if len(v.data) == 0 {
		panic("fitsview: element access on a view with no data segment")
	}
	if len(index) != len(v.desc.Shape) {
		panic(fmt.Sprintf("fitsview: index rank %d does not match view rank %d", len(index), len(v.desc.Shape)))
	}
	off := 0
	for i, ix := range index {
		if ix < 0 || ix >= v.desc.Shape[i] {
			panic(fmt.Sprintf("fitsview: index %d out of range for axis %d (size %d)", ix, i, v.desc.Shape[i]))
		}
		off += ix * v.strides[i]
	}
	return off * v.desc.Element.Size()
}
