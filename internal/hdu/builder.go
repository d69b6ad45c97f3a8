// Package hdu validates structural header keywords, derives data-segment
// layout descriptors, and walks a file's sequence of Header/Data Units.
package hdu

import (
	"fmt"

	"github.com/simonhull/fitsview/internal/types"
)

// builder carries the context shared by the structural keyword checks.
type builder struct {
	h     *types.Header
	path  string
	off   int64 // header offset, reported in errors
	warns []types.Warning
}

// Build validates the structural keywords of a header and derives its
// descriptor. headerOffset is where the header begins, dataOffset where
// its data segment would begin (both block-aligned); primary selects the
// primary-HDU keyword set (SIMPLE) over the extension set (XTENSION).
//
// An unrecognized XTENSION value is not an error: the descriptor comes
// back with no element type or shape, but with a data length computed from
// the declared keywords so the walker can still skip the segment.
func Build(h *types.Header, path string, headerOffset, dataOffset int64, primary bool) (*types.Descriptor, []types.Warning, error) {
	b := &builder{h: h, path: path, off: headerOffset}
	d := &types.Descriptor{
		HeaderOffset: headerOffset,
		DataOffset:   dataOffset,
	}

	if primary {
		simple, ok := h.Bool("SIMPLE")
		if !ok {
			return nil, nil, &types.NotFITSError{Path: path, Reason: "first card is not SIMPLE = T"}
		}
		if !simple {
			return nil, nil, &types.NotFITSError{Path: path, Reason: "SIMPLE is F"}
		}
		d.Kind = types.KindPrimary
	} else {
		xt, err := b.requireStr("XTENSION")
		if err != nil {
			return nil, nil, err
		}
		d.Extension = xt
		switch xt {
		case "IMAGE":
			d.Kind = types.KindImage
		case "TABLE":
			d.Kind = types.KindTable
		case "BINTABLE":
			d.Kind = types.KindBinTable
		default:
			d.Kind = types.KindUnknown
			b.warn(fmt.Sprintf("extension type %q not recognized; data segment will be skipped", xt))
		}
	}

	bitpix, err := b.requireInt("BITPIX")
	if err != nil {
		return nil, nil, err
	}
	naxis, err := b.requireInt("NAXIS")
	if err != nil {
		return nil, nil, err
	}
	if naxis < 0 {
		return nil, nil, &types.MalformedCardError{
			Path: path, Offset: headerOffset, Keyword: "NAXIS", Reason: "negative axis count",
		}
	}

	// Axis sizes in on-disk order: NAXIS1 is the fastest-varying axis.
	axes := make([]int, naxis)
	for i := range axes {
		kw := fmt.Sprintf("NAXIS%d", i+1)
		n, err := b.requireInt(kw)
		if err != nil {
			return nil, nil, err
		}
		if n < 0 {
			return nil, nil, &types.MalformedCardError{
				Path: path, Offset: headerOffset, Keyword: kw, Reason: "negative axis size",
			}
		}
		axes[i] = int(n)
	}

	pcount, err := b.optionalInt("PCOUNT", 0)
	if err != nil {
		return nil, nil, err
	}
	gcount, err := b.optionalInt("GCOUNT", 1)
	if err != nil {
		return nil, nil, err
	}

	element, legal := types.ElementFromBitpix(bitpix)
	switch d.Kind {
	case types.KindPrimary, types.KindImage:
		if !legal {
			return nil, nil, &types.InvalidElementTypeError{Path: path, Offset: headerOffset, Bitpix: bitpix}
		}
		d.Element = element
		d.Shape = reversed(axes)
	case types.KindTable, types.KindBinTable:
		if bitpix != 8 {
			return nil, nil, &types.InvalidElementTypeError{Path: path, Offset: headerOffset, Bitpix: bitpix}
		}
		d.Element = types.ElementUint8
		d.Shape = reversed(axes)
	case types.KindUnknown:
		// Element and shape stay undefined; only the byte length below
		// matters so the segment can be skipped.
	}

	d.DataLength = dataLength(bitpix, axes, pcount, gcount)

	if name, ok := h.Str("EXTNAME"); ok {
		if err := b.unique("EXTNAME"); err != nil {
			return nil, nil, err
		}
		d.Name = name
	}

	scale, err := b.scale()
	if err != nil {
		return nil, nil, err
	}
	d.Scale = scale

	return d, b.warns, nil
}

// dataLength is the exact (unpadded) byte count of the data segment:
// |BITPIX|/8 * GCOUNT * (PCOUNT + product of axis sizes). A zero axis
// count or any zero axis size means no data segment at all.
func dataLength(bitpix int64, axes []int, pcount, gcount int64) int64 {
	if len(axes) == 0 {
		return 0
	}
	prod := int64(1)
	for _, ax := range axes {
		if ax == 0 {
			return 0
		}
		prod *= int64(ax)
	}
	elemBytes := bitpix / 8
	if elemBytes < 0 {
		elemBytes = -elemBytes
	}
	return elemBytes * gcount * (pcount + prod)
}

// scale reads the optional BSCALE/BZERO pair. The identity transform is
// elided to nil so the descriptor signals "no scaling".
func (b *builder) scale() (*types.Scale, error) {
	mult, haveMult, err := b.optionalFloat("BSCALE")
	if err != nil {
		return nil, err
	}
	offset, haveOffset, err := b.optionalFloat("BZERO")
	if err != nil {
		return nil, err
	}
	if !haveMult && !haveOffset {
		return nil, nil
	}
	if !haveMult {
		mult = 1
	}
	if mult == 1 && offset == 0 {
		return nil, nil
	}
	return &types.Scale{Mult: mult, Offset: offset}, nil
}

// unique verifies that every occurrence of a structural keyword carries
// the same value. Identical duplicates are tolerated with a warning;
// conflicting ones are an error.
func (b *builder) unique(keyword string) error {
	all := b.h.All(keyword)
	if len(all) < 2 {
		return nil
	}
	first := all[0].Value()
	for _, c := range all[1:] {
		if c.Value() != first {
			return &types.DuplicateKeywordError{Path: b.path, Offset: b.off, Keyword: keyword}
		}
	}
	b.warn(fmt.Sprintf("keyword %s appears %d times with identical values", keyword, len(all)))
	return nil
}

func (b *builder) requireInt(keyword string) (int64, error) {
	if err := b.unique(keyword); err != nil {
		return 0, err
	}
	n, ok := b.h.Int(keyword)
	if !ok {
		return 0, &types.MissingKeywordError{Path: b.path, Offset: b.off, Keyword: keyword}
	}
	return n, nil
}

func (b *builder) requireStr(keyword string) (string, error) {
	if err := b.unique(keyword); err != nil {
		return "", err
	}
	s, ok := b.h.Str(keyword)
	if !ok {
		return "", &types.MissingKeywordError{Path: b.path, Offset: b.off, Keyword: keyword}
	}
	return s, nil
}

func (b *builder) optionalInt(keyword string, def int64) (int64, error) {
	if err := b.unique(keyword); err != nil {
		return 0, err
	}
	n, ok := b.h.Int(keyword)
	if !ok {
		return def, nil
	}
	return n, nil
}

func (b *builder) optionalFloat(keyword string) (float64, bool, error) {
	if err := b.unique(keyword); err != nil {
		return 0, false, err
	}
	f, ok := b.h.Float(keyword)
	return f, ok, nil
}

func (b *builder) warn(msg string) {
	b.warns = append(b.warns, types.Warning{Stage: "descriptor", Message: msg, Offset: b.off})
}

// reversed returns the axis sizes in logical order: the header declares
// the fastest-varying axis first, callers index slowest-first.
func reversed(axes []int) []int {
	out := make([]int, len(axes))
	for i, ax := range axes {
		out[len(axes)-1-i] = ax
	}
	return out
}
