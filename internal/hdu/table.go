package hdu

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/simonhull/fitsview/internal/types"
)

// Table column byte-range identification. Only where each column's bytes
// live within a row is derived here; cell values are never decoded.

// binFormRe matches a binary-table TFORM: optional repeat count, type
// code, ignored trailing characters.
var binFormRe = regexp.MustCompile(`^([0-9]*)([LXBIJKAEDCMPQ]).*$`)

// asciiFormRe matches an ASCII-table TFORM: type code and field width,
// with an optional fraction part.
var asciiFormRe = regexp.MustCompile(`^([AIFED])([0-9]+)(?:\.[0-9]+)?$`)

// binCodeBytes is the per-element byte width of each binary-table type
// code. X (bit arrays) is handled separately since its width rounds up to
// whole bytes.
var binCodeBytes = map[byte]int{
	'L': 1, 'B': 1, 'A': 1,
	'I': 2,
	'J': 4, 'E': 4,
	'K': 8, 'D': 8, 'C': 8, 'P': 8,
	'M': 16, 'Q': 16,
}

// Columns derives the column byte ranges of a TABLE or BINTABLE HDU from
// TFIELDS, TFORMn, TBCOLn, and TTYPEn. A malformed TFORM degrades to a
// warning and no column list rather than failing the whole HDU.
func Columns(h *types.Header, d *types.Descriptor, path string) ([]types.Column, []types.Warning, error) {
	if d.Kind != types.KindTable && d.Kind != types.KindBinTable {
		return nil, nil, nil
	}

	b := &builder{h: h, path: path, off: d.HeaderOffset}
	tfields, err := b.requireInt("TFIELDS")
	if err != nil {
		return nil, b.warns, err
	}

	cols := make([]types.Column, 0, tfields)
	offset := 0
	for i := 0; i < int(tfields); i++ {
		form, err := b.requireStr(fmt.Sprintf("TFORM%d", i+1))
		if err != nil {
			return nil, b.warns, err
		}

		col := types.Column{Index: i}
		if name, ok := h.Str(fmt.Sprintf("TTYPE%d", i+1)); ok {
			col.Name = name
		} else {
			col.Name = fmt.Sprintf("COL%d", i+1)
		}

		if d.Kind == types.KindBinTable {
			m := binFormRe.FindStringSubmatch(form)
			if m == nil {
				b.tableWarn(fmt.Sprintf("TFORM%d: invalid format %q", i+1, form))
				return nil, b.warns, nil
			}
			repeat := 1
			if m[1] != "" {
				repeat, _ = strconv.Atoi(m[1])
			}
			code := m[2][0]
			col.Code = code
			col.Repeat = repeat
			col.Offset = offset
			if code == 'X' {
				// Bit arrays occupy whole bytes.
				col.Width = (repeat + 7) / 8
			} else {
				col.Width = repeat * binCodeBytes[code]
			}
			offset += col.Width
		} else {
			m := asciiFormRe.FindStringSubmatch(form)
			if m == nil {
				b.tableWarn(fmt.Sprintf("TFORM%d: invalid format %q", i+1, form))
				return nil, b.warns, nil
			}
			tbcol, err := b.requireInt(fmt.Sprintf("TBCOL%d", i+1))
			if err != nil {
				return nil, b.warns, err
			}
			col.Code = m[1][0]
			col.Repeat = 1
			col.Width, _ = strconv.Atoi(m[2])
			col.Offset = int(tbcol) - 1 // TBCOL is 1-based
		}
		cols = append(cols, col)
	}

	// NAXIS1 is the row byte width; columns must fit inside it.
	if len(d.Shape) > 0 {
		rowWidth := d.Shape[len(d.Shape)-1]
		for _, c := range cols {
			if c.Offset+c.Width > rowWidth {
				b.tableWarn(fmt.Sprintf("column %q exceeds row width %d", c.Name, rowWidth))
			}
		}
	}

	return cols, b.warns, nil
}

func (b *builder) tableWarn(msg string) {
	b.warns = append(b.warns, types.Warning{Stage: "table", Message: msg, Offset: b.off})
}
