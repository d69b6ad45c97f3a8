package hdu

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/simonhull/fitsview/internal/binary"
	"github.com/simonhull/fitsview/internal/types"
)

// writeHeader lays card images (END appended) into blocks on buf.
func writeHeader(buf *bytes.Buffer, cards ...string) {
	for _, c := range append(cards, "END") {
		buf.WriteString(c)
		buf.WriteString(strings.Repeat(" ", types.CardSize-len(c)))
	}
	for buf.Len()%types.BlockSize != 0 {
		buf.WriteByte(' ')
	}
}

// writeData appends a data segment padded out to the block boundary.
func writeData(buf *bytes.Buffer, data []byte) {
	buf.Write(data)
	for buf.Len()%types.BlockSize != 0 {
		buf.WriteByte(0)
	}
}

func walkerFor(data []byte) *Walker {
	sr := binary.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.fits")
	return NewWalker(sr)
}

func TestWalker_SingleHDU(t *testing.T) {
	buf := &bytes.Buffer{}
	writeHeader(buf,
		"SIMPLE  =                    T",
		"BITPIX  =                    8",
		"NAXIS   =                    1",
		"NAXIS1  =                   10",
	)
	writeData(buf, make([]byte, 10))

	w := walkerFor(buf.Bytes())
	u, err := w.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if u.Desc.Kind != types.KindPrimary {
		t.Errorf("expected KindPrimary, got %v", u.Desc.Kind)
	}
	if u.Desc.DataOffset != types.BlockSize {
		t.Errorf("expected data at %d, got %d", types.BlockSize, u.Desc.DataOffset)
	}

	if _, err := w.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF after last HDU, got %v", err)
	}
	// Exhaustion is sticky.
	if _, err := w.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF again, got %v", err)
	}
}

func TestWalker_MultipleHDUs(t *testing.T) {
	buf := &bytes.Buffer{}
	writeHeader(buf,
		"SIMPLE  =                    T",
		"BITPIX  =                   16",
		"NAXIS   =                    1",
		"NAXIS1  =                    5",
	)
	writeData(buf, make([]byte, 10))
	writeHeader(buf,
		"XTENSION= 'IMAGE   '",
		"BITPIX  =                  -64",
		"NAXIS   =                    1",
		"NAXIS1  =                    3",
		"PCOUNT  =                    0",
		"GCOUNT  =                    1",
		"EXTNAME = 'SCI     '",
	)
	writeData(buf, make([]byte, 24))
	writeHeader(buf,
		"XTENSION= 'IMAGE   '",
		"BITPIX  =                    8",
		"NAXIS   =                    0",
		"PCOUNT  =                    0",
		"GCOUNT  =                    1",
	)

	w := walkerFor(buf.Bytes())

	var units []*Unit
	for {
		u, err := w.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		units = append(units, u)
	}

	if len(units) != 3 {
		t.Fatalf("expected 3 HDUs, got %d", len(units))
	}
	if units[1].Desc.Name != "SCI" {
		t.Errorf("expected second HDU named SCI, got %q", units[1].Desc.Name)
	}
	if units[1].Desc.HeaderOffset != 2*types.BlockSize {
		t.Errorf("expected second header at %d, got %d", 2*types.BlockSize, units[1].Desc.HeaderOffset)
	}
	if units[2].Desc.HasData() {
		t.Error("third HDU should carry no data")
	}
	if w.Index() != 3 {
		t.Errorf("expected index 3, got %d", w.Index())
	}

	// Headers plus padded data segments account for every file byte.
	var total int64
	for _, u := range units {
		total += int64(u.Header.BlockCount())*types.BlockSize + u.Desc.PaddedDataLength()
	}
	if total != int64(buf.Len()) {
		t.Errorf("block bookkeeping: HDUs cover %d bytes, file has %d", total, buf.Len())
	}
	if w.Offset() != int64(buf.Len()) {
		t.Errorf("exhausted cursor at %d, expected file end %d", w.Offset(), buf.Len())
	}
}

func TestWalker_EmptyFile(t *testing.T) {
	w := walkerFor(nil)
	_, err := w.Next()
	var nfe *types.NotFITSError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected NotFITSError, got %v", err)
	}
}

func TestWalker_TruncatedData(t *testing.T) {
	buf := &bytes.Buffer{}
	writeHeader(buf,
		"SIMPLE  =                    T",
		"BITPIX  =                    8",
		"NAXIS   =                    1",
		"NAXIS1  =                 5000", // needs two data blocks
	)
	buf.Write(make([]byte, types.BlockSize)) // only one present

	w := walkerFor(buf.Bytes())
	_, err := w.Next()
	var tfe *types.TruncatedFileError
	if !errors.As(err, &tfe) {
		t.Fatalf("expected TruncatedFileError, got %v", err)
	}
	if tfe.Need != 3*types.BlockSize || tfe.Size != 2*types.BlockSize {
		t.Errorf("unexpected bounds in error: %+v", tfe)
	}
}

func TestWalker_Restart(t *testing.T) {
	buf := &bytes.Buffer{}
	writeHeader(buf,
		"SIMPLE  =                    T",
		"BITPIX  =                    8",
		"NAXIS   =                    1",
		"NAXIS1  =                   10",
	)
	writeData(buf, make([]byte, 10))
	writeHeader(buf,
		"XTENSION= 'IMAGE   '",
		"BITPIX  =                    8",
		"NAXIS   =                    1",
		"NAXIS1  =                    4",
		"PCOUNT  =                    0",
		"GCOUNT  =                    1",
	)
	writeData(buf, make([]byte, 4))
	data := buf.Bytes()

	w := walkerFor(data)
	if _, err := w.Next(); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	offset, index := w.Offset(), w.Index()

	// A fresh walker resumed at the persisted position sees the rest.
	sr := binary.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.fits")
	resumed := NewWalkerAt(sr, offset, index)
	u, err := resumed.Next()
	if err != nil {
		t.Fatalf("resumed Next failed: %v", err)
	}
	if u.Desc.Kind != types.KindImage {
		t.Errorf("expected the image extension, got %v", u.Desc.Kind)
	}
	if _, err := resumed.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}

	// The cursor persisted after the final HDU points at end-of-file; a
	// walker resumed there is exhausted, same as the in-sequence walk.
	sr = binary.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.fits")
	exhausted := NewWalkerAt(sr, resumed.Offset(), resumed.Index())
	if _, err := exhausted.Next(); err != io.EOF {
		t.Fatalf("resume at end-of-file: expected io.EOF, got %v", err)
	}
}

func TestWalker_LaterInvalidElementKeepsEarlierUnits(t *testing.T) {
	buf := &bytes.Buffer{}
	writeHeader(buf,
		"SIMPLE  =                    T",
		"BITPIX  =                    8",
		"NAXIS   =                    1",
		"NAXIS1  =                    4",
	)
	writeData(buf, []byte{10, 20, 30, 40})
	writeHeader(buf,
		"XTENSION= 'IMAGE   '",
		"BITPIX  =                   24", // not a legal element size
		"NAXIS   =                    1",
		"NAXIS1  =                    4",
		"PCOUNT  =                    0",
		"GCOUNT  =                    1",
	)
	data := buf.Bytes()

	sr := binary.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.fits")
	w := NewWalker(sr)

	first, err := w.Next()
	if err != nil {
		t.Fatalf("first Next failed: %v", err)
	}

	_, err = w.Next()
	var iee *types.InvalidElementTypeError
	if !errors.As(err, &iee) {
		t.Fatalf("expected InvalidElementTypeError, got %v", err)
	}
	if iee.Bitpix != 24 {
		t.Errorf("expected bitpix 24 in error, got %d", iee.Bitpix)
	}

	// The unit emitted before the failure stays valid: its descriptor
	// still addresses the right bytes.
	if first.Desc.Element != types.ElementUint8 {
		t.Errorf("first unit element changed: %v", first.Desc.Element)
	}
	if first.Desc.DataOffset != types.BlockSize || first.Desc.DataLength != 4 {
		t.Errorf("first unit layout changed: %+v", first.Desc)
	}
	seg := make([]byte, first.Desc.DataLength)
	if err := sr.ReadAt(seg, first.Desc.DataOffset, "first data segment"); err != nil {
		t.Fatalf("reading first unit data: %v", err)
	}
	if !bytes.Equal(seg, []byte{10, 20, 30, 40}) {
		t.Errorf("unexpected first unit data %v", seg)
	}

	// The failed walk does not continue.
	if _, err := w.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF after terminal error, got %v", err)
	}
}

func TestWalker_OffsetsBlockAligned(t *testing.T) {
	buf := &bytes.Buffer{}
	writeHeader(buf,
		"SIMPLE  =                    T",
		"BITPIX  =                  -32",
		"NAXIS   =                    2",
		"NAXIS1  =                  100",
		"NAXIS2  =                    9",
	)
	writeData(buf, make([]byte, 4*100*9))
	writeHeader(buf,
		"XTENSION= 'IMAGE   '",
		"BITPIX  =                    8",
		"NAXIS   =                    0",
		"PCOUNT  =                    0",
		"GCOUNT  =                    1",
	)

	w := walkerFor(buf.Bytes())
	for {
		u, err := w.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if u.Desc.HeaderOffset%types.BlockSize != 0 {
			t.Errorf("header offset %d not block-aligned", u.Desc.HeaderOffset)
		}
		if u.Desc.DataOffset%types.BlockSize != 0 {
			t.Errorf("data offset %d not block-aligned", u.Desc.DataOffset)
		}
	}
}

func TestWalker_TableColumns(t *testing.T) {
	buf := &bytes.Buffer{}
	writeHeader(buf,
		"SIMPLE  =                    T",
		"BITPIX  =                    8",
		"NAXIS   =                    0",
	)
	writeHeader(buf,
		"XTENSION= 'BINTABLE'",
		"BITPIX  =                    8",
		"NAXIS   =                    2",
		"NAXIS1  =                    6",
		"NAXIS2  =                    2",
		"PCOUNT  =                    0",
		"GCOUNT  =                    1",
		"TFIELDS =                    2",
		"TFORM1  = 'I       '",
		"TTYPE1  = 'ID      '",
		"TFORM2  = 'J       '",
	)
	writeData(buf, make([]byte, 12))

	w := walkerFor(buf.Bytes())
	if _, err := w.Next(); err != nil {
		t.Fatalf("primary Next failed: %v", err)
	}
	u, err := w.Next()
	if err != nil {
		t.Fatalf("table Next failed: %v", err)
	}
	if len(u.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(u.Columns))
	}
	if u.Columns[0].Name != "ID" || u.Columns[1].Name != "COL2" {
		t.Errorf("unexpected column names %q, %q", u.Columns[0].Name, u.Columns[1].Name)
	}
}
