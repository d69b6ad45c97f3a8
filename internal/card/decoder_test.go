package card

import (
	"errors"
	"strings"
	"testing"

	"github.com/simonhull/fitsview/internal/types"
)

// rec pads a card image out to the full 80-byte record.
func rec(s string) []byte {
	if len(s) > types.CardSize {
		panic("record too long: " + s)
	}
	return []byte(s + strings.Repeat(" ", types.CardSize-len(s)))
}

func TestDecode_Logical(t *testing.T) {
	tests := []struct {
		name string
		card string
		want bool
	}{
		{"true", "SIMPLE  =                    T / conforming", true},
		{"false", "EXTEND  =                    F", false},
		{"free format", "SIMPLE  = T", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Decode(rec(tt.card))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if c.Type != types.ValueLogical {
				t.Fatalf("expected ValueLogical, got %v", c.Type)
			}
			if c.Bool != tt.want {
				t.Errorf("expected %v, got %v", tt.want, c.Bool)
			}
		})
	}
}

func TestDecode_Integer(t *testing.T) {
	tests := []struct {
		name string
		card string
		want int64
	}{
		{"fixed format", "BITPIX  =                   16", 16},
		{"negative", "BZERO   =               -32768", -32768},
		{"explicit plus", "NAXIS   = +2", 2},
		{"zero", "NAXIS   =                    0", 0},
		{"large", "NAXIS1  =           2147483648", 2147483648},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Decode(rec(tt.card))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if c.Type != types.ValueInteger {
				t.Fatalf("expected ValueInteger, got %v", c.Type)
			}
			if c.Int != tt.want {
				t.Errorf("expected %d, got %d", tt.want, c.Int)
			}
		})
	}
}

func TestDecode_Float(t *testing.T) {
	tests := []struct {
		name string
		card string
		want float64
	}{
		{"plain decimal", "BSCALE  =                  1.5", 1.5},
		{"E exponent", "CRVAL1  =              1.0E+03", 1000.0},
		{"D exponent", "CRVAL2  =             -2.5D-02", -0.025},
		{"leading dot", "CDELT1  =                  .25", 0.25},
		{"trailing dot", "CDELT2  =                   4.", 4.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Decode(rec(tt.card))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if c.Type != types.ValueFloat {
				t.Fatalf("expected ValueFloat, got %v", c.Type)
			}
			if c.Float != tt.want {
				t.Errorf("expected %g, got %g", tt.want, c.Float)
			}
		})
	}
}

func TestDecode_String(t *testing.T) {
	tests := []struct {
		name string
		card string
		want string
	}{
		{"simple", "OBJECT  = 'M31     '", "M31"},
		{"trailing blanks stripped", "TELESCOP= 'HST       '", "HST"},
		{"doubled quote", "OBSERVER= 'O''HARA  '", "O'HARA"},
		{"null string", "INSTRUME= ''", ""},
		{"all blanks keeps one space", "FILTER  = '        '", " "},
		{"with comment", "EXTNAME = 'EVENTS  '           / extension name", "EVENTS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Decode(rec(tt.card))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if c.Type != types.ValueString {
				t.Fatalf("expected ValueString, got %v", c.Type)
			}
			if c.Str != tt.want {
				t.Errorf("expected %q, got %q", tt.want, c.Str)
			}
		})
	}
}

func TestDecode_Comment(t *testing.T) {
	c, err := Decode(rec("BITPIX  =                   16 / bits per data value"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if c.Comment != "bits per data value" {
		t.Errorf("expected comment %q, got %q", "bits per data value", c.Comment)
	}
}

func TestDecode_CommentaryCards(t *testing.T) {
	tests := []struct {
		name    string
		card    string
		keyword string
	}{
		{"COMMENT", "COMMENT   FITS (Flexible Image Transport System)", "COMMENT"},
		{"HISTORY", "HISTORY   flat-fielded 2024-01-15", "HISTORY"},
		{"blank keyword", "          free-text annotation", ""},
		{"COMMENT with equals", "COMMENT = looks like a value but is not", "COMMENT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Decode(rec(tt.card))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if c.Type != types.ValueComment {
				t.Fatalf("expected ValueComment, got %v", c.Type)
			}
			if c.Keyword != tt.keyword {
				t.Errorf("expected keyword %q, got %q", tt.keyword, c.Keyword)
			}
			if c.Comment == "" {
				t.Error("commentary card lost its text")
			}
		})
	}
}

func TestDecode_Undefined(t *testing.T) {
	c, err := Decode(rec("BLANKED =                      / value intentionally absent"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if c.Type != types.ValueUndefined {
		t.Fatalf("expected ValueUndefined, got %v", c.Type)
	}
	if c.Comment != "value intentionally absent" {
		t.Errorf("unexpected comment %q", c.Comment)
	}
}

func TestDecode_End(t *testing.T) {
	c, err := Decode(rec("END"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if c.Type != types.ValueEnd {
		t.Fatalf("expected ValueEnd, got %v", c.Type)
	}
}

func TestDecode_EndWithTrailingText(t *testing.T) {
	_, err := Decode(rec("END     = T"))
	var mce *types.MalformedCardError
	if !errors.As(err, &mce) {
		t.Fatalf("expected MalformedCardError, got %v", err)
	}
}

func TestDecode_Continue(t *testing.T) {
	c, err := Decode(rec("CONTINUE  'and the rest of a long value'"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if c.Type != types.ValueString {
		t.Fatalf("expected ValueString, got %v", c.Type)
	}
	if c.Str != "and the rest of a long value" {
		t.Errorf("unexpected value %q", c.Str)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		card string
	}{
		{"lowercase keyword", "bitpix  =                   16"},
		{"keyword with space inside", "BIT PIX =                   16"},
		{"complex value", "CPIX    = (1.0, 2.0)"},
		{"garbage value", "BITPIX  = sixteen"},
		{"unterminated string", "OBJECT  = 'M31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(rec(tt.card))
			var mce *types.MalformedCardError
			if !errors.As(err, &mce) {
				t.Fatalf("expected MalformedCardError, got %v", err)
			}
			if mce.Reason == "" {
				t.Error("MalformedCardError has empty reason")
			}
		})
	}
}

func TestDecode_WrongLength(t *testing.T) {
	_, err := Decode([]byte("SIMPLE  = T"))
	var mce *types.MalformedCardError
	if !errors.As(err, &mce) {
		t.Fatalf("expected MalformedCardError, got %v", err)
	}
}

func TestEncode_RawPassthrough(t *testing.T) {
	orig := rec("NAXIS1  =                  100 / axis length")
	c, err := Decode(orig)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	out := Encode(c)
	if string(out[:]) != string(orig) {
		t.Errorf("decoded card should re-emit original bytes\n got: %q\nwant: %q", out[:], orig)
	}
}

func TestEncode_Canonical(t *testing.T) {
	tests := []struct {
		name string
		card types.Card
	}{
		{"logical", types.Card{Keyword: "SIMPLE", Type: types.ValueLogical, Bool: true}},
		{"integer", types.Card{Keyword: "BITPIX", Type: types.ValueInteger, Int: -32}},
		{"float", types.Card{Keyword: "BSCALE", Type: types.ValueFloat, Float: 2.5}},
		{"string", types.Card{Keyword: "OBJECT", Type: types.ValueString, Str: "M31"}},
		{"string with quote", types.Card{Keyword: "OBSERVER", Type: types.ValueString, Str: "O'HARA"}},
		{"with comment", types.Card{Keyword: "NAXIS", Type: types.ValueInteger, Int: 2, Comment: "axes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Encode(tt.card)
			if len(out) != types.CardSize {
				t.Fatalf("record is %d bytes", len(out))
			}

			back, err := Decode(out[:])
			if err != nil {
				t.Fatalf("re-decode failed: %v", err)
			}
			if back.Keyword != tt.card.Keyword {
				t.Errorf("keyword changed: %q -> %q", tt.card.Keyword, back.Keyword)
			}
			if back.Type != tt.card.Type {
				t.Errorf("type changed: %v -> %v", tt.card.Type, back.Type)
			}
			if back.Value() != tt.card.Value() {
				t.Errorf("value changed: %v -> %v", tt.card.Value(), back.Value())
			}
		})
	}
}

func TestEncode_End(t *testing.T) {
	out := Encode(types.Card{Keyword: "END", Type: types.ValueEnd})
	if string(out[:3]) != "END" || strings.TrimRight(string(out[:]), " ") != "END" {
		t.Errorf("END card mis-rendered: %q", out[:])
	}
}
