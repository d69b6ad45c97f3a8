package types

import (
	"fmt"
	"strconv"
	"strings"
)

// FITS layout constants. Headers and data segments are both aligned to
// BlockSize; a header block holds exactly CardsPerBlock cards.
const (
	BlockSize     = 2880
	CardSize      = 80
	CardsPerBlock = BlockSize / CardSize
)

// ValueType identifies the value carried by a header card.
type ValueType int

const (
	// ValueUndefined marks a value card whose value field is blank.
	ValueUndefined ValueType = iota // undefined
	// ValueLogical marks a T/F logical value.
	ValueLogical // logical
	// ValueInteger marks a decimal integer value.
	ValueInteger // integer
	// ValueFloat marks a fixed or exponential floating-point value.
	ValueFloat // float
	// ValueString marks a quote-delimited character string value.
	ValueString // string
	// ValueComment marks a comment-only card (COMMENT, HISTORY, or a
	// blank keyword) that carries no value at all.
	ValueComment // comment
	// ValueEnd marks the END card that terminates a header.
	ValueEnd // end
)

func (t ValueType) String() string {
	switch t {
	case ValueUndefined:
		return "undefined"
	case ValueLogical:
		return "logical"
	case ValueInteger:
		return "integer"
	case ValueFloat:
		return "float"
	case ValueString:
		return "string"
	case ValueComment:
		return "comment"
	case ValueEnd:
		return "end"
	default:
		return fmt.Sprintf("valuetype(%d)", int(t))
	}
}

// Card is one decoded 80-byte header record. Cards are immutable once
// decoded; exactly one of the value fields is meaningful, selected by Type.
type Card struct {
	// Keyword is the card keyword, trailing blanks stripped. Empty for
	// blank-keyword comment cards.
	Keyword string

	// Type selects which value field below is meaningful.
	Type ValueType

	// Bool holds the value for ValueLogical cards.
	Bool bool
	// Int holds the value for ValueInteger cards.
	Int int64
	// Float holds the value for ValueFloat cards.
	Float float64
	// Str holds the value for ValueString cards, quote escapes resolved
	// and trailing blanks stripped.
	Str string

	// Comment is the trailing comment after the value separator, or the
	// whole card body for comment-only cards.
	Comment string

	// Raw preserves the exact bytes the card was decoded from, so a
	// decoded card re-encodes byte-identically. Zero for cards built
	// programmatically.
	Raw [CardSize]byte

	hasRaw bool
}

// SetRaw records the original encoding of the card.
func (c *Card) SetRaw(b []byte) {
	copy(c.Raw[:], b)
	c.hasRaw = true
}

// HasRaw reports whether the card retains its original byte encoding.
func (c *Card) HasRaw() bool {
	return c.hasRaw
}

// Value returns the card value as an untyped Go value: bool, int64,
// float64, string, or nil for undefined, comment, and END cards.
func (c *Card) Value() any {
	switch c.Type {
	case ValueLogical:
		return c.Bool
	case ValueInteger:
		return c.Int
	case ValueFloat:
		return c.Float
	case ValueString:
		return c.Str
	default:
		return nil
	}
}

// ValueString renders the card value the way it would appear in a header,
// for diagnostics and dump tools.
func (c *Card) ValueString() string {
	switch c.Type {
	case ValueLogical:
		if c.Bool {
			return "T"
		}
		return "F"
	case ValueInteger:
		return strconv.FormatInt(c.Int, 10)
	case ValueFloat:
		return strconv.FormatFloat(c.Float, 'G', -1, 64)
	case ValueString:
		return "'" + strings.ReplaceAll(c.Str, "'", "''") + "'"
	default:
		return ""
	}
}
