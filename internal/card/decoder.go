// Package card decodes and encodes single 80-byte FITS header records.
//
// The grammar follows Appendix A of the FITS Standard v4.0: keyword in
// columns 1-8, a "= " value indicator in columns 9-10 for value cards, and
// a value field holding a quoted string, a T/F logical, a FORTRAN-style
// number, or nothing, optionally followed by a "/"-introduced comment.
// Decoding is pure; no I/O happens here.
package card

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/simonhull/fitsview/internal/types"
)

// Keyword of the header-terminating card.
const EndKeyword = "END"

// Value field grammar, one sub-pattern per value type. The string pattern
// relies on [ -~] containing the quote character, so a doubled '' escape is
// swallowed by the same alternative that matches the outer quotes.
const (
	strPattern   = `(?:'[ -~]*')+`
	boolPattern  = `[TF]`
	intPattern   = `[+-]?[0-9]+`
	floatPattern = `[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[ED][+-]?[0-9]+)?`
)

var valueRe = regexp.MustCompile(
	`^ *(?:(` + strPattern + `)|(` + boolPattern + `)|(` + intPattern + `)|(` + floatPattern + `))? *(?:/(.*))?$`,
)

// Decode parses exactly one 80-byte record into a Card. The returned error
// is a *types.MalformedCardError with Path and Offset left for the caller
// to fill in.
func Decode(rec []byte) (types.Card, error) {
	if len(rec) != types.CardSize {
		return types.Card{}, &types.MalformedCardError{
			Reason: fmt.Sprintf("record is %d bytes, want %d", len(rec), types.CardSize),
		}
	}

	keyword := strings.TrimRight(string(rec[:8]), " ")
	if !validKeyword(keyword) {
		return types.Card{}, &types.MalformedCardError{
			Keyword: keyword,
			Reason:  "invalid character in keyword",
		}
	}

	var c types.Card
	c.Keyword = keyword
	c.SetRaw(rec)

	rest := string(rec[8:])

	if keyword == EndKeyword {
		if strings.TrimRight(rest, " ") != "" {
			return types.Card{}, &types.MalformedCardError{
				Keyword: keyword,
				Reason:  "END card carries trailing text",
			}
		}
		c.Type = types.ValueEnd
		return c, nil
	}

	// Value cards announce themselves with "= " in columns 9-10. CONTINUE
	// cards carry a value without the indicator; COMMENT, HISTORY, and
	// blank-keyword cards never carry one even when the indicator bytes
	// appear by coincidence.
	isComment := keyword == "COMMENT" || keyword == "HISTORY" || keyword == ""
	if keyword != "CONTINUE" && (isComment || rest[:2] != "= ") {
		c.Type = types.ValueComment
		c.Comment = strings.TrimRight(rest, " ")
		return c, nil
	}

	// The value field starts at column 11 for CONTINUE cards too.
	if err := parseValue(rest[2:], &c); err != nil {
		return types.Card{}, err
	}
	return c, nil
}

// parseValue fills the value and comment fields of c from the value field
// bytes (everything after the "= " indicator).
func parseValue(field string, c *types.Card) error {
	m := valueRe.FindStringSubmatch(field)
	if m == nil {
		if strings.HasPrefix(strings.TrimLeft(field, " "), "(") {
			return &types.MalformedCardError{Keyword: c.Keyword, Reason: "complex values are not supported"}
		}
		return &types.MalformedCardError{Keyword: c.Keyword, Reason: "invalid value syntax"}
	}

	str, boolean, integer, float, comment := m[1], m[2], m[3], m[4], m[5]

	switch {
	case str != "":
		c.Type = types.ValueString
		c.Str = unquote(str)
	case boolean != "":
		c.Type = types.ValueLogical
		c.Bool = boolean == "T"
	case integer != "":
		n, err := strconv.ParseInt(integer, 10, 64)
		if err != nil {
			return &types.MalformedCardError{Keyword: c.Keyword, Reason: "integer value out of range"}
		}
		c.Type = types.ValueInteger
		c.Int = n
	case float != "":
		// FORTRAN D exponents parse as E.
		f, err := strconv.ParseFloat(strings.Replace(float, "D", "E", 1), 64)
		if err != nil {
			return &types.MalformedCardError{Keyword: c.Keyword, Reason: "unparseable floating-point value"}
		}
		c.Type = types.ValueFloat
		c.Float = f
	default:
		c.Type = types.ValueUndefined
	}

	c.Comment = strings.TrimSpace(comment)
	return nil
}

// unquote resolves a quote-delimited string token: outer quotes removed,
// doubled quotes collapsed, trailing pad blanks stripped. A string of
// nothing but blanks keeps a single significant space so it stays distinct
// from the null string ''.
func unquote(token string) string {
	inner := strings.ReplaceAll(token[1:len(token)-1], "''", "'")
	stripped := strings.TrimRight(inner, " ")
	if stripped == "" && inner != "" {
		return " "
	}
	return stripped
}

// validKeyword reports whether kw is made of the legal keyword characters:
// uppercase letters, digits, hyphen, and underscore. The empty keyword is
// legal (blank-keyword comment card).
func validKeyword(kw string) bool {
	for i := 0; i < len(kw); i++ {
		b := kw[i]
		switch {
		case b >= 'A' && b <= 'Z':
		case b >= '0' && b <= '9':
		case b == '-' || b == '_':
		default:
			return false
		}
	}
	return true
}
