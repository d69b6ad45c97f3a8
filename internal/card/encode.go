package card

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/simonhull/fitsview/internal/types"
)

// Encode renders a card back to its 80-byte record. Cards that came from
// Decode re-emit their original bytes exactly; cards built programmatically
// are rendered in canonical fixed format (value right-justified through
// column 30, strings left-justified from column 11).
func Encode(c types.Card) [types.CardSize]byte {
	if c.HasRaw() {
		return c.Raw
	}

	var rec [types.CardSize]byte
	for i := range rec {
		rec[i] = ' '
	}
	copy(rec[:8], c.Keyword)

	switch c.Type {
	case types.ValueEnd:
		copy(rec[:8], EndKeyword+"     ")
	case types.ValueComment:
		copy(rec[8:], c.Comment)
	default:
		copy(rec[8:10], "= ")
		body := formatValue(c)
		if c.Comment != "" {
			body += " / " + c.Comment
		}
		copy(rec[10:], body)
	}
	return rec
}

// formatValue renders the value sub-field in fixed format.
func formatValue(c types.Card) string {
	switch c.Type {
	case types.ValueLogical:
		v := "F"
		if c.Bool {
			v = "T"
		}
		return fmt.Sprintf("%20s", v)
	case types.ValueInteger:
		return fmt.Sprintf("%20d", c.Int)
	case types.ValueFloat:
		return fmt.Sprintf("%20s", strings.ToUpper(strconv.FormatFloat(c.Float, 'E', -1, 64)))
	case types.ValueString:
		quoted := "'" + quotePad(c.Str) + "'"
		if len(quoted) < 20 {
			quoted += strings.Repeat(" ", 20-len(quoted))
		}
		return quoted
	default:
		return strings.Repeat(" ", 20)
	}
}

// quotePad doubles embedded quotes and pads short strings to the 8-character
// minimum the fixed format requires.
func quotePad(s string) string {
	s = strings.ReplaceAll(s, "'", "''")
	if len(s) < 8 {
		s += strings.Repeat(" ", 8-len(s))
	}
	return s
}
