package types

// Header is the ordered card sequence of one HDU, terminated by an END
// card. Duplicate keywords are legal in the format; the header keeps every
// occurrence in encounter order and answers keyword lookups with the last
// occurrence, which is the reading required for structural keywords.
type Header struct {
	cards []Card
	index map[string][]int

	// ended is set once the END card has been appended.
	ended bool
}

// NewHeader returns an empty header.
func NewHeader() *Header {
	return &Header{index: make(map[string][]int)}
}

// Append adds a decoded card. Appending the END card marks the header
// terminated; the caller stops feeding cards at that point.
func (h *Header) Append(c Card) {
	if c.Type == ValueEnd {
		h.ended = true
		return
	}
	h.cards = append(h.cards, c)
	if c.Keyword != "" && c.Type != ValueComment {
		h.index[c.Keyword] = append(h.index[c.Keyword], len(h.cards)-1)
	}
}

// Ended reports whether the END card has been seen.
func (h *Header) Ended() bool {
	return h.ended
}

// Len returns the number of retained cards, the END card excluded.
func (h *Header) Len() int {
	return len(h.cards)
}

// Cards returns the retained cards in encounter order. The caller must not
// modify the returned slice.
func (h *Header) Cards() []Card {
	return h.cards
}

// Get returns the last value card with the given keyword.
func (h *Header) Get(keyword string) (Card, bool) {
	ix := h.index[keyword]
	if len(ix) == 0 {
		return Card{}, false
	}
	return h.cards[ix[len(ix)-1]], true
}

// All returns every value card with the given keyword in encounter order.
func (h *Header) All(keyword string) []Card {
	ix := h.index[keyword]
	if len(ix) == 0 {
		return nil
	}
	out := make([]Card, len(ix))
	for i, j := range ix {
		out[i] = h.cards[j]
	}
	return out
}

// Int returns the last occurrence of keyword as an integer.
func (h *Header) Int(keyword string) (int64, bool) {
	c, ok := h.Get(keyword)
	if !ok || c.Type != ValueInteger {
		return 0, false
	}
	return c.Int, true
}

// Float returns the last occurrence of keyword as a float. Integer cards
// convert, since scale keywords are commonly written without a decimal
// point.
func (h *Header) Float(keyword string) (float64, bool) {
	c, ok := h.Get(keyword)
	if !ok {
		return 0, false
	}
	switch c.Type {
	case ValueFloat:
		return c.Float, true
	case ValueInteger:
		return float64(c.Int), true
	}
	return 0, false
}

// Str returns the last occurrence of keyword as a string, trailing blanks
// stripped.
func (h *Header) Str(keyword string) (string, bool) {
	c, ok := h.Get(keyword)
	if !ok || c.Type != ValueString {
		return "", false
	}
	return c.Str, true
}

// Bool returns the last occurrence of keyword as a logical.
func (h *Header) Bool(keyword string) (bool, bool) {
	c, ok := h.Get(keyword)
	if !ok || c.Type != ValueLogical {
		return false, false
	}
	return c.Bool, true
}

// BlockCount returns the number of 2880-byte blocks the header occupies on
// disk, the END card and block padding included.
func (h *Header) BlockCount() int {
	// +1 accounts for the END card.
	n := len(h.cards) + 1
	return (n + CardsPerBlock - 1) / CardsPerBlock
}
