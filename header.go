package fitsview

import "github.com/simonhull/fitsview/internal/types"

// Card and Header are aliases to internal/types so internal packages and
// the public API share one definition.

// Card is one decoded 80-byte header record.
type Card = types.Card

// Header is the ordered card sequence of one HDU.
type Header = types.Header

// ValueType identifies the value carried by a header card.
type ValueType = types.ValueType

// Re-export all card value types.
const (
	ValueUndefined = types.ValueUndefined
	ValueLogical   = types.ValueLogical
	ValueInteger   = types.ValueInteger
	ValueFloat     = types.ValueFloat
	ValueString    = types.ValueString
	ValueComment   = types.ValueComment
	ValueEnd       = types.ValueEnd
)

// FITS layout constants.
const (
	// BlockSize is the fixed alignment unit for headers and data.
	BlockSize = types.BlockSize
	// CardSize is the fixed width of one header record.
	CardSize = types.CardSize
	// CardsPerBlock is the card count of one header block.
	CardsPerBlock = types.CardsPerBlock
)
