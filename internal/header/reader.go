// Package header reads FITS header blocks: 2880-byte units of 36 80-byte
// cards each, accumulated until the END card terminates the header.
package header

import (
	"github.com/simonhull/fitsview/internal/binary"
	"github.com/simonhull/fitsview/internal/card"
	"github.com/simonhull/fitsview/internal/types"
)

// Read decodes one complete header starting at the block-aligned offset.
// It returns the header and the absolute offset immediately after the last
// header block read, which is where the data segment (if any) begins.
//
// Cards positioned after the END card inside its block are padding and are
// ignored. Reaching end-of-file before an END card is an
// UnterminatedHeaderError; a byte outside the printable ASCII range or a
// record violating the card grammar is a MalformedCardError.
func Read(sr *binary.SafeReader, offset int64) (*types.Header, int64, error) {
	h := types.NewHeader()
	block := make([]byte, types.BlockSize)

	for !h.Ended() {
		if !sr.Remaining(offset, types.BlockSize) {
			return nil, 0, &types.UnterminatedHeaderError{
				Path:   sr.Path(),
				Offset: sr.Size(),
			}
		}
		if err := sr.ReadAt(block, offset, "header block"); err != nil {
			return nil, 0, err
		}

		if i := nonPrintable(block); i >= 0 {
			return nil, 0, &types.MalformedCardError{
				Path:   sr.Path(),
				Offset: offset + int64(i),
				Reason: "byte outside printable ASCII range in header block",
			}
		}

		for i := 0; i < types.CardsPerBlock; i++ {
			c, err := card.Decode(block[i*types.CardSize : (i+1)*types.CardSize])
			if err != nil {
				mce := err.(*types.MalformedCardError)
				mce.Path = sr.Path()
				mce.Offset = offset + int64(i*types.CardSize)
				return nil, 0, mce
			}
			h.Append(c)
			if h.Ended() {
				break
			}
		}
		offset += types.BlockSize
	}

	return h, offset, nil
}

// nonPrintable returns the index of the first byte outside 0x20..0x7E, or
// -1 when the block is clean. The format restricts headers to printable
// ASCII.
func nonPrintable(block []byte) int {
	for i, b := range block {
		if b < 0x20 || b > 0x7E {
			return i
		}
	}
	return -1
}
