package section

import (
	"github.com/arloliu/animbake/endian"
	"github.com/arloliu/animbake/errs"
)

// ChunkHeaderSize is the size of the header at the start of every chunk.
const ChunkHeaderSize = 4

// ChunkHeader represents the fixed-size header at the start of every encoded chunk.
//
// Layout (big-endian):
//   - byte 0-1: Duration, animation length in ticks (int16)
//   - byte 2-3: Count, number of items in the whole stream (int16)
//
// Count is the same in every chunk of a stream; it is not the number of
// items in the chunk. Decoders rely on this, so it must stay global.
type ChunkHeader struct {
	Duration int16
	Count    int16
}

// NewChunkHeader creates a header for a stream of count items lasting duration ticks.
//
// Both values are truncated to 16 bits.
func NewChunkHeader(duration, count int) ChunkHeader {
	return ChunkHeader{
		Duration: int16(duration), //nolint:gosec
		Count:    int16(count),    //nolint:gosec
	}
}

// Append appends the serialized header to dst and returns the extended slice.
func (h ChunkHeader) Append(dst []byte) []byte {
	engine := endian.GetBigEndianEngine()
	dst = engine.AppendUint16(dst, uint16(h.Duration)) //nolint:gosec
	dst = engine.AppendUint16(dst, uint16(h.Count))    //nolint:gosec

	return dst
}

// Bytes serializes the header into a new byte slice.
func (h ChunkHeader) Bytes() []byte {
	return h.Append(make([]byte, 0, ChunkHeaderSize))
}

// Parse parses the header from the start of a chunk.
//
// Parameters:
//   - data: Chunk bytes (at least ChunkHeaderSize long)
//
// Returns:
//   - error: ErrInvalidChunk if data is shorter than the header
func (h *ChunkHeader) Parse(data []byte) error {
	if len(data) < ChunkHeaderSize {
		return errs.ErrInvalidChunk
	}

	engine := endian.GetBigEndianEngine()
	h.Duration = int16(engine.Uint16(data[0:2])) //nolint:gosec
	h.Count = int16(engine.Uint16(data[2:4]))    //nolint:gosec

	return nil
}

// ParseChunkHeader parses a ChunkHeader from the start of a chunk.
func ParseChunkHeader(data []byte) (ChunkHeader, error) {
	h := ChunkHeader{}
	if err := h.Parse(data); err != nil {
		return ChunkHeader{}, err
	}

	return h, nil
}
