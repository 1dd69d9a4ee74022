package encoding

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/animbake/format"
	"github.com/arloliu/animbake/section"
)

// decodedItem is one item read back from a chunk by the test decoder.
type decodedItem struct {
	Flag         section.ItemFlag
	PartID       int
	Channel      format.ChannelID
	Tick         int
	Duration     int
	Value        [3]int64
	Delta        [3]int64
	Catmull      [12]int64
	BezierTimes  [3][2]byte
	BezierValues [3][2]int64
}

type chunkReader struct {
	t    *testing.T
	data []byte
	pos  int
}

func (r *chunkReader) readByte() byte {
	r.t.Helper()
	require.Less(r.t, r.pos, len(r.data), "unexpected end of chunk")
	b := r.data[r.pos]
	r.pos++

	return b
}

func (r *chunkReader) readVarint() int64 {
	r.t.Helper()
	u, n := binary.Uvarint(r.data[r.pos:])
	require.Positive(r.t, n, "malformed varint at offset %d", r.pos)
	r.pos += n
	z := uint32(u) //nolint:gosec

	return int64(int32(z>>1) ^ -int32(z&1)) //nolint:gosec
}

// decodeChunk decodes one chunk following the layout written by StreamEncoder.
func decodeChunk(t *testing.T, chunk []byte) (section.ChunkHeader, []decodedItem) {
	t.Helper()

	header, err := section.ParseChunkHeader(chunk)
	require.NoError(t, err)

	r := &chunkReader{t: t, data: chunk, pos: section.ChunkHeaderSize}
	ctx := NewContext()

	var items []decodedItem
	for r.pos < len(chunk) {
		var it decodedItem
		it.Flag = section.ItemFlag(r.readByte())

		if it.Flag.IsNewContext() {
			partID, channel := section.SplitCompositeID(r.readByte())
			ctx.PartID = partID
			ctx.Channel = int(channel)
			ctx.Tick = 0
		}
		it.PartID = ctx.PartID
		it.Channel = format.ChannelID(ctx.Channel) //nolint:gosec

		it.Tick = ctx.Tick + int(r.readVarint())
		ctx.Tick = it.Tick
		it.Duration = int(r.readVarint())

		if it.Flag.IsInherit() {
			it.Value = ctx.Value
		} else {
			for ax := 0; ax < 3; ax++ {
				it.Value[ax] = r.readVarint()
			}
		}
		if !it.Flag.IsZeroDelta() {
			for ax := 0; ax < 3; ax++ {
				it.Delta[ax] = r.readVarint()
			}
		}
		for ax := 0; ax < 3; ax++ {
			ctx.Value[ax] = it.Value[ax] + it.Delta[ax]
		}

		switch it.Flag.Interpolation() {
		case format.InterpCatmullRom:
			for i := range it.Catmull {
				it.Catmull[i] = r.readVarint()
			}
		case format.InterpBezier:
			for ax := 0; ax < 3; ax++ {
				it.BezierTimes[ax] = [2]byte{r.readByte(), r.readByte()}
				it.BezierValues[ax] = [2]int64{r.readVarint(), r.readVarint()}
			}
		case format.InterpLinear:
		}

		items = append(items, it)
	}

	return header, items
}

// decodeChunks decodes every chunk and returns the headers and the items in stream order.
func decodeChunks(t *testing.T, chunks [][]byte) ([]section.ChunkHeader, [][]decodedItem) {
	t.Helper()

	headers := make([]section.ChunkHeader, len(chunks))
	items := make([][]decodedItem, len(chunks))
	for i, chunk := range chunks {
		headers[i], items[i] = decodeChunk(t, chunk)
	}

	return headers, items
}
