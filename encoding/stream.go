package encoding

import (
	"cmp"
	"encoding/base64"
	"math"
	"slices"

	"github.com/arloliu/animbake/curve"
	"github.com/arloliu/animbake/format"
	"github.com/arloliu/animbake/internal/options"
	"github.com/arloliu/animbake/internal/pool"
	"github.com/arloliu/animbake/section"
)

// Fixed scales of the interpolation payloads.
const (
	catmullScale     = 100
	bezierValueScale = 10000
	bezierTimeScale  = 255
)

// StreamItem is one segment of one part channel, the unit of global ordering.
type StreamItem struct {
	PartID  int
	Channel format.ChannelID
	Tick    int
	Segment curve.Segment
}

// NewStreamItems wraps the segments of one part channel as stream items keyed by their start tick.
func NewStreamItems(partID int, channel format.ChannelID, segs []curve.Segment) []StreamItem {
	items := make([]StreamItem, len(segs))
	for i, seg := range segs {
		items[i] = StreamItem{PartID: partID, Channel: channel, Tick: seg.Tick, Segment: seg}
	}

	return items
}

// SortStreamItems orders items by tick, then part id, then channel id.
//
// The sort is stable, so items with equal keys keep their input order.
func SortStreamItems(items []StreamItem) {
	slices.SortStableFunc(items, func(a, b StreamItem) int {
		if c := cmp.Compare(a.Tick, b.Tick); c != 0 {
			return c
		}
		if c := cmp.Compare(a.PartID, b.PartID); c != 0 {
			return c
		}

		return cmp.Compare(a.Channel, b.Channel)
	})
}

// StreamEncoder packs stream items into size-bounded chunks.
//
// Every chunk starts with a section.ChunkHeader followed by items:
//
//	[flags: 1 byte]
//	[composite id: 1 byte]        only with the new-context flag
//	[varint tick delta]
//	[varint duration]
//	[varint value x, y, z]        only without the inherit flag
//	[varint delta x, y, z]        only without the zero-delta flag
//	[interpolation payload]
//
// A StreamEncoder holds only configuration; each Encode call owns its own
// Context and buffers, so one encoder may serve concurrent calls.
type StreamEncoder struct {
	cfg *StreamEncoderConfig
}

// NewStreamEncoder creates a stream encoder.
//
// Parameters:
//   - opts: Optional configuration (WithTicks, WithPrecision, WithChunkSize)
//
// Returns:
//   - *StreamEncoder: The encoder
//   - error: An error if an option is invalid
func NewStreamEncoder(opts ...StreamEncoderOption) (*StreamEncoder, error) {
	cfg := NewStreamEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &StreamEncoder{cfg: cfg}, nil
}

// Config returns the encoder configuration.
func (e *StreamEncoder) Config() *StreamEncoderConfig {
	return e.cfg
}

// Encode encodes a stream and returns its chunks as standard base64 strings.
//
// See EncodeRaw for the chunking rules.
func (e *StreamEncoder) Encode(items []StreamItem, duration int) []string {
	raw := e.EncodeRaw(items, duration)
	chunks := make([]string, len(raw))
	for i, chunk := range raw {
		chunks[i] = base64.StdEncoding.EncodeToString(chunk)
	}

	return chunks
}

// EncodeRaw encodes a stream into binary chunks.
//
// Items are sorted by (tick, part id, channel id) on a copy of the input.
// Each chunk header stores duration and the item count of the whole stream.
// An item that would push the current chunk past the byte budget starts a
// new chunk instead and is encoded against a reset context, so every chunk
// decodes on its own. The first item of a chunk is always admitted, even
// when it alone exceeds the budget.
//
// An empty stream yields a single header-only chunk.
//
// Parameters:
//   - items: Stream items of any number of parts and channels
//   - duration: Animation length in ticks
//
// Returns:
//   - [][]byte: Chunks in emission order, each owned by the caller
func (e *StreamEncoder) EncodeRaw(items []StreamItem, duration int) [][]byte {
	sorted := slices.Clone(items)
	SortStreamItems(sorted)

	header := section.NewChunkHeader(duration, len(sorted)).Bytes()

	buf := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(buf)
	buf.Grow(e.cfg.chunkSize)
	buf.MustWrite(header)

	var chunks [][]byte
	flush := func() {
		chunks = append(chunks, slices.Clone(buf.Bytes()))
		buf.Reset()
		buf.MustWrite(header)
	}

	ctx := NewContext()
	inChunk := 0
	scratch := make([]byte, 0, 64)

	for i := range sorted {
		var next Context
		scratch, next = e.EncodeItem(scratch[:0], ctx, sorted[i])

		if inChunk > 0 && buf.Len()+len(scratch) > e.cfg.chunkSize {
			flush()
			ctx = NewContext()
			inChunk = 0
			scratch, next = e.EncodeItem(scratch[:0], ctx, sorted[i])
		}

		buf.MustWrite(scratch)
		ctx = next
		inChunk++
	}

	chunks = append(chunks, slices.Clone(buf.Bytes()))

	return chunks
}

// EncodeItem appends the encoding of one item to dst against ctx.
//
// It returns the extended slice and the context that follows the item. ctx
// itself is not modified. The following context always carries
// value + delta as its reconstructed value, whether or not value and delta
// were written.
//
// Parameters:
//   - dst: Destination buffer
//   - ctx: Running context before this item
//   - item: Item to encode
//
// Returns:
//   - []byte: dst with the item appended
//   - Context: Running context after this item
func (e *StreamEncoder) EncodeItem(dst []byte, ctx Context, item StreamItem) ([]byte, Context) {
	seg := &item.Segment
	value := e.QuantizeVec(seg.Value)
	delta := e.QuantizeVec(seg.Delta)
	channel := int(item.Channel)

	newContext := !ctx.Matches(item.PartID, channel)
	inherit := !newContext && ctx.Value == value
	zeroDelta := absSum(delta) == 0

	flag := section.NewItemFlag(newContext, inherit, zeroDelta, seg.Interp)
	dst = append(dst, byte(flag))

	if newContext {
		dst = append(dst, section.CompositeID(item.PartID, item.Channel))
		ctx.PartID = item.PartID
		ctx.Channel = channel
		ctx.Tick = 0
	}

	dst = AppendVarint(dst, int64(item.Tick-ctx.Tick))
	ctx.Tick = item.Tick
	dst = AppendVarint(dst, int64(seg.Duration))

	if !inherit {
		for _, v := range value {
			dst = AppendVarint(dst, v)
		}
	}
	if !zeroDelta {
		for _, d := range delta {
			dst = AppendVarint(dst, d)
		}
	}

	for ax := 0; ax < 3; ax++ {
		ctx.Value[ax] = value[ax] + delta[ax]
	}

	switch flag.Interpolation() {
	case format.InterpCatmullRom:
		for _, c := range seg.Catmull {
			dst = AppendVarint(dst, int64(c*catmullScale))
		}
	case format.InterpBezier:
		dst = e.appendBezier(dst, seg)
	case format.InterpLinear:
	}

	return dst, ctx
}

func (e *StreamEncoder) appendBezier(dst []byte, seg *curve.Segment) []byte {
	dur := float64(seg.Duration)
	if dur == 0 {
		dur = 1
	}

	for _, h := range seg.Bezier {
		dst = append(dst, e.handleTimeByte(h.LeftTime, dur), e.handleTimeByte(h.RightTime, dur))
		dst = AppendVarint(dst, int64(h.LeftValue*bezierValueScale))
		dst = AppendVarint(dst, int64(h.RightValue*bezierValueScale))
	}

	return dst
}

// handleTimeByte normalizes a handle time offset (seconds) against the
// segment duration (ticks) and scales it to a byte.
func (e *StreamEncoder) handleTimeByte(seconds, durationTicks float64) byte {
	norm := math.Abs(seconds*float64(e.cfg.ticks)) / durationTicks
	scaled := max(0, min(bezierTimeScale, norm*bezierTimeScale))

	return byte(scaled)
}

// Quantize converts a float to the fixed-point integer round(x * precision),
// rounding halves to even.
func (e *StreamEncoder) Quantize(x float64) int64 {
	return int64(math.RoundToEven(x * float64(e.cfg.precision)))
}

// QuantizeVec quantizes each axis of v.
func (e *StreamEncoder) QuantizeVec(v curve.Vec3) [3]int64 {
	return [3]int64{e.Quantize(v[0]), e.Quantize(v[1]), e.Quantize(v[2])}
}

func absSum(v [3]int64) int64 {
	var sum int64
	for _, x := range v {
		if x < 0 {
			x = -x
		}
		sum += x
	}

	return sum
}
