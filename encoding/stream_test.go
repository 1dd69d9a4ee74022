package encoding

import (
	"encoding/base64"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/animbake/curve"
	"github.com/arloliu/animbake/errs"
	"github.com/arloliu/animbake/format"
	"github.com/arloliu/animbake/section"
)

func newTestEncoder(t *testing.T, opts ...StreamEncoderOption) *StreamEncoder {
	t.Helper()

	enc, err := NewStreamEncoder(opts...)
	require.NoError(t, err)

	return enc
}

func linearSegment(tick, duration int, value, delta curve.Vec3) curve.Segment {
	return curve.Segment{Tick: tick, Duration: duration, Value: value, Delta: delta, Interp: format.InterpLinear}
}

func TestNewStreamEncoder_Options(t *testing.T) {
	enc := newTestEncoder(t)
	require.Equal(t, DefaultTicks, enc.Config().Ticks())
	require.Equal(t, DefaultPrecision, enc.Config().Precision())
	require.Equal(t, DefaultChunkSize, enc.Config().ChunkSize())

	enc = newTestEncoder(t, WithTicks(30), WithPrecision(10), WithChunkSize(64))
	require.Equal(t, 30, enc.Config().Ticks())
	require.Equal(t, 10, enc.Config().Precision())
	require.Equal(t, 64, enc.Config().ChunkSize())

	_, err := NewStreamEncoder(WithChunkSize(0))
	require.ErrorIs(t, err, errs.ErrInvalidChunkSize)

	_, err = NewStreamEncoder(WithPrecision(-1))
	require.ErrorIs(t, err, errs.ErrInvalidPrecision)

	_, err = NewStreamEncoder(WithTicks(0))
	require.ErrorIs(t, err, errs.ErrInvalidTicks)
}

func TestStreamEncoder_Quantize(t *testing.T) {
	enc := newTestEncoder(t)

	require.Equal(t, int64(1000), enc.Quantize(1))
	require.Equal(t, int64(-1500), enc.Quantize(-1.5))
	require.Equal(t, int64(1001), enc.Quantize(1.001))
	require.Equal(t, int64(1000), enc.Quantize(1.0004))
	require.Equal(t, [3]int64{1000, -2000, 3}, enc.QuantizeVec(curve.Vec3{1, -2, 0.003}))

	halves := newTestEncoder(t, WithPrecision(2))
	require.Equal(t, int64(0), halves.Quantize(0.25))
	require.Equal(t, int64(2), halves.Quantize(0.75))
	require.Equal(t, int64(2), halves.Quantize(1.25))
	require.Equal(t, int64(-2), halves.Quantize(-0.75))
}

func TestStreamEncoder_WorkedExample(t *testing.T) {
	baker := curve.NewBaker(20)
	segs := baker.BakeChannel([]curve.Keyframe{
		{Time: 0, Interp: format.InterpLinear, Value: curve.Vec3{0, 0, 0}},
		{Time: 1, Interp: format.InterpLinear, Value: curve.Vec3{1, 0, 0}},
	}, format.ChannelNamePosition)
	require.Len(t, segs, 2)

	first := segs[0]
	require.Equal(t, 0, first.Tick)
	require.Equal(t, 20, first.Duration)
	require.Equal(t, curve.Vec3{0, 0, 0}, first.Value)
	require.Equal(t, curve.Vec3{1, 0, 0}, first.Delta)

	enc := newTestEncoder(t)
	chunks := enc.EncodeRaw([]StreamItem{{PartID: 1, Channel: format.ChannelPosition, Tick: first.Tick, Segment: first}}, 20)
	require.Len(t, chunks, 1)

	want := []byte{
		0x00, 0x14, 0x00, 0x01, // duration 20, count 1
		0x01,                   // new-context only: the sentinel value (0,0,0) is never inherited
		0x09,                   // part 1, channel 1
		0x00,                   // tick delta 0
		0x28,                   // duration 20
		0x00, 0x00, 0x00,       // value (0,0,0)
		0xD0, 0x0F, 0x00, 0x00, // delta (1000,0,0)
	}
	require.Equal(t, want, chunks[0])

	encoded := enc.Encode([]StreamItem{{PartID: 1, Channel: format.ChannelPosition, Tick: first.Tick, Segment: first}}, 20)
	require.Equal(t, []string{base64.StdEncoding.EncodeToString(want)}, encoded)
}

func TestStreamEncoder_EncodeItem_DoesNotMutateContext(t *testing.T) {
	enc := newTestEncoder(t)
	ctx := NewContext()

	item := StreamItem{PartID: 3, Channel: format.ChannelScale, Tick: 7, Segment: linearSegment(7, 3, curve.Vec3{1, 1, 1}, curve.Vec3{0.5, 0, 0})}
	_, next := enc.EncodeItem(nil, ctx, item)

	require.Equal(t, NewContext(), ctx)
	require.Equal(t, 3, next.PartID)
	require.Equal(t, int(format.ChannelScale), next.Channel)
	require.Equal(t, 7, next.Tick)
	require.Equal(t, [3]int64{1500, 1000, 1000}, next.Value)
}

func TestStreamEncoder_FlagCombinations(t *testing.T) {
	interps := []format.Interpolation{format.InterpLinear, format.InterpCatmullRom, format.InterpBezier}
	enc := newTestEncoder(t, WithChunkSize(1<<16))

	for _, interp := range interps {
		for _, inherit := range []bool{false, true} {
			for _, zeroDelta := range []bool{false, true} {
				name := interp.String()
				if inherit {
					name += "/inherit"
				}
				if zeroDelta {
					name += "/zero-delta"
				}

				t.Run(name, func(t *testing.T) {
					first := linearSegment(0, 5, curve.Vec3{1, -2, 3}, curve.Vec3{0.25, 0, -1})
					first.Interp = interp

					value := curve.Vec3{1.25, -2, 2}
					if !inherit {
						value = curve.Vec3{4, 5, -6}
					}
					delta := curve.Vec3{-0.5, 1.75, 0.002}
					if zeroDelta {
						delta = curve.Vec3{}
					}
					second := linearSegment(5, 8, value, delta)
					second.Interp = interp
					second.Catmull = [12]float64{1.239, -0.555, 2, 0, 0.019, -3.5, 7, 8, 9, -10, 11.25, -12.5}
					second.Bezier = [3]curve.BezierHandles{
						{LeftTime: -0.1, LeftValue: 0.5, RightTime: 0.1, RightValue: -0.25},
						{LeftTime: 0, LeftValue: 0, RightTime: 1, RightValue: 2},
						{LeftTime: -0.05, LeftValue: -1, RightTime: 0.2, RightValue: 0.0001},
					}

					items := []StreamItem{
						{PartID: 4, Channel: format.ChannelRotation, Tick: 0, Segment: first},
						{PartID: 4, Channel: format.ChannelRotation, Tick: 5, Segment: second},
					}
					chunks := enc.EncodeRaw(items, 13)
					require.Len(t, chunks, 1)

					_, decoded := decodeChunk(t, chunks[0])
					require.Len(t, decoded, 2)

					head := decoded[0]
					require.True(t, head.Flag.IsNewContext())
					require.False(t, head.Flag.IsInherit())
					require.False(t, head.Flag.IsZeroDelta())
					require.Equal(t, interp, head.Flag.Interpolation())

					got := decoded[1]
					require.False(t, got.Flag.IsNewContext())
					require.Equal(t, inherit, got.Flag.IsInherit())
					require.Equal(t, zeroDelta, got.Flag.IsZeroDelta())
					require.Equal(t, interp, got.Flag.Interpolation())
					require.Equal(t, 4, got.PartID)
					require.Equal(t, format.ChannelRotation, got.Channel)
					require.Equal(t, 5, got.Tick)
					require.Equal(t, 8, got.Duration)
					require.Equal(t, enc.QuantizeVec(value), got.Value)
					require.Equal(t, enc.QuantizeVec(delta), got.Delta)

					switch interp {
					case format.InterpCatmullRom:
						require.Equal(t, [12]int64{123, -55, 200, 0, 1, -350, 700, 800, 900, -1000, 1125, -1250}, got.Catmull)
					case format.InterpBezier:
						// 0.1s at 20 ticks/s over 8 ticks: 2/8*255 = 63.75
						require.Equal(t, [3][2]byte{{63, 63}, {0, 255}, {31, 127}}, got.BezierTimes)
						require.Equal(t, [3][2]int64{{5000, -2500}, {0, 20000}, {-10000, 1}}, got.BezierValues)
					case format.InterpLinear:
						require.Len(t, chunks[0], section.ChunkHeaderSize+decodedLen(enc, items))
					}
				})
			}
		}
	}
}

// decodedLen returns the encoded size of items without the chunk header.
func decodedLen(enc *StreamEncoder, items []StreamItem) int {
	ctx := NewContext()
	n := 0
	for _, item := range items {
		var buf []byte
		buf, ctx = enc.EncodeItem(nil, ctx, item)
		n += len(buf)
	}

	return n
}

func TestStreamEncoder_InheritTolerance(t *testing.T) {
	enc := newTestEncoder(t)
	first := linearSegment(0, 2, curve.Vec3{1, 2, 3}, curve.Vec3{})

	tests := []struct {
		name    string
		value   curve.Vec3
		inherit bool
	}{
		{"exact", curve.Vec3{1, 2, 3}, true},
		{"below one unit", curve.Vec3{1.0004, 2, 3}, true},
		{"one unit above", curve.Vec3{1.001, 2, 3}, false},
		{"one unit below", curve.Vec3{2, 1.999, 3}, false},
		{"last axis", curve.Vec3{1, 2, 3.001}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext()
			_, ctx = enc.EncodeItem(nil, ctx, StreamItem{PartID: 1, Channel: format.ChannelPosition, Segment: first})

			buf, _ := enc.EncodeItem(nil, ctx, StreamItem{PartID: 1, Channel: format.ChannelPosition, Tick: 2, Segment: linearSegment(2, 2, tt.value, curve.Vec3{})})
			require.Equal(t, tt.inherit, section.ItemFlag(buf[0]).IsInherit())
		})
	}

	t.Run("sentinel value is not inherited", func(t *testing.T) {
		buf, _ := enc.EncodeItem(nil, NewContext(), StreamItem{PartID: 1, Channel: format.ChannelPosition, Segment: linearSegment(0, 2, curve.Vec3{}, curve.Vec3{})})
		flag := section.ItemFlag(buf[0])
		require.True(t, flag.IsNewContext())
		require.False(t, flag.IsInherit())
		require.True(t, flag.IsZeroDelta())
	})

	t.Run("context switch never inherits", func(t *testing.T) {
		ctx := NewContext()
		_, ctx = enc.EncodeItem(nil, ctx, StreamItem{PartID: 1, Channel: format.ChannelPosition, Segment: first})

		buf, _ := enc.EncodeItem(nil, ctx, StreamItem{PartID: 1, Channel: format.ChannelScale, Segment: first})
		flag := section.ItemFlag(buf[0])
		require.True(t, flag.IsNewContext())
		require.False(t, flag.IsInherit())
	})
}

func TestStreamEncoder_TickDeltaResetsOnContextSwitch(t *testing.T) {
	enc := newTestEncoder(t)
	seg := linearSegment(0, 1, curve.Vec3{}, curve.Vec3{})

	items := []StreamItem{
		{PartID: 1, Channel: format.ChannelPosition, Tick: 0, Segment: seg},
		{PartID: 1, Channel: format.ChannelRotation, Tick: 3, Segment: seg},
		{PartID: 1, Channel: format.ChannelRotation, Tick: 9, Segment: seg},
		{PartID: 1, Channel: format.ChannelPosition, Tick: 12, Segment: seg},
	}
	chunks := enc.EncodeRaw(items, 20)
	require.Len(t, chunks, 1)

	_, decoded := decodeChunk(t, chunks[0])
	require.Len(t, decoded, 4)

	ticks := make([]int, len(decoded))
	for i, it := range decoded {
		ticks[i] = it.Tick
	}
	require.Equal(t, []int{0, 3, 9, 12}, ticks)

	// third item continues the rotation context: delta 9-3=6, zigzag 12
	require.False(t, decoded[2].Flag.IsNewContext())
	require.True(t, decoded[3].Flag.IsNewContext())
}

func TestStreamEncoder_SortOrder(t *testing.T) {
	enc := newTestEncoder(t, WithChunkSize(1<<16))

	items := []StreamItem{
		{PartID: 2, Channel: format.ChannelScale, Tick: 10, Segment: linearSegment(10, 1, curve.Vec3{}, curve.Vec3{})},
		{PartID: 1, Channel: format.ChannelScale, Tick: 10, Segment: linearSegment(10, 2, curve.Vec3{}, curve.Vec3{})},
		{PartID: 1, Channel: format.ChannelPosition, Tick: 10, Segment: linearSegment(10, 3, curve.Vec3{}, curve.Vec3{})},
		{PartID: 5, Channel: format.ChannelRotation, Tick: 0, Segment: linearSegment(0, 4, curve.Vec3{}, curve.Vec3{})},
		{PartID: 1, Channel: format.ChannelPosition, Tick: 10, Segment: linearSegment(10, 5, curve.Vec3{}, curve.Vec3{})},
	}
	input := append([]StreamItem(nil), items...)

	chunks := enc.EncodeRaw(items, 20)
	require.Equal(t, input, items, "input must not be reordered")
	require.Len(t, chunks, 1)

	_, decoded := decodeChunk(t, chunks[0])
	require.Len(t, decoded, 5)

	durations := make([]int, len(decoded))
	for i, it := range decoded {
		durations[i] = it.Duration
	}
	// equal keys keep input order: duration 3 before 5
	require.Equal(t, []int{4, 3, 5, 2, 1}, durations)
}

func TestStreamEncoder_EmptyStream(t *testing.T) {
	enc := newTestEncoder(t)

	chunks := enc.EncodeRaw(nil, 7)
	require.Equal(t, [][]byte{{0x00, 0x07, 0x00, 0x00}}, chunks)
	require.Equal(t, []string{"AAcAAA=="}, enc.Encode(nil, 7))
}

func TestStreamEncoder_OversizedFirstItem(t *testing.T) {
	enc := newTestEncoder(t, WithChunkSize(5))

	items := []StreamItem{
		{PartID: 1, Channel: format.ChannelPosition, Tick: 0, Segment: linearSegment(0, 4, curve.Vec3{1, 2, 3}, curve.Vec3{1, 1, 1})},
		{PartID: 1, Channel: format.ChannelPosition, Tick: 4, Segment: linearSegment(4, 4, curve.Vec3{2, 3, 4}, curve.Vec3{1, 1, 1})},
		{PartID: 2, Channel: format.ChannelPosition, Tick: 0, Segment: linearSegment(0, 8, curve.Vec3{5, 5, 5}, curve.Vec3{})},
	}
	chunks := enc.EncodeRaw(items, 8)
	require.Len(t, chunks, 3)

	headers, decoded := decodeChunks(t, chunks)
	for i, chunk := range chunks {
		require.Greater(t, len(chunk), 5)
		require.Len(t, decoded[i], 1)
		require.True(t, decoded[i][0].Flag.IsNewContext(), "chunk %d must open a new context", i)
		require.Equal(t, section.ChunkHeader{Duration: 8, Count: 3}, headers[i])
	}

	// continuation in a fresh chunk re-sends the full value
	require.Equal(t, [3]int64{2000, 3000, 4000}, decoded[2][0].Value)
	require.Equal(t, 4, decoded[2][0].Tick)
}

func TestStreamEncoder_ChunkBudget(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11)) //nolint:gosec

	for _, chunkSize := range []int{8, 24, 40, 100, 512} {
		enc := newTestEncoder(t, WithChunkSize(chunkSize))

		for round := 0; round < 20; round++ {
			items := randomItems(rng, 1+rng.IntN(120))
			chunks := enc.EncodeRaw(items, 500)

			headers, decoded := decodeChunks(t, chunks)

			var flat []decodedItem
			for i, chunk := range chunks {
				require.NotEmpty(t, decoded[i], "size %d round %d: empty chunk %d", chunkSize, round, i)
				if len(decoded[i]) > 1 {
					require.LessOrEqual(t, len(chunk), chunkSize, "size %d round %d chunk %d", chunkSize, round, i)
				}
				require.Equal(t, int16(len(items)), headers[i].Count) //nolint:gosec
				require.Equal(t, int16(500), headers[i].Duration)
				require.True(t, decoded[i][0].Flag.IsNewContext())
				flat = append(flat, decoded[i]...)
			}

			sorted := append([]StreamItem(nil), items...)
			SortStreamItems(sorted)
			require.Len(t, flat, len(sorted))

			for i, want := range sorted {
				got := flat[i]
				require.Equal(t, want.PartID, got.PartID)
				require.Equal(t, want.Channel, got.Channel)
				require.Equal(t, want.Tick, got.Tick)
				require.Equal(t, want.Segment.Duration, got.Duration)
				require.Equal(t, enc.QuantizeVec(want.Segment.Value), got.Value)
				require.Equal(t, enc.QuantizeVec(want.Segment.Delta), got.Delta)
				require.Equal(t, want.Segment.Interp, got.Flag.Interpolation())
			}
		}
	}
}

func TestStreamEncoder_EncodeMatchesRaw(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5)) //nolint:gosec
	enc := newTestEncoder(t, WithChunkSize(32))

	items := randomItems(rng, 60)
	raw := enc.EncodeRaw(items, 90)
	encoded := enc.Encode(items, 90)
	require.Len(t, encoded, len(raw))

	for i, s := range encoded {
		b, err := base64.StdEncoding.DecodeString(s)
		require.NoError(t, err)
		require.Equal(t, raw[i], b)
	}
}

func TestNewStreamItems(t *testing.T) {
	segs := []curve.Segment{
		linearSegment(0, 5, curve.Vec3{}, curve.Vec3{}),
		linearSegment(5, 0, curve.Vec3{}, curve.Vec3{}),
	}

	items := NewStreamItems(6, format.ChannelRotation, segs)
	require.Len(t, items, 2)
	require.Equal(t, StreamItem{PartID: 6, Channel: format.ChannelRotation, Tick: 5, Segment: segs[1]}, items[1])
}

func randomItems(rng *rand.Rand, n int) []StreamItem {
	interps := []format.Interpolation{format.InterpLinear, format.InterpCatmullRom, format.InterpBezier}
	coord := func() float64 {
		if rng.IntN(4) == 0 {
			return 0
		}

		return float64(rng.IntN(20001)-10000) / 1000
	}

	items := make([]StreamItem, n)
	for i := range items {
		seg := curve.Segment{
			Tick:     rng.IntN(200),
			Duration: rng.IntN(30),
			Value:    curve.Vec3{coord(), coord(), coord()},
			Interp:   interps[rng.IntN(len(interps))],
		}
		if rng.IntN(3) > 0 {
			seg.Delta = curve.Vec3{coord(), coord(), coord()}
		}
		for c := range seg.Catmull {
			seg.Catmull[c] = coord()
		}
		for ax := range seg.Bezier {
			seg.Bezier[ax] = curve.BezierHandles{LeftTime: -coord() / 10, LeftValue: coord(), RightTime: coord() / 10, RightValue: coord()}
		}

		items[i] = StreamItem{
			PartID:  1 + rng.IntN(31),
			Channel: format.Channels()[rng.IntN(3)],
			Tick:    seg.Tick,
			Segment: seg,
		}
	}

	return items
}
