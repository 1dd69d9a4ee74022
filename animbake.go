// Package animbake bakes keyframe animations into compact, chunked binary streams.
//
// Source models hold keyframes in seconds with Linear, Catmull-Rom or Bezier
// interpolation. Baking snaps them onto a fixed tick grid, simplifies each
// channel without eroding curved motion, and encodes the result as a
// stateful zigzag-varint delta stream split into size-bounded base64 chunks.
//
// # Core Features
//
//   - Tick-grid baking with Catmull-Rom coefficients and Bezier handles
//   - Ramer-Douglas-Peucker simplification that keeps curved segments intact
//   - Context-carrying delta encoder with inherit and zero-delta flags
//   - Content-addressed artifacts (64-bit xxHash) with optional compression
//
// # Basic Usage
//
// Baking a whole model file:
//
//	import "github.com/arloliu/animbake"
//
//	out, _ := animbake.BakeFile(ctx, "model.bbmodel")
//	for _, res := range out.Results {
//	    fmt.Printf("%s: %d ticks, %d roles\n", res.Name, res.Duration, len(res.Streams))
//	}
//
// Encoding a single channel:
//
//	keys := []curve.Keyframe{
//	    curve.NewKeyframe(0, "linear", map[string]any{"x": 0}),
//	    curve.NewKeyframe(1, "linear", map[string]any{"x": 1}),
//	}
//	chunks, _ := animbake.EncodeChannel(keys, 1, format.ChannelPosition, 20)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the bake,
// curve and encoding packages. For fine-grained control, use those packages
// directly.
package animbake

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/arloliu/animbake/bake"
	"github.com/arloliu/animbake/curve"
	"github.com/arloliu/animbake/encoding"
	"github.com/arloliu/animbake/format"
	"github.com/arloliu/animbake/model"
	"github.com/arloliu/animbake/section"
)

// NewBaker creates a model baker.
//
// Without options the baker uses 20 ticks per second, a precision of 1000,
// a 100-byte chunk budget and the two-player rig mapping.
//
// Parameters:
//   - opts: Optional bake configuration
//
// Returns:
//   - *bake.Baker: The baker
//   - error: An error if an option is invalid
func NewBaker(opts ...bake.Option) (*bake.Baker, error) {
	return bake.New(opts...)
}

// NewStreamEncoder creates a stream encoder.
//
// Parameters:
//   - opts: Optional wire format configuration
//
// Returns:
//   - *encoding.StreamEncoder: The encoder
//   - error: An error if an option is invalid
func NewStreamEncoder(opts ...encoding.StreamEncoderOption) (*encoding.StreamEncoder, error) {
	return encoding.NewStreamEncoder(opts...)
}

// NewDefaultStreamEncoder creates a stream encoder with the default wire format.
func NewDefaultStreamEncoder() (*encoding.StreamEncoder, error) {
	return encoding.NewStreamEncoder()
}

// BakeFile loads a model file and bakes every animation in it.
//
// Parameters:
//   - ctx: Context for cancellation between animations
//   - path: Path of the model JSON file
//   - opts: Optional bake configuration
//
// Returns:
//   - *bake.Output: Baked results and the manifest
//   - error: Load, option or cancellation errors
func BakeFile(ctx context.Context, path string, opts ...bake.Option) (*bake.Output, error) {
	m, err := model.LoadFile(path)
	if err != nil {
		return nil, err
	}

	b, err := bake.New(opts...)
	if err != nil {
		return nil, err
	}

	return b.BakeModel(ctx, m)
}

// EncodeChannel bakes, simplifies and encodes one transform channel.
//
// The channel is simplified with its default threshold and its last segment
// is extended to duration ticks.
//
// Parameters:
//   - keyframes: Channel keyframes in any order
//   - partID: Part id written in the composite id of each item
//   - channel: Transform channel
//   - duration: Animation length in ticks
//   - opts: Optional wire format configuration
//
// Returns:
//   - []string: Base64 chunks
//   - error: An error if an option is invalid
func EncodeChannel(keyframes []curve.Keyframe, partID int, channel format.ChannelID, duration int, opts ...encoding.StreamEncoderOption) ([]string, error) {
	enc, err := encoding.NewStreamEncoder(opts...)
	if err != nil {
		return nil, err
	}

	segs := curve.NewBaker(enc.Config().Ticks()).BakeChannel(keyframes, channel.String())
	segs = curve.Simplify(segs, curve.DefaultThreshold(channel))
	curve.PatchDuration(segs, duration)

	return enc.Encode(encoding.NewStreamItems(partID, channel, segs), duration), nil
}

// InspectChunk decodes a base64 chunk and parses its header.
func InspectChunk(chunk string) (section.ChunkHeader, error) {
	raw, err := base64.StdEncoding.DecodeString(chunk)
	if err != nil {
		return section.ChunkHeader{}, fmt.Errorf("decode chunk: %w", err)
	}

	return section.ParseChunkHeader(raw)
}
