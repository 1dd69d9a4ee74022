// Package encoding implements the stateful binary stream format of baked
// animation channels.
//
// A stream is the globally ordered list of segments of every part and channel
// of one animation. StreamEncoder splits it into chunks of a bounded byte
// size. Each chunk starts with a section.ChunkHeader and holds a run of items
// encoded against a running Context: an item only carries its part and
// channel when they change, its value only when it differs from the value
// reconstructed from the previous item, and its delta only when non-zero.
// The context resets at every chunk boundary, so chunks decode independently.
//
// # Integer Encoding
//
// All integers except the flag byte, the composite id byte and the Bezier
// handle time bytes are zigzag-varints: the 32-bit zigzag transform
// (n << 1) ^ (n >> 31) followed by a base-128 little-endian varint.
//
//	 0 -> 00
//	-1 -> 01
//	 1 -> 02
//	300 -> D8 04
//
// # Basic Usage
//
//	enc, err := encoding.NewStreamEncoder(encoding.WithChunkSize(100))
//	if err != nil {
//	    return err
//	}
//
//	items := encoding.NewStreamItems(partID, format.ChannelPosition, segments)
//	chunks := enc.Encode(items, durationTicks) // base64 strings
//
// # Thread Safety
//
// StreamEncoder holds no per-stream state; Encode may be called concurrently.
package encoding
