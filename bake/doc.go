// Package bake turns the animations of a source model into baked artifacts.
//
// For every animation a Baker:
//
//  1. resolves bone animators to (role, part) through the configured part map
//  2. bakes, simplifies and duration-patches each position, rotation and scale
//     channel of every mapped bone
//  3. encodes each role's items as one stream of base64 chunks
//  4. derives the settings flags, camera tracks and effect events
//
// and finally builds the manifest that indexes the results by content id.
//
// # Usage
//
//	b, err := bake.New(bake.WithChunkSize(100), bake.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	out, err := b.BakeModel(ctx, m)
//
// A Baker is immutable after New and may bake several models concurrently;
// every animation gets its own encoding context.
package bake
