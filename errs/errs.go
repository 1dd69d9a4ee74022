// Package errs defines the sentinel errors returned by animbake's outer surfaces.
//
// The bake, simplify and encode core never fails on input data; these errors
// come from configuration, model decoding and artifact writing.
package errs

import "errors"

var (
	// ErrInvalidTicks is returned when the seconds-to-tick scale is not positive.
	ErrInvalidTicks = errors.New("ticks must be positive")
	// ErrInvalidPrecision is returned when the fixed-point scale is not positive.
	ErrInvalidPrecision = errors.New("precision must be positive")
	// ErrInvalidChunkSize is returned when the chunk byte budget is not positive.
	ErrInvalidChunkSize = errors.New("chunk size must be positive")
	// ErrInvalidThreshold is returned for a negative simplification tolerance.
	ErrInvalidThreshold = errors.New("simplification tolerance must not be negative")
	// ErrModelDecode is returned when the source model is not valid JSON.
	ErrModelDecode = errors.New("invalid model document")
	// ErrUnknownCompression is returned for an unsupported artifact compression.
	ErrUnknownCompression = errors.New("unknown compression")
	// ErrEmptyOutputDir is returned when no output directory is configured.
	ErrEmptyOutputDir = errors.New("output directory is empty")
	// ErrInvalidChunk is returned when a chunk cannot be base64-decoded or is shorter than its header.
	ErrInvalidChunk = errors.New("invalid chunk")
	// ErrHashCollision is returned when two animations with different content map to the same content id.
	ErrHashCollision = errors.New("content id collision")
)
