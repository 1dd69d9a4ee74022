package compress

// ZstdCompressor writes Zstandard frames.
//
// It gives the best ratio of the supported codecs and suits artifacts that are
// written once and shipped to players.
//
// The implementation is selected at build time: pure Go by default, the
// gozstd cgo binding with the gozstd build tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
