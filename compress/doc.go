// Package compress provides the codecs applied to baked artifacts before they
// are written to disk.
//
// Baked animation and manifest files are JSON documents full of repeated keys
// and base64 chunk strings, so they compress well. The codec is selected by
// format.CompressionType and the artifact file name gets the matching suffix
// from CompressionType.Extension.
//
// # Supported Algorithms
//
//	Type  | Suffix | Format                        | Library
//	------|--------|-------------------------------|------------------------------
//	None  |        | raw bytes                     |
//	Zstd  | .zst   | zstd frame                    | klauspost/compress/zstd
//	S2    | .s2    | s2 block                      | klauspost/compress/s2
//	LZ4   | .lz4   | lz4 frame                     | pierrec/lz4/v4
//
// Building with the gozstd tag swaps the pure Go zstd implementation for the
// cgo binding github.com/valyala/gozstd. Both produce standard zstd frames.
//
// # Usage
//
//	codec, err := compress.CreateCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	data, err := codec.Compress(jsonBytes)
//
// # Thread Safety
//
// All codecs are stateless values backed by pooled encoders and decoders and
// are safe for concurrent use.
package compress
