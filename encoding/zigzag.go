package encoding

import "encoding/binary"

// MaxVarintLen is the longest encoding of a 32-bit zigzag value.
const MaxVarintLen = binary.MaxVarintLen32

// ZigZag32 maps a signed value to unsigned using 32-bit zigzag semantics:
// (n << 1) ^ (n >> 31) on an int32.
//
// Values outside the int32 range wrap silently; the wire format has always
// used the 32-bit transform and decoders expect it.
//
// Examples: 0 -> 0, -1 -> 1, 1 -> 2, -2 -> 3, 2 -> 4.
func ZigZag32(v int64) uint32 {
	n := int32(v) //nolint:gosec

	return uint32((n << 1) ^ (n >> 31)) //nolint:gosec
}

// AppendVarint appends the zigzag-varint encoding of v to dst.
//
// The zigzag value is written little-endian in base-128 groups with the
// continuation bit 0x80 set on every byte but the last (1-5 bytes).
func AppendVarint(dst []byte, v int64) []byte {
	return binary.AppendUvarint(dst, uint64(ZigZag32(v)))
}

// VarintLen returns the number of bytes AppendVarint writes for v.
func VarintLen(v int64) int {
	u := ZigZag32(v)
	n := 1
	for u >= 0x80 {
		u >>= 7
		n++
	}

	return n
}
