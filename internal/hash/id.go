// Package hash derives stable content ids for baked animations.
package hash

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// ContentIDLen is the length of a content id string.
const ContentIDLen = 16

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// ContentID returns the xxHash64 of data as 16 lowercase hex digits.
//
// The id names an animation's artifact file and its manifest entry, so it
// must only depend on the animation's source bytes.
func ContentID(data []byte) string {
	return FormatID(xxhash.Sum64(data))
}

// FormatID renders a 64-bit id as zero-padded lowercase hex.
func FormatID(id uint64) string {
	s := strconv.FormatUint(id, 16)
	if len(s) < ContentIDLen {
		s = "0000000000000000"[:ContentIDLen-len(s)] + s
	}

	return s
}
