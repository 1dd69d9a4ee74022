package section

import "github.com/arloliu/animbake/format"

// Bit layout of the flag byte leading every encoded item.
const (
	NewContextMask uint8 = 1 << 0 // item switches (part, channel) and carries a composite id byte
	InheritMask    uint8 = 1 << 1 // value equals the reconstructed running value and is omitted
	ZeroDeltaMask  uint8 = 1 << 2 // delta is zero on all axes and is omitted
	InterpMask     uint8 = 0x3 << InterpShift
)

// InterpShift is the bit offset of the 2-bit interpolation code.
const InterpShift = 3

const (
	interpBitsLinear  = 0
	interpBitsCatmull = 1
	interpBitsBezier  = 2
)

// ItemFlag is the packed flag byte of one encoded stream item.
type ItemFlag uint8

// NewItemFlag packs the item flags.
func NewItemFlag(newContext, inherit, zeroDelta bool, interp format.Interpolation) ItemFlag {
	var f ItemFlag
	f.setBit(NewContextMask, newContext)
	f.setBit(InheritMask, inherit)
	f.setBit(ZeroDeltaMask, zeroDelta)
	f |= ItemFlag(interp.Bits() << InterpShift)

	return f
}

func (f *ItemFlag) setBit(mask uint8, on bool) {
	if on {
		*f |= ItemFlag(mask)
	} else {
		*f &^= ItemFlag(mask)
	}
}

// IsNewContext reports whether the item starts a new (part, channel) context.
func (f ItemFlag) IsNewContext() bool {
	return uint8(f)&NewContextMask != 0
}

// IsInherit reports whether the item's value is omitted and inherited from the running value.
func (f ItemFlag) IsInherit() bool {
	return uint8(f)&InheritMask != 0
}

// IsZeroDelta reports whether the item's delta is omitted because it is zero.
func (f ItemFlag) IsZeroDelta() bool {
	return uint8(f)&ZeroDeltaMask != 0
}

// Interpolation returns the interpolation mode stored in bits 3-4.
//
// The unused code 3 reads as linear.
func (f ItemFlag) Interpolation() format.Interpolation {
	switch (uint8(f) & InterpMask) >> InterpShift {
	case interpBitsCatmull:
		return format.InterpCatmullRom
	case interpBitsBezier:
		return format.InterpBezier
	case interpBitsLinear:
		return format.InterpLinear
	default:
		return format.InterpLinear
	}
}

// CompositeID packs a part id into the high 5 bits and a channel id into the low 3 bits.
func CompositeID(partID int, channel format.ChannelID) uint8 {
	return uint8((partID&0x1F)<<3) | uint8(channel&0x07) //nolint:gosec
}

// SplitCompositeID unpacks a composite id byte into part id and channel id.
func SplitCompositeID(id uint8) (int, format.ChannelID) {
	return int(id >> 3), format.ChannelID(id & 0x07)
}
