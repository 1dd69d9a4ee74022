// Package section defines the fixed binary structures of the animation stream format.
//
// A baked stream is split into chunks. Every chunk starts with a fixed-size
// ChunkHeader, followed by items. Every item starts with an ItemFlag byte and,
// when it opens a new context, a composite id byte. The variable-length item
// body is written by the encoding package.
//
// # Chunk Layout
//
//	┌──────────────────────────────────────────────┐
//	│ ChunkHeader (4 bytes, big-endian)            │
//	│  - Duration (int16): animation length, ticks │
//	│  - Count (int16): items in the whole stream  │
//	├──────────────────────────────────────────────┤
//	│ Item 1                                       │
//	│  - ItemFlag (1 byte)                         │
//	│  - Composite id (1 byte, new context only)   │
//	│  - Varint body                               │
//	├──────────────────────────────────────────────┤
//	│ Item 2 ...                                   │
//	└──────────────────────────────────────────────┘
//
// Count repeats the global item count in every chunk of a stream.
//
// # Flag Format
//
//	Bit 0:    new context, a composite id byte follows
//	Bit 1:    inherit, the value is omitted
//	Bit 2:    zero delta, the delta is omitted
//	Bits 3-4: interpolation (0=Linear, 1=CatmullRom, 2=Bezier)
//	Bits 5-7: unused, always 0
//
// # Composite Id
//
//	Bits 0-2: channel id (1=position, 2=rotation, 3=scale)
//	Bits 3-7: part id (0-31)
//
// # Thread Safety
//
// All types in this package are value types and are safe for concurrent use.
package section
