package format

import "strings"

type (
	Interpolation   uint8
	ChannelID       uint8
	CompressionType uint8
)

const (
	InterpLinear     Interpolation = 0x1 // InterpLinear represents straight-line interpolation to the next key.
	InterpCatmullRom Interpolation = 0x2 // InterpCatmullRom represents a Catmull-Rom spline through neighbor keys.
	InterpBezier     Interpolation = 0x3 // InterpBezier represents a cubic Bezier with explicit handles.

	ChannelPosition ChannelID = 0x1 // ChannelPosition is the translation channel.
	ChannelRotation ChannelID = 0x2 // ChannelRotation is the euler rotation channel.
	ChannelScale    ChannelID = 0x3 // ChannelScale is the scale channel.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Channel names as they appear in source keyframes.
const (
	ChannelNamePosition    = "position"
	ChannelNameRotation    = "rotation"
	ChannelNameScale       = "scale"
	ChannelNameCameraScale = "camera_scale"
)

// ParseInterpolation resolves a keyframe's declared interpolation kind.
//
// Unrecognized, empty or differently-cased kinds fall back to InterpLinear.
func ParseInterpolation(kind string) Interpolation {
	switch kind {
	case "linear":
		return InterpLinear
	case "catmullrom":
		return InterpCatmullRom
	case "bezier":
		return InterpBezier
	default:
		return InterpLinear
	}
}

func (i Interpolation) String() string {
	switch i {
	case InterpLinear:
		return "Linear"
	case InterpCatmullRom:
		return "CatmullRom"
	case InterpBezier:
		return "Bezier"
	default:
		return "Unknown"
	}
}

// Bits returns the 2-bit interpolation code stored in an encoded item flag:
// 0 for Linear, 1 for CatmullRom and 2 for Bezier.
func (i Interpolation) Bits() uint8 {
	switch i {
	case InterpCatmullRom:
		return 1
	case InterpBezier:
		return 2
	default:
		return 0
	}
}

// ChannelFromName maps a source channel name to its channel id.
//
// The second return value is false for names outside position, rotation and scale.
func ChannelFromName(name string) (ChannelID, bool) {
	switch name {
	case ChannelNamePosition:
		return ChannelPosition, true
	case ChannelNameRotation:
		return ChannelRotation, true
	case ChannelNameScale:
		return ChannelScale, true
	default:
		return 0, false
	}
}

func (c ChannelID) String() string {
	switch c {
	case ChannelPosition:
		return ChannelNamePosition
	case ChannelRotation:
		return ChannelNameRotation
	case ChannelScale:
		return ChannelNameScale
	default:
		return "unknown"
	}
}

// Channels lists the transform channels in emission order.
func Channels() []ChannelID {
	return []ChannelID{ChannelPosition, ChannelRotation, ChannelScale}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Extension returns the file suffix appended to artifacts written with this compression.
func (c CompressionType) Extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseCompression parses a case-insensitive compression name.
//
// An empty name means CompressionNone. The second return value is false for unknown names.
func ParseCompression(name string) (CompressionType, bool) {
	switch strings.ToLower(name) {
	case "", "none":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
