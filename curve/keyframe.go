package curve

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/arloliu/animbake/format"
)

// Vec3 is the per-axis value vector of keyframes and segments.
type Vec3 = mgl64.Vec3

// Handle is one Bezier handle of a single axis: an offset in seconds and a value offset.
type Handle struct {
	Time  float64
	Value float64
}

// Keyframe is a single source key of one channel.
//
// Left and Right are only meaningful for Bezier keys; they hold the incoming
// and outgoing handle of each axis.
type Keyframe struct {
	Time   float64
	Interp format.Interpolation
	Value  Vec3
	Left   [3]Handle
	Right  [3]Handle
}

var axes = [3]string{"x", "y", "z"}

// NewKeyframe builds a Keyframe from loosely typed source fields.
//
// Every numeric field goes through Float, so missing keys and non-numeric
// values resolve to 0.0. The interpolation kind falls back to linear when
// unrecognized.
//
// Parameters:
//   - timeVal: Key time in seconds (any JSON scalar)
//   - kind: Declared interpolation kind ("linear", "catmullrom", "bezier")
//   - point: Data point map holding "x", "y", "z" and the Bezier handle keys
//
// Returns:
//   - Keyframe: The coerced keyframe
func NewKeyframe(timeVal any, kind string, point map[string]any) Keyframe {
	kf := Keyframe{
		Time:   Float(timeVal),
		Interp: format.ParseInterpolation(kind),
	}

	for i, ax := range axes {
		kf.Value[i] = Float(point[ax])
		kf.Left[i] = Handle{
			Time:  Float(point[ax+"_left_time"]),
			Value: Float(point[ax+"_left_value"]),
		}
		kf.Right[i] = Handle{
			Time:  Float(point[ax+"_right_time"]),
			Value: Float(point[ax+"_right_value"]),
		}
	}

	return kf
}

// Float coerces a loosely typed scalar to float64.
//
// Numbers, json.Number and numeric strings convert; everything else,
// including NaN and infinities, becomes 0.0.
func Float(v any) float64 {
	var f float64

	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case uint8:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return f
}
