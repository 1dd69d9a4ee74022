package curve

import "github.com/arloliu/animbake/format"

// BezierHandles is the Bezier payload of one axis of a segment.
//
// The right handle comes from the segment's own keyframe and the left handle
// from the following keyframe. Times are raw offsets in seconds; they are
// normalized against the segment duration only when encoded.
type BezierHandles struct {
	LeftTime   float64
	LeftValue  float64
	RightTime  float64
	RightValue float64
}

// Segment is one baked span of a channel, from its keyframe to the next.
type Segment struct {
	// Tick is the start time in ticks.
	Tick int
	// Duration is the span length in ticks, never negative.
	Duration int
	// Value is the channel value at Tick.
	Value Vec3
	// Delta is the difference from Value to the next segment's value.
	Delta Vec3
	// Interp is the interpolation mode used until the next segment.
	Interp format.Interpolation
	// Catmull holds 4 coefficients per axis (x then y then z) for CatmullRom segments.
	Catmull [12]float64
	// Bezier holds the per-axis handles for Bezier segments.
	Bezier [3]BezierHandles
}

// End returns the tick at which the segment ends.
func (s Segment) End() int {
	return s.Tick + s.Duration
}

// IsLinear reports whether the segment interpolates linearly.
func (s Segment) IsLinear() bool {
	return s.Interp == format.InterpLinear
}
