// Package curve bakes animation keyframes into per-tick segments and reduces them.
//
// A channel of keyframes (position, rotation or scale of one part) is turned
// into an ordered list of Segment values by Baker.BakeChannel. Each segment
// starts at an integer tick, lasts until the next keyframe and carries the
// value, the delta to the next value and the interpolation mode with its curve
// payload (Catmull-Rom coefficients or Bezier handles).
//
// Simplify then removes linear interior segments that lie within an error
// bound of the chord between their neighbors (Ramer-Douglas-Peucker). Runs
// containing a curve segment are never approximated.
//
// # Usage
//
//	baker := curve.NewBaker(20)
//	segs := baker.BakeChannel(keyframes, format.ChannelNamePosition)
//	segs = curve.Simplify(segs, curve.DefaultThreshold(format.ChannelPosition))
//	curve.PatchDuration(segs, totalTicks)
//
// Nothing in this package returns an error: missing or malformed numbers
// coerce to 0.0 and degenerate inputs yield empty or unchanged output.
package curve
