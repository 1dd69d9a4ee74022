package curve

import (
	"cmp"
	"math"
	"slices"

	"github.com/arloliu/animbake/format"
)

// DefaultTicks is the default number of ticks per second.
const DefaultTicks = 20

// cameraToggleThreshold is the mean axis value above which a camera scale key reads as "on".
const cameraToggleThreshold = 0.1

// Baker converts keyframe channels into segments on a fixed tick grid.
//
// A Baker holds only its tick scale and is safe for concurrent use.
type Baker struct {
	ticks float64
}

// NewBaker creates a Baker with the given ticks per second.
// Non-positive values fall back to DefaultTicks.
func NewBaker(ticksPerSecond int) *Baker {
	if ticksPerSecond <= 0 {
		ticksPerSecond = DefaultTicks
	}

	return &Baker{ticks: float64(ticksPerSecond)}
}

// Ticks returns the ticks-per-second scale.
func (b *Baker) Ticks() int {
	return int(b.ticks)
}

// Tick converts seconds to the nearest tick.
func (b *Baker) Tick(seconds float64) int {
	return int(math.Round(seconds * b.ticks))
}

// BakeChannel converts one channel's keyframes into ordered segments.
//
// Keyframes are ordered by time (stable for equal times) without modifying
// the input. Keyframes that round to the same tick collapse to the last of
// them. Every remaining keyframe pairs with its successor; the last one pairs with
// itself, so the terminal segment has zero duration, zero delta and is always
// linear.
//
// For the "camera_scale" channel the value collapses to an on/off toggle:
// 1.0 on all axes when the mean axis value exceeds 0.1, otherwise 0.0.
//
// Catmull-Rom segments use the previous and the next-next keyframe as outer
// control points, clamped to the current and next keyframe at the sequence
// boundaries. Bezier segments copy the raw handles: the outgoing handle of the
// current key and the incoming handle of the next key.
//
// Parameters:
//   - keyframes: Channel keyframes in any order
//   - channel: Channel name (only "camera_scale" changes behavior)
//
// Returns:
//   - []Segment: One segment per distinct tick, nil for empty input
func (b *Baker) BakeChannel(keyframes []Keyframe, channel string) []Segment {
	count := len(keyframes)
	if count == 0 {
		return nil
	}

	kfs := slices.Clone(keyframes)
	slices.SortStableFunc(kfs, func(a, b Keyframe) int {
		return cmp.Compare(a.Time, b.Time)
	})
	kfs = b.collapseTicks(kfs)
	count = len(kfs)

	segs := make([]Segment, 0, count)
	for i := range kfs {
		cur := &kfs[i]
		last := i == count-1

		nxt := cur
		if !last {
			nxt = &kfs[i+1]
		}

		tick := b.Tick(cur.Time)
		value := cur.Value
		if channel == format.ChannelNameCameraScale {
			value = cameraToggle(value)
		}

		interp := cur.Interp
		if last {
			interp = format.InterpLinear
		}

		seg := Segment{
			Tick:     tick,
			Duration: max(0, b.Tick(nxt.Time)-tick),
			Value:    value,
			Delta:    nxt.Value.Sub(value),
			Interp:   interp,
		}

		switch interp {
		case format.InterpCatmullRom:
			prev := cur
			if i > 0 {
				prev = &kfs[i-1]
			}
			after := nxt
			if i < count-2 {
				after = &kfs[i+2]
			}

			for ax := 0; ax < 3; ax++ {
				c := CatmullCoefficients(prev.Value[ax], value[ax], nxt.Value[ax], after.Value[ax])
				copy(seg.Catmull[ax*4:ax*4+4], c[:])
			}
		case format.InterpBezier:
			for ax := 0; ax < 3; ax++ {
				seg.Bezier[ax] = BezierHandles{
					LeftTime:   nxt.Left[ax].Time,
					LeftValue:  nxt.Left[ax].Value,
					RightTime:  cur.Right[ax].Time,
					RightValue: cur.Right[ax].Value,
				}
			}
		case format.InterpLinear:
		default:
			seg.Interp = format.InterpLinear
		}

		segs = append(segs, seg)
	}

	return segs
}

// collapseTicks drops every keyframe whose successor lands on the same tick,
// so the remaining keys have strictly ascending ticks.
func (b *Baker) collapseTicks(kfs []Keyframe) []Keyframe {
	out := kfs[:0]
	for i := range kfs {
		if i+1 < len(kfs) && b.Tick(kfs[i+1].Time) == b.Tick(kfs[i].Time) {
			continue
		}
		out = append(out, kfs[i])
	}

	return out
}

// IsToggleOn reports whether a scale key reads as an enabled flag:
// the mean of its three axis values exceeds 0.1.
func IsToggleOn(v Vec3) bool {
	return (v[0]+v[1]+v[2])/3.0 > cameraToggleThreshold
}

func cameraToggle(v Vec3) Vec3 {
	if IsToggleOn(v) {
		return Vec3{1, 1, 1}
	}

	return Vec3{}
}
