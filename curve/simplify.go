package curve

import "github.com/arloliu/animbake/format"

// Default squared-distance thresholds used by Simplify.
const (
	DefaultPositionThreshold = 0.002 * 0.002
	DefaultRotationThreshold = 0.1 * 0.1
	DefaultScaleThreshold    = 0.002 * 0.002
)

// duplicateEpsilon is the squared distance below which consecutive values count as identical.
const duplicateEpsilon = 1e-5

// DefaultThreshold returns the default squared error threshold for a channel.
func DefaultThreshold(channel format.ChannelID) float64 {
	if channel == format.ChannelRotation {
		return DefaultRotationThreshold
	}

	return DefaultPositionThreshold
}

// span is a pending [first, last] index range of the RDP work stack.
type span struct {
	first, last int
}

// Simplify reduces a baked segment list with Ramer-Douglas-Peucker.
//
// The reduction runs in three passes:
//  1. Segments whose value is within 1e-5 squared distance of the last kept
//     segment are dropped; the final segment is always kept.
//  2. RDP over the remaining points. A range whose interior contains a
//     non-linear segment is kept unchanged; otherwise the interior point
//     farthest from the chord splits the range when its squared distance
//     exceeds threshold, and the range collapses to its endpoints when not.
//  3. Durations and deltas are recomputed between kept neighbors. The last
//     segment gets zero duration and zero delta; use PatchDuration to extend
//     it to the animation length.
//
// The input slice is not modified. The recursion of the classic algorithm is
// replaced by an explicit stack, so depth does not grow with input length.
//
// Parameters:
//   - segs: Baked segments in tick order
//   - threshold: Squared distance tolerance; negative values act as 0
//
// Returns:
//   - []Segment: The reduced segments, nil for empty input
func Simplify(segs []Segment, threshold float64) []Segment {
	if len(segs) == 0 {
		return nil
	}

	cleaned := dedupe(segs)
	keep := rdpKeep(cleaned, max(0, threshold))

	out := make([]Segment, 0, len(cleaned))
	for i, seg := range cleaned {
		if keep[i] {
			out = append(out, seg)
		}
	}

	for i := range out {
		if i == len(out)-1 {
			out[i].Duration = 0
			out[i].Delta = Vec3{}

			break
		}

		nxt := out[i+1]
		out[i].Duration = nxt.Tick - out[i].Tick
		out[i].Delta = nxt.Value.Sub(out[i].Value)
	}

	return out
}

// PatchDuration extends the last segment so that it ends at total ticks.
//
// Nothing changes when segs is empty or the last segment already reaches total.
func PatchDuration(segs []Segment, total int) {
	if len(segs) == 0 {
		return
	}

	last := &segs[len(segs)-1]
	if last.End() < total {
		last.Duration = total - last.Tick
	}
}

func dedupe(segs []Segment) []Segment {
	cleaned := make([]Segment, 1, len(segs))
	cleaned[0] = segs[0]
	lastIdx := 0

	for i := 1; i < len(segs); i++ {
		if sqDist(segs[i].Value, cleaned[len(cleaned)-1].Value) < duplicateEpsilon {
			continue
		}
		cleaned = append(cleaned, segs[i])
		lastIdx = i
	}

	if lastIdx != len(segs)-1 {
		cleaned = append(cleaned, segs[len(segs)-1])
	}

	return cleaned
}

func rdpKeep(pts []Segment, threshold float64) []bool {
	n := len(pts)
	keep := make([]bool, n)
	keep[0] = true
	keep[n-1] = true

	stack := []span{{first: 0, last: n - 1}}
	for len(stack) > 0 {
		sp := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if sp.last-sp.first < 2 {
			continue
		}

		idx, maxDist, curved := farthest(pts, sp.first, sp.last)
		if curved {
			for i := sp.first; i <= sp.last; i++ {
				keep[i] = true
			}

			continue
		}

		if maxDist > threshold && idx > sp.first {
			keep[idx] = true
			stack = append(stack, span{first: idx, last: sp.last}, span{first: sp.first, last: idx})
		}
	}

	return keep
}

// farthest returns the interior index with the largest squared distance to
// the chord pts[first]..pts[last]. curved is true when an interior point is
// not linear, in which case the other results are meaningless.
func farthest(pts []Segment, first, last int) (idx int, maxDist float64, curved bool) {
	start := pts[first].Value
	end := pts[last].Value
	chord := end.Sub(start)
	denom := chord.Dot(chord)

	for i := first + 1; i < last; i++ {
		if !pts[i].IsLinear() {
			return 0, 0, true
		}

		cur := pts[i].Value

		var d float64
		if denom == 0 {
			d = sqDist(cur, start)
		} else {
			t := cur.Sub(start).Dot(chord) / denom
			t = max(0, min(1, t))
			d = sqDist(cur, start.Add(chord.Mul(t)))
		}

		if d > maxDist {
			maxDist = d
			idx = i
		}
	}

	return idx, maxDist, false
}

func sqDist(a, b Vec3) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}
