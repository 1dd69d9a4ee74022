package bake

import (
	"math"

	"go.uber.org/zap"

	"github.com/arloliu/animbake/curve"
	"github.com/arloliu/animbake/format"
	"github.com/arloliu/animbake/model"
)

// cameraActiveValue is the toggle value above which a camera is on.
const cameraActiveValue = 0.5

var axisNames = [3]string{"x", "y", "z"}

// cameraTracks exports the motion of every enabled camera bone.
func (b *Baker) cameraTracks(anim *model.Animation, settings Settings, duration int) map[string]CameraTrack {
	tracks := make(map[string]CameraTrack)
	if !settings.Enabled(SettingUseCamera) {
		return tracks
	}

	threshold := b.cfg.cameraTolerance * b.cfg.cameraTolerance
	for key, bone := range b.cfg.cameras {
		if !settings.Cameras[key] {
			continue
		}

		animator, ok := anim.Bone(bone)
		if !ok {
			continue
		}

		var track CameraTrack
		for _, ch := range format.Channels() {
			kfs := animator.CurveKeyframes(ch.String())
			if len(kfs) == 0 {
				continue
			}

			mode := ch.String()
			if ch == format.ChannelScale {
				mode = format.ChannelNameCameraScale
			}

			segs := curve.Simplify(b.curves.BakeChannel(kfs, mode), threshold)
			curve.PatchDuration(segs, duration)

			switch ch {
			case format.ChannelPosition:
				track.Position = cameraSegments(segs)
			case format.ChannelRotation:
				track.Rotation = cameraSegments(segs)
			case format.ChannelScale:
				track.Timeline = cameraTimeline(segs)
			}
		}

		if !track.IsEmpty() {
			tracks[key] = track
			b.log.Debug("camera track", zap.String("camera", key), zap.String("bone", bone))
		}
	}

	return tracks
}

func cameraSegments(segs []curve.Segment) []CameraSegment {
	out := make([]CameraSegment, len(segs))
	for i, seg := range segs {
		cs := CameraSegment{
			Tick:     seg.Tick,
			Duration: seg.Duration,
			Interp:   uint8(seg.Interp),
		}
		for ax := 0; ax < 3; ax++ {
			cs.Value[ax] = round4(seg.Value[ax])
			cs.Delta[ax] = round4(seg.Delta[ax])
		}

		if seg.Interp == format.InterpCatmullRom {
			cs.Catmull = make(map[string][4]float64, 3)
			for ax, name := range axisNames {
				var c [4]float64
				copy(c[:], seg.Catmull[ax*4:ax*4+4])
				cs.Catmull[name] = c
			}
		}
		out[i] = cs
	}

	return out
}

func cameraTimeline(segs []curve.Segment) []CameraToggle {
	out := make([]CameraToggle, len(segs))
	for i, seg := range segs {
		out[i] = CameraToggle{Tick: seg.Tick, Active: seg.Value[0] > cameraActiveValue}
	}

	return out
}

func round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}
