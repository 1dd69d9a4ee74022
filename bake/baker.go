package bake

import (
	"cmp"
	"context"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/arloliu/animbake/curve"
	"github.com/arloliu/animbake/encoding"
	"github.com/arloliu/animbake/format"
	"github.com/arloliu/animbake/internal/collision"
	"github.com/arloliu/animbake/internal/hash"
	"github.com/arloliu/animbake/internal/options"
	"github.com/arloliu/animbake/model"
)

// Baker bakes model animations into stream artifacts.
type Baker struct {
	cfg     *Config
	curves  *curve.Baker
	encoder *encoding.StreamEncoder
	partIDs map[string]int
	bones   map[string]BoneRef
	log     *zap.Logger
}

// New creates a Baker.
//
// Parameters:
//   - opts: Optional configuration
//
// Returns:
//   - *Baker: The baker
//   - error: An error if an option is invalid
func New(opts ...Option) (*Baker, error) {
	cfg := NewConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	enc, err := encoding.NewStreamEncoder(
		encoding.WithTicks(cfg.ticks),
		encoding.WithPrecision(cfg.precision),
		encoding.WithChunkSize(cfg.chunkSize),
	)
	if err != nil {
		return nil, err
	}

	return &Baker{
		cfg:     cfg,
		curves:  curve.NewBaker(cfg.ticks),
		encoder: enc,
		partIDs: cfg.parts.PartIDs(),
		bones:   cfg.parts.BoneIndex(),
		log:     cfg.logger,
	}, nil
}

// PartIDs returns a copy of the internal part name to part id table.
func (b *Baker) PartIDs() map[string]int {
	return maps.Clone(b.partIDs)
}

// BakeModel bakes every selected animation of m and builds the manifest.
//
// Animations are baked in document order. ctx is checked before each
// animation; a canceled context stops the run and returns ctx.Err().
// A repeated animation name is logged and the later animation wins the
// manifest entry.
//
// Parameters:
//   - ctx: Context for cancellation
//   - m: Loaded model
//
// Returns:
//   - *Output: Per-animation results and the manifest
//   - error: The context error if canceled, or ErrHashCollision
func (b *Baker) BakeModel(ctx context.Context, m *model.Model) (*Output, error) {
	out := &Output{
		Results: make([]*Result, 0, len(m.Animations)),
		Manifest: Manifest{
			Anims:       make(map[string]string),
			NeededParts: make(map[string][]string),
			IDs:         b.PartIDs(),
		},
	}

	tracker := collision.NewTracker()
	usage := make(map[string]map[string]struct{})
	for i := range m.Animations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		anim := &m.Animations[i]
		if !b.selected(anim.Name) {
			b.log.Debug("skip animation", zap.String("name", anim.Name))
			continue
		}

		if tracker.Seen(anim.Name) {
			b.log.Warn("duplicate animation name", zap.String("name", anim.Name))
		}

		res := b.BakeAnimation(anim)
		if err := tracker.Track(res.Name, res.Hash, anim.Canonical); err != nil {
			return nil, err
		}
		out.Results = append(out.Results, res)
		out.Manifest.Anims[res.Name] = res.Hash

		for _, part := range res.Parts {
			if usage[part] == nil {
				usage[part] = make(map[string]struct{})
			}
			usage[part][res.Name] = struct{}{}
		}
	}

	for part, names := range usage {
		out.Manifest.NeededParts[part] = sortedKeys(names)
	}

	return out, nil
}

func (b *Baker) selected(name string) bool {
	if b.cfg.only == nil {
		return true
	}
	_, ok := b.cfg.only[name]

	return ok
}

// BakeAnimation bakes one animation.
//
// Bones missing from the part map are skipped. Each role with at least one
// baked channel gets one stream.
func (b *Baker) BakeAnimation(anim *model.Animation) *Result {
	duration := b.curves.Tick(anim.MaxTime())
	res := &Result{
		Name:     anim.Name,
		Hash:     hash.ContentID(anim.Canonical),
		Duration: duration,
		Settings: b.settings(anim),
		Streams:  make(map[string][]string),
		Events:   b.events(anim),
	}

	roleItems := make(map[string][]encoding.StreamItem)
	parts := make(map[string]struct{})

	for _, animator := range anim.Bones() {
		ref, ok := b.bones[animator.Name]
		if !ok {
			b.log.Debug("unmapped bone", zap.String("animation", anim.Name), zap.String("bone", animator.Name))
			continue
		}
		parts[ref.Part] = struct{}{}

		items := b.boneItems(animator, b.partIDs[ref.Part], duration)
		if len(items) > 0 {
			roleItems[ref.Role] = append(roleItems[ref.Role], items...)
		}
	}

	chunkCount := 0
	for role, items := range roleItems {
		res.Streams[role] = b.encoder.Encode(items, duration)
		chunkCount += len(res.Streams[role])
	}

	res.Cameras = b.cameraTracks(anim, res.Settings, duration)
	res.Parts = sortedKeys(parts)

	b.log.Info("baked animation",
		zap.String("name", res.Name),
		zap.String("hash", res.Hash),
		zap.Int("duration", duration),
		zap.Strings("roles", sortedKeys(res.Streams)),
		zap.Int("chunks", chunkCount),
		zap.Int("events", len(res.Events)),
	)

	return res
}

// boneItems bakes the transform channels of one bone into stream items.
func (b *Baker) boneItems(animator *model.Animator, partID, duration int) []encoding.StreamItem {
	var items []encoding.StreamItem
	for _, ch := range format.Channels() {
		kfs := animator.CurveKeyframes(ch.String())
		if len(kfs) == 0 {
			continue
		}

		baked := b.curves.BakeChannel(kfs, ch.String())
		segs := curve.Simplify(baked, b.threshold(ch))
		curve.PatchDuration(segs, duration)

		b.log.Debug("baked channel",
			zap.String("bone", animator.Name),
			zap.Stringer("channel", ch),
			zap.Int("segments", len(baked)),
			zap.Int("kept", len(segs)),
		)

		items = append(items, encoding.NewStreamItems(partID, ch, segs)...)
	}

	return items
}

// threshold returns the squared simplification tolerance of a bone channel.
func (b *Baker) threshold(ch format.ChannelID) float64 {
	var tol float64
	switch ch {
	case format.ChannelRotation:
		tol = b.cfg.rotationTolerance
	case format.ChannelScale:
		tol = b.cfg.scaleTolerance
	default:
		tol = b.cfg.positionTolerance
	}

	return tol * tol
}

// settings reads every configured setting bone as a flag and, when camera
// use is enabled, every camera bone too.
func (b *Baker) settings(anim *model.Animation) Settings {
	s := Settings{
		Flags:   make(map[string]bool, len(b.cfg.settings)),
		Cameras: make(map[string]bool, len(b.cfg.cameras)),
	}

	for _, name := range b.cfg.settings {
		s.Flags[name] = boneActive(anim, name)
	}

	useCamera := s.Flags[SettingUseCamera]
	for key, bone := range b.cfg.cameras {
		s.Cameras[key] = useCamera && boneActive(anim, bone)
	}

	return s
}

// boneActive reports whether any scale key of the named bone reads as on.
func boneActive(anim *model.Animation, bone string) bool {
	animator, ok := anim.Bone(bone)
	if !ok {
		return false
	}

	for _, kf := range animator.CurveKeyframes(format.ChannelNameScale) {
		if curve.IsToggleOn(kf.Value) {
			return true
		}
	}

	return false
}

// events collects the scripts of effect timeline keys, ordered by tick.
func (b *Baker) events(anim *model.Animation) []Event {
	events := []Event{}
	for i := range anim.Animators {
		animator := &anim.Animators[i]
		if !animator.IsEffect() {
			continue
		}

		for _, kf := range animator.Channel(model.ChannelTimeline) {
			events = append(events, Event{Tick: b.curves.Tick(kf.Seconds()), Script: kf.Script()})
		}
	}

	slices.SortStableFunc(events, func(x, y Event) int {
		return cmp.Compare(x.Tick, y.Tick)
	})

	return events
}
