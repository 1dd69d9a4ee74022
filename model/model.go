package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/arloliu/animbake/curve"
	"github.com/arloliu/animbake/errs"
)

// Animator types and channels with special meaning.
const (
	AnimatorTypeEffect = "effect"
	ChannelTimeline    = "timeline"
)

// Model is the animation content of a source model document.
type Model struct {
	Animations []Animation
}

// Animation is one named clip.
type Animation struct {
	// Name is the clip name.
	Name string
	// Canonical is the clip's source JSON re-encoded with sorted keys and no
	// whitespace. It only changes when the clip's content changes.
	Canonical []byte
	// Animators are ordered by their id in the source document.
	Animators []Animator
}

// Animator is the keyframe track of one bone or of the effect timeline.
type Animator struct {
	ID        string
	Name      string
	Type      string
	Keyframes []Keyframe
}

// Keyframe is one source key with loosely typed fields.
type Keyframe struct {
	Channel       string
	Time          any
	Interpolation string
	// Point is the first data point, nil when the key has none.
	Point map[string]any
}

type rawAnimator struct {
	Name      string        `json:"name"`
	Type      string        `json:"type"`
	Keyframes []rawKeyframe `json:"keyframes"`
}

type rawKeyframe struct {
	Channel       string           `json:"channel"`
	Time          any              `json:"time"`
	Interpolation string           `json:"interpolation"`
	DataPoints    []map[string]any `json:"data_points"`
}

type rawAnimation struct {
	Name      string                 `json:"name"`
	Animators map[string]rawAnimator `json:"animators"`
}

// Load decodes a model document.
//
// Parameters:
//   - r: Reader positioned at the start of the JSON document
//
// Returns:
//   - *Model: Animations in document order
//   - error: ErrModelDecode wrapping the JSON error for malformed input
func Load(r io.Reader) (*Model, error) {
	var doc struct {
		Animations []json.RawMessage `json:"animations"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrModelDecode, err)
	}

	m := &Model{Animations: make([]Animation, 0, len(doc.Animations))}
	for i, raw := range doc.Animations {
		anim, err := parseAnimation(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: animation %d: %w", errs.ErrModelDecode, i, err)
		}
		m.Animations = append(m.Animations, anim)
	}

	return m, nil
}

// LoadFile opens and decodes the model document at path.
func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()

	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return m, nil
}

func parseAnimation(raw json.RawMessage) (Animation, error) {
	var generic any
	if err := decodeNumbers(raw, &generic); err != nil {
		return Animation{}, err
	}
	canonical, err := json.Marshal(generic)
	if err != nil {
		return Animation{}, err
	}

	var ra rawAnimation
	if err := decodeNumbers(raw, &ra); err != nil {
		return Animation{}, err
	}

	anim := Animation{
		Name:      ra.Name,
		Canonical: canonical,
		Animators: make([]Animator, 0, len(ra.Animators)),
	}

	ids := make([]string, 0, len(ra.Animators))
	for id := range ra.Animators {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		src := ra.Animators[id]
		a := Animator{
			ID:        id,
			Name:      src.Name,
			Type:      src.Type,
			Keyframes: make([]Keyframe, 0, len(src.Keyframes)),
		}
		for _, k := range src.Keyframes {
			kf := Keyframe{
				Channel:       k.Channel,
				Time:          k.Time,
				Interpolation: k.Interpolation,
			}
			if len(k.DataPoints) > 0 {
				kf.Point = k.DataPoints[0]
			}
			a.Keyframes = append(a.Keyframes, kf)
		}
		anim.Animators = append(anim.Animators, a)
	}

	return anim, nil
}

// decodeNumbers unmarshals data keeping numbers as json.Number, so integer
// and decimal literals survive re-encoding unchanged.
func decodeNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	return dec.Decode(v)
}

// IsEffect reports whether the animator is the effect track rather than a bone.
func (a *Animator) IsEffect() bool {
	return a.Type == AnimatorTypeEffect
}

// Channel returns the keyframes of one channel in source order.
func (a *Animator) Channel(name string) []Keyframe {
	var kfs []Keyframe
	for _, k := range a.Keyframes {
		if k.Channel == name {
			kfs = append(kfs, k)
		}
	}

	return kfs
}

// CurveKeyframes converts the keyframes of one channel for baking.
func (a *Animator) CurveKeyframes(channel string) []curve.Keyframe {
	src := a.Channel(channel)
	if len(src) == 0 {
		return nil
	}

	kfs := make([]curve.Keyframe, len(src))
	for i := range src {
		kfs[i] = src[i].ToCurve()
	}

	return kfs
}

// MaxTime returns the latest keyframe time in seconds, 0 without keyframes.
func (a *Animator) MaxTime() float64 {
	var maxTime float64
	for _, k := range a.Keyframes {
		maxTime = max(maxTime, k.Seconds())
	}

	return maxTime
}

// Bone returns the non-effect animator with the given name.
//
// When several animators share the name, the last one by animator id wins.
func (a *Animation) Bone(name string) (*Animator, bool) {
	for i := len(a.Animators) - 1; i >= 0; i-- {
		if !a.Animators[i].IsEffect() && a.Animators[i].Name == name {
			return &a.Animators[i], true
		}
	}

	return nil, false
}

// Bones returns one animator per bone name, in animator id order.
//
// Animators shadowed by a later animator of the same name are left out, so
// Bones agrees with Bone.
func (a *Animation) Bones() []*Animator {
	bones := make([]*Animator, 0, len(a.Animators))
	for i := range a.Animators {
		animator := &a.Animators[i]
		if animator.IsEffect() {
			continue
		}
		if winner, _ := a.Bone(animator.Name); winner != animator {
			continue
		}
		bones = append(bones, animator)
	}

	return bones
}

// MaxTime returns the latest keyframe time in seconds over all bone animators.
func (a *Animation) MaxTime() float64 {
	var maxTime float64
	for i := range a.Animators {
		if a.Animators[i].IsEffect() {
			continue
		}
		maxTime = max(maxTime, a.Animators[i].MaxTime())
	}

	return maxTime
}

// Seconds returns the coerced key time.
func (k Keyframe) Seconds() float64 {
	return curve.Float(k.Time)
}

// ToCurve converts the key to a curve.Keyframe.
func (k Keyframe) ToCurve() curve.Keyframe {
	return curve.NewKeyframe(k.Time, k.Interpolation, k.Point)
}

// Script returns the script attached to an effect timeline key, "" when absent.
func (k Keyframe) Script() string {
	s, _ := k.Point["script"].(string)

	return s
}
