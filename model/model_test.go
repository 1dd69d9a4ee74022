package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/animbake/curve"
	"github.com/arloliu/animbake/errs"
	"github.com/arloliu/animbake/format"
)

const sampleDoc = `{
  "meta": {"format_version": "4.10"},
  "animations": [
    {
      "name": "wave",
      "length": 1,
      "animators": {
        "b-uuid": {
          "name": "RightArm",
          "type": "bone",
          "keyframes": [
            {"channel": "rotation", "time": 1, "interpolation": "linear", "data_points": [{"x": "-90", "y": 0, "z": 0}]},
            {"channel": "rotation", "time": "0.5", "interpolation": "catmullrom", "data_points": [{"x": -45.5, "y": "abc", "z": null}]},
            {"channel": "position", "time": 0, "data_points": []}
          ]
        },
        "a-uuid": {
          "name": "Head",
          "type": "bone",
          "keyframes": [
            {"channel": "scale", "time": 2.25, "interpolation": "bezier",
             "data_points": [{"x": 1, "y": 1, "z": 1, "x_left_time": -0.1, "x_left_value": 0.5, "x_right_time": 0.2, "x_right_value": "0.25"}]}
          ]
        },
        "effects": {
          "name": "Effects",
          "type": "effect",
          "keyframes": [
            {"channel": "timeline", "time": 9, "data_points": [{"script": "play_sound('wave')"}]},
            {"channel": "sound", "time": 3, "data_points": [{"effect": "x"}]}
          ]
        }
      }
    },
    {"name": "empty"}
  ]
}`

func loadSample(t *testing.T) *Model {
	t.Helper()

	m, err := Load(strings.NewReader(sampleDoc))
	require.NoError(t, err)
	require.Len(t, m.Animations, 2)

	return m
}

func TestLoad_AnimatorsSortedByID(t *testing.T) {
	m := loadSample(t)
	wave := m.Animations[0]

	require.Equal(t, "wave", wave.Name)
	require.Len(t, wave.Animators, 3)
	require.Equal(t, []string{"a-uuid", "b-uuid", "effects"}, []string{wave.Animators[0].ID, wave.Animators[1].ID, wave.Animators[2].ID})
	require.Equal(t, "Head", wave.Animators[0].Name)
	require.True(t, wave.Animators[2].IsEffect())
	require.False(t, wave.Animators[0].IsEffect())

	empty := m.Animations[1]
	require.Equal(t, "empty", empty.Name)
	require.Empty(t, empty.Animators)
	require.Zero(t, empty.MaxTime())
}

func TestLoad_KeyframeCoercion(t *testing.T) {
	m := loadSample(t)
	arm, ok := m.Animations[0].Bone("RightArm")
	require.True(t, ok)

	rot := arm.CurveKeyframes(format.ChannelNameRotation)
	require.Len(t, rot, 2)
	require.Equal(t, 1.0, rot[0].Time)
	require.Equal(t, curve.Vec3{-90, 0, 0}, rot[0].Value)
	require.Equal(t, format.InterpLinear, rot[0].Interp)

	require.Equal(t, 0.5, rot[1].Time)
	require.Equal(t, curve.Vec3{-45.5, 0, 0}, rot[1].Value)
	require.Equal(t, format.InterpCatmullRom, rot[1].Interp)

	pos := arm.CurveKeyframes(format.ChannelNamePosition)
	require.Len(t, pos, 1)
	require.Equal(t, curve.Vec3{}, pos[0].Value, "missing data points read as zero")
	require.Equal(t, format.InterpLinear, pos[0].Interp)

	require.Nil(t, arm.CurveKeyframes(format.ChannelNameScale))

	head, ok := m.Animations[0].Bone("Head")
	require.True(t, ok)
	scale := head.CurveKeyframes(format.ChannelNameScale)
	require.Len(t, scale, 1)
	require.Equal(t, format.InterpBezier, scale[0].Interp)
	require.Equal(t, curve.Handle{Time: -0.1, Value: 0.5}, scale[0].Left[0])
	require.Equal(t, curve.Handle{Time: 0.2, Value: 0.25}, scale[0].Right[0])
	require.Equal(t, curve.Handle{}, scale[0].Left[1])
}

func TestAnimation_MaxTimeSkipsEffects(t *testing.T) {
	m := loadSample(t)
	require.Equal(t, 2.25, m.Animations[0].MaxTime())

	_, ok := m.Animations[0].Bone("Effects")
	require.False(t, ok, "effect tracks are not bones")
}

func TestAnimation_BoneLastWins(t *testing.T) {
	m, err := Load(strings.NewReader(`{"animations": [{"name": "dup", "animators": {
	  "a": {"name": "Head", "type": "bone", "keyframes": [{"channel": "position", "time": 0}]},
	  "b": {"name": "Body", "type": "bone"},
	  "c": {"name": "Head", "type": "bone", "keyframes": [{"channel": "position", "time": 1}]},
	  "d": {"name": "Head", "type": "effect"}
	}}]}`))
	require.NoError(t, err)
	anim := m.Animations[0]

	head, ok := anim.Bone("Head")
	require.True(t, ok)
	require.Equal(t, "c", head.ID)

	bones := anim.Bones()
	require.Len(t, bones, 2)
	require.Equal(t, "b", bones[0].ID)
	require.Equal(t, "c", bones[1].ID)
}

func TestKeyframe_Script(t *testing.T) {
	m := loadSample(t)
	effects := m.Animations[0].Animators[2]

	timeline := effects.Channel(ChannelTimeline)
	require.Len(t, timeline, 1)
	require.Equal(t, "play_sound('wave')", timeline[0].Script())
	require.Equal(t, 9.0, timeline[0].Seconds())

	require.Empty(t, Keyframe{}.Script())
}

func TestLoad_CanonicalJSON(t *testing.T) {
	m := loadSample(t)

	require.Equal(t, `{"name":"empty"}`, string(m.Animations[1].Canonical))

	canonical := string(m.Animations[0].Canonical)
	require.True(t, json.Valid(m.Animations[0].Canonical))
	require.True(t, strings.HasPrefix(canonical, `{"animators":{"a-uuid":`), canonical)
	require.Contains(t, canonical, `"time":2.25`)
	require.Contains(t, canonical, `"length":1,`)
	require.NotContains(t, canonical, " ")

	reordered := `{"animations":[{"animators":{},"name":"wave2"},{"name":"wave2","animators":{}}]}`
	m2, err := Load(strings.NewReader(reordered))
	require.NoError(t, err)
	require.Equal(t, m2.Animations[0].Canonical, m2.Animations[1].Canonical)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `animations`},
		{"truncated", `{"animations": [`},
		{"animation not an object", `{"animations": [42]}`},
		{"keyframes not a list", `{"animations": [{"animators": {"a": {"keyframes": 1}}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.ErrorIs(t, err, errs.ErrModelDecode)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.bbmodel")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o600))

	m, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, m.Animations, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.bbmodel"))
	require.Error(t, err)
}
