package bake

import "encoding/json"

// SettingUseCamera is the setting bone that enables camera tracks.
const SettingUseCamera = "useCamera"

// Result is the baked form of one animation.
type Result struct {
	Name     string                 `json:"name"`
	Hash     string                 `json:"hash"`
	Duration int                    `json:"duration"`
	Settings Settings               `json:"settings"`
	Streams  map[string][]string    `json:"streams"`
	Cameras  map[string]CameraTrack `json:"cameras"`
	Events   []Event                `json:"events"`

	// Parts lists the internal parts animated by this clip, sorted.
	Parts []string `json:"-"`
}

// Settings holds the boolean flags of one animation.
//
// It serializes as a flat object of flags plus a nested "cameras" object.
type Settings struct {
	Flags   map[string]bool
	Cameras map[string]bool
}

// Enabled reports whether the named setting flag is on.
func (s Settings) Enabled(name string) bool {
	return s.Flags[name]
}

// MarshalJSON implements json.Marshaler.
func (s Settings) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Flags)+1)
	for k, v := range s.Flags {
		out[k] = v
	}

	cameras := s.Cameras
	if cameras == nil {
		cameras = map[string]bool{}
	}
	out["cameras"] = cameras

	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Flags = make(map[string]bool, len(raw))
	s.Cameras = map[string]bool{}
	for k, v := range raw {
		if k == "cameras" {
			if err := json.Unmarshal(v, &s.Cameras); err != nil {
				return err
			}

			continue
		}

		var flag bool
		if err := json.Unmarshal(v, &flag); err != nil {
			return err
		}
		s.Flags[k] = flag
	}

	return nil
}

// CameraTrack is the exported motion of one camera bone.
type CameraTrack struct {
	Position []CameraSegment `json:"position,omitempty"`
	Rotation []CameraSegment `json:"rotation,omitempty"`
	Timeline []CameraToggle  `json:"timeline,omitempty"`
}

// IsEmpty reports whether the track carries no channel.
func (t CameraTrack) IsEmpty() bool {
	return t.Position == nil && t.Rotation == nil && t.Timeline == nil
}

// CameraSegment is one camera segment in plain JSON form.
type CameraSegment struct {
	Tick     int        `json:"tick"`
	Duration int        `json:"duration"`
	Value    [3]float64 `json:"value"`
	Delta    [3]float64 `json:"delta"`
	// Interp is the interpolation code: 1 linear, 2 Catmull-Rom, 3 Bezier.
	Interp uint8 `json:"interp"`
	// Catmull holds the four cubic coefficients per axis ("x", "y", "z") of
	// Catmull-Rom segments.
	Catmull map[string][4]float64 `json:"catmull,omitempty"`
}

// CameraToggle switches a camera on or off from a tick.
type CameraToggle struct {
	Tick   int  `json:"tick"`
	Active bool `json:"active"`
}

// Event is a script fired at a tick.
type Event struct {
	Tick   int    `json:"tick"`
	Script string `json:"script"`
}

// Manifest indexes the baked animations of one model.
type Manifest struct {
	// Anims maps animation name to content id.
	Anims map[string]string `json:"anims"`
	// NeededParts maps internal part name to the sorted names of the
	// animations that move it. Unused parts are omitted.
	NeededParts map[string][]string `json:"neededParts"`
	// IDs maps internal part name to part id.
	IDs map[string]int `json:"ids"`
}

// Output is the result of baking a whole model.
type Output struct {
	Results  []*Result
	Manifest Manifest
}
