package bake

import (
	"cmp"
	"maps"
	"slices"
)

// PartMap maps a role (a rig in the scene) to its internal part names and,
// for each part, the bone that drives it.
type PartMap map[string]map[string]string

// DefaultPartMap returns the two-player rig mapping.
func DefaultPartMap() PartMap {
	return PartMap{
		"player1": {
			"root": "root", "head": "Head", "body": "Body",
			"leftArm": "LeftArm", "rightArm": "RightArm",
			"leftLeg": "LeftLeg", "rightLeg": "RightLeg",
		},
		"player2": {
			"root": "P2root", "head": "P2Head", "body": "P2Body",
			"leftArm": "P2LeftArm", "rightArm": "P2RightArm",
			"leftLeg": "P2LeftLeg", "rightLeg": "P2RightLeg",
		},
	}
}

// DefaultSettings returns the setting bones read as boolean flags.
func DefaultSettings() []string {
	return []string{"overrideVanilla", "lockMovement", SettingUseCamera}
}

// DefaultCameras returns the camera key to camera bone mapping.
func DefaultCameras() map[string]string {
	return map[string]string{
		"shared":  "sharedCamera",
		"player1": "P1Camera",
		"player2": "P2Camera",
	}
}

// Clone returns a deep copy of m.
func (m PartMap) Clone() PartMap {
	if m == nil {
		return nil
	}

	out := make(PartMap, len(m))
	for role, parts := range m {
		out[role] = maps.Clone(parts)
	}

	return out
}

// Roles returns the role names in sorted order.
func (m PartMap) Roles() []string {
	return sortedKeys(m)
}

// PartIDs numbers every internal part name from 1 in sorted order.
//
// Names shared by several roles get one id.
func (m PartMap) PartIDs() map[string]int {
	seen := make(map[string]struct{})
	for _, parts := range m {
		for part := range parts {
			seen[part] = struct{}{}
		}
	}

	ids := make(map[string]int, len(seen))
	for i, part := range sortedKeys(seen) {
		ids[part] = i + 1
	}

	return ids
}

// BoneRef locates a bone in the part map.
type BoneRef struct {
	Role string
	Part string
}

// BoneIndex builds the reverse index from bone name to (role, part).
//
// Roles and parts are visited in sorted order and the first mapping of a bone wins.
func (m PartMap) BoneIndex() map[string]BoneRef {
	index := make(map[string]BoneRef)
	for _, role := range m.Roles() {
		parts := m[role]
		for _, part := range sortedKeys(parts) {
			bone := parts[part]
			if _, ok := index[bone]; !ok {
				index[bone] = BoneRef{Role: role, Part: part}
			}
		}
	}

	return index
}

// sortedKeys returns the keys of m in sorted order.
func sortedKeys[M ~map[K]V, K cmp.Ordered, V any](m M) []K {
	var keys []K
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}
