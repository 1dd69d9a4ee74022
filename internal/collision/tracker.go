package collision

import (
	"bytes"
	"fmt"

	"github.com/arloliu/animbake/errs"
)

// Tracker tracks the content ids of baked animations and detects hash collisions.
// It maintains an id-to-content map for collision detection and an ordered
// list of animation names.
type Tracker struct {
	contents map[string][]byte // Content id → canonical source
	names    map[string]string // Animation name → content id
	order    []string          // Names in first-seen order
	shared   int               // Animations whose content matched an earlier one
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		contents: make(map[string][]byte),
		names:    make(map[string]string),
		order:    make([]string, 0),
	}
}

// Seen reports whether an animation with this name was already tracked.
func (t *Tracker) Seen(name string) bool {
	_, ok := t.names[name]

	return ok
}

// Track records an animation and its content id.
//
// A repeated name rebinds the name to the new id. Two animations with
// identical content share one id and are counted as shared.
//
// Parameters:
//   - name: Animation name
//   - id: Content id derived from content
//   - content: Canonical source the id was computed from
//
// Returns:
//   - error: ErrHashCollision if id is already bound to different content
func (t *Tracker) Track(name, id string, content []byte) error {
	if existing, ok := t.contents[id]; ok {
		if !bytes.Equal(existing, content) {
			return fmt.Errorf("%w: animation %q has id %s", errs.ErrHashCollision, name, id)
		}
		t.shared++
	} else {
		t.contents[id] = content
	}

	if _, ok := t.names[name]; !ok {
		t.order = append(t.order, name)
	}
	t.names[name] = id

	return nil
}

// ID returns the content id currently bound to name.
func (t *Tracker) ID(name string) (string, bool) {
	id, ok := t.names[name]

	return id, ok
}

// Names returns the tracked animation names in first-seen order.
func (t *Tracker) Names() []string {
	return t.order
}

// Count returns the number of distinct tracked names.
func (t *Tracker) Count() int {
	return len(t.order)
}

// Shared returns how many tracked animations reused the content of an earlier one.
func (t *Tracker) Shared() int {
	return t.shared
}

// Reset clears all tracked animations.
// This allows reusing the tracker for another model.
func (t *Tracker) Reset() {
	clear(t.contents)
	clear(t.names)
	t.order = t.order[:0]
	t.shared = 0
}
