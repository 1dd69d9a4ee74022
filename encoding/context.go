package encoding

// Context is the running state threaded through the items of one chunk.
//
// A decoder keeps the same state, which is what allows items to omit the
// composite id, the absolute value or the delta. The zero state (sentinel)
// is PartID -1, Channel -1, Tick 0 and Value (0, 0, 0).
type Context struct {
	// PartID is the part of the previous item, -1 at chunk start.
	PartID int
	// Channel is the channel id of the previous item, -1 at chunk start.
	Channel int
	// Tick is the absolute tick of the previous item in this context, the
	// baseline of the next tick delta. It resets to 0 on a context switch.
	Tick int
	// Value is the reconstructed quantized value: previous value plus previous delta.
	Value [3]int64
}

// NewContext returns the sentinel context used at stream start and at every chunk boundary.
func NewContext() Context {
	return Context{PartID: -1, Channel: -1}
}

// Matches reports whether an item of partID and channel continues this context.
func (c Context) Matches(partID, channel int) bool {
	return c.PartID == partID && c.Channel == channel
}
