package sequence

import "math"

// unset never equals a frame index nor NotStarted.
const unset = math.MinInt

// FrameGate reports when the active frame has just become its watched frame.
// It fires once per contiguous run of ticks spent on that frame and re-arms
// as soon as the index moves elsewhere.
type FrameGate struct {
	watched  int
	lastSeen int
}

// NewFrameGate creates a gate watching frame n.
func NewFrameGate(n int) *FrameGate {
	return &FrameGate{watched: n, lastSeen: unset}
}

// Check records index and reports whether it is a fresh entry into the
// watched frame.
func (g *FrameGate) Check(index int) bool {
	fire := index == g.watched && index != g.lastSeen
	g.lastSeen = index
	return fire
}

// Watched returns the frame this gate is keyed to.
func (g *FrameGate) Watched() int {
	return g.watched
}
