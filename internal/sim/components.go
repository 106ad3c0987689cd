package sim

import (
	"io"

	"github.com/plus3/framestep/sequence"
)

// Player marks the entity whose frame drives the frame actions.
type Player struct{}

// CurrentFrame mirrors the sequencer index, sequence.NotStarted until the
// first frame fires.
type CurrentFrame struct {
	Index int
}

// Sequence carries the entity's frame timer.
type Sequence struct {
	Timer *sequence.Sequencer
}

// Console is the singleton output sink for printed messages.
type Console struct {
	Out io.Writer
}
