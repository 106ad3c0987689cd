package sequence

import "time"

type gatedAction struct {
	gate   *FrameGate
	action func()
}

// Dispatcher runs per-frame actions on frame entry. Actions are evaluated in
// the order they were added.
type Dispatcher struct {
	actions []gatedAction
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// On registers action to run whenever frame becomes active.
func (d *Dispatcher) On(frame int, action func()) *Dispatcher {
	d.actions = append(d.actions, gatedAction{
		gate:   NewFrameGate(frame),
		action: action,
	})
	return d
}

// Dispatch checks every gate against index and runs the actions whose gate
// fired. Every gate observes index, fired or not. Returns the number of
// actions run.
func (d *Dispatcher) Dispatch(index int) int {
	fired := 0
	for _, ga := range d.actions {
		if ga.gate.Check(index) {
			ga.action()
			fired++
		}
	}
	return fired
}

// Driver advances one sequencer and dispatches its frame actions.
type Driver struct {
	Sequencer  *Sequencer
	Dispatcher *Dispatcher
}

// NewDriver pairs a sequencer with a dispatcher.
func NewDriver(s *Sequencer, d *Dispatcher) *Driver {
	return &Driver{Sequencer: s, Dispatcher: d}
}

// Tick advances the sequencer by elapsed, then dispatches against the
// resulting index. A nil sequencer makes the tick a no-op; a nil dispatcher
// only advances.
func (d *Driver) Tick(elapsed time.Duration) int {
	if d.Sequencer == nil {
		return 0
	}
	d.Sequencer.Advance(elapsed)
	if d.Dispatcher == nil {
		return 0
	}
	return d.Dispatcher.Dispatch(d.Sequencer.Index())
}
