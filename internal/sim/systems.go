package sim

import (
	"fmt"
	"time"

	"github.com/plus3/framestep/ecs"
	"github.com/plus3/framestep/sequence"
	"github.com/rs/zerolog"
)

func printLine(console *Console, msg string) {
	if console == nil || console.Out == nil {
		return
	}
	fmt.Fprintln(console.Out, msg)
}

// HelloWorldSystem prints Message once as a startup system.
type HelloWorldSystem struct {
	Console ecs.Singleton[Console]
	Message string
}

func (s *HelloWorldSystem) Execute(*ecs.UpdateFrame) {
	printLine(s.Console.Get(), s.Message)
}

// SetupSystem spawns the player entity with a fresh sequencer.
type SetupSystem struct {
	Durations []time.Duration
}

func (s *SetupSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Spawn(
		Player{},
		CurrentFrame{Index: sequence.NotStarted},
		Sequence{Timer: sequence.MustNew(s.Durations...)},
	)
}

// IncrementFrameSystem advances every sequencer by the frame delta and
// copies its index into CurrentFrame. Sequences without a timer are skipped.
type IncrementFrameSystem struct {
	Sequences ecs.Query[struct {
		*CurrentFrame
		*Sequence
	}]

	logger zerolog.Logger
}

func (s *IncrementFrameSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Sequences.Values() {
		if item.Sequence.Timer == nil {
			continue
		}
		if !item.Sequence.Timer.Advance(frame.Delta) {
			continue
		}
		item.CurrentFrame.Index = item.Sequence.Timer.Index()

		s.logger.Debug().
			Int("frame", item.CurrentFrame.Index).
			Dur("hold", item.Sequence.Timer.Current()).
			Uint64("tick", frame.Tick).
			Msg("frame advanced")
	}
}

// RunOnFrame lets its set run on the tick the player enters Frame. Without
// exactly one player it answers no and its gate observes nothing.
type RunOnFrame struct {
	Frame   int
	Players ecs.Query[struct {
		*Player
		*CurrentFrame
	}]

	gate *sequence.FrameGate
}

func (c *RunOnFrame) ShouldRun(*ecs.UpdateFrame) bool {
	if c.gate == nil {
		c.gate = sequence.NewFrameGate(c.Frame)
	}

	player, ok := c.Players.Single()
	if !ok {
		return false
	}
	return c.gate.Check(player.CurrentFrame.Index)
}

// FrameActionSystem prints Message.
type FrameActionSystem struct {
	Console ecs.Singleton[Console]
	Message string
}

func (s *FrameActionSystem) Execute(*ecs.UpdateFrame) {
	printLine(s.Console.Get(), s.Message)
}
