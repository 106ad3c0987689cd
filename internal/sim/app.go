// Package sim runs a frame sequence on the ecs scheduler: a startup greeting,
// a player entity whose sequencer advances every tick, and one gated system
// set per frame action.
package sim

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/plus3/framestep/ecs"
	"github.com/plus3/framestep/sequence"
	"github.com/rs/zerolog"
)

// Status is a snapshot of the player's sequencer.
type Status struct {
	Frame     int
	Frames    int
	Remaining time.Duration
	Hold      time.Duration
	Progress  float64
}

// String renders the status for display.
func (s Status) String() string {
	if s.Frame == sequence.NotStarted {
		return fmt.Sprintf("frame -/%d", s.Frames)
	}
	return fmt.Sprintf("frame %d/%d  %s left of %s", s.Frame, s.Frames, s.Remaining, s.Hold)
}

// App owns the storage and scheduler for one sequence.
type App struct {
	def       *sequence.Definition
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	players   *ecs.View[struct {
		*Player
		*Sequence
	}]
	logger zerolog.Logger
}

// NewRegistry registers the demo's components.
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[CurrentFrame](registry)
	ecs.RegisterComponent[Sequence](registry)
	return registry
}

// New validates def and wires its systems. Messages are written to out.
func New(def *sequence.Definition, out io.Writer, logger zerolog.Logger) (*App, error) {
	if def == nil {
		return nil, fmt.Errorf("sequence definition is required")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	storage := ecs.NewStorage(NewRegistry())
	ecs.NewSingleton(storage, Console{Out: out})

	scheduler := ecs.NewScheduler(storage, ecs.WithLogger(logger))
	if def.Greeting != "" {
		scheduler.AddStartupSystem(&HelloWorldSystem{Message: def.Greeting})
	}
	scheduler.AddStartupSystem(&SetupSystem{Durations: def.FrameDurations()})
	scheduler.Register(&IncrementFrameSystem{logger: logger})

	for _, action := range def.Actions {
		scheduler.AddSystemSet(ecs.NewSystemSet().
			WithRunCriteria(&RunOnFrame{Frame: action.Frame}).
			WithSystem(&FrameActionSystem{Message: action.Message}))
	}

	logger.Info().
		Str("sequence", def.Name).
		Str("source", def.Source).
		Int("frames", len(def.Durations)).
		Int("actions", len(def.Actions)).
		Msg("sequence loaded")

	return &App{
		def:       def,
		storage:   storage,
		scheduler: scheduler,
		players: ecs.NewView[struct {
			*Player
			*Sequence
		}](storage),
		logger: logger,
	}, nil
}

// Tick runs one scheduler update with the given elapsed time.
func (a *App) Tick(dt time.Duration) {
	a.scheduler.Once(dt)
}

// Run ticks at interval until ctx is cancelled.
func (a *App) Run(ctx context.Context, interval time.Duration) {
	a.logger.Info().Dur("tick", interval).Msg("sequence running")
	a.scheduler.Run(ctx, interval)

	stats := a.scheduler.GetStats()
	a.logger.Info().
		Uint64("ticks", stats.Ticks).
		Int64("executions", stats.TotalExecutions).
		Int64("skips", stats.TotalSkips).
		Msg("sequence stopped")
}

// Status reports the first player's sequencer. ok is false before the
// startup stage has spawned it, after it was removed, or when no player
// carries a timer.
func (a *App) Status() (Status, bool) {
	for item := range a.players.Values() {
		timer := item.Sequence.Timer
		if timer == nil {
			continue
		}
		return Status{
			Frame:     timer.Index(),
			Frames:    timer.Len(),
			Remaining: timer.Remaining(),
			Hold:      timer.Current(),
			Progress:  timer.Progress(),
		}, true
	}
	return Status{}, false
}

// Storage exposes the ECS storage.
func (a *App) Storage() *ecs.Storage {
	return a.storage
}

// Stats returns the scheduler statistics.
func (a *App) Stats() *ecs.SchedulerStats {
	return a.scheduler.GetStats()
}
