package ecs

import "time"

// UpdateFrame is handed to every system and run criteria during one
// scheduler tick.
type UpdateFrame struct {
	Stage Stage
	// Tick counts Once calls, starting at 1.
	Tick      uint64
	Delta     time.Duration
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(tick uint64, dt time.Duration, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		Tick:      tick,
		Delta:     dt,
		DeltaTime: dt.Seconds(),
		Commands:  newCommands(),
		Storage:   storage,
	}
}
