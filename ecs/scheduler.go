package ecs

import (
	"context"
	"reflect"
	"time"

	"github.com/rs/zerolog"
)

// Stage identifies when a group of systems runs.
type Stage int

const (
	// StageStartup runs once, on the first call to Once.
	StageStartup Stage = iota
	// StageUpdate runs on every call to Once.
	StageUpdate
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageStartup:
		return "Startup"
	case StageUpdate:
		return "Update"
	default:
		return "Unknown"
	}
}

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Ticks           uint64
	TotalExecutions int64
	TotalSkips      int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Stage          Stage
	ExecutionCount int64
	// SkipCount counts frames on which the system's run criteria said no.
	SkipCount     int64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
}

type systemStatsInternal struct {
	name           string
	stage          Stage
	executionCount int64
	skipCount      int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (st *systemStatsInternal) record(d time.Duration) {
	st.executionCount++
	st.lastDuration = d
	st.totalDuration += d
	st.minDuration = min(st.minDuration, d)
	st.maxDuration = max(st.maxDuration, d)
}

type executor interface {
	Execute()
}

type storageBinder interface {
	Init(storage *Storage)
}

type scheduledSystem struct {
	system  System
	queries []executor
	stats   *systemStatsInternal
}

type scheduledSet struct {
	name            string
	criteria        RunCriteria
	criteriaQueries []executor
	systems         []*scheduledSystem
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for registration and skip diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// Scheduler runs systems in registration order, stage by stage.
type Scheduler struct {
	storage *Storage
	logger  zerolog.Logger

	startup []*scheduledSet
	update  []*scheduledSet
	stats   []*systemStatsInternal

	started bool
	ticks   uint64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage, opts ...Option) *Scheduler {
	s := &Scheduler{
		storage: storage,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a system to the update stage.
func (s *Scheduler) Register(system System) {
	s.update = append(s.update, s.newSet(StageUpdate, nil, system))
}

// AddStartupSystem adds a system that runs once, before the first update.
func (s *Scheduler) AddStartupSystem(system System) {
	s.startup = append(s.startup, s.newSet(StageStartup, nil, system))
}

// AddSystemSet adds a criteria-guarded group of systems to the update stage.
func (s *Scheduler) AddSystemSet(set *SystemSet) {
	s.update = append(s.update, s.newSet(StageUpdate, set.criteria, set.systems...))
}

func (s *Scheduler) newSet(stage Stage, criteria RunCriteria, systems ...System) *scheduledSet {
	set := &scheduledSet{criteria: criteria}
	if criteria != nil {
		set.name = typeName(criteria)
		set.criteriaQueries = s.bind(criteria)
	}

	for _, system := range systems {
		stats := &systemStatsInternal{
			name:        typeName(system),
			stage:       stage,
			minDuration: time.Duration(1<<63 - 1),
		}
		s.stats = append(s.stats, stats)
		set.systems = append(set.systems, &scheduledSystem{
			system:  system,
			queries: s.bind(system),
			stats:   stats,
		})

		s.logger.Debug().
			Str("system", stats.name).
			Str("stage", stage.String()).
			Str("criteria", set.name).
			Msg("system registered")
	}
	return set
}

// bind initializes every exported Query and Singleton field of target and
// returns the queries to execute before target runs.
func (s *Scheduler) bind(target any) []executor {
	value := reflect.ValueOf(target)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}

	var queries []executor
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		binder, ok := field.Addr().Interface().(storageBinder)
		if !ok {
			continue
		}
		binder.Init(s.storage)

		if q, ok := binder.(executor); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}

// Once runs one tick with the given delta. The first call runs the startup
// stage before the update stage. Commands are flushed after each stage.
func (s *Scheduler) Once(dt time.Duration) {
	s.ticks++
	frame := newUpdateFrame(s.ticks, dt, s.storage)

	if !s.started {
		s.started = true
		s.runStage(frame, StageStartup, s.startup)
	}
	s.runStage(frame, StageUpdate, s.update)
}

func (s *Scheduler) runStage(frame *UpdateFrame, stage Stage, sets []*scheduledSet) {
	frame.Stage = stage
	for _, set := range sets {
		if set.criteria != nil && !s.evaluate(frame, set) {
			continue
		}
		for _, sys := range set.systems {
			for _, q := range sys.queries {
				q.Execute()
			}

			start := time.Now()
			sys.system.Execute(frame)
			sys.stats.record(time.Since(start))
		}
	}
	frame.Commands.Flush(s.storage)
}

func (s *Scheduler) evaluate(frame *UpdateFrame, set *scheduledSet) bool {
	for _, q := range set.criteriaQueries {
		q.Execute()
	}
	if set.criteria.ShouldRun(frame) {
		return true
	}

	for _, sys := range set.systems {
		sys.stats.skipCount++
	}
	s.logger.Trace().
		Str("criteria", set.name).
		Uint64("tick", frame.Tick).
		Msg("system set skipped")
	return false
}

// Run executes ticks at the given interval until the context is cancelled.
// Each tick's delta is the wall time since the previous one.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.stats),
		Ticks:       s.ticks,
		Systems:     make([]SystemStats, len(s.stats)),
	}

	for i, st := range s.stats {
		var avg time.Duration
		if st.executionCount > 0 {
			avg = st.totalDuration / time.Duration(st.executionCount)
		}
		stats.Systems[i] = SystemStats{
			Name:           st.name,
			Stage:          st.stage,
			ExecutionCount: st.executionCount,
			SkipCount:      st.skipCount,
			MinDuration:    st.minDuration,
			MaxDuration:    st.maxDuration,
			AvgDuration:    avg,
			LastDuration:   st.lastDuration,
			TotalDuration:  st.totalDuration,
		}
		stats.TotalExecutions += st.executionCount
		stats.TotalSkips += st.skipCount
	}
	return stats
}
