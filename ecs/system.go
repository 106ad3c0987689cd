package ecs

// System represents a behavior that operates on entities with specific components.
// User-defined systems should implement this interface and can include Query and
// Singleton fields, which the Scheduler binds on registration, as well as custom
// state fields that persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(frame *UpdateFrame)

// Execute calls f.
func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}

// RunCriteria decides, once per frame, whether a SystemSet runs. Like systems,
// criteria may declare Query and Singleton fields and keep state in their
// other fields between frames.
type RunCriteria interface {
	ShouldRun(frame *UpdateFrame) bool
}

// RunCriteriaFunc adapts a plain function to RunCriteria.
type RunCriteriaFunc func(frame *UpdateFrame) bool

// ShouldRun calls f.
func (f RunCriteriaFunc) ShouldRun(frame *UpdateFrame) bool {
	return f(frame)
}

// SystemSet groups systems behind a shared RunCriteria. A set without
// criteria always runs.
type SystemSet struct {
	criteria RunCriteria
	systems  []System
}

// NewSystemSet creates an empty set.
func NewSystemSet() *SystemSet {
	return &SystemSet{}
}

// WithRunCriteria sets the criteria evaluated before the set's systems.
func (s *SystemSet) WithRunCriteria(criteria RunCriteria) *SystemSet {
	s.criteria = criteria
	return s
}

// WithSystem appends a system to the set.
func (s *SystemSet) WithSystem(system System) *SystemSet {
	s.systems = append(s.systems, system)
	return s
}
