package ecs

import "iter"

// Query is a View whose matching archetypes and results are cached. The
// Scheduler calls Execute right before the owning system or run criteria
// runs; Iter, Values, Len and Single read that snapshot.
type Query[T any] struct {
	view    *View[T]
	storage *Storage

	archetypes     []*Archetype
	archetypeCount int

	entities   []EntityId
	components []T
	ready      bool
}

// NewQuery creates a query over storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage, dropping any cached state.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.archetypes = nil
	q.archetypeCount = -1
	q.ready = false
}

// Execute refreshes the snapshot.
func (q *Query[T]) Execute() {
	if n := len(q.storage.order); n != q.archetypeCount {
		q.archetypes = q.archetypes[:0]
		for _, a := range q.storage.order {
			if q.view.matches(a) {
				q.archetypes = append(q.archetypes, a)
			}
		}
		q.archetypeCount = n
	}

	q.entities = q.entities[:0]
	q.components = q.components[:0]
	for _, archetype := range q.archetypes {
		for id, item := range q.view.iterArchetype(archetype) {
			q.entities = append(q.entities, id)
			q.components = append(q.components, item)
		}
	}
	q.ready = true
}

func (q *Query[T]) mustBeReady(method string) {
	if !q.ready {
		panic("Query." + method + "() called before Query.Execute()")
	}
}

// Iter yields the entities matched by the last Execute.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.mustBeReady("Iter")
	return func(yield func(EntityId, T) bool) {
		for i := range q.entities {
			if !yield(q.entities[i], q.components[i]) {
				return
			}
		}
	}
}

// Values yields only the component structs.
func (q *Query[T]) Values() iter.Seq[T] {
	q.mustBeReady("Values")
	return func(yield func(T) bool) {
		for i := range q.components {
			if !yield(q.components[i]) {
				return
			}
		}
	}
}

// Len returns the number of matched entities.
func (q *Query[T]) Len() int {
	q.mustBeReady("Len")
	return len(q.entities)
}

// Single returns the only matched entity. ok is false when zero or more
// than one entity matched.
func (q *Query[T]) Single() (item T, ok bool) {
	q.mustBeReady("Single")
	if len(q.components) != 1 {
		return item, false
	}
	return q.components[0], true
}
