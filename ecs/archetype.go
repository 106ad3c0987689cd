package ecs

import (
	"iter"
	"reflect"
	"slices"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype holds every entity that has exactly the same set of component
// types, one column per type.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
	count   int
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
	}
	for i, typ := range types {
		a.columns[i] = registry.newColumn(typ)
	}
	return a
}

func (a *Archetype) columnOf(t reflect.Type) int {
	return slices.Index(a.types, t)
}

// spawn appends one entity. components must hold exactly one value per
// archetype type; every column hands back the same slot because columns are
// only ever grown and shrunk together.
func (a *Archetype) spawn(components []any) uint32 {
	slot := -1
	for _, comp := range components {
		if idx := a.columnOf(componentType(comp)); idx >= 0 {
			slot = a.columns[idx].append(comp)
		}
	}
	a.count++
	return uint32(slot)
}

func (a *Archetype) component(index uint32, t reflect.Type) any {
	idx := a.columnOf(t)
	if idx < 0 {
		return nil
	}
	return a.columns[idx].get(int(index))
}

func (a *Archetype) remove(index uint32) bool {
	if len(a.columns) == 0 || !a.columns[0].has(int(index)) {
		return false
	}
	for _, c := range a.columns {
		c.remove(int(index))
	}
	a.count--
	return true
}

// HasComponent reports whether entities of this archetype carry t.
func (a *Archetype) HasComponent(t reflect.Type) bool {
	return a.columnOf(t) >= 0
}

// ID returns the archetype's hash identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types, sorted by name.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	return a.count
}

// Iter yields the ID of every live entity.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for index := range a.columns[0].indices() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}
