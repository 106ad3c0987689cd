package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View matches entities against a struct of component pointers. Embedded
// fields are required; named fields may be tagged `ecs:"optional"` and are
// left nil when the entity lacks that component. A required marker
// component (an empty struct) acts as a filter.
type View[T any] struct {
	storage  *Storage
	types    []reflect.Type
	optional []bool
	offsets  []uintptr
}

// NewView builds a view over storage. It panics if T is not a struct of
// pointer fields.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = true
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, optional)
		v.offsets = append(v.offsets, field.Offset)
	}
	return v
}

func (v *View[T]) matches(archetype *Archetype) bool {
	for i, t := range v.types {
		if !v.optional[i] && !archetype.HasComponent(t) {
			return false
		}
	}
	return true
}

// columnsFor maps each view field to the archetype column holding it, or -1.
func (v *View[T]) columnsFor(archetype *Archetype) []int {
	cols := make([]int, len(v.types))
	for i, t := range v.types {
		cols[i] = archetype.columnOf(t)
	}
	return cols
}

// fill writes the component pointers of the entity at index into dst.
func (v *View[T]) fill(dst unsafe.Pointer, archetype *Archetype, index int, cols []int) bool {
	for i, col := range cols {
		field := unsafe.Add(dst, v.offsets[i])

		var component any
		if col >= 0 {
			component = archetype.columns[col].get(index)
		}
		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(field) = nil
			continue
		}
		*(*unsafe.Pointer)(field) = dataPointer(component)
	}
	return true
}

// Fill populates dst for entity id. It returns false if the entity is gone
// or lacks a required component.
func (v *View[T]) Fill(id EntityId, dst *T) bool {
	archetype, ok := v.storage.archetypes.Get(id.ArchetypeId())
	if !ok || !v.matches(archetype) {
		return false
	}
	return v.fill(unsafe.Pointer(dst), archetype, int(id.Index()), v.columnsFor(archetype))
}

// Get returns the populated struct for id, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		cols := v.columnsFor(archetype)
		var result T
		for id := range archetype.Iter() {
			if !v.fill(unsafe.Pointer(&result), archetype, int(id.Index()), cols) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Iter yields every matching entity with its populated struct, archetype by
// archetype in creation order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.order {
			if !v.matches(archetype) {
				continue
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values is Iter without the entity IDs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}
