package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry maps component types to column factories. Each Storage
// owns one, so independent worlds never share registrations.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent makes T usable as a component in storages built from r.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() column {
		return &blockColumn[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory, ok := r.factories[t]
	if !ok {
		panic("component type " + t.String() + " not registered")
	}
	return factory()
}

// column is the type-erased storage for one component type of an archetype.
type column interface {
	append(item any) int
	set(index int, item any) bool
	remove(index int)
	get(index int) any
	has(index int) bool
	indices() iter.Seq[int]
}

const blockSize = 64

// blockColumn stores values of T in fixed-size blocks so pointers handed out
// by get stay valid as the column grows. Removed slots are reused.
type blockColumn[T any] struct {
	blocks [][blockSize]T
	filled [][blockSize]bool
	free   []int
	next   int
}

func unwrap[T any](item any) (T, bool) {
	switch v := item.(type) {
	case T:
		return v, true
	case *T:
		return *v, true
	}
	var zero T
	return zero, false
}

func (c *blockColumn[T]) append(item any) int {
	value, ok := unwrap[T](item)
	if !ok {
		return -1
	}

	var index int
	if n := len(c.free); n > 0 {
		index = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		index = c.next
		c.next++
		if index/blockSize >= len(c.blocks) {
			c.blocks = append(c.blocks, [blockSize]T{})
			c.filled = append(c.filled, [blockSize]bool{})
		}
	}

	c.blocks[index/blockSize][index%blockSize] = value
	c.filled[index/blockSize][index%blockSize] = true
	return index
}

func (c *blockColumn[T]) set(index int, item any) bool {
	value, ok := unwrap[T](item)
	if !ok || !c.has(index) {
		return false
	}
	c.blocks[index/blockSize][index%blockSize] = value
	return true
}

func (c *blockColumn[T]) remove(index int) {
	if !c.has(index) {
		return
	}
	var zero T
	c.blocks[index/blockSize][index%blockSize] = zero
	c.filled[index/blockSize][index%blockSize] = false
	c.free = append(c.free, index)
}

func (c *blockColumn[T]) get(index int) any {
	if !c.has(index) {
		return nil
	}
	return &c.blocks[index/blockSize][index%blockSize]
}

func (c *blockColumn[T]) has(index int) bool {
	if index < 0 || index >= c.next {
		return false
	}
	return c.filled[index/blockSize][index%blockSize]
}

func (c *blockColumn[T]) indices() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.next; i++ {
			if !c.filled[i/blockSize][i%blockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
