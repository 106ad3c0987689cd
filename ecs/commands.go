package ecs

import "github.com/kamstrup/intmap"

// Commands buffers structural changes made by systems. The Scheduler
// flushes the buffer at the end of each stage so queries never observe a
// half-applied change.
type Commands struct {
	spawns  [][]any
	inserts []insertCommand
	deletes []EntityId
	defers  []func()
}

type insertCommand struct {
	entity    EntityId
	component any
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues a new entity with components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Insert queues setting component on entity.
func (c *Commands) Insert(entity EntityId, component any) {
	c.inserts = append(c.inserts, insertCommand{entity: entity, component: component})
}

// Delete queues removal of entity.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Defer queues fn to run after all structural changes are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.inserts) + len(c.deletes) + len(c.defers)
}

// Flush applies deletes, then inserts on surviving entities, then spawns,
// then deferred functions, and empties the buffer.
func (c *Commands) Flush(storage *Storage) {
	deleted := intmap.New[EntityId, struct{}](len(c.deletes) + 1)
	for _, id := range c.deletes {
		storage.Delete(id)
		deleted.Put(id, struct{}{})
	}

	for _, cmd := range c.inserts {
		if _, gone := deleted.Get(cmd.entity); gone {
			continue
		}
		storage.Insert(cmd.entity, cmd.component)
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.inserts = c.inserts[:0]
	c.deletes = c.deletes[:0]
	c.defers = c.defers[:0]
}
