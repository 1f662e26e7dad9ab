package ecs

// Commands buffers structural changes made by a system. The Scheduler
// applies them after the system returns, so queries never change under an
// iterating system. Deferred functions run once the frame has finished and
// the scheduler's lock is released.
type Commands struct {
	deletes []EntityId
	spawns  [][]any
	defers  []func()
}

func NewCommands() *Commands {
	return &Commands{}
}

// Spawn queues a new entity.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues the removal of an entity.
func (c *Commands) Delete(id EntityId) {
	c.deletes = append(c.deletes, id)
}

// Defer queues fn to run after the frame.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush applies queued deletes, then spawns, to storage.
func (c *Commands) Flush(storage *Storage) {
	for _, id := range c.deletes {
		storage.Delete(id)
	}
	for _, components := range c.spawns {
		storage.Spawn(components...)
	}
	c.deletes = c.deletes[:0]
	c.spawns = c.spawns[:0]
}

// RunDeferred runs and clears the deferred functions in queue order.
func (c *Commands) RunDeferred() {
	defers := c.defers
	c.defers = nil
	for _, fn := range defers {
		fn()
	}
}
