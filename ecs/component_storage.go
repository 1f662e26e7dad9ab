package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry records which component types a Storage may hold. Each
// Storage owns one, so independent worlds never share columns.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent makes T usable as a component. Spawning an unregistered
// type panics.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() column {
		return &blockColumn[T]{}
	}
}

func (r *ComponentRegistry) factory(t reflect.Type) func() column {
	return r.factories[t]
}

// column stores every value of one component type for one archetype. All
// columns of an archetype see the same append and delete sequence, so a
// slot index names the same entity in each of them.
type column interface {
	append(item any) int
	get(index int) any
	delete(index int)
	live(index int) bool
	reset()
	slots() iter.Seq[int]
}

const columnBlockSize = 64

// blockColumn keeps values in fixed-size blocks that are never moved, so a
// pointer handed out by get stays valid until the slot is deleted.
type blockColumn[T any] struct {
	blocks []*[columnBlockSize]T
	filled []*[columnBlockSize]bool
	free   []int
	next   int
}

func (c *blockColumn[T]) append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	index := c.next
	if n := len(c.free); n > 0 {
		index = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		c.next++
		if index/columnBlockSize >= len(c.blocks) {
			c.blocks = append(c.blocks, new([columnBlockSize]T))
			c.filled = append(c.filled, new([columnBlockSize]bool))
		}
	}

	block, slot := index/columnBlockSize, index%columnBlockSize
	c.blocks[block][slot] = value
	c.filled[block][slot] = true
	return index
}

func (c *blockColumn[T]) get(index int) any {
	if !c.live(index) {
		return nil
	}
	return &c.blocks[index/columnBlockSize][index%columnBlockSize]
}

func (c *blockColumn[T]) delete(index int) {
	if !c.live(index) {
		return
	}
	block, slot := index/columnBlockSize, index%columnBlockSize
	var zero T
	c.blocks[block][slot] = zero
	c.filled[block][slot] = false
	c.free = append(c.free, index)
}

func (c *blockColumn[T]) live(index int) bool {
	if index < 0 || index >= c.next {
		return false
	}
	return c.filled[index/columnBlockSize][index%columnBlockSize]
}

func (c *blockColumn[T]) reset() {
	c.blocks, c.filled, c.free, c.next = nil, nil, nil, 0
}

func (c *blockColumn[T]) slots() iter.Seq[int] {
	return func(yield func(int) bool) {
		for index := 0; index < c.next; index++ {
			if c.filled[index/columnBlockSize][index%columnBlockSize] && !yield(index) {
				return
			}
		}
	}
}
