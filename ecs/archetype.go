package ecs

import (
	"fmt"
	"iter"
	"reflect"
)

// Archetype holds every entity with exactly one set of component types.
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
	for i, t := range types {
		factory := registry.factory(t)
		if factory == nil {
			panic(fmt.Sprintf("component type %s is not registered", t))
		}
		a.columns[i] = factory()
	}
	return a
}

func (a *Archetype) Id() uint32 {
	return a.id
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	return a.count
}

func (a *Archetype) column(t reflect.Type) column {
	for i, ct := range a.types {
		if ct == t {
			return a.columns[i]
		}
	}
	return nil
}

func (a *Archetype) HasComponent(t reflect.Type) bool {
	return a.column(t) != nil
}

func (a *Archetype) spawn(components []any) EntityId {
	index := -1
	for i, t := range a.types {
		for _, c := range components {
			if componentType(c) != t {
				continue
			}
			index = a.columns[i].append(c)
			break
		}
	}
	a.count++
	return NewEntityId(a.id, uint32(index))
}

func (a *Archetype) get(index int, t reflect.Type) any {
	col := a.column(t)
	if col == nil {
		return nil
	}
	return col.get(index)
}

func (a *Archetype) delete(index int) bool {
	if len(a.columns) == 0 || !a.columns[0].live(index) {
		return false
	}
	for _, col := range a.columns {
		col.delete(index)
	}
	a.count--
	return true
}

func (a *Archetype) reset() {
	for _, col := range a.columns {
		col.reset()
	}
	a.count = 0
}

// entities yields the id of every live entity in slot order.
func (a *Archetype) entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for index := range a.columns[0].slots() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}
