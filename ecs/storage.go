package ecs

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Storage owns the entities of one world, grouped by archetype, and its
// singletons.
type Storage struct {
	registry    *ComponentRegistry
	archetypes  []*Archetype
	bySignature map[string]*Archetype
	singletons  map[reflect.Type]any
}

func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:    registry,
		bySignature: make(map[string]*Archetype),
		singletons:  make(map[reflect.Type]any),
	}
}

// Spawn creates an entity from the given components, passed by value or by
// pointer. Each component type may appear once.
func (s *Storage) Spawn(components ...any) EntityId {
	return s.archetypeFor(componentTypes(components)).spawn(components)
}

// Delete removes the entity and reports whether it was alive.
func (s *Storage) Delete(id EntityId) bool {
	a := s.archetype(id.ArchetypeId())
	if a == nil {
		return false
	}
	return a.delete(int(id.Index()))
}

func (s *Storage) Alive(id EntityId) bool {
	a := s.archetype(id.ArchetypeId())
	return a != nil && len(a.columns) > 0 && a.columns[0].live(int(id.Index()))
}

// GetComponent returns a pointer to the entity's component of type t, or nil.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	a := s.archetype(id.ArchetypeId())
	if a == nil {
		return nil
	}
	return a.get(int(id.Index()), t)
}

// Len returns the number of live entities.
func (s *Storage) Len() int {
	n := 0
	for _, a := range s.archetypes {
		n += a.count
	}
	return n
}

// Clear deletes every entity. Singletons are kept.
func (s *Storage) Clear() {
	for _, a := range s.archetypes {
		a.reset()
	}
}

func (s *Storage) archetype(id uint32) *Archetype {
	if id == 0 || int(id) > len(s.archetypes) {
		return nil
	}
	return s.archetypes[id-1]
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	key := signature(types)
	if a, ok := s.bySignature[key]; ok {
		return a
	}
	a := newArchetype(uint32(len(s.archetypes)+1), types, s.registry)
	s.archetypes = append(s.archetypes, a)
	s.bySignature[key] = a
	return a
}

// ReadComponent returns the entity's T component, or nil.
func ReadComponent[T any](s *Storage, id EntityId) *T {
	if c, ok := s.GetComponent(id, reflect.TypeFor[T]()).(*T); ok {
		return c
	}
	return nil
}

func componentType(c any) reflect.Type {
	t := reflect.TypeOf(c)
	if t == nil {
		panic("nil component")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		panic(fmt.Sprintf("component %s must be a value type", t))
	}
	return t
}

func componentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, len(components))
	for i, c := range components {
		types[i] = componentType(c)
	}
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(typeName(a), typeName(b))
	})
	for i := 1; i < len(types); i++ {
		if types[i] == types[i-1] {
			panic(fmt.Sprintf("component %s given twice", types[i]))
		}
	}
	return types
}

func typeName(t reflect.Type) string {
	return t.PkgPath() + "." + t.String()
}

func signature(types []reflect.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = typeName(t)
	}
	return strings.Join(names, "|")
}
