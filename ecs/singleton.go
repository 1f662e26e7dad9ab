package ecs

import "reflect"

// Singleton gives systems access to the one value of type T held by a
// Storage, outside any entity. Declared as a system field it is initialized
// by the Scheduler. The pointer returned by Get stays valid for the life of
// the storage.
type Singleton[T any] struct {
	storage *Storage
	value   *T
}

// NewSingleton returns a handle to T, creating it from the optional
// initializer (or the zero value) when the storage has none yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if _, ok := storage.singletons[reflect.TypeFor[T]()]; !ok {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		AddSingleton(storage, value)
	}
	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.value = nil
}

// Get returns the value, or nil when the storage has none.
func (s *Singleton[T]) Get() *T {
	if s.value == nil && s.storage != nil {
		s.value, _ = s.storage.singletons[reflect.TypeFor[T]()].(*T)
	}
	return s.value
}

func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

// AddSingleton stores value as the storage's T. An existing T is overwritten
// in place, so handles already holding it see the new value.
func AddSingleton[T any](storage *Storage, value T) *T {
	t := reflect.TypeFor[T]()
	if ptr, ok := storage.singletons[t].(*T); ok {
		*ptr = value
		return ptr
	}
	ptr := new(T)
	*ptr = value
	storage.singletons[t] = ptr
	return ptr
}
