package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// queryField is one field of a query row: either a component pointer or the
// entity id.
type queryField struct {
	typ      reflect.Type
	offset   uintptr
	entityId bool
}

// Query selects every entity that has all the components named by T. T must
// be a struct whose fields are component pointers, plus at most one EntityId:
//
//	ecs.Query[struct {
//		ecs.EntityId
//		*Falling
//	}]
//
// Systems declare queries as exported fields and the Scheduler initializes
// and executes them before each run. Results are a snapshot: structural
// changes show up on the next Execute, component writes through the row
// pointers are immediate.
type Query[T any] struct {
	storage  *Storage
	fields   []queryField
	ids      []EntityId
	rows     []T
	executed bool
}

func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

func (q *Query[T]) Init(storage *Storage) {
	q.storage = storage
	q.fields = queryLayout(reflect.TypeFor[T]())
	q.ids, q.rows = nil, nil
	q.executed = false
}

func queryLayout(t reflect.Type) []queryField {
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("query row %s must be a struct", t))
	}
	fields := make([]queryField, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		switch {
		case f.Type == entityIdType:
			fields = append(fields, queryField{offset: f.Offset, entityId: true})
		case f.Type.Kind() == reflect.Pointer:
			fields = append(fields, queryField{typ: f.Type.Elem(), offset: f.Offset})
		default:
			panic(fmt.Sprintf("query field %s must be a component pointer or EntityId", f.Name))
		}
	}
	return fields
}

func (q *Query[T]) matches(a *Archetype) bool {
	for _, f := range q.fields {
		if !f.entityId && !a.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

// Execute refreshes the results from the storage.
func (q *Query[T]) Execute() {
	q.ids, q.rows = q.ids[:0], q.rows[:0]
	for _, a := range q.storage.archetypes {
		if a.count == 0 || !q.matches(a) {
			continue
		}
		cols := make([]column, len(q.fields))
		for i, f := range q.fields {
			if !f.entityId {
				cols[i] = a.column(f.typ)
			}
		}
		for id := range a.entities() {
			var row T
			base := unsafe.Pointer(&row)
			for i, f := range q.fields {
				ptr := unsafe.Add(base, f.offset)
				if f.entityId {
					*(*EntityId)(ptr) = id
					continue
				}
				*(*unsafe.Pointer)(ptr) = pointerOf(cols[i].get(int(id.Index())))
			}
			q.ids = append(q.ids, id)
			q.rows = append(q.rows, row)
		}
	}
	q.executed = true
}

func (q *Query[T]) mustBeExecuted() {
	if !q.executed {
		panic("query used before Execute")
	}
}

// Iter yields each matching entity with its row.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.mustBeExecuted()
	return func(yield func(EntityId, T) bool) {
		for i, row := range q.rows {
			if !yield(q.ids[i], row) {
				return
			}
		}
	}
}

func (q *Query[T]) Values() iter.Seq[T] {
	q.mustBeExecuted()
	return func(yield func(T) bool) {
		for _, row := range q.rows {
			if !yield(row) {
				return
			}
		}
	}
}

func (q *Query[T]) Len() int {
	q.mustBeExecuted()
	return len(q.rows)
}

// First returns the first matching row, for queries that expect at most one.
func (q *Query[T]) First() (T, bool) {
	q.mustBeExecuted()
	if len(q.rows) == 0 {
		var zero T
		return zero, false
	}
	return q.rows[0], true
}
