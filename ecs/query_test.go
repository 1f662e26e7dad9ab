package ecs_test

import (
	"testing"

	"github.com/plus3/pentis/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryMatchesArchetypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	moving := storage.Spawn(Cell{X: 1}, Velocity{DY: -1})
	storage.Spawn(Cell{X: 2})
	storage.Spawn(Label("no cell"))

	cells := ecs.NewQuery[struct{ *Cell }](storage)
	falling := ecs.NewQuery[struct {
		ecs.EntityId
		*Cell
		*Velocity
	}](storage)
	cells.Execute()
	falling.Execute()

	assert.Equal(t, 2, cells.Len())
	require.Equal(t, 1, falling.Len())

	row, ok := falling.First()
	require.True(t, ok)
	assert.Equal(t, moving, row.EntityId)
	assert.Equal(t, 1, row.Cell.X)
	assert.Equal(t, -1, row.Velocity.DY)

	for id, r := range falling.Iter() {
		assert.Equal(t, moving, id)
		r.Cell.Y += r.Velocity.DY
	}
	assert.Equal(t, -1, ecs.ReadComponent[Cell](storage, moving).Y)
}

func TestQueryIsSnapshotUntilExecute(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	q := ecs.NewQuery[struct{ *Label }](storage)

	assert.Panics(t, func() { q.Len() })

	q.Execute()
	_, ok := q.First()
	assert.False(t, ok)

	storage.Spawn(Label("late"))
	assert.Equal(t, 0, q.Len())

	q.Execute()
	var labels []Label
	for row := range q.Values() {
		labels = append(labels, *row.Label)
	}
	assert.Equal(t, []Label{"late"}, labels)
}

func TestQueryRejectsValueFields(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	assert.Panics(t, func() { ecs.NewQuery[struct{ Cell }](storage) })
	assert.Panics(t, func() { ecs.NewQuery[Cell](storage) })
}

func TestSingleton(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var handle ecs.Singleton[Score]
	handle.Init(storage)
	assert.False(t, handle.Exists())
	assert.Nil(t, handle.Get())

	created := ecs.NewSingleton(storage, Score{Value: 1})
	require.True(t, handle.Exists())
	assert.Same(t, created.Get(), handle.Get())

	again := ecs.NewSingleton(storage, Score{Value: 99})
	assert.Equal(t, 1, again.Get().Value, "an existing singleton is not replaced by the initializer")

	ecs.AddSingleton(storage, Score{Value: 5})
	assert.Equal(t, 5, handle.Get().Value)
}

func TestCommandsFlushOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	old := storage.Spawn(Label("old"))

	cmds := ecs.NewCommands()
	cmds.Spawn(Label("new"))
	cmds.Delete(old)
	var ran []string
	cmds.Defer(func() { ran = append(ran, "a") })
	cmds.Defer(func() { ran = append(ran, "b") })

	assert.True(t, storage.Alive(old))
	cmds.Flush(storage)
	assert.False(t, storage.Alive(old))
	assert.Equal(t, 1, storage.Len())
	assert.Empty(t, ran, "flush leaves deferred functions queued")

	cmds.RunDeferred()
	cmds.RunDeferred()
	assert.Equal(t, []string{"a", "b"}, ran)
}
