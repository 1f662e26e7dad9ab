package ecs_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/plus3/pentis/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fallSystem struct {
	Moving ecs.Query[struct {
		*Cell
		*Velocity
	}]
}

func (s *fallSystem) Execute(frame *ecs.UpdateFrame) {
	for row := range s.Moving.Values() {
		row.Cell.Y += row.Velocity.DY
	}
}

// landSystem strips the velocity from cells that reached the floor by
// replacing the entity.
type landSystem struct {
	Moving ecs.Query[struct {
		ecs.EntityId
		*Cell
		*Velocity
	}]
	Landed ecs.Singleton[Score]
}

func (s *landSystem) Execute(frame *ecs.UpdateFrame) {
	for row := range s.Moving.Values() {
		if row.Cell.Y > 0 {
			continue
		}
		frame.Commands.Delete(row.EntityId)
		frame.Commands.Spawn(*row.Cell)
		s.Landed.Get().Value++
	}
}

type countSystem struct {
	Cells  ecs.Query[struct{ *Cell }]
	counts []int
}

func (s *countSystem) Execute(frame *ecs.UpdateFrame) {
	s.counts = append(s.counts, s.Cells.Len())
}

func TestSchedulerPipeline(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.AddSingleton(storage, Score{})
	storage.Spawn(Cell{Y: 2}, Velocity{DY: -1})
	storage.Spawn(Cell{Y: 1}, Velocity{DY: -1})

	fall, land := &fallSystem{}, &landSystem{}
	s := ecs.NewScheduler(storage)
	s.Register(fall)
	s.Register(land)

	require.NoError(t, s.Once(1))
	assert.Equal(t, 1, land.Landed.Get().Value)

	require.NoError(t, s.Once(1))
	assert.Equal(t, 2, land.Landed.Get().Value)
	assert.Equal(t, 2, storage.Len())

	moving := ecs.NewQuery[struct{ *Velocity }](storage)
	moving.Execute()
	assert.Equal(t, 0, moving.Len())

	stats := s.Stats()
	assert.EqualValues(t, 2, stats.Frames)
	assert.Equal(t, 2, stats.SystemCount)
	assert.EqualValues(t, 4, stats.TotalExecutions)
	assert.Equal(t, "fallSystem", stats.Systems[0].Name)
	assert.Equal(t, "landSystem", stats.Systems[1].Name)
}

func TestSchedulerFlushesBetweenSystems(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	spawn := systemFunc(func(frame *ecs.UpdateFrame) {
		frame.Commands.Spawn(Cell{})
	})
	count := &countSystem{}

	s := ecs.NewScheduler(storage)
	s.Register(spawn)
	s.Register(count)

	require.NoError(t, s.Once(0))
	require.NoError(t, s.Once(0))
	assert.Equal(t, []int{1, 2}, count.counts)
}

type systemFunc func(frame *ecs.UpdateFrame)

func (f systemFunc) Execute(frame *ecs.UpdateFrame) {
	f(frame)
}

func TestSchedulerDeferRunsOutsideLock(t *testing.T) {
	var mu sync.Mutex
	storage := ecs.NewStorage(newTestRegistry())
	s := ecs.NewScheduler(storage, ecs.WithLocker(&mu))

	locked := true
	s.Register(systemFunc(func(frame *ecs.UpdateFrame) {
		frame.Commands.Defer(func() {
			locked = !mu.TryLock()
			if !locked {
				mu.Unlock()
			}
		})
	}))

	require.NoError(t, s.Once(0))
	assert.False(t, locked)
}

var errDone = errors.New("done")

func TestSchedulerRunStops(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	s := ecs.NewScheduler(storage)
	frames := 0
	s.Register(systemFunc(func(frame *ecs.UpdateFrame) {
		frames++
		if frames == 3 {
			frame.Stop(errDone)
			frame.Stop(errors.New("ignored"))
		}
	}))

	err := s.Run(context.Background(), time.Millisecond)
	assert.ErrorIs(t, err, errDone)
	assert.Equal(t, 3, frames)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	frames = 100
	assert.ErrorIs(t, s.Run(ctx, time.Millisecond), context.DeadlineExceeded)
}

func TestStatsBeforeAnyFrame(t *testing.T) {
	s := ecs.NewScheduler(ecs.NewStorage(newTestRegistry()))
	s.Register(&countSystem{})

	stats := s.Stats()
	assert.EqualValues(t, 0, stats.Frames)
	assert.EqualValues(t, 0, stats.TotalExecutions)
	assert.Zero(t, stats.Systems[0].AvgDuration)
}
