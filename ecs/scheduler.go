package ecs

import (
	"context"
	"reflect"
	"sync"
	"time"
)

// SchedulerStats reports how often and how long the systems ran.
type SchedulerStats struct {
	Frames          int64
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

type SystemStats struct {
	Name           string
	ExecutionCount int64
	AvgDuration    time.Duration
	MaxDuration    time.Duration
	TotalDuration  time.Duration
}

// initializer is implemented by Query and Singleton.
type initializer interface {
	Init(storage *Storage)
}

type executor interface {
	Execute()
}

type registeredSystem struct {
	system  System
	queries []executor
	name    string
	runs    int64
	total   time.Duration
	longest time.Duration
}

type SchedulerOption func(*Scheduler)

// WithLocker makes each frame, and Stats, hold l. Code outside the frame
// that takes the same lock then never sees a half-applied frame.
func WithLocker(l sync.Locker) SchedulerOption {
	return func(s *Scheduler) {
		s.locker = l
	}
}

// Scheduler runs registered systems in order, one frame at a time.
type Scheduler struct {
	storage *Storage
	locker  sync.Locker
	systems []*registeredSystem
	frames  int64
}

func NewScheduler(storage *Storage, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		storage: storage,
		locker:  &sync.Mutex{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register appends a system to the pipeline and initializes its exported
// Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	rs := &registeredSystem{system: system}

	v := reflect.ValueOf(system)
	t := v.Type()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
		v = v.Elem()
	}
	rs.name = t.Name()

	if v.Kind() == reflect.Struct {
		for i := range v.NumField() {
			field := v.Field(i)
			if !field.CanSet() {
				continue
			}
			handle, ok := field.Addr().Interface().(initializer)
			if !ok {
				continue
			}
			handle.Init(s.storage)
			if q, ok := handle.(executor); ok {
				rs.queries = append(rs.queries, q)
			}
		}
	}

	s.locker.Lock()
	s.systems = append(s.systems, rs)
	s.locker.Unlock()
}

// Once runs every system with the given delta time. Each system's queries
// are executed right before it runs and its commands are flushed right
// after, so a system sees everything earlier systems did this frame.
// Once returns the error passed to UpdateFrame.Stop, if any.
func (s *Scheduler) Once(dt float64) error {
	frame := &UpdateFrame{
		DeltaTime: dt,
		Commands:  NewCommands(),
		Storage:   s.storage,
	}

	s.locker.Lock()
	for _, rs := range s.systems {
		for _, q := range rs.queries {
			q.Execute()
		}

		start := time.Now()
		rs.system.Execute(frame)
		elapsed := time.Since(start)

		rs.runs++
		rs.total += elapsed
		rs.longest = max(rs.longest, elapsed)

		frame.Commands.Flush(s.storage)
	}
	s.frames++
	s.locker.Unlock()

	frame.Commands.RunDeferred()
	return frame.stop
}

// Run executes frames at the given interval until the context is cancelled
// or a system stops the frame.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if err := s.Once(dt); err != nil {
				return err
			}
		}
	}
}

func (s *Scheduler) Stats() *SchedulerStats {
	s.locker.Lock()
	defer s.locker.Unlock()

	stats := &SchedulerStats{
		Frames:      s.frames,
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, rs := range s.systems {
		var avg time.Duration
		if rs.runs > 0 {
			avg = rs.total / time.Duration(rs.runs)
		}
		stats.Systems[i] = SystemStats{
			Name:           rs.name,
			ExecutionCount: rs.runs,
			AvgDuration:    avg,
			MaxDuration:    rs.longest,
			TotalDuration:  rs.total,
		}
		stats.TotalExecutions += rs.runs
	}
	return stats
}
