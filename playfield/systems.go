package playfield

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/plus3/pentis/ecs"
	"github.com/plus3/pentis/generator"
	"github.com/plus3/pentis/grid"
	"github.com/plus3/pentis/piece"
)

// InputSystem applies the actions queued since the last frame, in order.
// Blocked actions are dropped. Quit ends the game.
type InputSystem struct {
	Falling ecs.Query[struct {
		ecs.EntityId
		*Falling
	}]
	Board  ecs.Singleton[Board]
	State  ecs.Singleton[GameState]
	Config ecs.Singleton[Config]
	Input  ecs.Singleton[Input]
	Log    *slog.Logger

	Applied int
	Blocked int
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	r := newRules(frame.Commands, s.Config.Get(), s.State.Get(), s.Board.Get(), s.Log)
	active, ok := s.Falling.First()

	for _, a := range s.Input.Get().Actions.drain() {
		if a == ActionQuit {
			r.end("quit")
			continue
		}
		if r.state.Over || !ok {
			continue
		}

		lock, err := apply(active.Falling, r.board, a)
		switch {
		case err == nil:
			s.Applied++
		case errors.Is(err, ErrBlocked):
			s.Blocked++
			continue
		default:
			continue
		}
		if lock {
			if err := r.lock(active.EntityId, active.Falling); err != nil {
				r.end("lock failed", "error", err)
			}
			ok = false
		}
	}
}

// GravitySystem steps the active piece down once every 1/FallSpeed seconds
// and measures how long it has been resting on something. Leftover time
// carries into the next step.
type GravitySystem struct {
	Falling ecs.Query[struct{ *Falling }]
	Board   ecs.Singleton[Board]
	State   ecs.Singleton[GameState]
	Config  ecs.Singleton[Config]
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	st := s.State.Get()
	active, ok := s.Falling.First()
	if st.Over || !ok {
		return
	}
	board, cfg := s.Board.Get(), s.Config.Get()

	st.FallClock += frame.DeltaTime
	if grounded(active.Piece, board) {
		st.LockClock += frame.DeltaTime
	} else {
		st.LockClock = 0
	}

	if cfg.FallSpeed <= 0 {
		return
	}
	step := 1.0 / cfg.FallSpeed
	for st.FallClock >= step {
		st.FallClock -= step
		if next, err := try(active.Piece, board, (*piece.Piece).MoveDown); err == nil {
			active.Piece = next
		}
	}
}

// LockSystem settles a grounded piece once the lock delay has passed.
type LockSystem struct {
	Falling ecs.Query[struct {
		ecs.EntityId
		*Falling
	}]
	Board  ecs.Singleton[Board]
	State  ecs.Singleton[GameState]
	Config ecs.Singleton[Config]
	Log    *slog.Logger
}

func (s *LockSystem) Execute(frame *ecs.UpdateFrame) {
	r := newRules(frame.Commands, s.Config.Get(), s.State.Get(), s.Board.Get(), s.Log)
	active, ok := s.Falling.First()
	if r.state.Over || !ok {
		return
	}
	if r.state.LockClock >= r.cfg.LockDelay && grounded(active.Piece, r.board) {
		if err := r.lock(active.EntityId, active.Falling); err != nil {
			r.end("lock failed", "error", err)
		}
	}
}

// LineClearSystem deletes the blocks of full rows and drops every block
// above by the number of cleared rows beneath it.
type LineClearSystem struct {
	Settled ecs.Query[struct {
		ecs.EntityId
		*Settled
	}]
	Board ecs.Singleton[Board]
	State ecs.Singleton[GameState]
	Log   *slog.Logger

	Cleared int
}

func (s *LineClearSystem) Execute(frame *ecs.UpdateFrame) {
	ext := s.Board.Get().Extent()
	counts := make([]int, ext.Height)
	for row := range s.Settled.Values() {
		counts[row.Block.Coordinates().Y()]++
	}

	var full []int
	for y, n := range counts {
		if n == ext.Width {
			full = append(full, y)
		}
	}
	if len(full) == 0 {
		return
	}

	for row := range s.Settled.Values() {
		y := row.Block.Coordinates().Y()
		if slices.Contains(full, y) {
			frame.Commands.Delete(row.EntityId)
			continue
		}
		below := 0
		for _, cleared := range full {
			if cleared < y {
				below++
			}
		}
		if below > 0 {
			// Rows beneath exist, so the drop stays inside the grid.
			if err := row.Block.MoveBy(grid.Vector{Y: -below}); err != nil {
				panic(err)
			}
		}
	}

	st := s.State.Get()
	st.Lines += len(full)
	s.Cleared += len(full)
	if s.Log != nil {
		s.Log.Debug("lines cleared", "rows", full, "total", st.Lines)
	}
}

// CollisionSystem rebuilds the board from the Settled entities.
type CollisionSystem struct {
	Settled ecs.Query[struct{ *Settled }]
	Board   ecs.Singleton[Board]
}

func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	board := s.Board.Get()
	board.Reset()
	for row := range s.Settled.Values() {
		_ = board.Mark(row.Block.Coordinates())
	}
}

// SpawnSystem draws the next piece once the spawn delay has passed.
type SpawnSystem struct {
	Falling   ecs.Query[struct{ *Falling }]
	Board     ecs.Singleton[Board]
	State     ecs.Singleton[GameState]
	Config    ecs.Singleton[Config]
	Generator *generator.Generator
	Log       *slog.Logger
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	r := newRules(frame.Commands, s.Config.Get(), s.State.Get(), s.Board.Get(), s.Log)
	if r.state.Over || s.Falling.Len() > 0 {
		return
	}
	r.state.SpawnClock += frame.DeltaTime
	if r.state.SpawnClock < r.cfg.SpawnDelay {
		return
	}
	r.state.SpawnClock = 0
	_ = r.spawn(s.Generator)
}

// GameOverSystem stops a running scheduler once the game has ended.
type GameOverSystem struct {
	State ecs.Singleton[GameState]
}

func (s *GameOverSystem) Execute(frame *ecs.UpdateFrame) {
	if s.State.Get().Over {
		frame.Stop(ErrGameOver)
	}
}
