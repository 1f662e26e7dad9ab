package playfield

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/kamstrup/intmap"
	"github.com/plus3/pentis/ecs"
	"github.com/plus3/pentis/generator"
	"github.com/plus3/pentis/grid"
	"github.com/plus3/pentis/piece"
)

var (
	ErrGameOver      = errors.New("game over")
	ErrBlocked       = errors.New("move blocked")
	ErrNoActivePiece = errors.New("no active piece")
	ErrPieceFalling  = errors.New("piece already falling")
)

// Config holds the timing of the frame pipeline, in seconds. It is stored
// as a singleton.
type Config struct {
	FallSpeed  float64 // rows per second
	LockDelay  float64 // time a grounded piece waits before it settles
	SpawnDelay float64 // time between a lock and the next spawn
}

func DefaultConfig() Config {
	return Config{
		FallSpeed:  1.0,
		LockDelay:  0.5,
		SpawnDelay: 0.1,
	}
}

type (
	fallingRow = struct {
		ecs.EntityId
		*Falling
	}
	settledRow = struct{ *Settled }
)

// Game owns the storage holding the active piece, the settled blocks and the
// game singletons. Every exported method locks the game; a scheduler built by
// NewScheduler holds the same lock for a whole frame.
type Game struct {
	mu      sync.Mutex
	storage *ecs.Storage
	gen     *generator.Generator
	log     *slog.Logger
	actions *Actions

	falling *ecs.Query[fallingRow]
	settled *ecs.Query[settledRow]
	cfg     *ecs.Singleton[Config]
	state   *ecs.Singleton[GameState]
	board   *ecs.Singleton[Board]
}

type GameOption func(*Game)

// WithLogger sets the logger for spawn, lock, line clear and game over events.
func WithLogger(l *slog.Logger) GameOption {
	return func(g *Game) {
		g.log = l
	}
}

// NewGame creates a game on the generator's grid. The generator must have a
// library; the first frame spawns a piece.
func NewGame(gen *generator.Generator, cfg Config, opts ...GameOption) *Game {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Falling](registry)
	ecs.RegisterComponent[Settled](registry)
	storage := ecs.NewStorage(registry)

	actions := &Actions{}
	ecs.AddSingleton(storage, Input{Actions: actions})

	g := &Game{
		storage: storage,
		gen:     gen,
		log:     discard,
		actions: actions,
		falling: ecs.NewQuery[fallingRow](storage),
		settled: ecs.NewQuery[settledRow](storage),
		cfg:     ecs.NewSingleton(storage, cfg),
		state:   ecs.NewSingleton(storage, GameState{SpawnClock: cfg.SpawnDelay}),
		board:   ecs.NewSingleton(storage, *NewBoard(gen.Extent())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Actions returns the queue the next frame drains. It may be used from any
// goroutine.
func (g *Game) Actions() *Actions {
	return g.actions
}

func (g *Game) rules(cmds *ecs.Commands) rules {
	return newRules(cmds, g.cfg.Get(), g.state.Get(), g.board.Get(), g.log)
}

// Spawn draws the next piece. The game ends if the piece cannot be placed or
// overlaps the stack.
func (g *Game) Spawn() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	r := g.rules(ecs.NewCommands())
	if r.state.Over {
		return ErrGameOver
	}
	g.falling.Execute()
	if g.falling.Len() > 0 {
		return ErrPieceFalling
	}
	err := r.spawn(g.gen)
	r.cmds.Flush(g.storage)
	return err
}

// Move applies one action to the active piece. Blocked moves return
// ErrBlocked and leave the piece where it was. A drop locks the piece.
func (g *Game) Move(a Action) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	r := g.rules(ecs.NewCommands())
	if a == ActionQuit {
		r.end("quit")
		return nil
	}
	if r.state.Over {
		return ErrGameOver
	}
	g.falling.Execute()
	active, ok := g.falling.First()
	if !ok {
		return ErrNoActivePiece
	}

	lock, err := apply(active.Falling, r.board, a)
	if err != nil || !lock {
		return err
	}
	err = r.lock(active.EntityId, active.Falling)
	r.cmds.Flush(g.storage)
	return err
}

// Active returns a copy of the falling piece, or nil.
func (g *Game) Active() *piece.Piece {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.falling.Execute()
	if active, ok := g.falling.First(); ok {
		return active.Piece.Copy()
	}
	return nil
}

func (g *Game) Over() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Get().Over
}

// Settle adds blocks to the stack, mainly for setting up positions. Nothing
// is added if any block overlaps the stack or another block.
func (g *Game) Settle(blocks ...*piece.Block) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	board := g.board.Get()
	seen := intmap.NewSet[grid.Key](len(blocks))
	for _, b := range blocks {
		if board.Occupied(b.Coordinates()) || !seen.Add(b.Key()) {
			return fmt.Errorf("settle at %s: %w", b.Coordinates(), ErrOccupied)
		}
	}
	for _, b := range blocks {
		_ = board.Mark(b.Coordinates())
		g.storage.Spawn(Settled{Block: b})
	}
	return nil
}

// Reset removes every entity and queued action, zeroes the counters and
// schedules a fresh spawn.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.storage.Clear()
	g.board.Get().Reset()
	*g.state.Get() = GameState{SpawnClock: g.cfg.Get().SpawnDelay}
	g.actions.drain()
}

// Snapshot is a read-only copy of the game state for renderers.
type Snapshot struct {
	Extent      grid.Extent
	Active      []grid.Coordinates
	Blocks      []grid.Coordinates
	StackHeight int
	Lines       int
	Pieces      int
	Over        bool
	Reason      string
}

func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	board, st := g.board.Get(), g.state.Get()
	s := Snapshot{
		Extent:      board.Extent(),
		StackHeight: board.StackHeight(),
		Lines:       st.Lines,
		Pieces:      st.Pieces,
		Over:        st.Over,
		Reason:      st.Reason,
	}

	g.falling.Execute()
	if active, ok := g.falling.First(); ok {
		s.Active = active.Piece.Coordinates()
	}

	g.settled.Execute()
	s.Blocks = make([]grid.Coordinates, 0, g.settled.Len())
	for row := range g.settled.Values() {
		s.Blocks = append(s.Blocks, row.Block.Coordinates())
	}
	slices.SortFunc(s.Blocks, func(a, c grid.Coordinates) int {
		if a.Y() != c.Y() {
			return a.Y() - c.Y()
		}
		return a.X() - c.X()
	})
	return s
}
