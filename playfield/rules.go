package playfield

import (
	"fmt"
	"log/slog"

	"github.com/plus3/pentis/ecs"
	"github.com/plus3/pentis/generator"
	"github.com/plus3/pentis/piece"
)

var discard = slog.New(slog.DiscardHandler)

// rules applies the movement, lock and spawn rules to one world. Structural
// changes go through cmds; the board and state are updated in place.
type rules struct {
	cfg   *Config
	state *GameState
	board *Board
	cmds  *ecs.Commands
	log   *slog.Logger
}

func newRules(cmds *ecs.Commands, cfg *Config, state *GameState, board *Board, log *slog.Logger) rules {
	if log == nil {
		log = discard
	}
	return rules{cfg: cfg, state: state, board: board, cmds: cmds, log: log}
}

// try applies move to a copy of p and returns the copy if it stays inside
// the grid and clear of the stack.
func try(p *piece.Piece, board *Board, move func(*piece.Piece) error) (*piece.Piece, error) {
	next := p.Copy()
	if err := move(next); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBlocked, err)
	}
	if board.Collides(next) {
		return nil, ErrBlocked
	}
	return next, nil
}

// grounded reports whether p cannot move down.
func grounded(p *piece.Piece, board *Board) bool {
	_, err := try(p, board, (*piece.Piece).MoveDown)
	return err != nil
}

// apply performs a movement action on f. A drop moves f as far down as it
// goes and asks the caller to lock it.
func apply(f *Falling, board *Board, a Action) (lock bool, err error) {
	var move func(*piece.Piece) error
	switch a {
	case ActionLeft:
		move = (*piece.Piece).MoveLeft
	case ActionRight:
		move = (*piece.Piece).MoveRight
	case ActionDown:
		move = (*piece.Piece).MoveDown
	case ActionRotate:
		move = (*piece.Piece).Rotate
	case ActionDrop:
		for {
			next, err := try(f.Piece, board, (*piece.Piece).MoveDown)
			if err != nil {
				return true, nil
			}
			f.Piece = next
		}
	default:
		return false, fmt.Errorf("unknown action %d", a)
	}

	next, err := try(f.Piece, board, move)
	if err != nil {
		return false, err
	}
	f.Piece = next
	return false, nil
}

// lock replaces the falling entity with one Settled entity per square and
// marks the squares on the board.
func (r rules) lock(id ecs.EntityId, f *Falling) error {
	for _, c := range f.Piece.Coordinates() {
		if r.board.Occupied(c) {
			return fmt.Errorf("lock at %s: %w", c, ErrOccupied)
		}
	}
	for _, block := range f.Piece.Cells() {
		_ = r.board.Mark(block.Coordinates())
		r.cmds.Spawn(Settled{Block: block})
	}
	r.cmds.Delete(id)
	r.state.LockClock = 0
	r.state.SpawnClock = 0
	r.log.Debug("piece locked", "piece", f.Piece)
	return nil
}

// spawn draws the next piece. The game ends if it cannot be placed or
// overlaps the stack.
func (r rules) spawn(gen *generator.Generator) error {
	if r.state.Over {
		return ErrGameOver
	}
	p, err := gen.MakePiece()
	if err != nil {
		r.end("spawn failed", "error", err)
		return fmt.Errorf("%w: %w", ErrGameOver, err)
	}
	if r.board.Collides(p) {
		r.end("spawn blocked", "piece", p)
		return ErrGameOver
	}

	r.cmds.Spawn(Falling{Piece: p})
	r.state.Pieces++
	r.state.FallClock, r.state.LockClock = 0, 0
	r.log.Debug("piece spawned", "piece", p, "center", p.Center())
	return nil
}

func (r rules) end(reason string, args ...any) {
	if r.state.Over {
		return
	}
	r.state.Over = true
	r.state.Reason = reason
	r.log.Info("game over", append([]any{"reason", reason, "pieces", r.state.Pieces, "lines", r.state.Lines}, args...)...)
}
