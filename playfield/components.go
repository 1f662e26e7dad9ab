package playfield

import "github.com/plus3/pentis/piece"

// Falling is the component of the single active piece.
type Falling struct {
	Piece *piece.Piece
}

// Settled is the component of one block of the stack.
type Settled struct {
	Block *piece.Block
}

// GameState is the singleton holding counters and clocks. Clocks are in
// seconds.
type GameState struct {
	Lines  int
	Pieces int
	Over   bool
	Reason string

	FallClock  float64
	LockClock  float64
	SpawnClock float64
}

// Input is the singleton through which systems and other goroutines queue
// actions.
type Input struct {
	Actions *Actions
}
