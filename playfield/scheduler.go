package playfield

import "github.com/plus3/pentis/ecs"

// NewScheduler builds the frame pipeline over the game's storage: the given
// systems first, then input, gravity, lock, line clear, collision, spawn and
// game over. Actions pushed by the leading systems apply in the same frame.
// Each frame holds the game's lock, so systems must reach the game through
// their Query and Singleton fields, never through Game methods.
func NewScheduler(game *Game, before ...ecs.System) *ecs.Scheduler {
	s := ecs.NewScheduler(game.storage, ecs.WithLocker(&game.mu))
	for _, system := range before {
		s.Register(system)
	}
	s.Register(&InputSystem{Log: game.log})
	s.Register(&GravitySystem{})
	s.Register(&LockSystem{Log: game.log})
	s.Register(&LineClearSystem{Log: game.log})
	s.Register(&CollisionSystem{})
	s.Register(&SpawnSystem{Generator: game.gen, Log: game.log})
	s.Register(&GameOverSystem{})
	return s
}
