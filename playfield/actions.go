package playfield

import "sync"

// Action is a player request applied to the active piece.
type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionDown
	ActionRotate
	ActionDrop
	ActionQuit
)

var actionNames = [...]string{"left", "right", "down", "rotate", "drop", "quit"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction maps a name produced by Action.String back to the action.
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return 0, false
}

// Actions buffers player input until the next frame drains it. Push may be
// called from any goroutine.
type Actions struct {
	mu      sync.Mutex
	pending []Action
}

// Push queues an action for the next frame.
func (q *Actions) Push(a Action) {
	q.mu.Lock()
	q.pending = append(q.pending, a)
	q.mu.Unlock()
}

// Pending returns the number of queued actions.
func (q *Actions) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// drain removes and returns the queued actions in push order.
func (q *Actions) drain() []Action {
	q.mu.Lock()
	defer q.mu.Unlock()
	pending := q.pending
	q.pending = nil
	return pending
}
