package loop

import (
	"sync"

	"github.com/plus3/blockfall/engine"
)

// Commands buffers actions from a command source until the scheduler's next
// frame applies them in order. Push is safe to call from any goroutine; the
// game itself is only touched from the scheduler.
type Commands struct {
	mu      sync.Mutex
	actions []engine.Action
	defers  []func()
}

// NewCommands returns an empty buffer.
func NewCommands() *Commands {
	return &Commands{}
}

// Push queues an action.
func (c *Commands) Push(actions ...engine.Action) {
	c.mu.Lock()
	c.actions = append(c.actions, actions...)
	c.mu.Unlock()
}

// Defer queues a function to run after the queued actions of the next flush.
func (c *Commands) Defer(fn func()) {
	c.mu.Lock()
	c.defers = append(c.defers, fn)
	c.mu.Unlock()
}

// Len returns the number of queued actions.
func (c *Commands) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.actions)
}

// Flush applies every queued action to game, runs deferred functions and
// resets the buffer. It returns how many actions changed the game.
func (c *Commands) Flush(game *engine.Game) int {
	c.mu.Lock()
	actions := c.actions
	defers := c.defers
	c.actions = nil
	c.defers = nil
	c.mu.Unlock()

	applied := 0
	for _, a := range actions {
		if game.Apply(a) {
			applied++
		}
	}

	for _, fn := range defers {
		fn()
	}

	return applied
}
