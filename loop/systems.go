package loop

import (
	"time"

	"github.com/plus3/blockfall/engine"
)

// InputSystem applies the actions queued since the previous frame.
type InputSystem struct {
	Applied int
}

func (s *InputSystem) Execute(frame *Frame) {
	s.Applied += frame.Commands.Flush(frame.Game)
}

// GravitySystem moves the piece down one row each time Interval has
// elapsed on armed frames. However long a frame is, it causes at most one
// descent.
type GravitySystem struct {
	Interval time.Duration
	Drops    int
	elapsed  time.Duration
}

// Arm restarts the interval.
func (s *GravitySystem) Arm() {
	s.elapsed = 0
}

// Elapsed returns the time accumulated toward the next descent.
func (s *GravitySystem) Elapsed() time.Duration {
	return s.elapsed
}

func (s *GravitySystem) Execute(frame *Frame) {
	if !frame.Armed || frame.Game.Phase() != engine.Running {
		return
	}

	interval := s.Interval
	if interval <= 0 {
		interval = FallInterval
	}

	s.elapsed += frame.DeltaTime
	if s.elapsed < interval {
		return
	}

	s.elapsed = 0
	frame.Game.MoveDown()
	s.Drops++
}
