package loop

import (
	"time"

	"github.com/plus3/blockfall/engine"
)

// Frame is handed to every system during one scheduler step.
type Frame struct {
	DeltaTime time.Duration
	// Armed is true when the game was Running at the start of the frame.
	Armed    bool
	Commands *Commands
	Game     *engine.Game
}

func newFrame(dt time.Duration, armed bool, commands *Commands, game *engine.Game) *Frame {
	return &Frame{
		DeltaTime: dt,
		Armed:     armed,
		Commands:  commands,
		Game:      game,
	}
}
