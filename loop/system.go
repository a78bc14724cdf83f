// Package loop drives an engine.Game in real time. A Scheduler steps a list
// of systems once per frame: queued player commands are applied, then
// gravity advances the piece whenever enough time has accumulated while the
// game is Running.
package loop

// System represents a behavior executed once per frame against the game.
// Systems may keep their own state between frames.
type System interface {
	Execute(frame *Frame)
}

// Armer is implemented by systems that need to reset when the scheduler is
// armed, such as timers measuring time spent Running.
type Armer interface {
	Arm()
}
