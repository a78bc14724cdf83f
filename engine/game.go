package engine

import "fmt"

// Phase is the state of the game state machine.
type Phase int

const (
	// Idle means no game has been started; there is no current piece.
	Idle Phase = iota
	Running
	Paused
	// GameOver is terminal until the next Start.
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "game-over"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Action is a discrete command issued to the game.
type Action int

const (
	Start Action = iota
	TogglePause
	MoveLeft
	MoveRight
	MoveDown
	Rotate
	HardDrop
)

var actionNames = [...]string{
	Start:       "start",
	TogglePause: "pause",
	MoveLeft:    "left",
	MoveRight:   "right",
	MoveDown:    "down",
	Rotate:      "rotate",
	HardDrop:    "drop",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction returns the action with the given name.
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return 0, false
}

// LockEvent describes a piece being merged into the board.
type LockEvent struct {
	Kind Kind
	// Rows is the hard drop distance, zero for locks caused by a step down.
	Rows     int
	Lines    int
	Points   int
	GameOver bool
}

// Option configures a Game.
type Option func(*Game)

// WithLockObserver registers fn to be called after every lock event.
func WithLockObserver(fn func(LockEvent)) Option {
	return func(g *Game) {
		g.onLock = fn
	}
}

// Game owns the board, the falling piece and the score. It is not safe for
// concurrent use; a single owner applies one action at a time.
type Game struct {
	gen     *Generator
	board   Board
	current *Piece
	next    *Piece
	score   int
	lines   int
	pieces  int
	phase   Phase
	onLock  func(LockEvent)
}

// NewGame returns an idle game drawing pieces from gen.
func NewGame(gen *Generator, opts ...Option) *Game {
	if gen == nil {
		panic("engine: game requires a piece generator")
	}
	g := &Game{gen: gen}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Phase returns the current state machine phase.
func (g *Game) Phase() Phase { return g.phase }

// Score returns the accumulated score.
func (g *Game) Score() int { return g.score }

// Board returns a copy of the board.
func (g *Game) Board() Board { return g.board }

// Current returns the falling piece, if any.
func (g *Game) Current() (Piece, bool) {
	if g.current == nil {
		return Piece{}, false
	}
	return g.current.Clone(), true
}

// Next returns the piece waiting to spawn, if any.
func (g *Game) Next() (Piece, bool) {
	if g.next == nil {
		return Piece{}, false
	}
	return g.next.Clone(), true
}

// Start begins a new game on an empty board. It is accepted in every phase.
func (g *Game) Start() bool {
	return g.StartWithBoard(NewBoard())
}

// StartWithBoard begins a new game on a prepared board.
func (g *Game) StartWithBoard(board Board) bool {
	current := g.gen.Next()
	next := g.gen.Next()

	g.board = board
	g.current = &current
	g.next = &next
	g.score = 0
	g.lines = 0
	g.pieces = 0
	g.phase = Running
	return true
}

// TogglePause flips between Running and Paused. It is ignored in any other
// phase.
func (g *Game) TogglePause() bool {
	switch g.phase {
	case Running:
		g.phase = Paused
	case Paused:
		g.phase = Running
	default:
		return false
	}
	return true
}

func (g *Game) active() bool {
	return g.phase == Running && g.current != nil
}

// MoveLeft shifts the piece one column left if the target is valid.
func (g *Game) MoveLeft() bool {
	return g.shift(-1)
}

// MoveRight shifts the piece one column right if the target is valid.
func (g *Game) MoveRight() bool {
	return g.shift(1)
}

func (g *Game) shift(dx int) bool {
	if !g.active() {
		return false
	}
	target := g.current.Position.Add(dx, 0)
	if !IsValid(&g.board, *g.current, target) {
		return false
	}
	moved := g.current.Moved(target)
	g.current = &moved
	return true
}

// MoveDown advances the piece one row, locking it when it cannot descend.
// Gravity ticks and soft drops both use it.
func (g *Game) MoveDown() bool {
	if !g.active() {
		return false
	}
	target := g.current.Position.Add(0, 1)
	if IsValid(&g.board, *g.current, target) {
		moved := g.current.Moved(target)
		g.current = &moved
		return true
	}
	g.lock(*g.current, 0)
	return true
}

// Rotate turns the piece clockwise if the rotated shape fits where it is.
func (g *Game) Rotate() bool {
	if !g.active() {
		return false
	}
	rotated := g.current.Rotated()
	if !Fits(&g.board, rotated) {
		return false
	}
	g.current = &rotated
	return true
}

// HardDrop moves the piece to its lowest valid row and locks it, awarding
// HardDropPointsPerRow per row fallen.
func (g *Game) HardDrop() bool {
	if !g.active() {
		return false
	}
	rows := DropDistance(&g.board, *g.current)
	g.lock(g.current.Moved(g.current.Position.Add(0, rows)), rows)
	return true
}

// DropDistance reports how many rows the current piece would fall on a
// hard drop, or zero when there is no piece.
func (g *Game) DropDistance() int {
	if g.current == nil {
		return 0
	}
	return DropDistance(&g.board, *g.current)
}

// lock merges landed, the current piece at its final position, clears
// lines, scores them and promotes the next piece. If the promoted piece
// cannot spawn the merged board is kept without clearing or scoring and the
// game ends with both pieces frozen where they were before the lock.
func (g *Game) lock(landed Piece, rows int) {
	merged := Merge(g.board, landed)
	cleared, lines := ClearLines(merged)
	points := ScoreFor(lines) + rows*HardDropPointsPerRow

	event := LockEvent{Kind: landed.Kind, Rows: rows, Lines: lines}
	g.pieces++

	if !Fits(&cleared, *g.next) {
		g.board = merged
		g.phase = GameOver
		event.GameOver = true
		g.notify(event)
		return
	}

	g.board = cleared
	g.score += points
	g.lines += lines
	g.current = g.next
	next := g.gen.Next()
	g.next = &next

	event.Points = points
	g.notify(event)
}

func (g *Game) notify(event LockEvent) {
	if g.onLock != nil {
		g.onLock(event)
	}
}

// Apply dispatches an action and reports whether it changed the game.
func (g *Game) Apply(a Action) bool {
	switch a {
	case Start:
		return g.Start()
	case TogglePause:
		return g.TogglePause()
	case MoveLeft:
		return g.MoveLeft()
	case MoveRight:
		return g.MoveRight()
	case MoveDown:
		return g.MoveDown()
	case Rotate:
		return g.Rotate()
	case HardDrop:
		return g.HardDrop()
	default:
		return false
	}
}

// Snapshot is a read-only copy of the game state for renderers and tests.
type Snapshot struct {
	Board    Board
	Current  *Piece
	Next     *Piece
	Score    int
	Lines    int
	Pieces   int
	Phase    Phase
	Paused   bool
	GameOver bool
}

// Snapshot returns a deep copy of the game state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Board:    g.board,
		Score:    g.score,
		Lines:    g.lines,
		Pieces:   g.pieces,
		Phase:    g.phase,
		Paused:   g.phase == Paused,
		GameOver: g.phase == GameOver,
	}
	if p, ok := g.Current(); ok {
		s.Current = &p
	}
	if p, ok := g.Next(); ok {
		s.Next = &p
	}
	return s
}
