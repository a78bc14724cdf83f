// Package script drives a game from Lua. A script sees a global `game`
// table whose functions queue commands on the scheduler, advance gravity
// time and read the current state, which makes scenarios and replays
// reproducible without a keyboard or a wall clock.
//
//	game.start()
//	game.run("rotate left left drop")
//	game.tick(3000)
//	assert(game.lines() == 0)
package script

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Shopify/go-lua"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/loop"
)

// ErrEmptyScript is returned when there is no Lua source to run.
var ErrEmptyScript = errors.New("script: empty source")

// Session runs scripts against one game.
type Session struct {
	game      *engine.Game
	scheduler *loop.Scheduler
	input     *loop.InputSystem
	gravity   *loop.GravitySystem
	logger    *log.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger routes the script's print calls to logger. Without one, print
// output is discarded.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession wires game to a scheduler with the standard input and gravity
// systems.
func NewSession(game *engine.Game, opts ...Option) *Session {
	s := &Session{
		game:      game,
		scheduler: loop.NewScheduler(game),
		input:     &loop.InputSystem{},
		gravity:   &loop.GravitySystem{Interval: loop.FallInterval},
	}
	s.scheduler.Register(s.input)
	s.scheduler.Register(s.gravity)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scheduler returns the scheduler the session drives.
func (s *Session) Scheduler() *loop.Scheduler {
	return s.scheduler
}

// Drops returns how many rows gravity has moved pieces so far.
func (s *Session) Drops() int {
	return s.gravity.Drops
}

// RunString executes Lua source and returns the final snapshot.
func (s *Session) RunString(ctx context.Context, source string) (engine.Snapshot, error) {
	if strings.TrimSpace(source) == "" {
		return engine.Snapshot{}, ErrEmptyScript
	}
	return s.run(ctx, func(state *lua.State) error {
		return lua.LoadString(state, source)
	})
}

// RunFile executes the Lua file at path and returns the final snapshot.
func (s *Session) RunFile(ctx context.Context, path string) (engine.Snapshot, error) {
	if strings.TrimSpace(path) == "" {
		return engine.Snapshot{}, ErrEmptyScript
	}
	return s.run(ctx, func(state *lua.State) error {
		return lua.LoadFile(state, path, "")
	})
}

func (s *Session) run(ctx context.Context, load func(*lua.State) error) (engine.Snapshot, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)
	s.register(ctx, state)

	if err := load(state); err != nil {
		return engine.Snapshot{}, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 0, 0); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return s.game.Snapshot(), fmt.Errorf("run lua: %w", ctxErr)
		}
		return s.game.Snapshot(), fmt.Errorf("run lua: %w", err)
	}
	return s.game.Snapshot(), nil
}

func (s *Session) register(ctx context.Context, state *lua.State) {
	guard := func(fn lua.Function) lua.Function {
		return func(state *lua.State) int {
			if err := ctx.Err(); err != nil {
				lua.Errorf(state, "%s", err.Error())
			}
			return fn(state)
		}
	}

	functions := []lua.RegistryFunction{
		{Name: "run", Function: s.runActions},
		{Name: "setup", Function: s.setup},
		{Name: "tick", Function: s.tick},
		{Name: "score", Function: s.score},
		{Name: "lines", Function: s.lines},
		{Name: "pieces", Function: s.pieces},
		{Name: "phase", Function: s.phase},
		{Name: "piece", Function: s.piece},
		{Name: "next", Function: s.next},
		{Name: "position", Function: s.position},
		{Name: "ghost", Function: s.ghost},
		{Name: "cell", Function: s.cell},
		{Name: "board", Function: s.board},
	}
	for _, a := range []engine.Action{
		engine.Start, engine.TogglePause, engine.MoveLeft, engine.MoveRight,
		engine.MoveDown, engine.Rotate, engine.HardDrop,
	} {
		functions = append(functions, lua.RegistryFunction{Name: a.String(), Function: s.action(a)})
	}
	for i := range functions {
		functions[i].Function = guard(functions[i].Function)
	}

	state.NewTable()
	lua.SetFunctions(state, functions, 0)
	state.SetGlobal("game")

	state.Register("print", s.print)
}

// apply queues actions and executes one zero-length frame, so commands
// never advance gravity. It returns how many actions changed the game.
func (s *Session) apply(actions ...engine.Action) int {
	before := s.input.Applied
	s.scheduler.Commands().Push(actions...)
	s.scheduler.Once(0)
	return s.input.Applied - before
}

func (s *Session) action(a engine.Action) lua.Function {
	return func(state *lua.State) int {
		state.PushBoolean(s.apply(a) == 1)
		return 1
	}
}

// runActions applies a space separated list of action names in one frame
// and returns how many of them changed the game.
func (s *Session) runActions(state *lua.State) int {
	fields := strings.Fields(lua.CheckString(state, 1))
	actions := make([]engine.Action, 0, len(fields))
	for _, name := range fields {
		a, ok := engine.ParseAction(name)
		if !ok {
			lua.ArgumentError(state, 1, fmt.Sprintf("unknown action %q", name))
		}
		actions = append(actions, a)
	}
	state.PushInteger(s.apply(actions...))
	return 1
}

// setup starts a game on a board drawn with '.' for empty cells and any
// other character for garbage, one row per line, bottom aligned.
func (s *Session) setup(state *lua.State) int {
	board, err := engine.ParseBoard(lua.CheckString(state, 1))
	if err != nil {
		lua.ArgumentError(state, 1, err.Error())
	}
	s.scheduler.Commands().Defer(func() {
		s.game.StartWithBoard(board)
	})
	s.scheduler.Once(0)
	return 0
}

// tick advances gravity time by the given milliseconds in TickInterval
// frames.
func (s *Session) tick(state *lua.State) int {
	ms := lua.CheckInteger(state, 1)
	if ms < 0 {
		lua.ArgumentError(state, 1, "negative duration")
	}
	s.scheduler.Advance(time.Duration(ms)*time.Millisecond, loop.TickInterval)
	return 0
}

func (s *Session) score(state *lua.State) int {
	state.PushInteger(s.game.Score())
	return 1
}

func (s *Session) lines(state *lua.State) int {
	state.PushInteger(s.game.Snapshot().Lines)
	return 1
}

func (s *Session) pieces(state *lua.State) int {
	state.PushInteger(s.game.Snapshot().Pieces)
	return 1
}

func (s *Session) phase(state *lua.State) int {
	state.PushString(s.game.Phase().String())
	return 1
}

func (s *Session) piece(state *lua.State) int {
	pushKind(state, s.game.Current)
	return 1
}

func (s *Session) next(state *lua.State) int {
	pushKind(state, s.game.Next)
	return 1
}

func pushKind(state *lua.State, get func() (engine.Piece, bool)) {
	p, ok := get()
	if !ok {
		state.PushNil()
		return
	}
	state.PushString(p.Kind.String())
}

// position returns the current piece's top-left corner, or nil.
func (s *Session) position(state *lua.State) int {
	p, ok := s.game.Current()
	if !ok {
		state.PushNil()
		return 1
	}
	state.PushInteger(p.Position.X)
	state.PushInteger(p.Position.Y)
	return 2
}

func (s *Session) ghost(state *lua.State) int {
	state.PushInteger(s.game.DropDistance())
	return 1
}

// cell reports whether the locked board cell at x, y (zero based, y down)
// is filled. Coordinates outside the board read as filled.
func (s *Session) cell(state *lua.State) int {
	x := lua.CheckInteger(state, 1)
	y := lua.CheckInteger(state, 2)
	if x < 0 || x >= engine.Width || y < 0 || y >= engine.Height {
		state.PushBoolean(true)
		return 1
	}
	board := s.game.Board()
	state.PushBoolean(board.Filled(x, y))
	return 1
}

func (s *Session) board(state *lua.State) int {
	board := s.game.Board()
	state.PushString(board.String())
	return 1
}

func (s *Session) print(state *lua.State) int {
	n := state.Top()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		v, _ := lua.ToStringMeta(state, i)
		state.Pop(1)
		parts = append(parts, v)
	}
	if s.logger != nil {
		s.logger.Print(strings.Join(parts, "\t"))
	}
	return 0
}
