package engine_test

import (
	"testing"

	"github.com/plus3/blockfall/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdleGame(t *testing.T) {
	game := engine.NewGame(engine.NewSeededGenerator(1))

	snap := game.Snapshot()
	assert.Equal(t, engine.Idle, snap.Phase)
	assert.Nil(t, snap.Current)
	assert.Nil(t, snap.Next)

	for _, a := range []engine.Action{
		engine.TogglePause, engine.MoveLeft, engine.MoveRight,
		engine.MoveDown, engine.Rotate, engine.HardDrop,
	} {
		assert.False(t, game.Apply(a), "%s should be ignored while idle", a)
	}
	assert.Equal(t, snap, game.Snapshot())
	assert.Zero(t, game.DropDistance())
}

func TestStart(t *testing.T) {
	game := engine.NewGame(engine.NewSeededGenerator(1))

	require.True(t, game.Start())

	snap := game.Snapshot()
	assert.Equal(t, engine.Running, snap.Phase)
	assert.Zero(t, snap.Board.Count())
	assert.Zero(t, snap.Score)
	assert.False(t, snap.Paused)
	assert.False(t, snap.GameOver)
	require.NotNil(t, snap.Current)
	require.NotNil(t, snap.Next)
	assert.True(t, engine.Fits(&snap.Board, *snap.Current))
	assert.Equal(t, engine.SpawnPosition(snap.Current.Shape), snap.Current.Position)
}

func TestRestartDiscardsState(t *testing.T) {
	game := engine.NewGame(onlyKind(engine.O))
	game.Start()
	game.HardDrop()
	require.NotZero(t, game.Score())

	game.Start()

	snap := game.Snapshot()
	assert.Zero(t, snap.Score)
	assert.Zero(t, snap.Pieces)
	assert.Zero(t, snap.Board.Count())
	assert.Equal(t, engine.Running, snap.Phase)
}

func TestTogglePause(t *testing.T) {
	game := engine.NewGame(onlyKind(engine.T))
	game.Start()

	require.True(t, game.TogglePause())
	assert.True(t, game.Snapshot().Paused)

	before := game.Snapshot()
	for _, a := range []engine.Action{
		engine.MoveLeft, engine.MoveRight, engine.MoveDown, engine.Rotate, engine.HardDrop,
	} {
		assert.False(t, game.Apply(a), "%s should be ignored while paused", a)
	}
	assert.Equal(t, before, game.Snapshot())

	require.True(t, game.TogglePause())
	assert.False(t, game.Snapshot().Paused)
	assert.Equal(t, engine.Running, game.Phase())
}

func TestMoveHorizontally(t *testing.T) {
	t.Run("stops at the left wall", func(t *testing.T) {
		game := engine.NewGame(onlyKind(engine.O))
		game.Start()

		for range 4 {
			require.True(t, game.MoveLeft())
		}
		piece, _ := game.Current()
		require.Equal(t, 0, piece.Position.X)

		before := game.Snapshot()
		assert.False(t, game.MoveLeft())
		assert.Equal(t, before, game.Snapshot())
	})

	t.Run("stops at the right wall", func(t *testing.T) {
		game := engine.NewGame(onlyKind(engine.O))
		game.Start()

		for range 4 {
			require.True(t, game.MoveRight())
		}
		before := game.Snapshot()
		assert.False(t, game.MoveRight())
		assert.Equal(t, before, game.Snapshot())
		assert.Equal(t, engine.Width-2, before.Current.Position.X)
	})

	t.Run("blocked by the stack", func(t *testing.T) {
		game := engine.NewGame(onlyKind(engine.O))
		game.StartWithBoard(mustBoard(t, repeatRow("###.......", 20)...))

		require.True(t, game.MoveLeft())
		assert.False(t, game.MoveLeft())
		piece, _ := game.Current()
		assert.Equal(t, 3, piece.Position.X)
	})
}

func TestRotate(t *testing.T) {
	t.Run("valid rotation keeps position", func(t *testing.T) {
		game := engine.NewGame(onlyKind(engine.T))
		game.Start()
		before, _ := game.Current()

		require.True(t, game.Rotate())

		after, _ := game.Current()
		assert.Equal(t, before.Position, after.Position)
		assert.True(t, before.Shape.Rotate().Equal(after.Shape))
	})

	t.Run("rotation against the wall is discarded", func(t *testing.T) {
		game := engine.NewGame(onlyKind(engine.I))
		game.Start()
		require.True(t, game.Rotate())
		for range 4 {
			require.True(t, game.MoveRight())
		}

		before := game.Snapshot()
		assert.False(t, game.Rotate())
		assert.Equal(t, before, game.Snapshot())
	})
}

func TestSoftDropClearsLine(t *testing.T) {
	var events []engine.LockEvent
	game := engine.NewGame(onlyKind(engine.O), engine.WithLockObserver(func(e engine.LockEvent) {
		events = append(events, e)
	}))
	game.StartWithBoard(mustBoard(t, "####..####"))

	for range 18 {
		require.True(t, game.MoveDown())
	}
	require.Empty(t, events)

	require.True(t, game.MoveDown())

	require.Len(t, events, 1)
	assert.Equal(t, engine.LockEvent{Kind: engine.O, Lines: 1, Points: 100}, events[0])

	snap := game.Snapshot()
	assert.Equal(t, 100, snap.Score)
	assert.Equal(t, 1, snap.Lines)
	assert.Equal(t, 2, snap.Board.Count())
	assert.Equal(t, engine.ColorOf(engine.O), snap.Board.At(4, 19))
	assert.Equal(t, engine.ColorOf(engine.O), snap.Board.At(5, 19))
	assert.False(t, snap.Board.Filled(0, 19), "the garbage row is gone")
	assert.True(t, snap.Board.RowEmpty(18))
}

func TestMoveDownUntilLock(t *testing.T) {
	locks := 0
	game := engine.NewGame(onlyKind(engine.T), engine.WithLockObserver(func(engine.LockEvent) {
		locks++
	}))
	game.Start()

	for range 19 {
		require.True(t, game.MoveDown())
	}

	assert.Equal(t, 1, locks)
	snap := game.Snapshot()
	for _, c := range []engine.Position{{X: 5, Y: 18}, {X: 4, Y: 19}, {X: 5, Y: 19}, {X: 6, Y: 19}} {
		assert.Equal(t, engine.ColorOf(engine.T), snap.Board.At(c.X, c.Y))
	}
	assert.Equal(t, 4, snap.Board.Count())
	require.NotNil(t, snap.Current)
	require.NotNil(t, snap.Next)
	assert.Equal(t, engine.SpawnPosition(snap.Current.Shape), snap.Current.Position)
	assert.Equal(t, 1, snap.Pieces)
	assert.Zero(t, snap.Score, "soft drops earn nothing")
}

func TestHardDrop(t *testing.T) {
	t.Run("awards two points per row", func(t *testing.T) {
		var event engine.LockEvent
		game := engine.NewGame(onlyKind(engine.O), engine.WithLockObserver(func(e engine.LockEvent) {
			event = e
		}))
		game.Start()
		rows := game.DropDistance()
		require.Equal(t, 18, rows)

		require.True(t, game.HardDrop())

		assert.Equal(t, 2*rows, game.Score())
		assert.Equal(t, rows, event.Rows)
		assert.Zero(t, event.Lines)
		snap := game.Snapshot()
		assert.Equal(t, 4, snap.Board.Count())
	})

	t.Run("adds line clear points", func(t *testing.T) {
		game := engine.NewGame(onlyKind(engine.O))
		game.StartWithBoard(mustBoard(t, "####..####"))

		require.True(t, game.HardDrop())

		assert.Equal(t, 100+2*18, game.Score())
	})

	t.Run("four lines with a vertical I", func(t *testing.T) {
		game := engine.NewGame(onlyKind(engine.I))
		game.StartWithBoard(mustBoard(t, repeatRow("#########.", 4)...))
		require.True(t, game.Rotate())
		for range 4 {
			require.True(t, game.MoveRight())
		}
		require.Equal(t, 16, game.DropDistance())

		require.True(t, game.HardDrop())

		snap := game.Snapshot()
		assert.Equal(t, 800+2*16, snap.Score)
		assert.Equal(t, 4, snap.Lines)
		assert.Zero(t, snap.Board.Count())
	})
}

func TestGameOver(t *testing.T) {
	var last engine.LockEvent
	game := engine.NewGame(onlyKind(engine.O), engine.WithLockObserver(func(e engine.LockEvent) {
		last = e
	}))
	game.StartWithBoard(mustBoard(t, repeatRow("#########.", 18)...))

	require.True(t, game.MoveDown())

	snap := game.Snapshot()
	require.True(t, snap.GameOver)
	assert.Equal(t, engine.GameOver, snap.Phase)
	assert.True(t, last.GameOver)
	assert.Zero(t, snap.Score)
	assert.Equal(t, engine.ColorOf(engine.O), snap.Board.At(4, 0), "the last merge is kept")
	assert.Equal(t, engine.ColorOf(engine.O), snap.Board.At(5, 1))
	assert.False(t, engine.Fits(&snap.Board, *snap.Next))

	for _, a := range []engine.Action{
		engine.TogglePause, engine.MoveLeft, engine.MoveRight,
		engine.MoveDown, engine.Rotate, engine.HardDrop,
	} {
		assert.False(t, game.Apply(a), "%s should be ignored after game over", a)
	}
	assert.Equal(t, snap, game.Snapshot())

	require.True(t, game.Apply(engine.Start))
	assert.Equal(t, engine.Running, game.Phase())
	restarted := game.Snapshot()
	assert.Zero(t, restarted.Board.Count())
}

func TestGameOverChecksTheClearedBoard(t *testing.T) {
	rows := []string{
		"####..####",
		"####..####",
		"##########",
	}
	rows = append(rows, repeatRow("#########.", engine.Height-3)...)
	game := engine.NewGame(onlyKind(engine.O))
	game.StartWithBoard(mustBoard(t, rows...))

	require.True(t, game.MoveDown())

	snap := game.Snapshot()
	assert.Equal(t, engine.Running, game.Phase(), "the spawn rows were cleared")
	assert.Equal(t, 500, snap.Score)
	assert.Equal(t, 3, snap.Lines)
	assert.True(t, snap.Board.RowEmpty(0))
	assert.True(t, engine.Fits(&snap.Board, *snap.Current))
}

func TestHardDropGameOverFreezesPieceBeforeTheDrop(t *testing.T) {
	var last engine.LockEvent
	game := engine.NewGame(onlyKind(engine.O), engine.WithLockObserver(func(e engine.LockEvent) {
		last = e
	}))
	game.StartWithBoard(mustBoard(t, repeatRow("#########.", 17)...))

	require.True(t, game.HardDrop())

	snap := game.Snapshot()
	require.True(t, snap.GameOver)
	assert.Equal(t, 1, last.Rows)
	assert.Zero(t, snap.Score)
	assert.Equal(t, engine.Position{X: 4, Y: 0}, snap.Current.Position)
	assert.Equal(t, engine.ColorOf(engine.O), snap.Board.At(4, 2), "the landed piece is merged")
	assert.False(t, snap.Board.Filled(4, 0))
}

func TestSnapshotIsACopy(t *testing.T) {
	game := engine.NewGame(onlyKind(engine.L))
	game.Start()

	snap := game.Snapshot()
	snap.Board[0][0] = engine.Garbage
	snap.Current.Shape[0][0] = true
	snap.Current.Position.X = 0

	again := game.Snapshot()
	assert.False(t, again.Board.Filled(0, 0))
	assert.False(t, again.Current.Shape[0][0])
	assert.Equal(t, 4, again.Current.Position.X)
}

func TestParseAction(t *testing.T) {
	for a := engine.Start; a <= engine.HardDrop; a++ {
		parsed, ok := engine.ParseAction(a.String())
		assert.True(t, ok)
		assert.Equal(t, a, parsed)
	}

	_, ok := engine.ParseAction("jump")
	assert.False(t, ok)
	assert.False(t, engine.NewGame(onlyKind(engine.O)).Apply(engine.Action(42)))
}
