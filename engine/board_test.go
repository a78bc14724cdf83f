package engine_test

import (
	"testing"

	"github.com/plus3/blockfall/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoardIsEmpty(t *testing.T) {
	b := engine.NewBoard()

	assert.Equal(t, engine.Height, len(b))
	assert.Equal(t, engine.Width, len(b[0]))
	assert.Zero(t, b.Count())
	for y := 0; y < engine.Height; y++ {
		assert.True(t, b.RowEmpty(y))
	}
}

func TestBoardCopyIsIndependent(t *testing.T) {
	b := engine.NewBoard()
	c := b.Copy()
	c[3][4] = engine.ColorOf(engine.T)

	assert.False(t, b.Filled(4, 3))
	assert.True(t, c.Filled(4, 3))
	assert.Equal(t, engine.ColorOf(engine.T), c.At(4, 3))
}

func TestParseBoard(t *testing.T) {
	t.Run("rows align to the bottom", func(t *testing.T) {
		b := mustBoard(t,
			"#.........",
			"##########",
		)

		assert.True(t, b.RowFull(engine.Height-1))
		assert.True(t, b.Filled(0, engine.Height-2))
		assert.False(t, b.Filled(1, engine.Height-2))
		assert.Equal(t, 11, b.Count())
		assert.Equal(t, engine.Garbage, b.At(0, engine.Height-1))
	})

	t.Run("round trips through String", func(t *testing.T) {
		b := mustBoard(t, "#...#....#", ".########.")
		again, err := engine.ParseBoard(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, again)
	})

	t.Run("rejects short rows", func(t *testing.T) {
		_, err := engine.ParseBoard("####")
		assert.Error(t, err)
	})

	t.Run("rejects too many rows", func(t *testing.T) {
		rows := ""
		for i := 0; i < engine.Height+1; i++ {
			rows += "..........\n"
		}
		_, err := engine.ParseBoard(rows)
		assert.Error(t, err)
	})
}
