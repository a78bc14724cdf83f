package engine_test

import (
	"strings"
	"testing"

	"github.com/plus3/blockfall/engine"
	"github.com/stretchr/testify/require"
)

// scriptedRandom replays a fixed cycle of draws.
type scriptedRandom struct {
	draws []int
	calls int
}

func (r *scriptedRandom) IntN(n int) int {
	v := r.draws[r.calls%len(r.draws)] % n
	r.calls++
	return v
}

func onlyKind(k engine.Kind) *engine.Generator {
	return engine.NewGenerator(&scriptedRandom{draws: []int{int(k)}})
}

func mustBoard(t *testing.T, rows ...string) engine.Board {
	t.Helper()
	b, err := engine.ParseBoard(strings.Join(rows, "\n"))
	require.NoError(t, err)
	return b
}

func repeatRow(row string, n int) []string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = row
	}
	return rows
}
