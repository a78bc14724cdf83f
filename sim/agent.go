// Package sim plays games without a human. An Agent searches every
// placement reachable by rotating in place and sliding sideways, ranks the
// resulting boards by weighted features and emits the commands that reach
// the best one. The Runner plays many seeded games through the scheduler and
// aggregates the results into a Report.
package sim

import (
	"math"

	"github.com/plus3/blockfall/engine"
)

// Plan is a placement: how many clockwise turns, then how many columns to
// slide (negative is left), then a hard drop.
type Plan struct {
	Rotations int
	Shift     int
	Value     float64
	Features  Features
}

// Actions returns the commands that execute the plan.
func (p Plan) Actions() []engine.Action {
	actions := make([]engine.Action, 0, p.Rotations+abs(p.Shift)+1)
	for range p.Rotations {
		actions = append(actions, engine.Rotate)
	}
	step := engine.MoveRight
	if p.Shift < 0 {
		step = engine.MoveLeft
	}
	for range abs(p.Shift) {
		actions = append(actions, step)
	}
	return append(actions, engine.HardDrop)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Agent picks placements for falling pieces.
type Agent struct {
	Weights Weights
}

// NewAgent returns an agent using w.
func NewAgent(w Weights) *Agent {
	return &Agent{Weights: w}
}

// Plan returns the best placement for piece on board. Rotations are tried
// in place before any sideways move, the same order the game applies the
// plan's actions, so every plan returned is executable. It reports false
// only when the piece does not fit where it is.
func (a *Agent) Plan(board engine.Board, piece engine.Piece) (Plan, bool) {
	if !engine.Fits(&board, piece) {
		return Plan{}, false
	}

	best := Plan{Value: math.Inf(-1)}
	found := false
	seen := make([]engine.Shape, 0, 4)

	current := piece
	for r := 0; r < 4; r++ {
		if r > 0 {
			current = current.Rotated()
			if !engine.Fits(&board, current) {
				break
			}
		}
		if containsShape(seen, current.Shape) {
			continue
		}
		seen = append(seen, current.Shape)

		// The left sweep covers shift 0; each sweep stops at the first
		// blocked column since the piece slides one column at a time.
		for _, dir := range []int{-1, 1} {
			start := 0
			if dir > 0 {
				start = 1
			}
			for shift := start; ; shift += dir {
				pos := current.Position.Add(shift, 0)
				if !engine.IsValid(&board, current, pos) {
					break
				}
				plan := a.evaluate(board, current.Moved(pos))
				plan.Rotations = r
				plan.Shift = shift
				if !found || plan.Value > best.Value {
					best = plan
					found = true
				}
			}
		}
	}

	return best, found
}

func (a *Agent) evaluate(board engine.Board, piece engine.Piece) Plan {
	rows := engine.DropDistance(&board, piece)
	landed := piece.Moved(piece.Position.Add(0, rows))
	merged := engine.Merge(board, landed)
	cleared, lines := engine.ClearLines(merged)
	features := Measure(&cleared, landed, lines)
	return Plan{
		Value:    a.Weights.Score(features),
		Features: features,
	}
}

func containsShape(shapes []engine.Shape, shape engine.Shape) bool {
	for _, s := range shapes {
		if s.Equal(shape) {
			return true
		}
	}
	return false
}
