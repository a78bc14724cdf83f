// Package engine implements a falling-block puzzle: a fixed 20x10 board, the
// seven tetromino kinds, placement validation, rotation, line clearing,
// scoring and the game state machine that ties them together.
//
// Every transformation produces a new value. Boards are arrays and copy on
// assignment, shapes are cloned before they are rotated, so speculative
// moves can be computed and discarded without touching the live game.
package engine

import "fmt"

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	I Kind = iota
	J
	L
	O
	S
	T
	Z
)

// NumKinds is the number of distinct piece kinds.
const NumKinds = 7

var kindNames = [NumKinds]string{"I", "J", "L", "O", "S", "T", "Z"}

func (k Kind) String() string {
	if k < 0 || int(k) >= NumKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the seven kinds.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < NumKinds
}

// ParseKind returns the kind named by a single letter.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// Kinds returns all piece kinds in catalog order.
func Kinds() []Kind {
	return []Kind{I, J, L, O, S, T, Z}
}

// Color is an opaque token stamped into board cells. The empty token marks
// an empty cell.
type Color string

const Empty Color = ""

var catalog = [NumKinds]struct {
	shape [][]uint8
	color Color
}{
	I: {
		shape: [][]uint8{
			{0, 0, 0, 0},
			{1, 1, 1, 1},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		},
		color: "#00f0f0",
	},
	J: {
		shape: [][]uint8{
			{1, 0, 0},
			{1, 1, 1},
			{0, 0, 0},
		},
		color: "#0000f0",
	},
	L: {
		shape: [][]uint8{
			{0, 0, 1},
			{1, 1, 1},
			{0, 0, 0},
		},
		color: "#f0a000",
	},
	O: {
		shape: [][]uint8{
			{1, 1},
			{1, 1},
		},
		color: "#f0f000",
	},
	S: {
		shape: [][]uint8{
			{0, 1, 1},
			{1, 1, 0},
			{0, 0, 0},
		},
		color: "#00f000",
	},
	T: {
		shape: [][]uint8{
			{0, 1, 0},
			{1, 1, 1},
			{0, 0, 0},
		},
		color: "#a000f0",
	},
	Z: {
		shape: [][]uint8{
			{1, 1, 0},
			{0, 1, 1},
			{0, 0, 0},
		},
		color: "#f00000",
	},
}

// ShapeOf returns a fresh copy of the canonical shape for k.
func ShapeOf(k Kind) Shape {
	if !k.Valid() {
		panic("engine: unknown piece kind " + k.String())
	}
	rows := catalog[k].shape
	shape := make(Shape, len(rows))
	for y, row := range rows {
		shape[y] = make([]bool, len(row))
		for x, v := range row {
			shape[y][x] = v == 1
		}
	}
	return shape
}

// ColorOf returns the color token of k.
func ColorOf(k Kind) Color {
	if !k.Valid() {
		panic("engine: unknown piece kind " + k.String())
	}
	return catalog[k].color
}
