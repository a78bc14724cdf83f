package engine_test

import (
	"fmt"
	"strings"

	"github.com/plus3/blockfall/engine"
)

// ExampleGame plays a single O piece: it is shifted one column left and hard
// dropped onto an empty board, earning two points per row fallen.
func ExampleGame() {
	game := engine.NewGame(onlyKind(engine.O))
	game.Start()
	fmt.Println(game.Phase(), game.DropDistance())

	game.MoveLeft()
	game.HardDrop()

	snap := game.Snapshot()
	fmt.Println(snap.Score, snap.Pieces)

	rows := strings.Split(strings.TrimSpace(snap.Board.String()), "\n")
	for _, row := range rows[engine.Height-2:] {
		fmt.Println(row)
	}

	// Output:
	// running 18
	// 36 1
	// ...##.....
	// ...##.....
}

// ExampleShape_Rotate shows the T piece turning clockwise.
func ExampleShape_Rotate() {
	shape := engine.ShapeOf(engine.T)
	for range 2 {
		shape = shape.Rotate()
		for _, row := range shape {
			for _, filled := range row {
				if filled {
					fmt.Print("#")
				} else {
					fmt.Print(".")
				}
			}
			fmt.Println()
		}
		fmt.Println("--")
	}

	// Output:
	// .#.
	// .##
	// .#.
	// --
	// ...
	// ###
	// .#.
	// --
}
