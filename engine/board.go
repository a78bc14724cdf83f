package engine

import (
	"fmt"
	"strings"
)

const (
	Width  = 10
	Height = 20
)

// Board is the playfield. Row 0 is the top. Being an array, a Board is
// copied on assignment, so a value handed out never aliases the game's grid.
type Board [Height][Width]Color

// NewBoard returns a board with every cell empty.
func NewBoard() Board {
	return Board{}
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() Board {
	return *b
}

// At returns the color stored at column x, row y.
func (b *Board) At(x, y int) Color {
	return b[y][x]
}

// Filled reports whether the cell at column x, row y is occupied.
func (b *Board) Filled(x, y int) bool {
	return b[y][x] != Empty
}

// RowFull reports whether every cell of row y is occupied.
func (b *Board) RowFull(y int) bool {
	for x := 0; x < Width; x++ {
		if b[y][x] == Empty {
			return false
		}
	}
	return true
}

// RowEmpty reports whether no cell of row y is occupied.
func (b *Board) RowEmpty(y int) bool {
	for x := 0; x < Width; x++ {
		if b[y][x] != Empty {
			return false
		}
	}
	return true
}

// Count returns the number of occupied cells.
func (b *Board) Count() int {
	n := 0
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if b[y][x] != Empty {
				n++
			}
		}
	}
	return n
}

// String renders the board one row per line, '#' for occupied cells and
// '.' for empty ones.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 1))
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if b[y][x] != Empty {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Garbage is the color ParseBoard stamps into occupied cells.
const Garbage Color = "#808080"

// ParseBoard reads the format produced by String. Blank lines and
// surrounding whitespace are ignored; any character other than '.' marks an
// occupied cell. Fewer than Height rows are aligned to the bottom of the
// board.
func ParseBoard(s string) (Board, error) {
	var rows []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) != Width {
			return Board{}, fmt.Errorf("row %d: want %d cells, got %d", len(rows), Width, len(line))
		}
		rows = append(rows, line)
	}
	if len(rows) > Height {
		return Board{}, fmt.Errorf("want at most %d rows, got %d", Height, len(rows))
	}

	var b Board
	offset := Height - len(rows)
	for i, line := range rows {
		for x := 0; x < Width; x++ {
			if line[x] != '.' {
				b[offset+i][x] = Garbage
			}
		}
	}
	return b, nil
}
