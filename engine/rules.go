package engine

// IsValid reports whether piece may occupy pos on board. Cells left of
// column 0, right of the last column or below the last row are illegal, as
// are cells overlapping an occupied board cell. Cells above row 0 are
// always allowed.
func IsValid(board *Board, piece Piece, pos Position) bool {
	for i, row := range piece.Shape {
		for j, filled := range row {
			if !filled {
				continue
			}

			x := pos.X + j
			y := pos.Y + i

			if x < 0 || x >= Width || y >= Height {
				return false
			}

			if y >= 0 && board[y][x] != Empty {
				return false
			}
		}
	}

	return true
}

// Fits reports whether piece is valid at its own position.
func Fits(board *Board, piece Piece) bool {
	return IsValid(board, piece, piece.Position)
}

// DropDistance returns how many rows piece can fall from its position
// before the next step down would be invalid.
func DropDistance(board *Board, piece Piece) int {
	rows := 0
	for IsValid(board, piece, piece.Position.Add(0, rows+1)) {
		rows++
	}
	return rows
}

// Merge returns a copy of board with the piece's cells stamped in its
// color. Cells outside the board are dropped.
func Merge(board Board, piece Piece) Board {
	for _, c := range piece.Cells() {
		if c.Y >= 0 && c.Y < Height && c.X >= 0 && c.X < Width {
			board[c.Y][c.X] = piece.Color
		}
	}
	return board
}

// ClearLines removes every full row, shifting the rows above it down and
// filling the top with empty rows. It returns the compacted board and the
// number of rows removed.
func ClearLines(board Board) (Board, int) {
	var cleared Board
	dst := Height - 1
	for y := Height - 1; y >= 0; y-- {
		if board.RowFull(y) {
			continue
		}
		cleared[dst] = board[y]
		dst--
	}
	return cleared, dst + 1
}

var lineScores = [...]int{0, 100, 300, 500, 800}

// HardDropPointsPerRow is awarded for every row a hard-dropped piece falls.
const HardDropPointsPerRow = 2

// ScoreFor returns the points for clearing lines rows in one lock.
func ScoreFor(lines int) int {
	if lines < 0 {
		return 0
	}
	return lineScores[min(lines, len(lineScores)-1)]
}
