package engine

// Shape is a square matrix of cells; only true cells are part of the piece.
type Shape [][]bool

// Size returns the side length of the shape matrix.
func (s Shape) Size() int {
	return len(s)
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	for i := range s {
		clone[i] = make([]bool, len(s[i]))
		copy(clone[i], s[i])
	}
	return clone
}

// Equal reports whether two shapes have identical cells.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if len(s[i]) != len(other[i]) {
			return false
		}
		for j := range s[i] {
			if s[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// Rotate returns the shape turned 90 degrees clockwise about the center of
// its matrix: the transpose with every row reversed. Four rotations yield
// the original shape.
func (s Shape) Rotate() Shape {
	size := len(s)
	rotated := make(Shape, size)
	for i := range rotated {
		rotated[i] = make([]bool, size)
	}

	for i := range size {
		if len(s[i]) != size {
			panic("engine: shape matrix is not square")
		}
		for j := range size {
			rotated[j][size-1-i] = s[i][j]
		}
	}

	return rotated
}

// Position is the board coordinate of a shape's top-left corner. It may lie
// outside the board.
type Position struct {
	X, Y int
}

// Add returns the position shifted by dx columns and dy rows.
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Piece is a tetromino with its current orientation and anchor.
type Piece struct {
	Kind     Kind
	Shape    Shape
	Position Position
	Color    Color
}

// NewPiece builds a piece of kind k in its canonical orientation at the
// spawn position.
func NewPiece(k Kind) Piece {
	shape := ShapeOf(k)
	return Piece{
		Kind:     k,
		Shape:    shape,
		Position: SpawnPosition(shape),
		Color:    ColorOf(k),
	}
}

// SpawnPosition centers the shape horizontally on the board with its top
// row on board row 0.
func SpawnPosition(shape Shape) Position {
	return Position{X: Width/2 - shape.Size()/2, Y: 0}
}

// Clone returns a deep copy of the piece.
func (p Piece) Clone() Piece {
	p.Shape = p.Shape.Clone()
	return p
}

// Moved returns a copy of the piece anchored at pos.
func (p Piece) Moved(pos Position) Piece {
	p.Position = pos
	return p
}

// Rotated returns a copy of the piece turned clockwise in place. Whether
// the result fits is left to the caller; no wall kicks are attempted.
func (p Piece) Rotated() Piece {
	p.Shape = p.Shape.Rotate()
	return p
}

// Cells returns the absolute board coordinates of the piece's occupied
// cells, including any that fall outside the board.
func (p Piece) Cells() []Position {
	cells := make([]Position, 0, 4)
	for i, row := range p.Shape {
		for j, filled := range row {
			if filled {
				cells = append(cells, Position{X: p.Position.X + j, Y: p.Position.Y + i})
			}
		}
	}
	return cells
}
