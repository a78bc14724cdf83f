package sim

import "github.com/plus3/blockfall/engine"

// Weights scales each board feature when ranking placements. Negative
// weights penalize a feature.
type Weights struct {
	LandingHeight  float64
	Lines          float64
	RowTransitions float64
	ColTransitions float64
	Holes          float64
	Wells          float64
}

// DefaultWeights are Dellacherie's features with the weights tuned by the
// El-Tetris search.
var DefaultWeights = Weights{
	LandingHeight:  -4.500158825082766,
	Lines:          3.4181268101392694,
	RowTransitions: -3.2178882868487753,
	ColTransitions: -9.348695305445199,
	Holes:          -7.899265427351652,
	Wells:          -3.3855972247263626,
}

// Features are the raw measurements of a board after a placement.
type Features struct {
	LandingHeight  float64
	Lines          int
	RowTransitions int
	ColTransitions int
	Holes          int
	Wells          int
}

// Score returns the weighted sum of f.
func (w Weights) Score(f Features) float64 {
	return w.LandingHeight*f.LandingHeight +
		w.Lines*float64(f.Lines) +
		w.RowTransitions*float64(f.RowTransitions) +
		w.ColTransitions*float64(f.ColTransitions) +
		w.Holes*float64(f.Holes) +
		w.Wells*float64(f.Wells)
}

// Measure computes the features of board after landed was locked, clearing
// lines rows.
func Measure(board *engine.Board, landed engine.Piece, lines int) Features {
	return Features{
		LandingHeight:  landingHeight(landed),
		Lines:          lines,
		RowTransitions: rowTransitions(board),
		ColTransitions: colTransitions(board),
		Holes:          holes(board),
		Wells:          wells(board),
	}
}

// landingHeight is the height above the floor of the middle of the piece.
func landingHeight(p engine.Piece) float64 {
	top, bottom := engine.Height, -1
	for _, c := range p.Cells() {
		top = min(top, c.Y)
		bottom = max(bottom, c.Y)
	}
	return float64((engine.Height-top)+(engine.Height-1-bottom)) / 2
}

func filled(b *engine.Board, x, y int) bool {
	if x < 0 || x >= engine.Width || y >= engine.Height {
		return true
	}
	if y < 0 {
		return false
	}
	return b.Filled(x, y)
}

// rowTransitions counts horizontally adjacent cells that differ. The side
// walls count as filled.
func rowTransitions(b *engine.Board) int {
	sum := 0
	for y := 0; y < engine.Height; y++ {
		for x := 0; x <= engine.Width; x++ {
			if filled(b, x-1, y) != filled(b, x, y) {
				sum++
			}
		}
	}
	return sum
}

// colTransitions counts vertically adjacent cells that differ. The floor
// counts as filled.
func colTransitions(b *engine.Board) int {
	sum := 0
	for x := 0; x < engine.Width; x++ {
		for y := 0; y < engine.Height; y++ {
			if filled(b, x, y) != filled(b, x, y+1) {
				sum++
			}
		}
	}
	return sum
}

// holes counts empty cells with a filled cell somewhere above them.
func holes(b *engine.Board) int {
	sum := 0
	for x := 0; x < engine.Width; x++ {
		covered := false
		for y := 0; y < engine.Height; y++ {
			if b.Filled(x, y) {
				covered = true
			} else if covered {
				sum++
			}
		}
	}
	return sum
}

// wells sums, for every run of empty cells flanked on both sides, the
// triangular number of its depth.
func wells(b *engine.Board) int {
	sum := 0
	for x := 0; x < engine.Width; x++ {
		depth := 0
		for y := 0; y < engine.Height; y++ {
			if !b.Filled(x, y) && filled(b, x-1, y) && filled(b, x+1, y) {
				depth++
				sum += depth
			} else {
				depth = 0
			}
		}
	}
	return sum
}
