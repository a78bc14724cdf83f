package engine

import "math/rand/v2"

// Random is the source of piece draws. *rand.Rand from math/rand/v2
// satisfies it.
type Random interface {
	IntN(n int) int
}

// Generator produces pieces of uniformly random kind.
type Generator struct {
	rng Random
}

// NewGenerator returns a generator drawing from rng.
func NewGenerator(rng Random) *Generator {
	if rng == nil {
		panic("engine: generator requires a random source")
	}
	return &Generator{rng: rng}
}

// NewSeededGenerator returns a generator backed by a PCG source seeded with
// seed. Equal seeds produce equal piece sequences.
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Next consumes one draw and returns a fresh piece at the spawn position.
func (g *Generator) Next() Piece {
	k := Kind(g.rng.IntN(NumKinds))
	if !k.Valid() {
		panic("engine: random source returned out of range draw")
	}
	return NewPiece(k)
}
