package engine

import (
	crand "crypto/rand"
	"math/rand/v2"
)

// RandSource is the slice of math/rand/v2.Rand the spawner needs.
// Tests substitute scripted sequences.
type RandSource interface {
	IntN(n int) int
}

// Spawner picks where a new tile goes and what it is worth.
// It holds no state besides the random source.
type Spawner struct {
	rand RandSource
}

// NewSpawner creates a spawner drawing from src
func NewSpawner(src RandSource) *Spawner {
	return &Spawner{rand: src}
}

// Pick selects one of the empty cells uniformly and a value for it:
// 4 with probability 1/10, otherwise 2. empty must not be empty.
func (s *Spawner) Pick(empty []Position) (Position, int) {
	pos := empty[s.rand.IntN(len(empty))]
	return pos, s.TileValue()
}

// TileValue draws a new tile value
func (s *Spawner) TileValue() int {
	if s.rand.IntN(10) == 0 {
		return 4
	}
	return 2
}

// NewSeededSource returns a deterministic source for the given seed.
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomSource returns a ChaCha8 source seeded from crypto/rand.
// The result is not safe for concurrent use; give each engine its own.
func NewRandomSource() *rand.Rand {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// crypto/rand does not fail on supported platforms; fall back to the runtime seed
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewChaCha8(seed))
}
