package machine

import (
	crand "crypto/rand"
	"math/rand/v2"
)

// RandomSource provides random bytes for the CXNN instruction.
type RandomSource interface {
	RandomByte() byte
}

// SeededRandom is a deterministic random source. Two sources created with
// the same seed return the same sequence.
type SeededRandom struct {
	rng *rand.Rand
}

// NewSeededRandom returns a deterministic random source for the seed.
func NewSeededRandom(seed uint64) *SeededRandom {
	return &SeededRandom{
		rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

// RandomByte returns the next byte of the sequence.
func (r *SeededRandom) RandomByte() byte {
	return byte(r.rng.Uint32())
}

// EntropyRandom reads random bytes from the operating system.
type EntropyRandom struct{}

// NewEntropyRandom returns a random source backed by OS entropy.
func NewEntropyRandom() EntropyRandom {
	return EntropyRandom{}
}

// RandomByte returns a byte read from the operating system entropy source.
func (EntropyRandom) RandomByte() byte {
	var b [1]byte
	// crypto/rand.Read never returns an error since Go 1.24
	_, _ = crand.Read(b[:])
	return b[0]
}
