package game

import (
	"math/rand/v2"
	"time"
)

// CharacterSource produces characters for secret codes.
type CharacterSource interface {
	// RandomCharacter returns a character uniformly chosen from [min, max].
	// Callers guarantee min <= max.
	RandomCharacter(min, max rune) rune
}

// RNG is a seeded CharacterSource. It is not safe for concurrent use: create
// one per game session.
type RNG struct {
	r    *rand.Rand
	seed uint64
}

// NewRNG creates a deterministic generator. A zero seed is replaced by one
// derived from the clock.
func NewRNG(seed uint64) *RNG {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RNG{r: rand.New(rand.NewPCG(seed, 0)), seed: seed}
}

func (g *RNG) RandomCharacter(min, max rune) rune {
	return min + rune(g.r.IntN(int(max-min)+1))
}

// Seed reports the seed actually used.
func (g *RNG) Seed() uint64 { return g.seed }
