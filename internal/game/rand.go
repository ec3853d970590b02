package game

import "math/rand"

// Randomizer supplies the randomness consumed by combat, drops, and quest
// generation. Tests substitute a scripted implementation to make outcomes
// deterministic.
type Randomizer interface {
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
	// Between returns a uniform value in [min, max] inclusive.
	Between(min, max int) int
	// Chance reports true with probability p.
	Chance(p float64) bool
}

type systemRandomizer struct{}

// NewRandomizer returns the production randomness source.
func NewRandomizer() Randomizer {
	return systemRandomizer{}
}

func (systemRandomizer) IntN(n int) int {
	return rand.Intn(n)
}

func (systemRandomizer) Between(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.Intn(max-min+1)
}

func (systemRandomizer) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rand.Float64() < p
}
