package dream

import (
	"math/rand"
	"time"
)

// MaxSeed is the largest value a seed draw can take.
const MaxSeed = 1<<32 - 1

// SeedSource hands out experiment seeds from one explicit generator stream.
// All draws share the stream; reseeding between experiments is deliberately
// not done, so seeds never correlate through clock-based reseeding.
type SeedSource struct {
	rng *rand.Rand
}

// NewSeedSource wraps an explicit generator. Tests pin a fixed-seed
// generator here to make every downstream draw reproducible.
func NewSeedSource(rng *rand.Rand) *SeedSource {
	return &SeedSource{rng: rng}
}

// SystemSeedSource seeds one generator from the clock, once.
func SystemSeedSource() *SeedSource {
	return NewSeedSource(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// Draw returns a uniform value in [0, MaxSeed].
func (s *SeedSource) Draw() uint32 {
	return s.rng.Uint32()
}

// DrawPair draws the two independent seeds one experiment needs: the first
// drives initial-image synthesis, the second model-side stochasticity.
func (s *SeedSource) DrawPair() (noiseSeed, modelSeed uint32) {
	return s.Draw(), s.Draw()
}
