package dream

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeedSourceDeterministicForFixedGenerator(t *testing.T) {
	a := NewSeedSource(rand.New(rand.NewSource(99)))
	b := NewSeedSource(rand.New(rand.NewSource(99)))

	for i := 0; i < 16; i++ {
		require.Equal(t, a.Draw(), b.Draw(), "draw %d", i)
	}
}

func TestSeedSourceSharedStream(t *testing.T) {
	// Draws advance one shared stream; consecutive pairs come from the
	// same generator rather than per-experiment reseeding.
	src := NewSeedSource(rand.New(rand.NewSource(5)))
	ref := rand.New(rand.NewSource(5))

	n1, m1 := src.DrawPair()
	n2, m2 := src.DrawPair()
	require.Equal(t, ref.Uint32(), n1)
	require.Equal(t, ref.Uint32(), m1)
	require.Equal(t, ref.Uint32(), n2)
	require.Equal(t, ref.Uint32(), m2)
}

func TestSeedSourceDrawsVary(t *testing.T) {
	src := NewSeedSource(rand.New(rand.NewSource(1)))
	seen := make(map[uint32]bool)
	for i := 0; i < 32; i++ {
		seen[src.Draw()] = true
	}
	require.Greater(t, len(seen), 1)
}
