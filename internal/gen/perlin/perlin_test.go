package perlin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tileview/internal/registry"
	"github.com/vovakirdan/tileview/internal/world"
)

func TestRegistered(t *testing.T) {
	assert.True(t, registry.Exists(ID))
}

func TestDeterministicForSeed(t *testing.T) {
	a, err := registry.Create(ID, registry.Params{Seed: 42})
	require.NoError(t, err)
	b, err := registry.Create(ID, registry.Params{Seed: 42})
	require.NoError(t, err)

	for y := -30; y < 30; y++ {
		for x := -30; x < 30; x++ {
			k := a.Kind(x, y)
			assert.True(t, k.Valid())
			assert.Equal(t, k, a.Kind(x, y), "repeat call (%d, %d)", x, y)
			assert.Equal(t, k, b.Kind(x, y), "same seed (%d, %d)", x, y)
		}
	}
}

func TestSeedsDiffer(t *testing.T) {
	a, err := New(registry.Params{Seed: 1})
	require.NoError(t, err)
	b, err := New(registry.Params{Seed: 2})
	require.NoError(t, err)

	diff := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if a.Kind(x, y) != b.Kind(x, y) {
				diff++
			}
		}
	}
	assert.Positive(t, diff)
}

func TestSmoothRegions(t *testing.T) {
	g, err := New(registry.Params{Seed: 7})
	require.NoError(t, err)

	same, total := 0, 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 99; x++ {
			if g.Kind(x, y) == g.Kind(x+1, y) {
				same++
			}
			total++
		}
	}
	assert.Greater(t, float64(same)/float64(total), 0.5)
}

func TestOrigin(t *testing.T) {
	g, err := New(registry.Params{Seed: 99})
	require.NoError(t, err)

	// Noise is zero on lattice points, which lands mid-range.
	assert.Equal(t, world.Grass, g.Kind(0, 0))
}

func TestNegativeAmplitude(t *testing.T) {
	_, err := New(registry.Params{Amplitude: -2})
	assert.Error(t, err)
}
