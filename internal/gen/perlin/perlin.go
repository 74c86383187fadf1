// Package perlin registers a Perlin-noise terrain generator.
//
// The seed is fixed when the generator is built, so the result is still a pure
// function of (x, y): two generators with the same params agree everywhere.
package perlin

import (
	"fmt"

	"github.com/aquilax/go-perlin"

	"github.com/vovakirdan/tileview/internal/registry"
	"github.com/vovakirdan/tileview/internal/world"
)

// ID is the registry name of this generator.
const ID = "perlin"

const (
	alpha   = 2.0 // Weight falloff between octaves
	beta    = 2.0 // Frequency growth between octaves
	octaves = 3

	// DefaultScale maps tile coordinates into noise space. Lattice points
	// (integers) always sample 0, so the scale must not be 1.
	DefaultScale = 0.03

	// DefaultAmplitude stretches noise (roughly -1..1) across the four kinds.
	DefaultAmplitude = 2.5
)

func init() {
	registry.Register(ID, "Perlin noise", New)
}

// Generator samples 2D Perlin noise.
type Generator struct {
	noise     *perlin.Perlin
	scaleX    float64
	scaleY    float64
	amplitude float64
}

// New builds a Generator from p. Zero frequencies and amplitude take the defaults.
func New(p registry.Params) (world.Generator, error) {
	g := &Generator{
		noise:     perlin.NewPerlin(alpha, beta, octaves, p.Seed),
		scaleX:    DefaultScale,
		scaleY:    DefaultScale,
		amplitude: DefaultAmplitude,
	}
	if p.FrequencyX != 0 {
		g.scaleX = p.FrequencyX
	}
	if p.FrequencyY != 0 {
		g.scaleY = p.FrequencyY
	}
	if p.Amplitude != 0 {
		g.amplitude = p.Amplitude
	}
	if g.amplitude < 0 {
		return nil, fmt.Errorf("perlin: amplitude must be positive, got %v", g.amplitude)
	}
	return g, nil
}

// Kind implements world.Generator.
func (g *Generator) Kind(x, y int) world.TileKind {
	n := g.noise.Noise2D(float64(x)*g.scaleX, float64(y)*g.scaleY)
	return world.KindFromValue(n*g.amplitude + 2)
}
