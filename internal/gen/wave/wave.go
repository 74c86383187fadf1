// Package wave registers the periodic sine/cosine terrain generator.
package wave

import (
	"fmt"

	"github.com/vovakirdan/tileview/internal/registry"
	"github.com/vovakirdan/tileview/internal/world"
)

// ID is the registry name of this generator.
const ID = "wave"

func init() {
	registry.Register(ID, "Sine/cosine waves", New)
}

// New builds a world.Wave from p. Zero fields take DefaultWave's values.
// Seed is ignored: the wave has no random state.
func New(p registry.Params) (world.Generator, error) {
	w := world.DefaultWave
	if p.FrequencyX != 0 {
		w.FreqX = p.FrequencyX
	}
	if p.FrequencyY != 0 {
		w.FreqY = p.FrequencyY
	}
	if p.Amplitude != 0 {
		w.Amplitude = p.Amplitude
	}
	if w.Amplitude < 0 {
		return nil, fmt.Errorf("wave: amplitude must be positive, got %v", w.Amplitude)
	}
	return w, nil
}
