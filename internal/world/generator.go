package world

import "math"

// Generator maps a tile coordinate to a tile kind.
// Implementations must be deterministic: the same (x, y) always yields the
// same kind, and every signed pair is valid input.
type Generator interface {
	Kind(x, y int) TileKind
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(x, y int) TileKind

// Kind calls f(x, y).
func (f GeneratorFunc) Kind(x, y int) TileKind {
	return f(x, y)
}

// Wave is the periodic terrain function: sin(x*FreqX) * cos(y*FreqY) * Amplitude,
// shifted by Offset and truncated into a kind index.
type Wave struct {
	FreqX     float64
	FreqY     float64
	Amplitude float64
	Offset    float64
}

// DefaultWave produces large smooth regions; it is the generator behind Generate.
var DefaultWave = Wave{
	FreqX:     0.1,
	FreqY:     0.1,
	Amplitude: 2,
	Offset:    2,
}

// Kind implements Generator.
func (w Wave) Kind(x, y int) TileKind {
	v := math.Sin(float64(x)*w.FreqX) * math.Cos(float64(y)*w.FreqY) * w.Amplitude
	return KindFromValue(v + w.Offset)
}

// KindFromValue truncates v toward zero and clamps it into the kind range.
func KindFromValue(v float64) TileKind {
	if math.IsNaN(v) || v < 0 {
		return Water
	}
	if v >= NumKinds {
		return Dirt
	}
	return TileKind(int(v))
}

// Generate returns the kind of tile (x, y) using DefaultWave.
func Generate(x, y int) TileKind {
	return DefaultWave.Kind(x, y)
}
