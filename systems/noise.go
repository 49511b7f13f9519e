package systems

import (
	opensimplex "github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r3"
)

// NoiseSettings configures a layered gradient-noise field.
type NoiseSettings struct {
	BaseRoughness float64 // frequency of the first octave
	Layers        int     // octave count, 0 yields a constant 0 field
	Persistence   float64 // amplitude decay per octave
	Offset        r3.Vec  // sample-space offset
}

// NoiseField is a deterministic scalar field over unit directions.
// Samples are in [0,1] and depend only on the direction, the seed and
// the settings.
type NoiseField struct {
	noise    opensimplex.Noise
	settings NoiseSettings
}

// NewNoiseField creates a noise field from a seed and settings.
func NewNoiseField(seed int64, settings NoiseSettings) *NoiseField {
	return &NoiseField{
		noise:    opensimplex.NewNormalized(seed),
		settings: settings,
	}
}

// Settings returns the field's settings.
func (f *NoiseField) Settings() NoiseSettings {
	return f.settings
}

// Sample evaluates the layered field at a unit direction.
func (f *NoiseField) Sample(dir r3.Vec) float64 {
	return f.SampleOffset(dir, r3.Vec{})
}

// SampleOffset evaluates the field with an extra sample-space offset,
// letting several decorrelated channels share one permutation table.
func (f *NoiseField) SampleOffset(dir, extra r3.Vec) float64 {
	if f.settings.Layers <= 0 {
		return 0
	}

	sum := 0.0
	ampSum := 0.0
	freq := f.settings.BaseRoughness
	amp := 1.0

	base := r3.Add(f.settings.Offset, extra)
	for i := 0; i < f.settings.Layers; i++ {
		p := r3.Add(r3.Scale(freq, dir), base)
		sum += f.noise.Eval3(p.X, p.Y, p.Z) * amp
		ampSum += amp
		freq *= 2
		amp *= f.settings.Persistence
	}
	return sum / ampSum
}

// Eval3 exposes the underlying single-octave normalized noise in [0,1].
// Movement uses this directly with time-based coordinates.
func (f *NoiseField) Eval3(x, y, z float64) float64 {
	return f.noise.Eval3(x, y, z)
}
