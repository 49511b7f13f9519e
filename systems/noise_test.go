package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func testSettings() NoiseSettings {
	return NoiseSettings{
		BaseRoughness: 1.1,
		Layers:        5,
		Persistence:   0.5,
	}
}

// sphereSamples returns a spread of unit directions for property checks.
func sphereSamples(n int) []r3.Vec {
	dirs := make([]r3.Vec, 0, n)
	for i := 0; i < n; i++ {
		theta := float64(i) * 2.399963 // golden angle spiral
		z := 1 - 2*float64(i)/float64(n-1)
		r := math.Sqrt(1 - z*z)
		dirs = append(dirs, r3.Vec{X: r * math.Cos(theta), Y: r * math.Sin(theta), Z: z})
	}
	return dirs
}

func TestNoiseFieldBounded(t *testing.T) {
	f := NewNoiseField(42, testSettings())

	for _, dir := range sphereSamples(500) {
		v := f.Sample(dir)
		if v < 0 || v > 1 {
			t.Fatalf("sample out of [0,1] at %v: %f", dir, v)
		}
	}
}

func TestNoiseFieldDeterministic(t *testing.T) {
	a := NewNoiseField(42, testSettings())
	b := NewNoiseField(42, testSettings())

	dir := r3.Vec{X: 0.5, Y: 0.3, Z: 0.8}
	if a.Sample(dir) != b.Sample(dir) {
		t.Error("same seed and settings should produce identical samples")
	}

	c := NewNoiseField(43, testSettings())
	if a.Sample(dir) == c.Sample(dir) {
		t.Error("different seeds should produce different samples")
	}
}

func TestNoiseFieldZeroLayers(t *testing.T) {
	f := NewNoiseField(42, NoiseSettings{BaseRoughness: 1, Layers: 0, Persistence: 0.5})

	if v := f.Sample(r3.Vec{X: 1}); v != 0 {
		t.Errorf("expected 0 for zero layers, got %f", v)
	}
}

func TestNoiseFieldOffsetDecorrelates(t *testing.T) {
	f := NewNoiseField(42, testSettings())

	dir := r3.Vec{X: 0.5, Y: 0.3, Z: 0.8}
	base := f.Sample(dir)
	shifted := f.SampleOffset(dir, r3.Vec{X: 31.7})
	if base == shifted {
		t.Error("expected offset channel to differ from base channel")
	}
}

func TestNoiseFieldVaries(t *testing.T) {
	f := NewNoiseField(42, testSettings())

	minV, maxV := 1.0, 0.0
	for _, dir := range sphereSamples(200) {
		v := f.Sample(dir)
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	if maxV-minV < 0.05 {
		t.Errorf("expected meaningful variation over the sphere, got range %f", maxV-minV)
	}
}

func BenchmarkNoiseSample(b *testing.B) {
	f := NewNoiseField(42, testSettings())
	dirs := sphereSamples(256)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Sample(dirs[i%len(dirs)])
	}
}
