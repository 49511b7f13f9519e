package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/planetsoup/config"
)

func TestTerrainOceanRemap(t *testing.T) {
	terrain := bumpyTerrain()
	cfg := terrain.Config()

	floor := cfg.OceanThreshold * (1 - cfg.OceanDepth)
	for _, dir := range sphereSamples(500) {
		h := terrain.Height(dir)
		if terrain.IsSea(dir) {
			if h < floor-1e-12 || h > cfg.OceanThreshold+1e-12 {
				t.Fatalf("sea height %f outside compressed band [%f,%f]", h, floor, cfg.OceanThreshold)
			}
		} else if h < cfg.OceanThreshold-1e-12 {
			t.Fatalf("land height %f below ocean threshold %f", h, cfg.OceanThreshold)
		}
	}
}

func TestTerrainOceanDisabled(t *testing.T) {
	cfg := bumpyTerrain().Config()
	cfg.OceanThreshold = 0
	terrain := NewTerrain(cfg)

	for _, dir := range sphereSamples(100) {
		if terrain.IsSea(dir) {
			t.Fatal("no direction should be sea with the ocean disabled")
		}
	}
}

func TestTerrainSurfaceRadiusFormula(t *testing.T) {
	terrain := bumpyTerrain()
	cfg := terrain.Config()

	for _, dir := range sphereSamples(100) {
		want := cfg.Radius * (1 + terrain.Height(dir)*cfg.Magnitude)
		if got := terrain.SurfaceRadius(dir); math.Abs(got-want) > 1e-12 {
			t.Fatalf("surface radius %f, expected %f", got, want)
		}
	}
}

func TestTerrainSeaRadiusSeparates(t *testing.T) {
	terrain := bumpyTerrain()
	seaRadius := terrain.SeaRadius()

	for _, dir := range sphereSamples(500) {
		r := terrain.SurfaceRadius(dir)
		if terrain.IsSea(dir) && r > seaRadius+1e-9 {
			t.Fatalf("sea point above sea radius: %f > %f", r, seaRadius)
		}
		if !terrain.IsSea(dir) && r < seaRadius-1e-9 {
			t.Fatalf("land point below sea radius: %f < %f", r, seaRadius)
		}
	}
}

func TestTerrainFlatHeight(t *testing.T) {
	terrain := NewTerrain(config.TerrainConfig{
		Resolution: 8,
		Radius:     5,
		Magnitude:  0.1,
		Layers:     0,
		Seed:       1,
	})

	for _, dir := range sphereSamples(20) {
		if h := terrain.Height(dir); h != 0 {
			t.Fatalf("expected zero height with no noise layers, got %f", h)
		}
		if r := terrain.SurfaceRadius(dir); r != 5 {
			t.Fatalf("expected base radius 5, got %f", r)
		}
	}
}
