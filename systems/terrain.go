package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/planetsoup/config"
)

// Terrain samples planet elevation from the height-noise field.
// It is the single source of truth for the displaced surface: the mesher,
// vent gating, spawn placement and movement all go through it.
type Terrain struct {
	cfg   config.TerrainConfig
	noise *NoiseField
}

// NewTerrain builds a terrain sampler for the given terrain config.
func NewTerrain(cfg config.TerrainConfig) *Terrain {
	noise := NewNoiseField(cfg.Seed, NoiseSettings{
		BaseRoughness: cfg.BaseRoughness,
		Layers:        cfg.Layers,
		Persistence:   cfg.Persistence,
		Offset:        r3.Vec{X: cfg.Offset[0], Y: cfg.Offset[1], Z: cfg.Offset[2]},
	})
	return &Terrain{cfg: cfg, noise: noise}
}

// Config returns the terrain configuration this sampler was built with.
func (t *Terrain) Config() config.TerrainConfig {
	return t.cfg
}

// Height returns the ocean-remapped elevation in [0,1] for a unit direction.
// Heights below the ocean threshold are compressed toward it so the seabed
// stays shallow relative to land relief.
func (t *Terrain) Height(dir r3.Vec) float64 {
	h := t.noise.Sample(dir)
	if t.cfg.OceanThreshold > 0 && h < t.cfg.OceanThreshold {
		h = t.cfg.OceanThreshold*(1-t.cfg.OceanDepth) + h*t.cfg.OceanDepth
	}
	return h
}

// SurfaceRadius returns the distance from planet center to the displaced
// surface along a unit direction.
func (t *Terrain) SurfaceRadius(dir r3.Vec) float64 {
	return t.cfg.Radius * (1 + t.Height(dir)*t.cfg.Magnitude)
}

// SurfacePoint returns the displaced surface point along a unit direction.
func (t *Terrain) SurfacePoint(dir r3.Vec) r3.Vec {
	return r3.Scale(t.SurfaceRadius(dir), dir)
}

// IsSea reports whether the raw (pre-remap) elevation at a direction falls
// below the ocean threshold. Always false when the ocean is disabled.
func (t *Terrain) IsSea(dir r3.Vec) bool {
	if t.cfg.OceanThreshold <= 0 {
		return false
	}
	return t.noise.Sample(dir) < t.cfg.OceanThreshold
}

// SeaRadius returns the radius of the ocean surface, the displaced radius
// at exactly the ocean threshold.
func (t *Terrain) SeaRadius() float64 {
	return t.cfg.Radius * (1 + t.cfg.OceanThreshold*t.cfg.Magnitude)
}
