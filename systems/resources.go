package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/planetsoup/config"
)

// Resource identifies one of the tracked per-cell resource kinds.
type Resource uint8

const (
	ResourceCO2 Resource = iota
	ResourceO2
	ResourceH2S
	ResourceSulfur
	ResourcePhosphorus
	ResourceIron
	ResourceSilicon
	ResourceCalcium

	ResourceCount
)

var resourceNames = [ResourceCount]string{
	"co2", "o2", "h2s", "sulfur", "phosphorus", "iron", "silicon", "calcium",
}

func (r Resource) String() string {
	if r >= ResourceCount {
		return "unknown"
	}
	return resourceNames[r]
}

// Per-resource sample-space offsets so the deposit channels decorrelate
// while sharing one permutation table.
var depositOffsets = map[Resource]r3.Vec{
	ResourcePhosphorus: {X: 31.7},
	ResourceIron:       {Y: 67.3},
	ResourceSilicon:    {Z: 113.9},
	ResourceCalcium:    {X: 7.1, Y: 151.3},
}

// ResourceField stores per-cell resource quantities on a SurfaceGrid.
// Quantities are non-negative; reads of invalid cells return 0 and writes
// to them are dropped.
type ResourceField struct {
	grid    *SurfaceGrid
	cells   [ResourceCount][]float64
	ventCfg config.VentsConfig

	ventCells []int
	ventDirs  []r3.Vec
}

// NewResourceField seeds a resource field over the grid. Baselines fill the
// uniform atmospheric channels, deposit noise shapes the mineral channels,
// and a separate higher-frequency field picks the hydrothermal vent cells.
func NewResourceField(grid *SurfaceGrid, res config.ResourcesConfig, vents config.VentsConfig, seed int64) *ResourceField {
	f := &ResourceField{
		grid:    grid,
		ventCfg: vents,
	}
	n := grid.CellCount()
	for r := Resource(0); r < ResourceCount; r++ {
		f.cells[r] = make([]float64, n)
	}

	deposits := NewNoiseField(seed+1, NoiseSettings{
		BaseRoughness: res.PatchRoughness,
		Layers:        res.PatchLayers,
		Persistence:   res.PatchPersistence,
	})
	ventNoise := NewNoiseField(seed+2, NoiseSettings{
		BaseRoughness: vents.BaseRoughness,
		Layers:        vents.Layers,
		Persistence:   vents.Persistence,
	})

	for cell := 0; cell < n; cell++ {
		dir := grid.CellToDirection(cell)

		f.cells[ResourceCO2][cell] = res.BaselineCO2
		f.cells[ResourceO2][cell] = res.BaselineO2
		f.cells[ResourceSulfur][cell] = res.BaselineSulfur

		p := deposits.SampleOffset(dir, depositOffsets[ResourcePhosphorus])
		f.cells[ResourcePhosphorus][cell] = max0((p - res.PatchBias) * res.PhosphorusStrength)

		fe := deposits.SampleOffset(dir, depositOffsets[ResourceIron])
		f.cells[ResourceIron][cell] = max0((fe - res.PatchBias) * res.IronStrength)

		si := deposits.SampleOffset(dir, depositOffsets[ResourceSilicon])
		f.cells[ResourceSilicon][cell] = max0(res.SiliconBase + (si-0.5)*2*res.SiliconSwing)

		ca := deposits.SampleOffset(dir, depositOffsets[ResourceCalcium])
		f.cells[ResourceCalcium][cell] = max0(res.CalciumBase + (ca-0.5)*2*res.CalciumSwing)

		if s := ventNoise.Sample(dir); s > vents.Threshold {
			f.cells[ResourceH2S][cell] = (s - vents.Threshold) * vents.SeedStrength
			f.ventCells = append(f.ventCells, cell)
			f.ventDirs = append(f.ventDirs, dir)
		}
	}
	return f
}

// Grid returns the field's surface grid.
func (f *ResourceField) Grid() *SurfaceGrid {
	return f.grid
}

// Get returns the quantity of a resource in a cell, 0 for invalid indices.
func (f *ResourceField) Get(cell int, r Resource) float64 {
	if r >= ResourceCount || cell < 0 || cell >= len(f.cells[r]) {
		return 0
	}
	return f.cells[r][cell]
}

// Add changes the quantity of a resource in a cell by delta, clamping the
// result at 0. Invalid indices and zero deltas are no-ops.
func (f *ResourceField) Add(cell int, r Resource, delta float64) {
	if delta == 0 || r >= ResourceCount || cell < 0 || cell >= len(f.cells[r]) {
		return
	}
	v := f.cells[r][cell] + delta
	if v < 0 {
		v = 0
	}
	f.cells[r][cell] = v
}

// ReplenishVents tops up H2S at every vent cell toward the vent cap.
// With sea-only gating enabled, vents whose surface lies at or above the
// ocean radius stay dormant. radiusAt is the terrain's displaced radius.
func (f *ResourceField) ReplenishVents(radiusAt func(r3.Vec) float64, seaRadius float64) {
	for i, cell := range f.ventCells {
		if f.ventCfg.SeaOnly && radiusAt != nil && radiusAt(f.ventDirs[i]) >= seaRadius {
			continue
		}
		cur := f.cells[ResourceH2S][cell]
		if cur >= f.ventCfg.H2SMax {
			continue
		}
		v := cur + f.ventCfg.Replenish
		if v > f.ventCfg.H2SMax {
			v = f.ventCfg.H2SMax
		}
		f.cells[ResourceH2S][cell] = v
	}
}

// VentCells returns the cell ids chosen as vents at seeding time.
func (f *ResourceField) VentCells() []int {
	return f.ventCells
}

// VentDirs returns the cell-center directions of the vent cells.
func (f *ResourceField) VentDirs() []r3.Vec {
	return f.ventDirs
}

// Total sums a resource across all cells.
func (f *ResourceField) Total(r Resource) float64 {
	if r >= ResourceCount {
		return 0
	}
	sum := 0.0
	for _, v := range f.cells[r] {
		sum += v
	}
	return sum
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
