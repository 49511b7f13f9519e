package systems

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/planetsoup/config"
)

func testResourcesConfig() config.ResourcesConfig {
	return config.ResourcesConfig{
		PatchRoughness:     2.2,
		PatchLayers:        3,
		PatchPersistence:   0.5,
		BaselineCO2:        40,
		BaselineO2:         6,
		BaselineSulfur:     0,
		PhosphorusStrength: 12,
		IronStrength:       8,
		PatchBias:          0.55,
		SiliconBase:        10,
		SiliconSwing:       6,
		CalciumBase:        8,
		CalciumSwing:       5,
	}
}

func testVentsConfig() config.VentsConfig {
	return config.VentsConfig{
		BaseRoughness: 4.5,
		Layers:        3,
		Persistence:   0.55,
		Threshold:     0.6,
		SeedStrength:  60,
		H2SMax:        25,
		Replenish:     1.5,
		IntervalSec:   2,
		SeaOnly:       false,
	}
}

func testField() *ResourceField {
	return NewResourceField(NewSurfaceGrid(16), testResourcesConfig(), testVentsConfig(), 42)
}

// ---------- seeding ----------

func TestFieldBaselines(t *testing.T) {
	f := testField()

	for cell := 0; cell < f.Grid().CellCount(); cell++ {
		if got := f.Get(cell, ResourceCO2); got != 40 {
			t.Fatalf("cell %d: expected baseline CO2 40, got %f", cell, got)
		}
		if got := f.Get(cell, ResourceO2); got != 6 {
			t.Fatalf("cell %d: expected baseline O2 6, got %f", cell, got)
		}
	}
}

func TestFieldNonNegativeSeeding(t *testing.T) {
	f := testField()

	for cell := 0; cell < f.Grid().CellCount(); cell++ {
		for r := Resource(0); r < ResourceCount; r++ {
			if v := f.Get(cell, r); v < 0 {
				t.Fatalf("cell %d resource %s: negative quantity %f", cell, r, v)
			}
		}
	}
}

func TestFieldVentsSelected(t *testing.T) {
	f := testField()

	vents := f.VentCells()
	if len(vents) == 0 {
		t.Fatal("expected vent cells with threshold 0.6")
	}
	if len(vents) != len(f.VentDirs()) {
		t.Fatalf("vent cells (%d) and dirs (%d) disagree", len(vents), len(f.VentDirs()))
	}
	for _, cell := range vents {
		if f.Get(cell, ResourceH2S) <= 0 {
			t.Errorf("vent cell %d: expected positive H2S seed", cell)
		}
	}
}

func TestFieldNonVentCellsNoH2S(t *testing.T) {
	f := testField()

	ventSet := make(map[int]bool)
	for _, cell := range f.VentCells() {
		ventSet[cell] = true
	}
	for cell := 0; cell < f.Grid().CellCount(); cell++ {
		if !ventSet[cell] && f.Get(cell, ResourceH2S) != 0 {
			t.Fatalf("non-vent cell %d: expected no H2S, got %f", cell, f.Get(cell, ResourceH2S))
		}
	}
}

// ---------- access ----------

func TestFieldInvalidAccess(t *testing.T) {
	f := testField()
	n := f.Grid().CellCount()

	if v := f.Get(-1, ResourceCO2); v != 0 {
		t.Errorf("negative cell: expected 0, got %f", v)
	}
	if v := f.Get(n, ResourceCO2); v != 0 {
		t.Errorf("out-of-range cell: expected 0, got %f", v)
	}
	if v := f.Get(0, ResourceCount); v != 0 {
		t.Errorf("invalid resource: expected 0, got %f", v)
	}

	// Writes to invalid indices must not panic and must change nothing.
	total := f.Total(ResourceCO2)
	f.Add(-1, ResourceCO2, 100)
	f.Add(n, ResourceCO2, 100)
	f.Add(0, ResourceCount, 100)
	if f.Total(ResourceCO2) != total {
		t.Error("invalid writes changed the field")
	}
}

func TestFieldAddClampsAtZero(t *testing.T) {
	f := testField()

	f.Add(5, ResourceCO2, -1e9)
	if v := f.Get(5, ResourceCO2); v != 0 {
		t.Errorf("expected clamp at 0, got %f", v)
	}

	// Adversarial alternating writes never go negative.
	for i := 0; i < 100; i++ {
		f.Add(5, ResourceIron, -7)
		f.Add(5, ResourceIron, 3)
		if v := f.Get(5, ResourceIron); v < 0 {
			t.Fatalf("iteration %d: negative quantity %f", i, v)
		}
	}
}

// ---------- vents ----------

func TestVentReplenishCapped(t *testing.T) {
	f := testField()
	h2sCap := testVentsConfig().H2SMax

	for i := 0; i < 50; i++ {
		f.ReplenishVents(nil, 0)
	}
	for _, cell := range f.VentCells() {
		if v := f.Get(cell, ResourceH2S); v > h2sCap+1e-9 {
			t.Fatalf("vent cell %d: H2S %f above cap %f", cell, v, h2sCap)
		}
	}
}

func TestVentReplenishRaises(t *testing.T) {
	f := testField()
	cell := f.VentCells()[0]

	f.Add(cell, ResourceH2S, -1e9)
	f.ReplenishVents(nil, 0)
	if v := f.Get(cell, ResourceH2S); v != testVentsConfig().Replenish {
		t.Errorf("expected one replenish increment, got %f", v)
	}
}

func TestVentSeaOnlyGating(t *testing.T) {
	vents := testVentsConfig()
	vents.SeaOnly = true
	f := NewResourceField(NewSurfaceGrid(16), testResourcesConfig(), vents, 42)

	cell := f.VentCells()[0]
	f.Add(cell, ResourceH2S, -1e9)

	// Every vent sits above the sea radius: nothing replenishes.
	aboveSea := func(dir r3.Vec) float64 { return 10 }
	f.ReplenishVents(aboveSea, 5)
	if v := f.Get(cell, ResourceH2S); v != 0 {
		t.Errorf("gated vent should stay dry, got %f", v)
	}

	// Every vent below the sea radius: replenishment resumes.
	belowSea := func(dir r3.Vec) float64 { return 1 }
	f.ReplenishVents(belowSea, 5)
	if v := f.Get(cell, ResourceH2S); v != vents.Replenish {
		t.Errorf("submerged vent should replenish, got %f", v)
	}
}
