package systems

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// ---------- cell mapping ----------

func TestGridRoundTrip(t *testing.T) {
	for _, r := range []int{1, 2, 3, 7, 16, 32} {
		g := NewSurfaceGrid(r)
		for cell := 0; cell < g.CellCount(); cell++ {
			dir := g.CellToDirection(cell)
			got := g.DirectionToCell(dir)
			if got != cell {
				t.Fatalf("r=%d: round trip failed for cell %d, got %d (dir %v)", r, cell, got, dir)
			}
		}
	}
}

func TestGridAxisDirectionsHitDistinctFaces(t *testing.T) {
	g := NewSurfaceGrid(8)

	dirs := []r3.Vec{
		{Y: 1}, {Y: -1}, {X: -1}, {X: 1}, {Z: 1}, {Z: -1},
	}
	seen := make(map[int]bool)
	for i, dir := range dirs {
		face, _, _ := g.DirectionToFaceUV(dir)
		if face != i {
			t.Errorf("direction %v: expected face %d, got %d", dir, i, face)
		}
		if seen[face] {
			t.Errorf("face %d hit twice", face)
		}
		seen[face] = true
	}
	if len(seen) != 6 {
		t.Errorf("expected 6 distinct faces, got %d", len(seen))
	}
}

func TestGridCellCount(t *testing.T) {
	cases := []struct{ r, want int }{
		{1, 6},
		{2, 24},
		{32, 6144},
	}
	for _, c := range cases {
		g := NewSurfaceGrid(c.r)
		if got := g.CellCount(); got != c.want {
			t.Errorf("r=%d: expected %d cells, got %d", c.r, c.want, got)
		}
	}
}

func TestGridZeroDirection(t *testing.T) {
	g := NewSurfaceGrid(8)
	if got := g.DirectionToCell(r3.Vec{}); got != 0 {
		t.Errorf("zero direction should map to cell 0, got %d", got)
	}
}

func TestGridInvalidCell(t *testing.T) {
	g := NewSurfaceGrid(4)
	for _, cell := range []int{-1, g.CellCount(), g.CellCount() + 100} {
		if dir := g.CellToDirection(cell); dir != (r3.Vec{}) {
			t.Errorf("cell %d: expected zero vector, got %v", cell, dir)
		}
	}
}

func TestGridUnnormalizedInput(t *testing.T) {
	g := NewSurfaceGrid(8)

	// Cell lookup should be scale-invariant in the direction.
	dir := r3.Vec{X: 0.3, Y: 0.8, Z: -0.2}
	a := g.DirectionToCell(dir)
	b := g.DirectionToCell(r3.Scale(25, dir))
	if a != b {
		t.Errorf("expected scale-invariant mapping, got %d and %d", a, b)
	}
}

func TestGridCellIDsInRange(t *testing.T) {
	g := NewSurfaceGrid(16)
	for _, dir := range sphereSamples(2000) {
		cell := g.DirectionToCell(dir)
		if cell < 0 || cell >= g.CellCount() {
			t.Fatalf("cell %d out of range for dir %v", cell, dir)
		}
	}
}

func TestGridResolutionOne(t *testing.T) {
	g := NewSurfaceGrid(1)

	// One cell per face, each face center maps back to it.
	for face := 0; face < 6; face++ {
		dir := g.CellToDirection(face)
		if got := g.DirectionToCell(dir); got != face {
			t.Errorf("face %d: expected cell %d, got %d", face, face, got)
		}
	}
}

func BenchmarkDirectionToCell(b *testing.B) {
	g := NewSurfaceGrid(32)
	dirs := sphereSamples(256)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.DirectionToCell(dirs[i%len(dirs)])
	}
}
