package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// SurfaceGrid maps between unit directions and discrete surface cells.
// The sphere is tiled by the same six cube faces the mesher uses, each
// divided into resolution x resolution cells, for 6*r*r cells total.
// Cell ids are face*r*r + y*r + x.
type SurfaceGrid struct {
	resolution int
}

// NewSurfaceGrid creates a grid with the given per-face resolution.
// Resolutions below 1 are raised to 1.
func NewSurfaceGrid(resolution int) *SurfaceGrid {
	if resolution < 1 {
		resolution = 1
	}
	return &SurfaceGrid{resolution: resolution}
}

// Resolution returns the per-face cell resolution.
func (g *SurfaceGrid) Resolution() int {
	return g.resolution
}

// CellCount returns the total number of cells.
func (g *SurfaceGrid) CellCount() int {
	return 6 * g.resolution * g.resolution
}

// DirectionToFaceUV projects a direction onto its dominant cube face.
// Ties between axes resolve Y over X over Z, matching the face list order.
// u and v are clamped to [-1,1].
func (g *SurfaceGrid) DirectionToFaceUV(dir r3.Vec) (face int, u, v float64) {
	ax, ay, az := math.Abs(dir.X), math.Abs(dir.Y), math.Abs(dir.Z)

	switch {
	case ay >= ax && ay >= az:
		if dir.Y >= 0 {
			face = 0
		} else {
			face = 1
		}
	case ax >= az:
		if dir.X >= 0 {
			face = 3
		} else {
			face = 2
		}
	default:
		if dir.Z >= 0 {
			face = 4
		} else {
			face = 5
		}
	}

	up := faceUps[face]
	axisA, axisB := faceAxes(up)

	// Project onto the face plane at distance 1 along up.
	d := r3.Dot(dir, up)
	if d == 0 {
		return face, 0, 0
	}
	q := r3.Scale(1/d, dir)
	u = clamp(r3.Dot(q, axisA), -1, 1)
	v = clamp(r3.Dot(q, axisB), -1, 1)
	return face, u, v
}

// DirectionToCell returns the cell containing a direction. The zero
// direction maps to cell 0.
func (g *SurfaceGrid) DirectionToCell(dir r3.Vec) int {
	if dir.X == 0 && dir.Y == 0 && dir.Z == 0 {
		return 0
	}
	face, u, v := g.DirectionToFaceUV(dir)
	r := g.resolution
	x := uvToIndex(u, r)
	y := uvToIndex(v, r)
	return face*r*r + y*r + x
}

// CellToDirection returns the unit direction through a cell's center.
// Out-of-range cells return the zero vector.
func (g *SurfaceGrid) CellToDirection(cell int) r3.Vec {
	if cell < 0 || cell >= g.CellCount() {
		return r3.Vec{}
	}
	r := g.resolution
	face := cell / (r * r)
	rem := cell % (r * r)
	y := rem / r
	x := rem % r

	u := (float64(x)+0.5)/float64(r)*2 - 1
	v := (float64(y)+0.5)/float64(r)*2 - 1

	up := faceUps[face]
	axisA, axisB := faceAxes(up)
	p := r3.Add(up, r3.Add(r3.Scale(u, axisA), r3.Scale(v, axisB)))
	return r3.Unit(p)
}

// uvToIndex maps a face coordinate in [-1,1] to a cell index in [0,r).
// Rounding to the nearest grid line of an (r-1)-step lattice keeps the
// mapping the exact inverse of cell-center directions.
func uvToIndex(u float64, r int) int {
	i := int(math.Round((u + 1) / 2 * float64(r-1)))
	if i < 0 {
		return 0
	}
	if i >= r {
		return r - 1
	}
	return i
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
