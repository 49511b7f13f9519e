package systems

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// faceUps lists the six cube-face normals. The order is load-bearing:
// SurfaceGrid cell indices encode the face position in this list.
var faceUps = [6]r3.Vec{
	{Y: 1},  // +Y
	{Y: -1}, // -Y
	{X: -1}, // -X
	{X: 1},  // +X
	{Z: 1},  // +Z
	{Z: -1}, // -Z
}

// faceAxes returns the in-face basis for a face normal. The component
// rotation keeps the basis orthogonal for any axis-aligned up.
func faceAxes(up r3.Vec) (axisA, axisB r3.Vec) {
	axisA = r3.Vec{X: up.Y, Y: up.Z, Z: up.X}
	axisB = r3.Cross(up, axisA)
	return axisA, axisB
}

// facePointOnSphere maps in-face percentages in [0,1]^2 to a unit direction.
func facePointOnSphere(up, axisA, axisB r3.Vec, px, py float64) r3.Vec {
	p := r3.Add(up, r3.Add(
		r3.Scale(2*px-1, axisA),
		r3.Scale(2*py-1, axisB),
	))
	return r3.Unit(p)
}

// MeshBuffer holds a generated planet mesh. Vertices are displaced surface
// points; Triangles index into Vertices three at a time, counter-clockwise
// when viewed from outside. The buffer is immutable after generation.
type MeshBuffer struct {
	Vertices  []r3.Vec
	Normals   []r3.Vec
	Triangles []int32
}

// BuildPlanetMesh generates the cube-sphere mesh at the given per-face
// resolution, displacing each vertex to the terrain's surface radius.
// Faces do not share seam vertices.
func BuildPlanetMesh(terrain *Terrain, resolution int) *MeshBuffer {
	r := resolution
	if r < 1 {
		r = 1
	}
	denom := float64(r - 1)
	if denom < 1 {
		denom = 1
	}

	vertsPerFace := r * r
	trisPerFace := (r - 1) * (r - 1) * 2

	mesh := &MeshBuffer{
		Vertices:  make([]r3.Vec, 0, 6*vertsPerFace),
		Normals:   make([]r3.Vec, 0, 6*vertsPerFace),
		Triangles: make([]int32, 0, 6*trisPerFace*3),
	}

	for _, up := range faceUps {
		axisA, axisB := faceAxes(up)
		base := int32(len(mesh.Vertices))

		for y := 0; y < r; y++ {
			for x := 0; x < r; x++ {
				dir := facePointOnSphere(up, axisA, axisB,
					float64(x)/denom, float64(y)/denom)
				mesh.Vertices = append(mesh.Vertices, terrain.SurfacePoint(dir))
				mesh.Normals = append(mesh.Normals, dir)

				if x < r-1 && y < r-1 {
					i := base + int32(y*r+x)
					v0 := i
					v1 := i + int32(r)
					v2 := i + int32(r) + 1
					v3 := i + 1
					mesh.Triangles = append(mesh.Triangles,
						v0, v1, v3,
						v3, v1, v2,
					)
				}
			}
		}
	}
	return mesh
}

// TriangleCount returns the number of triangles in the buffer.
func (m *MeshBuffer) TriangleCount() int {
	return len(m.Triangles) / 3
}
