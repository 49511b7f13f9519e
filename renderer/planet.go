// Package renderer draws the planet and its inhabitants with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/planetsoup/systems"
)

// PlanetModel holds a mesh baked into raylib-friendly buffers with
// per-triangle shading. Build once per terrain generation, draw per frame.
type PlanetModel struct {
	verts   []rl.Vector3 // 3 per triangle
	colors  []rl.Color   // 1 per triangle
	vents   []rl.Vector3
	ventDot float32
}

// Vec3 converts a gonum vector to a raylib vector.
func Vec3(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// NewPlanetModel bakes a mesh buffer into draw-ready triangle lists,
// shading each triangle by its elevation band.
func NewPlanetModel(mesh *systems.MeshBuffer, terrain *systems.Terrain, field *systems.ResourceField) *PlanetModel {
	cfg := terrain.Config()
	seaRadius := terrain.SeaRadius()

	triCount := mesh.TriangleCount()
	m := &PlanetModel{
		verts:   make([]rl.Vector3, 0, triCount*3),
		colors:  make([]rl.Color, 0, triCount),
		ventDot: float32(cfg.Radius) * 0.012,
	}

	for i := 0; i < len(mesh.Triangles); i += 3 {
		a := mesh.Vertices[mesh.Triangles[i]]
		b := mesh.Vertices[mesh.Triangles[i+1]]
		c := mesh.Vertices[mesh.Triangles[i+2]]

		centroid := r3.Scale(1.0/3.0, r3.Add(a, r3.Add(b, c)))
		m.verts = append(m.verts, Vec3(a), Vec3(b), Vec3(c))
		m.colors = append(m.colors, elevationColor(r3.Norm(centroid), seaRadius, cfg.Radius, cfg.Magnitude))
	}

	if field != nil {
		for _, dir := range field.VentDirs() {
			p := r3.Scale(terrain.SurfaceRadius(dir)*1.002, dir)
			m.vents = append(m.vents, Vec3(p))
		}
	}

	return m
}

// Draw renders the planet triangles and vent markers. Must be called
// inside BeginMode3D.
func (m *PlanetModel) Draw() {
	// Seam triangles flip winding between faces, draw both sides.
	rl.DisableBackfaceCulling()
	for i, c := range m.colors {
		v := m.verts[i*3:]
		rl.DrawTriangle3D(v[0], v[1], v[2], c)
	}
	rl.EnableBackfaceCulling()

	for _, p := range m.vents {
		rl.DrawSphereEx(p, m.ventDot, 6, 6, rl.Orange)
	}
}

// elevationColor shades by elevation band: deep to shallow water below the
// sea radius, lowland to snow above it.
func elevationColor(radius, seaRadius, baseRadius, magnitude float64) rl.Color {
	if magnitude <= 0 {
		return rl.Color{R: 90, G: 130, B: 90, A: 255}
	}

	// Normalized height in [0,1] over the displacement band.
	h := (radius/baseRadius - 1) / magnitude
	sea := (seaRadius/baseRadius - 1) / magnitude

	if radius < seaRadius {
		depth := clamp01((sea - h) / (sea + 1e-9))
		return lerpColor(
			rl.Color{R: 40, G: 90, B: 160, A: 255},
			rl.Color{R: 10, G: 30, B: 90, A: 255},
			depth,
		)
	}

	land := clamp01((h - sea) / (1 - sea + 1e-9))
	switch {
	case land < 0.35:
		return lerpColor(
			rl.Color{R: 70, G: 130, B: 70, A: 255},
			rl.Color{R: 110, G: 140, B: 80, A: 255},
			land/0.35,
		)
	case land < 0.75:
		return lerpColor(
			rl.Color{R: 110, G: 140, B: 80, A: 255},
			rl.Color{R: 130, G: 110, B: 90, A: 255},
			(land-0.35)/0.4,
		)
	default:
		return lerpColor(
			rl.Color{R: 130, G: 110, B: 90, A: 255},
			rl.Color{R: 235, G: 235, B: 240, A: 255},
			(land-0.75)/0.25,
		)
	}
}

func lerpColor(a, b rl.Color, t float64) rl.Color {
	t = clamp01(t)
	return rl.Color{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: 255,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
