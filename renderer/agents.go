package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/planetsoup/game"
	"github.com/pthm-cable/planetsoup/systems"
)

// DrawAgents renders the per-frame agent batches as shaded dots with a
// heading tick. Must be called inside BeginMode3D.
func DrawAgents(batches [][]game.AgentInstance) {
	for _, batch := range batches {
		for i := range batch {
			drawAgent(&batch[i])
		}
	}
}

func drawAgent(a *game.AgentInstance) {
	color := rl.Color{R: 230, G: 220, B: 120, A: 255}
	if a.Sea {
		color = rl.Color{R: 120, G: 230, B: 200, A: 255}
	}

	// Dim toward red as energy runs out.
	e := clamp01(a.Energy / 20)
	color.G = uint8(float64(color.G) * (0.4 + 0.6*e))
	color.B = uint8(float64(color.B) * (0.4 + 0.6*e))

	rl.DrawSphereEx(Vec3(a.Pos), float32(a.Size), 6, 6, color)

	tip := r3.Add(a.Pos, r3.Scale(a.Size*2.5, systems.Forward(a.Rot)))
	rl.DrawLine3D(Vec3(a.Pos), Vec3(tip), color)
}
