// Package ui draws the on-screen overlay.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/planetsoup/game"
)

// DrawHUD renders the simulation status overlay. Must be called outside
// BeginMode3D.
func DrawHUD(g *game.Game, paused bool, stepsPerUpdate int, screenHeight int32) {
	rl.DrawText(fmt.Sprintf("Tick: %d  (%.0fs)", g.Tick(), g.Clock()), 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Population: %d  Dead: %d", g.AliveCount(), g.DeadCount()), 10, 35, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Vents: %d", len(g.Field().VentCells())), 10, 60, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Speed: %dx  [</>]", stepsPerUpdate), 10, 85, 20, rl.White)
	if paused {
		rl.DrawText("PAUSED", 10, 110, 20, rl.Yellow)
	}

	rl.DrawText("drag: orbit  wheel: zoom  space: pause  r: regen terrain",
		10, screenHeight-30, 18, rl.Gray)
}
