// Terrain noise preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/terrainpreview
package main

import (
	"fmt"
	"image/color"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/planetsoup/config"
	"github.com/pthm-cable/planetsoup/systems"
)

const (
	windowWidth  = 1060
	windowHeight = 640
	previewW     = 640
	previewH     = 320
	gridW        = 320
	gridH        = 160
	panelWidth   = windowWidth - previewW - 30
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Terrain Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()

	heights := make([]float64, gridW*gridH)
	seaMask := make([]bool, gridW*gridH)
	img := rl.GenImageColor(gridW, gridH, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			generateHeights(heights, seaMask, params)
			updateTexture(texture, heights, seaMask, params)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Equirectangular preview
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridW, Height: gridH},
			rl.Rectangle{X: 10, Y: 10, Width: previewW, Height: previewH},
			rl.Vector2{},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewW, previewH, rl.DarkGray)

		// Stats
		minH, maxH, seaFrac := 1.0, 0.0, 0.0
		for i, h := range heights {
			if h < minH {
				minH = h
			}
			if h > maxH {
				maxH = h
			}
			if seaMask[i] {
				seaFrac++
			}
		}
		seaFrac /= float64(len(heights))

		statsY := int32(previewH + 25)
		rl.DrawText(fmt.Sprintf("Min: %.3f  Max: %.3f  Sea: %.0f%%", minH, maxH, seaFrac*100), 15, statsY, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewW + 20)
		panelY := float32(10)

		rl.DrawText("Terrain Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		params.BaseRoughness, needsRegen = slider(panelX, &panelY, "Base roughness (frequency)",
			params.BaseRoughness, 0.2, 4.0, "%.2f", needsRegen)

		layers := float64(params.Layers)
		layers, needsRegen = slider(panelX, &panelY, "Layers (octaves)",
			layers, 0, 8, "%.0f", needsRegen)
		params.Layers = int(layers)

		params.Persistence, needsRegen = slider(panelX, &panelY, "Persistence (amplitude decay)",
			params.Persistence, 0.1, 1.0, "%.2f", needsRegen)

		params.Magnitude, needsRegen = slider(panelX, &panelY, "Magnitude (displacement)",
			params.Magnitude, 0, 0.5, "%.2f", needsRegen)

		params.OceanThreshold, needsRegen = slider(panelX, &panelY, "Ocean threshold",
			params.OceanThreshold, 0, 1.0, "%.2f", needsRegen)

		params.OceanDepth, needsRegen = slider(panelX, &panelY, "Ocean depth (compression)",
			params.OceanDepth, 0, 1.0, "%.2f", needsRegen)

		seed := float64(params.Seed)
		seed, needsRegen = slider(panelX, &panelY, "Seed",
			seed, 0, 99999, "%.0f", needsRegen)
		params.Seed = int64(seed)

		panelY += 10
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			needsRegen = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			yaml := ""
			for _, line := range yamlLines(params) {
				yaml += line + "\n"
			}
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func defaultParams() config.TerrainConfig {
	return config.TerrainConfig{
		Resolution:     96,
		Radius:         10,
		Magnitude:      0.12,
		BaseRoughness:  1.1,
		Layers:         5,
		Persistence:    0.5,
		OceanThreshold: 0.48,
		OceanDepth:     0.25,
		Seed:           1337,
	}
}

// slider draws a labelled SliderBar row and advances the panel cursor.
func slider(panelX float32, panelY *float32, label string, value, minV, maxV float64, format string, regen bool) (float64, bool) {
	rl.DrawText(label, int32(panelX), int32(*panelY), 14, rl.Gray)
	*panelY += 18
	next := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: *panelY, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf("%.1f", minV), fmt.Sprintf("%.1f", maxV),
		float32(value), float32(minV), float32(maxV),
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(panelX+float32(panelWidth-70)), int32(*panelY+2), 16, rl.DarkGray)
	*panelY += 35
	if float64(next) != value {
		return float64(next), true
	}
	return value, regen
}

func yamlLines(p config.TerrainConfig) []string {
	return []string{
		"terrain:",
		fmt.Sprintf("  base_roughness: %.2f", p.BaseRoughness),
		fmt.Sprintf("  layers: %d", p.Layers),
		fmt.Sprintf("  persistence: %.2f", p.Persistence),
		fmt.Sprintf("  magnitude: %.2f", p.Magnitude),
		fmt.Sprintf("  ocean_threshold: %.2f", p.OceanThreshold),
		fmt.Sprintf("  ocean_depth: %.2f", p.OceanDepth),
		fmt.Sprintf("  seed: %d", p.Seed),
	}
}

// generateHeights samples the terrain on an equirectangular grid.
func generateHeights(heights []float64, seaMask []bool, params config.TerrainConfig) {
	terrain := systems.NewTerrain(params)

	for y := 0; y < gridH; y++ {
		lat := math.Pi * ((float64(y)+0.5)/gridH - 0.5)
		cosLat := math.Cos(lat)
		for x := 0; x < gridW; x++ {
			lon := 2 * math.Pi * (float64(x) + 0.5) / gridW
			dir := r3.Vec{
				X: cosLat * math.Cos(lon),
				Y: -math.Sin(lat),
				Z: cosLat * math.Sin(lon),
			}
			heights[y*gridW+x] = terrain.Height(dir)
			seaMask[y*gridW+x] = terrain.IsSea(dir)
		}
	}
}

// updateTexture updates the GPU texture from the sampled heights.
func updateTexture(texture rl.Texture2D, heights []float64, seaMask []bool, params config.TerrainConfig) {
	pixels := make([]color.RGBA, len(heights))
	for i, h := range heights {
		if seaMask[i] {
			// Deeper water, darker blue
			t := 0.0
			if params.OceanThreshold > 0 {
				t = clamp01(h / params.OceanThreshold)
			}
			pixels[i] = color.RGBA{
				R: uint8(10 + t*40),
				G: uint8(30 + t*70),
				B: uint8(90 + t*80),
				A: 255,
			}
			continue
		}
		// Land gradient green -> brown -> white
		t := clamp01((h - params.OceanThreshold) / (1 - params.OceanThreshold + 1e-9))
		switch {
		case t < 0.5:
			s := t / 0.5
			pixels[i] = color.RGBA{
				R: uint8(70 + s*50),
				G: uint8(130 + s*5),
				B: uint8(70 + s*10),
				A: 255,
			}
		default:
			s := (t - 0.5) / 0.5
			pixels[i] = color.RGBA{
				R: uint8(120 + s*130),
				G: uint8(135 + s*115),
				B: uint8(80 + s*170),
				A: 255,
			}
		}
	}
	rl.UpdateTexture(texture, pixels)
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
