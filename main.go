package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/planetsoup/camera"
	"github.com/pthm-cable/planetsoup/config"
	"github.com/pthm-cable/planetsoup/game"
	"github.com/pthm-cable/planetsoup/renderer"
	"github.com/pthm-cable/planetsoup/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per frame (higher = faster headless runs)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	}

	if *headless {
		runHeadless(opts, *maxTicks, *stepsPerUpdate)
		return
	}
	runWindowed(opts, *maxTicks, *stepsPerUpdate)
}

// runHeadless drives the simulation without graphics.
func runHeadless(opts game.Options, maxTicks, stepsPerUpdate int) {
	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"steps_per_update", stepsPerUpdate,
	)
	g.LogWorldState()

	for {
		for i := 0; i < stepsPerUpdate; i++ {
			g.Step()
		}

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			g.LogWorldState()
			return
		}
	}
}

// runWindowed drives the simulation with the raylib presentation layer.
func runWindowed(opts game.Options, maxTicks, stepsPerUpdate int) {
	cfg := config.Cfg()

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Planet Soup")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	cam := camera.New(cfg.Terrain.Radius)
	planet := renderer.NewPlanetModel(g.Mesh(), g.Terrain(), g.Field())

	paused := false
	terrainSeedBump := int64(0)

	for !rl.WindowShouldClose() {
		// Input
		if rl.IsKeyPressed(rl.KeySpace) {
			paused = !paused
		}
		if rl.IsKeyPressed(rl.KeyComma) && stepsPerUpdate > 1 {
			stepsPerUpdate--
		}
		if rl.IsKeyPressed(rl.KeyPeriod) {
			stepsPerUpdate++
		}
		if rl.IsKeyPressed(rl.KeyR) {
			terrainSeedBump++
			tc := g.Terrain().Config()
			tc.Seed += terrainSeedBump
			g.RegenerateTerrain(tc)
			planet = renderer.NewPlanetModel(g.Mesh(), g.Terrain(), g.Field())
		}
		if rl.IsMouseButtonDown(rl.MouseLeftButton) {
			d := rl.GetMouseDelta()
			cam.Rotate(float64(d.X)*0.005, float64(d.Y)*0.005)
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			cam.Zoom(1 - float64(wheel)*0.1)
		}

		// Simulate
		if !paused {
			for i := 0; i < stepsPerUpdate; i++ {
				g.Step()
			}
		}

		// Draw
		rlCam := rl.Camera3D{
			Position:   renderer.Vec3(cam.Position()),
			Target:     renderer.Vec3(cam.Target),
			Up:         rl.Vector3{Y: 1},
			Fovy:       45,
			Projection: rl.CameraPerspective,
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		rl.BeginMode3D(rlCam)
		planet.Draw()
		renderer.DrawAgents(g.RenderFeed())
		rl.EndMode3D()

		ui.DrawHUD(g, paused, stepsPerUpdate, int32(cfg.Screen.Height))
		rl.EndDrawing()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
}
