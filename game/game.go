// Package game orchestrates the replicator ecosystem simulation.
package game

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/planetsoup/components"
	"github.com/pthm-cable/planetsoup/config"
	"github.com/pthm-cable/planetsoup/systems"
	"github.com/pthm-cable/planetsoup/telemetry"
)

// Options configures a new game instance.
type Options struct {
	Seed      int64  // RNG seed, 0 uses the config terrain seed
	OutputDir string // CSV output directory, empty disables output
	LogStats  bool   // emit window stats via slog
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand

	agentMapper *ecs.Map5[
		components.Position,
		components.Orientation,
		components.Vitals,
		components.Traits,
		components.Motion,
	]
	agentFilter *ecs.Filter5[
		components.Position,
		components.Orientation,
		components.Vitals,
		components.Traits,
		components.Motion,
	]

	// Individual component mappers for lookups
	posMap    *ecs.Map1[components.Position]
	rotMap    *ecs.Map1[components.Orientation]
	vitalsMap *ecs.Map1[components.Vitals]
	motionMap *ecs.Map1[components.Motion]

	// World surface
	terrain *systems.Terrain
	grid    *systems.SurfaceGrid
	field   *systems.ResourceField
	mesh    *systems.MeshBuffer

	// Shared single-octave noise driving agent wander
	wanderNoise *systems.NoiseField

	// Telemetry
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool

	parallel *parallelState

	// State
	tick        int64
	clock       float64 // simulation seconds
	aliveCount  int
	deadCount   int
	spawnedOnce bool
}

// NewGame creates a new simulation from the global config.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Terrain.Seed
	}

	world := ecs.NewWorld()

	terrainCfg := cfg.Terrain
	terrainCfg.Seed = seed
	terrain := systems.NewTerrain(terrainCfg)
	grid := systems.NewSurfaceGrid(cfg.Grid.Resolution)

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}

	g := &Game{
		world: world,
		rng:   rand.New(rand.NewSource(seed)),
		agentMapper: ecs.NewMap5[
			components.Position,
			components.Orientation,
			components.Vitals,
			components.Traits,
			components.Motion,
		](world),
		agentFilter: ecs.NewFilter5[
			components.Position,
			components.Orientation,
			components.Vitals,
			components.Traits,
			components.Motion,
		](world),
		posMap:    ecs.NewMap1[components.Position](world),
		rotMap:    ecs.NewMap1[components.Orientation](world),
		vitalsMap: ecs.NewMap1[components.Vitals](world),
		motionMap: ecs.NewMap1[components.Motion](world),

		terrain: terrain,
		grid:    grid,
		field:   systems.NewResourceField(grid, cfg.Resources, cfg.Vents, seed),
		mesh:    systems.BuildPlanetMesh(terrain, cfg.Terrain.Resolution),

		wanderNoise: systems.NewNoiseField(seed+3, systems.NoiseSettings{
			BaseRoughness: 1, Layers: 1, Persistence: 1,
		}),

		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Ecosystem.DT),
		output:    output,
		logStats:  opts.LogStats,
	}
	g.parallel = newParallelState()

	if err := g.output.WriteConfig(cfg); err != nil {
		return nil, err
	}

	g.spawnInitialPopulation()

	return g, nil
}

// Step runs a single tick of the simulation.
func (g *Game) Step() {
	cfg := config.Cfg()
	dt := cfg.Ecosystem.DT

	// 1. Aging and old-age deaths
	g.agePass(dt)

	// 2. Chemosynthesis on the metabolism interval
	if g.tick%int64(cfg.Derived.MetabolismTicks) == 0 {
		g.metabolismPass()
	}

	// 3. Reproduction
	g.reproductionPass(dt)

	// 4. Movement (data-parallel)
	g.updateMovementParallel(dt)

	// 5. Vent replenishment
	if g.tick%int64(cfg.Derived.VentTicks) == 0 {
		g.field.ReplenishVents(g.terrain.SurfaceRadius, g.terrain.SeaRadius())
	}

	// 6. Spontaneous spawning
	if g.tick%int64(cfg.Derived.SpawnTicks) == 0 {
		g.updateSpawning()
	}

	// 7. Cleanup dead entities
	g.cleanupDead()

	// 8. Telemetry
	if g.collector.ShouldFlush(g.tick) {
		g.flushTelemetry()
	}

	g.tick++
	g.clock += dt
}

// RegenerateTerrain rebuilds the planet surface from a new terrain config.
// Agents snap back onto the new surface on their next movement tick.
func (g *Game) RegenerateTerrain(tc config.TerrainConfig) *systems.MeshBuffer {
	g.terrain = systems.NewTerrain(tc)
	g.mesh = systems.BuildPlanetMesh(g.terrain, tc.Resolution)
	return g.mesh
}

// Close stops background workers and flushes output files.
func (g *Game) Close() error {
	g.parallel.stopWorkers()
	return g.output.Close()
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int64 { return g.tick }

// Clock returns elapsed simulation seconds.
func (g *Game) Clock() float64 { return g.clock }

// AliveCount returns the current population.
func (g *Game) AliveCount() int { return g.aliveCount }

// DeadCount returns the cumulative death count.
func (g *Game) DeadCount() int { return g.deadCount }

// Terrain returns the active terrain sampler.
func (g *Game) Terrain() *systems.Terrain { return g.terrain }

// Grid returns the surface grid.
func (g *Game) Grid() *systems.SurfaceGrid { return g.grid }

// Field returns the resource field.
func (g *Game) Field() *systems.ResourceField { return g.field }

// Mesh returns the current planet mesh.
func (g *Game) Mesh() *systems.MeshBuffer { return g.mesh }
