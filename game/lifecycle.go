package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/planetsoup/components"
	"github.com/pthm-cable/planetsoup/config"
	"github.com/pthm-cable/planetsoup/systems"
)

// seedJitter bounds how far a child's wander-noise seed drifts from the
// parent's, keeping movement within a family loosely correlated.
const seedJitter = 10.0

// spawnPlacementTries caps the resampling when hunting for a spawn cell
// matching the sea/land preference.
const spawnPlacementTries = 10

// spawnInitialPopulation creates the starting replicators.
func (g *Game) spawnInitialPopulation() {
	cfg := config.Cfg().Ecosystem

	for i := 0; i < cfg.Population.Initial; i++ {
		dir := g.pickSpawnDirection(true)
		size := cfg.Spawning.SizeMin +
			g.rng.Float64()*(cfg.Spawning.SizeMax-cfg.Spawning.SizeMin)
		g.spawnReplicator(dir, cfg.Spawning.InitialEnergy,
			g.rng.Float64()*1000, size, g.defaultTraits())
	}
}

// spawnReplicator creates a new replicator at a surface direction.
func (g *Game) spawnReplicator(dir r3.Vec, energy, seed, size float64, traits components.Traits) ecs.Entity {
	forward := g.randomTangent(dir)

	pos := components.Position{Point: g.terrain.SurfacePoint(dir)}
	rot := components.Orientation{Rot: systems.LookRotation(forward, dir)}
	vitals := components.Vitals{
		Lifespan: g.randomLifespan(),
		Energy:   energy,
		Size:     size,
		Alive:    true,
	}
	motion := components.Motion{Seed: seed, Dir: dir}

	entity := g.agentMapper.NewEntity(&pos, &rot, &vitals, &traits, &motion)
	g.aliveCount++
	return entity
}

// updateSpawning rolls the spontaneous spawn timer. The first spawn is
// forced before the startup window closes so a fresh world never idles
// empty; after that, each attempt fires with the configured chance.
func (g *Game) updateSpawning() {
	cfg := config.Cfg().Ecosystem

	fire := g.rng.Float64() < cfg.Spawning.Chance
	if !g.spawnedOnce && g.clock+cfg.Spawning.IntervalSec >= cfg.Spawning.StartupWindowSec {
		fire = true
	}
	if !fire {
		return
	}

	if g.aliveCount >= cfg.Population.Max {
		g.collector.RecordSpawnRejected()
		return
	}

	wantSea := g.rng.Float64() < cfg.Spawning.SeaPreference
	traits := g.defaultTraits()
	if traits.SeaOnlySpawn {
		wantSea = true
	}

	dir := g.pickSpawnDirection(wantSea)
	size := cfg.Spawning.SizeMin +
		g.rng.Float64()*(cfg.Spawning.SizeMax-cfg.Spawning.SizeMin)
	g.spawnReplicator(dir, cfg.Spawning.InitialEnergy,
		g.rng.Float64()*1000, size, traits)

	g.collector.RecordSpawn()
	g.spawnedOnce = true
}

// pickSpawnDirection samples random directions until one matches the
// sea/land preference, settling for the last sample when none does.
func (g *Game) pickSpawnDirection(wantSea bool) r3.Vec {
	var dir r3.Vec
	for i := 0; i < spawnPlacementTries; i++ {
		dir = g.randomDirection()
		if g.terrain.IsSea(dir) == wantSea {
			return dir
		}
	}
	return dir
}

// defaultTraits builds the trait set configured for spawned replicators.
func (g *Game) defaultTraits() components.Traits {
	cfg := config.Cfg().Ecosystem
	return components.Traits{
		SeaOnlySpawn:     cfg.Traits.SeaOnlySpawn,
		SeaOnlyReproduce: cfg.Traits.SeaOnlyReproduce,
		SeaOnlyMove:      cfg.Traits.SeaOnlyMove,
		LandSpeedFactor:  cfg.Movement.LandSpeedFactor,
	}
}

// randomLifespan draws a uniform lifespan from the configured range.
func (g *Game) randomLifespan() float64 {
	cfg := config.Cfg().Ecosystem.Reproduction
	return cfg.LifespanMin + g.rng.Float64()*(cfg.LifespanMax-cfg.LifespanMin)
}

// randomDirection samples a uniform direction on the unit sphere.
func (g *Game) randomDirection() r3.Vec {
	z := g.rng.Float64()*2 - 1
	theta := g.rng.Float64() * 2 * math.Pi
	r := math.Sqrt(1 - z*z)
	return r3.Vec{X: r * math.Cos(theta), Y: r * math.Sin(theta), Z: z}
}

// randomTangent returns a unit vector perpendicular to dir with a uniform
// random twist.
func (g *Game) randomTangent(dir r3.Vec) r3.Vec {
	ref := r3.Vec{X: 1}
	if math.Abs(dir.X) > 0.9 {
		ref = r3.Vec{Y: 1}
	}
	a := r3.Unit(r3.Cross(dir, ref))
	b := r3.Cross(dir, a)
	phi := g.rng.Float64() * 2 * math.Pi
	return r3.Add(r3.Scale(math.Cos(phi), a), r3.Scale(math.Sin(phi), b))
}

// cleanupDead removes flagged entities and reports death causes.
func (g *Game) cleanupDead() {
	type deadInfo struct {
		entity ecs.Entity
		cause  components.DeathCause
	}
	var toRemove []deadInfo

	query := g.agentFilter.Query()
	for query.Next() {
		entity := query.Entity()
		_, _, vitals, _, _ := query.Get()

		if !vitals.Alive {
			toRemove = append(toRemove, deadInfo{entity: entity, cause: vitals.Cause})
		}
	}

	for _, dead := range toRemove {
		g.collector.RecordDeath(dead.cause)
		g.world.RemoveEntity(dead.entity)
		g.aliveCount--
		g.deadCount++
	}
}
