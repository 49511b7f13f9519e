package game

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/planetsoup/components"
	"github.com/pthm-cable/planetsoup/config"
	"github.com/pthm-cable/planetsoup/systems"
)

// agePass advances age and flags old-age deaths.
func (g *Game) agePass(dt float64) {
	query := g.agentFilter.Query()
	for query.Next() {
		_, _, vitals, _, _ := query.Get()

		if !vitals.Alive {
			continue
		}

		vitals.Age += dt
		if vitals.Age > vitals.Lifespan {
			vitals.Alive = false
			vitals.Cause = components.CauseOldAge
		}
	}
}

// metabolismPass runs chemosynthesis for every living replicator.
// Energy gain scales with the scarcer of the two inputs in the agent's
// cell; sulfur is produced 1:1 with the H2S actually consumed. Basal and
// movement upkeep are charged regardless of intake.
func (g *Game) metabolismPass() {
	cfg := config.Cfg().Ecosystem.Metabolism

	query := g.agentFilter.Query()
	for query.Next() {
		_, _, vitals, _, motion := query.Get()

		if !vitals.Alive {
			continue
		}

		cell := g.grid.DirectionToCell(motion.Dir)
		co2 := g.field.Get(cell, systems.ResourceCO2)
		h2s := g.field.Get(cell, systems.ResourceH2S)

		co2Ratio := 1.0
		if cfg.CO2Need > 0 {
			co2Ratio = co2 / cfg.CO2Need
		}
		h2sRatio := 1.0
		if cfg.H2SNeed > 0 {
			h2sRatio = h2s / cfg.H2SNeed
		}
		ratio := clamp01(min(co2Ratio, h2sRatio))

		vitals.Energy += cfg.EnergyGain * ratio

		h2sUsed := cfg.H2SNeed * ratio
		g.field.Add(cell, systems.ResourceCO2, -cfg.CO2Need*ratio)
		g.field.Add(cell, systems.ResourceH2S, -h2sUsed)
		g.field.Add(cell, systems.ResourceSulfur, h2sUsed)

		vitals.Energy -= cfg.BasalCost + cfg.MoveCost

		if vitals.Energy <= 0 {
			vitals.Alive = false
			switch {
			case h2sRatio < 1 && h2sRatio <= co2Ratio:
				vitals.Cause = components.CauseH2SDepletion
			case co2Ratio < 1:
				vitals.Cause = components.CauseCO2Depletion
			default:
				vitals.Cause = components.CauseStarvation
			}
		}
	}
}

// birthSpec captures a reproduction attempt collected during iteration.
// The parent has already paid the reproduction cost at collection time;
// the energy split happens only if the population cap admits the child.
type birthSpec struct {
	parent ecs.Entity
	dir    r3.Vec
	seed   float64
	traits components.Traits
	size   float64
}

// reproductionPass rolls reproduction for every living replicator and
// applies the resulting births after iteration completes.
func (g *Game) reproductionPass(dt float64) {
	cfg := config.Cfg().Ecosystem

	var births []birthSpec

	query := g.agentFilter.Query()
	for query.Next() {
		entity := query.Entity()
		_, _, vitals, traits, motion := query.Get()

		if !vitals.Alive {
			continue
		}
		if g.rng.Float64() >= cfg.Reproduction.Rate*dt {
			continue
		}
		if vitals.Energy < cfg.Reproduction.Cost {
			continue
		}
		if traits.SeaOnlyReproduce && !g.terrain.IsSea(motion.Dir) {
			continue
		}

		// Cost is paid at attempt time, even if the cap rejects the child.
		vitals.Energy -= cfg.Reproduction.Cost

		childDir := g.perturbDirection(motion.Dir, cfg.Reproduction.OffsetMax)
		births = append(births, birthSpec{
			parent: entity,
			dir:    childDir,
			seed:   motion.Seed + g.rng.Float64()*seedJitter,
			traits: *traits,
			size:   vitals.Size,
		})
	}

	for _, b := range births {
		if g.aliveCount >= cfg.Population.Max {
			g.collector.RecordBirthRejected()
			continue
		}

		parentVitals := g.vitalsMap.Get(b.parent)
		if parentVitals == nil || !parentVitals.Alive {
			continue
		}

		// Post-cost energy splits evenly between parent and child.
		share := parentVitals.Energy / 2
		parentVitals.Energy = share

		g.spawnReplicator(b.dir, share, b.seed, b.size, b.traits)
		g.collector.RecordBirth()
	}
}

// perturbDirection nudges a unit direction by a bounded random tangent
// offset and renormalizes.
func (g *Game) perturbDirection(dir r3.Vec, offsetMax float64) r3.Vec {
	t := g.randomTangent(dir)
	return r3.Unit(r3.Add(dir, r3.Scale(g.rng.Float64()*offsetMax, t)))
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
