package telemetry

import "github.com/pthm-cable/planetsoup/components"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float64

	windowStartTick int64

	// Event counters for current window
	births         int
	spawns         int
	deathsOldAge   int
	deathsStarved  int
	deathsH2S      int
	deathsCO2      int
	birthsRejected int
	spawnsRejected int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int64(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordBirth records a successful reproduction event.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordSpawn records a spontaneous spawn event.
func (c *Collector) RecordSpawn() {
	c.spawns++
}

// RecordBirthRejected records a reproduction blocked by the population cap.
func (c *Collector) RecordBirthRejected() {
	c.birthsRejected++
}

// RecordSpawnRejected records a spontaneous spawn blocked by the cap.
func (c *Collector) RecordSpawnRejected() {
	c.spawnsRejected++
}

// RecordDeath records a death event by cause.
func (c *Collector) RecordDeath(cause components.DeathCause) {
	switch cause {
	case components.CauseOldAge:
		c.deathsOldAge++
	case components.CauseH2SDepletion:
		c.deathsH2S++
	case components.CauseCO2Depletion:
		c.deathsCO2++
	default:
		c.deathsStarved++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// ResourcePools holds field totals sampled at flush time.
type ResourcePools struct {
	TotalH2S    float64
	TotalCO2    float64
	TotalSulfur float64
	VentCount   int
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(
	currentTick int64,
	population, seaPopulation int,
	energies []float64,
	pools ResourcePools,
) WindowStats {
	mean, std, p10, p50, p90 := ComputeEnergyStats(energies)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Population:    population,
		SeaPopulation: seaPopulation,

		Births:         c.births,
		Spawns:         c.spawns,
		DeathsOldAge:   c.deathsOldAge,
		DeathsStarved:  c.deathsStarved,
		DeathsH2S:      c.deathsH2S,
		DeathsCO2:      c.deathsCO2,
		BirthsRejected: c.birthsRejected,
		SpawnsRejected: c.spawnsRejected,

		EnergyMean: mean,
		EnergyStd:  std,
		EnergyP10:  p10,
		EnergyP50:  p50,
		EnergyP90:  p90,

		TotalH2S:    pools.TotalH2S,
		TotalCO2:    pools.TotalCO2,
		TotalSulfur: pools.TotalSulfur,
		VentCount:   pools.VentCount,
	}

	c.windowStartTick = currentTick
	c.births = 0
	c.spawns = 0
	c.deathsOldAge = 0
	c.deathsStarved = 0
	c.deathsH2S = 0
	c.deathsCO2 = 0
	c.birthsRejected = 0
	c.spawnsRejected = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
