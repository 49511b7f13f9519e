package game

import (
	"log/slog"

	"github.com/pthm-cable/planetsoup/systems"
	"github.com/pthm-cable/planetsoup/telemetry"
)

// flushTelemetry samples the world, emits a stats window and resets the
// collector counters.
func (g *Game) flushTelemetry() {
	energies := make([]float64, 0, g.aliveCount)
	seaPop := 0

	query := g.agentFilter.Query()
	for query.Next() {
		_, _, vitals, _, motion := query.Get()
		if !vitals.Alive {
			continue
		}
		energies = append(energies, vitals.Energy)
		if g.terrain.IsSea(motion.Dir) {
			seaPop++
		}
	}

	stats := g.collector.Flush(g.tick, g.aliveCount, seaPop, energies,
		telemetry.ResourcePools{
			TotalH2S:    g.field.Total(systems.ResourceH2S),
			TotalCO2:    g.field.Total(systems.ResourceCO2),
			TotalSulfur: g.field.Total(systems.ResourceSulfur),
			VentCount:   len(g.field.VentCells()),
		})

	if g.logStats {
		stats.LogStats()
	}
	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("telemetry write failed", "error", err)
	}
}

// LogWorldState emits a one-line structured summary of the world.
func (g *Game) LogWorldState() {
	slog.Info("world",
		"tick", g.tick,
		"sim_time", g.clock,
		"population", g.aliveCount,
		"dead_total", g.deadCount,
		"vents", len(g.field.VentCells()),
		"total_h2s", g.field.Total(systems.ResourceH2S),
		"mesh_vertices", len(g.mesh.Vertices),
		"mesh_triangles", g.mesh.TriangleCount(),
	)
}
