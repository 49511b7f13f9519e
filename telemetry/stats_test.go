package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/planetsoup/components"
)

func TestComputeEnergyStats(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	mean, std, p10, p50, p90 := ComputeEnergyStats(values)

	if math.Abs(mean-5.5) > 1e-9 {
		t.Errorf("expected mean 5.5, got %f", mean)
	}
	if std <= 0 {
		t.Errorf("expected positive stddev, got %f", std)
	}
	if p10 > p50 || p50 > p90 {
		t.Errorf("percentiles out of order: p10=%f p50=%f p90=%f", p10, p50, p90)
	}
}

func TestComputeEnergyStatsEmpty(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeEnergyStats(nil)
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty input should produce all zeros")
	}
}

func TestComputeEnergyStatsSingle(t *testing.T) {
	mean, std, _, p50, _ := ComputeEnergyStats([]float64{3})
	if mean != 3 || p50 != 3 {
		t.Errorf("single value: expected mean/p50 3, got %f/%f", mean, p50)
	}
	if std != 0 {
		t.Errorf("single value: expected stddev 0, got %f", std)
	}
}

func TestCollectorWindowing(t *testing.T) {
	c := NewCollector(10, 0.05) // 200 ticks per window

	if c.WindowDurationTicks() != 200 {
		t.Fatalf("expected 200 ticks per window, got %d", c.WindowDurationTicks())
	}
	if c.ShouldFlush(199) {
		t.Error("should not flush before the window closes")
	}
	if !c.ShouldFlush(200) {
		t.Error("should flush when the window closes")
	}
}

func TestCollectorFlushResetsCounters(t *testing.T) {
	c := NewCollector(1, 0.05)

	c.RecordBirth()
	c.RecordSpawn()
	c.RecordBirthRejected()
	c.RecordDeath(components.CauseOldAge)
	c.RecordDeath(components.CauseH2SDepletion)
	c.RecordDeath(components.CauseCO2Depletion)
	c.RecordDeath(components.CauseStarvation)

	stats := c.Flush(20, 5, 3, []float64{1, 2, 3}, ResourcePools{TotalH2S: 50, VentCount: 4})

	if stats.Births != 1 || stats.Spawns != 1 || stats.BirthsRejected != 1 {
		t.Errorf("event counts wrong: %+v", stats)
	}
	if stats.DeathsOldAge != 1 || stats.DeathsH2S != 1 || stats.DeathsCO2 != 1 || stats.DeathsStarved != 1 {
		t.Errorf("death counts wrong: %+v", stats)
	}
	if stats.Population != 5 || stats.SeaPopulation != 3 {
		t.Errorf("population wrong: %+v", stats)
	}
	if stats.TotalH2S != 50 || stats.VentCount != 4 {
		t.Errorf("pools wrong: %+v", stats)
	}

	// Next window starts clean.
	next := c.Flush(40, 5, 3, nil, ResourcePools{})
	if next.Births != 0 || next.DeathsOldAge != 0 || next.DeathsStarved != 0 {
		t.Errorf("counters should reset after flush: %+v", next)
	}
	if next.WindowStartTick != 20 {
		t.Errorf("expected next window to start at 20, got %d", next.WindowStartTick)
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	c := NewCollector(0.001, 0.05)
	if c.WindowDurationTicks() != 1 {
		t.Errorf("window should clamp to 1 tick, got %d", c.WindowDurationTicks())
	}
}
