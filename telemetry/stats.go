package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Population int `csv:"population"`

	// Events during window
	Births         int `csv:"births"`
	Spawns         int `csv:"spawns"`
	DeathsOldAge   int `csv:"deaths_old_age"`
	DeathsStarved  int `csv:"deaths_starved"`
	DeathsH2S      int `csv:"deaths_h2s"`
	DeathsCO2      int `csv:"deaths_co2"`
	BirthsRejected int `csv:"births_rejected"`
	SpawnsRejected int `csv:"spawns_rejected"`

	// Energy distribution (sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyStd  float64 `csv:"energy_std"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	// Resource pools
	TotalH2S    float64 `csv:"total_h2s"`
	TotalCO2    float64 `csv:"total_co2"`
	TotalSulfur float64 `csv:"total_sulfur"`
	VentCount   int     `csv:"vent_count"`

	SeaPopulation int `csv:"sea_population"`
}

// ComputeEnergyStats calculates distribution stats from energy values.
func ComputeEnergyStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if len(values) > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, std, p10, p50, p90
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"population", s.Population,
		"sea_population", s.SeaPopulation,
		"births", s.Births,
		"spawns", s.Spawns,
		"deaths_old_age", s.DeathsOldAge,
		"deaths_starved", s.DeathsStarved,
		"deaths_h2s", s.DeathsH2S,
		"deaths_co2", s.DeathsCO2,
		"births_rejected", s.BirthsRejected,
		"spawns_rejected", s.SpawnsRejected,
		"energy_mean", s.EnergyMean,
		"energy_std", s.EnergyStd,
		"energy_p10", s.EnergyP10,
		"energy_p50", s.EnergyP50,
		"energy_p90", s.EnergyP90,
		"total_h2s", s.TotalH2S,
		"total_co2", s.TotalCO2,
		"total_sulfur", s.TotalSulfur,
		"vent_count", s.VentCount,
	)
}
