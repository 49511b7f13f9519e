// Field map tool - generates the surface grid and resource field headlessly
// and dumps every cell to CSV with a summary on stdout.
//
// Usage: go run ./cmd/fieldmap -out field.csv
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/planetsoup/config"
	"github.com/pthm-cable/planetsoup/systems"
)

// cellRow is one CSV record per surface cell.
type cellRow struct {
	Cell int     `csv:"cell"`
	Face int     `csv:"face"`
	DirX float64 `csv:"dir_x"`
	DirY float64 `csv:"dir_y"`
	DirZ float64 `csv:"dir_z"`
	Sea  bool    `csv:"sea"`
	Vent bool    `csv:"vent"`

	CO2        float64 `csv:"co2"`
	O2         float64 `csv:"o2"`
	H2S        float64 `csv:"h2s"`
	Sulfur     float64 `csv:"sulfur"`
	Phosphorus float64 `csv:"phosphorus"`
	Iron       float64 `csv:"iron"`
	Silicon    float64 `csv:"silicon"`
	Calcium    float64 `csv:"calcium"`
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "Generation seed (0 = config terrain seed)")
	out := flag.String("out", "field.csv", "Output CSV path")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	genSeed := *seed
	if genSeed == 0 {
		genSeed = cfg.Terrain.Seed
	}

	terrainCfg := cfg.Terrain
	terrainCfg.Seed = genSeed
	terrain := systems.NewTerrain(terrainCfg)
	grid := systems.NewSurfaceGrid(cfg.Grid.Resolution)
	field := systems.NewResourceField(grid, cfg.Resources, cfg.Vents, genSeed)

	ventSet := make(map[int]bool, len(field.VentCells()))
	for _, c := range field.VentCells() {
		ventSet[c] = true
	}

	rows := make([]cellRow, grid.CellCount())
	for cell := range rows {
		dir := grid.CellToDirection(cell)
		rows[cell] = cellRow{
			Cell: cell,
			Face: cell / (grid.Resolution() * grid.Resolution()),
			DirX: dir.X,
			DirY: dir.Y,
			DirZ: dir.Z,
			Sea:  terrain.IsSea(dir),
			Vent: ventSet[cell],

			CO2:        field.Get(cell, systems.ResourceCO2),
			O2:         field.Get(cell, systems.ResourceO2),
			H2S:        field.Get(cell, systems.ResourceH2S),
			Sulfur:     field.Get(cell, systems.ResourceSulfur),
			Phosphorus: field.Get(cell, systems.ResourcePhosphorus),
			Iron:       field.Get(cell, systems.ResourceIron),
			Silicon:    field.Get(cell, systems.ResourceSilicon),
			Calcium:    field.Get(cell, systems.ResourceCalcium),
		}
	}

	f, err := os.Create(*out)
	if err != nil {
		slog.Error("failed to create output file", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := gocsv.Marshal(rows, f); err != nil {
		slog.Error("failed to write CSV", "error", err)
		os.Exit(1)
	}

	logSummary(grid, field)
	slog.Info("field map written", "path", *out, "cells", len(rows), "vents", len(field.VentCells()))
}

// logSummary emits mean and spread for each resource channel.
func logSummary(grid *systems.SurfaceGrid, field *systems.ResourceField) {
	n := grid.CellCount()
	values := make([]float64, n)

	for r := systems.Resource(0); r < systems.ResourceCount; r++ {
		for cell := 0; cell < n; cell++ {
			values[cell] = field.Get(cell, r)
		}
		slog.Info("resource summary",
			"resource", r.String(),
			"mean", stat.Mean(values, nil),
			"stddev", stat.StdDev(values, nil),
			"total", field.Total(r),
		)
	}
}
