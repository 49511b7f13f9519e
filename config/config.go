// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Grid      GridConfig      `yaml:"grid"`
	Resources ResourcesConfig `yaml:"resources"`
	Vents     VentsConfig     `yaml:"vents"`
	Ecosystem EcosystemConfig `yaml:"ecosystem"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// TerrainConfig holds planet mesh and height-noise parameters.
type TerrainConfig struct {
	Resolution     int        `yaml:"resolution"`      // grid subdivisions per cube face (>= 1)
	Radius         float64    `yaml:"radius"`          // base sphere radius
	Magnitude      float64    `yaml:"magnitude"`       // radial displacement scale
	BaseRoughness  float64    `yaml:"base_roughness"`  // first-octave noise frequency
	Layers         int        `yaml:"layers"`          // noise octave count
	Persistence    float64    `yaml:"persistence"`     // amplitude decay per octave
	Offset         [3]float64 `yaml:"offset"`          // noise sample offset
	OceanThreshold float64    `yaml:"ocean_threshold"` // height below this is sea (0 disables)
	OceanDepth     float64    `yaml:"ocean_depth"`     // compression of sub-threshold heights
	Seed           int64      `yaml:"seed"`            // noise permutation seed
}

// GridConfig holds the surface resource grid parameters.
type GridConfig struct {
	Resolution int `yaml:"resolution"` // cells per cube-face edge (>= 1)
}

// ResourcesConfig holds initial per-cell resource seeding parameters.
type ResourcesConfig struct {
	BaselineCO2    float64 `yaml:"baseline_co2"`
	BaselineO2     float64 `yaml:"baseline_o2"`
	BaselineSulfur float64 `yaml:"baseline_sulfur"`

	PatchRoughness   float64 `yaml:"patch_roughness"` // deposit-noise frequency
	PatchLayers      int     `yaml:"patch_layers"`
	PatchPersistence float64 `yaml:"patch_persistence"`

	PhosphorusStrength float64 `yaml:"phosphorus_strength"` // patch amplitude
	IronStrength       float64 `yaml:"iron_strength"`
	PatchBias          float64 `yaml:"patch_bias"` // noise level subtracted before scaling

	SiliconBase  float64 `yaml:"silicon_base"`
	SiliconSwing float64 `yaml:"silicon_swing"` // +/- noise-driven deviation
	CalciumBase  float64 `yaml:"calcium_base"`
	CalciumSwing float64 `yaml:"calcium_swing"`
}

// VentsConfig holds hydrothermal vent parameters.
type VentsConfig struct {
	BaseRoughness float64 `yaml:"base_roughness"` // vent-noise frequency (higher than terrain)
	Layers        int     `yaml:"layers"`
	Persistence   float64 `yaml:"persistence"`
	Threshold     float64 `yaml:"threshold"`     // noise above this marks a vent cell
	SeedStrength  float64 `yaml:"seed_strength"` // initial H2S per unit of excess
	H2SMax        float64 `yaml:"h2s_max"`       // replenishment cap per vent cell
	Replenish     float64 `yaml:"replenish"`     // H2S added per replenishment tick
	IntervalSec   float64 `yaml:"interval_sec"`  // seconds between replenishment ticks
	SeaOnly       bool    `yaml:"sea_only"`      // only vents below the ocean radius replenish
}

// EcosystemConfig holds replicator population parameters.
type EcosystemConfig struct {
	DT           float64            `yaml:"dt"` // seconds per simulation tick
	Population   PopulationConfig   `yaml:"population"`
	Metabolism   MetabolismConfig   `yaml:"metabolism"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Movement     MovementConfig     `yaml:"movement"`
	Spawning     SpawningConfig     `yaml:"spawning"`
	Traits       TraitsConfig       `yaml:"traits"`
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	Initial int `yaml:"initial"`
	Max     int `yaml:"max"`
}

// MetabolismConfig holds chemosynthesis parameters.
// Draws and costs are per metabolism tick, not per second.
type MetabolismConfig struct {
	IntervalSec float64 `yaml:"interval_sec"` // seconds between metabolism ticks
	CO2Need     float64 `yaml:"co2_need"`     // CO2 drawn per tick at full ratio
	H2SNeed     float64 `yaml:"h2s_need"`     // H2S drawn per tick at full ratio
	EnergyGain  float64 `yaml:"energy_gain"`  // energy gained per tick at full ratio
	BasalCost   float64 `yaml:"basal_cost"`   // unconditional energy cost per tick
	MoveCost    float64 `yaml:"move_cost"`    // unconditional movement cost per tick
}

// ReproductionConfig holds reproduction parameters.
type ReproductionConfig struct {
	Rate        float64 `yaml:"rate"`         // spawn probability per second
	Cost        float64 `yaml:"cost"`         // energy paid by the parent per attempt
	OffsetMax   float64 `yaml:"offset_max"`   // max direction perturbation for the child
	LifespanMin float64 `yaml:"lifespan_min"` // seconds
	LifespanMax float64 `yaml:"lifespan_max"` // seconds
}

// MovementConfig holds noise-driven wander parameters.
type MovementConfig struct {
	Speed           float64 `yaml:"speed"`            // surface units per second
	TurnStrength    float64 `yaml:"turn_strength"`    // max turn rate, radians per second
	TurnFrequency   float64 `yaml:"turn_frequency"`   // primary turn-noise frequency
	WobbleFrequency float64 `yaml:"wobble_frequency"` // lateral wobble noise frequency
	WobbleStrength  float64 `yaml:"wobble_strength"`  // lateral blend amount
	OrientBlend     float64 `yaml:"orient_blend"`     // orientation slerp rate per second
	LandSpeedFactor float64 `yaml:"land_speed_factor"`
}

// SpawningConfig holds spontaneous spawn parameters.
type SpawningConfig struct {
	IntervalSec      float64 `yaml:"interval_sec"`       // seconds between spawn attempts
	Chance           float64 `yaml:"chance"`             // probability an attempt fires
	SeaPreference    float64 `yaml:"sea_preference"`     // 0 = land, 1 = sea
	StartupWindowSec float64 `yaml:"startup_window_sec"` // guaranteed first spawn within this
	InitialEnergy    float64 `yaml:"initial_energy"`
	SizeMin          float64 `yaml:"size_min"`
	SizeMax          float64 `yaml:"size_max"`
}

// TraitsConfig holds behavioral trait defaults for spawned replicators.
type TraitsConfig struct {
	SeaOnlySpawn     bool `yaml:"sea_only_spawn"`
	SeaOnlyReproduce bool `yaml:"sea_only_reproduce"`
	SeaOnlyMove      bool `yaml:"sea_only_move"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // simulation seconds per stats window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CellCount       int // 6 * Grid.Resolution^2
	MetabolismTicks int // simulation ticks between metabolism passes
	VentTicks       int // simulation ticks between vent replenishment passes
	SpawnTicks      int // simulation ticks between spontaneous spawn attempts
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
// Invalid-index and degenerate-input conditions at runtime degrade to
// no-ops instead; only construction-time errors are fatal.
func (c *Config) Validate() error {
	if c.Terrain.Resolution < 1 {
		return fmt.Errorf("terrain.resolution must be >= 1, got %d", c.Terrain.Resolution)
	}
	if c.Terrain.Radius <= 0 {
		return fmt.Errorf("terrain.radius must be > 0, got %g", c.Terrain.Radius)
	}
	if c.Terrain.Layers < 0 {
		return fmt.Errorf("terrain.layers must be >= 0, got %d", c.Terrain.Layers)
	}
	if c.Terrain.Layers > 0 && (c.Terrain.Persistence <= 0 || c.Terrain.Persistence > 1) {
		return fmt.Errorf("terrain.persistence must be in (0,1], got %g", c.Terrain.Persistence)
	}
	if c.Grid.Resolution < 1 {
		return fmt.Errorf("grid.resolution must be >= 1, got %d", c.Grid.Resolution)
	}
	if c.Ecosystem.DT <= 0 {
		return fmt.Errorf("ecosystem.dt must be > 0, got %g", c.Ecosystem.DT)
	}
	if c.Ecosystem.Population.Max < 0 {
		return fmt.Errorf("ecosystem.population.max must be >= 0, got %d", c.Ecosystem.Population.Max)
	}
	if c.Ecosystem.Population.Initial > c.Ecosystem.Population.Max {
		return fmt.Errorf("ecosystem.population.initial (%d) exceeds max (%d)",
			c.Ecosystem.Population.Initial, c.Ecosystem.Population.Max)
	}
	if c.Ecosystem.Reproduction.LifespanMax < c.Ecosystem.Reproduction.LifespanMin {
		return fmt.Errorf("ecosystem.reproduction.lifespan_max (%g) below lifespan_min (%g)",
			c.Ecosystem.Reproduction.LifespanMax, c.Ecosystem.Reproduction.LifespanMin)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	r := c.Grid.Resolution
	c.Derived.CellCount = 6 * r * r

	c.Derived.MetabolismTicks = ticksFor(c.Ecosystem.Metabolism.IntervalSec, c.Ecosystem.DT)
	c.Derived.VentTicks = ticksFor(c.Vents.IntervalSec, c.Ecosystem.DT)
	c.Derived.SpawnTicks = ticksFor(c.Ecosystem.Spawning.IntervalSec, c.Ecosystem.DT)
}

func ticksFor(intervalSec, dt float64) int {
	n := int(intervalSec / dt)
	if n < 1 {
		n = 1
	}
	return n
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
