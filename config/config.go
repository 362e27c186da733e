// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/cablegrove/tanksim/tank"
)

//go:embed defaults.yaml
var defaultsYAML []byte

//go:embed schema.json
var schemaJSON string

// Config holds all simulation configuration parameters. It is constructed
// once, passed by reference into every system call, and never mutated
// mid-tick.
type Config struct {
	Tank          TankConfig          `yaml:"tank"`
	NitrogenCycle NitrogenCycleConfig `yaml:"nitrogen_cycle"`
	Decay         DecayConfig         `yaml:"decay"`
	Algae         AlgaeConfig         `yaml:"algae"`
	Plants        PlantsConfig        `yaml:"plants"`
	Temperature   TemperatureConfig   `yaml:"temperature"`
	GasExchange   GasExchangeConfig   `yaml:"gas_exchange"`
	PH            PHConfig            `yaml:"ph"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
}

// TankConfig describes the physical tank and its starting contents.
type TankConfig struct {
	VolumeL      float64          `yaml:"volume_l"`       // Water volume at start
	GlassAreaCm2 float64          `yaml:"glass_area_cm2"` // Colonizable glass/substrate baseline
	InitialTempC float64          `yaml:"initial_temp_c"`
	InitialPH    float64          `yaml:"initial_ph"`
	Equipment    []tank.Equipment `yaml:"equipment"`
	Plants       []tank.Plant     `yaml:"plants"`
}

// NitrogenCycleConfig holds the rate constants for the waste → ammonia →
// nitrite → nitrate chain and the two bacterial populations driving it.
// All rates are per simulated hour (one tick).
type NitrogenCycleConfig struct {
	BacteriaPerArea float64 `yaml:"bacteria_per_area"` // Population units per cm² of surface

	WasteConversionRate   float64 `yaml:"waste_conversion_rate"`     // Fraction of waste mineralized per tick
	WasteToAmmoniaMgPerG  float64 `yaml:"waste_to_ammonia_mg_per_g"` // mg ammonia per g waste consumed
	AmmoniaToNitriteRatio float64 `yaml:"ammonia_to_nitrite_ratio"`  // Mass ratio applied at stage 2
	NitriteToNitrateRatio float64 `yaml:"nitrite_to_nitrate_ratio"`  // Mass ratio applied at stage 3

	// Processing rate is defined per unit concentration per bacterium, so
	// mass capacity per tick is population × rate × water volume.
	AOBProcessingRate float64 `yaml:"aob_processing_rate"`
	NOBProcessingRate float64 `yaml:"nob_processing_rate"`

	AOBSpawnThresholdPPM float64 `yaml:"aob_spawn_threshold_ppm"` // Substrate ppm that triggers colonization
	NOBSpawnThresholdPPM float64 `yaml:"nob_spawn_threshold_ppm"`
	SpawnAmount          float64 `yaml:"spawn_amount"`

	AOBGrowthRate float64 `yaml:"aob_growth_rate"` // AOB reproduces faster than NOB
	NOBGrowthRate float64 `yaml:"nob_growth_rate"`
	MinFoodPPM    float64 `yaml:"min_food_ppm"` // Below this substrate ppm a colony starves
	DeathRate     float64 `yaml:"death_rate"`
	MinPopulation float64 `yaml:"min_population"` // Starvation floor; a colony never decays below it
}

// DecayConfig holds food decay parameters.
type DecayConfig struct {
	FoodDecayRate    float64 `yaml:"food_decay_rate"`     // Fraction of food turning to waste per tick
	AmbientWastePerH float64 `yaml:"ambient_waste_per_h"` // Grams of waste appearing per tick regardless of food
}

// AlgaeConfig holds algae growth parameters.
type AlgaeConfig struct {
	GrowthRate          float64 `yaml:"growth_rate"`             // Base biomass growth fraction per tick
	LightIntensity      float64 `yaml:"light_intensity"`         // Relative light level (1.0 = reference)
	VolumeHalfMaxL      float64 `yaml:"volume_half_max_l"`       // Tank-volume saturation half point
	PlantCompetition    float64 `yaml:"plant_competition"`       // Growth reduction per gram of plant biomass
	NitrateUptakeMgPerG float64 `yaml:"nitrate_uptake_mg_per_g"` // Nitrate consumed per gram of algae grown
}

// PlantsConfig holds rooted-plant growth parameters.
type PlantsConfig struct {
	GrowthRate          float64 `yaml:"growth_rate"`             // Biomass budget per weight unit per tick
	NitrateUptakeMgPerG float64 `yaml:"nitrate_uptake_mg_per_g"` // Nitrate consumed per gram grown
	OvergrowthPenalty   float64 `yaml:"overgrowth_penalty"`      // Growth multiplier once past max biomass
	WasteReleaseRate    float64 `yaml:"waste_release_rate"`      // Fraction of excess biomass shed as waste per tick
}

// TemperatureConfig holds temperature drift parameters.
type TemperatureConfig struct {
	AmbientC      float64 `yaml:"ambient_c"`
	CoolingRate   float64 `yaml:"cooling_rate"` // Newtonian rate toward ambient per tick
	RefVolumeL    float64 `yaml:"ref_volume_l"` // Volume at which cooling_rate applies unscaled
	HeaterTargetC float64 `yaml:"heater_target_c"`
	HeaterRate    float64 `yaml:"heater_rate"` // Approach rate toward target when a heater is enabled
}

// GasExchangeConfig holds O2/CO2 surface exchange parameters.
type GasExchangeConfig struct {
	O2SaturationPPM   float64 `yaml:"o2_saturation_ppm"`
	CO2EquilibriumPPM float64 `yaml:"co2_equilibrium_ppm"`
	BaseRate          float64 `yaml:"base_rate"`       // Relaxation toward equilibrium per tick
	AgitationBoost    float64 `yaml:"agitation_boost"` // Extra rate per unit of equipment agitation
}

// PHConfig holds pH drift parameters.
type PHConfig struct {
	Baseline  float64 `yaml:"baseline"`   // pH with CO2 at atmospheric equilibrium
	CO2Slope  float64 `yaml:"co2_slope"`  // pH depression per ppm of dissolved CO2
	DriftRate float64 `yaml:"drift_rate"` // Approach rate toward the CO2-implied target
	KHBuffer  float64 `yaml:"kh_buffer"`  // Carbonate hardness; higher values slow drift
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindowTicks    int `yaml:"stats_window_ticks"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
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
// If path is empty, only embedded defaults are used. The merged document is
// schema-validated before use; a config that fails validation is a caller
// error, not something the systems degrade around.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

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

	return cfg, nil
}

// Validate checks the configuration against the embedded JSON schema. The
// schema enforces field types and the positivity of structural constants the
// systems divide by.
func (c *Config) Validate() error {
	schema, err := jsonschema.CompileString("schema.json", schemaJSON)
	if err != nil {
		return fmt.Errorf("compiling config schema: %w", err)
	}

	// Round-trip through YAML to get the generic document the validator expects.
	raw, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config for validation: %w", err)
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decoding config for validation: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
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
