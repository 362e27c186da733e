package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated water-quality statistics for a tick window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimDays         float64 `csv:"sim_days"`

	// Concentrations over the window (ppm, derived from mass and volume)
	AmmoniaMean float64 `csv:"ammonia_mean"`
	AmmoniaPeak float64 `csv:"ammonia_peak"`
	NitriteMean float64 `csv:"nitrite_mean"`
	NitritePeak float64 `csv:"nitrite_peak"`
	NitrateMean float64 `csv:"nitrate_mean"`
	NitratePeak float64 `csv:"nitrate_peak"`
	AmmoniaStd  float64 `csv:"ammonia_std"`

	// State sampled at window end
	WasteG       float64 `csv:"waste_g"`
	FoodG        float64 `csv:"food_g"`
	AlgaeG       float64 `csv:"algae_g"`
	PlantBiomass float64 `csv:"plant_biomass_g"`
	AOB          float64 `csv:"aob"`
	NOB          float64 `csv:"nob"`
	SurfaceCm2   float64 `csv:"surface_cm2"`
	WaterL       float64 `csv:"water_l"`
	TempC        float64 `csv:"temp_c"`
	PH           float64 `csv:"ph"`
	OxygenPPM    float64 `csv:"oxygen_ppm"`

	// Effect counts per source system during the window
	TemperatureEffects int `csv:"temperature_effects"`
	GasEffects         int `csv:"gas_effects"`
	PHEffects          int `csv:"ph_effects"`
	DecayEffects       int `csv:"decay_effects"`
	NitrogenEffects    int `csv:"nitrogen_effects"`
	AlgaeEffects       int `csv:"algae_effects"`
	PlantEffects       int `csv:"plant_effects"`
}

// seriesStats returns mean, peak, and standard deviation of a tick series.
func seriesStats(series []float64) (mean, peak, std float64) {
	if len(series) == 0 {
		return 0, 0, 0
	}
	mean = stat.Mean(series, nil)
	if len(series) > 1 {
		std = stat.StdDev(series, nil)
	}
	for _, v := range series {
		if v > peak {
			peak = v
		}
	}
	return mean, peak, std
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_days", s.SimDays),
		slog.Float64("ammonia_mean", s.AmmoniaMean),
		slog.Float64("ammonia_peak", s.AmmoniaPeak),
		slog.Float64("nitrite_mean", s.NitriteMean),
		slog.Float64("nitrite_peak", s.NitritePeak),
		slog.Float64("nitrate_mean", s.NitrateMean),
		slog.Float64("nitrate_peak", s.NitratePeak),
		slog.Float64("waste_g", s.WasteG),
		slog.Float64("aob", s.AOB),
		slog.Float64("nob", s.NOB),
		slog.Float64("algae_g", s.AlgaeG),
		slog.Float64("plant_biomass_g", s.PlantBiomass),
		slog.Float64("water_l", s.WaterL),
		slog.Float64("temp_c", s.TempC),
		slog.Float64("ph", s.PH),
		slog.Float64("oxygen_ppm", s.OxygenPPM),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_days", s.SimDays,
		"ammonia_mean", s.AmmoniaMean,
		"ammonia_peak", s.AmmoniaPeak,
		"nitrite_mean", s.NitriteMean,
		"nitrite_peak", s.NitritePeak,
		"nitrate_mean", s.NitrateMean,
		"nitrate_peak", s.NitratePeak,
		"waste_g", s.WasteG,
		"aob", s.AOB,
		"nob", s.NOB,
		"algae_g", s.AlgaeG,
		"plant_biomass_g", s.PlantBiomass,
		"water_l", s.WaterL,
		"temp_c", s.TempC,
		"ph", s.PH,
		"oxygen_ppm", s.OxygenPPM,
	)
}
