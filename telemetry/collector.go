// Package telemetry collects windowed water-quality statistics, cycle
// milestones, and per-system timing from the simulation, and writes them as
// CSV and structured logs.
package telemetry

import (
	"github.com/cablegrove/tanksim/chem"
	"github.com/cablegrove/tanksim/systems"
	"github.com/cablegrove/tanksim/tank"
)

// Collector accumulates per-tick readings within windows and produces
// WindowStats.
type Collector struct {
	windowTicks int64

	windowStartTick int64

	// Per-tick ppm series for the current window
	ammoniaPPM []float64
	nitritePPM []float64
	nitratePPM []float64

	// Effect counts per source system
	effectCounts map[string]int
}

// NewCollector creates a stats collector with the given window length in
// ticks (simulated hours).
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks:  int64(windowTicks),
		effectCounts: make(map[string]int),
	}
}

// Observe records one completed tick: the post-tick ledger and the effects
// that produced it.
func (c *Collector) Observe(led *tank.Ledger, effects []tank.Effect) {
	c.ammoniaPPM = append(c.ammoniaPPM, chem.PPM(led.Ammonia, led.Water))
	c.nitritePPM = append(c.nitritePPM, chem.PPM(led.Nitrite, led.Water))
	c.nitratePPM = append(c.nitratePPM, chem.PPM(led.Nitrate, led.Water))

	for _, e := range effects {
		c.effectCounts[e.Source]++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats from the accumulated window and the ledger at
// window end, then resets for the next window.
func (c *Collector) Flush(currentTick int64, led *tank.Ledger) WindowStats {
	ammoniaMean, ammoniaPeak, ammoniaStd := seriesStats(c.ammoniaPPM)
	nitriteMean, nitritePeak, _ := seriesStats(c.nitritePPM)
	nitrateMean, nitratePeak, _ := seriesStats(c.nitratePPM)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimDays:         float64(currentTick) / 24.0,

		AmmoniaMean: ammoniaMean,
		AmmoniaPeak: ammoniaPeak,
		AmmoniaStd:  ammoniaStd,
		NitriteMean: nitriteMean,
		NitritePeak: nitritePeak,
		NitrateMean: nitrateMean,
		NitratePeak: nitratePeak,

		WasteG:       led.Waste,
		FoodG:        led.Food,
		AlgaeG:       led.Algae,
		PlantBiomass: led.TotalPlantBiomass(),
		AOB:          led.AOB,
		NOB:          led.NOB,
		SurfaceCm2:   led.Surface,
		WaterL:       led.Water,
		TempC:        led.Temperature,
		PH:           led.PH,
		OxygenPPM:    chem.PPM(led.Oxygen, led.Water),

		TemperatureEffects: c.effectCounts[systems.IDTemperature],
		GasEffects:         c.effectCounts[systems.IDGasExchange],
		PHEffects:          c.effectCounts[systems.IDPH],
		DecayEffects:       c.effectCounts[systems.IDDecay],
		NitrogenEffects:    c.effectCounts[systems.IDNitrogenCycle],
		AlgaeEffects:       c.effectCounts[systems.IDAlgae],
		PlantEffects:       c.effectCounts[systems.IDPlants],
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.ammoniaPPM = c.ammoniaPPM[:0]
	c.nitritePPM = c.nitritePPM[:0]
	c.nitratePPM = c.nitratePPM[:0]
	c.effectCounts = make(map[string]int)

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int64 {
	return c.windowTicks
}
