package systems

import (
	"github.com/cablegrove/tanksim/chem"
	"github.com/cablegrove/tanksim/config"
	"github.com/cablegrove/tanksim/tank"
)

// NitrogenCycle simulates the waste → ammonia → nitrite → nitrate chain and
// the two bacterial populations driving its second and third stages.
//
// The update walks a fixed sequence of steps against a local working copy of
// the relevant quantities, so later steps see earlier steps' consequences
// within the same tick. One effect is emitted per non-zero delta, making the
// effect list a complete audit trail of the net change.
type NitrogenCycle struct{}

// NewNitrogenCycle creates the nitrogen cycle system.
func NewNitrogenCycle() *NitrogenCycle {
	return &NitrogenCycle{}
}

func (s *NitrogenCycle) ID() string { return IDNitrogenCycle }

func (s *NitrogenCycle) Tier() tank.Tier { return tank.TierPassive }

// nitrogenState is the working copy the steps mutate. Inputs are sanitized
// to non-negative on entry: out-of-range values can transiently appear
// during equipment reconfiguration and must degrade, not throw.
type nitrogenState struct {
	waste   float64
	ammonia float64
	nitrite float64
	nitrate float64
	aob     float64
	nob     float64
	water   float64
}

func (s *NitrogenCycle) Update(led *tank.Ledger, cfg *config.Config) []tank.Effect {
	nc := &cfg.NitrogenCycle

	w := nitrogenState{
		waste:   nonNeg(led.Waste),
		ammonia: nonNeg(led.Ammonia),
		nitrite: nonNeg(led.Nitrite),
		nitrate: nonNeg(led.Nitrate),
		aob:     nonNeg(led.AOB),
		nob:     nonNeg(led.NOB),
		water:   nonNeg(led.Water),
	}

	var effects []tank.Effect
	emit := func(r tank.Resource, delta float64) {
		if delta != 0 {
			effects = append(effects, tank.Scalar(r, delta, s.Tier(), s.ID()))
		}
	}

	// Step 0: surface-capacity correction. Over-capacity colonies are capped
	// before any conversion math so that populations orphaned by equipment
	// removal cannot over-process in the same tick.
	maxBacteria := chem.CarryingCapacity(led.Surface, nc.BacteriaPerArea)
	if w.aob > maxBacteria {
		emit(tank.ResAOB, maxBacteria-w.aob)
		w.aob = maxBacteria
	}
	if w.nob > maxBacteria {
		emit(tank.ResNOB, maxBacteria-w.nob)
		w.nob = maxBacteria
	}

	// Step 1: mineralization, waste → ammonia. A fixed fraction of the solid
	// waste converts per tick at a fixed mass ratio. The ratio is independent
	// of tank size, which is why mass rather than concentration is the
	// storage unit.
	if w.waste > 0 && nc.WasteConversionRate > 0 {
		consumed := w.waste * nc.WasteConversionRate
		if consumed > w.waste {
			consumed = w.waste
		}
		produced := consumed * nc.WasteToAmmoniaMgPerG
		emit(tank.ResWaste, -consumed)
		emit(tank.ResAmmonia, produced)
		w.waste -= consumed
		w.ammonia += produced
	}

	// Step 2: AOB conversion, ammonia → nitrite. Processing rate is per unit
	// concentration per bacterium, so the mass capacity scales with water
	// volume. Bacteria cannot process more substrate than exists.
	if w.ammonia > 0 && w.aob > 0 {
		capacity := w.aob * nc.AOBProcessingRate * w.water
		converted := min(capacity, w.ammonia)
		if converted > 0 {
			emit(tank.ResAmmonia, -converted)
			emit(tank.ResNitrite, converted*nc.AmmoniaToNitriteRatio)
			w.ammonia -= converted
			w.nitrite += converted * nc.AmmoniaToNitriteRatio
		}
	}

	// Step 3: NOB conversion, nitrite → nitrate. Same shape as step 2.
	if w.nitrite > 0 && w.nob > 0 {
		capacity := w.nob * nc.NOBProcessingRate * w.water
		converted := min(capacity, w.nitrite)
		if converted > 0 {
			emit(tank.ResNitrite, -converted)
			emit(tank.ResNitrate, converted*nc.NitriteToNitrateRatio)
			w.nitrite -= converted
			w.nitrate += converted * nc.NitriteToNitrateRatio
		}
	}

	// Step 4: spawning. A colony appears only when its substrate reaches the
	// threshold as a concentration, not a mass: colonization depends on local
	// substrate density, not on absolute quantity in a large volume.
	if w.aob == 0 && nc.AOBSpawnThresholdPPM > 0 && nc.SpawnAmount > 0 {
		if chem.PPM(w.ammonia, w.water) >= nc.AOBSpawnThresholdPPM {
			spawn := min(nc.SpawnAmount, maxBacteria)
			if spawn > 0 {
				emit(tank.ResAOB, spawn)
				w.aob = spawn
			}
		}
	}
	if w.nob == 0 && nc.NOBSpawnThresholdPPM > 0 && nc.SpawnAmount > 0 {
		if chem.PPM(w.nitrite, w.water) >= nc.NOBSpawnThresholdPPM {
			spawn := min(nc.SpawnAmount, maxBacteria)
			if spawn > 0 {
				emit(tank.ResNOB, spawn)
				w.nob = spawn
			}
		}
	}

	// Step 5: logistic growth while fed. The clamp inside Logistic keeps a
	// colony from overshooting the carrying capacity.
	if w.aob > 0 && fed(w.ammonia, w.water, nc.MinFoodPPM) {
		growth := chem.Logistic(w.aob, nc.AOBGrowthRate, maxBacteria)
		emit(tank.ResAOB, growth)
		w.aob += growth
	}
	if w.nob > 0 && fed(w.nitrite, w.water, nc.MinFoodPPM) {
		growth := chem.Logistic(w.nob, nc.NOBGrowthRate, maxBacteria)
		emit(tank.ResNOB, growth)
		w.nob += growth
	}

	// Step 6: starvation death. Exponential decay toward the configured
	// floor, never below it.
	if w.aob > 0 && !fed(w.ammonia, w.water, nc.MinFoodPPM) {
		emit(tank.ResAOB, -starve(w.aob, nc.DeathRate, nc.MinPopulation))
	}
	if w.nob > 0 && !fed(w.nitrite, w.water, nc.MinFoodPPM) {
		emit(tank.ResNOB, -starve(w.nob, nc.DeathRate, nc.MinPopulation))
	}

	return effects
}

// fed reports whether a substrate concentration sustains a colony. A
// non-positive threshold means feeding is unconstrained: any substrate at
// all counts, and starvation never triggers.
func fed(substrateMass, water, minFoodPPM float64) bool {
	if minFoodPPM <= 0 {
		return substrateMass > 0
	}
	return chem.PPM(substrateMass, water) >= minFoodPPM
}

// starve returns the population lost to starvation this tick, respecting
// the floor.
func starve(population, deathRate, floor float64) float64 {
	death := population * deathRate
	if population-death < floor {
		death = population - floor
	}
	if death < 0 {
		return 0
	}
	return death
}

func nonNeg(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}
