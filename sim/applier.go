package sim

import (
	"github.com/cablegrove/tanksim/chem"
	"github.com/cablegrove/tanksim/config"
	"github.com/cablegrove/tanksim/tank"
)

// Apply folds a list of effects onto a ledger, producing a new ledger. The
// input is never mutated. Final values are clamped into each resource's
// valid domain, and bacterial colonies are capped at the current carrying
// capacity so the invariant holds no matter what the systems emitted.
func Apply(led *tank.Ledger, effects []tank.Effect, cfg *config.Config) *tank.Ledger {
	next := led.Clone()

	for _, e := range effects {
		if e.Resource == tank.ResPlantBiomass {
			if e.Index >= 0 && e.Index < len(next.Plants) {
				next.Plants[e.Index].Biomass += e.Delta
			}
			continue
		}
		next.Set(e.Resource, next.Get(e.Resource)+e.Delta)
	}

	clampScalars(next)

	// Capacity cap: if surface shrank this tick, colonies are cut down in
	// the same tick, never gradually.
	maxBacteria := chem.CarryingCapacity(next.Surface, cfg.NitrogenCycle.BacteriaPerArea)
	if next.AOB > maxBacteria {
		next.AOB = maxBacteria
	}
	if next.NOB > maxBacteria {
		next.NOB = maxBacteria
	}

	return next
}

// clampScalars pulls every stored quantity back into its valid domain.
func clampScalars(led *tank.Ledger) {
	for _, r := range []tank.Resource{
		tank.ResWater, tank.ResTemperature, tank.ResPH,
		tank.ResOxygen, tank.ResCO2,
		tank.ResFood, tank.ResWaste, tank.ResAlgae,
		tank.ResAmmonia, tank.ResNitrite, tank.ResNitrate,
		tank.ResAOB, tank.ResNOB,
	} {
		lo, hi := tank.Bounds(r)
		led.Set(r, chem.Clamp(led.Get(r), lo, hi))
	}
	for i := range led.Plants {
		if led.Plants[i].Biomass < 0 {
			led.Plants[i].Biomass = 0
		}
	}
}
