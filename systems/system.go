// Package systems implements the simulation subsystems. Every subsystem
// satisfies the same contract: read a ledger snapshot and the configuration,
// propose changes as an ordered effect list, mutate nothing.
package systems

import (
	"github.com/cablegrove/tanksim/config"
	"github.com/cablegrove/tanksim/tank"
)

// System is one polymorphic unit of simulation behavior.
//
// Update must be pure: no mutation of the ledger or config, no I/O, and
// deterministic given identical inputs. Each non-zero delta becomes one
// effect, so the returned list fully explains the system's net change.
type System interface {
	ID() string
	Tier() tank.Tier
	Update(led *tank.Ledger, cfg *config.Config) []tank.Effect
}

// System IDs, shared with telemetry perf phases.
const (
	IDTemperature   = "temperature"
	IDGasExchange   = "gasExchange"
	IDPH            = "phDrift"
	IDDecay         = "decay"
	IDNitrogenCycle = "nitrogenCycle"
	IDAlgae         = "algaeGrowth"
	IDPlants        = "plantGrowth"
)

// Default returns all systems in canonical registration order: immediate
// physical processes first, then the passive biochemical ones. The scheduler
// preserves this order within each tier, so tick results are reproducible.
func Default() []System {
	return []System{
		NewTemperatureDrift(),
		NewGasExchange(),
		NewPHDrift(),
		NewDecay(),
		NewNitrogenCycle(),
		NewAlgaeGrowth(),
		NewPlantGrowth(),
	}
}
