// Package sim orchestrates the simulation: the tick scheduler that runs
// every system in tier order against one pre-tick snapshot, the effect
// applier that commits the results, and the snapshot persistence
// collaborator used by the CLI.
package sim

import (
	"github.com/cablegrove/tanksim/config"
	"github.com/cablegrove/tanksim/systems"
	"github.com/cablegrove/tanksim/tank"
	"github.com/cablegrove/tanksim/telemetry"
)

// Scheduler runs registered systems over discrete one-hour ticks.
// Registration order is invocation order within a tier, so results are
// reproducible run to run.
type Scheduler struct {
	all  []systems.System
	perf *telemetry.PerfCollector
}

// NewScheduler creates a scheduler over the given systems. With no
// arguments it registers the default system set.
func NewScheduler(sys ...systems.System) *Scheduler {
	if len(sys) == 0 {
		sys = systems.Default()
	}
	return &Scheduler{all: sys}
}

// SetPerfCollector attaches per-system phase timing. Nil disables it.
func (s *Scheduler) SetPerfCollector(p *telemetry.PerfCollector) {
	s.perf = p
}

// Systems returns the registered systems in registration order.
func (s *Scheduler) Systems() []systems.System {
	return s.all
}

// Tick advances the simulation by one simulated hour. Every system runs
// against the same pre-tick snapshot; their effects are applied in one pass
// at the end, so a failed tick (a panicking system, which is a
// programmer/config error) leaves the input ledger untouched.
//
// The returned effect list is the full audit trail for the tick.
func (s *Scheduler) Tick(led *tank.Ledger, cfg *config.Config) (*tank.Ledger, []tank.Effect) {
	if s.perf != nil {
		s.perf.StartTick()
	}

	var effects []tank.Effect
	for tier := tank.TierImmediate; tier <= tank.TierPassive; tier++ {
		for _, sys := range s.all {
			if sys.Tier() != tier {
				continue
			}
			if s.perf != nil {
				s.perf.StartPhase(sys.ID())
			}
			effects = append(effects, sys.Update(led, cfg)...)
		}
	}

	if s.perf != nil {
		s.perf.StartPhase(telemetry.PhaseApply)
	}
	next := Apply(led, effects, cfg)
	next.Tick = led.Tick + 1

	if s.perf != nil {
		s.perf.EndTick()
	}
	return next, effects
}

// Run advances the simulation n ticks and returns the final ledger. This is
// the whole of the "step N hours" feature: ticks are cheap, deterministic,
// and free of I/O, so fast-forward is just repetition.
func (s *Scheduler) Run(led *tank.Ledger, cfg *config.Config, n int) *tank.Ledger {
	for i := 0; i < n; i++ {
		led, _ = s.Tick(led, cfg)
	}
	return led
}
