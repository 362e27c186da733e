package systems

import (
	"math"

	"github.com/cablegrove/tanksim/config"
	"github.com/cablegrove/tanksim/tank"
)

// TemperatureDrift applies Newtonian cooling toward room ambient, scaled by
// the volume-to-surface ratio (small tanks track room temperature faster),
// or holds toward the heater target when a heater is enabled.
type TemperatureDrift struct{}

// NewTemperatureDrift creates the temperature drift system.
func NewTemperatureDrift() *TemperatureDrift {
	return &TemperatureDrift{}
}

func (s *TemperatureDrift) ID() string { return IDTemperature }

func (s *TemperatureDrift) Tier() tank.Tier { return tank.TierImmediate }

func (s *TemperatureDrift) Update(led *tank.Ledger, cfg *config.Config) []tank.Effect {
	tc := &cfg.Temperature
	if led.Water <= 0 {
		return nil
	}

	var delta float64
	if led.HeaterEnabled() {
		delta = (tc.HeaterTargetC - led.Temperature) * tc.HeaterRate
	} else {
		// Volume-to-surface ratio scales with the cube root of volume, so
		// the cooling rate scales with cbrt(ref/volume).
		scale := 1.0
		if tc.RefVolumeL > 0 {
			scale = math.Cbrt(tc.RefVolumeL / led.Water)
		}
		delta = (tc.AmbientC - led.Temperature) * tc.CoolingRate * scale
	}

	if delta == 0 {
		return nil
	}
	return []tank.Effect{tank.Scalar(tank.ResTemperature, delta, s.Tier(), s.ID())}
}
