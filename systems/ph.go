package systems

import (
	"github.com/cablegrove/tanksim/chem"
	"github.com/cablegrove/tanksim/config"
	"github.com/cablegrove/tanksim/tank"
)

// PHDrift pulls pH toward the level implied by dissolved CO2, slowed by
// carbonate hardness buffering.
type PHDrift struct{}

// NewPHDrift creates the pH drift system.
func NewPHDrift() *PHDrift {
	return &PHDrift{}
}

func (s *PHDrift) ID() string { return IDPH }

func (s *PHDrift) Tier() tank.Tier { return tank.TierImmediate }

func (s *PHDrift) Update(led *tank.Ledger, cfg *config.Config) []tank.Effect {
	pc := &cfg.PH
	if led.Water <= 0 {
		return nil
	}

	target := pc.Baseline - pc.CO2Slope*chem.PPM(nonNeg(led.CO2), led.Water)
	target = chem.Clamp(target, 0, 14)

	buffer := pc.KHBuffer
	if buffer < 0 {
		buffer = 0
	}
	delta := (target - led.PH) * pc.DriftRate / (1 + buffer)

	if delta == 0 {
		return nil
	}
	return []tank.Effect{tank.Scalar(tank.ResPH, delta, s.Tier(), s.ID())}
}
