package systems

import (
	"github.com/cablegrove/tanksim/config"
	"github.com/cablegrove/tanksim/tank"
)

// Decay turns uneaten food into solid waste and adds the ambient waste
// trickle (mulm, slime, dust) that keeps a running tank off exact zero.
type Decay struct{}

// NewDecay creates the decay system.
func NewDecay() *Decay {
	return &Decay{}
}

func (s *Decay) ID() string { return IDDecay }

func (s *Decay) Tier() tank.Tier { return tank.TierPassive }

func (s *Decay) Update(led *tank.Ledger, cfg *config.Config) []tank.Effect {
	dc := &cfg.Decay
	var effects []tank.Effect

	food := nonNeg(led.Food)
	if food > 0 && dc.FoodDecayRate > 0 {
		decayed := food * dc.FoodDecayRate
		if decayed > food {
			decayed = food
		}
		effects = append(effects,
			tank.Scalar(tank.ResFood, -decayed, s.Tier(), s.ID()),
			tank.Scalar(tank.ResWaste, decayed, s.Tier(), s.ID()),
		)
	}

	if dc.AmbientWastePerH > 0 {
		effects = append(effects, tank.Scalar(tank.ResWaste, dc.AmbientWastePerH, s.Tier(), s.ID()))
	}

	return effects
}
