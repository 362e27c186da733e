package systems

import (
	"github.com/cablegrove/tanksim/chem"
	"github.com/cablegrove/tanksim/config"
	"github.com/cablegrove/tanksim/tank"
)

// GasExchange relaxes dissolved O2 and CO2 toward their atmospheric
// equilibria. Surface agitation from enabled equipment speeds the exchange.
type GasExchange struct{}

// NewGasExchange creates the gas exchange system.
func NewGasExchange() *GasExchange {
	return &GasExchange{}
}

func (s *GasExchange) ID() string { return IDGasExchange }

func (s *GasExchange) Tier() tank.Tier { return tank.TierImmediate }

func (s *GasExchange) Update(led *tank.Ledger, cfg *config.Config) []tank.Effect {
	gc := &cfg.GasExchange
	if led.Water <= 0 {
		return nil
	}

	rate := gc.BaseRate + gc.AgitationBoost*led.TotalAgitation()
	rate = chem.Clamp(rate, 0, 1)
	if rate == 0 {
		return nil
	}

	var effects []tank.Effect

	o2Target := chem.MassFromPPM(gc.O2SaturationPPM, led.Water)
	if delta := (o2Target - led.Oxygen) * rate; delta != 0 {
		effects = append(effects, tank.Scalar(tank.ResOxygen, delta, s.Tier(), s.ID()))
	}

	co2Target := chem.MassFromPPM(gc.CO2EquilibriumPPM, led.Water)
	if delta := (co2Target - led.CO2) * rate; delta != 0 {
		effects = append(effects, tank.Scalar(tank.ResCO2, delta, s.Tier(), s.ID()))
	}

	return effects
}
