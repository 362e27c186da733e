package sim

import (
	"github.com/cablegrove/tanksim/chem"
	"github.com/cablegrove/tanksim/config"
	"github.com/cablegrove/tanksim/tank"
)

// NewLedger builds the initial ledger from the tank configuration: water at
// the configured volume and temperature, dissolved gases at equilibrium,
// nitrogen chain and bacteria at zero. Bacteria establish later through
// concentration-gated spawning.
func NewLedger(cfg *config.Config) *tank.Ledger {
	led := &tank.Ledger{
		Water:       cfg.Tank.VolumeL,
		Temperature: cfg.Tank.InitialTempC,
		PH:          cfg.Tank.InitialPH,
		Oxygen:      chem.MassFromPPM(cfg.GasExchange.O2SaturationPPM, cfg.Tank.VolumeL),
		CO2:         chem.MassFromPPM(cfg.GasExchange.CO2EquilibriumPPM, cfg.Tank.VolumeL),
	}
	if len(cfg.Tank.Plants) > 0 {
		led.Plants = make([]tank.Plant, len(cfg.Tank.Plants))
		copy(led.Plants, cfg.Tank.Plants)
	}
	if len(cfg.Tank.Equipment) > 0 {
		led.Equipment = make([]tank.Equipment, len(cfg.Tank.Equipment))
		copy(led.Equipment, cfg.Tank.Equipment)
	}
	led.RecomputeSurface(cfg.Tank.GlassAreaCm2)
	return led
}
