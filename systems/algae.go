package systems

import (
	"github.com/cablegrove/tanksim/chem"
	"github.com/cablegrove/tanksim/config"
	"github.com/cablegrove/tanksim/tank"
)

// algaeSporeSeed is the standing spore load every tank carries. It lets
// algae establish from zero biomass once light and nitrate allow.
const algaeSporeSeed = 0.01

// AlgaeGrowth grows algae biomass from light and dissolved nitrate, with a
// tank-volume saturation curve and a plant-competition factor. Scrubbing is
// an external action, not part of the tick.
type AlgaeGrowth struct{}

// NewAlgaeGrowth creates the algae growth system.
func NewAlgaeGrowth() *AlgaeGrowth {
	return &AlgaeGrowth{}
}

func (s *AlgaeGrowth) ID() string { return IDAlgae }

func (s *AlgaeGrowth) Tier() tank.Tier { return tank.TierPassive }

func (s *AlgaeGrowth) Update(led *tank.Ledger, cfg *config.Config) []tank.Effect {
	ac := &cfg.Algae

	nitrate := nonNeg(led.Nitrate)
	if nitrate <= 0 || ac.GrowthRate <= 0 || ac.LightIntensity <= 0 {
		return nil
	}

	// Base growth scales with existing biomass plus the spore seed, light,
	// and a volume saturation curve.
	base := ac.GrowthRate * ac.LightIntensity * chem.Saturation(nonNeg(led.Water), ac.VolumeHalfMaxL)
	growth := base * (nonNeg(led.Algae) + algaeSporeSeed)

	// Plants outcompete algae for nutrients.
	competition := 1 - ac.PlantCompetition*led.TotalPlantBiomass()
	if competition < 0 {
		competition = 0
	}
	growth *= competition

	// Growth is nitrate-limited: never consume more than is dissolved.
	if ac.NitrateUptakeMgPerG > 0 {
		maxGrowth := nitrate / ac.NitrateUptakeMgPerG
		if growth > maxGrowth {
			growth = maxGrowth
		}
	}
	if growth <= 0 {
		return nil
	}

	effects := []tank.Effect{
		tank.Scalar(tank.ResAlgae, growth, s.Tier(), s.ID()),
	}
	if uptake := growth * ac.NitrateUptakeMgPerG; uptake > 0 {
		effects = append(effects, tank.Scalar(tank.ResNitrate, -uptake, s.Tier(), s.ID()))
	}
	return effects
}
