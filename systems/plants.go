package systems

import (
	"github.com/cablegrove/tanksim/config"
	"github.com/cablegrove/tanksim/tank"
)

// PlantGrowth distributes a biomass budget across rooted plants weighted by
// species growth rate, drawing down dissolved nitrate. Plants past their
// size cap grow at a penalty and shed excess biomass back into waste.
type PlantGrowth struct{}

// NewPlantGrowth creates the plant growth system.
func NewPlantGrowth() *PlantGrowth {
	return &PlantGrowth{}
}

func (s *PlantGrowth) ID() string { return IDPlants }

func (s *PlantGrowth) Tier() tank.Tier { return tank.TierPassive }

func (s *PlantGrowth) Update(led *tank.Ledger, cfg *config.Config) []tank.Effect {
	pc := &cfg.Plants
	if len(led.Plants) == 0 {
		return nil
	}

	var effects []tank.Effect
	nitrate := nonNeg(led.Nitrate)

	// Desired growth per plant, weighted by its species rate, penalized
	// once past the size cap.
	desired := make([]float64, len(led.Plants))
	var totalDesired float64
	for i, p := range led.Plants {
		g := pc.GrowthRate * p.GrowthRate
		if p.MaxBiomass > 0 && p.Biomass > p.MaxBiomass {
			g *= pc.OvergrowthPenalty
		}
		if g < 0 {
			g = 0
		}
		desired[i] = g
		totalDesired += g
	}

	// Scale all growth down together when nitrate cannot cover the budget,
	// so species keep their relative shares.
	scale := 1.0
	if pc.NitrateUptakeMgPerG > 0 && totalDesired > 0 {
		need := totalDesired * pc.NitrateUptakeMgPerG
		if need > nitrate {
			scale = nitrate / need
		}
	}

	var totalUptake float64
	for i, g := range desired {
		grown := g * scale
		if grown > 0 {
			effects = append(effects, tank.PlantDelta(i, grown, s.Tier(), s.ID()))
			totalUptake += grown * pc.NitrateUptakeMgPerG
		}
	}
	if totalUptake > 0 {
		effects = append(effects, tank.Scalar(tank.ResNitrate, -totalUptake, s.Tier(), s.ID()))
	}

	// Overgrown plants shed excess into waste.
	if pc.WasteReleaseRate > 0 {
		for i, p := range led.Plants {
			if p.MaxBiomass > 0 && p.Biomass > p.MaxBiomass {
				shed := (p.Biomass - p.MaxBiomass) * pc.WasteReleaseRate
				if shed > 0 {
					effects = append(effects,
						tank.PlantDelta(i, -shed, s.Tier(), s.ID()),
						tank.Scalar(tank.ResWaste, shed, s.Tier(), s.ID()),
					)
				}
			}
		}
	}

	return effects
}
