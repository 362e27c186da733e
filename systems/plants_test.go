package systems

import (
	"math"
	"testing"

	"github.com/cablegrove/tanksim/tank"
)

// plantGrowth extracts the biomass delta for one plant index.
func plantGrowth(effects []tank.Effect, index int) float64 {
	var sum float64
	for _, e := range effects {
		if e.Resource == tank.ResPlantBiomass && e.Index == index {
			sum += e.Delta
		}
	}
	return sum
}

func TestPlants_EmptyTankNoEffects(t *testing.T) {
	cfg := testConfig(t)
	if effects := NewPlantGrowth().Update(testLedger(), cfg); effects != nil {
		t.Errorf("expected nil for a plantless tank, got %v", effects)
	}
}

func TestPlants_GrowthWeightedBySpeciesRate(t *testing.T) {
	cfg := testConfig(t)
	led := testLedger()
	led.Nitrate = 1000.0 // ample
	led.Plants = []tank.Plant{
		{Species: "anubias", GrowthRate: 1.0, Biomass: 5, MaxBiomass: 100},
		{Species: "vallisneria", GrowthRate: 3.0, Biomass: 5, MaxBiomass: 100},
	}

	effects := NewPlantGrowth().Update(led, cfg)
	slow := plantGrowth(effects, 0)
	fast := plantGrowth(effects, 1)
	if slow <= 0 || fast <= 0 {
		t.Fatalf("expected positive growth for both plants, got %v and %v", slow, fast)
	}
	if math.Abs(fast/slow-3.0) > 1e-9 {
		t.Errorf("growth ratio = %v, want 3.0", fast/slow)
	}
}

func TestPlants_NitrateScarcityPreservesShares(t *testing.T) {
	cfg := testConfig(t)
	led := testLedger()
	led.Nitrate = 0.01 // starvation rations
	led.Plants = []tank.Plant{
		{Species: "anubias", GrowthRate: 1.0, Biomass: 5, MaxBiomass: 100},
		{Species: "vallisneria", GrowthRate: 3.0, Biomass: 5, MaxBiomass: 100},
	}

	effects := NewPlantGrowth().Update(led, cfg)
	slow := plantGrowth(effects, 0)
	fast := plantGrowth(effects, 1)
	if slow > 0 && math.Abs(fast/slow-3.0) > 1e-9 {
		t.Errorf("scarcity broke the share ratio: %v", fast/slow)
	}
	if uptake := -netDelta(effects, tank.ResNitrate); uptake > 0.01+1e-12 {
		t.Errorf("uptake %v exceeds dissolved nitrate", uptake)
	}
}

func TestPlants_OvergrowthShedsToWaste(t *testing.T) {
	cfg := testConfig(t)
	pc := &cfg.Plants
	led := testLedger()
	led.Nitrate = 1000.0
	led.Plants = []tank.Plant{
		{Species: "vallisneria", GrowthRate: 1.0, Biomass: 60, MaxBiomass: 50},
	}

	effects := NewPlantGrowth().Update(led, cfg)

	wantShed := (60.0 - 50.0) * pc.WasteReleaseRate
	if got := netDelta(effects, tank.ResWaste); math.Abs(got-wantShed) > 1e-9 {
		t.Errorf("waste delta = %v, want shed %v", got, wantShed)
	}

	// Net biomass change includes penalized growth minus the shed mass.
	net := plantGrowth(effects, 0)
	wantGrowth := pc.GrowthRate * 1.0 * pc.OvergrowthPenalty
	if math.Abs(net-(wantGrowth-wantShed)) > 1e-9 {
		t.Errorf("net biomass delta = %v, want %v", net, wantGrowth-wantShed)
	}
}
