package systems

import (
	"math"
	"reflect"
	"testing"

	"github.com/cablegrove/tanksim/chem"
	"github.com/cablegrove/tanksim/config"
	"github.com/cablegrove/tanksim/tank"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading default config: %v", err)
	}
	return cfg
}

// testLedger returns a bare 40 L ledger with plenty of surface.
func testLedger() *tank.Ledger {
	return &tank.Ledger{
		Water:   40.0,
		Surface: 4000.0,
	}
}

// netDelta sums all effect deltas targeting one resource.
func netDelta(effects []tank.Effect, r tank.Resource) float64 {
	var sum float64
	for _, e := range effects {
		if e.Resource == r {
			sum += e.Delta
		}
	}
	return sum
}

func TestNitrogenCycle_ZeroInputStability(t *testing.T) {
	cfg := testConfig(t)
	led := testLedger()

	effects := NewNitrogenCycle().Update(led, cfg)
	if len(effects) != 0 {
		t.Errorf("expected no effects on an empty tank, got %d: %v", len(effects), effects)
	}
}

func TestNitrogenCycle_DoesNotMutateLedger(t *testing.T) {
	cfg := testConfig(t)
	led := testLedger()
	led.Waste = 2.0
	led.Ammonia = 80.0
	led.AOB = 50.0

	before := *led
	NewNitrogenCycle().Update(led, cfg)
	if !reflect.DeepEqual(*led, before) {
		t.Error("Update mutated the ledger snapshot")
	}
}

func TestNitrogenCycle_Mineralization(t *testing.T) {
	cfg := testConfig(t)
	nc := &cfg.NitrogenCycle
	led := testLedger()
	led.Waste = 2.0

	effects := NewNitrogenCycle().Update(led, cfg)

	wantConsumed := 2.0 * nc.WasteConversionRate
	wantProduced := wantConsumed * nc.WasteToAmmoniaMgPerG

	if got := netDelta(effects, tank.ResWaste); math.Abs(got+wantConsumed) > 1e-9 {
		t.Errorf("waste delta = %v, want %v", got, -wantConsumed)
	}
	if got := netDelta(effects, tank.ResAmmonia); math.Abs(got-wantProduced) > 1e-9 {
		t.Errorf("ammonia delta = %v, want %v", got, wantProduced)
	}
}

func TestNitrogenCycle_MineralizationNeverOverdraws(t *testing.T) {
	cfg := testConfig(t)
	led := testLedger()

	for _, waste := range []float64{0.0001, 0.5, 2.0, 100.0} {
		led.Waste = waste
		effects := NewNitrogenCycle().Update(led, cfg)
		consumed := -netDelta(effects, tank.ResWaste)
		if consumed > waste+1e-12 {
			t.Errorf("waste %v: consumed %v exceeds available", waste, consumed)
		}
	}
}

func TestNitrogenCycle_AOBConversionCapacityLimited(t *testing.T) {
	cfg := testConfig(t)
	nc := &cfg.NitrogenCycle
	led := testLedger()
	led.Ammonia = 80.0
	led.AOB = 10.0

	effects := NewNitrogenCycle().Update(led, cfg)

	capacity := led.AOB * nc.AOBProcessingRate * led.Water
	consumed := -netDelta(effects, tank.ResAmmonia)
	if math.Abs(consumed-capacity) > 1e-9 {
		t.Errorf("ammonia consumed = %v, want capacity %v", consumed, capacity)
	}
	gained := netDelta(effects, tank.ResNitrite)
	if math.Abs(gained-consumed*nc.AmmoniaToNitriteRatio) > 1e-9 {
		t.Errorf("nitrite gained %v does not match ammonia consumed %v", gained, consumed)
	}
}

func TestNitrogenCycle_ConversionSubstrateLimited(t *testing.T) {
	cfg := testConfig(t)
	led := testLedger()
	led.Ammonia = 0.5 // far below the colony's capacity
	led.AOB = 1000.0

	effects := NewNitrogenCycle().Update(led, cfg)
	consumed := -netDelta(effects, tank.ResAmmonia)
	if consumed > 0.5+1e-12 {
		t.Errorf("consumed %v exceeds the 0.5 mg available", consumed)
	}
}

func TestNitrogenCycle_NOBConversion(t *testing.T) {
	cfg := testConfig(t)
	nc := &cfg.NitrogenCycle
	led := testLedger()
	led.Nitrite = 40.0
	led.NOB = 10.0

	effects := NewNitrogenCycle().Update(led, cfg)

	capacity := led.NOB * nc.NOBProcessingRate * led.Water
	consumed := -netDelta(effects, tank.ResNitrite)
	if math.Abs(consumed-capacity) > 1e-9 {
		t.Errorf("nitrite consumed = %v, want capacity %v", consumed, capacity)
	}
	if got := netDelta(effects, tank.ResNitrate); math.Abs(got-consumed*nc.NitriteToNitrateRatio) > 1e-9 {
		t.Errorf("nitrate gained = %v, want %v", got, consumed)
	}
}

func TestNitrogenCycle_StageConservation(t *testing.T) {
	// With 1:1 ratios, mass out of one compound equals mass into the next.
	cfg := testConfig(t)
	led := testLedger()
	led.Ammonia = 80.0
	led.Nitrite = 20.0
	led.AOB = 30.0
	led.NOB = 15.0

	effects := NewNitrogenCycle().Update(led, cfg)

	ammoniaOut := -netDelta(effects, tank.ResAmmonia)
	nitriteNet := netDelta(effects, tank.ResNitrite)
	nitrateIn := netDelta(effects, tank.ResNitrate)

	// nitrite gained from stage 2 minus nitrite consumed by stage 3
	if math.Abs((ammoniaOut-nitrateIn)-nitriteNet) > 1e-9 {
		t.Errorf("stage conservation violated: ammoniaOut=%v nitriteNet=%v nitrateIn=%v",
			ammoniaOut, nitriteNet, nitrateIn)
	}
}

func TestNitrogenCycle_SpawnConcentrationGated(t *testing.T) {
	cfg := testConfig(t)
	cfg.NitrogenCycle.AOBGrowthRate = 0 // isolate the spawn delta
	nc := &cfg.NitrogenCycle
	s := NewNitrogenCycle()

	// Same mass, different volume: only the concentrated tank spawns.
	mass := chem.MassFromPPM(nc.AOBSpawnThresholdPPM, 10.0) // threshold at 10 L

	small := testLedger()
	small.Water = 10.0
	small.Ammonia = mass
	if got := netDelta(s.Update(small, cfg), tank.ResAOB); got != nc.SpawnAmount {
		t.Errorf("concentrated tank: AOB delta = %v, want spawn %v", got, nc.SpawnAmount)
	}

	large := testLedger()
	large.Water = 400.0
	large.Ammonia = mass
	if got := netDelta(s.Update(large, cfg), tank.ResAOB); got != 0 {
		t.Errorf("dilute tank: AOB delta = %v, want no spawn", got)
	}
}

func TestNitrogenCycle_NoSpawnForExistingColony(t *testing.T) {
	cfg := testConfig(t)
	led := testLedger()
	led.Ammonia = 80.0
	led.AOB = 5.0 // already established; high ammonia must not respawn

	effects := NewNitrogenCycle().Update(led, cfg)
	for _, e := range effects {
		if e.Resource == tank.ResAOB && e.Delta == cfg.NitrogenCycle.SpawnAmount {
			t.Error("spawn emitted for a non-zero colony")
		}
	}
}

func TestNitrogenCycle_CapacityCapBeforeConversion(t *testing.T) {
	cfg := testConfig(t)
	nc := &cfg.NitrogenCycle
	led := testLedger()
	led.Surface = 100.0 // capacity 100 at default density
	led.AOB = 500.0     // orphaned by equipment removal
	led.Ammonia = 1000.0

	effects := NewNitrogenCycle().Update(led, cfg)

	maxBacteria := chem.CarryingCapacity(led.Surface, nc.BacteriaPerArea)

	// First AOB effect is the cap, before any conversion happened.
	var firstAOB *tank.Effect
	for i := range effects {
		if effects[i].Resource == tank.ResAOB {
			firstAOB = &effects[i]
			break
		}
	}
	if firstAOB == nil {
		t.Fatal("expected a capping effect on AOB")
	}
	if math.Abs(firstAOB.Delta-(maxBacteria-500.0)) > 1e-9 {
		t.Errorf("cap delta = %v, want %v", firstAOB.Delta, maxBacteria-500.0)
	}

	// Conversion must use the capped population, not the inflated one.
	capacity := maxBacteria * nc.AOBProcessingRate * led.Water
	consumed := -netDelta(effects, tank.ResAmmonia)
	if consumed > capacity+1e-9 {
		t.Errorf("consumed %v exceeds capped capacity %v: over-capacity colony over-processed", consumed, capacity)
	}
}

func TestNitrogenCycle_LogisticGrowthBounded(t *testing.T) {
	cfg := testConfig(t)
	nc := &cfg.NitrogenCycle
	led := testLedger()
	led.Surface = 100.0
	led.AOB = 99.0
	led.Ammonia = 1000.0 // well fed

	effects := NewNitrogenCycle().Update(led, cfg)

	maxBacteria := chem.CarryingCapacity(led.Surface, nc.BacteriaPerArea)
	if led.AOB+netDelta(effects, tank.ResAOB) > maxBacteria+1e-9 {
		t.Error("growth pushed AOB above carrying capacity")
	}
}

func TestNitrogenCycle_GrowthRequiresFood(t *testing.T) {
	cfg := testConfig(t)
	led := testLedger()
	led.AOB = 50.0
	led.Ammonia = 0 // starved

	effects := NewNitrogenCycle().Update(led, cfg)
	if got := netDelta(effects, tank.ResAOB); got >= 0 {
		t.Errorf("starved AOB delta = %v, want negative (death)", got)
	}
}

func TestNitrogenCycle_StarvationDeathRate(t *testing.T) {
	cfg := testConfig(t)
	nc := &cfg.NitrogenCycle
	led := testLedger()
	led.AOB = 100.0

	effects := NewNitrogenCycle().Update(led, cfg)
	want := -100.0 * nc.DeathRate
	if got := netDelta(effects, tank.ResAOB); math.Abs(got-want) > 1e-9 {
		t.Errorf("starvation delta = %v, want %v", got, want)
	}
}

func TestNitrogenCycle_StarvationRespectsFloor(t *testing.T) {
	cfg := testConfig(t)
	cfg.NitrogenCycle.MinPopulation = 5.0
	cfg.NitrogenCycle.DeathRate = 0.5
	led := testLedger()
	led.AOB = 5.2

	effects := NewNitrogenCycle().Update(led, cfg)
	after := led.AOB + netDelta(effects, tank.ResAOB)
	if after < 5.0-1e-9 {
		t.Errorf("population %v fell below the configured floor", after)
	}
}

func TestNitrogenCycle_NegativeInputsTreatedAsZero(t *testing.T) {
	cfg := testConfig(t)
	led := testLedger()
	led.Waste = -3.0
	led.Ammonia = -20.0
	led.AOB = -5.0

	effects := NewNitrogenCycle().Update(led, cfg)
	if len(effects) != 0 {
		t.Errorf("negative inputs should behave as an empty tank, got %v", effects)
	}
}

func TestNitrogenCycle_ZeroWaterNoConversion(t *testing.T) {
	cfg := testConfig(t)
	led := testLedger()
	led.Water = 0
	led.Ammonia = 80.0
	led.AOB = 50.0

	effects := NewNitrogenCycle().Update(led, cfg)
	// Conversion capacity scales with water, so a dry tank converts nothing;
	// the starved colony still decays, and no value may be NaN.
	if got := -netDelta(effects, tank.ResAmmonia); got != 0 {
		t.Errorf("dry tank converted %v mg ammonia", got)
	}
	for _, e := range effects {
		if math.IsNaN(e.Delta) || math.IsInf(e.Delta, 0) {
			t.Errorf("non-finite delta in %v", e)
		}
	}
}

func TestNitrogenCycle_WorkingCopyChainsStages(t *testing.T) {
	// Ammonia produced by mineralization this tick is visible to the AOB
	// stage in the same tick.
	cfg := testConfig(t)
	cfg.NitrogenCycle.AOBProcessingRate = 1000.0 // effectively unlimited capacity
	led := testLedger()
	led.Waste = 2.0
	led.AOB = 10.0

	effects := NewNitrogenCycle().Update(led, cfg)

	produced := 2.0 * cfg.NitrogenCycle.WasteConversionRate * cfg.NitrogenCycle.WasteToAmmoniaMgPerG
	consumed := -netDelta(effects, tank.ResAmmonia) + produced
	if consumed < produced-1e-9 {
		t.Errorf("stage 2 consumed %v, want at least the %v produced in stage 1", consumed, produced)
	}
}
