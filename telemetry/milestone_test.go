package telemetry

import (
	"testing"

	"github.com/cablegrove/tanksim/chem"
	"github.com/cablegrove/tanksim/tank"
)

func milestoneTypes(ms []Milestone) []MilestoneType {
	out := make([]MilestoneType, len(ms))
	for i, m := range ms {
		out[i] = m.Type
	}
	return out
}

func TestMilestones_FireOnce(t *testing.T) {
	md := NewMilestoneDetector()
	led := &tank.Ledger{Water: 40, AOB: 10, Tick: 5}

	first := md.Check(led)
	if len(first) != 1 || first[0].Type != MilestoneAOBEstablished {
		t.Fatalf("first check = %v, want aob_established", milestoneTypes(first))
	}
	if again := md.Check(led); len(again) != 0 {
		t.Errorf("milestone re-fired: %v", milestoneTypes(again))
	}
}

func TestMilestones_PeakNeedsConfirmedDecline(t *testing.T) {
	md := NewMilestoneDetector()
	led := &tank.Ledger{Water: 40}

	// Rising readings never confirm a peak.
	for _, ppm := range []float64{1.0, 2.0, 3.0} {
		led.Ammonia = chem.MassFromPPM(ppm, led.Water)
		if ms := md.Check(led); len(ms) != 0 {
			t.Fatalf("peak fired while still rising: %v", milestoneTypes(ms))
		}
	}

	// A 2% dip is noise, not a peak.
	led.Ammonia = chem.MassFromPPM(2.94, led.Water)
	if ms := md.Check(led); len(ms) != 0 {
		t.Fatalf("peak fired on a 2%% dip: %v", milestoneTypes(ms))
	}

	// A drop past 5% confirms it.
	led.Ammonia = chem.MassFromPPM(2.5, led.Water)
	ms := md.Check(led)
	if len(ms) != 1 || ms[0].Type != MilestoneAmmoniaPeak {
		t.Fatalf("got %v, want ammonia_peak", milestoneTypes(ms))
	}
}

func TestMilestones_TankCycledRequiresBothPeaks(t *testing.T) {
	md := NewMilestoneDetector()
	led := &tank.Ledger{Water: 40}

	// Walk ammonia up and down to confirm its peak.
	for _, ppm := range []float64{2.0, 1.0} {
		led.Ammonia = chem.MassFromPPM(ppm, led.Water)
		md.Check(led)
	}

	// Clear readings and nitrate present, but nitrite never peaked.
	led.Ammonia = chem.MassFromPPM(0.1, led.Water)
	led.Nitrate = chem.MassFromPPM(20, led.Water)
	for _, m := range md.Check(led) {
		if m.Type == MilestoneTankCycled {
			t.Fatal("tank_cycled fired without a nitrite peak")
		}
	}

	// Now walk nitrite through its spike and back down to clear.
	found := false
	for _, ppm := range []float64{3.0, 1.0, 0.1} {
		led.Nitrite = chem.MassFromPPM(ppm, led.Water)
		for _, m := range md.Check(led) {
			if m.Type == MilestoneTankCycled {
				found = true
			}
		}
	}
	if !found {
		t.Error("tank_cycled never fired after both peaks cleared")
	}
}
