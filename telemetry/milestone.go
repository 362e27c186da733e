package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/cablegrove/tanksim/chem"
	"github.com/cablegrove/tanksim/tank"
)

// MilestoneType identifies a landmark in the nitrogen cycle's progression.
type MilestoneType string

const (
	MilestoneAOBEstablished MilestoneType = "aob_established"
	MilestoneNOBEstablished MilestoneType = "nob_established"
	MilestoneAmmoniaPeak    MilestoneType = "ammonia_peak"
	MilestoneNitritePeak    MilestoneType = "nitrite_peak"
	MilestoneTankCycled     MilestoneType = "tank_cycled"
)

// Milestone records an automatically detected cycle landmark.
type Milestone struct {
	Type        MilestoneType `csv:"type"`
	Tick        int64         `csv:"tick"`
	Description string        `csv:"description"`
}

// LogMilestone logs the milestone using slog.
func (m Milestone) LogMilestone() {
	slog.Info("milestone",
		"type", string(m.Type),
		"tick", m.Tick,
		"description", m.Description,
	)
}

// cycledThresholdPPM is the reading below which ammonia and nitrite count as
// cleared for the tank-cycled milestone. Matches the hobbyist convention of
// "0 ppm on the test kit".
const cycledThresholdPPM = 0.25

// MilestoneDetector watches per-tick ledger readings for cycle landmarks.
// Each milestone fires at most once per detector lifetime.
type MilestoneDetector struct {
	aobSeen bool
	nobSeen bool

	ammoniaPeakPPM float64
	ammoniaPeaked  bool
	nitritePeakPPM float64
	nitritePeaked  bool

	cycled bool
}

// NewMilestoneDetector creates a detector with no history.
func NewMilestoneDetector() *MilestoneDetector {
	return &MilestoneDetector{}
}

// Check analyzes the post-tick ledger and returns any triggered milestones.
func (md *MilestoneDetector) Check(led *tank.Ledger) []Milestone {
	var out []Milestone

	ammonia := chem.PPM(led.Ammonia, led.Water)
	nitrite := chem.PPM(led.Nitrite, led.Water)
	nitrate := chem.PPM(led.Nitrate, led.Water)

	if !md.aobSeen && led.AOB > 0 {
		md.aobSeen = true
		out = append(out, Milestone{
			Type:        MilestoneAOBEstablished,
			Tick:        led.Tick,
			Description: fmt.Sprintf("AOB colony established at %.1f units", led.AOB),
		})
	}
	if !md.nobSeen && led.NOB > 0 {
		md.nobSeen = true
		out = append(out, Milestone{
			Type:        MilestoneNOBEstablished,
			Tick:        led.Tick,
			Description: fmt.Sprintf("NOB colony established at %.1f units", led.NOB),
		})
	}

	// A peak is confirmed once the reading falls 5% below its running high.
	if ammonia > md.ammoniaPeakPPM {
		md.ammoniaPeakPPM = ammonia
	} else if !md.ammoniaPeaked && md.ammoniaPeakPPM > cycledThresholdPPM && ammonia < md.ammoniaPeakPPM*0.95 {
		md.ammoniaPeaked = true
		out = append(out, Milestone{
			Type:        MilestoneAmmoniaPeak,
			Tick:        led.Tick,
			Description: fmt.Sprintf("Ammonia peaked at %.2f ppm, now %.2f", md.ammoniaPeakPPM, ammonia),
		})
	}
	if nitrite > md.nitritePeakPPM {
		md.nitritePeakPPM = nitrite
	} else if !md.nitritePeaked && md.nitritePeakPPM > cycledThresholdPPM && nitrite < md.nitritePeakPPM*0.95 {
		md.nitritePeaked = true
		out = append(out, Milestone{
			Type:        MilestoneNitritePeak,
			Tick:        led.Tick,
			Description: fmt.Sprintf("Nitrite peaked at %.2f ppm, now %.2f", md.nitritePeakPPM, nitrite),
		})
	}

	if !md.cycled && md.ammoniaPeaked && md.nitritePeaked &&
		ammonia < cycledThresholdPPM && nitrite < cycledThresholdPPM && nitrate > 0 {
		md.cycled = true
		out = append(out, Milestone{
			Type:        MilestoneTankCycled,
			Tick:        led.Tick,
			Description: fmt.Sprintf("Tank cycled: ammonia %.2f, nitrite %.2f, nitrate %.2f ppm", ammonia, nitrite, nitrate),
		})
	}

	return out
}
