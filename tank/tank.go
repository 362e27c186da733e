// Package tank defines the resource ledger: the per-tick snapshot of every
// simulated quantity in the aquarium. Pure data; all behavior lives in the
// subsystems and the scheduler.
package tank

// Plant is a single rooted plant in the tank.
type Plant struct {
	Species    string  `yaml:"species"`
	GrowthRate float64 `yaml:"growth_rate"` // Relative share weight for biomass distribution
	Biomass    float64 `yaml:"biomass"`     // Grams
	MaxBiomass float64 `yaml:"max_biomass"` // Overgrowth threshold; excess sheds as waste
}

// EquipmentKind identifies what an equipment item contributes to the tank.
type EquipmentKind string

const (
	EquipFilter    EquipmentKind = "filter"    // Colonizable media, agitation
	EquipHeater    EquipmentKind = "heater"    // Temperature hold
	EquipAirstone  EquipmentKind = "airstone"  // Agitation only
	EquipHardscape EquipmentKind = "hardscape" // Colonizable surface only
)

// Equipment is a removable item. Disabled equipment contributes nothing.
type Equipment struct {
	Name      string        `yaml:"name"`
	Kind      EquipmentKind `yaml:"kind"`
	Area      float64       `yaml:"area"`      // Colonizable surface in cm²
	Agitation float64       `yaml:"agitation"` // Surface agitation contribution (dimensionless)
	Enabled   bool          `yaml:"enabled"`
}

// Ledger is the snapshot of all simulated quantities at one point in time.
//
// Dissolved nitrogen compounds are stored as absolute mass (mg), never as
// concentration: ppm is always derived from mass and water volume, so
// evaporation concentrates compounds without any recomputation step.
type Ledger struct {
	Tick int64

	// Water column
	Water       float64 // Liters
	Temperature float64 // °C
	PH          float64
	Oxygen      float64 // mg dissolved O2
	CO2         float64 // mg dissolved CO2

	// Organics
	Food  float64 // Grams of uneaten food
	Waste float64 // Grams of solid waste awaiting mineralization
	Algae float64 // Grams of algae biomass

	// Nitrogen chain, absolute mass in mg
	Ammonia float64
	Nitrite float64
	Nitrate float64

	// Bacterial colonies, dimensionless population units
	AOB float64
	NOB float64

	// Colonizable area in cm², aggregated from glass plus enabled equipment.
	// Recomputed on equipment change, not every tick.
	Surface float64

	Plants    []Plant
	Equipment []Equipment
}

// Clone returns a deep copy. Ticks never mutate a ledger in place; each tick
// produces a fresh one, so snapshots and replays need no further copying.
func (l *Ledger) Clone() *Ledger {
	out := *l
	if l.Plants != nil {
		out.Plants = make([]Plant, len(l.Plants))
		copy(out.Plants, l.Plants)
	}
	if l.Equipment != nil {
		out.Equipment = make([]Equipment, len(l.Equipment))
		copy(out.Equipment, l.Equipment)
	}
	return &out
}

// RecomputeSurface aggregates colonizable area from the tank glass baseline
// and every enabled equipment item. Call after any equipment change.
func (l *Ledger) RecomputeSurface(glassArea float64) {
	total := glassArea
	for _, eq := range l.Equipment {
		if eq.Enabled {
			total += eq.Area
		}
	}
	if total < 0 {
		total = 0
	}
	l.Surface = total
}

// TotalAgitation sums the agitation contribution of enabled equipment.
func (l *Ledger) TotalAgitation() float64 {
	var total float64
	for _, eq := range l.Equipment {
		if eq.Enabled {
			total += eq.Agitation
		}
	}
	return total
}

// HeaterEnabled reports whether any enabled heater is present.
func (l *Ledger) HeaterEnabled() bool {
	for _, eq := range l.Equipment {
		if eq.Enabled && eq.Kind == EquipHeater {
			return true
		}
	}
	return false
}

// TotalPlantBiomass sums biomass across all plants.
func (l *Ledger) TotalPlantBiomass() float64 {
	var total float64
	for _, p := range l.Plants {
		total += p.Biomass
	}
	return total
}

// Get returns the value of a scalar resource. Plant biomass is addressed
// through the Plants slice, not here.
func (l *Ledger) Get(r Resource) float64 {
	switch r {
	case ResWater:
		return l.Water
	case ResTemperature:
		return l.Temperature
	case ResPH:
		return l.PH
	case ResOxygen:
		return l.Oxygen
	case ResCO2:
		return l.CO2
	case ResFood:
		return l.Food
	case ResWaste:
		return l.Waste
	case ResAlgae:
		return l.Algae
	case ResAmmonia:
		return l.Ammonia
	case ResNitrite:
		return l.Nitrite
	case ResNitrate:
		return l.Nitrate
	case ResAOB:
		return l.AOB
	case ResNOB:
		return l.NOB
	}
	return 0
}

// Set stores a scalar resource value without clamping. The effect applier is
// responsible for domain clamping.
func (l *Ledger) Set(r Resource, v float64) {
	switch r {
	case ResWater:
		l.Water = v
	case ResTemperature:
		l.Temperature = v
	case ResPH:
		l.PH = v
	case ResOxygen:
		l.Oxygen = v
	case ResCO2:
		l.CO2 = v
	case ResFood:
		l.Food = v
	case ResWaste:
		l.Waste = v
	case ResAlgae:
		l.Algae = v
	case ResAmmonia:
		l.Ammonia = v
	case ResNitrite:
		l.Nitrite = v
	case ResNitrate:
		l.Nitrate = v
	case ResAOB:
		l.AOB = v
	case ResNOB:
		l.NOB = v
	}
}
