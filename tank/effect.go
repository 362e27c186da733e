package tank

import "math"

// Resource identifies one scalar quantity in the ledger.
type Resource uint8

const (
	ResWater Resource = iota
	ResTemperature
	ResPH
	ResOxygen
	ResCO2
	ResFood
	ResWaste
	ResAlgae
	ResAmmonia
	ResNitrite
	ResNitrate
	ResAOB
	ResNOB
	ResPlantBiomass // Per-plant; effects carry the plant index
)

var resourceNames = map[Resource]string{
	ResWater:        "water",
	ResTemperature:  "temperature",
	ResPH:           "ph",
	ResOxygen:       "oxygen",
	ResCO2:          "co2",
	ResFood:         "food",
	ResWaste:        "waste",
	ResAlgae:        "algae",
	ResAmmonia:      "ammonia",
	ResNitrite:      "nitrite",
	ResNitrate:      "nitrate",
	ResAOB:          "aob",
	ResNOB:          "nob",
	ResPlantBiomass: "plant_biomass",
}

func (r Resource) String() string {
	if name, ok := resourceNames[r]; ok {
		return name
	}
	return "unknown"
}

// Tier is a scheduling phase. All systems in a tier run before any system in
// a later tier; within a tier, registration order is the invocation order.
type Tier uint8

const (
	TierImmediate Tier = iota // Physical processes: temperature, gas exchange, pH
	TierPassive               // Biochemical processes: decay, nitrogen cycle, algae, plants
)

func (t Tier) String() string {
	switch t {
	case TierImmediate:
		return "immediate"
	case TierPassive:
		return "passive"
	}
	return "unknown"
}

// Effect is an immutable proposed delta to one resource. Source carries the
// originating system ID for the audit trail; it has no behavioral meaning.
type Effect struct {
	Resource Resource
	Index    int // Plant index for ResPlantBiomass, -1 otherwise
	Delta    float64
	Tier     Tier
	Source   string
}

// Scalar builds an effect on a scalar resource.
func Scalar(r Resource, delta float64, tier Tier, source string) Effect {
	return Effect{Resource: r, Index: -1, Delta: delta, Tier: tier, Source: source}
}

// PlantDelta builds an effect on one plant's biomass.
func PlantDelta(index int, delta float64, tier Tier, source string) Effect {
	return Effect{Resource: ResPlantBiomass, Index: index, Delta: delta, Tier: tier, Source: source}
}

// Bounds returns the valid domain for a resource's final value. Most
// quantities are simply non-negative; pH is bounded both ways.
func Bounds(r Resource) (min, max float64) {
	if r == ResPH {
		return 0, 14
	}
	return 0, math.MaxFloat64
}
