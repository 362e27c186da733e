package systems

// SystemInfo describes a simulation system for telemetry and tooling.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking and effect provenance)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "physical", "biochemical")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so telemetry and the perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems to the registry.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	// Immediate physical processes
	r.Register(SystemInfo{ID: IDTemperature, Name: "Temperature", Description: "Newtonian drift toward ambient, heater hold", Category: "physical"})
	r.Register(SystemInfo{ID: IDGasExchange, Name: "Gas Exchange", Description: "O2/CO2 surface exchange", Category: "physical"})
	r.Register(SystemInfo{ID: IDPH, Name: "pH Drift", Description: "CO2-driven pH drift against carbonate buffer", Category: "physical"})

	// Passive biochemical processes
	r.Register(SystemInfo{ID: IDDecay, Name: "Decay", Description: "Uneaten food decays into solid waste", Category: "biochemical"})
	r.Register(SystemInfo{ID: IDNitrogenCycle, Name: "Nitrogen Cycle", Description: "Mineralization and bacterial nitrification chain", Category: "biochemical"})
	r.Register(SystemInfo{ID: IDAlgae, Name: "Algae Growth", Description: "Light-driven algae growth on dissolved nitrate", Category: "biochemical"})
	r.Register(SystemInfo{ID: IDPlants, Name: "Plant Growth", Description: "Biomass distribution across rooted plants", Category: "biochemical"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns systems filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
