package systems

// SystemInfo describes a tick stage for perf tracking and the viewer.
type SystemInfo struct {
	ID          string // perf tracker key
	Name        string // display name
	Description string
	Category    string // e.g. "core", "combat", "io"
}

// SystemRegistry keeps stage naming in one place so perf output and the viewer agree.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// Stage ids, in tick order.
const (
	StageChallengers = "challengers"
	StageBoss        = "boss"
	StageLife        = "life"
	StageEffects     = "effects"
	StageReplication = "replication"
	StageTelemetry   = "telemetry"
)

// NewSystemRegistry returns a registry holding every tick stage.
func NewSystemRegistry() *SystemRegistry {
	r := &SystemRegistry{byID: make(map[string]SystemInfo)}
	r.Register(SystemInfo{ID: StageChallengers, Name: "Challengers", Description: "Moves the party and lands their strikes", Category: "combat"})
	r.Register(SystemInfo{ID: StageBoss, Name: "Boss AI", Description: "Delayed effects, targeting, phase and attacks", Category: "combat"})
	r.Register(SystemInfo{ID: StageLife, Name: "Life", Description: "Applies death and critical transitions", Category: "core"})
	r.Register(SystemInfo{ID: StageEffects, Name: "Effects", Description: "Despawns expired telegraphs and impacts", Category: "core"})
	r.Register(SystemInfo{ID: StageReplication, Name: "Replication", Description: "Encodes dirty boss state", Category: "io"})
	r.Register(SystemInfo{ID: StageTelemetry, Name: "Telemetry", Description: "Flushes stats windows", Category: "io"})
	return r
}

// Register adds a stage. Re-registering an id replaces its info.
func (r *SystemRegistry) Register(info SystemInfo) {
	if _, ok := r.byID[info.ID]; ok {
		for i := range r.systems {
			if r.systems[i].ID == info.ID {
				r.systems[i] = info
			}
		}
	} else {
		r.systems = append(r.systems, info)
	}
	r.byID[info.ID] = info
}

// Get returns stage info by id.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for id, or id itself if unknown.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns every stage in registration order.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns every stage id in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
