package telemetry

import "sort"

// CombatantStats tracks one combatant over the fight.
type CombatantStats struct {
	ID          uint32  `json:"id"`
	Role        string  `json:"role"`
	SpawnedAt   float64 `json:"spawned_at"`
	DiedAt      float64 `json:"died_at,omitempty"`
	Alive       bool    `json:"alive"`
	DamageDealt float64 `json:"damage_dealt"`
	DamageTaken float64 `json:"damage_taken"`
	HitsTaken   int     `json:"hits_taken"`
}

// CombatantTracker keeps per-entity fight statistics.
type CombatantTracker struct {
	stats map[uint32]*CombatantStats
}

// NewCombatantTracker creates an empty tracker.
func NewCombatantTracker() *CombatantTracker {
	return &CombatantTracker{stats: make(map[uint32]*CombatantStats)}
}

// Register starts tracking an entity.
func (ct *CombatantTracker) Register(id uint32, role string, now float64) {
	ct.stats[id] = &CombatantStats{ID: id, Role: role, SpawnedAt: now, Alive: true}
}

// Get returns the stats for an entity, or nil if not tracked.
func (ct *CombatantTracker) Get(id uint32) *CombatantStats {
	return ct.stats[id]
}

// RecordDamage books a landed hit against both parties. Untracked ids are ignored.
func (ct *CombatantTracker) RecordDamage(source, target uint32, amount float64) {
	if s := ct.stats[source]; s != nil {
		s.DamageDealt += amount
	}
	if s := ct.stats[target]; s != nil {
		s.DamageTaken += amount
		s.HitsTaken++
	}
}

// RecordDeath marks an entity dead at now.
func (ct *CombatantTracker) RecordDeath(id uint32, now float64) {
	if s := ct.stats[id]; s != nil && s.Alive {
		s.Alive = false
		s.DiedAt = now
	}
}

// All returns every tracked combatant ordered by id.
func (ct *CombatantTracker) All() []CombatantStats {
	out := make([]CombatantStats, 0, len(ct.stats))
	for _, s := range ct.stats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of tracked combatants.
func (ct *CombatantTracker) Count() int {
	return len(ct.stats)
}
