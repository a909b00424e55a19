// Package components defines ECS components for the boss arena simulation.
package components

import "gonum.org/v1/gonum/spatial/r2"

// MapID identifies a map/world. Entities only interact with others on the same map.
type MapID uint32

// Position represents an entity's world position.
type Position struct {
	X, Y float64
}

// Vec returns the position as a gonum vector.
func (p Position) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// PositionOf converts a vector into a Position component.
func PositionOf(v r2.Vec) Position {
	return Position{X: v.X, Y: v.Y}
}

// WorldMap records which map an entity lives on.
type WorldMap struct {
	ID MapID
}

// LifeState is the coarse mob state of a living-capable entity.
type LifeState uint8

const (
	LifeAlive LifeState = iota
	LifeCritical
	LifeDead
)

func (s LifeState) String() string {
	switch s {
	case LifeAlive:
		return "alive"
	case LifeCritical:
		return "critical"
	case LifeDead:
		return "dead"
	}
	return "unknown"
}

// MobState marks an entity as living-capable. Dead mobs are never targeted.
type MobState struct {
	State LifeState `inspect:"label"`
}

// Health holds the damage total at which a mob dies.
type Health struct {
	Max float64
}

// Damageable accumulates damage taken. Entities without it cannot be hurt.
type Damageable struct {
	Total  float64                `inspect:"label,fmt:%.1f"`
	ByType map[DamageType]float64 `inspect:"skip"`
}

// Anchored marks an entity as immobilised at its spawn point (arena barriers).
type Anchored struct{}

// Prototype records the archetype id an entity was spawned from.
type Prototype struct {
	ID string
}

// Timed entities are despawned once the simulation clock passes ExpireAt.
type Timed struct {
	ExpireAt float64
}
