package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/titan/components"
)

// criticalFraction of Health.Max marks a mob as critical.
const criticalFraction = 0.9

// MobStateListener is told about every life-state transition.
type MobStateListener func(e ecs.Entity, state components.LifeState)

// LifeSystem moves mobs through alive, critical and dead as damage accumulates.
type LifeSystem struct {
	filter    *ecs.Filter3[components.MobState, components.Health, components.Damageable]
	mobMap    *ecs.Map[components.MobState]
	listeners []MobStateListener

	changed []lifeChange
}

type lifeChange struct {
	entity ecs.Entity
	state  components.LifeState
}

// NewLifeSystem creates a life system for world.
func NewLifeSystem(world *ecs.World) *LifeSystem {
	return &LifeSystem{
		filter: ecs.NewFilter3[components.MobState, components.Health, components.Damageable](world),
		mobMap: ecs.NewMap[components.MobState](world),
	}
}

// Subscribe registers fn for life-state transitions.
func (s *LifeSystem) Subscribe(fn MobStateListener) {
	s.listeners = append(s.listeners, fn)
}

// LifeStateFor returns the state a mob with the given damage total should be in.
func LifeStateFor(total, maxHealth float64) components.LifeState {
	switch {
	case total >= maxHealth:
		return components.LifeDead
	case total >= maxHealth*criticalFraction:
		return components.LifeCritical
	default:
		return components.LifeAlive
	}
}

// Update applies pending transitions and notifies listeners.
// Dead is terminal; dead mobs never come back.
func (s *LifeSystem) Update() int {
	s.changed = s.changed[:0]

	query := s.filter.Query()
	for query.Next() {
		mob, health, dmg := query.Get()
		if mob.State == components.LifeDead {
			continue
		}
		next := LifeStateFor(dmg.Total, health.Max)
		if next != mob.State {
			s.changed = append(s.changed, lifeChange{entity: query.Entity(), state: next})
		}
	}

	for _, c := range s.changed {
		if mob := s.mobMap.Get(c.entity); mob != nil {
			mob.State = c.state
		}
		for _, fn := range s.listeners {
			fn(c.entity, c.state)
		}
	}
	return len(s.changed)
}
