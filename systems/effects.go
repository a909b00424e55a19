package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/titan/components"
)

// EffectSystem despawns timed entities (telegraphs, impacts, beams) once they expire.
type EffectSystem struct {
	world   *ecs.World
	filter  *ecs.Filter1[components.Timed]
	expired []ecs.Entity
}

// NewEffectSystem creates an effect reaper for world.
func NewEffectSystem(world *ecs.World) *EffectSystem {
	return &EffectSystem{
		world:  world,
		filter: ecs.NewFilter1[components.Timed](world),
	}
}

// Update removes every timed entity whose expiry is at or before now.
// Returns the number removed.
func (s *EffectSystem) Update(now float64) int {
	s.expired = s.expired[:0]
	query := s.filter.Query()
	for query.Next() {
		t := query.Get()
		if t.ExpireAt <= now {
			s.expired = append(s.expired, query.Entity())
		}
	}

	for _, e := range s.expired {
		if s.world.Alive(e) {
			s.world.RemoveEntity(e)
		}
	}
	return len(s.expired)
}
