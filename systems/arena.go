package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/titan/components"
)

// Arena owns the barrier rings of activated bosses.
type Arena struct {
	spawner  Spawner
	segments map[ecs.Entity][]ecs.Entity
}

// NewArena creates an arena manager spawning through spawner.
func NewArena(spawner Spawner) *Arena {
	return &Arena{
		spawner:  spawner,
		segments: make(map[ecs.Entity][]ecs.Entity),
	}
}

// Activate builds a fresh ring of barriers around center for boss.
// Any ring the boss already owns is torn down first.
func (a *Arena) Activate(boss ecs.Entity, center r2.Vec, m components.MapID, t *components.BossTunables) {
	a.Deactivate(boss)

	n := t.ArenaSegments
	ring := make([]ecs.Entity, 0, n)
	for i := 0; i < n; i++ {
		angle := float64(i) / float64(n) * 2 * math.Pi
		p := r2.Add(center, r2.Vec{X: math.Cos(angle) * t.ArenaRadius, Y: math.Sin(angle) * t.ArenaRadius})
		seg := a.spawner.Spawn(t.BarrierPrototype, p, m)
		a.spawner.Anchor(seg)
		ring = append(ring, seg)
	}
	a.segments[boss] = ring
}

// Deactivate removes every barrier owned by boss. A boss without a ring is ignored.
func (a *Arena) Deactivate(boss ecs.Entity) {
	ring, ok := a.segments[boss]
	if !ok {
		return
	}
	for _, seg := range ring {
		if !a.spawner.Deleted(seg) {
			a.spawner.Delete(seg)
		}
	}
	delete(a.segments, boss)
}

// Segments returns the barriers currently owned by boss.
func (a *Arena) Segments(boss ecs.Entity) []ecs.Entity {
	return a.segments[boss]
}

// Active reports whether boss currently owns a ring.
func (a *Arena) Active(boss ecs.Entity) bool {
	_, ok := a.segments[boss]
	return ok
}
