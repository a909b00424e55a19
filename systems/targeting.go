package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/titan/components"
)

// aimEpsilon is the minimum squared aim vector length; shorter vectors have no direction.
const aimEpsilon = 0.001

// Targeting finds the nearest living mob for a boss.
type Targeting struct {
	mobFilter *ecs.Filter3[components.Position, components.WorldMap, components.MobState]
}

// NewTargeting creates a targeting query over world.
func NewTargeting(world *ecs.World) *Targeting {
	return &Targeting{
		mobFilter: ecs.NewFilter3[components.Position, components.WorldMap, components.MobState](world),
	}
}

// FindTarget returns the nearest non-dead mob on map m within radius of origin,
// excluding self. Ties go to the first candidate scanned.
func (t *Targeting) FindTarget(self ecs.Entity, origin r2.Vec, m components.MapID, radius float64) (ecs.Entity, r2.Vec, bool) {
	var (
		best    ecs.Entity
		bestPos r2.Vec
		found   bool
	)
	bestDistSq := math.Inf(1)

	query := t.mobFilter.Query()
	for query.Next() {
		e := query.Entity()
		if e == self {
			continue
		}
		pos, wm, mob := query.Get()
		if wm.ID != m || mob.State == components.LifeDead {
			continue
		}
		p := pos.Vec()
		distSq := r2.Norm2(r2.Sub(p, origin))
		if distSq < bestDistSq {
			bestDistSq = distSq
			best = e
			bestPos = p
			found = true
		}
	}

	if !found || bestDistSq > radius*radius {
		return ecs.Entity{}, r2.Vec{}, false
	}
	return best, bestPos, true
}

// AimAt returns the angle from one point to another, or false when the
// points are too close together to define a direction.
func AimAt(from, to r2.Vec) (float64, bool) {
	d := r2.Sub(to, from)
	if r2.Norm2(d) <= aimEpsilon {
		return 0, false
	}
	return math.Atan2(d.Y, d.X), true
}
