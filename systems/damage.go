package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/titan/components"
)

// DamageSpec is a single-type damage application.
type DamageSpec struct {
	Source ecs.Entity
	Type   components.DamageType
	Amount float64
}

// DamageSink applies damage to a target. Targets that cannot take damage are ignored.
type DamageSink interface {
	ApplyDamage(target ecs.Entity, spec DamageSpec)
}

// DamageObserver is told about every damage application that lands.
type DamageObserver interface {
	OnDamage(target ecs.Entity, spec DamageSpec)
}

// DamageableSink accumulates damage into the Damageable component.
type DamageableSink struct {
	world    *ecs.World
	damage   *ecs.Map[components.Damageable]
	Observer DamageObserver
}

// NewDamageableSink creates a sink writing to world.
func NewDamageableSink(world *ecs.World) *DamageableSink {
	return &DamageableSink{
		world:  world,
		damage: ecs.NewMap[components.Damageable](world),
	}
}

// ApplyDamage adds spec to target's running totals.
func (s *DamageableSink) ApplyDamage(target ecs.Entity, spec DamageSpec) {
	if !s.world.Alive(target) || spec.Amount <= 0 {
		return
	}
	d := s.damage.Get(target)
	if d == nil {
		return
	}
	if d.ByType == nil {
		d.ByType = make(map[components.DamageType]float64)
	}
	d.Total += spec.Amount
	d.ByType[spec.Type] += spec.Amount

	if s.Observer != nil {
		s.Observer.OnDamage(target, spec)
	}
}

// DamageResolver turns area queries into damage applications.
// Matches are collected before any damage is applied.
type DamageResolver struct {
	world  *ecs.World
	sink   DamageSink
	filter *ecs.Filter3[components.Position, components.WorldMap, components.Damageable]
	hits   []ecs.Entity
}

// NewDamageResolver creates a resolver that reports hits to sink.
func NewDamageResolver(world *ecs.World, sink DamageSink) *DamageResolver {
	return &DamageResolver{
		world:  world,
		sink:   sink,
		filter: ecs.NewFilter3[components.Position, components.WorldMap, components.Damageable](world),
	}
}

// Radial damages every damageable entity on map m whose distance to center
// is at most radius. The source is never hit. Returns the number of entities damaged.
func (r *DamageResolver) Radial(m components.MapID, center r2.Vec, radius float64, spec DamageSpec) int {
	if !r.world.Alive(spec.Source) {
		return 0
	}
	radiusSq := radius * radius

	r.hits = r.hits[:0]
	query := r.filter.Query()
	for query.Next() {
		e := query.Entity()
		if e == spec.Source {
			continue
		}
		pos, wm, _ := query.Get()
		if wm.ID != m {
			continue
		}
		if r2.Norm2(r2.Sub(pos.Vec(), center)) <= radiusSq {
			r.hits = append(r.hits, e)
		}
	}

	return r.apply(spec)
}

// Line damages every damageable entity on map m within width/2 of the
// segment from start along dir for maxDist. dir must be a unit vector.
func (r *DamageResolver) Line(m components.MapID, start, dir r2.Vec, maxDist, width float64, spec DamageSpec) int {
	if !r.world.Alive(spec.Source) {
		return 0
	}
	halfWidth := width / 2
	halfWidthSq := halfWidth * halfWidth

	seen := make(map[ecs.Entity]struct{})
	r.hits = r.hits[:0]
	query := r.filter.Query()
	for query.Next() {
		e := query.Entity()
		if e == spec.Source {
			continue
		}
		pos, wm, _ := query.Get()
		if wm.ID != m {
			continue
		}

		rel := r2.Sub(pos.Vec(), start)
		proj := r2.Dot(rel, dir)
		if proj < 0 || proj > maxDist {
			continue
		}
		closest := r2.Add(start, r2.Scale(proj, dir))
		if r2.Norm2(r2.Sub(pos.Vec(), closest)) > halfWidthSq {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		r.hits = append(r.hits, e)
	}

	return r.apply(spec)
}

func (r *DamageResolver) apply(spec DamageSpec) int {
	n := len(r.hits)
	for _, e := range r.hits {
		r.sink.ApplyDamage(e, spec)
	}
	r.hits = r.hits[:0]
	return n
}
