package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/titan/components"
	"github.com/pthm-cable/titan/config"
)

// Spawner creates and deletes prototype entities.
type Spawner interface {
	Spawn(proto string, pos r2.Vec, m components.MapID) ecs.Entity
	Anchor(e ecs.Entity)
	Delete(e ecs.Entity)
	Deleted(e ecs.Entity) bool
}

// EntityFactory spawns prototype entities into an ark world.
// Prototypes with a lifetime get a Timed component and are reaped by EffectSystem.
type EntityFactory struct {
	world      *ecs.World
	prototypes map[string]config.PrototypeConfig
	now        func() float64

	staticMapper *ecs.Map3[components.Position, components.WorldMap, components.Prototype]
	timedMapper  *ecs.Map4[components.Position, components.WorldMap, components.Prototype, components.Timed]
	anchoredMap  *ecs.Map[components.Anchored]

	// OnSpawn, if set, is called for every spawned entity.
	OnSpawn func(proto string, e ecs.Entity, pos r2.Vec)
}

// NewEntityFactory creates a factory. now supplies the simulation clock used
// to compute despawn times.
func NewEntityFactory(world *ecs.World, prototypes map[string]config.PrototypeConfig, now func() float64) *EntityFactory {
	return &EntityFactory{
		world:        world,
		prototypes:   prototypes,
		now:          now,
		staticMapper: ecs.NewMap3[components.Position, components.WorldMap, components.Prototype](world),
		timedMapper:  ecs.NewMap4[components.Position, components.WorldMap, components.Prototype, components.Timed](world),
		anchoredMap:  ecs.NewMap[components.Anchored](world),
	}
}

// Spawn creates an entity of the given prototype at pos on map m.
func (f *EntityFactory) Spawn(proto string, pos r2.Vec, m components.MapID) ecs.Entity {
	def := f.prototypes[proto]

	p := components.PositionOf(pos)
	wm := components.WorldMap{ID: m}
	pr := components.Prototype{ID: proto}

	var e ecs.Entity
	if def.Lifetime > 0 {
		timed := components.Timed{ExpireAt: f.now() + def.Lifetime}
		e = f.timedMapper.NewEntity(&p, &wm, &pr, &timed)
	} else {
		e = f.staticMapper.NewEntity(&p, &wm, &pr)
	}
	if def.Anchored {
		f.Anchor(e)
	}

	if f.OnSpawn != nil {
		f.OnSpawn(proto, e, pos)
	}
	return e
}

// Anchor immobilises e at its current position.
func (f *EntityFactory) Anchor(e ecs.Entity) {
	if !f.world.Alive(e) || f.anchoredMap.Has(e) {
		return
	}
	f.anchoredMap.Add(e, &components.Anchored{})
}

// Delete removes e from the world. Deleting a dead entity is a no-op.
func (f *EntityFactory) Delete(e ecs.Entity) {
	if !f.world.Alive(e) {
		return
	}
	f.world.RemoveEntity(e)
}

// Deleted reports whether e no longer exists.
func (f *EntityFactory) Deleted(e ecs.Entity) bool {
	return !f.world.Alive(e)
}
