package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/titan/components"
)

func TestRadial_InclusiveBoundary(t *testing.T) {
	env := newTestEnv(t)
	source := env.spawnMob(0, 0, testMap)
	inside := env.spawnMob(1, 1, testMap)
	edge := env.spawnMob(3, 0, testMap)
	beyond := env.spawnMob(3.001, 0, testMap)
	otherMap := env.spawnMob(0, 1, testMap+1)

	r := NewDamageResolver(env.world, env.sink)
	spec := DamageSpec{Source: source, Type: components.DamagePiercing, Amount: 20}
	n := r.Radial(testMap, vec(0, 0), 3, spec)

	assert.Equal(t, 2, n)
	assert.Equal(t, 1, env.sink.hits[inside])
	assert.Equal(t, 1, env.sink.hits[edge], "distance == radius is included")
	assert.Zero(t, env.sink.hits[beyond])
	assert.Zero(t, env.sink.hits[otherMap])
	assert.Zero(t, env.sink.hits[source], "source never hits itself")
}

func TestLine_Boundaries(t *testing.T) {
	env := newTestEnv(t)
	source := env.spawnMob(0, 0, testMap)

	tests := []struct {
		name string
		x, y float64
		hit  bool
	}{
		{"on axis", 5, 0, true},
		{"at half width", 5, 0.5, true},
		{"past half width", 5, 0.51, false},
		{"at start", 0.0, -0.5, true},
		{"behind start", -0.1, 0, false},
		{"at max distance", 24, 0, true},
		{"past max distance", 24.1, 0, false},
		{"far to the side", 10, 5, false},
	}

	ents := make([]ecs.Entity, len(tests))
	for i, tt := range tests {
		ents[i] = env.spawnMob(tt.x, tt.y, testMap)
	}

	r := NewDamageResolver(env.world, env.sink)
	spec := DamageSpec{Source: source, Type: components.DamageHeat, Amount: 35}
	r.Line(testMap, vec(0, 0), vec(1, 0), 24, 1.0, spec)

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.hit {
				assert.Equal(t, 1, env.sink.hits[ents[i]])
			} else {
				assert.Zero(t, env.sink.hits[ents[i]])
			}
		})
	}
	assert.Zero(t, env.sink.hits[source])
}

func TestDamage_DeletedSourceIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	source := env.spawnMob(0, 0, testMap)
	victim := env.spawnMob(1, 0, testMap)
	env.factory.Delete(source)

	r := NewDamageResolver(env.world, env.sink)
	spec := DamageSpec{Source: source, Type: components.DamageBlunt, Amount: 30}

	assert.Zero(t, r.Radial(testMap, vec(0, 0), 5, spec))
	assert.Zero(t, r.Line(testMap, vec(0, 0), vec(1, 0), 5, 1, spec))
	assert.Zero(t, env.sink.hits[victim])
}

func TestDamageableSink_Accumulates(t *testing.T) {
	env := newTestEnv(t)
	source := env.spawnMob(0, 0, testMap)
	victim := env.spawnMob(1, 0, testMap)

	sink := NewDamageableSink(env.world)
	var observed []DamageSpec
	sink.Observer = observerFunc(func(target ecs.Entity, spec DamageSpec) {
		observed = append(observed, spec)
	})

	sink.ApplyDamage(victim, DamageSpec{Source: source, Type: components.DamagePiercing, Amount: 20})
	sink.ApplyDamage(victim, DamageSpec{Source: source, Type: components.DamageHeat, Amount: 35})
	sink.ApplyDamage(victim, DamageSpec{Source: source, Type: components.DamageHeat, Amount: 0})

	d := env.damageMap.Get(victim)
	assert.InDelta(t, 55, d.Total, 1e-9)
	assert.InDelta(t, 35, d.ByType[components.DamageHeat], 1e-9)
	assert.Len(t, observed, 2)

	env.factory.Delete(victim)
	sink.ApplyDamage(victim, DamageSpec{Source: source, Type: components.DamageHeat, Amount: 10})
	assert.Len(t, observed, 2, "removed targets are ignored")
}

type observerFunc func(target ecs.Entity, spec DamageSpec)

func (f observerFunc) OnDamage(target ecs.Entity, spec DamageSpec) { f(target, spec) }
