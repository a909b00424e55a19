package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/titan/components"
)

func TestLifeStateFor(t *testing.T) {
	tests := []struct {
		total float64
		want  components.LifeState
	}{
		{0, components.LifeAlive},
		{89, components.LifeAlive},
		{90, components.LifeCritical},
		{99.9, components.LifeCritical},
		{100, components.LifeDead},
		{150, components.LifeDead},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LifeStateFor(tt.total, 100), "total %v", tt.total)
	}
}

func TestLifeSystem_NotifiesTransitions(t *testing.T) {
	env := newTestEnv(t)
	a := env.spawnMob(0, 0, testMap)
	b := env.spawnMob(1, 0, testMap)

	life := NewLifeSystem(env.world)
	var events []components.LifeState
	life.Subscribe(func(_ ecs.Entity, s components.LifeState) { events = append(events, s) })

	assert.Zero(t, life.Update())

	env.damageMap.Get(a).Total = 120
	assert.Equal(t, 1, life.Update())
	assert.Equal(t, components.LifeDead, env.mobMap.Get(a).State)
	assert.Equal(t, components.LifeAlive, env.mobMap.Get(b).State)

	env.damageMap.Get(a).Total = 0
	assert.Zero(t, life.Update(), "dead is terminal")
	assert.Equal(t, []components.LifeState{components.LifeDead}, events)
}

func TestEffectSystem_RemovesExpired(t *testing.T) {
	env := newTestEnv(t)

	env.now = 1
	spike := env.factory.Spawn(ProtoSpikeEffect, vec(0, 0), testMap)             // lifetime 0.4
	tele := env.factory.Spawn(ProtoTelegraphCircle, vec(0, 0), testMap)          // lifetime 0.8
	barrier := env.factory.Spawn("TitanArenaBarrierSegment", vec(0, 0), testMap) // permanent

	fx := NewEffectSystem(env.world)
	assert.Zero(t, fx.Update(1.3))
	assert.Equal(t, 1, fx.Update(1.45))
	assert.True(t, env.factory.Deleted(spike))
	assert.False(t, env.factory.Deleted(tele))

	assert.Equal(t, 1, fx.Update(5))
	assert.True(t, env.factory.Deleted(tele))
	assert.False(t, env.factory.Deleted(barrier))
}

func TestEntityFactory_AnchorsFromPrototype(t *testing.T) {
	env := newTestEnv(t)

	var spawned []string
	env.factory.OnSpawn = func(proto string, _ ecs.Entity, _ r2.Vec) { spawned = append(spawned, proto) }

	barrier := env.factory.Spawn("TitanArenaBarrierSegment", vec(2, 3), testMap)
	fx := env.factory.Spawn(ProtoSlamImpact, vec(2, 3), testMap)
	unknown := env.factory.Spawn("NotAPrototype", vec(0, 0), testMap)

	assert.True(t, env.factory.anchoredMap.Has(barrier))
	assert.False(t, env.factory.anchoredMap.Has(fx))
	assert.False(t, env.factory.anchoredMap.Has(unknown))
	assert.Equal(t, components.Position{X: 2, Y: 3}, env.posOf(barrier))
	assert.Len(t, spawned, 3)

	env.factory.Delete(fx)
	assert.NotPanics(t, func() { env.factory.Delete(fx) })
	assert.True(t, env.factory.Deleted(fx))
}
