package systems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/titan/components"
)

func TestFindTarget_Nearest(t *testing.T) {
	env := newTestEnv(t)
	self := env.spawnMob(0, 0, testMap)
	env.spawnMob(8, 0, testMap)
	near := env.spawnMob(0, -3, testMap)

	tg := NewTargeting(env.world)
	got, pos, ok := tg.FindTarget(self, vec(0, 0), testMap, 17)

	require.True(t, ok)
	assert.Equal(t, near, got)
	assert.Equal(t, vec(0, -3), pos)
}

func TestFindTarget_Exclusions(t *testing.T) {
	env := newTestEnv(t)
	self := env.spawnMob(0, 0, testMap)

	dead := env.spawnMob(1, 0, testMap)
	env.setState(dead, components.LifeDead)

	env.spawnMob(2, 0, testMap+1) // other map
	critical := env.spawnMob(4, 0, testMap)
	env.setState(critical, components.LifeCritical)

	tg := NewTargeting(env.world)
	got, _, ok := tg.FindTarget(self, vec(0, 0), testMap, 17)

	require.True(t, ok)
	assert.Equal(t, critical, got, "critical mobs are still valid targets")
}

func TestFindTarget_Radius(t *testing.T) {
	env := newTestEnv(t)
	self := env.spawnMob(0, 0, testMap)
	edge := env.spawnMob(17, 0, testMap)

	tg := NewTargeting(env.world)

	got, _, ok := tg.FindTarget(self, vec(0, 0), testMap, 17)
	require.True(t, ok, "radius is inclusive")
	assert.Equal(t, edge, got)

	_, _, ok = tg.FindTarget(self, vec(0, 0), testMap, 16.9)
	assert.False(t, ok)
}

func TestFindTarget_OnlySelf(t *testing.T) {
	env := newTestEnv(t)
	self := env.spawnMob(0, 0, testMap)

	_, _, ok := NewTargeting(env.world).FindTarget(self, vec(0, 0), testMap, 100)
	assert.False(t, ok)
}

func TestAimAt(t *testing.T) {
	angle, ok := AimAt(vec(1, 1), vec(1, 4))
	require.True(t, ok)
	assert.InDelta(t, math.Pi/2, angle, 1e-9)

	angle, ok = AimAt(vec(0, 0), vec(-2, 0))
	require.True(t, ok)
	assert.InDelta(t, math.Pi, angle, 1e-9)

	_, ok = AimAt(vec(5, 5), vec(5.01, 5.01))
	assert.False(t, ok, "degenerate direction")
}
