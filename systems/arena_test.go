package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/titan/components"
)

func TestArena_ReactivateKeepsOneRing(t *testing.T) {
	env := newTestEnv(t)
	boss := env.spawnMob(0, 0, testMap)
	tun := components.DefaultBossTunables()

	a := NewArena(env.factory)
	a.Activate(boss, vec(0, 0), testMap, &tun)
	first := a.Segments(boss)
	a.Activate(boss, vec(0, 0), testMap, &tun)

	assert.Equal(t, tun.ArenaSegments, env.countProto(tun.BarrierPrototype))
	assert.Len(t, a.Segments(boss), tun.ArenaSegments)
	for _, seg := range first {
		assert.True(t, env.factory.Deleted(seg), "old ring is torn down")
	}
}

func TestArena_SegmentsAreAnchoredOnTheRing(t *testing.T) {
	env := newTestEnv(t)
	boss := env.spawnMob(0, 0, testMap)
	tun := components.DefaultBossTunables()
	tun.ArenaSegments = 4

	a := NewArena(env.factory)
	a.Activate(boss, vec(10, -2), testMap, &tun)

	anchored := 0
	for _, seg := range a.Segments(boss) {
		if env.factory.anchoredMap.Has(seg) {
			anchored++
		}
	}
	assert.Equal(t, 4, anchored)

	east := env.posOf(a.Segments(boss)[0])
	assert.InDelta(t, 10+tun.ArenaRadius, east.X, 1e-9)
	assert.InDelta(t, -2, east.Y, 1e-9)
}

func TestArena_DeactivateWithoutActivation(t *testing.T) {
	env := newTestEnv(t)
	boss := env.spawnMob(0, 0, testMap)
	other := env.spawnMob(1, 0, testMap)

	a := NewArena(env.factory)
	require.NotPanics(t, func() { a.Deactivate(boss) })

	assert.False(t, env.factory.Deleted(other))
	assert.False(t, a.Active(boss))
}

func TestArena_DeactivateSkipsAlreadyDeleted(t *testing.T) {
	env := newTestEnv(t)
	boss := env.spawnMob(0, 0, testMap)
	tun := components.DefaultBossTunables()

	a := NewArena(env.factory)
	a.Activate(boss, vec(0, 0), testMap, &tun)
	segs := a.Segments(boss)
	env.factory.Delete(segs[0])

	a.Deactivate(boss)

	assert.Zero(t, env.countProto(tun.BarrierPrototype))
	assert.False(t, a.Active(boss))
}
