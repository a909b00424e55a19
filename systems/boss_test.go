package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/titan/components"
)

type dirtyCounter map[ecs.Entity]int

func (d dirtyCounter) MarkDirty(e ecs.Entity) { d[e]++ }

func newControlledBoss(t *testing.T) (*testEnv, *BossSystem, dirtyCounter, ecs.Entity) {
	env := newTestEnv(t)
	dirty := dirtyCounter{}
	sys := env.bossSystem(7, dirty)
	boss := sys.SpawnBoss(vec(0, 0), testMap, components.DefaultBossTunables(), 0)
	return env, sys, dirty, boss
}

func TestBossSystem_DormantUntilInteracted(t *testing.T) {
	env, sys, dirty, boss := newControlledBoss(t)
	env.spawnMob(4, 0, testMap)

	attacks := 0
	sys.OnAttack = func(ecs.Entity, components.Attack, components.Phase, float64) { attacks++ }

	for now := 0.0; now < 10; now += 0.05 {
		sys.Update(now, 0.05)
	}
	assert.Zero(t, attacks)
	assert.Zero(t, dirty[boss])

	require.True(t, sys.Interact(boss))
	assert.False(t, sys.Interact(boss), "second interaction is not consumed")
	assert.True(t, sys.bossMap.Get(boss).Activated)
	assert.Equal(t, 1, dirty[boss])
	assert.Equal(t, 32, env.countProto("TitanArenaBarrierSegment"))
}

func TestBossSystem_TickCadenceAndAttack(t *testing.T) {
	env, sys, _, boss := newControlledBoss(t)
	target := env.spawnMob(0, 4, testMap)
	require.True(t, sys.Interact(boss))

	var got []components.Attack
	sys.OnAttack = func(_ ecs.Entity, a components.Attack, _ components.Phase, _ float64) { got = append(got, a) }

	sys.Update(0, 0.05)
	b := sys.bossMap.Get(boss)
	assert.InDelta(t, math.Pi/2, b.AimDir, 1e-9, "aims at the target")
	assert.InDelta(t, 0.25, sys.timersMap.Get(boss).NextAITick, 1e-9)
	assert.Empty(t, got, "first attack waits for the base interval")

	// Move the target; the boss only notices on its next AI tick.
	env.posMap.Get(target).X = 4
	env.posMap.Get(target).Y = 0
	sys.Update(0.1, 0.05)
	assert.InDelta(t, math.Pi/2, sys.bossMap.Get(boss).AimDir, 1e-9)
	sys.Update(0.25, 0.05)
	assert.InDelta(t, 0, sys.bossMap.Get(boss).AimDir, 1e-9)

	sys.Update(3.0, 0.05)
	require.Len(t, got, 1)
	assert.Equal(t, got[0], sys.bossMap.Get(boss).CurrentAttack)
	assert.InDelta(t, 6.0, sys.timersMap.Get(boss).NextAttack, 1e-9)
	assert.Equal(t, 1, sys.Queue().Len(), "resolution is queued")

	sys.Update(4.0, 0.05)
	assert.Zero(t, sys.Queue().Len())
}

func TestBossSystem_PhaseFollowsDamage(t *testing.T) {
	env, sys, dirty, boss := newControlledBoss(t)

	env.damageMap.Get(boss).Total = 200
	sys.UpdatePhase(boss)
	b := sys.bossMap.Get(boss)
	assert.Equal(t, components.Phase2, b.Phase)
	assert.False(t, b.Enraged)
	marks := dirty[boss]
	assert.Equal(t, 1, marks)

	sys.UpdatePhase(boss)
	assert.Equal(t, marks, dirty[boss], "unchanged health marks nothing")

	env.damageMap.Get(boss).Total = 250
	sys.UpdatePhase(boss)
	assert.Equal(t, components.Phase3, b.Phase)
	assert.True(t, b.Enraged)
}

func TestBossSystem_DeathTearsDownArena(t *testing.T) {
	env, sys, _, boss := newControlledBoss(t)
	require.True(t, sys.Interact(boss))

	sys.OnMobStateChanged(boss, components.LifeCritical)
	assert.Equal(t, 32, env.countProto("TitanArenaBarrierSegment"))

	sys.OnMobStateChanged(boss, components.LifeDead)
	assert.Zero(t, env.countProto("TitanArenaBarrierSegment"))
	assert.False(t, sys.bossMap.Get(boss).Activated)
}

func TestBossSystem_DeadBossStaysDown(t *testing.T) {
	env, sys, dirty, boss := newControlledBoss(t)
	env.spawnMob(4, 0, testMap)
	require.True(t, sys.Interact(boss))

	env.setState(boss, components.LifeDead)
	sys.OnMobStateChanged(boss, components.LifeDead)
	require.Zero(t, env.countProto("TitanArenaBarrierSegment"))
	marks := dirty[boss]

	assert.False(t, sys.Interact(boss), "dead boss cannot be woken")
	assert.False(t, sys.bossMap.Get(boss).Activated)
	assert.Zero(t, env.countProto("TitanArenaBarrierSegment"))
	assert.Equal(t, marks, dirty[boss])

	attacks := 0
	sys.OnAttack = func(ecs.Entity, components.Attack, components.Phase, float64) { attacks++ }
	for now := 0.0; now < 10; now += 0.05 {
		sys.Update(now, 0.05)
	}
	assert.Zero(t, attacks)
}

func TestBossSystem_DeadBossSkipsTicks(t *testing.T) {
	env, sys, _, boss := newControlledBoss(t)
	env.spawnMob(4, 0, testMap)
	require.True(t, sys.Interact(boss))

	// Killed without the state-change callback: Activated is still set.
	env.setState(boss, components.LifeDead)

	attacks := 0
	sys.OnAttack = func(ecs.Entity, components.Attack, components.Phase, float64) { attacks++ }
	for now := 0.0; now < 10; now += 0.05 {
		sys.Update(now, 0.05)
	}
	assert.Zero(t, attacks)
}

func TestAttacks_DeletedSourceResolvesToNothing(t *testing.T) {
	env, sys, _, boss := newControlledBoss(t)
	victim := env.spawnMob(1, 0, testMap)

	ctx := AttackContext{
		Boss:      boss,
		Tunables:  components.DefaultBossTunables(),
		Pos:       vec(0, 0),
		Map:       testMap,
		Target:    vec(1, 0),
		HasTarget: true,
	}
	sys.Attacks().HandSlam(ctx)
	sys.Attacks().Spikes(ctx)
	sys.Attacks().Laser(ctx)
	require.Equal(t, 3, sys.Queue().Len())

	sys.Despawn(boss)
	sys.Queue().Advance(5)

	assert.Zero(t, sys.Queue().Len())
	assert.Zero(t, env.countProto(ProtoSlamImpact))
	assert.Zero(t, env.countProto(ProtoSpikeEffect))
	assert.Zero(t, env.countProto(ProtoLaserBeamEffect))
	assert.Zero(t, env.sink.hits[victim])
}

func TestAttacks_LaserFollowsLiveAim(t *testing.T) {
	env, sys, _, boss := newControlledBoss(t)
	east := env.spawnMob(6, 0, testMap)
	north := env.spawnMob(0, 6, testMap)

	sys.Attacks().Laser(AttackContext{
		Boss:     boss,
		Tunables: components.DefaultBossTunables(),
		Pos:      vec(0, 0),
		Map:      testMap,
	})
	assert.Equal(t, 1, env.countProto(ProtoTelegraphLine))

	sys.bossMap.Get(boss).AimDir = math.Pi / 2
	sys.Queue().Advance(0.7)

	assert.Zero(t, env.sink.hits[east])
	assert.Equal(t, 1, env.sink.hits[north])
	assert.Equal(t, components.DamageHeat, env.sink.specs[0].Type)
	assert.Equal(t, 1, env.countProto(ProtoLaserBeamEffect))
}

func TestAttacks_SpikeCounts(t *testing.T) {
	tests := []struct {
		name      string
		phase     components.Phase
		hasTarget bool
		want      int
	}{
		{"phase1 target", components.Phase1, true, 1 + 8},
		{"phase2 target", components.Phase2, true, 1 + 8 + 10},
		{"phase3 target", components.Phase3, true, 1 + 8 + 10 + 12},
		{"no target", components.Phase3, false, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, sys, _, boss := newControlledBoss(t)
			tun := components.DefaultBossTunables()
			sys.Attacks().Spikes(AttackContext{
				Boss:      boss,
				Phase:     tt.phase,
				Tunables:  tun,
				Pos:       vec(0, 0),
				Map:       testMap,
				Target:    vec(3, 3),
				HasTarget: tt.hasTarget,
			})
			assert.Equal(t, tt.want, env.countProto(ProtoTelegraphCircle))

			if !tt.hasTarget {
				query := env.protoF.Query()
				for query.Next() {
					p := env.posOf(query.Entity())
					assert.LessOrEqual(t, math.Abs(p.X), tun.ArenaRadius-1)
					assert.LessOrEqual(t, math.Abs(p.Y), tun.ArenaRadius-1)
				}
			}
		})
	}
}

func TestAttacks_HandSlamNearTarget(t *testing.T) {
	env, sys, _, boss := newControlledBoss(t)
	victim := env.spawnMob(5, 5, testMap)

	sys.Attacks().HandSlam(AttackContext{
		Boss:      boss,
		Tunables:  components.DefaultBossTunables(),
		Pos:       vec(0, 0),
		Map:       testMap,
		Target:    vec(5, 5),
		HasTarget: true,
	})
	sys.Queue().Advance(0.5)

	assert.Equal(t, 1, env.sink.hits[victim], "jitter never exceeds the slam radius")
	assert.Equal(t, components.DamageBlunt, env.sink.specs[0].Type)
	assert.InDelta(t, 30, env.sink.specs[0].Amount, 1e-9)
}

func TestAttacks_SpikeRingGeometry(t *testing.T) {
	_, sys, _, boss := newControlledBoss(t)
	target := vec(3, 3)

	points := sys.Attacks().spikePoints(AttackContext{
		Boss:      boss,
		Phase:     components.Phase3,
		Tunables:  components.DefaultBossTunables(),
		Pos:       vec(0, 0),
		Map:       testMap,
		Target:    target,
		HasTarget: true,
	})
	require.Len(t, points, 1+8+10+12)
	assert.Equal(t, target, points[0])

	next := 1
	for r := 1; r <= SpikeRings(components.Phase3); r++ {
		count := spikeRingBase + spikeRingStep*r
		for i := 0; i < count; i++ {
			d := r2.Sub(points[next], target)
			next++

			assert.InDelta(t, 1.5*float64(r), r2.Norm(d), 1e-9, "ring %d point %d", r, i)

			nominal := float64(i) / float64(count) * 2 * math.Pi
			off := math.Remainder(math.Atan2(d.Y, d.X)-nominal, 2*math.Pi)
			assert.LessOrEqual(t, math.Abs(off), spikeAngleJitter+1e-9, "ring %d point %d", r, i)
		}
	}
}

func TestAttacks_HandSlamWithoutTarget(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		env := newTestEnv(t)
		sys := env.bossSystem(seed, nil)
		origin := vec(10, -4)
		boss := sys.SpawnBoss(origin, testMap, components.DefaultBossTunables(), 0)

		sys.Attacks().HandSlam(AttackContext{
			Boss:     boss,
			Tunables: components.DefaultBossTunables(),
			Pos:      origin,
			Map:      testMap,
		})

		var found []components.Position
		query := env.protoF.Query()
		for query.Next() {
			if query.Get().ID == ProtoTelegraphCircleStrong {
				found = append(found, env.posOf(query.Entity()))
			}
		}
		require.Len(t, found, 1)
		assert.LessOrEqual(t, math.Abs(found[0].X-origin.X), 3.0)
		assert.LessOrEqual(t, math.Abs(found[0].Y-origin.Y), 3.0)
	}
}
