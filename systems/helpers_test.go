package systems

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/titan/components"
	"github.com/pthm-cable/titan/config"
)

const testMap components.MapID = 1

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingSink counts damage applications per target.
type recordingSink struct {
	hits  map[ecs.Entity]int
	specs []DamageSpec
}

func newRecordingSink() *recordingSink {
	return &recordingSink{hits: make(map[ecs.Entity]int)}
}

func (s *recordingSink) ApplyDamage(target ecs.Entity, spec DamageSpec) {
	s.hits[target]++
	s.specs = append(s.specs, spec)
}

type testEnv struct {
	t       *testing.T
	world   *ecs.World
	factory *EntityFactory
	sink    *recordingSink
	now     float64

	mobMapper *ecs.Map5[components.Position, components.WorldMap, components.MobState, components.Health, components.Damageable]
	mobMap    *ecs.Map[components.MobState]
	posMap    *ecs.Map[components.Position]
	damageMap *ecs.Map[components.Damageable]
	protoF    *ecs.Filter1[components.Prototype]
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	env := &testEnv{
		t:     t,
		world: ecs.NewWorld(),
		sink:  newRecordingSink(),
	}
	env.factory = NewEntityFactory(env.world, cfg.Prototypes, func() float64 { return env.now })
	env.mobMapper = ecs.NewMap5[components.Position, components.WorldMap, components.MobState, components.Health, components.Damageable](env.world)
	env.mobMap = ecs.NewMap[components.MobState](env.world)
	env.posMap = ecs.NewMap[components.Position](env.world)
	env.damageMap = ecs.NewMap[components.Damageable](env.world)
	env.protoF = ecs.NewFilter1[components.Prototype](env.world)
	return env
}

func (env *testEnv) spawnMob(x, y float64, m components.MapID) ecs.Entity {
	p := components.Position{X: x, Y: y}
	wm := components.WorldMap{ID: m}
	mob := components.MobState{State: components.LifeAlive}
	h := components.Health{Max: 100}
	d := components.Damageable{}
	return env.mobMapper.NewEntity(&p, &wm, &mob, &h, &d)
}

func (env *testEnv) setState(e ecs.Entity, state components.LifeState) {
	env.mobMap.Get(e).State = state
}

func (env *testEnv) posOf(e ecs.Entity) components.Position {
	return *env.posMap.Get(e)
}

func (env *testEnv) bossSystem(seed int64, notifier ChangeNotifier) *BossSystem {
	return NewBossSystem(env.world, BossSystemConfig{
		Spawner:  env.factory,
		Sink:     env.sink,
		Notifier: notifier,
		Rng:      rand.New(rand.NewSource(seed)),
		Logger:   quietLogger(),
	})
}

// countProto returns how many live entities were spawned from proto.
func (env *testEnv) countProto(proto string) int {
	n := 0
	query := env.protoF.Query()
	for query.Next() {
		if query.Get().ID == proto {
			n++
		}
	}
	return n
}

func vec(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }
