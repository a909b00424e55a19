package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/titan/components"
)

// Party members start this far outside the arena wall.
const partyStartMargin = 3.0

// spawnScenario creates the dormant boss and the party around it.
func (g *Game) spawnScenario() {
	cfg := g.cfg
	center := r2.Vec{X: cfg.Arena.BossX, Y: cfg.Arena.BossY}

	g.boss = g.bosses.SpawnBoss(center, cfg.Derived.MapID, cfg.Boss, g.now)
	g.tracker.Register(g.boss.ID(), "boss", g.now)
	// Let clients see the dormant boss before anything happens.
	g.replicator.MarkDirty(g.boss)

	count := cfg.Challengers.Count
	if g.opts.Challengers > 0 {
		count = g.opts.Challengers
	}
	g.party = g.party[:0]
	for i := 0; i < count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(count)
		g.spawnChallenger(center, angle)
	}

	g.logger.Info("scenario spawned",
		"boss", g.boss.ID(),
		"challengers", count,
		"arena_radius", cfg.Boss.ArenaRadius,
		"seed", g.rngSeed,
	)
}

// spawnChallenger places a party member outside the arena at angle.
// Its orbit radius is drawn from the configured range.
func (g *Game) spawnChallenger(center r2.Vec, angle float64) ecs.Entity {
	cc := g.cfg.Challengers

	orbit := cc.OrbitMin
	if cc.OrbitMax > cc.OrbitMin {
		orbit += g.rng.Float64() * (cc.OrbitMax - cc.OrbitMin)
	}
	start := g.cfg.Boss.ArenaRadius + partyStartMargin

	pos := components.PositionOf(r2.Add(center, r2.Scale(start, unit(angle))))
	wm := components.WorldMap{ID: g.cfg.Derived.MapID}
	mob := components.MobState{State: components.LifeAlive}
	health := components.Health{Max: cc.Health}
	dmg := components.Damageable{ByType: make(map[components.DamageType]float64)}
	ch := components.Challenger{
		OrbitAngle:  angle,
		OrbitRadius: orbit,
		Distance:    start,
		Speed:       cc.Speed,
	}

	e := g.challengerMapper.NewEntity(&pos, &wm, &mob, &health, &dmg, &ch)
	g.party = append(g.party, e)
	g.tracker.Register(e.ID(), "challenger", g.now)
	return e
}

// unit returns the unit vector at angle.
func unit(angle float64) r2.Vec {
	return r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
}
