package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/titan/components"
	"github.com/pthm-cable/titan/systems"
)

// approachSpeed is how fast challengers walk in and out, in units per second.
const approachSpeed = 3.0

// updateChallengers moves the party and lands their strikes.
// While the boss is dormant they close in until one of them can use it;
// once it is active they fall back to their orbits and attack on cooldown.
func (g *Game) updateChallengers() {
	boss := g.bossMap.Get(g.boss)
	bossPos := g.posMap.Get(g.boss)
	bossMob := g.mobMap.Get(g.boss)
	if boss == nil || bossPos == nil || bossMob == nil {
		return
	}
	center := bossPos.Vec()
	bossAlive := bossMob.State != components.LifeDead

	cc := &g.cfg.Challengers
	step := approachSpeed * g.dt

	var interacting ecs.Entity
	canInteract := false
	var strikers []ecs.Entity

	query := g.challengerFilter.Query()
	for query.Next() {
		pos, mob, ch := query.Get()
		if mob.State == components.LifeDead {
			continue
		}

		if !boss.Activated {
			ch.Distance = math.Max(ch.Distance-step, 0)
			if bossAlive && !canInteract && ch.Distance <= cc.InteractRange {
				interacting = query.Entity()
				canInteract = true
			}
		} else {
			ch.Distance = approach(ch.Distance, ch.OrbitRadius, step)
			ch.OrbitAngle = math.Mod(ch.OrbitAngle+ch.Speed*g.dt, 2*math.Pi)
			if bossAlive && g.now >= ch.NextStrike {
				ch.NextStrike = g.now + cc.StrikeInterval
				strikers = append(strikers, query.Entity())
			}
		}

		*pos = components.PositionOf(r2.Add(center, r2.Scale(ch.Distance, unit(ch.OrbitAngle))))
	}

	// Interaction and damage run after the query: both can change the world.
	if canInteract && g.bosses.Interact(g.boss) {
		g.logger.Info("challenger used boss", "challenger", interacting.ID(), "boss", g.boss.ID(), "time", g.now)
	}
	for _, e := range strikers {
		g.sink.ApplyDamage(g.boss, systems.DamageSpec{
			Source: e,
			Type:   g.cfg.Derived.StrikeType,
			Amount: cc.StrikeDamage,
		})
	}
}

// approach moves v toward target by at most step.
func approach(v, target, step float64) float64 {
	switch {
	case v < target:
		return math.Min(v+step, target)
	case v > target:
		return math.Max(v-step, target)
	default:
		return v
	}
}
