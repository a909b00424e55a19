package game

import (
	"github.com/pthm-cable/titan/components"
	"github.com/pthm-cable/titan/systems"
	"github.com/pthm-cable/titan/telemetry"
)

// Update runs one viewer frame: input, then stepsPerUpdate ticks unless paused.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	g.handleInput()

	if g.paused || g.Finished() {
		return
	}
	for i := 0; i < g.stepsPerUpdate && !g.Finished(); i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs stepsPerUpdate ticks without touching raylib.
// It does nothing once the fight is over.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate && !g.Finished(); i++ {
		g.simulationStep()
	}
}

// simulationStep runs a single fixed tick.
// Stage order: party, boss (delayed effects, then AI), life, effect despawn,
// replication, telemetry.
func (g *Game) simulationStep() {
	g.perfCollector.StartTick()

	g.tick++
	g.now = float64(g.tick) * g.dt

	g.perfCollector.StartStage(systems.StageChallengers)
	g.updateChallengers()

	g.perfCollector.StartStage(systems.StageBoss)
	g.bosses.Update(g.now, g.dt)

	g.perfCollector.StartStage(systems.StageLife)
	g.life.Update()

	g.perfCollector.StartStage(systems.StageEffects)
	g.effects.Update(g.now)

	g.perfCollector.StartStage(systems.StageReplication)
	g.flushReplication()

	g.perfCollector.StartStage(systems.StageTelemetry)
	g.flushTelemetry()
	if outcome := g.checkOutcome(); outcome != "" {
		g.finish(outcome)
	}

	g.perfCollector.EndTick()
}

// checkOutcome returns the fight result once there is one.
func (g *Game) checkOutcome() string {
	if mob := g.mobMap.Get(g.boss); mob == nil || mob.State == components.LifeDead {
		return telemetry.OutcomeBossDefeated
	}

	if len(g.party) > 0 {
		wiped := true
		for _, e := range g.party {
			if mob := g.mobMap.Get(e); mob != nil && mob.State != components.LifeDead {
				wiped = false
				break
			}
		}
		if wiped {
			return telemetry.OutcomePartyWiped
		}
	}

	if g.maxTime > 0 && g.now >= g.maxTime {
		return telemetry.OutcomeTimeout
	}
	return ""
}

// finish records the outcome and writes the final window and summary.
func (g *Game) finish(outcome string) {
	g.outcome = outcome

	g.flushWindow()
	g.writeSummary()

	phase := components.Phase1
	if b := g.bossMap.Get(g.boss); b != nil {
		phase = b.Phase
	}
	g.logger.Info("fight finished",
		"outcome", outcome,
		"time", g.now,
		"tick", g.tick,
		"phase", phase.String(),
		"frames", g.link.frames,
	)
}
