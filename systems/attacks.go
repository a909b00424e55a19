package systems

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/titan/components"
)

// Prototype ids spawned by the attacks.
const (
	ProtoTelegraphCircle       = "TitanTelegraphCircle"
	ProtoTelegraphCircleStrong = "TitanTelegraphCircleStrong"
	ProtoTelegraphLine         = "TitanTelegraphLine"
	ProtoSpikeEffect           = "TitanSpikeEffect"
	ProtoLaserBeamEffect       = "TitanLaserBeamEffect"
	ProtoSlamImpact            = "TitanSlamImpact"
)

// Attack geometry.
const (
	spikeRingSpacing  = 1.5
	spikeRingBase     = 6
	spikeRingStep     = 2
	spikeAngleJitter  = 0.2
	spikeFallbackN    = 10
	laserWidth        = 1.0
	slamTargetJitter  = 0.4
	slamFallbackRange = 3.0
)

// EffectKind selects how a PendingEffect resolves.
type EffectKind uint8

const (
	EffectSpikes EffectKind = iota
	EffectLaser
	EffectHandSlam
)

func (k EffectKind) String() string {
	switch k {
	case EffectSpikes:
		return "spikes"
	case EffectLaser:
		return "laser"
	case EffectHandSlam:
		return "hand_slam"
	}
	return fmt.Sprintf("EffectKind(%d)", uint8(k))
}

// PendingEffect is the snapshot an attack needs to resolve after its telegraph.
type PendingEffect struct {
	Kind   EffectKind
	Map    components.MapID
	Points []r2.Vec // impact centres; the laser ignores these and uses the live boss
	Radius float64  // radial attacks
	Length float64  // line attacks
	Width  float64  // line attacks
	Damage DamageSpec
}

// AttackContext is what an executor knows about the boss when it fires.
type AttackContext struct {
	Boss      ecs.Entity
	Phase     components.Phase
	Tunables  components.BossTunables
	Pos       r2.Vec
	Map       components.MapID
	Target    r2.Vec
	HasTarget bool
}

// Attacks telegraphs boss attacks and resolves them later through the queue.
type Attacks struct {
	queue    *DelayedQueue
	spawner  Spawner
	resolver *DamageResolver
	rng      *rand.Rand

	posMap  *ecs.Map[components.Position]
	bossMap *ecs.Map[components.Boss]

	// OnResolve, if set, is called after an effect has applied its damage.
	OnResolve func(effect PendingEffect, hits int)
}

// NewAttacks creates the attack executors.
func NewAttacks(world *ecs.World, queue *DelayedQueue, spawner Spawner, resolver *DamageResolver, rng *rand.Rand) *Attacks {
	return &Attacks{
		queue:    queue,
		spawner:  spawner,
		resolver: resolver,
		rng:      rng,
		posMap:   ecs.NewMap[components.Position](world),
		bossMap:  ecs.NewMap[components.Boss](world),
	}
}

// Execute dispatches attack to its executor.
func (a *Attacks) Execute(attack components.Attack, ctx AttackContext) {
	switch attack {
	case components.AttackSpikes:
		a.Spikes(ctx)
	case components.AttackLaser:
		a.Laser(ctx)
	case components.AttackHandSlam:
		a.HandSlam(ctx)
	}
}

// Spikes erupts around the target in rings that grow with phase,
// or scatters across the arena when nobody is in range.
func (a *Attacks) Spikes(ctx AttackContext) {
	t := &ctx.Tunables
	points := a.spikePoints(ctx)

	for _, p := range points {
		a.spawner.Spawn(ProtoTelegraphCircle, p, ctx.Map)
	}
	a.schedule(t.SpikeDelay, PendingEffect{
		Kind:   EffectSpikes,
		Map:    ctx.Map,
		Points: points,
		Radius: t.SpikeRadius,
		Damage: DamageSpec{Source: ctx.Boss, Type: components.DamagePiercing, Amount: t.SpikeDamage},
	})
}

func (a *Attacks) spikePoints(ctx AttackContext) []r2.Vec {
	if !ctx.HasTarget {
		spread := ctx.Tunables.ArenaRadius - 1
		points := make([]r2.Vec, spikeFallbackN)
		for i := range points {
			points[i] = r2.Add(ctx.Pos, r2.Vec{
				X: a.symmetric(spread),
				Y: a.symmetric(spread),
			})
		}
		return points
	}

	rings := SpikeRings(ctx.Phase)
	points := []r2.Vec{ctx.Target}
	for r := 1; r <= rings; r++ {
		count := spikeRingBase + spikeRingStep*r
		radius := spikeRingSpacing * float64(r)
		for i := 0; i < count; i++ {
			angle := float64(i)/float64(count)*2*math.Pi + a.symmetric(spikeAngleJitter)
			points = append(points, r2.Add(ctx.Target, r2.Vec{
				X: math.Cos(angle) * radius,
				Y: math.Sin(angle) * radius,
			}))
		}
	}
	return points
}

// SpikeRings returns how many rings surround the primary spike.
func SpikeRings(phase components.Phase) int {
	switch phase {
	case components.Phase2:
		return 2
	case components.Phase3:
		return 3
	default:
		return 1
	}
}

// Laser winds up at the boss and then fires along whatever direction the
// boss is aiming when the windup ends.
func (a *Attacks) Laser(ctx AttackContext) {
	t := &ctx.Tunables
	a.spawner.Spawn(ProtoTelegraphLine, ctx.Pos, ctx.Map)
	a.schedule(t.LaserWindup, PendingEffect{
		Kind:   EffectLaser,
		Map:    ctx.Map,
		Length: 2 * t.ArenaRadius,
		Width:  laserWidth,
		Damage: DamageSpec{Source: ctx.Boss, Type: components.DamageHeat, Amount: t.LaserDamage},
	})
}

// HandSlam crashes down near the target, or somewhere near the boss.
func (a *Attacks) HandSlam(ctx AttackContext) {
	t := &ctx.Tunables

	var p r2.Vec
	if ctx.HasTarget {
		p = r2.Add(ctx.Target, r2.Vec{X: a.symmetric(slamTargetJitter), Y: a.symmetric(slamTargetJitter)})
	} else {
		p = r2.Add(ctx.Pos, r2.Vec{X: a.symmetric(slamFallbackRange), Y: a.symmetric(slamFallbackRange)})
	}

	a.spawner.Spawn(ProtoTelegraphCircleStrong, p, ctx.Map)
	a.schedule(t.HandSlamDelay, PendingEffect{
		Kind:   EffectHandSlam,
		Map:    ctx.Map,
		Points: []r2.Vec{p},
		Radius: t.HandSlamRadius,
		Damage: DamageSpec{Source: ctx.Boss, Type: components.DamageBlunt, Amount: t.HandSlamDamage},
	})
}

func (a *Attacks) schedule(delay float64, effect PendingEffect) {
	a.queue.Schedule(delay, resolveAction{attacks: a, effect: effect})
}

// Resolve spawns impacts and applies damage for a telegraphed effect.
// An effect whose source boss is gone does nothing.
func (a *Attacks) Resolve(effect PendingEffect) error {
	if a.spawner.Deleted(effect.Damage.Source) {
		return nil
	}

	hits := 0
	switch effect.Kind {
	case EffectSpikes:
		for _, p := range effect.Points {
			a.spawner.Spawn(ProtoSpikeEffect, p, effect.Map)
			hits += a.resolver.Radial(effect.Map, p, effect.Radius, effect.Damage)
		}
	case EffectHandSlam:
		for _, p := range effect.Points {
			a.spawner.Spawn(ProtoSlamImpact, p, effect.Map)
			hits += a.resolver.Radial(effect.Map, p, effect.Radius, effect.Damage)
		}
	case EffectLaser:
		pos := a.posMap.Get(effect.Damage.Source)
		boss := a.bossMap.Get(effect.Damage.Source)
		if pos == nil || boss == nil {
			return nil
		}
		origin := pos.Vec()
		dir := r2.Vec{X: math.Cos(boss.AimDir), Y: math.Sin(boss.AimDir)}
		a.spawner.Spawn(ProtoLaserBeamEffect, origin, effect.Map)
		hits = a.resolver.Line(effect.Map, origin, dir, effect.Length, effect.Width, effect.Damage)
	default:
		return fmt.Errorf("unknown effect kind %v", effect.Kind)
	}

	if a.OnResolve != nil {
		a.OnResolve(effect, hits)
	}
	return nil
}

// symmetric returns a uniform value in [-spread, spread).
func (a *Attacks) symmetric(spread float64) float64 {
	return (a.rng.Float64()*2 - 1) * spread
}

// resolveAction is the queued form of a PendingEffect.
type resolveAction struct {
	attacks *Attacks
	effect  PendingEffect
}

func (r resolveAction) Run() error {
	return r.attacks.Resolve(r.effect)
}

func (r resolveAction) String() string {
	return fmt.Sprintf("resolve %s (source %d, %d points)", r.effect.Kind, r.effect.Damage.Source.ID(), len(r.effect.Points))
}
