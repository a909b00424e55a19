package systems

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/titan/components"
)

// DefaultAITick is the boss AI cadence in seconds.
const DefaultAITick = 0.25

// targetRadiusPadding extends the target search past the arena wall.
const targetRadiusPadding = 5

// ChangeNotifier is told whenever replicated boss state changes.
type ChangeNotifier interface {
	MarkDirty(e ecs.Entity)
}

// BossSystem drives every boss: the delayed queue, targeting, aim, phase and attacks.
type BossSystem struct {
	world     *ecs.World
	queue     *DelayedQueue
	targeting *Targeting
	attacks   *Attacks
	arena     *Arena
	spawner   Spawner
	notifier  ChangeNotifier
	rng       *rand.Rand
	logger    *slog.Logger
	aiTick    float64

	bossFilter *ecs.Filter2[components.Boss, components.BossTimers]
	bossMapper *ecs.Map7[components.Position, components.WorldMap, components.Boss, components.BossTimers,
		components.MobState, components.Health, components.Damageable]

	posMap    *ecs.Map[components.Position]
	wmMap     *ecs.Map[components.WorldMap]
	bossMap   *ecs.Map[components.Boss]
	timersMap *ecs.Map[components.BossTimers]
	damageMap *ecs.Map[components.Damageable]
	mobMap    *ecs.Map[components.MobState]

	due []ecs.Entity

	// OnAttack, if set, is called each time a boss commits to an attack.
	OnAttack func(boss ecs.Entity, attack components.Attack, phase components.Phase, now float64)
}

// BossSystemConfig wires a BossSystem to its collaborators.
type BossSystemConfig struct {
	Spawner  Spawner
	Sink     DamageSink
	Notifier ChangeNotifier // may be nil
	Rng      *rand.Rand
	Logger   *slog.Logger // nil uses slog.Default()
	AITick   float64      // 0 uses DefaultAITick
}

// NewBossSystem creates the controller and its queue, targeting, attacks and arena.
func NewBossSystem(world *ecs.World, cfg BossSystemConfig) *BossSystem {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	aiTick := cfg.AITick
	if aiTick <= 0 {
		aiTick = DefaultAITick
	}
	rng := cfg.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	queue := NewDelayedQueue(logger)
	resolver := NewDamageResolver(world, cfg.Sink)

	return &BossSystem{
		world:     world,
		queue:     queue,
		targeting: NewTargeting(world),
		attacks:   NewAttacks(world, queue, cfg.Spawner, resolver, rng),
		arena:     NewArena(cfg.Spawner),
		spawner:   cfg.Spawner,
		notifier:  cfg.Notifier,
		rng:       rng,
		logger:    logger,
		aiTick:    aiTick,

		bossFilter: ecs.NewFilter2[components.Boss, components.BossTimers](world),
		bossMapper: ecs.NewMap7[components.Position, components.WorldMap, components.Boss, components.BossTimers,
			components.MobState, components.Health, components.Damageable](world),

		posMap:    ecs.NewMap[components.Position](world),
		wmMap:     ecs.NewMap[components.WorldMap](world),
		bossMap:   ecs.NewMap[components.Boss](world),
		timersMap: ecs.NewMap[components.BossTimers](world),
		damageMap: ecs.NewMap[components.Damageable](world),
		mobMap:    ecs.NewMap[components.MobState](world),
	}
}

// Queue returns the delayed action queue the bosses schedule into.
func (s *BossSystem) Queue() *DelayedQueue { return s.queue }

// Attacks returns the attack executors.
func (s *BossSystem) Attacks() *Attacks { return s.attacks }

// Arena returns the arena lifecycle manager.
func (s *BossSystem) Arena() *Arena { return s.arena }

// SpawnBoss creates a dormant boss and seeds its AI timers from now.
func (s *BossSystem) SpawnBoss(pos r2.Vec, m components.MapID, tunables components.BossTunables, now float64) ecs.Entity {
	p := components.PositionOf(pos)
	wm := components.WorldMap{ID: m}
	boss := components.Boss{Tunables: tunables}
	timers := components.BossTimers{
		NextAITick: now,
		NextAttack: now + tunables.AttackInterval,
	}
	mob := components.MobState{State: components.LifeAlive}
	health := components.Health{Max: tunables.MaxHealth}
	dmg := components.Damageable{ByType: make(map[components.DamageType]float64)}

	e := s.bossMapper.NewEntity(&p, &wm, &boss, &timers, &mob, &health, &dmg)
	s.logger.Info("boss spawned", "entity", e.ID(), "x", pos.X, "y", pos.Y, "map", m)
	return e
}

// Interact activates a dormant boss. It reports whether the interaction was consumed.
// A dead boss cannot be woken again.
func (s *BossSystem) Interact(boss ecs.Entity) bool {
	if !s.world.Alive(boss) || s.dead(boss) {
		return false
	}
	b := s.bossMap.Get(boss)
	if b == nil || b.Activated {
		return false
	}

	b.Activated = true
	s.markDirty(boss)

	pos := s.posMap.Get(boss)
	wm := s.wmMap.Get(boss)
	if pos != nil && wm != nil {
		tunables := b.Tunables
		s.arena.Activate(boss, pos.Vec(), wm.ID, &tunables)
	}
	s.logger.Info("boss activated", "entity", boss.ID(), "segments", len(s.arena.Segments(boss)))
	return true
}

// OnMobStateChanged reacts to life-state transitions of any entity.
// A boss that dies loses its arena and stops acting.
func (s *BossSystem) OnMobStateChanged(e ecs.Entity, state components.LifeState) {
	if state != components.LifeDead || !s.world.Alive(e) {
		return
	}
	b := s.bossMap.Get(e)
	if b == nil {
		return
	}
	s.arena.Deactivate(e)
	if b.Activated {
		b.Activated = false
		s.markDirty(e)
	}
	s.logger.Info("boss defeated", "entity", e.ID())
}

func (s *BossSystem) dead(e ecs.Entity) bool {
	mob := s.mobMap.Get(e)
	return mob != nil && mob.State == components.LifeDead
}

// Despawn tears down the boss's arena and removes the boss.
// Resolutions still queued for it become no-ops.
func (s *BossSystem) Despawn(boss ecs.Entity) {
	s.arena.Deactivate(boss)
	s.spawner.Delete(boss)
}

// Update runs one controller tick: due delayed actions first, then every
// activated boss whose AI tick has come up.
func (s *BossSystem) Update(now, frameTime float64) {
	s.queue.Advance(now)

	// Collect before thinking: attacks spawn entities.
	s.due = s.due[:0]
	query := s.bossFilter.Query()
	for query.Next() {
		boss, timers := query.Get()
		if !boss.Activated || now < timers.NextAITick {
			continue
		}
		e := query.Entity()
		if s.dead(e) {
			continue
		}
		s.due = append(s.due, e)
	}

	for _, e := range s.due {
		s.think(e, now)
	}
}

func (s *BossSystem) think(e ecs.Entity, now float64) {
	if !s.world.Alive(e) {
		return
	}
	boss := s.bossMap.Get(e)
	timers := s.timersMap.Get(e)
	pos := s.posMap.Get(e)
	wm := s.wmMap.Get(e)
	if boss == nil || timers == nil || pos == nil || wm == nil {
		return
	}

	timers.NextAITick = now + s.aiTick

	origin := pos.Vec()
	radius := boss.Tunables.ArenaRadius + targetRadiusPadding
	_, target, hasTarget := s.targeting.FindTarget(e, origin, wm.ID, radius)

	if hasTarget {
		if angle, ok := AimAt(origin, target); ok {
			boss.AimDir = angle
			s.markDirty(e)
		}
	}

	s.updatePhase(e, boss)

	if now < timers.NextAttack {
		return
	}

	attack := PickAttack(boss.Phase, s.rng.Float64())
	boss.CurrentAttack = attack
	s.markDirty(e)
	timers.NextAttack = now + AttackInterval(boss.Phase, boss.Tunables.AttackInterval)

	s.logger.Debug("boss attack",
		"entity", e.ID(),
		"attack", attack.String(),
		"phase", boss.Phase.String(),
		"has_target", hasTarget,
	)
	if s.OnAttack != nil {
		s.OnAttack(e, attack, boss.Phase, now)
	}

	s.attacks.Execute(attack, AttackContext{
		Boss:      e,
		Phase:     boss.Phase,
		Tunables:  boss.Tunables,
		Pos:       origin,
		Map:       wm.ID,
		Target:    target,
		HasTarget: hasTarget,
	})
}

// UpdatePhase re-evaluates the boss's phase from its damage total.
// Bosses without damage tracking are left alone.
func (s *BossSystem) UpdatePhase(e ecs.Entity) {
	if !s.world.Alive(e) {
		return
	}
	if boss := s.bossMap.Get(e); boss != nil {
		s.updatePhase(e, boss)
	}
}

func (s *BossSystem) updatePhase(e ecs.Entity, boss *components.Boss) {
	dmg := s.damageMap.Get(e)
	if dmg == nil {
		return
	}
	prev := boss.Phase
	if applyPhase(boss, EvaluatePhase(dmg.Total, boss.Tunables.MaxHealth)) {
		s.markDirty(e)
		s.logger.Info("boss phase changed",
			"entity", e.ID(),
			"from", prev.String(),
			"to", boss.Phase.String(),
			"damage", dmg.Total,
		)
	}
}

func (s *BossSystem) markDirty(e ecs.Entity) {
	if s.notifier != nil {
		s.notifier.MarkDirty(e)
	}
}
