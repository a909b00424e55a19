package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/titan/camera"
	"github.com/pthm-cable/titan/components"
	"github.com/pthm-cable/titan/config"
	"github.com/pthm-cable/titan/inspector"
	"github.com/pthm-cable/titan/network"
	"github.com/pthm-cable/titan/renderer"
	"github.com/pthm-cable/titan/systems"
	"github.com/pthm-cable/titan/telemetry"
	"github.com/pthm-cable/titan/ui"
)

// Options configures a Game.
type Options struct {
	Config         *config.Config // nil uses config.Cfg()
	Seed           int64
	LogStats       bool    // log window stats via slog
	StatsWindowSec float64 // 0 uses telemetry.stats_window
	OutputDir      string  // empty disables CSV and summary output
	Headless       bool
	StepsPerUpdate int     // ticks per Update call; 0 means 1
	Challengers    int     // party size; 0 uses challengers.count
	MaxTime        float64 // fight time limit in seconds; 0 uses sim.max_time
	Logger         *slog.Logger
}

// Game holds the complete fight state.
type Game struct {
	cfg     *config.Config
	opts    Options
	logger  *slog.Logger
	rng     *rand.Rand
	rngSeed int64

	world    *ecs.World
	factory  *systems.EntityFactory
	sink     *systems.DamageableSink
	bosses   *systems.BossSystem
	life     *systems.LifeSystem
	effects  *systems.EffectSystem
	registry *systems.SystemRegistry

	// Replication: the server side pushes frames through link into mirror.
	replicator *network.Replicator
	link       *mirrorLink
	mirror     *network.Mirror

	challengerMapper *ecs.Map6[
		components.Position,
		components.WorldMap,
		components.MobState,
		components.Health,
		components.Damageable,
		components.Challenger,
	]
	challengerFilter *ecs.Filter3[components.Position, components.MobState, components.Challenger]
	propFilter       *ecs.Filter2[components.Position, components.Prototype]

	posMap        *ecs.Map[components.Position]
	mobMap        *ecs.Map[components.MobState]
	healthMap     *ecs.Map[components.Health]
	damageMap     *ecs.Map[components.Damageable]
	bossMap       *ecs.Map[components.Boss]
	challengerMap *ecs.Map[components.Challenger]
	timedMap      *ecs.Map[components.Timed]

	boss       ecs.Entity
	party      []ecs.Entity
	partyAlive []float64 // scratch for remaining-health samples

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	tracker       *telemetry.CombatantTracker
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	windowSec     float64
	logStats      bool
	attackLog     []telemetry.AttackRecord
	damageLog     []telemetry.DamageRecord
	attackTotals  map[string]int

	// State
	tick           int32
	now            float64
	dt             float64
	maxTime        float64
	paused         bool
	stepsPerUpdate int
	outcome        string

	// Viewer (nil when headless)
	camera      *camera.Camera
	arena       *renderer.ArenaRenderer
	hud         *ui.HUD
	perfPanel   *ui.PerfPanel
	controls    *ui.ControlsPanel
	inspector   *inspector.Inspector
	showPerf    bool
	showTargets bool
	scene       renderer.Scene
	screenW     float32
	screenH     float32
}

// NewGame creates a game with default options.
func NewGame() *Game {
	return NewGameWithOptions(Options{Seed: 42})
}

// NewGameWithOptions assembles the world, spawns the fight and wires telemetry.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	windowSec := opts.StatsWindowSec
	if windowSec <= 0 {
		windowSec = cfg.Telemetry.StatsWindow
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		opts:           opts,
		logger:         logger,
		rngSeed:        opts.Seed,
		windowSec:      windowSec,
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		registry:       systems.NewSystemRegistry(),
		logStats:       opts.LogStats,
		stepsPerUpdate: steps,
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			logger.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				logger.Error("failed to write config", "error", err)
			}
		}
	}

	g.setup(cfg)

	if !opts.Headless {
		g.initViewer()
	}

	return g
}

// setup builds a fresh world for cfg and spawns the scenario.
// It is used at start-up and whenever the viewer resets the fight.
func (g *Game) setup(cfg *config.Config) {
	g.cfg = cfg
	g.dt = cfg.Sim.DT
	g.maxTime = cfg.Sim.MaxTime
	if g.opts.MaxTime > 0 {
		g.maxTime = g.opts.MaxTime
	}
	g.rng = rand.New(rand.NewSource(g.rngSeed))
	g.tick = 0
	g.now = 0
	g.outcome = ""
	g.attackLog = g.attackLog[:0]
	g.damageLog = g.damageLog[:0]
	g.attackTotals = make(map[string]int)
	g.tracker = telemetry.NewCombatantTracker()
	g.collector = telemetry.NewCollector(g.windowSec)

	world := ecs.NewWorld()
	g.world = world

	g.factory = systems.NewEntityFactory(world, cfg.Prototypes, g.Now)
	g.sink = systems.NewDamageableSink(world)
	g.sink.Observer = damageObserver{g}

	g.link = &mirrorLink{}
	g.mirror = network.NewMirror()
	g.link.mirror = g.mirror
	g.replicator = network.NewReplicator(world, g.link, g.logger)

	g.bosses = systems.NewBossSystem(world, systems.BossSystemConfig{
		Spawner:  g.factory,
		Sink:     g.sink,
		Notifier: g.replicator,
		Rng:      g.rng,
		Logger:   g.logger,
		AITick:   cfg.Sim.AITick,
	})
	g.bosses.OnAttack = g.onAttack
	g.bosses.Attacks().OnResolve = g.onResolve

	g.life = systems.NewLifeSystem(world)
	g.life.Subscribe(g.bosses.OnMobStateChanged)
	g.life.Subscribe(g.onMobStateChanged)

	g.effects = systems.NewEffectSystem(world)

	g.challengerMapper = ecs.NewMap6[
		components.Position,
		components.WorldMap,
		components.MobState,
		components.Health,
		components.Damageable,
		components.Challenger,
	](world)
	g.challengerFilter = ecs.NewFilter3[components.Position, components.MobState, components.Challenger](world)
	g.propFilter = ecs.NewFilter2[components.Position, components.Prototype](world)

	g.posMap = ecs.NewMap[components.Position](world)
	g.mobMap = ecs.NewMap[components.MobState](world)
	g.healthMap = ecs.NewMap[components.Health](world)
	g.damageMap = ecs.NewMap[components.Damageable](world)
	g.bossMap = ecs.NewMap[components.Boss](world)
	g.challengerMap = ecs.NewMap[components.Challenger](world)
	g.timedMap = ecs.NewMap[components.Timed](world)

	g.spawnScenario()
}

// Reset restarts the fight with cfg (nil keeps the current config).
func (g *Game) Reset(cfg *config.Config) {
	if cfg == nil {
		cfg = g.cfg
	}
	g.setup(cfg)
	if g.camera != nil {
		g.camera.Focus(g.cfg.Arena.BossX, g.cfg.Arena.BossY)
		g.camera.Reset()
	}
	if g.inspector != nil {
		g.inspector.Deselect()
	}
	g.logger.Info("fight reset", "seed", g.rngSeed)
}

// SetStatsCallback registers a function called with every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Now returns the simulation time in seconds.
func (g *Game) Now() float64 {
	return g.now
}

// Boss returns the boss entity.
func (g *Game) Boss() ecs.Entity {
	return g.boss
}

// Mirror returns the client-side copy of replicated boss state.
func (g *Game) Mirror() *network.Mirror {
	return g.mirror
}

// Finished reports whether the fight has reached an outcome.
func (g *Game) Finished() bool {
	return g.outcome != ""
}

// Outcome returns the fight outcome, or "" while it is running.
func (g *Game) Outcome() string {
	return g.outcome
}

// Unload flushes and closes run output.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		g.logger.Error("failed to close output", "error", err)
	}
}
