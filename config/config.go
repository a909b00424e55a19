// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/titan/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen      ScreenConfig               `yaml:"screen"`
	Sim         SimConfig                  `yaml:"sim"`
	Arena       ArenaConfig                `yaml:"arena"`
	Boss        components.BossTunables    `yaml:"boss"`
	Challengers ChallengerConfig           `yaml:"challengers"`
	Prototypes  map[string]PrototypeConfig `yaml:"prototypes"`
	Telemetry   TelemetryConfig            `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds viewer display settings.
type ScreenConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	TargetFPS     int     `yaml:"target_fps"`
	PixelsPerUnit float64 `yaml:"pixels_per_unit"`
}

// SimConfig holds the fixed-tick settings.
type SimConfig struct {
	DT      float64 `yaml:"dt"`       // seconds per tick
	AITick  float64 `yaml:"ai_tick"`  // boss AI cadence in seconds
	MaxTime float64 `yaml:"max_time"` // headless run length in seconds (0 = until boss or party dies)
}

// ArenaConfig places the boss.
type ArenaConfig struct {
	MapID uint32  `yaml:"map_id"`
	BossX float64 `yaml:"boss_x"`
	BossY float64 `yaml:"boss_y"`
}

// ChallengerConfig holds the scripted party that fights the boss.
type ChallengerConfig struct {
	Count          int     `yaml:"count"`
	Health         float64 `yaml:"health"`
	OrbitMin       float64 `yaml:"orbit_min"` // orbit radius range around the boss
	OrbitMax       float64 `yaml:"orbit_max"`
	Speed          float64 `yaml:"speed"` // radians per second along the orbit
	StrikeDamage   float64 `yaml:"strike_damage"`
	StrikeInterval float64 `yaml:"strike_interval"`
	StrikeType     string  `yaml:"strike_type"`
	InteractRange  float64 `yaml:"interact_range"`
}

// PrototypeConfig describes a spawnable archetype.
type PrototypeConfig struct {
	Lifetime float64 `yaml:"lifetime"` // seconds before despawn (0 = permanent)
	Anchored bool    `yaml:"anchored"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	StrikeType   components.DamageType // parsed Challengers.StrikeType
	TargetRadius float64               // Boss.ArenaRadius + 5
	MapID        components.MapID
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Set replaces the global configuration (used after a hot reload).
func Set(cfg *Config) {
	global = cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	if c.Sim.DT <= 0 {
		return fmt.Errorf("sim.dt must be positive, got %v", c.Sim.DT)
	}
	if c.Boss.MaxHealth <= 0 {
		return fmt.Errorf("boss.max_health must be positive, got %v", c.Boss.MaxHealth)
	}
	if c.Boss.ArenaSegments < 0 {
		return fmt.Errorf("boss.arena_segments must not be negative, got %d", c.Boss.ArenaSegments)
	}

	if c.Sim.AITick <= 0 {
		return fmt.Errorf("sim.ai_tick must be positive, got %v", c.Sim.AITick)
	}

	c.Derived.StrikeType = components.DamageSlash
	if c.Challengers.StrikeType != "" {
		dt, ok := components.ParseDamageType(c.Challengers.StrikeType)
		if !ok {
			return fmt.Errorf("challengers.strike_type: unknown damage type %q", c.Challengers.StrikeType)
		}
		c.Derived.StrikeType = dt
	}

	c.Derived.TargetRadius = c.Boss.ArenaRadius + 5
	c.Derived.MapID = components.MapID(c.Arena.MapID)

	if c.Prototypes == nil {
		c.Prototypes = make(map[string]PrototypeConfig)
	}
	// The barrier prototype is always anchored, even if the file forgot it.
	barrier := c.Prototypes[c.Boss.BarrierPrototype]
	barrier.Anchored = true
	c.Prototypes[c.Boss.BarrierPrototype] = barrier

	return nil
}

// Prototype returns the definition for a prototype id.
// Unknown ids yield a permanent, unanchored prototype.
func (c *Config) Prototype(id string) PrototypeConfig {
	return c.Prototypes[id]
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
