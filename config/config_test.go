package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/titan/components"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "titan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, components.DefaultBossTunables(), cfg.Boss)
	assert.InDelta(t, 17, cfg.Derived.TargetRadius, 1e-9)
	assert.Equal(t, components.DamageSlash, cfg.Derived.StrikeType)
	assert.True(t, cfg.Prototype(cfg.Boss.BarrierPrototype).Anchored)
	assert.InDelta(t, 0.8, cfg.Prototype("TitanTelegraphCircle").Lifetime, 1e-9)
	assert.Zero(t, cfg.Prototype("missing").Lifetime)
}

func TestLoad_OverrideMerges(t *testing.T) {
	path := writeFile(t, `
boss:
  arena_radius: 20
  max_health: 500
challengers:
  strike_type: heat
prototypes:
  TitanArenaBarrierSegment:
    anchored: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.InDelta(t, 20, cfg.Boss.ArenaRadius, 1e-9)
	assert.InDelta(t, 500, cfg.Boss.MaxHealth, 1e-9)
	assert.Equal(t, 32, cfg.Boss.ArenaSegments, "untouched fields keep defaults")
	assert.InDelta(t, 25, cfg.Derived.TargetRadius, 1e-9)
	assert.Equal(t, components.DamageHeat, cfg.Derived.StrikeType)
	assert.True(t, cfg.Prototype("TitanArenaBarrierSegment").Anchored, "barriers are always anchored")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero dt", "sim:\n  dt: 0\n"},
		{"zero ai tick", "sim:\n  ai_tick: 0\n"},
		{"no health", "boss:\n  max_health: 0\n"},
		{"negative segments", "boss:\n  arena_segments: -1\n"},
		{"unknown strike", "challengers:\n  strike_type: psychic\n"},
		{"not yaml", "boss: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Boss.SpikeDamage = 99

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 99, back.Boss.SpikeDamage, 1e-9)
}
