package network

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/titan/components"
)

type failingTransport struct{}

func (failingTransport) Send([]byte) error { return errors.New("link down") }

func spawnBoss(world *ecs.World, b components.Boss) ecs.Entity {
	return ecs.NewMap1[components.Boss](world).NewEntity(&b)
}

func TestReplicator_FlushAndMirror(t *testing.T) {
	world := ecs.NewWorld()
	rec := &Recorder{}
	rep := NewReplicator(world, rec, slog.New(slog.NewTextHandler(io.Discard, nil)))

	boss := spawnBoss(world, components.Boss{
		Activated:     true,
		Phase:         components.Phase3,
		Enraged:       true,
		AimDir:        1.25,
		CurrentAttack: components.AttackLaser,
	})

	n, err := rep.Flush(0)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, rec.Frames, "nothing dirty, nothing sent")

	rep.MarkDirty(boss)
	rep.MarkDirty(boss)
	assert.Equal(t, 1, rep.Pending())

	n, err = rep.Flush(2.5)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Zero(t, rep.Pending())

	frame, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, uint64(1), frame.Seq)
	assert.InDelta(t, 2.5, frame.Time, 1e-9)

	mirror := NewMirror()
	applied, err := mirror.ApplyBytes(rec.Frames[0])
	require.NoError(t, err)
	require.True(t, applied)

	got, ok := mirror.Boss(boss.ID())
	require.True(t, ok)
	assert.Equal(t, BossStateMsg{
		Entity:        boss.ID(),
		Activated:     true,
		Phase:         components.Phase3,
		Enraged:       true,
		AimDir:        1.25,
		CurrentAttack: components.AttackLaser,
	}, got)

	assert.False(t, mirror.Apply(frame), "stale frames are ignored")
}

func TestReplicator_RemovedBoss(t *testing.T) {
	world := ecs.NewWorld()
	rec := &Recorder{}
	rep := NewReplicator(world, rec, nil)
	mirror := NewMirror()

	boss := spawnBoss(world, components.Boss{Activated: true})
	rep.MarkDirty(boss)
	_, err := rep.Flush(1)
	require.NoError(t, err)
	_, err = mirror.ApplyBytes(rec.Frames[0])
	require.NoError(t, err)
	assert.Equal(t, 1, mirror.Len())

	world.RemoveEntity(boss)
	rep.MarkDirty(boss)
	_, err = rep.Flush(2)
	require.NoError(t, err)
	_, err = mirror.ApplyBytes(rec.Frames[1])
	require.NoError(t, err)
	assert.Zero(t, mirror.Len())
}

func TestReplicator_SendFailure(t *testing.T) {
	world := ecs.NewWorld()
	rep := NewReplicator(world, failingTransport{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	rep.MarkDirty(spawnBoss(world, components.Boss{}))

	_, err := rep.Flush(0)
	assert.Error(t, err)
	assert.Zero(t, rep.Pending(), "a failed frame is not retried")
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode([]byte{0xc1})
	assert.Error(t, err)
}
