package network

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/titan/components"
)

// Transport delivers encoded frames to clients.
type Transport interface {
	Send(data []byte) error
}

// Replicator collects dirty bosses and sends their state on Flush.
// It satisfies systems.ChangeNotifier.
type Replicator struct {
	world     *ecs.World
	bossMap   *ecs.Map[components.Boss]
	transport Transport
	logger    *slog.Logger

	dirty map[ecs.Entity]struct{}
	order []ecs.Entity
	seq   uint64
}

// NewReplicator creates a replicator sending through transport.
func NewReplicator(world *ecs.World, transport Transport, logger *slog.Logger) *Replicator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Replicator{
		world:     world,
		bossMap:   ecs.NewMap[components.Boss](world),
		transport: transport,
		logger:    logger,
		dirty:     make(map[ecs.Entity]struct{}),
	}
}

// MarkDirty queues e for the next flush. Repeated marks coalesce.
func (r *Replicator) MarkDirty(e ecs.Entity) {
	if _, ok := r.dirty[e]; ok {
		return
	}
	r.dirty[e] = struct{}{}
	r.order = append(r.order, e)
}

// Pending returns the number of entities waiting to be sent.
func (r *Replicator) Pending() int {
	return len(r.order)
}

// Flush sends one frame holding every dirty boss and clears the dirty set.
// Nothing is sent when nothing is dirty. Returns the number of bosses sent.
func (r *Replicator) Flush(now float64) (int, error) {
	if len(r.order) == 0 {
		return 0, nil
	}

	frame := Frame{Time: now, Bosses: make([]BossStateMsg, 0, len(r.order))}
	for _, e := range r.order {
		frame.Bosses = append(frame.Bosses, r.snapshot(e))
	}
	clear(r.dirty)
	r.order = r.order[:0]

	r.seq++
	frame.Seq = r.seq

	data, err := Encode(&frame)
	if err != nil {
		return 0, err
	}
	if err := r.transport.Send(data); err != nil {
		r.logger.Warn("replication send failed", "seq", frame.Seq, "error", err)
		return 0, fmt.Errorf("sending frame %d: %w", frame.Seq, err)
	}
	return len(frame.Bosses), nil
}

func (r *Replicator) snapshot(e ecs.Entity) BossStateMsg {
	msg := BossStateMsg{Entity: e.ID()}
	if !r.world.Alive(e) {
		msg.Removed = true
		return msg
	}
	b := r.bossMap.Get(e)
	if b == nil {
		msg.Removed = true
		return msg
	}
	msg.Activated = b.Activated
	msg.Phase = b.Phase
	msg.Enraged = b.Enraged
	msg.AimDir = b.AimDir
	msg.CurrentAttack = b.CurrentAttack
	return msg
}

// Recorder is an in-memory Transport that keeps every frame.
type Recorder struct {
	Frames [][]byte
	Bytes  int
}

// Send stores a copy of data.
func (r *Recorder) Send(data []byte) error {
	r.Frames = append(r.Frames, append([]byte(nil), data...))
	r.Bytes += len(data)
	return nil
}

// Last decodes the most recent frame.
func (r *Recorder) Last() (Frame, bool) {
	if len(r.Frames) == 0 {
		return Frame{}, false
	}
	f, err := Decode(r.Frames[len(r.Frames)-1])
	if err != nil {
		return Frame{}, false
	}
	return f, true
}
