package game

import "github.com/pthm-cable/titan/network"

// mirrorLink is an in-process transport: every frame the replicator sends is
// decoded straight into the client-side mirror.
type mirrorLink struct {
	mirror *network.Mirror
	frames int
	bytes  int
}

// Send applies one encoded frame to the mirror.
func (l *mirrorLink) Send(data []byte) error {
	l.frames++
	l.bytes += len(data)
	_, err := l.mirror.ApplyBytes(data)
	return err
}

// flushReplication sends the state of every boss changed this tick.
func (g *Game) flushReplication() {
	if _, err := g.replicator.Flush(g.now); err != nil {
		g.logger.Error("replication flush failed", "error", err, "tick", g.tick)
	}
}
