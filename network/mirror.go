package network

// Mirror is the client-side copy of replicated boss state.
type Mirror struct {
	bosses  map[uint32]BossStateMsg
	lastSeq uint64
}

// NewMirror creates an empty mirror.
func NewMirror() *Mirror {
	return &Mirror{bosses: make(map[uint32]BossStateMsg)}
}

// Apply copies a frame's state into the mirror. Frames older than the last
// applied one are ignored. Reports whether the frame was applied.
func (m *Mirror) Apply(f Frame) bool {
	if f.Seq != 0 && f.Seq <= m.lastSeq {
		return false
	}
	m.lastSeq = f.Seq
	for _, b := range f.Bosses {
		if b.Removed {
			delete(m.bosses, b.Entity)
			continue
		}
		m.bosses[b.Entity] = b
	}
	return true
}

// ApplyBytes decodes and applies an encoded frame.
func (m *Mirror) ApplyBytes(data []byte) (bool, error) {
	f, err := Decode(data)
	if err != nil {
		return false, err
	}
	return m.Apply(f), nil
}

// Boss returns the mirrored state for an entity id.
func (m *Mirror) Boss(id uint32) (BossStateMsg, bool) {
	b, ok := m.bosses[id]
	return b, ok
}

// Len returns the number of mirrored bosses.
func (m *Mirror) Len() int {
	return len(m.bosses)
}
