// Package network replicates boss state to clients as msgpack frames.
package network

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/pthm-cable/titan/components"
)

// BossStateMsg carries the networked fields of one boss.
type BossStateMsg struct {
	Entity        uint32            `msgpack:"e"`
	Removed       bool              `msgpack:"rm,omitempty"` // boss no longer exists
	Activated     bool              `msgpack:"a"`
	Phase         components.Phase  `msgpack:"p"`
	Enraged       bool              `msgpack:"en"`
	AimDir        float64           `msgpack:"aim"`
	CurrentAttack components.Attack `msgpack:"atk"`
}

// Frame is one replication flush.
type Frame struct {
	Seq    uint64         `msgpack:"seq"`
	Time   float64        `msgpack:"t"`
	Bosses []BossStateMsg `msgpack:"b"`
}

// Encode serialises a frame.
func Encode(f *Frame) ([]byte, error) {
	data, err := msgpack.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encoding frame %d: %w", f.Seq, err)
	}
	return data, nil
}

// Decode parses a frame produced by Encode.
func Decode(data []byte) (Frame, error) {
	var f Frame
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("decoding frame: %w", err)
	}
	return f, nil
}
