package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
)

// Fight outcomes.
const (
	OutcomeBossDefeated = "boss_defeated"
	OutcomePartyWiped   = "party_wiped"
	OutcomeTimeout      = "timeout"
)

// Summary describes a finished headless run.
type Summary struct {
	Seed       int64            `json:"seed"`
	Outcome    string           `json:"outcome"`
	SimTime    float64          `json:"sim_time"`
	Attacks    map[string]int   `json:"attacks"`
	FinalPhase string           `json:"final_phase"`
	Frames     int              `json:"replication_frames"`
	FrameBytes int              `json:"replication_bytes"`
	Combatants []CombatantStats `json:"combatants"`
}

// WriteSummary writes s as indented JSON to path.
func WriteSummary(path string, s *Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// ReadSummary loads a summary written by WriteSummary.
func ReadSummary(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading summary: %w", err)
	}
	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing summary: %w", err)
	}
	return &s, nil
}
