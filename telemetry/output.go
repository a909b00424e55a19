package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/titan/config"
)

// csvFile appends gocsv records to one file, writing the header only once.
type csvFile struct {
	name          string
	f             *os.File
	headerWritten bool
}

func (c *csvFile) write(records any) error {
	if !c.headerWritten {
		if err := gocsv.Marshal(records, c.f); err != nil {
			return fmt.Errorf("writing %s: %w", c.name, err)
		}
		c.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, c.f); err != nil {
		return fmt.Errorf("writing %s: %w", c.name, err)
	}
	return nil
}

// OutputManager handles run output: CSV logs, the config used and a summary.
type OutputManager struct {
	dir     string
	windows *csvFile
	attacks *csvFile
	damage  *csvFile
	perf    *csvFile
}

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled); all methods accept a nil receiver.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, target := range []struct {
		dst  **csvFile
		name string
	}{
		{&om.windows, "windows.csv"},
		{&om.attacks, "attacks.csv"},
		{&om.damage, "damage.csv"},
		{&om.perf, "perf.csv"},
	} {
		f, err := os.Create(filepath.Join(dir, target.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", target.name, err)
		}
		*target.dst = &csvFile{name: target.name, f: f}
	}
	return om, nil
}

// WriteConfig saves the configuration used for the run.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteWindow appends a window stats row to windows.csv.
func (om *OutputManager) WriteWindow(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.windows.write([]WindowStats{stats})
}

// WriteAttacks appends attack rows to attacks.csv.
func (om *OutputManager) WriteAttacks(records []AttackRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	return om.attacks.write(records)
}

// WriteDamage appends damage rows to damage.csv.
func (om *OutputManager) WriteDamage(records []DamageRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	return om.damage.write(records)
}

// WritePerf appends a perf row to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, simTime float64) error {
	if om == nil {
		return nil
	}
	return om.perf.write([]PerfStatsCSV{stats.ToCSV(simTime)})
}

// WriteSummary saves the run summary as summary.json.
func (om *OutputManager) WriteSummary(s *Summary) error {
	if om == nil {
		return nil
	}
	return WriteSummary(filepath.Join(om.dir, "summary.json"), s)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, c := range []*csvFile{om.windows, om.attacks, om.damage, om.perf} {
		if c == nil || c.f == nil {
			continue
		}
		if err := c.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
