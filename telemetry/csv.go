package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/harlowdev/siftstone/scan"
)

// MatchRecord is one exported row of a run's match list.
type MatchRecord struct {
	X      int32  `csv:"x"`
	Y      int32  `csv:"y"`
	Z      int32  `csv:"z"`
	Score  uint32 `csv:"score"`
	Scored bool   `csv:"scored"`
}

func toRecords(matches []scan.Match) []MatchRecord {
	out := make([]MatchRecord, len(matches))
	for i, m := range matches {
		out[i] = MatchRecord{X: m.X, Y: m.Y, Z: m.Z, Score: m.Score, Scored: m.Scored}
	}
	return out
}

// Exporter writes a run's stats and match list to CSV files under dir: one
// file per concern, headers written once.
type Exporter struct {
	dir string
}

// NewExporter creates dir if needed and returns an Exporter rooted there.
func NewExporter(dir string) (*Exporter, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating telemetry output directory: %w", err)
	}
	return &Exporter{dir: dir}, nil
}

// WriteRunStats appends stats to run_stats.csv, writing a header on the
// file's first row.
func (e *Exporter) WriteRunStats(stats RunStats) error {
	if e == nil {
		return nil
	}
	return appendCSV(filepath.Join(e.dir, "run_stats.csv"), []RunStats{stats})
}

// WriteMatches writes a run's full match list to matches.csv, overwriting
// any previous export for this exporter's directory.
func (e *Exporter) WriteMatches(matches []scan.Match) error {
	if e == nil {
		return nil
	}
	f, err := os.Create(filepath.Join(e.dir, "matches.csv"))
	if err != nil {
		return fmt.Errorf("creating matches.csv: %w", err)
	}
	defer f.Close()
	if err := gocsv.Marshal(toRecords(matches), f); err != nil {
		return fmt.Errorf("writing matches.csv: %w", err)
	}
	return nil
}

func appendCSV[T any](path string, records []T) error {
	_, err := os.Stat(path)
	writeHeader := os.IsNotExist(err)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if writeHeader {
		if err := gocsv.Marshal(records, f); err != nil {
			return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
		}
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, f); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
