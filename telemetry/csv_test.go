package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harlowdev/siftstone/scan"
)

func TestNewExporterEmptyDirDisablesExport(t *testing.T) {
	e, err := NewExporter("")
	if err != nil {
		t.Fatalf("NewExporter(\"\"): %v", err)
	}
	if e != nil {
		t.Fatal("expected a nil Exporter for an empty dir")
	}
	if err := e.WriteRunStats(RunStats{}); err != nil {
		t.Errorf("WriteRunStats on nil Exporter should be a no-op, got error: %v", err)
	}
}

func TestExporterWritesRunStatsWithHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	e, err := NewExporter(dir)
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}
	if err := e.WriteRunStats(RunStats{MatchCount: 1}); err != nil {
		t.Fatalf("WriteRunStats: %v", err)
	}
	if err := e.WriteRunStats(RunStats{MatchCount: 2}); err != nil {
		t.Fatalf("WriteRunStats: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "run_stats.csv"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (1 header + 2 records)", len(lines))
	}
	if !strings.Contains(lines[0], "match_count") {
		t.Errorf("header missing match_count column: %q", lines[0])
	}
}

func TestExporterWritesMatches(t *testing.T) {
	dir := t.TempDir()
	e, err := NewExporter(dir)
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}
	matches := []scan.Match{
		{X: 1, Y: 2, Z: 3, Score: 0, Scored: false},
		{X: 4, Y: 5, Z: 6, Score: 7, Scored: true},
	}
	if err := e.WriteMatches(matches); err != nil {
		t.Fatalf("WriteMatches: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "matches.csv"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (1 header + 2 records)", len(lines))
	}
}
