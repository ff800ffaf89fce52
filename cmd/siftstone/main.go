// Package main is siftstone's primary CLI: load a placement file, run a
// crack, and print or export the resulting matches.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/harlowdev/siftstone/config"
	"github.com/harlowdev/siftstone/offsethash"
	"github.com/harlowdev/siftstone/sampleset"
	"github.com/harlowdev/siftstone/scan"
	"github.com/harlowdev/siftstone/solver"
	"github.com/harlowdev/siftstone/telemetry"
	"github.com/harlowdev/siftstone/worker"
)

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use embedded defaults)")
	placementsPath := flag.String("placements", "", "Persisted placement text file (required)")
	centerX := flag.Float64("x", 0, "Search box center X")
	centerZ := flag.Float64("z", 0, "Search box center Z")
	radius := flag.Int("radius", 0, "Search radius in blocks (0 = config default)")
	yMin := flag.Int("y-min", 0, "Minimum Y to search (classic only)")
	yMax := flag.Int("y-max", 0, "Maximum Y to search (classic only)")
	classic := flag.Bool("classic", false, "Use the classic (pre-1.13) hash variant instead of modern")
	scored := flag.Bool("scored", false, "Use scored mode instead of strict")
	tol := flag.Int("tol", -1, "Per-axis tolerance for scored mode, 0-2 (-1 = config default)")
	maxScore := flag.Uint("max-score", 4, "Maximum accumulated score for scored mode")
	maxResults := flag.Int("max-results", 0, "Maximum results to return (0 = config default)")
	noWorkers := flag.Bool("no-workers", false, "Disable parallel worker pool")
	outDir := flag.String("telemetry-dir", "", "Directory to export run stats and matches CSV (empty = no export)")
	flag.Parse()

	if *placementsPath == "" {
		log.Fatal("--placements is required")
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("loading config: %v", err)
	}
	cfg := config.Cfg()

	if *radius == 0 {
		*radius = cfg.Scan.DefaultRadius
	}
	if *tol < 0 {
		*tol = cfg.CLI.DefaultTol
	}
	if *maxResults == 0 {
		*maxResults = cfg.CLI.DefaultMaxResults
	}

	f, err := os.Open(*placementsPath)
	if err != nil {
		log.Fatalf("opening placements file: %v", err)
	}
	placements, err := sampleset.DecodeText(f)
	f.Close()
	if err != nil {
		log.Fatalf("parsing placements file: %v", err)
	}

	version := offsethash.Modern
	if *classic {
		version = offsethash.Classic
	}
	mode := scan.Strict
	if *scored {
		mode = scan.Scored
	}

	collector := telemetry.NewCollector(
		time.Duration(cfg.CLI.ProgressCadenceMs)*time.Millisecond,
		func(p worker.Progress) {
			slog.Info("scanning", "done", p.Done, "total", p.Total, "matches", p.MatchCount)
		},
	)

	result := solver.Crack(context.Background(), solver.Params{
		CenterX:    *centerX,
		CenterZ:    *centerZ,
		Radius:     *radius,
		YMin:       int32(*yMin),
		YMax:       int32(*yMax),
		Version:    version,
		Mode:       mode,
		Tol:        *tol,
		MaxScore:   uint32(*maxScore),
		MaxResults: *maxResults,
		UseWorkers: !*noWorkers,
		Placements: placements,
		Progress:   collector.Observe,
	})

	if result.Warning != "" {
		slog.Warn("solver warning", "reason", result.Warning)
	}
	for _, m := range result.Matches {
		if m.Scored {
			fmt.Printf("%d %d %d  score=%d\n", m.X, m.Y, m.Z, m.Score)
		} else {
			fmt.Printf("%d %d %d\n", m.X, m.Y, m.Z)
		}
	}
	result.Telemetry.Log()

	if *outDir != "" {
		exporter, err := telemetry.NewExporter(*outDir)
		if err != nil {
			log.Fatalf("creating telemetry exporter: %v", err)
		}
		if err := exporter.WriteRunStats(result.Telemetry); err != nil {
			log.Fatalf("writing run stats: %v", err)
		}
		rawMatches := make([]scan.Match, len(result.Matches))
		for i, m := range result.Matches {
			rawMatches[i] = scan.Match{X: m.X, Y: m.Y, Z: m.Z, Score: m.Score, Scored: m.Scored}
		}
		if err := exporter.WriteMatches(rawMatches); err != nil {
			log.Fatalf("writing matches csv: %v", err)
		}
	}
}
