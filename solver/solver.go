// Package solver is the single entry point a host calls to turn a placement
// list and scan parameters into a sorted, possibly-truncated match list.
package solver

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/harlowdev/siftstone/config"
	"github.com/harlowdev/siftstone/offsethash"
	"github.com/harlowdev/siftstone/partition"
	"github.com/harlowdev/siftstone/sampleset"
	"github.com/harlowdev/siftstone/scan"
	"github.com/harlowdev/siftstone/telemetry"
	"github.com/harlowdev/siftstone/worker"
)

// Sentinel errors for parameter validation failures. Insufficient-sample and
// match-cap conditions are not errors — they surface as warnings attached to
// a successful Result instead.
var (
	ErrInvalidRadius   = errors.New("solver: radius out of range")
	ErrInvalidTol      = errors.New("solver: tol out of range")
	ErrInvalidMode     = errors.New("solver: unknown mode")
	ErrInvalidMaxResults = errors.New("solver: maxResults out of range")
)

// Params are Crack's inputs.
type Params struct {
	CenterX, CenterZ float64
	Radius           int
	YMin, YMax       int32
	Version          offsethash.Version
	Mode             scan.Mode
	Tol              int
	MaxScore         uint32
	MaxResults       int
	UseWorkers       bool

	Placements []sampleset.Placement
	Progress   func(worker.Progress)
}

// Match is one solved candidate origin, score omitted in strict mode.
type Match struct {
	X, Y, Z int32
	Score   uint32
	Scored  bool
}

// Result is the SolverFacade's output.
type Result struct {
	Matches   []Match
	Warning   string
	Telemetry telemetry.RunStats
}

// validate clamps or rejects p: a radius above maxRadius is clamped to
// maxRadius. A negative radius, a tol outside [0,2], an unknown mode and a
// maxResults outside [1,50] are rejected; none of these is clamped.
func validate(p *Params) error {
	cfg := config.Cfg()
	if p.Radius < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRadius, p.Radius)
	}
	if p.Radius > cfg.Scan.MaxRadius {
		p.Radius = cfg.Scan.MaxRadius
	}
	if p.Tol < 0 || p.Tol > 2 {
		return fmt.Errorf("%w: %d", ErrInvalidTol, p.Tol)
	}
	if p.Mode != scan.Strict && p.Mode != scan.Scored {
		return fmt.Errorf("%w: %d", ErrInvalidMode, p.Mode)
	}
	if p.MaxResults < 1 || p.MaxResults > 50 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxResults, p.MaxResults)
	}
	return nil
}

// Crack builds the SampleSet, derives the SearchBox, chooses a worker count,
// partitions it, runs the pool, finalizes ordering, and surfaces any
// warning.
func Crack(ctx context.Context, p Params) Result {
	if err := validate(&p); err != nil {
		return Result{Warning: err.Error()}
	}
	cfg := config.Cfg()

	// Step 1: SampleSet.
	ss, warn := sampleset.Build(p.Placements)
	if warn != nil {
		return Result{Warning: warn.Reason}
	}

	// Step 2: SearchBox. In modern, Y iteration collapses to a single value
	// yLo; scan.Engine.Scan already special-cases this,
	// so the box still carries the full [yMin,yMax] for the classic path.
	yLo, yHi := p.YMin, p.YMax
	if yHi < yLo {
		yLo, yHi = yHi, yLo
	}
	box := scan.SearchBox{
		XLo:     int32(p.CenterX - float64(p.Radius)),
		XHi:     int32(p.CenterX + float64(p.Radius)),
		ZLo:     int32(p.CenterZ - float64(p.Radius)),
		ZHi:     int32(p.CenterZ + float64(p.Radius)),
		YLo:     yLo,
		YHi:     yHi,
		Version: p.Version,
	}

	// Step 3: worker count + partition.
	xCount := int(int64(box.XHi) - int64(box.XLo) + 1)
	n := 1
	if p.UseWorkers {
		n = worker.ChooseWorkerCount(p.Version, xCount, cfg.Workers.HardwareCap, cfg.Workers.ClassicCap)
	}
	stripes := partition.Split(box, n)

	// Step 4/5: launch + collect.
	agg := (worker.Pool{}).Run(ctx, stripes, ss, worker.ScanParams{
		Mode:          p.Mode,
		Tol:           p.Tol,
		MaxScore:      p.MaxScore,
		MatchCap:      cfg.Scan.MatchHardCap,
		ProgressBatch: cfg.Scan.ProgressBatch,
	}, p.Progress)

	hitCap := agg.HitCap
	if len(agg.Matches) > cfg.Scan.MatchHardCap {
		agg.Matches = agg.Matches[:cfg.Scan.MatchHardCap]
		hitCap = true
	}

	// Step 6: finalize order and truncate.
	matches := make([]Match, len(agg.Matches))
	for i, m := range agg.Matches {
		matches[i] = Match{X: m.X, Y: m.Y, Z: m.Z, Score: m.Score, Scored: m.Scored}
	}

	if p.Mode == scan.Strict {
		sort.Slice(matches, func(a, b int) bool {
			if matches[a].X != matches[b].X {
				return matches[a].X < matches[b].X
			}
			if matches[a].Z != matches[b].Z {
				return matches[a].Z < matches[b].Z
			}
			return matches[a].Y < matches[b].Y
		})
	} else {
		sort.Slice(matches, func(a, b int) bool {
			if matches[a].Score != matches[b].Score {
				return matches[a].Score < matches[b].Score
			}
			if matches[a].X != matches[b].X {
				return matches[a].X < matches[b].X
			}
			if matches[a].Z != matches[b].Z {
				return matches[a].Z < matches[b].Z
			}
			return matches[a].Y < matches[b].Y
		})
		if len(matches) > p.MaxResults {
			matches = matches[:p.MaxResults]
		}
	}

	// Step 7: warning.
	result := Result{
		Matches: matches,
		Telemetry: telemetry.Summarize(telemetry.RunInput{
			CandidatesEvaluated: agg.Done,
			Matches:             agg.Matches,
			Cancelled:           agg.Cancelled,
			HitCap:              hitCap,
		}),
	}
	switch {
	case agg.Cancelled:
		result.Warning = "scan cancelled before completion"
	case hitCap:
		result.Warning = fmt.Sprintf("match cap reached (%d); results truncated", cfg.Scan.MatchHardCap)
	}
	return result
}
