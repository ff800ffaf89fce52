// Package telemetry turns a completed solver run into summary statistics,
// a structured log record, and an offline CSV export — the run-level
// counterpart to the WorkerPool's live Progress callback.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/harlowdev/siftstone/scan"
)

// RunInput is what solver.Crack hands telemetry after a scan finishes.
type RunInput struct {
	CandidatesEvaluated uint64
	Matches             []scan.Match
	Cancelled           bool
	HitCap              bool
}

// RunStats is one completed run's summary, exported to CSV and logged via
// slog.
type RunStats struct {
	CandidatesEvaluated uint64  `csv:"candidates_evaluated"`
	MatchCount          int     `csv:"match_count"`
	ScoredMatchCount    int     `csv:"scored_match_count"`
	ScoreMean           float64 `csv:"score_mean"`
	ScoreStdDev         float64 `csv:"score_stddev"`
	ScoreP50            float64 `csv:"score_p50"`
	Cancelled           bool    `csv:"cancelled"`
	HitCap              bool    `csv:"hit_cap"`
}

// Summarize computes a RunStats from a finished scan. Score statistics are
// computed only over scored matches — strict-mode runs report zeroed score
// fields.
func Summarize(in RunInput) RunStats {
	rs := RunStats{
		CandidatesEvaluated: in.CandidatesEvaluated,
		MatchCount:          len(in.Matches),
		Cancelled:           in.Cancelled,
		HitCap:              in.HitCap,
	}

	var scores []float64
	for _, m := range in.Matches {
		if m.Scored {
			scores = append(scores, float64(m.Score))
		}
	}
	rs.ScoredMatchCount = len(scores)
	if len(scores) == 0 {
		return rs
	}

	sort.Float64s(scores)
	rs.ScoreMean, rs.ScoreStdDev = stat.MeanStdDev(scores, nil)
	rs.ScoreP50 = stat.Quantile(0.5, stat.Empirical, scores, nil)
	return rs
}

// LogValue implements slog.LogValuer for structured logging of a completed
// run.
func (s RunStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("candidates_evaluated", s.CandidatesEvaluated),
		slog.Int("match_count", s.MatchCount),
		slog.Int("scored_match_count", s.ScoredMatchCount),
		slog.Float64("score_mean", s.ScoreMean),
		slog.Float64("score_stddev", s.ScoreStdDev),
		slog.Float64("score_p50", s.ScoreP50),
		slog.Bool("cancelled", s.Cancelled),
		slog.Bool("hit_cap", s.HitCap),
	)
}

// Log emits a completed run's stats via the default slog logger.
func (s RunStats) Log() {
	slog.Info("run complete", "stats", s)
}
