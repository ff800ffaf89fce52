// Package worker implements the scan engine's fan-out/fan-in pool: one
// goroutine per stripe, joined with a sync.WaitGroup, with cooperative
// cancellation threaded through via context. Workers share nothing mutable;
// results are merged only after every worker has returned.
package worker

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/harlowdev/siftstone/offsethash"
	"github.com/harlowdev/siftstone/sampleset"
	"github.com/harlowdev/siftstone/scan"
)

// Progress is the pool-level, additively-aggregated progress report handed
// to a caller's onProgress callback. Counters are uint64 throughout since a
// large search box can evaluate well over 2^31 candidates.
type Progress struct {
	Done       uint64
	Total      uint64
	MatchCount uint64
}

// ScanParams carries the per-scan settings shared by every worker; stripe
// geometry and hash version travel on each scan.Stripe instead.
type ScanParams struct {
	Mode          scan.Mode
	Tol           int
	MaxScore      uint32
	MatchCap      int
	ProgressBatch int
}

// Aggregate is the pool's merged output across every stripe.
type Aggregate struct {
	Matches   []scan.Match
	Done      uint64
	HitCap    bool
	Cancelled bool
}

// fallbackHardwareCap and fallbackClassicCap are the bounds ChooseWorkerCount
// falls back to when called with hardwareCap/classicCap <= 0, so tests and
// callers with no config.Config in hand still get sane defaults.
const fallbackHardwareCap = 16
const fallbackClassicCap = 4

// ChooseWorkerCount picks the pool size: hw = clamp(hardwareConcurrency, 1,
// hardwareCap); classic caps at classicCap workers, modern uses up to hw, and
// neither ever exceeds xCount (no point splitting a stripe narrower than one
// column per worker). hardwareCap/classicCap <= 0 fall back to this
// package's own defaults, letting callers without a loaded config.Config
// still get reasonable behavior.
func ChooseWorkerCount(version offsethash.Version, xCount int, hardwareCap int, classicCap int) int {
	if hardwareCap <= 0 {
		hardwareCap = fallbackHardwareCap
	}
	if classicCap <= 0 {
		classicCap = fallbackClassicCap
	}

	hw := runtime.GOMAXPROCS(0)
	if hw < 1 {
		hw = 1
	}
	if hw > hardwareCap {
		hw = hardwareCap
	}
	if version == offsethash.Classic {
		return minInt(classicCap, hw, xCount)
	}
	return minInt(hw, xCount)
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	if m < 1 {
		m = 1
	}
	return m
}

// stripeCandidateCount is the total number of candidate origins a stripe
// covers, used to report Progress.Total without running the scan.
func stripeCandidateCount(s scan.Stripe) uint64 {
	x := uint64(int64(s.XHi) - int64(s.XLo) + 1)
	z := uint64(int64(s.ZHi) - int64(s.ZLo) + 1)
	y := uint64(1)
	if s.Version != offsethash.Modern {
		y = uint64(int64(s.YHi) - int64(s.YLo) + 1)
	}
	return x * z * y
}

// Pool runs a set of stripes to completion. It carries no state across
// calls to Run.
type Pool struct{}

// Run launches one goroutine per stripe, each evaluating scan.Engine.Scan
// against the shared, read-only SampleSet. Per-worker progress is
// aggregated additively and forwarded to onProgress (which may be nil); the
// pool never blocks on the callback itself. Run returns once every worker
// has produced its "done" result — on cancellation, each worker finishes its
// current batch before observing ctx and returning early, matching the
// engine's own cooperative-cancellation contract. A stripe hitting its match
// cap stops only that stripe; the other workers scan on to completion.
func (Pool) Run(ctx context.Context, stripes []scan.Stripe, ss sampleset.SampleSet, params ScanParams, onProgress func(Progress)) Aggregate {
	n := len(stripes)
	if n == 0 {
		return Aggregate{}
	}

	doneCounters := make([]uint64, n)
	matchCounters := make([]uint64, n)
	var totalCandidates uint64
	for _, s := range stripes {
		totalCandidates += stripeCandidateCount(s)
	}

	var progressMu sync.Mutex
	reportProgress := func() {
		if onProgress == nil {
			return
		}
		progressMu.Lock()
		defer progressMu.Unlock()
		var done, matches uint64
		for i := 0; i < n; i++ {
			done += atomic.LoadUint64(&doneCounters[i])
			matches += atomic.LoadUint64(&matchCounters[i])
		}
		onProgress(Progress{Done: done, Total: totalCandidates, MatchCount: matches})
	}

	results := make([]scan.Result, n)
	var wg sync.WaitGroup
	for i, stripe := range stripes {
		wg.Add(1)
		go func(i int, stripe scan.Stripe) {
			defer wg.Done()
			res := (scan.Engine{}).Scan(ctx, stripe, ss, params.Mode, params.Tol, params.MaxScore, params.MatchCap, params.ProgressBatch, func(done uint64) {
				atomic.StoreUint64(&doneCounters[i], done)
				reportProgress()
			})
			atomic.StoreUint64(&doneCounters[i], res.Done)
			atomic.StoreUint64(&matchCounters[i], uint64(len(res.Matches)))
			results[i] = res
			reportProgress()
		}(i, stripe)
	}
	wg.Wait()

	var agg Aggregate
	for _, res := range results {
		agg.Matches = append(agg.Matches, res.Matches...)
		agg.Done += res.Done
		if res.HitCap {
			agg.HitCap = true
		}
		if res.Cancelled {
			agg.Cancelled = true
		}
	}
	return agg
}
