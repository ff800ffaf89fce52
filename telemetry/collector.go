package telemetry

import (
	"time"

	"github.com/harlowdev/siftstone/worker"
)

// Collector throttles the WorkerPool's live Progress callback down to a
// fixed UI-facing cadence, so a CLI front end doesn't print or redraw on
// every batch boundary from every worker.
type Collector struct {
	cadence  time.Duration
	lastSent time.Time
	sink     func(worker.Progress)
}

// NewCollector returns a Collector that forwards at most one Progress per
// cadence to sink, always forwarding the first one it sees.
func NewCollector(cadence time.Duration, sink func(worker.Progress)) *Collector {
	return &Collector{cadence: cadence, sink: sink}
}

// Observe is passed directly as a worker.Pool onProgress callback.
func (c *Collector) Observe(p worker.Progress) {
	if c.sink == nil {
		return
	}
	now := time.Now()
	if !c.lastSent.IsZero() && now.Sub(c.lastSent) < c.cadence {
		return
	}
	c.lastSent = now
	c.sink(p)
}
