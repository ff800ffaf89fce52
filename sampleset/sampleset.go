// Package sampleset builds the solver's core input — an ordered, masked,
// distance-sorted list of samples relative to an origin placement — from the
// host's raw placement list, and implements the persisted text import/export
// format used to round-trip a placement set to disk.
package sampleset

import (
	"sort"

	"github.com/harlowdev/siftstone/plantkind"
)

// Sample is one placement expressed relative to the SampleSet's origin, with
// its packed offset already masked to the axes that participate in
// comparison.
type Sample struct {
	DX, DY, DZ int32
	Packed     uint16
	Mask       uint16
	Drip       bool
	Kind       plantkind.PlantKind
}

// SampleSet is the frozen input to a scan: an absolute origin position and
// the samples built relative to it, ordered by descending Manhattan distance
// from the origin so the scan engine rejects mismatches as early as
// possible.
type SampleSet struct {
	Origin  BlockPos
	Samples []Sample
}

// Warning describes a non-fatal reason a SampleSet could not be built.
type Warning struct {
	Reason string
}

func (w *Warning) Error() string { return w.Reason }

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func manhattan(dx, dy, dz int32) int64 {
	return int64(abs32(dx)) + int64(abs32(dy)) + int64(abs32(dz))
}

// Build validates the placement count, computes each sample's mask/drip/packed
// fields, picks the first placement as origin, computes relative
// displacements, and sorts by descending Manhattan distance from the origin
// with input-order as a tiebreak.
func Build(placements []Placement) (SampleSet, *Warning) {
	if len(placements) < 2 {
		return SampleSet{}, &Warning{Reason: "need at least 2 samples"}
	}

	origin := placements[0].Pos

	type indexed struct {
		idx    int
		sample Sample
		dist   int64
	}
	indexedSamples := make([]indexed, len(placements))

	for i, pl := range placements {
		mask := plantkind.MaskFor(pl.Kind)
		drip := plantkind.IsDripstone(pl.Kind)
		packed := (uint16(pl.OX) | uint16(pl.OY)<<4 | uint16(pl.OZ)<<8) & mask

		dx, dy, dz := pl.Pos.Sub(origin)
		indexedSamples[i] = indexed{
			idx: i,
			sample: Sample{
				DX:     dx,
				DY:     dy,
				DZ:     dz,
				Packed: packed,
				Mask:   mask,
				Drip:   drip,
				Kind:   pl.Kind,
			},
			dist: manhattan(dx, dy, dz),
		}
	}

	sort.SliceStable(indexedSamples, func(a, b int) bool {
		if indexedSamples[a].dist != indexedSamples[b].dist {
			return indexedSamples[a].dist > indexedSamples[b].dist
		}
		return indexedSamples[a].idx < indexedSamples[b].idx
	})

	samples := make([]Sample, len(indexedSamples))
	for i, s := range indexedSamples {
		samples[i] = s.sample
	}

	return SampleSet{Origin: origin, Samples: samples}, nil
}
