package sampleset

import (
	"testing"

	"github.com/harlowdev/siftstone/plantkind"
)

func TestBuildRejectsFewerThanTwoSamples(t *testing.T) {
	_, warn := Build(nil)
	if warn == nil {
		t.Fatal("expected a warning for an empty placement list")
	}
	_, warn = Build([]Placement{{Pos: BlockPos{}, Kind: plantkind.KindShortGrass}})
	if warn == nil {
		t.Fatal("expected a warning for a single placement")
	}
}

func TestBuildUsesFirstPlacementAsOrigin(t *testing.T) {
	placements := []Placement{
		{Pos: BlockPos{X: 10, Y: 64, Z: 10}, Kind: plantkind.KindShortGrass, OX: 1, OY: 15, OZ: 1},
		{Pos: BlockPos{X: 12, Y: 64, Z: 8}, Kind: plantkind.KindFern, OX: 2, OY: 15, OZ: 2},
	}
	ss, warn := Build(placements)
	if warn != nil {
		t.Fatalf("unexpected warning: %v", warn)
	}
	if ss.Origin != placements[0].Pos {
		t.Errorf("Origin = %+v, want first placement's position %+v", ss.Origin, placements[0].Pos)
	}
}

func TestBuildSortsByDescendingManhattanDistance(t *testing.T) {
	placements := []Placement{
		{Pos: BlockPos{X: 0, Y: 0, Z: 0}, Kind: plantkind.KindShortGrass, OX: 1, OY: 15, OZ: 1},
		{Pos: BlockPos{X: 1, Y: 0, Z: 0}, Kind: plantkind.KindShortGrass, OX: 1, OY: 15, OZ: 1},
		{Pos: BlockPos{X: 5, Y: 0, Z: 0}, Kind: plantkind.KindShortGrass, OX: 1, OY: 15, OZ: 1},
		{Pos: BlockPos{X: 3, Y: 0, Z: 0}, Kind: plantkind.KindShortGrass, OX: 1, OY: 15, OZ: 1},
	}
	ss, warn := Build(placements)
	if warn != nil {
		t.Fatalf("unexpected warning: %v", warn)
	}
	for i := 1; i < len(ss.Samples); i++ {
		prevDist := manhattan(ss.Samples[i-1].DX, ss.Samples[i-1].DY, ss.Samples[i-1].DZ)
		curDist := manhattan(ss.Samples[i].DX, ss.Samples[i].DY, ss.Samples[i].DZ)
		if prevDist < curDist {
			t.Fatalf("samples not sorted by descending distance at index %d: %d < %d", i, prevDist, curDist)
		}
	}
	// Farthest (distance 5) must come first.
	if ss.Samples[0].DX != 5 {
		t.Errorf("first sample DX = %d, want 5 (farthest from origin)", ss.Samples[0].DX)
	}
}

func TestBuildStableTiebreakOnEqualDistance(t *testing.T) {
	placements := []Placement{
		{Pos: BlockPos{X: 0, Y: 0, Z: 0}, Kind: plantkind.KindShortGrass, OX: 1, OY: 15, OZ: 1},
		{Pos: BlockPos{X: 2, Y: 0, Z: 0}, Kind: plantkind.KindFern, OX: 2, OY: 15, OZ: 2},
		{Pos: BlockPos{X: 0, Y: 0, Z: 2}, Kind: plantkind.KindShortDryGrass, OX: 3, OY: 15, OZ: 3},
	}
	ss, warn := Build(placements)
	if warn != nil {
		t.Fatalf("unexpected warning: %v", warn)
	}
	// Both non-origin placements are at Manhattan distance 2 from origin;
	// input order (Fern before ShortDryGrass) must be preserved as a tiebreak.
	if ss.Samples[0].Kind != plantkind.KindFern || ss.Samples[1].Kind != plantkind.KindShortDryGrass {
		t.Errorf("tiebreak did not preserve input order: got kinds %v, %v", ss.Samples[0].Kind, ss.Samples[1].Kind)
	}
}

func TestBuildMasksAndDripFlag(t *testing.T) {
	placements := []Placement{
		{Pos: BlockPos{X: 0, Y: 0, Z: 0}, Kind: plantkind.KindShortGrass, OX: 1, OY: 2, OZ: 3},
		{Pos: BlockPos{X: 1, Y: 1, Z: 1}, Kind: plantkind.KindPointedDripstone, OX: 4, OY: 5, OZ: 6},
		{Pos: BlockPos{X: 2, Y: 2, Z: 2}, Kind: plantkind.KindTallGrassLower, OX: 7, OY: 8, OZ: 9},
	}
	ss, warn := Build(placements)
	if warn != nil {
		t.Fatalf("unexpected warning: %v", warn)
	}
	for _, s := range ss.Samples {
		switch s.Kind {
		case plantkind.KindShortGrass:
			if s.Mask != plantkind.MaskXYZ {
				t.Errorf("ShortGrass mask = %x, want XYZ mask", s.Mask)
			}
			if s.Drip {
				t.Error("ShortGrass should not be flagged drip")
			}
		case plantkind.KindPointedDripstone:
			if !s.Drip {
				t.Error("PointedDripstone should be flagged drip")
			}
		case plantkind.KindTallGrassLower:
			if s.Mask != plantkind.MaskXZ {
				t.Errorf("TallGrassLower mask = %x, want XZ mask", s.Mask)
			}
			if s.Packed&0xF0 != 0 {
				t.Errorf("XZ-family packed value should have OY nibble masked out, got %x", s.Packed)
			}
		}
	}
}
