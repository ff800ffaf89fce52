package sampleset

import (
	"strings"
	"testing"

	"github.com/harlowdev/siftstone/plantkind"
)

func TestDecodeTextBasic(t *testing.T) {
	input := `
# a comment line
100 64 200  7 15 7  SHORT_GRASS
103 64 205  3 15 9  TALL_GRASS // trailing comment
`
	placements, err := DecodeText(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if len(placements) != 2 {
		t.Fatalf("len(placements) = %d, want 2", len(placements))
	}
	if placements[0].Pos != (BlockPos{X: 100, Y: 64, Z: 200}) {
		t.Errorf("placements[0].Pos = %+v", placements[0].Pos)
	}
	if placements[0].Kind != plantkind.KindShortGrass {
		t.Errorf("placements[0].Kind = %v, want KindShortGrass", placements[0].Kind)
	}
	if placements[1].OX != 3 || placements[1].OY != 15 || placements[1].OZ != 9 {
		t.Errorf("placements[1] offsets = %d,%d,%d", placements[1].OX, placements[1].OY, placements[1].OZ)
	}
}

func TestDecodeTextRejectsOutOfRangeNibble(t *testing.T) {
	_, err := DecodeText(strings.NewReader("0 0 0  16 0 0  short_grass"))
	if err == nil {
		t.Fatal("expected an error for an out-of-range nibble")
	}
}

func TestDecodeTextRejectsTooFewFields(t *testing.T) {
	_, err := DecodeText(strings.NewReader("0 0 0 1 1"))
	if err == nil {
		t.Fatal("expected an error for a line with too few fields")
	}
}

func TestDecodeTextUnknownKindDefaultsUnknown(t *testing.T) {
	placements, err := DecodeText(strings.NewReader("0 0 0  1 1 1  not_a_real_kind"))
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if placements[0].Kind != plantkind.KindUnknown {
		t.Errorf("Kind = %v, want KindUnknown for an unrecognized token", placements[0].Kind)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	placements := []Placement{
		{Pos: BlockPos{X: 100, Y: 64, Z: 200}, Kind: plantkind.KindShortGrass, OX: 5, OY: 6, OZ: 7},
		{Pos: BlockPos{X: 95, Y: 63, Z: 210}, Kind: plantkind.KindTallGrassLower, OX: 2, OY: 9, OZ: 11},
	}
	ss, warn := Build(placements)
	if warn != nil {
		t.Fatalf("unexpected warning: %v", warn)
	}

	encoded := EncodeText(ss)
	decoded, err := DecodeText(strings.NewReader(string(encoded)))
	if err != nil {
		t.Fatalf("DecodeText(EncodeText(...)): %v", err)
	}
	if len(decoded) != len(placements) {
		t.Fatalf("round trip changed placement count: got %d, want %d", len(decoded), len(placements))
	}

	rebuilt, warn := Build(decoded)
	if warn != nil {
		t.Fatalf("unexpected warning rebuilding: %v", warn)
	}
	if rebuilt.Origin != ss.Origin {
		t.Errorf("round trip changed origin: got %+v, want %+v", rebuilt.Origin, ss.Origin)
	}
	for i := range ss.Samples {
		a, b := ss.Samples[i], rebuilt.Samples[i]
		if a.Kind != b.Kind || a.Mask != b.Mask || a.Drip != b.Drip {
			t.Errorf("sample %d metadata changed across round trip: %+v vs %+v", i, a, b)
		}
		// The OY=15 written for the XZ family is masked out again by Build,
		// so every sample's Packed must survive the round trip unchanged.
		if a.Packed != b.Packed {
			t.Errorf("sample %d packed changed across round trip: %x vs %x", i, a.Packed, b.Packed)
		}
	}
}

func TestEncodeTextForcesOY15ForXZFamily(t *testing.T) {
	placements := []Placement{
		{Pos: BlockPos{X: 0, Y: 0, Z: 0}, Kind: plantkind.KindTallGrassLower, OX: 1, OY: 1, OZ: 1},
		{Pos: BlockPos{X: 1, Y: 0, Z: 0}, Kind: plantkind.KindTallGrassLower, OX: 2, OY: 1, OZ: 1},
	}
	ss, warn := Build(placements)
	if warn != nil {
		t.Fatalf("unexpected warning: %v", warn)
	}
	lines := strings.Split(strings.TrimSpace(string(EncodeText(ss))), "\n")
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 5 {
			t.Fatalf("malformed encoded line: %q", line)
		}
		if fields[4] != "15" {
			t.Errorf("encoded OY = %s, want 15 for XZ-family kind, line %q", fields[4], line)
		}
	}
}
