package sampleset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/harlowdev/siftstone/plantkind"
)

// stripComment removes a trailing "# ..." or "// ..." comment from a line.
func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}
	return line
}

// DecodeText parses the persisted placement text format:
//
//	bx by bz  ox oy oz  KIND [variantToken]
//
// one placement per non-empty line, trailing "#"/"//" comments stripped. Six
// integers are required; KIND resolves canonical names and legacy aliases via
// plantkind.ParseKind. Any variantToken is parsed but discarded — the solver
// never consults it, it only exists so the host can restore visual state.
func DecodeText(r io.Reader) ([]Placement, error) {
	var out []Placement
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(stripComment(scanner.Text()))
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 7 {
			return nil, fmt.Errorf("line %d: expected at least 7 fields (bx by bz ox oy oz KIND), got %d", lineNo, len(fields))
		}

		ints := make([]int64, 6)
		for i := 0; i < 6; i++ {
			v, err := strconv.ParseInt(fields[i], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: field %d: %w", lineNo, i+1, err)
			}
			ints[i] = v
		}
		for i := 3; i < 6; i++ {
			if ints[i] < 0 || ints[i] > 15 {
				return nil, fmt.Errorf("line %d: nibble %d out of range [0,15]: %d", lineNo, i-2, ints[i])
			}
		}

		kind := plantkind.ParseKind(fields[6])
		// fields[7], if present, is the decorative variantToken — discarded.

		out = append(out, Placement{
			Pos:  BlockPos{X: int32(ints[0]), Y: int32(ints[1]), Z: int32(ints[2])},
			OX:   uint8(ints[3]),
			OY:   uint8(ints[4]),
			OZ:   uint8(ints[5]),
			Kind: kind,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading placements: %w", err)
	}
	return out, nil
}

// EncodeText serializes a SampleSet back to the persisted text format,
// reconstructing each sample's absolute block position from the origin and
// its displacement. For the XZ axis-mask family, OY is written as 15
// (unconditionally ignored on reload). The origin sample (DX==DY==DZ==0) is
// always written first, regardless of where Build's distance sort left it —
// Build picks the first line of a decoded file as the new origin, and
// Samples is sorted by descending distance from the origin, so the origin
// sample itself is the one placement that sort never puts first. Writing it
// out of order here is what makes DecodeText+Build recover the same origin.
func EncodeText(ss SampleSet) []byte {
	var b strings.Builder
	writeSample := func(s Sample) {
		pos := BlockPos{
			X: ss.Origin.X + s.DX,
			Y: ss.Origin.Y + s.DY,
			Z: ss.Origin.Z + s.DZ,
		}
		ox := uint8(s.Packed & 0xF)
		oy := uint8((s.Packed >> 4) & 0xF)
		oz := uint8((s.Packed >> 8) & 0xF)
		if s.Mask == plantkind.MaskXZ {
			oy = 15
		}
		fmt.Fprintf(&b, "%d %d %d  %d %d %d  %s\n", pos.X, pos.Y, pos.Z, ox, oy, oz, s.Kind.String())
	}

	originIdx := -1
	for i, s := range ss.Samples {
		if s.DX == 0 && s.DY == 0 && s.DZ == 0 {
			originIdx = i
			break
		}
	}
	if originIdx >= 0 {
		writeSample(ss.Samples[originIdx])
	}
	for i, s := range ss.Samples {
		if i == originIdx {
			continue
		}
		writeSample(s)
	}
	return []byte(b.String())
}
