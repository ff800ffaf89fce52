// Package fixtures generates synthetic plant placements for tests,
// benchmarks, and the fixturegen CLI: clustered along simplex-noise
// contours rather than scattered uniformly, so the resulting field has the
// same "clumpy" spatial distribution a live biome scan would produce.
package fixtures

import (
	"github.com/ojrac/opensimplex-go"

	"github.com/harlowdev/siftstone/offsethash"
	"github.com/harlowdev/siftstone/plantkind"
	"github.com/harlowdev/siftstone/sampleset"
)

// Params configures a fixture run.
type Params struct {
	Seed        int64
	Count       int
	TrueOrigin  sampleset.BlockPos
	Version     offsethash.Version
	Spread      int32                 // half-width of the candidate window around TrueOrigin
	ClusterFreq float64               // simplex sample frequency; smaller = larger clumps
	Threshold   float64               // minimum noise value to accept a candidate, in [-1,1]
	Kinds       []plantkind.PlantKind // cycled round-robin; defaults to a mixed set
}

var defaultKinds = []plantkind.PlantKind{
	plantkind.KindShortGrass,
	plantkind.KindFern,
	plantkind.KindTallGrassLower,
	plantkind.KindPointedDripstone,
}

const defaultSpread int32 = 64
const defaultClusterFreq = 0.06
const defaultThreshold = 0.1

// Generate produces a synthetic placement set clustered along simplex-noise
// contours, with each placement's offset nibbles derived from a real
// offsethash.Packed12 evaluation at TrueOrigin plus its displacement — so
// running solver.Crack against the result matches at the first placement's
// position (TrueOrigin itself only when the spiral's centre point passes the
// noise threshold), giving ScanEngine throughput and WorkerPool partitioning
// something realistic to chew on without a live screenshot.
func Generate(p Params) []sampleset.Placement {
	kinds := p.Kinds
	if len(kinds) == 0 {
		kinds = defaultKinds
	}
	spread := p.Spread
	if spread <= 0 {
		spread = defaultSpread
	}
	freq := p.ClusterFreq
	if freq <= 0 {
		freq = defaultClusterFreq
	}
	threshold := p.Threshold
	if threshold == 0 {
		threshold = defaultThreshold
	}

	noise := opensimplex.New(p.Seed)
	placements := make([]sampleset.Placement, 0, p.Count)

	for _, pt := range spiralPoints(int(spread)*int(spread)*4 + 64) {
		if len(placements) >= p.Count {
			break
		}
		if pt.X < -spread || pt.X > spread || pt.Z < -spread || pt.Z > spread {
			continue
		}
		n := noise.Eval2(float64(pt.X)*freq, float64(pt.Z)*freq)
		if n < threshold {
			continue
		}

		kind := kinds[len(placements)%len(kinds)]
		pos := sampleset.BlockPos{X: p.TrueOrigin.X + pt.X, Y: p.TrueOrigin.Y, Z: p.TrueOrigin.Z + pt.Z}
		packed := offsethash.Packed12(pos.X, pos.Y, pos.Z, p.Version) & plantkind.MaskFor(kind)

		placements = append(placements, sampleset.Placement{
			Pos:  pos,
			Kind: kind,
			OX:   uint8(packed & 0xF),
			OY:   uint8((packed >> 4) & 0xF),
			OZ:   uint8((packed >> 8) & 0xF),
		})
	}
	return placements
}

type point struct{ X, Z int32 }

// spiralPoints walks an outward square spiral from the origin, covering
// each integer lattice point exactly once in increasing ring order, so
// Generate samples candidates from the inside out rather than scanning row
// by row.
func spiralPoints(n int) []point {
	pts := make([]point, 0, n)
	if n <= 0 {
		return pts
	}
	pts = append(pts, point{0, 0})

	dirX := [4]int32{1, 0, -1, 0}
	dirZ := [4]int32{0, 1, 0, -1}
	var x, z int32
	dir := 0
	steps := int32(1)
	for len(pts) < n {
		for side := 0; side < 2 && len(pts) < n; side++ {
			for s := int32(0); s < steps && len(pts) < n; s++ {
				x += dirX[dir]
				z += dirZ[dir]
				pts = append(pts, point{x, z})
			}
			dir = (dir + 1) % 4
		}
		steps++
	}
	return pts
}
