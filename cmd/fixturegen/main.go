// Package main emits a synthetic, noise-clustered placement file for
// exercising the scan engine and worker pool at scale without a live
// screenshot.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/harlowdev/siftstone/fixtures"
	"github.com/harlowdev/siftstone/offsethash"
	"github.com/harlowdev/siftstone/sampleset"
)

func main() {
	seed := flag.Int64("seed", 1, "Noise seed")
	count := flag.Int("count", 64, "Number of placements to generate")
	originX := flag.Int("origin-x", 0, "True origin X the generated placements will hash-agree with")
	originY := flag.Int("origin-y", 64, "True origin Y")
	originZ := flag.Int("origin-z", 0, "True origin Z")
	spread := flag.Int("spread", 64, "Half-width of the candidate window around the origin")
	classic := flag.Bool("classic", false, "Use the classic hash variant instead of modern")
	out := flag.String("out", "", "Output path for the placement text file (required)")
	flag.Parse()

	if *out == "" {
		log.Fatal("--out is required")
	}

	version := offsethash.Modern
	if *classic {
		version = offsethash.Classic
	}

	placements := fixtures.Generate(fixtures.Params{
		Seed:       *seed,
		Count:      *count,
		TrueOrigin: sampleset.BlockPos{X: int32(*originX), Y: int32(*originY), Z: int32(*originZ)},
		Version:    version,
		Spread:     int32(*spread),
	})
	if len(placements) < 2 {
		log.Fatalf("generated only %d placements, need at least 2 (try a larger --spread)", len(placements))
	}

	ss, warn := sampleset.Build(placements)
	if warn != nil {
		log.Fatalf("building sample set: %v", warn)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("creating %s: %v", *out, err)
	}
	defer f.Close()

	if _, err := f.Write(sampleset.EncodeText(ss)); err != nil {
		log.Fatalf("writing %s: %v", *out, err)
	}
	log.Printf("wrote %d placements to %s (true origin %d,%d,%d)", len(placements), *out, *originX, *originY, *originZ)
}
