// Command previewer renders a solved match cloud to a PNG, a top-down
// (X,Z) scatter with scored matches tinted from green (best) to red
// (worst). Entirely decorative: the solver never reads this output back,
// it exists only so a human can sanity-check a crack visually. Grounded on
// cmd/shaderdebug's headless-render-to-texture-then-export pattern.
//
// Usage: go run ./cmd/previewer -matches matches.csv -out preview.png
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type point struct {
	x, z   int32
	score  uint32
	scored bool
}

func loadMatches(path string) ([]point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// First row is a header (x,y,z,score,scored); skip it.
	var points []point
	for _, row := range rows[1:] {
		if len(row) < 5 {
			continue
		}
		x, err := strconv.ParseInt(row[0], 10, 32)
		if err != nil {
			continue
		}
		z, err := strconv.ParseInt(row[2], 10, 32)
		if err != nil {
			continue
		}
		score, _ := strconv.ParseUint(row[3], 10, 32)
		scored, _ := strconv.ParseBool(row[4])
		points = append(points, point{x: int32(x), z: int32(z), score: uint32(score), scored: scored})
	}
	return points, nil
}

func bounds(points []point) (minX, maxX, minZ, maxZ int32) {
	if len(points) == 0 {
		return 0, 1, 0, 1
	}
	minX, maxX = points[0].x, points[0].x
	minZ, maxZ = points[0].z, points[0].z
	for _, p := range points[1:] {
		if p.x < minX {
			minX = p.x
		}
		if p.x > maxX {
			maxX = p.x
		}
		if p.z < minZ {
			minZ = p.z
		}
		if p.z > maxZ {
			maxZ = p.z
		}
	}
	if minX == maxX {
		maxX++
	}
	if minZ == maxZ {
		maxZ++
	}
	return minX, maxX, minZ, maxZ
}

func scoreTint(score, maxScore uint32) rl.Color {
	if maxScore == 0 {
		return rl.Green
	}
	t := float32(score) / float32(maxScore)
	if t > 1 {
		t = 1
	}
	return rl.Color{
		R: uint8(255 * t),
		G: uint8(255 * (1 - t)),
		B: 40,
		A: 255,
	}
}

func main() {
	matchesPath := flag.String("matches", "", "matches.csv exported by cmd/siftstone (required)")
	outPath := flag.String("out", "preview.png", "Output PNG path")
	width := flag.Int("width", 768, "Render width")
	height := flag.Int("height", 768, "Render height")
	margin := flag.Int("margin", 24, "Pixel margin around the plotted points")
	flag.Parse()

	if *matchesPath == "" {
		fmt.Fprintln(os.Stderr, "--matches is required")
		os.Exit(1)
	}

	points, err := loadMatches(*matchesPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	minX, maxX, minZ, maxZ := bounds(points)
	var maxScore uint32
	for _, p := range points {
		if p.scored && p.score > maxScore {
			maxScore = p.score
		}
	}

	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "siftstone previewer")
	defer rl.CloseWindow()

	target := rl.LoadRenderTexture(int32(*width), int32(*height))
	defer rl.UnloadRenderTexture(target)

	plotW := float32(*width - 2**margin)
	plotH := float32(*height - 2**margin)

	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Black)
	for _, p := range points {
		fx := float32(p.x-minX) / float32(maxX-minX)
		fz := float32(p.z-minZ) / float32(maxZ-minZ)
		px := int32(float32(*margin) + fx*plotW)
		pz := int32(float32(*margin) + fz*plotH)

		color := rl.RayWhite
		if p.scored {
			color = scoreTint(p.score, maxScore)
		}
		rl.DrawCircle(px, pz, 2, color)
	}
	gui.Label(
		rl.Rectangle{X: 4, Y: float32(*height - 20), Width: float32(*width - 8), Height: 16},
		fmt.Sprintf("%d matches  (green=best, red=worst)", len(points)),
	)
	rl.EndTextureMode()

	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)
	ok := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if !ok {
		fmt.Fprintln(os.Stderr, "failed to export preview image")
		os.Exit(1)
	}
	fmt.Printf("rendered %d points to %s (%dx%d)\n", len(points), *outPath, *width, *height)
}
