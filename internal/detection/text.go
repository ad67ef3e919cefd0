package detection

import (
	"image"
	"math"
	"sort"

	"github.com/ironsheep/feature-tools-mcp/internal/features"
	"github.com/ironsheep/feature-tools-mcp/internal/geometry"
)

type textCandidate struct {
	box        geometry.Extents
	confidence float64
}

// textWindows are the sliding window sizes tried, roughly matching common
// text line heights.
var textWindows = []struct{ w, h int }{
	{100, 30},
	{150, 40},
	{200, 50},
	{80, 25},
}

// DetectTextRegions finds rectangular regions that look like lines of text
// and returns them as box-shaped blob features, most confident first.
//
// A window qualifies when its edge density is between 5% and 40% and its edge
// runs are mostly horizontal. Confidence peaks at a density of 20%.
// Overlapping windows are merged into their union.
func DetectTextRegions(img image.Image, minConfidence float64) features.Collection {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	edges := detectEdges(img, width, height)

	candidates := make([]textCandidate, 0)
	for _, ws := range textWindows {
		stepX := ws.w / 2
		stepY := ws.h / 2

		for y := 0; y <= height-ws.h; y += stepY {
			for x := 0; x <= width-ws.w; x += stepX {
				edgeCount := 0
				for wy := 0; wy < ws.h; wy++ {
					for wx := 0; wx < ws.w; wx++ {
						if edges[y+wy][x+wx] {
							edgeCount++
						}
					}
				}

				density := float64(edgeCount) / float64(ws.w*ws.h)
				if density < 0.05 || density > 0.4 {
					continue
				}

				confidence := horizontalScore(edges, x, y, ws.w, ws.h) * (1.0 - math.Abs(density-0.2)/0.2)
				if confidence < minConfidence {
					continue
				}
				candidates = append(candidates, textCandidate{
					box: geometry.BoxExtents(
						float64(x+bounds.Min.X), float64(y+bounds.Min.Y), float64(ws.w), float64(ws.h)),
					confidence: math.Round(confidence*1000) / 1000,
				})
			}
		}
	}

	merged := mergeOverlapping(candidates)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].confidence > merged[j].confidence
	})

	regions := make([]*features.Feature, len(merged))
	for i, m := range merged {
		regions[i] = features.NewBlob(img, m.box.Corners())
	}
	return features.NewCollection(regions...)
}

// horizontalScore is the share of horizontal edge runs among all runs in the
// window. Text has more horizontal structure than vertical.
func horizontalScore(edges [][]bool, x, y, w, h int) float64 {
	horizontalRuns := 0
	verticalRuns := 0

	for row := y; row < y+h; row++ {
		inRun := false
		for col := x; col < x+w; col++ {
			if edges[row][col] {
				if !inRun {
					horizontalRuns++
					inRun = true
				}
			} else {
				inRun = false
			}
		}
	}

	for col := x; col < x+w; col++ {
		inRun := false
		for row := y; row < y+h; row++ {
			if edges[row][col] {
				if !inRun {
					verticalRuns++
					inRun = true
				}
			} else {
				inRun = false
			}
		}
	}

	if horizontalRuns+verticalRuns == 0 {
		return 0
	}
	return float64(horizontalRuns) / float64(horizontalRuns+verticalRuns)
}

// mergeOverlapping folds every candidate into the first kept region it
// overlaps, growing that region to the union.
func mergeOverlapping(candidates []textCandidate) []textCandidate {
	merged := make([]textCandidate, 0, len(candidates))
	for _, c := range candidates {
		foundMerge := false
		for i := range merged {
			if boxesOverlap(c.box, merged[i].box) {
				merged[i].box = unionExtents(c.box, merged[i].box)
				merged[i].confidence = math.Max(c.confidence, merged[i].confidence)
				foundMerge = true
				break
			}
		}
		if !foundMerge {
			merged = append(merged, c)
		}
	}
	return merged
}

// boxesOverlap reports whether the open interiors of a and b intersect.
func boxesOverlap(a, b geometry.Extents) bool {
	return a.MinX < b.MaxX && a.MaxX > b.MinX && a.MinY < b.MaxY && a.MaxY > b.MinY
}

func unionExtents(a, b geometry.Extents) geometry.Extents {
	return geometry.Extents{
		MinX: math.Min(a.MinX, b.MinX),
		MinY: math.Min(a.MinY, b.MinY),
		MaxX: math.Max(a.MaxX, b.MaxX),
		MaxY: math.Max(a.MaxY, b.MaxY),
	}
}
