package detection

import (
	"image"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/feature-tools-mcp/internal/features"
)

// circleCandidate is an accumulator peak before duplicate removal.
type circleCandidate struct {
	x, y, radius int
	confidence   float64
}

// DetectCircles finds circles with a radius in [minRadius, maxRadius] using a
// Hough circle transform and returns them as circle features, most confident
// first.
//
// Each edge pixel votes every 10 degrees for the centers it could belong to.
// A center needs votes from about 60% of 2*radius and must be the local
// maximum in an 11x11 window. Candidates whose centers are closer than the
// mean of their radii are merged, keeping the more confident one.
//
// Radii are searched in parallel. Time is O(width * height * radii * 36).
func DetectCircles(img image.Image, minRadius, maxRadius int) features.Collection {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if minRadius < 1 {
		minRadius = 1
	}
	if maxRadius < minRadius {
		return features.NewCollection()
	}

	edges := detectEdges(img, width, height)

	perRadius := make([][]circleCandidate, maxRadius-minRadius+1)
	parallel.Line(len(perRadius), func(start, end int) {
		for i := start; i < end; i++ {
			perRadius[i] = houghCircles(edges, width, height, minRadius+i)
		}
	})

	candidates := make([]circleCandidate, 0)
	for _, c := range perRadius {
		candidates = append(candidates, c...)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].confidence > candidates[j].confidence
	})

	kept := filterDuplicateCircles(candidates)
	circles := make([]*features.Feature, len(kept))
	for i, c := range kept {
		circles[i] = features.NewCircle(img,
			float64(c.x+bounds.Min.X), float64(c.y+bounds.Min.Y), float64(c.radius))
	}
	return features.NewCollection(circles...)
}

// houghCircles votes for centers of circles with the given radius.
func houghCircles(edges [][]bool, width, height, radius int) []circleCandidate {
	accumulator := make([][]int, height)
	for y := 0; y < height; y++ {
		accumulator[y] = make([]int, width)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges[y][x] {
				continue
			}
			for angle := 0; angle < 360; angle += 10 {
				rad := float64(angle) * math.Pi / 180
				cx := x - int(float64(radius)*math.Cos(rad))
				cy := y - int(float64(radius)*math.Sin(rad))
				if cx >= 0 && cx < width && cy >= 0 && cy < height {
					accumulator[cy][cx]++
				}
			}
		}
	}

	found := make([]circleCandidate, 0)
	threshold := int(float64(2*radius) * 0.6)
	if threshold < 1 {
		threshold = 1
	}
	for y := radius; y < height-radius; y++ {
		for x := radius; x < width-radius; x++ {
			votes := accumulator[y][x]
			if votes < threshold || !isLocalMax(accumulator, x, y, 5) {
				continue
			}
			found = append(found, circleCandidate{
				x:          x,
				y:          y,
				radius:     radius,
				confidence: math.Min(float64(votes)/float64(2*radius), 1.0),
			})
		}
	}
	return found
}

// isLocalMax reports whether acc[y][x] is not exceeded within the window of
// the given half size.
func isLocalMax(acc [][]int, x, y, half int) bool {
	height := len(acc)
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			if dy == 0 && dx == 0 {
				continue
			}
			ny, nx := y+dy, x+dx
			if ny < 0 || ny >= height || nx < 0 || nx >= len(acc[ny]) {
				continue
			}
			if acc[ny][nx] > acc[y][x] {
				return false
			}
		}
	}
	return true
}

// filterDuplicateCircles drops candidates whose center lies closer than the
// mean radius to an already kept candidate.
func filterDuplicateCircles(circles []circleCandidate) []circleCandidate {
	filtered := make([]circleCandidate, 0, len(circles))
	for _, c := range circles {
		isDuplicate := false
		for _, f := range filtered {
			dx := float64(c.x - f.x)
			dy := float64(c.y - f.y)
			if math.Hypot(dx, dy) < float64(c.radius+f.radius)/2 {
				isDuplicate = true
				break
			}
		}
		if !isDuplicate {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
