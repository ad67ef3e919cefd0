package detection

import (
	"image"
	"math"
	"sort"

	"github.com/ironsheep/feature-tools-mcp/internal/features"
	"github.com/ironsheep/feature-tools-mcp/internal/geometry"
)

// maxLines caps how many Hough peaks are turned into segments.
const maxLines = 50

type houghPeak struct {
	rho   int
	theta int
	votes int
}

// DetectLines finds straight segments at least minLength pixels long using a
// Hough line transform and returns them as line features, strongest first.
//
// Peaks need minLength/2 votes and must be local maxima in a 5x5 window of
// (rho, theta) space. Each peak is traced back onto the edge map to find its
// endpoints. At most 50 segments are returned.
func DetectLines(img image.Image, minLength int) features.Collection {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	edges := detectEdges(img, width, height)

	maxDist := int(math.Sqrt(float64(width*width + height*height)))
	numAngles := 180
	accumulator := make([][]int, maxDist*2)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges[y][x] {
				continue
			}
			for theta := 0; theta < numAngles; theta++ {
				angle := float64(theta) * math.Pi / 180.0
				rho := float64(x)*math.Cos(angle) + float64(y)*math.Sin(angle)
				rhoIdx := int(rho) + maxDist
				if rhoIdx >= 0 && rhoIdx < maxDist*2 {
					accumulator[rhoIdx][theta]++
				}
			}
		}
	}

	peaks := make([]houghPeak, 0)
	threshold := minLength / 2
	if threshold < 1 {
		threshold = 1
	}
	for rhoIdx := 0; rhoIdx < maxDist*2; rhoIdx++ {
		for theta := 0; theta < numAngles; theta++ {
			votes := accumulator[rhoIdx][theta]
			if votes < threshold || !isHoughMax(accumulator, rhoIdx, theta, numAngles) {
				continue
			}
			peaks = append(peaks, houghPeak{rho: rhoIdx - maxDist, theta: theta, votes: votes})
		}
	}

	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].votes > peaks[j].votes
	})

	lines := make([]*features.Feature, 0)
	for _, peak := range peaks {
		if len(lines) >= maxLines {
			break
		}
		start, end, ok := traceSegment(edges, width, height, peak, minLength)
		if !ok {
			continue
		}
		offset := geometry.Pt(float64(bounds.Min.X), float64(bounds.Min.Y))
		lines = append(lines, features.NewLine(img,
			geometry.Pt(float64(start.X), float64(start.Y)).Add(offset),
			geometry.Pt(float64(end.X), float64(end.Y)).Add(offset)))
	}

	return features.NewCollection(lines...)
}

// isHoughMax reports whether the cell is not exceeded by its 5x5
// neighbourhood. Theta wraps around.
func isHoughMax(acc [][]int, rhoIdx, theta, numAngles int) bool {
	for dr := -2; dr <= 2; dr++ {
		for dt := -2; dt <= 2; dt++ {
			if dr == 0 && dt == 0 {
				continue
			}
			nr := rhoIdx + dr
			nt := (theta + dt + numAngles) % numAngles
			if nr >= 0 && nr < len(acc) && acc[nr][nt] > acc[rhoIdx][theta] {
				return false
			}
		}
	}
	return true
}

// traceSegment collects the edge pixels within 2px of the peak's line and
// returns the extreme ones along its direction.
func traceSegment(edges [][]bool, width, height int, peak houghPeak, minLength int) (pixel, pixel, bool) {
	angle := float64(peak.theta) * math.Pi / 180.0
	rho := float64(peak.rho)
	cosA := math.Cos(angle)
	sinA := math.Sin(angle)

	var start, end pixel
	count := 0
	minProj := math.MaxFloat64
	maxProj := -math.MaxFloat64
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges[y][x] {
				continue
			}
			if math.Abs(float64(x)*cosA+float64(y)*sinA-rho) >= 2.0 {
				continue
			}
			count++
			// Position along the line direction (sin, -cos).
			d := float64(x)*sinA - float64(y)*cosA
			if d < minProj {
				minProj = d
				start = pixel{X: x, Y: y}
			}
			if d > maxProj {
				maxProj = d
				end = pixel{X: x, Y: y}
			}
		}
	}

	if count < minLength {
		return pixel{}, pixel{}, false
	}
	length := math.Hypot(float64(end.X-start.X), float64(end.Y-start.Y))
	if length < float64(minLength) {
		return pixel{}, pixel{}, false
	}
	return start, end, true
}
