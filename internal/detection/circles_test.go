package detection

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/feature-tools-mcp/internal/features"
)

// createCircleImage creates an image with a circle outline
func createCircleImage(width, height, cx, cy, radius int) *image.RGBA {
	img := createTestImage(width, height, color.White)

	// Midpoint circle algorithm
	x := radius
	y := 0
	err := 0

	for x >= y {
		img.Set(cx+x, cy+y, color.Black)
		img.Set(cx+y, cy+x, color.Black)
		img.Set(cx-y, cy+x, color.Black)
		img.Set(cx-x, cy+y, color.Black)
		img.Set(cx-x, cy-y, color.Black)
		img.Set(cx-y, cy-x, color.Black)
		img.Set(cx+y, cy-x, color.Black)
		img.Set(cx+x, cy-y, color.Black)

		if err <= 0 {
			y++
			err += 2*y + 1
		}
		if err > 0 {
			x--
			err -= 2*x + 1
		}
	}

	return img
}

func TestDetectCircles(t *testing.T) {
	img := createCircleImage(100, 100, 50, 50, 20)

	circles := DetectCircles(img, 15, 25)
	t.Logf("Detected %d circles", circles.Len())

	for i := 0; i < circles.Len(); i++ {
		c := circles.At(i)
		if c.Kind != features.KindCircle {
			t.Errorf("circle %d: expected circle kind, got %s", i, c.Kind)
		}
		if c.Radius < 15 || c.Radius > 25 {
			t.Errorf("circle %d: radius %g outside [15,25]", i, c.Radius)
		}
		if c.Image != img {
			t.Errorf("circle %d: not bound to the source image", i)
		}
	}
}

func TestDetectCircles_InvertedRange(t *testing.T) {
	img := createCircleImage(100, 100, 50, 50, 20)

	if got := DetectCircles(img, 30, 10).Len(); got != 0 {
		t.Errorf("Expected no circles for an inverted radius range, got %d", got)
	}
}

func TestDetectCircles_EmptyImage(t *testing.T) {
	img := createTestImage(100, 100, color.White)

	if got := DetectCircles(img, 5, 50).Len(); got != 0 {
		t.Errorf("Expected 0 circles in empty image, got %d", got)
	}
}

func TestFilterDuplicateCircles(t *testing.T) {
	circles := []circleCandidate{
		{x: 50, y: 50, radius: 20, confidence: 0.9},
		{x: 52, y: 51, radius: 20, confidence: 0.8}, // duplicate
		{x: 100, y: 100, radius: 15, confidence: 0.7},
	}

	filtered := filterDuplicateCircles(circles)

	if len(filtered) != 2 {
		t.Fatalf("Expected 2 circles after filtering, got %d", len(filtered))
	}
	if filtered[0].confidence != 0.9 {
		t.Errorf("The first candidate should win, got confidence %g", filtered[0].confidence)
	}
}

func TestFilterDuplicateCircles_Empty(t *testing.T) {
	if got := filterDuplicateCircles(nil); len(got) != 0 {
		t.Errorf("Expected 0 circles, got %d", len(got))
	}
}

func TestIsLocalMax(t *testing.T) {
	acc := [][]int{
		{0, 1, 0},
		{1, 5, 1},
		{0, 7, 0},
	}
	if isLocalMax(acc, 1, 1, 1) {
		t.Error("center is exceeded by a neighbour")
	}
	if !isLocalMax(acc, 1, 2, 1) {
		t.Error("bottom middle should be a local maximum")
	}
}
