package detection

import (
	"image"
	"image/color"
	"testing"
)

// createTestImage creates a solid color test image
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createRectangleImage creates an image with a rectangle outline
func createRectangleImage(width, height int, rectX1, rectY1, rectX2, rectY2 int) *image.RGBA {
	img := createTestImage(width, height, color.White)

	for x := rectX1; x <= rectX2; x++ {
		img.Set(x, rectY1, color.Black)
		img.Set(x, rectY2, color.Black)
	}
	for y := rectY1; y <= rectY2; y++ {
		img.Set(rectX1, y, color.Black)
		img.Set(rectX2, y, color.Black)
	}

	return img
}

func emptyEdges(width, height int) [][]bool {
	edges := make([][]bool, height)
	for y := 0; y < height; y++ {
		edges[y] = make([]bool, width)
	}
	return edges
}

func TestDetectEdges(t *testing.T) {
	// Vertical black/white boundary at x=25
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			if x < 25 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}

	edges := detectEdges(img, 50, 50)

	for y := 1; y < 49; y++ {
		if !edges[y][24] {
			t.Fatalf("expected edge at (24,%d)", y)
		}
		if edges[y][10] || edges[y][40] {
			t.Fatalf("unexpected edge away from the boundary in row %d", y)
		}
	}
	for x := 0; x < 50; x++ {
		if edges[0][x] || edges[49][x] {
			t.Fatalf("border pixel (%d, 0|49) must not be an edge", x)
		}
	}
}

func TestDetectEdges_UniformImage(t *testing.T) {
	img := createTestImage(50, 50, color.RGBA{128, 128, 128, 255})

	edges := detectEdges(img, 50, 50)

	edgeCount := 0
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			if edges[y][x] {
				edgeCount++
			}
		}
	}
	if edgeCount != 0 {
		t.Errorf("Uniform image should have 0 edges, got %d", edgeCount)
	}
}

func TestDetectEdges_OffsetBounds(t *testing.T) {
	base := createRectangleImage(60, 60, 20, 20, 40, 40)
	sub := base.SubImage(image.Rect(10, 10, 50, 50))

	edges := detectEdges(sub, 40, 40)

	// The rectangle's left side at x=20 sits at column 10 of the sub image.
	if !edges[20][10] {
		t.Error("edge detection should respect non-zero image bounds")
	}
}

func TestFindContours(t *testing.T) {
	edges := emptyEdges(20, 20)
	for x := 5; x <= 15; x++ {
		edges[5][x] = true
		edges[15][x] = true
	}
	for y := 5; y <= 15; y++ {
		edges[y][5] = true
		edges[y][15] = true
	}
	// A speck below the noise floor.
	edges[1][1] = true
	edges[1][2] = true

	contours := findContours(edges, 20, 20)

	if len(contours) != 1 {
		t.Fatalf("Expected 1 contour, got %d", len(contours))
	}
	if len(contours[0]) != 40 {
		t.Errorf("Expected 40 pixels in the square outline, got %d", len(contours[0]))
	}
}

func TestFindContours_Empty(t *testing.T) {
	contours := findContours(emptyEdges(20, 20), 20, 20)

	if len(contours) != 0 {
		t.Errorf("Expected 0 contours in empty edge image, got %d", len(contours))
	}
}

func TestFloodFill(t *testing.T) {
	edges := emptyEdges(10, 10)
	visited := emptyEdges(10, 10)

	edges[5][5] = true
	edges[5][6] = true
	edges[6][5] = true
	edges[6][6] = true
	edges[0][0] = true

	var contour []pixel
	floodFill(edges, visited, 5, 5, 10, 10, &contour)

	if len(contour) != 4 {
		t.Errorf("Expected 4 points in contour, got %d", len(contour))
	}
	if !visited[5][5] || !visited[5][6] || !visited[6][5] || !visited[6][6] {
		t.Error("Flood fill should mark all visited points")
	}
	if visited[0][0] {
		t.Error("Flood fill should not reach disconnected pixels")
	}
}

func TestGrayValue(t *testing.T) {
	tests := []struct {
		name     string
		c        color.Color
		min, max uint8
	}{
		{"black", color.Black, 0, 0},
		{"white", color.White, 254, 255},
		{"red", color.RGBA{255, 0, 0, 255}, 70, 85},
		{"green", color.RGBA{0, 255, 0, 255}, 140, 160},
		{"blue", color.RGBA{0, 0, 255, 255}, 25, 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createTestImage(1, 1, tt.c)
			got := grayValue(img, 0, 0)
			if got < tt.min || got > tt.max {
				t.Errorf("grayValue(%s) = %d, want %d..%d", tt.name, got, tt.min, tt.max)
			}
		})
	}
}
