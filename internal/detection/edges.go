package detection

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// edgeThreshold is the grayscale step between neighbours that marks an edge.
const edgeThreshold = 30.0

// minContourPixels drops contours smaller than this as noise.
const minContourPixels = 10

// pixel is an integer coordinate relative to the image origin.
type pixel struct {
	X, Y int
}

// detectEdges performs simple gradient-based edge detection.
//
// A pixel is an edge when its grayscale value differs by more than
// edgeThreshold from its right or lower neighbour. Border pixels are never
// edges. Rows are processed in parallel.
func detectEdges(img image.Image, width, height int) [][]bool {
	bounds := img.Bounds()
	edges := make([][]bool, height)

	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			edges[y] = make([]bool, width)
			if y == 0 || y == height-1 {
				continue
			}
			for x := 1; x < width-1; x++ {
				c := float64(grayValue(img, x+bounds.Min.X, y+bounds.Min.Y))
				cx := float64(grayValue(img, x+1+bounds.Min.X, y+bounds.Min.Y))
				cy := float64(grayValue(img, x+bounds.Min.X, y+1+bounds.Min.Y))

				if math.Abs(c-cx) > edgeThreshold || math.Abs(c-cy) > edgeThreshold {
					edges[y][x] = true
				}
			}
		}
	})

	return edges
}

// findContours groups 8-connected edge pixels. Contours smaller than
// minContourPixels are discarded.
func findContours(edges [][]bool, width, height int) [][]pixel {
	visited := make([][]bool, height)
	for y := 0; y < height; y++ {
		visited[y] = make([]bool, width)
	}

	contours := make([][]pixel, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges[y][x] && !visited[y][x] {
				contour := make([]pixel, 0)
				floodFill(edges, visited, x, y, width, height, &contour)
				if len(contour) >= minContourPixels {
					contours = append(contours, contour)
				}
			}
		}
	}
	return contours
}

// floodFill collects the edge pixels connected to (startX, startY) using an
// explicit stack.
func floodFill(edges, visited [][]bool, startX, startY, width, height int, contour *[]pixel) {
	stack := []pixel{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !edges[p.Y][p.X] {
			continue
		}

		visited[p.Y][p.X] = true
		*contour = append(*contour, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, pixel{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
}

// grayValue converts a pixel to grayscale using ITU-R BT.601 luminance weights.
func grayValue(img image.Image, x, y int) uint8 {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(float64(r>>8)*0.299 + float64(g>>8)*0.587 + float64(b>>8)*0.114)
}
