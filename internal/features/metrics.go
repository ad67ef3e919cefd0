package features

import (
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/ironsheep/feature-tools-mcp/internal/geometry"
)

// X returns the x coordinate of every feature.
func (c Collection) X() []float64 {
	return lo.Map(c.features, func(f *Feature, _ int) float64 { return f.X })
}

// Y returns the y coordinate of every feature.
func (c Collection) Y() []float64 {
	return lo.Map(c.features, func(f *Feature, _ int) float64 { return f.Y })
}

// Coordinates returns (X, Y) of every feature.
func (c Collection) Coordinates() []geometry.Point {
	return lo.Map(c.features, func(f *Feature, _ int) geometry.Point { return f.Coordinates() })
}

// Area returns the area of every feature.
func (c Collection) Area() []float64 {
	return mapParallel(c.features, (*Feature).Area)
}

// Angle returns the heading of every feature in degrees.
func (c Collection) Angle() []float64 {
	return lo.Map(c.features, func(f *Feature, _ int) float64 { return f.Angle() })
}

// Length returns the length of every feature.
func (c Collection) Length() []float64 {
	return mapParallel(c.features, (*Feature).Length)
}

// Width returns the width of every feature.
func (c Collection) Width() []float64 {
	return mapParallel(c.features, (*Feature).Width)
}

// Height returns the height of every feature.
func (c Collection) Height() []float64 {
	return mapParallel(c.features, (*Feature).Height)
}

// MeanColor returns the mean color of every feature.
func (c Collection) MeanColor() []colorful.Color {
	return mapParallel(c.features, (*Feature).MeanColor)
}

// DistanceFrom returns the distance from every feature's (X, Y) to p.
func (c Collection) DistanceFrom(p geometry.Point) []float64 {
	return lo.Map(c.features, func(f *Feature, _ int) float64 { return f.DistanceFrom(p) })
}

// DistanceFromCenter returns the distance of every feature from the center of
// the collection's image.
func (c Collection) DistanceFromCenter() []float64 {
	return c.DistanceFrom(imageCenter(c.Image()))
}

// ColorDistance returns the RGB distance (0-255 scale) between every feature's
// mean color and col.
func (c Collection) ColorDistance(col colorful.Color) []float64 {
	return mapParallel(c.features, func(f *Feature) float64 { return f.ColorDistance(col) })
}

// DistancePairs returns the symmetric matrix of distances between the
// features' (X, Y) coordinates. An empty collection yields an empty matrix.
func (c Collection) DistancePairs() *mat.SymDense {
	n := len(c.features)
	if n == 0 {
		return &mat.SymDense{}
	}
	coords := lo.Map(c.features, func(f *Feature, _ int) []float64 { return []float64{f.X, f.Y} })
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m.SetSym(i, j, floats.Distance(coords[i], coords[j], 2))
		}
	}
	return m
}
