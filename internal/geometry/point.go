package geometry

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X float64 `json:"x"` // Horizontal position (0 = leftmost)
	Y float64 `json:"y"` // Vertical position (0 = topmost)
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// R2 converts the point to its golang/geo representation.
func (p Point) R2() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// FromR2 converts a golang/geo point back to a Point.
func FromR2(p r2.Point) Point {
	return Point{X: p.X, Y: p.Y}
}

// IsFinite reports whether both components are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return a.R2().Sub(b.R2()).Norm()
}

// DistanceSquared returns the squared Euclidean distance between two points.
// Radius tests compare against r*r to avoid the square root.
func DistanceSquared(a, b Point) float64 {
	d := a.R2().Sub(b.R2())
	return d.Dot(d)
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return FromR2(p.R2().Add(q.R2()))
}
