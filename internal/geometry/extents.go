package geometry

import (
	"github.com/golang/geo/r2"
)

// Extents is an axis-aligned bounding rectangle given by its minimum and
// maximum coordinates on each axis.
type Extents struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// ExtentsOf scans pts once and returns their bounding extents.
// The second result is false when pts is empty.
func ExtentsOf(pts []Point) (Extents, bool) {
	if len(pts) == 0 {
		return Extents{}, false
	}
	e := Extents{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		if p.X < e.MinX {
			e.MinX = p.X
		}
		if p.X > e.MaxX {
			e.MaxX = p.X
		}
		if p.Y < e.MinY {
			e.MinY = p.Y
		}
		if p.Y > e.MaxY {
			e.MaxY = p.Y
		}
	}
	return e, true
}

// BoxExtents returns the extents of the box with top-left (x, y) and size w x h.
func BoxExtents(x, y, w, h float64) Extents {
	return Extents{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// Width returns MaxX - MinX.
func (e Extents) Width() float64 { return e.MaxX - e.MinX }

// Height returns MaxY - MinY.
func (e Extents) Height() float64 { return e.MaxY - e.MinY }

// TopLeft returns (MinX, MinY).
func (e Extents) TopLeft() Point { return Point{X: e.MinX, Y: e.MinY} }

// BottomLeft returns (MinX, MaxY).
func (e Extents) BottomLeft() Point { return Point{X: e.MinX, Y: e.MaxY} }

// BottomRight returns (MaxX, MaxY).
func (e Extents) BottomRight() Point { return Point{X: e.MaxX, Y: e.MaxY} }

// TopRight returns (MaxX, MinY).
func (e Extents) TopRight() Point { return Point{X: e.MaxX, Y: e.MinY} }

// Corners returns the four corners ordered top-left, bottom-left, bottom-right,
// top-right. The slice doubles as the closed bounding polygon.
func (e Extents) Corners() []Point {
	return []Point{e.TopLeft(), e.BottomLeft(), e.BottomRight(), e.TopRight()}
}

// Center returns the midpoint of the extents.
func (e Extents) Center() Point {
	return FromR2(e.Rect().Center())
}

// Rect converts the extents to a golang/geo rectangle.
func (e Extents) Rect() r2.Rect {
	return r2.RectFromPoints(e.TopLeft().R2(), e.BottomRight().R2())
}

// Within reports whether e lies entirely inside outer. Edges are inclusive.
func (e Extents) Within(outer Extents) bool {
	return outer.Rect().Contains(e.Rect())
}
