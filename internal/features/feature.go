package features

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/ironsheep/feature-tools-mcp/internal/geometry"
)

// Kind tells which detector shape a feature came from. It selects how Angle,
// Length and Area are derived.
type Kind int

// Feature kinds.
const (
	KindPoint Kind = iota
	KindBlob
	KindCircle
	KindLine
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindBlob:
		return "blob"
	case KindCircle:
		return "circle"
	case KindLine:
		return "line"
	default:
		return "unknown"
	}
}

// Feature is a single detected region anchored to a source image.
//
// Features must be handled by pointer: the extents cache holds a sync.Once.
type Feature struct {
	// X and Y are the representative coordinate (centroid, circle center or
	// line midpoint depending on Kind).
	X float64
	Y float64

	// Points are the boundary vertices in detector order. May be empty.
	Points []geometry.Point

	// Image is the source image. The feature does not own or copy it.
	Image image.Image

	Kind Kind

	// Radius is set for KindCircle.
	Radius float64

	extentsOnce sync.Once
	extents     geometry.Extents
	pointless   bool
}

// extentsScanHook, when set, runs every time a feature scans its points.
var extentsScanHook func(*Feature)

// NewFeature returns a point-like feature at (x, y) with optional boundary points.
func NewFeature(img image.Image, x, y float64, points ...geometry.Point) *Feature {
	return &Feature{
		X:      x,
		Y:      y,
		Points: append([]geometry.Point(nil), points...),
		Image:  img,
		Kind:   KindPoint,
	}
}

// NewBlob returns a blob feature whose representative coordinate is the mean
// of its boundary points.
func NewBlob(img image.Image, points []geometry.Point) *Feature {
	f := &Feature{
		Points: append([]geometry.Point(nil), points...),
		Image:  img,
		Kind:   KindBlob,
	}
	if len(points) > 0 {
		var sx, sy float64
		for _, p := range points {
			sx += p.X
			sy += p.Y
		}
		f.X = sx / float64(len(points))
		f.Y = sy / float64(len(points))
	}
	return f
}

// NewCircle returns a circle feature. Its boundary points are the corners of
// the circle's bounding square.
func NewCircle(img image.Image, cx, cy, r float64) *Feature {
	sq := geometry.Extents{MinX: cx - r, MinY: cy - r, MaxX: cx + r, MaxY: cy + r}
	return &Feature{
		X:      cx,
		Y:      cy,
		Points: sq.Corners(),
		Image:  img,
		Kind:   KindCircle,
		Radius: r,
	}
}

// NewLine returns a line feature from start to end, anchored at its midpoint.
func NewLine(img image.Image, start, end geometry.Point) *Feature {
	return &Feature{
		X:      (start.X + end.X) / 2,
		Y:      (start.Y + end.Y) / 2,
		Points: []geometry.Point{start, end},
		Image:  img,
		Kind:   KindLine,
	}
}

// Extents returns the cached bounding extents, scanning Points on first use.
// A feature without points reports zero-size extents at (X, Y).
func (f *Feature) Extents() geometry.Extents {
	f.extentsOnce.Do(f.updateExtents)
	return f.extents
}

func (f *Feature) updateExtents() {
	if extentsScanHook != nil {
		extentsScanHook(f)
	}
	e, ok := geometry.ExtentsOf(f.Points)
	if !ok {
		e = geometry.Extents{MinX: f.X, MinY: f.Y, MaxX: f.X, MaxY: f.Y}
		f.pointless = true
	}
	f.extents = e
}

// BoundingBox returns the bounding box corners ordered top-left, bottom-left,
// bottom-right, top-right.
func (f *Feature) BoundingBox() []geometry.Point {
	return f.Extents().Corners()
}

// MinX returns the smallest x of the boundary points.
func (f *Feature) MinX() float64 { return f.Extents().MinX }

// MinY returns the smallest y of the boundary points.
func (f *Feature) MinY() float64 { return f.Extents().MinY }

// MaxX returns the largest x of the boundary points.
func (f *Feature) MaxX() float64 { return f.Extents().MaxX }

// MaxY returns the largest y of the boundary points.
func (f *Feature) MaxY() float64 { return f.Extents().MaxY }

// TopLeftCorner returns (MinX, MinY).
func (f *Feature) TopLeftCorner() geometry.Point { return f.Extents().TopLeft() }

// BottomLeftCorner returns (MinX, MaxY).
func (f *Feature) BottomLeftCorner() geometry.Point { return f.Extents().BottomLeft() }

// BottomRightCorner returns (MaxX, MaxY).
func (f *Feature) BottomRightCorner() geometry.Point { return f.Extents().BottomRight() }

// TopRightCorner returns (MaxX, MinY).
func (f *Feature) TopRightCorner() geometry.Point { return f.Extents().TopRight() }

// Width returns the horizontal extent, or 1 when the feature has no points.
func (f *Feature) Width() float64 {
	e := f.Extents()
	if f.pointless {
		return 1
	}
	return e.Width()
}

// Height returns the vertical extent, or 1 when the feature has no points.
func (f *Feature) Height() float64 {
	e := f.Extents()
	if f.pointless {
		return 1
	}
	return e.Height()
}

// Area returns pi*r^2 for circles and Width*Height otherwise.
func (f *Feature) Area() float64 {
	if f.Kind == KindCircle {
		return math.Pi * f.Radius * f.Radius
	}
	return f.Width() * f.Height()
}

// Angle returns the feature's heading in degrees, 0 being horizontal. Only
// lines have a heading; every other kind reports 0.
func (f *Feature) Angle() float64 {
	if f.Kind != KindLine || len(f.Points) < 2 {
		return 0
	}
	a, b := f.Points[0], f.Points[len(f.Points)-1]
	return math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
}

// Length returns the endpoint distance for lines and the longest dimension
// (max of Width and Height) for everything else.
func (f *Feature) Length() float64 {
	if f.Kind == KindLine && len(f.Points) >= 2 {
		return geometry.Distance(f.Points[0], f.Points[len(f.Points)-1])
	}
	return math.Max(f.Width(), f.Height())
}

// Coordinates returns (X, Y).
func (f *Feature) Coordinates() geometry.Point {
	return geometry.Pt(f.X, f.Y)
}

// DistanceFrom returns the Euclidean distance from (X, Y) to p.
func (f *Feature) DistanceFrom(p geometry.Point) float64 {
	return geometry.Distance(f.Coordinates(), p)
}

// DistanceFromCenter returns the distance from (X, Y) to the center of the
// feature's image, or to the origin when the feature has no image.
func (f *Feature) DistanceFromCenter() float64 {
	return f.DistanceFrom(imageCenter(f.Image))
}

func (f *Feature) String() string {
	return fmt.Sprintf("%s at (%g,%g)", f.Kind, f.X, f.Y)
}

func imageCenter(img image.Image) geometry.Point {
	if img == nil {
		return geometry.Point{}
	}
	b := img.Bounds()
	return geometry.Pt(float64(b.Min.X)+float64(b.Dx())/2, float64(b.Min.Y)+float64(b.Dy())/2)
}
