package features

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/ironsheep/feature-tools-mcp/internal/geometry"
)

// RegionKind identifies which shape a Region describes.
type RegionKind int

// Region kinds. The zero value is not a valid kind.
const (
	RegionPoint RegionKind = iota + 1
	RegionBox
	RegionCircle
	RegionPolygon
	RegionFeature
	RegionScalar
)

func (k RegionKind) String() string {
	switch k {
	case RegionPoint:
		return "point"
	case RegionBox:
		return "box"
	case RegionCircle:
		return "circle"
	case RegionPolygon:
		return "polygon"
	case RegionFeature:
		return "feature"
	case RegionScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// Region is the shape a feature is compared against. Build one with the
// constructor for its kind; the zero Region is rejected by every predicate.
type Region struct {
	kind     RegionKind
	x, y     float64
	w, h     float64
	r        float64
	vertices []geometry.Point
	feature  *Feature
}

// PointRegion describes a single coordinate.
func PointRegion(x, y float64) Region {
	return Region{kind: RegionPoint, x: x, y: y}
}

// BoxRegion describes an axis-aligned rectangle with top-left corner (x, y).
func BoxRegion(x, y, w, h float64) Region {
	return Region{kind: RegionBox, x: x, y: y, w: w, h: h}
}

// CircleRegion describes a circle with center (x, y) and radius r.
func CircleRegion(x, y, r float64) Region {
	return Region{kind: RegionCircle, x: x, y: y, r: r}
}

// PolygonRegion describes a closed polygon; the last vertex connects back to
// the first. At least three vertices are required.
func PolygonRegion(vertices ...geometry.Point) Region {
	return Region{kind: RegionPolygon, vertices: append([]geometry.Point(nil), vertices...)}
}

// FeatureRegion compares against another feature through its bounding box.
func FeatureRegion(f *Feature) Region {
	return Region{kind: RegionFeature, feature: f}
}

// ScalarRegion is a bare coordinate. Only the directional predicates accept it:
// Above and Below read it as a y value, Left and Right as an x value.
func ScalarRegion(v float64) Region {
	return Region{kind: RegionScalar, x: v, y: v}
}

// Kind returns the region's kind.
func (r Region) Kind() RegionKind { return r.kind }

// Anchor returns the region's reference coordinate: the point itself, the
// box's top-left corner or the circle's center.
func (r Region) Anchor() geometry.Point { return geometry.Pt(r.x, r.y) }

// Radius returns the circle radius.
func (r Region) Radius() float64 { return r.r }

// Size returns the box width and height.
func (r Region) Size() (w, h float64) { return r.w, r.h }

// Vertices returns a copy of the polygon vertices.
func (r Region) Vertices() []geometry.Point {
	return append([]geometry.Point(nil), r.vertices...)
}

// Feature returns the referenced feature for RegionFeature.
func (r Region) Feature() *Feature { return r.feature }

// Value returns the scalar for RegionScalar.
func (r Region) Value() float64 { return r.x }

func (r Region) boxExtents() geometry.Extents {
	return geometry.BoxExtents(r.x, r.y, r.w, r.h)
}

// Validate checks that the region is well formed. It returns
// ErrUnsupportedRegion for the zero Region and ErrInvalidArgument for wrong
// arity or out-of-range values.
func (r Region) Validate() error {
	switch r.kind {
	case RegionPoint, RegionScalar:
		if !r.Anchor().IsFinite() {
			return errors.Wrapf(ErrInvalidArgument, "%s region has non-finite coordinates", r.kind)
		}
	case RegionBox:
		if !r.Anchor().IsFinite() || !finite(r.w) || !finite(r.h) {
			return errors.Wrap(ErrInvalidArgument, "box region has non-finite values")
		}
		if r.w < 0 || r.h < 0 {
			return errors.Wrapf(ErrInvalidArgument, "box region has negative size %gx%g", r.w, r.h)
		}
	case RegionCircle:
		if !r.Anchor().IsFinite() || !finite(r.r) {
			return errors.Wrap(ErrInvalidArgument, "circle region has non-finite values")
		}
		if r.r < 0 {
			return errors.Wrapf(ErrInvalidArgument, "circle region has negative radius %g", r.r)
		}
	case RegionPolygon:
		if len(r.vertices) < 3 {
			return errors.Wrapf(ErrInvalidArgument, "polygon region has %d vertices, need at least 3", len(r.vertices))
		}
		for i, v := range r.vertices {
			if !v.IsFinite() {
				return errors.Wrapf(ErrInvalidArgument, "polygon vertex %d is not finite", i)
			}
		}
	case RegionFeature:
		if r.feature == nil {
			return errors.Wrap(ErrInvalidArgument, "feature region has no feature")
		}
	default:
		return errors.Wrap(ErrUnsupportedRegion, "unrecognized region descriptor")
	}
	return nil
}

func (r Region) String() string {
	switch r.kind {
	case RegionPoint:
		return fmt.Sprintf("point(%g,%g)", r.x, r.y)
	case RegionBox:
		return fmt.Sprintf("box(%g,%g,%g,%g)", r.x, r.y, r.w, r.h)
	case RegionCircle:
		return fmt.Sprintf("circle(%g,%g,r=%g)", r.x, r.y, r.r)
	case RegionPolygon:
		parts := make([]string, len(r.vertices))
		for i, v := range r.vertices {
			parts[i] = v.String()
		}
		return "polygon[" + strings.Join(parts, " ") + "]"
	case RegionFeature:
		if r.feature == nil {
			return "feature(nil)"
		}
		return "feature(" + r.feature.String() + ")"
	case RegionScalar:
		return fmt.Sprintf("scalar(%g)", r.x)
	default:
		return "region(?)"
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
