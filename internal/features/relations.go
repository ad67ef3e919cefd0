package features

import (
	"github.com/ironsheep/feature-tools-mcp/internal/geometry"
)

// direction describes one of the four directional predicates as a comparison
// of this feature's leading edge against a target coordinate.
type direction struct {
	name string
	// edge picks this feature's leading edge.
	edge func(geometry.Extents) float64
	// facing picks the other feature's edge that faces us.
	facing func(geometry.Extents) float64
	// component picks the axis of a point-like region.
	component func(geometry.Point) float64
	// less is true when the leading edge must be smaller than the target.
	less bool
}

var (
	dirAbove = direction{"above", extMaxY, extMinY, pointY, true}
	dirBelow = direction{"below", extMinY, extMaxY, pointY, false}
	dirLeft  = direction{"left", extMaxX, extMinX, pointX, true}
	dirRight = direction{"right", extMinX, extMaxX, pointX, false}
)

func extMinX(e geometry.Extents) float64 { return e.MinX }
func extMinY(e geometry.Extents) float64 { return e.MinY }
func extMaxX(e geometry.Extents) float64 { return e.MaxX }
func extMaxY(e geometry.Extents) float64 { return e.MaxY }
func pointX(p geometry.Point) float64    { return p.X }
func pointY(p geometry.Point) float64    { return p.Y }

func (f *Feature) relate(d direction, r Region) (bool, error) {
	if err := r.Validate(); err != nil {
		return false, err
	}

	var target float64
	switch r.kind {
	case RegionFeature:
		target = d.facing(r.feature.Extents())
	case RegionPoint, RegionBox, RegionCircle:
		target = d.component(r.Anchor())
	case RegionScalar:
		target = r.Value()
	default:
		return false, unsupported(d.name, r)
	}

	edge := d.edge(f.Extents())
	if d.less {
		return edge < target, nil
	}
	return edge > target, nil
}

// Above reports whether the feature lies entirely above r: its MaxY is smaller
// than the other feature's MinY, or than the y of a point, box or circle
// anchor, or than a scalar. Polygons are not supported.
func (f *Feature) Above(r Region) (bool, error) { return f.relate(dirAbove, r) }

// Below reports whether the feature lies entirely below r (MinY greater than
// the target). See Above for how the target is chosen.
func (f *Feature) Below(r Region) (bool, error) { return f.relate(dirBelow, r) }

// Left reports whether the feature lies entirely left of r (MaxX smaller than
// the target's MinX or x coordinate).
func (f *Feature) Left(r Region) (bool, error) { return f.relate(dirLeft, r) }

// Right reports whether the feature lies entirely right of r (MinX greater
// than the target's MaxX or x coordinate).
func (f *Feature) Right(r Region) (bool, error) { return f.relate(dirRight, r) }

// Contains reports whether r lies inside the feature's bounding box.
//
//   - feature: every boundary point of the other feature is inside
//   - point: the point is inside
//   - circle: every corner of this bounding box is within the radius
//   - box: this bounding box lies entirely inside the box
//   - polygon: every polygon vertex is inside
//
// Scalars are not supported.
func (f *Feature) Contains(r Region) (bool, error) {
	if err := r.Validate(); err != nil {
		return false, err
	}

	bounds := f.BoundingBox()
	switch r.kind {
	case RegionFeature:
		return geometry.AllInside(r.feature.Points, bounds)
	case RegionPoint:
		return geometry.PointInPolygon(r.Anchor(), bounds)
	case RegionCircle:
		return allWithinRadius(bounds, r.Anchor(), r.r), nil
	case RegionBox:
		return f.Extents().Within(r.boxExtents()), nil
	case RegionPolygon:
		return geometry.AllInside(r.vertices, bounds)
	default:
		return false, unsupported("contains", r)
	}
}

// Overlaps reports whether any part of r reaches into the feature's bounding box.
//
//   - feature: any corner of the other bounding box is inside
//   - point: the point is inside
//   - circle: any corner of this bounding box is strictly within the radius
//   - box: any of the box's four corners is inside
//   - polygon: any polygon vertex is inside
//
// Scalars are not supported.
func (f *Feature) Overlaps(r Region) (bool, error) {
	if err := r.Validate(); err != nil {
		return false, err
	}

	bounds := f.BoundingBox()
	switch r.kind {
	case RegionFeature:
		return geometry.AnyInside(r.feature.BoundingBox(), bounds)
	case RegionPoint:
		return geometry.PointInPolygon(r.Anchor(), bounds)
	case RegionCircle:
		return anyWithinRadius(bounds, r.Anchor(), r.r), nil
	case RegionBox:
		return geometry.AnyInside(r.boxExtents().Corners(), bounds)
	case RegionPolygon:
		return geometry.AnyInside(r.vertices, bounds)
	default:
		return false, unsupported("overlaps", r)
	}
}

// IsContainedWithin reports whether the feature lies inside r.
//
//   - feature: the other feature Contains this one
//   - circle: every corner of this bounding box is within the radius
//   - box: this bounding box lies entirely inside the box
//   - polygon: every corner of this bounding box is inside the polygon
//
// Points and scalars are not supported.
func (f *Feature) IsContainedWithin(r Region) (bool, error) {
	if err := r.Validate(); err != nil {
		return false, err
	}

	switch r.kind {
	case RegionFeature:
		return r.feature.Contains(FeatureRegion(f))
	case RegionCircle:
		return allWithinRadius(f.BoundingBox(), r.Anchor(), r.r), nil
	case RegionBox:
		return f.Extents().Within(r.boxExtents()), nil
	case RegionPolygon:
		return geometry.AllInside(f.BoundingBox(), r.vertices)
	default:
		return false, unsupported("is contained within", r)
	}
}

// DoesNotContain negates Contains. Errors are passed through unchanged.
func (f *Feature) DoesNotContain(r Region) (bool, error) {
	return negate(f.Contains(r))
}

// DoesNotOverlap negates Overlaps. Errors are passed through unchanged.
func (f *Feature) DoesNotOverlap(r Region) (bool, error) {
	return negate(f.Overlaps(r))
}

// IsNotContainedWithin negates IsContainedWithin. Errors are passed through unchanged.
func (f *Feature) IsNotContainedWithin(r Region) (bool, error) {
	return negate(f.IsContainedWithin(r))
}

func negate(ok bool, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func allWithinRadius(pts []geometry.Point, center geometry.Point, r float64) bool {
	rr := r * r
	for _, p := range pts {
		if geometry.DistanceSquared(p, center) > rr {
			return false
		}
	}
	return true
}

func anyWithinRadius(pts []geometry.Point, center geometry.Point, r float64) bool {
	rr := r * r
	for _, p := range pts {
		if geometry.DistanceSquared(p, center) < rr {
			return true
		}
	}
	return false
}
