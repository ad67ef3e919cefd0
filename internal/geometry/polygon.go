package geometry

import (
	"github.com/pkg/errors"
)

// ErrInvalidGeometry is returned when a polygon has fewer than three vertices.
var ErrInvalidGeometry = errors.New("invalid geometry")

// PointInPolygon reports whether p lies inside the closed polygon poly.
//
// The polygon is implicitly closed: the last vertex connects back to the first.
// A horizontal ray is cast from p towards +X and the edges it crosses are counted;
// an odd count means inside.
//
// For each edge (p1, p2) a crossing is counted when:
//   - p.Y > min(p1.Y, p2.Y) and p.Y <= max(p1.Y, p2.Y) (half-open, so a shared
//     vertex is counted for exactly one of its two edges)
//   - p.X <= max(p1.X, p2.X)
//   - the edge is not horizontal
//   - the edge is vertical, or p.X is at or before the edge's x-intersection at p.Y
//
// Returns ErrInvalidGeometry (and false) when poly has fewer than three vertices.
func PointInPolygon(p Point, poly []Point) (bool, error) {
	n := len(poly)
	if n < 3 {
		return false, errors.Wrapf(ErrInvalidGeometry, "polygon has %d vertices, need at least 3", n)
	}

	crossings := 0
	p1 := poly[0]
	for i := 1; i <= n; i++ {
		p2 := poly[i%n]
		if crossesRay(p, p1, p2) {
			crossings++
		}
		p1 = p2
	}

	return crossings%2 == 1, nil
}

// crossesRay reports whether the edge p1-p2 crosses the +X ray from p.
func crossesRay(p, p1, p2 Point) bool {
	lo, hi := p1.Y, p2.Y
	if lo > hi {
		lo, hi = hi, lo
	}
	if p.Y <= lo || p.Y > hi {
		return false
	}
	if p.X > max(p1.X, p2.X) {
		return false
	}
	if p1.Y == p2.Y {
		return false
	}
	if p1.X == p2.X {
		return true
	}
	xint := (p.Y-p1.Y)*(p2.X-p1.X)/(p2.Y-p1.Y) + p1.X
	return p.X <= xint
}

// AllInside reports whether every point of pts lies inside poly.
// An empty pts is vacuously inside.
func AllInside(pts, poly []Point) (bool, error) {
	if len(poly) < 3 {
		return false, errors.Wrapf(ErrInvalidGeometry, "polygon has %d vertices, need at least 3", len(poly))
	}
	for _, p := range pts {
		in, err := PointInPolygon(p, poly)
		if err != nil {
			return false, err
		}
		if !in {
			return false, nil
		}
	}
	return true, nil
}

// AnyInside reports whether at least one point of pts lies inside poly.
func AnyInside(pts, poly []Point) (bool, error) {
	if len(poly) < 3 {
		return false, errors.Wrapf(ErrInvalidGeometry, "polygon has %d vertices, need at least 3", len(poly))
	}
	for _, p := range pts {
		in, err := PointInPolygon(p, poly)
		if err != nil {
			return false, err
		}
		if in {
			return true, nil
		}
	}
	return false, nil
}
