package features

import (
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/feature-tools-mcp/internal/geometry"
)

// sortByKey returns a new Collection ordered by ascending key. Equal keys keep
// their original order.
func (c Collection) sortByKey(keys []float64) Collection {
	idx := make([]int, len(c.features))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return keys[idx[a]] < keys[idx[b]] })

	out := make([]*Feature, len(idx))
	for i, j := range idx {
		out[i] = c.features[j]
	}
	return Collection{features: out}
}

// SortArea orders features by increasing area.
func (c Collection) SortArea() Collection {
	return c.sortByKey(c.Area())
}

// SortDistance orders features by increasing distance from p.
func (c Collection) SortDistance(p geometry.Point) Collection {
	return c.sortByKey(c.DistanceFrom(p))
}

// SortDistanceFromCenter orders features by increasing distance from the
// image center.
func (c Collection) SortDistanceFromCenter() Collection {
	return c.sortByKey(c.DistanceFromCenter())
}

// SortAngle orders features by how close their heading is to theta, in degrees.
func (c Collection) SortAngle(theta float64) Collection {
	keys := c.Angle()
	for i, a := range keys {
		keys[i] = math.Abs(a - theta)
	}
	return c.sortByKey(keys)
}

// SortLength orders features by increasing length.
func (c Collection) SortLength() Collection {
	return c.sortByKey(c.Length())
}

// SortColorDistance orders features by increasing distance of their mean
// color from col.
func (c Collection) SortColorDistance(col colorful.Color) Collection {
	return c.sortByKey(c.ColorDistance(col))
}
