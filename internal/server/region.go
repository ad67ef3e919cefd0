package server

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/ironsheep/feature-tools-mcp/internal/features"
	"github.com/ironsheep/feature-tools-mcp/internal/geometry"
)

// regionArgs is the JSON form of a region descriptor:
//
//	{"type": "point", "x": 10, "y": 20}
//	{"type": "box", "x": 0, "y": 0, "width": 50, "height": 30}
//	{"type": "circle", "x": 25, "y": 25, "radius": 10}
//	{"type": "polygon", "points": [[0,0],[50,0],[25,40]]}
//	{"type": "feature", "index": 3}
//	{"type": "scalar", "value": 120}
//
// A feature region refers to the feature at that index of the same detection.
type regionArgs struct {
	Type   string       `json:"type"`
	X      float64      `json:"x"`
	Y      float64      `json:"y"`
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Radius float64      `json:"radius"`
	Points [][2]float64 `json:"points"`
	Index  *int         `json:"index"`
	Value  float64      `json:"value"`
}

// toRegion builds the region and validates it. Feature indices are resolved
// against col.
func (a regionArgs) toRegion(col features.Collection) (features.Region, error) {
	var r features.Region
	switch a.Type {
	case "point":
		r = features.PointRegion(a.X, a.Y)
	case "box":
		r = features.BoxRegion(a.X, a.Y, a.Width, a.Height)
	case "circle":
		r = features.CircleRegion(a.X, a.Y, a.Radius)
	case "polygon":
		r = features.PolygonRegion(lo.Map(a.Points, func(p [2]float64, _ int) geometry.Point {
			return geometry.Pt(p[0], p[1])
		})...)
	case "feature":
		if a.Index == nil {
			return features.Region{}, errors.New("feature region needs an index")
		}
		f, err := featureAt(col, *a.Index)
		if err != nil {
			return features.Region{}, err
		}
		r = features.FeatureRegion(f)
	case "scalar":
		r = features.ScalarRegion(a.Value)
	case "":
		return features.Region{}, errors.New("region type is required")
	default:
		return features.Region{}, errors.Errorf("unknown region type %q", a.Type)
	}

	if err := r.Validate(); err != nil {
		return features.Region{}, err
	}
	return r, nil
}

func featureAt(col features.Collection, i int) (*features.Feature, error) {
	if i < 0 || i >= col.Len() {
		return nil, errors.Errorf("feature index %d out of range [0, %d)", i, col.Len())
	}
	return col.At(i), nil
}
