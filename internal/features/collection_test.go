package features

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/ironsheep/feature-tools-mcp/internal/geometry"
)

// areaFeature returns a feature with the given area as a w x 1 strip at y.
func areaFeature(w, y float64) *Feature {
	return boxFeature(nil, 0, y, w, y+1)
}

func TestCollectionBasics(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	a := boxFeature(img, 0, 0, 1, 1)
	b := boxFeature(img, 2, 2, 3, 3)
	c := boxFeature(img, 4, 4, 5, 5)
	col := NewCollection(a, b, c)

	test.That(t, col.Len(), test.ShouldEqual, 3)
	test.That(t, col.At(1), test.ShouldEqual, b)
	test.That(t, col.Image(), test.ShouldEqual, img)

	sub := col.Slice(1, 3)
	test.That(t, sub.Len(), test.ShouldEqual, 2)
	test.That(t, sub.At(0), test.ShouldEqual, b)
	test.That(t, sub.Area(), test.ShouldResemble, []float64{1, 1})

	longer := col.Append(boxFeature(img, 6, 6, 7, 7))
	test.That(t, longer.Len(), test.ShouldEqual, 4)
	test.That(t, col.Len(), test.ShouldEqual, 3)

	other := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	col.SetImage(other)
	test.That(t, a.Image, test.ShouldEqual, other)
	test.That(t, c.Image, test.ShouldEqual, other)

	var empty Collection
	test.That(t, empty.Image(), test.ShouldBeNil)
	test.That(t, empty.X(), test.ShouldBeEmpty)
	test.That(t, empty.Area(), test.ShouldBeEmpty)
}

func TestCollectionVectors(t *testing.T) {
	col := NewCollection(
		boxFeature(nil, 0, 0, 2, 4),
		NewLine(nil, geometry.Pt(0, 0), geometry.Pt(0, 10)),
		NewFeature(nil, 7, 8),
	)

	if diff := cmp.Diff([]float64{1, 0, 7}, col.X()); diff != "" {
		t.Errorf("X mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{2, 5, 8}, col.Y()); diff != "" {
		t.Errorf("Y mismatch (-want +got):\n%s", diff)
	}
	test.That(t, col.Width(), test.ShouldResemble, []float64{2, 0, 1})
	test.That(t, col.Height(), test.ShouldResemble, []float64{4, 10, 1})
	test.That(t, col.Area(), test.ShouldResemble, []float64{8, 0, 1})
	test.That(t, col.Length(), test.ShouldResemble, []float64{4, 10, 1})
	angles := col.Angle()
	test.That(t, angles, test.ShouldHaveLength, 3)
	test.That(t, angles[0], test.ShouldEqual, 0.0)
	test.That(t, angles[1], test.ShouldAlmostEqual, 90.0)
	test.That(t, angles[2], test.ShouldEqual, 0.0)
	test.That(t, col.Coordinates()[2], test.ShouldResemble, geometry.Pt(7, 8))
	test.That(t, col.DistanceFrom(geometry.Pt(7, 4)), test.ShouldResemble, []float64{
		geometry.Distance(geometry.Pt(1, 2), geometry.Pt(7, 4)),
		geometry.Distance(geometry.Pt(0, 5), geometry.Pt(7, 4)),
		4,
	})
}

func TestCollectionColors(t *testing.T) {
	img := createSplitImage(10, 10, 5)
	col := NewCollection(
		boxFeature(img, 6, 0, 9, 3),
		boxFeature(img, 0, 0, 3, 3),
	)

	means := col.MeanColor()
	test.That(t, means, test.ShouldHaveLength, 2)
	test.That(t, means[0].B, test.ShouldAlmostEqual, 1.0)
	test.That(t, means[1].R, test.ShouldAlmostEqual, 1.0)

	red := colorful.Color{R: 1}
	dist := col.ColorDistance(red)
	test.That(t, dist[1], test.ShouldAlmostEqual, 0.0)
	test.That(t, dist[0], test.ShouldBeGreaterThan, 0.0)

	sorted := col.SortColorDistance(red)
	test.That(t, sorted.At(0), test.ShouldEqual, col.At(1))
	test.That(t, sorted.At(1), test.ShouldEqual, col.At(0))

	crops := col.Crop()
	test.That(t, crops, test.ShouldHaveLength, 2)
	test.That(t, crops[0].Bounds().Dx(), test.ShouldEqual, 3)
}

func TestCollectionDistanceFromCenter(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	near := NewFeature(img, 6, 5)
	far := NewFeature(img, 0, 0)
	mid := NewFeature(img, 5, 8)
	col := NewCollection(far, near, mid)

	test.That(t, col.DistanceFromCenter(), test.ShouldResemble, []float64{
		geometry.Distance(geometry.Pt(0, 0), geometry.Pt(5, 5)), 1, 3,
	})

	sorted := col.SortDistanceFromCenter()
	test.That(t, sorted.Features(), test.ShouldResemble, []*Feature{near, mid, far})
}

func TestCollectionDistancePairs(t *testing.T) {
	col := NewCollection(
		NewFeature(nil, 0, 0),
		NewFeature(nil, 3, 4),
		NewFeature(nil, 6, 8),
	)

	m := col.DistancePairs()
	r, c := m.Dims()
	test.That(t, r, test.ShouldEqual, 3)
	test.That(t, c, test.ShouldEqual, 3)
	test.That(t, m.At(0, 0), test.ShouldEqual, 0.0)
	test.That(t, m.At(0, 1), test.ShouldAlmostEqual, 5.0)
	test.That(t, m.At(1, 0), test.ShouldAlmostEqual, 5.0)
	test.That(t, m.At(0, 2), test.ShouldAlmostEqual, 10.0)
	test.That(t, m.At(2, 1), test.ShouldAlmostEqual, 5.0)

	r, c = Collection{}.DistancePairs().Dims()
	test.That(t, r, test.ShouldEqual, 0)
	test.That(t, c, test.ShouldEqual, 0)
}

func TestSortArea(t *testing.T) {
	a30 := areaFeature(30, 0)
	a10 := areaFeature(10, 1)
	a20 := areaFeature(20, 2)
	col := NewCollection(a30, a10, a20)

	sorted := col.SortArea()
	test.That(t, sorted.Area(), test.ShouldResemble, []float64{10, 20, 30})
	test.That(t, col.Area(), test.ShouldResemble, []float64{30, 10, 20})

	t.Run("ties keep input order", func(t *testing.T) {
		first := areaFeature(5, 0)
		second := areaFeature(5, 1)
		third := areaFeature(5, 2)
		small := areaFeature(1, 3)

		got := NewCollection(first, second, small, third).SortArea().Features()
		test.That(t, got, test.ShouldResemble, []*Feature{small, first, second, third})
	})
}

func TestSortDistanceAngleLength(t *testing.T) {
	a := NewFeature(nil, 3, 4)
	b := NewFeature(nil, 1, 1)
	c := NewFeature(nil, 6, 8)
	byDistance := NewCollection(a, b, c).SortDistance(geometry.Pt(0, 0))
	test.That(t, byDistance.Features(), test.ShouldResemble, []*Feature{b, a, c})

	flat := NewLine(nil, geometry.Pt(0, 0), geometry.Pt(10, 0))
	steep := NewLine(nil, geometry.Pt(0, 0), geometry.Pt(0, 10))
	diag := NewLine(nil, geometry.Pt(0, 0), geometry.Pt(3, 3))
	lines := NewCollection(flat, steep, diag)

	byAngle := lines.SortAngle(40)
	test.That(t, byAngle.Features(), test.ShouldResemble, []*Feature{diag, flat, steep})

	byLength := lines.SortLength()
	test.That(t, byLength.Features(), test.ShouldResemble, []*Feature{diag, flat, steep})
}

func TestFilterMask(t *testing.T) {
	a := areaFeature(1, 0)
	b := areaFeature(2, 0)
	c := areaFeature(3, 0)
	col := NewCollection(a, b, c)

	got, err := col.Filter([]bool{true, false, true})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got.Features(), test.ShouldResemble, []*Feature{a, c})

	_, err = col.Filter([]bool{true, false})
	test.That(t, errors.Is(err, ErrInvalidArgument), test.ShouldBeTrue)

	none, err := col.Filter([]bool{false, false, false})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, none.Len(), test.ShouldEqual, 0)
}

func TestGeometricFilters(t *testing.T) {
	top := boxFeature(nil, 0, 0, 2, 2)
	bottom := boxFeature(nil, 0, 5, 2, 7)
	right := boxFeature(nil, 5, 0, 7, 2)
	col := NewCollection(top, bottom, right)

	tests := []struct {
		name   string
		filter func(Region) (Collection, error)
		region Region
		want   []*Feature
	}{
		{"inside box", col.Inside, BoxRegion(0, 0, 3, 3), []*Feature{top}},
		{"outside box", col.Outside, BoxRegion(0, 0, 3, 3), []*Feature{bottom, right}},
		{"overlaps box", col.Overlaps, BoxRegion(1, 1, 5, 5), []*Feature{top, bottom, right}},
		{"above scalar", col.Above, ScalarRegion(3), []*Feature{top, right}},
		{"below feature", col.Below, FeatureRegion(top), []*Feature{bottom}},
		{"left of point", col.Left, PointRegion(4, 0), []*Feature{top, bottom}},
		{"right of point", col.Right, PointRegion(4, 0), []*Feature{right}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.filter(tt.region)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, got.Features(), test.ShouldResemble, tt.want)
		})
	}

	t.Run("receiver unchanged", func(t *testing.T) {
		test.That(t, col.Features(), test.ShouldResemble, []*Feature{top, bottom, right})
	})
}

func TestGeometricFilterErrors(t *testing.T) {
	col := NewCollection(boxFeature(nil, 0, 0, 2, 2))

	_, err := col.Above(PolygonRegion(geometry.Pt(0, 0), geometry.Pt(1, 0), geometry.Pt(0, 1)))
	test.That(t, errors.Is(err, ErrUnsupportedRegion), test.ShouldBeTrue)

	_, err = col.Inside(BoxRegion(0, 0, -1, 1))
	test.That(t, errors.Is(err, ErrInvalidArgument), test.ShouldBeTrue)

	_, err = Collection{}.Inside(Region{})
	test.That(t, errors.Is(err, ErrUnsupportedRegion), test.ShouldBeTrue)
}

func TestGeometricFiltersLargeCollection(t *testing.T) {
	fs := make([]*Feature, 200)
	for i := range fs {
		y := float64(i)
		fs[i] = NewFeature(nil, 0, y, geometry.Pt(0, y), geometry.Pt(1, y+0.5))
	}
	col := NewCollection(fs...)

	got, err := col.Above(ScalarRegion(50))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got.Features(), test.ShouldResemble, fs[:50])

	areas := col.Area()
	test.That(t, areas, test.ShouldHaveLength, 200)
	for _, a := range areas {
		test.That(t, a, test.ShouldEqual, 0.5)
	}
}
