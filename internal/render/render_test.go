package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/fogleman/gg"
	"go.viam.com/test"

	"github.com/ironsheep/feature-tools-mcp/internal/features"
	"github.com/ironsheep/feature-tools-mcp/internal/geometry"
)

func createBlackImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return img
}

func isBlack(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	return r == 0 && g == 0 && b == 0
}

func TestDrawKinds(t *testing.T) {
	white := Style{Color: color.White}

	tests := []struct {
		name    string
		feature *features.Feature
		marked  image.Point
		empty   image.Point
	}{
		{
			name: "blob outline",
			feature: features.NewBlob(nil, []geometry.Point{
				{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 15, Y: 15}, {X: 5, Y: 15},
			}),
			marked: image.Pt(10, 5),
			empty:  image.Pt(10, 10),
		},
		{
			name:    "circle",
			feature: features.NewCircle(nil, 10, 10, 6),
			marked:  image.Pt(16, 10),
			empty:   image.Pt(10, 10),
		},
		{
			name:    "line",
			feature: features.NewLine(nil, geometry.Pt(2, 3), geometry.Pt(18, 3)),
			marked:  image.Pt(10, 3),
			empty:   image.Pt(10, 10),
		},
		{
			name:    "point",
			feature: features.NewFeature(nil, 10, 10),
			marked:  image.Pt(10, 10),
			empty:   image.Pt(2, 2),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dc := gg.NewContextForImage(createBlackImage(20, 20))
			Draw(dc, tt.feature, white)
			out := dc.Image()

			test.That(t, isBlack(out, tt.marked.X, tt.marked.Y), test.ShouldBeFalse)
			test.That(t, isBlack(out, tt.empty.X, tt.empty.Y), test.ShouldBeTrue)
		})
	}
}

func TestRender(t *testing.T) {
	src := createBlackImage(40, 40)
	col := features.NewCollection(
		features.NewCircle(src, 10, 10, 5),
		features.NewLine(src, geometry.Pt(20, 30), geometry.Pt(38, 30)),
	)

	out := Render(src, col, Style{AutoColor: true, Labels: true, LineWidth: 2})
	test.That(t, out.Bounds(), test.ShouldResemble, src.Bounds())
	test.That(t, isBlack(out, 29, 30), test.ShouldBeFalse)

	// The source image is left untouched.
	test.That(t, isBlack(src, 29, 30), test.ShouldBeTrue)
}

func TestRenderEmptyCollection(t *testing.T) {
	src := createBlackImage(8, 8)
	out := Render(src, features.Collection{}, Style{})
	test.That(t, out.Bounds().Dx(), test.ShouldEqual, 8)
	test.That(t, isBlack(out, 4, 4), test.ShouldBeTrue)
}

func TestStyleDefaults(t *testing.T) {
	var s Style
	test.That(t, s.lineWidth(), test.ShouldEqual, 1.0)
	test.That(t, s.pointRadius(), test.ShouldEqual, 2.0)
	test.That(t, s.color(), test.ShouldResemble, color.Color(DefaultColor))
}
