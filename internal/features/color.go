package features

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// MeanColor returns the average color of the image pixels under the feature's
// bounding box. Features without points sample the single pixel at (X, Y).
// Without an image the result is black.
func (f *Feature) MeanColor() colorful.Color {
	if f.Image == nil {
		return colorful.Color{}
	}
	if len(f.Points) == 0 {
		return f.pixelColor()
	}

	e := f.Extents()
	rect := image.Rect(
		int(math.Floor(e.MinX)), int(math.Floor(e.MinY)),
		int(math.Floor(e.MaxX))+1, int(math.Floor(e.MaxY))+1,
	)
	patch := imaging.Crop(f.Image, rect)
	n := patch.Bounds().Dx() * patch.Bounds().Dy()
	if n == 0 {
		return f.pixelColor()
	}

	var sr, sg, sb float64
	for i := 0; i+3 < len(patch.Pix); i += 4 {
		sr += float64(patch.Pix[i])
		sg += float64(patch.Pix[i+1])
		sb += float64(patch.Pix[i+2])
	}
	scale := 255 * float64(n)
	return colorful.Color{R: sr / scale, G: sg / scale, B: sb / scale}
}

func (f *Feature) pixelColor() colorful.Color {
	c, ok := colorful.MakeColor(f.Image.At(int(math.Floor(f.X)), int(math.Floor(f.Y))))
	if !ok {
		return colorful.Color{}
	}
	return c
}

// ColorDistance returns the Euclidean RGB distance between the feature's mean
// color and c, on the 0-255 scale. Against black this is the feature's intensity.
func (f *Feature) ColorDistance(c colorful.Color) float64 {
	return f.MeanColor().DistanceRgb(c) * 255
}

// Crop returns the part of the source image covered by the feature: a
// Width x Height rectangle centered on (X, Y), clipped to the image. Returns
// nil when the feature has no image.
func (f *Feature) Crop() image.Image {
	if f.Image == nil {
		return nil
	}
	w, h := f.Width(), f.Height()
	x0 := int(math.Round(f.X - w/2))
	y0 := int(math.Round(f.Y - h/2))
	rect := image.Rect(x0, y0, x0+int(math.Ceil(w)), y0+int(math.Ceil(h)))
	return imaging.Crop(f.Image, rect)
}
