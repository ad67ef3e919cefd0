// Package render draws features onto images for visual inspection.
//
// Lines are drawn as segments, circles as circles, features without boundary
// points as filled dots and everything else as its bounding rectangle. Drawing
// only touches the supplied context; source images are never modified.
package render

import (
	"image"
	"image/color"
	"strconv"

	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/basicfont"

	"github.com/ironsheep/feature-tools-mcp/internal/features"
)

// DefaultColor is used when a Style has no color and AutoColor is off.
var DefaultColor = color.NRGBA{255, 0, 0, 255}

// Style controls how features are drawn.
type Style struct {
	// Color of outlines and labels. Nil means DefaultColor.
	Color color.Color
	// AutoColor gives each feature of a collection its own pleasant color.
	AutoColor bool
	// LineWidth in pixels. Zero means 1.
	LineWidth float64
	// PointRadius is the dot radius for features without points. Zero means 2.
	PointRadius float64
	// Labels draws the collection index next to each feature.
	Labels bool
}

func (s Style) lineWidth() float64 {
	if s.LineWidth <= 0 {
		return 1
	}
	return s.LineWidth
}

func (s Style) pointRadius() float64 {
	if s.PointRadius <= 0 {
		return 2
	}
	return s.PointRadius
}

func (s Style) color() color.Color {
	if s.Color == nil {
		return DefaultColor
	}
	return s.Color
}

// Draw outlines f on dc.
func Draw(dc *gg.Context, f *features.Feature, style Style) {
	dc.SetColor(style.color())
	dc.SetLineWidth(style.lineWidth())

	switch {
	case f.Kind == features.KindLine && len(f.Points) >= 2:
		a, b := f.Points[0], f.Points[len(f.Points)-1]
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
		dc.Stroke()
	case f.Kind == features.KindCircle:
		dc.DrawCircle(f.X, f.Y, f.Radius)
		dc.Stroke()
	case len(f.Points) == 0:
		dc.DrawPoint(f.X, f.Y, style.pointRadius())
		dc.Fill()
	default:
		dc.DrawRectangle(f.MinX(), f.MinY(), f.Width(), f.Height())
		dc.Stroke()
	}
}

// DrawCollection draws every feature of col on dc, labelling each with its
// index when style.Labels is set.
func DrawCollection(dc *gg.Context, col features.Collection, style Style) {
	if style.Labels {
		dc.SetFontFace(basicfont.Face7x13)
	}
	for i := 0; i < col.Len(); i++ {
		f := col.At(i)
		s := style
		if style.AutoColor {
			s.Color = colorful.HappyColor()
		}
		Draw(dc, f, s)

		if style.Labels {
			dc.SetColor(s.color())
			tl := f.TopLeftCorner()
			dc.DrawString(strconv.Itoa(i), tl.X+2, tl.Y-2)
		}
	}
}

// Render returns a copy of img with col drawn on top.
func Render(img image.Image, col features.Collection, style Style) image.Image {
	dc := gg.NewContextForImage(img)
	DrawCollection(dc, col, style)
	return dc.Image()
}
