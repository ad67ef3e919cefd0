package detection

import (
	"image"
	"sort"

	"github.com/ironsheep/feature-tools-mcp/internal/features"
	"github.com/ironsheep/feature-tools-mcp/internal/geometry"
)

// DetectBlobs finds connected edge contours and returns one blob feature per
// contour, largest area first.
//
// A blob's boundary is the convex hull of its contour pixels and its
// representative coordinate is the mean of those pixels. Blobs whose bounding
// box covers fewer than minArea square pixels are dropped.
func DetectBlobs(img image.Image, minArea int) features.Collection {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	edges := detectEdges(img, width, height)
	contours := findContours(edges, width, height)

	blobs := make([]*features.Feature, 0, len(contours))
	for _, contour := range contours {
		pts := make([]geometry.Point, len(contour))
		var sx, sy float64
		for i, p := range contour {
			pts[i] = geometry.Pt(float64(p.X+bounds.Min.X), float64(p.Y+bounds.Min.Y))
			sx += pts[i].X
			sy += pts[i].Y
		}

		hull := geometry.ConvexHull(pts)
		if len(hull) < 3 {
			continue
		}

		blob := features.NewBlob(img, hull)
		if blob.Area() < float64(minArea) {
			continue
		}
		blob.X = sx / float64(len(pts))
		blob.Y = sy / float64(len(pts))
		blobs = append(blobs, blob)
	}

	sort.SliceStable(blobs, func(i, j int) bool {
		return blobs[i].Area() > blobs[j].Area()
	})
	return features.NewCollection(blobs...)
}
