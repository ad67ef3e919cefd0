// Package detection turns images into feature collections.
//
// The detectors here are simple producers for the features package. They are
// designed for clean diagrams, flowcharts and screenshots, not photographs.
//
//   - Blobs: edge map, connected contours, convex hull of each contour
//   - Circles: Hough circle transform over a radius range
//   - Lines: Hough line transform, traced back to segment endpoints
//   - Text regions: sliding windows scored by edge density and horizontal structure
//
// Every detector returns a features.Collection whose features reference the
// source image, so containment, direction and color queries work on the result
// directly.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// Images with a non-zero Bounds().Min report coordinates in the image's own
// space.
//
// # Performance Considerations
//
// Detection iterates over every pixel and the Hough transforms are expensive on
// large images. Crop to a region of interest first, or raise the minimum size
// thresholds. Rows of the edge map and radii of the circle search are processed
// in parallel.
//
// # Limitations
//
// Noisy images, photographs and hand-drawn content may produce poor results.
// Filled shapes are found by their outline only.
package detection
