// Package geometry provides the planar primitives the feature engine is built on:
// points, axis-aligned extents and the ray-casting point-in-polygon test.
//
// # Coordinate System
//
// Coordinates follow the image convention used throughout the repository:
//   - Origin (0, 0) at the top-left corner
//   - X increases rightward
//   - Y increases downward
//
// Values are float64 so that sub-pixel boundary points produced by detectors
// survive unchanged.
//
// # Boundary Classification
//
// PointInPolygon uses a half-open comparison on the y axis. Points that lie
// exactly on a polygon edge or vertex therefore get a fixed classification that
// depends on which edge they touch: for an axis-aligned box the right and bottom
// edges count as inside, the left and top edges as outside. The result is stable
// across calls, which is the property callers may rely on.
package geometry
