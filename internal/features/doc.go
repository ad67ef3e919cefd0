// Package features implements the spatial-relationship engine for features
// extracted from an image.
//
// A Feature is a detected region anchored to a source image: a representative
// coordinate, an ordered list of boundary points and a non-owning reference to
// the image it came from. Features answer relational questions (contains,
// overlaps, above/below/left/right, is contained within) against a Region, an
// explicit descriptor built with PointRegion, BoxRegion, CircleRegion,
// PolygonRegion, FeatureRegion or ScalarRegion.
//
// A Collection is an ordered container of features with vectorized accessors
// (X, Area, Angle, MeanColor, ...), stable sorts by a derived key and
// order-preserving filters that delegate to the per-feature predicates.
// Filters and sorts never modify the receiver.
//
// # Approximations
//
// Containment and overlap are bounding-box tests, not polygon clipping. A
// feature is compared through its axis-aligned bounding box; circles are tested
// against the box corners only. Results near region boundaries can therefore
// differ from the exact geometric answer.
//
// # Errors
//
// Predicates return (bool, error). A non-nil error means the relation could not
// be determined, which is distinct from a false result:
//   - ErrUnsupportedRegion: the predicate does not accept that kind of region
//   - ErrInvalidArgument: the region is malformed, or a filter mask has the wrong length
//   - ErrInvalidGeometry: a polygon with fewer than three vertices reached the
//     point-in-polygon test
//
// Degenerate features never produce errors. A feature without boundary points
// behaves as a single pixel at (X, Y): width, height and area are all 1.
//
// # Thread Safety
//
// Bounding extents are computed on first use behind a sync.Once and cached for
// the feature's lifetime, so a feature may be queried from several goroutines.
// The cache is never invalidated: assigning Points after the first query leaves
// the extents stale.
package features
