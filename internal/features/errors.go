package features

import (
	"github.com/pkg/errors"

	"github.com/ironsheep/feature-tools-mcp/internal/geometry"
)

var (
	// ErrUnsupportedRegion is returned when a predicate receives a region kind it
	// cannot evaluate.
	ErrUnsupportedRegion = errors.New("unsupported region type")

	// ErrInvalidArgument is returned for malformed regions and mismatched filter masks.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidGeometry is returned when a polygon has fewer than three vertices.
	ErrInvalidGeometry = geometry.ErrInvalidGeometry
)

func unsupported(op string, r Region) error {
	return errors.Wrapf(ErrUnsupportedRegion, "%s does not accept %s regions", op, r.Kind())
}
