package detection

import (
	"image"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ironsheep/feature-tools-mcp/internal/features"
)

// Kind names a detector.
type Kind string

// Available detectors.
const (
	KindBlobs   Kind = "blobs"
	KindCircles Kind = "circles"
	KindLines   Kind = "lines"
	KindText    Kind = "text"
)

// Kinds lists every detector in the order "all" runs them.
var Kinds = []Kind{KindBlobs, KindCircles, KindLines, KindText}

// Params tunes the detectors. Each detector reads only its own fields.
type Params struct {
	MinArea       int     `json:"min_area"`
	MinRadius     int     `json:"min_radius"`
	MaxRadius     int     `json:"max_radius"`
	MinLength     int     `json:"min_length"`
	MinConfidence float64 `json:"min_confidence"`
}

// DefaultParams returns settings that work for clean, high-contrast diagrams.
func DefaultParams() Params {
	return Params{
		MinArea:       100,
		MinRadius:     5,
		MaxRadius:     50,
		MinLength:     20,
		MinConfidence: 0.5,
	}
}

// Validate rejects negative sizes and an inverted radius range.
func (p Params) Validate() error {
	if p.MinArea < 0 || p.MinRadius < 0 || p.MaxRadius < 0 || p.MinLength < 0 {
		return errors.Errorf("detection sizes must be non-negative: %+v", p)
	}
	if p.MaxRadius < p.MinRadius {
		return errors.Errorf("max_radius %d is smaller than min_radius %d", p.MaxRadius, p.MinRadius)
	}
	if p.MinConfidence < 0 || p.MinConfidence > 1 {
		return errors.Errorf("min_confidence %g is outside [0, 1]", p.MinConfidence)
	}
	return nil
}

// Detector runs the detectors and logs what they find.
type Detector struct {
	logger *zap.SugaredLogger
}

// NewDetector returns a Detector. A nil logger disables logging.
func NewDetector(logger *zap.SugaredLogger) *Detector {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Detector{logger: logger}
}

// Detect runs the named detector over img. Results are bound to img.
func (d *Detector) Detect(img image.Image, kind Kind, p Params) (features.Collection, error) {
	if err := p.Validate(); err != nil {
		return features.Collection{}, err
	}

	var col features.Collection
	switch kind {
	case KindBlobs:
		col = DetectBlobs(img, p.MinArea)
	case KindCircles:
		col = DetectCircles(img, p.MinRadius, p.MaxRadius)
	case KindLines:
		col = DetectLines(img, p.MinLength)
	case KindText:
		col = DetectTextRegions(img, p.MinConfidence)
	default:
		return features.Collection{}, errors.Errorf("unknown detector %q", kind)
	}

	d.logger.Debugw("detection finished", "detector", kind, "count", col.Len(),
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return col, nil
}

// DetectAll runs every detector and concatenates the results in Kinds order.
func (d *Detector) DetectAll(img image.Image, p Params) (features.Collection, error) {
	var all features.Collection
	for _, kind := range Kinds {
		col, err := d.Detect(img, kind, p)
		if err != nil {
			return features.Collection{}, errors.Wrapf(err, "%s detector", kind)
		}
		all = all.Append(col.Features()...)
	}
	return all, nil
}
