package features

import (
	"image"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// parallelThreshold is the collection size above which per-element work is
// spread across goroutines.
const parallelThreshold = 64

// Collection is an ordered set of features. Filters and sorts return a new
// Collection and never reorder or mutate the receiver's features.
type Collection struct {
	features []*Feature
}

// NewCollection wraps fs. The slice is copied; the features are shared.
func NewCollection(fs ...*Feature) Collection {
	return Collection{features: append([]*Feature(nil), fs...)}
}

// Len returns the number of features.
func (c Collection) Len() int { return len(c.features) }

// At returns the i-th feature.
func (c Collection) At(i int) *Feature { return c.features[i] }

// Features returns a copy of the underlying slice.
func (c Collection) Features() []*Feature {
	return append([]*Feature(nil), c.features...)
}

// Slice returns the features in [i, j) as a Collection.
func (c Collection) Slice(i, j int) Collection {
	return NewCollection(c.features[i:j]...)
}

// Append returns a new Collection with fs added at the end.
func (c Collection) Append(fs ...*Feature) Collection {
	out := make([]*Feature, 0, len(c.features)+len(fs))
	out = append(out, c.features...)
	out = append(out, fs...)
	return Collection{features: out}
}

// Image returns the image of the first feature, or nil for an empty collection.
func (c Collection) Image() image.Image {
	if len(c.features) == 0 {
		return nil
	}
	return c.features[0].Image
}

// SetImage anchors every feature to img.
func (c Collection) SetImage(img image.Image) {
	for _, f := range c.features {
		f.Image = img
	}
}

// Filter keeps the features whose mask entry is true.
func (c Collection) Filter(mask []bool) (Collection, error) {
	if len(mask) != len(c.features) {
		return Collection{}, errors.Wrapf(ErrInvalidArgument,
			"mask has %d entries for %d features", len(mask), len(c.features))
	}
	out := lo.Filter(c.features, func(_ *Feature, i int) bool { return mask[i] })
	return Collection{features: out}, nil
}

// Crop returns the cropped image of every feature, in order.
func (c Collection) Crop() []image.Image {
	return lo.Map(c.features, func(f *Feature, _ int) image.Image { return f.Crop() })
}

// mapParallel applies fn to every feature and collects the results in order.
// Small collections run inline.
func mapParallel[T any](fs []*Feature, fn func(*Feature) T) []T {
	out := make([]T, len(fs))
	if len(fs) < parallelThreshold {
		for i, f := range fs {
			out[i] = fn(f)
		}
		return out
	}
	parallel.Line(len(fs), func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = fn(fs[i])
		}
	})
	return out
}
