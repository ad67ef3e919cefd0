package features

import (
	"github.com/pkg/errors"
)

type predicate func(*Feature, Region) (bool, error)

type verdict struct {
	ok  bool
	err error
}

// filterBy validates r once, evaluates pred for every feature and keeps the
// matches in order. The first failing feature's error is returned.
func (c Collection) filterBy(pred predicate, r Region) (Collection, error) {
	if err := r.Validate(); err != nil {
		return Collection{}, err
	}
	verdicts := mapParallel(c.features, func(f *Feature) verdict {
		ok, err := pred(f, r)
		return verdict{ok, err}
	})

	out := make([]*Feature, 0, len(c.features))
	for i, v := range verdicts {
		if v.err != nil {
			return Collection{}, errors.Wrapf(v.err, "feature %d", i)
		}
		if v.ok {
			out = append(out, c.features[i])
		}
	}
	return Collection{features: out}, nil
}

// Inside keeps the features that lie within r.
func (c Collection) Inside(r Region) (Collection, error) {
	return c.filterBy((*Feature).IsContainedWithin, r)
}

// Outside keeps the features that do not lie within r.
func (c Collection) Outside(r Region) (Collection, error) {
	return c.filterBy((*Feature).IsNotContainedWithin, r)
}

// Overlaps keeps the features that overlap r.
func (c Collection) Overlaps(r Region) (Collection, error) {
	return c.filterBy((*Feature).Overlaps, r)
}

// Above keeps the features entirely above r.
func (c Collection) Above(r Region) (Collection, error) {
	return c.filterBy((*Feature).Above, r)
}

// Below keeps the features entirely below r.
func (c Collection) Below(r Region) (Collection, error) {
	return c.filterBy((*Feature).Below, r)
}

// Left keeps the features entirely left of r.
func (c Collection) Left(r Region) (Collection, error) {
	return c.filterBy((*Feature).Left, r)
}

// Right keeps the features entirely right of r.
func (c Collection) Right(r Region) (Collection, error) {
	return c.filterBy((*Feature).Right, r)
}
