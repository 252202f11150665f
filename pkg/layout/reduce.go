package layout

import (
	"slices"

	"github.com/matzehuels/vizlayout/pkg/errors"
)

// Reduce applies cmd to l and returns the resulting layout.
// l is never modified; on error the returned layout is l unchanged.
func Reduce(l Layout, cmd Command) (Layout, error) {
	var (
		next Layout
		err  error
	)
	switch c := cmd.(type) {
	case Add:
		next, err = reduceAdd(l, c)
	case Move:
		next, err = reduceMove(l, c)
	case Remove:
		next, err = reduceRemove(l, c)
	case nil:
		err = errors.New(errors.ErrCodeInvalidCommand, "nil command")
	default:
		err = errors.New(errors.ErrCodeUnsupported, "unsupported command %T", cmd)
	}
	if err != nil {
		return l, err
	}
	return next, nil
}

func reduceAdd(l Layout, c Add) (Layout, error) {
	if err := checkAxis(c.Axis); err != nil {
		return l, err
	}
	if err := errors.ValidateDimensionID(c.DimensionID); err != nil {
		return l, err
	}
	if a, _, ok := l.Find(c.DimensionID); ok {
		return l, errors.New(errors.ErrCodeDuplicateDimension,
			"cannot add %q to %s: already on %s", c.DimensionID, c.Axis, a)
	}

	dims := l.Dimensions(c.Axis)
	idx := len(dims)
	if c.Index != nil {
		idx = *c.Index
	}
	if idx < 0 || idx > len(dims) {
		return l, errors.New(errors.ErrCodeIndexOutOfRange,
			"cannot add %q to %s at %d: axis has %d dimensions", c.DimensionID, c.Axis, idx, len(dims))
	}

	next := l.Clone()
	next.set(c.Axis, slices.Insert(dims, idx, c.DimensionID))
	return next, nil
}

func reduceMove(l Layout, c Move) (Layout, error) {
	if err := checkAxis(c.Source); err != nil {
		return l, err
	}
	if err := checkAxis(c.Target); err != nil {
		return l, err
	}

	from := l.IndexOf(c.Source, c.DimensionID)
	if from < 0 {
		return l, errors.New(errors.ErrCodeDimensionNotFound,
			"cannot move %q: not on %s", c.DimensionID, c.Source)
	}
	sameAxis := c.Source == c.Target
	if !sameAxis && l.IndexOf(c.Target, c.DimensionID) >= 0 {
		return l, errors.New(errors.ErrCodeDuplicateDimension,
			"cannot move %q to %s: already there", c.DimensionID, c.Target)
	}

	src := slices.Delete(l.Dimensions(c.Source), from, from+1)
	dst := src
	if !sameAxis {
		dst = l.Dimensions(c.Target)
	}

	idx := len(dst)
	if c.Index != nil {
		idx = *c.Index
		if idx < 0 {
			return l, errors.New(errors.ErrCodeIndexOutOfRange,
				"cannot move %q to %s: negative index %d", c.DimensionID, c.Target, idx)
		}
		if c.InsertAfter {
			idx++
		}
		// Removal shifted everything after the original slot left by one.
		if sameAxis && from < idx {
			idx--
		}
		if idx > len(dst) {
			return l, errors.New(errors.ErrCodeIndexOutOfRange,
				"cannot move %q to %s at %d: axis has %d dimensions", c.DimensionID, c.Target, *c.Index, l.Len(c.Target))
		}
	}

	next := l.Clone()
	if sameAxis {
		next.set(c.Target, slices.Insert(dst, idx, c.DimensionID))
		return next, nil
	}
	next.set(c.Source, src)
	next.set(c.Target, slices.Insert(dst, idx, c.DimensionID))
	return next, nil
}

func reduceRemove(l Layout, c Remove) (Layout, error) {
	if err := checkAxis(c.Axis); err != nil {
		return l, err
	}
	idx := l.IndexOf(c.Axis, c.DimensionID)
	if idx < 0 {
		return l, errors.New(errors.ErrCodeDimensionNotFound,
			"cannot remove %q: not on %s", c.DimensionID, c.Axis)
	}

	next := l.Clone()
	next.set(c.Axis, slices.Delete(l.Dimensions(c.Axis), idx, idx+1))
	return next, nil
}
