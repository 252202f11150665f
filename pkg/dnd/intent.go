package dnd

import (
	"github.com/matzehuels/vizlayout/pkg/errors"
	"github.com/matzehuels/vizlayout/pkg/layout"
)

// ResolveDrop converts a finished gesture into the layout command it asks
// for. It returns a nil command, and no error, when there is nothing to do:
// no active item, no target, or a target without a valid axis.
//
// The insertion index is 0 for an empty axis, the chip's sortable index for
// drops after a chip, and the sortable index minus one for drops before it.
// Drops on a non-empty axis outside any chip append. A negative index means
// the target metadata is inconsistent and is reported as an invariant
// violation.
func ResolveDrop(active *Active, over *Target) (layout.Command, error) {
	if active == nil || active.DimensionID == "" || over == nil || !over.Axis.Valid() {
		return nil, nil
	}

	index, err := insertionIndex(*over)
	if err != nil {
		return nil, err
	}

	if active.FromSidebar() {
		return layout.Add{
			Axis:        over.Axis,
			DimensionID: active.DimensionID,
			Index:       index,
		}, nil
	}
	return layout.Move{
		DimensionID: active.DimensionID,
		Source:      active.SourceAxis,
		Target:      over.Axis,
		Index:       index,
	}, nil
}

func insertionIndex(t Target) (*int, error) {
	if t.IsEmptyAxis {
		return layout.At(0), nil
	}
	switch t.Kind {
	case KindAxis:
		return nil, nil
	case KindChip:
		idx := t.Index
		if !t.InsertAfter {
			idx--
		}
		if idx < 0 {
			return nil, errors.New(errors.ErrCodeInvariant,
				"negative insertion index %d for target %q (chip index %d)", idx, t.ID, t.Index)
		}
		return layout.At(idx), nil
	}
	return nil, errors.New(errors.ErrCodeInvariant, "target %q has unknown kind %s", t.ID, t.Kind)
}
