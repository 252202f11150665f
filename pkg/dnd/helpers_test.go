package dnd

import (
	"github.com/matzehuels/vizlayout/pkg/geom"
	"github.com/matzehuels/vizlayout/pkg/layout"
)

func rect(top, left, width, height float64) *geom.Rect {
	return &geom.Rect{Top: top, Left: left, Width: width, Height: height}
}

// chip builds a whole-chip target (no before/after halves) at position on axis.
func chip(axis layout.Axis, id string, position int, r *geom.Rect) Target {
	t := ChipTarget(axis, id, position, false, r)
	t.ID = ChipID(axis, id)
	return t
}
