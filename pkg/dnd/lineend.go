package dnd

import (
	"math"
	"slices"

	"github.com/matzehuels/vizlayout/pkg/geom"
	"github.com/matzehuels/vizlayout/pkg/layout"
)

// ResolveLineEnd finds where a drop over open space on axis should land
// when its chips wrap onto several visual lines. Chips are grouped into
// lines by their vertical center rounded to the nearest integer; the line
// nearest to the dragged rectangle's center wins (the upper one on a tie)
// and its rightmost chip is returned with InsertAfter set.
//
// It returns false when axis has no measured chips.
func ResolveLineEnd(dragged geom.Rect, axis layout.Axis, targets []Target) (Target, bool) {
	return resolveLineEnd(Active{}, dragged, axis, targets)
}

func resolveLineEnd(active Active, dragged geom.Rect, axis layout.Axis, targets []Target) (Target, bool) {
	center := dragged.CenterY()

	lines := make(map[float64][]Target)
	for _, t := range targets {
		if t.Kind != KindChip || t.Axis != axis || t.Rect == nil || isSelf(active, t) {
			continue
		}
		y := math.Round(t.Rect.CenterY())
		lines[y] = append(lines[y], t)
	}
	if len(lines) == 0 {
		return Target{}, false
	}

	ys := make([]float64, 0, len(lines))
	for y := range lines {
		ys = append(ys, y)
	}
	slices.Sort(ys)

	nearest := ys[0]
	for _, y := range ys[1:] {
		if math.Abs(y-center) < math.Abs(nearest-center) {
			nearest = y
		}
	}

	line := lines[nearest]
	end := line[0]
	for _, t := range line[1:] {
		if t.Rect.Right() > end.Rect.Right() {
			end = t
		}
	}
	end.InsertAfter = true
	return end, true
}
