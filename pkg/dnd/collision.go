package dnd

import (
	"github.com/matzehuels/vizlayout/pkg/geom"
	"github.com/matzehuels/vizlayout/pkg/layout"
)

// DefaultPadding is the vertical margin added above and below the dragged
// rectangle before scoring. Chips are shorter than the row they sit in.
const DefaultPadding = 9

// Option configures a Detector.
type Option func(*Detector)

// WithPadding sets the vertical padding applied to the dragged rectangle.
func WithPadding(p float64) Option {
	return func(d *Detector) {
		d.padding = p
	}
}

// Detector picks the drop target for a dragged rectangle.
// A Detector holds only configuration and is safe for concurrent use.
type Detector struct {
	padding float64
}

// NewDetector returns a Detector with DefaultPadding unless overridden.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{padding: DefaultPadding}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Padding returns the configured vertical padding.
func (d *Detector) Padding() float64 {
	return d.padding
}

// Detect returns the best target for active among targets, or false when
// nothing overlaps. Targets without a rectangle and targets that are the
// active item itself are ignored.
//
// A chip with any overlap wins over every axis. Without a chip, the best
// axis is returned directly when it holds no chips; otherwise the drop is
// resolved to the end of the nearest line of chips on that axis.
func (d *Detector) Detect(active Active, targets []Target) (Target, bool) {
	if active.Rect == nil {
		return Target{}, false
	}
	dragged := active.Rect.Expand(d.padding)

	var (
		bestChip, bestAxis   Target
		chipScore, axisScore float64
		haveChip, haveAxis   bool
	)
	for _, t := range targets {
		if t.Rect == nil || isSelf(active, t) {
			continue
		}
		score := geom.IntersectionRatio(dragged, *t.Rect)
		if score <= 0 {
			continue
		}
		switch t.Kind {
		case KindChip:
			if !haveChip || beats(t, score, bestChip, chipScore) {
				bestChip, chipScore, haveChip = t, score, true
			}
		case KindAxis:
			if !haveAxis || beats(t, score, bestAxis, axisScore) {
				bestAxis, axisScore, haveAxis = t, score, true
			}
		}
	}

	if haveChip {
		return bestChip, true
	}
	if !haveAxis {
		return Target{}, false
	}
	if !hasChips(active, bestAxis.Axis, targets) {
		return bestAxis, true
	}
	if end, ok := resolveLineEnd(active, dragged, bestAxis.Axis, targets); ok {
		return end, true
	}
	return bestAxis, true
}

// beats reports whether candidate t with score should replace best.
// Ties go to the lower chip index, then the earlier axis, otherwise the
// target seen first keeps its place.
func beats(t Target, score float64, best Target, bestScore float64) bool {
	if score != bestScore {
		return score > bestScore
	}
	if t.Kind == KindChip && t.Index != best.Index {
		return t.Index < best.Index
	}
	return t.Axis.Order() < best.Axis.Order()
}

// isSelf reports whether t is the dragged entity or one of its chip zones.
func isSelf(active Active, t Target) bool {
	if active.ID != "" && t.ID == active.ID {
		return true
	}
	return t.Kind == KindChip && active.DimensionID != "" && t.DimensionID == active.DimensionID
}

func hasChips(active Active, axis layout.Axis, targets []Target) bool {
	for _, t := range targets {
		if t.Kind == KindChip && t.Axis == axis && !isSelf(active, t) {
			return true
		}
	}
	return false
}
