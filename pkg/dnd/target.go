package dnd

import (
	"fmt"

	"github.com/matzehuels/vizlayout/pkg/geom"
	"github.com/matzehuels/vizlayout/pkg/layout"
)

// Kind classifies a drop target.
type Kind int

const (
	// KindAxis is a whole, possibly empty, axis container.
	KindAxis Kind = iota
	// KindChip is a dimension already placed on an axis.
	KindChip
)

// String returns "axis" or "chip".
func (k Kind) String() string {
	switch k {
	case KindAxis:
		return "axis"
	case KindChip:
		return "chip"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case KindAxis, KindChip:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("invalid target kind %d", int(k))
}

// UnmarshalText decodes "axis" or "chip".
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "axis":
		*k = KindAxis
	case "chip":
		*k = KindChip
	default:
		return fmt.Errorf("invalid target kind %q (want axis or chip)", string(b))
	}
	return nil
}

// Active is the item being dragged.
type Active struct {
	// ID identifies the dragged entity among droppables; a target with the
	// same ID is never a collision.
	ID          string `json:"id"`
	DimensionID string `json:"dimensionId"`
	// SourceAxis is layout.NoAxis for items dragged in from the sidebar.
	SourceAxis layout.Axis `json:"sourceAxis,omitempty"`
	// SourceIndex is the item's position on SourceAxis.
	SourceIndex int `json:"sourceIndex,omitempty"`
	// Rect is nil until the host has measured the dragged element.
	Rect *geom.Rect `json:"rect,omitempty"`
}

// FromSidebar reports whether the item is not yet on any axis.
func (a Active) FromSidebar() bool {
	return a.SourceAxis == layout.NoAxis
}

// Target is a possible drop location measured during a gesture.
type Target struct {
	ID   string      `json:"id"`
	Kind Kind        `json:"kind"`
	Axis layout.Axis `json:"axis"`

	// IsEmptyAxis is set on axis targets whose axis holds no chips.
	IsEmptyAxis bool `json:"isEmptyAxis,omitempty"`

	// Chip fields.
	DimensionID string `json:"dimensionId,omitempty"`
	// Index is the chip's position in the axis's sortable context. The
	// context counts the axis slot first, so the first chip reports 1.
	Index int `json:"index,omitempty"`
	// InsertAfter means a drop here lands after the chip rather than
	// before it.
	InsertAfter bool `json:"insertAfter,omitempty"`

	// Rect is nil when the target has not been measured yet.
	Rect *geom.Rect `json:"rect,omitempty"`
}

// AxisTarget builds an axis-container target.
func AxisTarget(axis layout.Axis, empty bool, rect *geom.Rect) Target {
	return Target{
		ID:          AxisTargetID(axis),
		Kind:        KindAxis,
		Axis:        axis,
		IsEmptyAxis: empty,
		Rect:        rect,
	}
}

// ChipTarget builds a chip target for the dimension at position (0-based)
// on axis. The sortable index stored on the target is position+1.
func ChipTarget(axis layout.Axis, dimensionID string, position int, insertAfter bool, rect *geom.Rect) Target {
	side := "before"
	if insertAfter {
		side = "after"
	}
	return Target{
		ID:          fmt.Sprintf("%s:%s", ChipID(axis, dimensionID), side),
		Kind:        KindChip,
		Axis:        axis,
		DimensionID: dimensionID,
		Index:       position + 1,
		InsertAfter: insertAfter,
		Rect:        rect,
	}
}

// AxisTargetID is the droppable ID of an axis container.
func AxisTargetID(axis layout.Axis) string {
	return "axis/" + string(axis)
}

// ChipID is the draggable ID of a placed dimension.
func ChipID(axis layout.Axis, dimensionID string) string {
	return string(axis) + "/" + dimensionID
}

// SidebarID is the draggable ID of an unplaced dimension.
func SidebarID(dimensionID string) string {
	return "sidebar/" + dimensionID
}
