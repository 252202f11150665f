package layout

import (
	"strings"

	"github.com/matzehuels/vizlayout/pkg/errors"
)

// Axis identifies one of the three layout slots.
type Axis string

const (
	// NoAxis marks a dimension that is not placed on any axis, such as one
	// dragged in from the sidebar.
	NoAxis  Axis = ""
	Columns Axis = "columns"
	Rows    Axis = "rows"
	Filters Axis = "filters"
)

// Axes lists the axes in display order.
var Axes = []Axis{Columns, Rows, Filters}

// Valid reports whether a is one of the three axes.
func (a Axis) Valid() bool {
	return a.Order() >= 0
}

// Order returns the display position of the axis, or -1 if it is not valid.
func (a Axis) Order() int {
	switch a {
	case Columns:
		return 0
	case Rows:
		return 1
	case Filters:
		return 2
	}
	return -1
}

// String returns the axis name, or "none" for NoAxis.
func (a Axis) String() string {
	if a == NoAxis {
		return "none"
	}
	return string(a)
}

// ParseAxis parses an axis name case-insensitively.
func ParseAxis(s string) (Axis, error) {
	a := Axis(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return NoAxis, errors.New(errors.ErrCodeInvalidAxis, "unknown axis %q (want columns, rows or filters)", s)
	}
	return a, nil
}

func checkAxis(a Axis) error {
	if !a.Valid() {
		return errors.New(errors.ErrCodeInvalidAxis, "unknown axis %q", string(a))
	}
	return nil
}
