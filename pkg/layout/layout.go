package layout

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/vizlayout/pkg/errors"
)

// Layout is the aggregate of the three axes.
type Layout struct {
	Columns []string `json:"columns" toml:"columns" yaml:"columns"`
	Rows    []string `json:"rows" toml:"rows" yaml:"rows"`
	Filters []string `json:"filters" toml:"filters" yaml:"filters"`
}

// Dimensions returns a copy of the dimension identifiers on axis a.
// Invalid axes yield an empty slice.
func (l Layout) Dimensions(a Axis) []string {
	return cloneAxis(l.axis(a))
}

// Len returns the number of dimensions on axis a.
func (l Layout) Len(a Axis) int {
	return len(l.axis(a))
}

// IndexOf returns the position of id on axis a, or -1.
func (l Layout) IndexOf(a Axis, id string) int {
	return slices.Index(l.axis(a), id)
}

// Find returns the axis and position of id.
func (l Layout) Find(id string) (Axis, int, bool) {
	for _, a := range Axes {
		if i := l.IndexOf(a, id); i >= 0 {
			return a, i, true
		}
	}
	return NoAxis, -1, false
}

// Clone returns a deep copy. Empty axes are non-nil so they encode as [].
func (l Layout) Clone() Layout {
	return Layout{
		Columns: cloneAxis(l.Columns),
		Rows:    cloneAxis(l.Rows),
		Filters: cloneAxis(l.Filters),
	}
}

// Equal reports whether both layouts hold the same dimensions in the same
// order. Nil and empty axes are equal.
func (l Layout) Equal(o Layout) bool {
	return slices.Equal(l.Columns, o.Columns) &&
		slices.Equal(l.Rows, o.Rows) &&
		slices.Equal(l.Filters, o.Filters)
}

// Validate checks that every identifier is well formed and that no
// dimension appears twice within or across axes.
func (l Layout) Validate() error {
	seen := make(map[string]Axis)
	for _, a := range Axes {
		for _, id := range l.axis(a) {
			if err := errors.ValidateDimensionID(id); err != nil {
				return err
			}
			if prev, ok := seen[id]; ok {
				return errors.New(errors.ErrCodeDuplicateDimension,
					"dimension %q appears on %s and %s", id, prev, a)
			}
			seen[id] = a
		}
	}
	return nil
}

// String renders the layout on one line, e.g. "columns=[dx] rows=[pe] filters=[ou]".
func (l Layout) String() string {
	parts := make([]string, len(Axes))
	for i, a := range Axes {
		parts[i] = fmt.Sprintf("%s=[%s]", a, strings.Join(l.axis(a), " "))
	}
	return strings.Join(parts, " ")
}

func (l Layout) axis(a Axis) []string {
	switch a {
	case Columns:
		return l.Columns
	case Rows:
		return l.Rows
	case Filters:
		return l.Filters
	}
	return nil
}

func (l *Layout) set(a Axis, dims []string) {
	switch a {
	case Columns:
		l.Columns = dims
	case Rows:
		l.Rows = dims
	case Filters:
		l.Filters = dims
	}
}

func cloneAxis(dims []string) []string {
	out := make([]string, len(dims))
	copy(out, dims)
	return out
}
