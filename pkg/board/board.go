package board

import (
	"github.com/matzehuels/vizlayout/pkg/dnd"
	"github.com/matzehuels/vizlayout/pkg/geom"
	"github.com/matzehuels/vizlayout/pkg/layout"
)

// Chip is a measured dimension. Sidebar chips have Axis layout.NoAxis.
type Chip struct {
	Axis        layout.Axis `json:"axis,omitempty"`
	DimensionID string      `json:"dimensionId"`
	// Position is the 0-based index on the axis, or in the sidebar.
	Position int `json:"position"`
	// Line is the 0-based wrapped line the chip sits on.
	Line int       `json:"line"`
	Rect geom.Rect `json:"rect"`
}

// ID returns the draggable ID of the chip.
func (c Chip) ID() string {
	if c.Axis == layout.NoAxis {
		return dnd.SidebarID(c.DimensionID)
	}
	return dnd.ChipID(c.Axis, c.DimensionID)
}

// Active returns the chip as the item being dragged.
func (c Chip) Active() dnd.Active {
	r := c.Rect
	return dnd.Active{
		ID:          c.ID(),
		DimensionID: c.DimensionID,
		SourceAxis:  c.Axis,
		SourceIndex: c.Position,
		Rect:        &r,
	}
}

// Box is a measured axis container.
type Box struct {
	Axis  layout.Axis `json:"axis"`
	Empty bool        `json:"empty"`
	Lines int         `json:"lines"`
	Rect  geom.Rect   `json:"rect"`
	// Content is the part of Rect to the right of the axis title.
	Content geom.Rect `json:"content"`
}

// Board is a measured authoring surface.
type Board struct {
	Metrics Metrics `json:"metrics"`
	Sidebar []Chip  `json:"sidebar"`
	Axes    []Box   `json:"axes"`
	Chips   []Chip  `json:"chips"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// Measure lays out l. Dimensions from catalog that are not on any axis are
// listed in the sidebar, one per line, in catalog order.
func Measure(l layout.Layout, catalog []string, m Metrics) Board {
	m = m.WithDefaults()
	b := Board{Metrics: m, Width: m.Width}

	if m.SidebarWidth > 0 {
		y := 0.0
		for _, id := range catalog {
			if _, _, placed := l.Find(id); placed {
				continue
			}
			w := min(m.ChipWidth(id), m.SidebarWidth-m.ChipGap)
			b.Sidebar = append(b.Sidebar, Chip{
				DimensionID: id,
				Position:    len(b.Sidebar),
				Line:        len(b.Sidebar),
				Rect:        geom.Rect{Top: y, Left: 0, Width: w, Height: m.ChipHeight},
			})
			y += m.ChipHeight + m.LineGap
		}
		b.Height = y - m.LineGap
	}

	x0 := m.SidebarWidth
	top := 0.0
	for _, a := range layout.Axes {
		box := measureAxis(&b, a, l.Dimensions(a), x0, top)
		b.Axes = append(b.Axes, box)
		top = box.Rect.Bottom() + m.AxisGap
	}
	b.Height = max(b.Height, top-m.AxisGap)
	return b
}

func measureAxis(b *Board, a layout.Axis, dims []string, x0, top float64) Box {
	m := b.Metrics
	left := x0 + m.LabelWidth
	x, y, line := left, top, 0
	for i, id := range dims {
		w := m.ChipWidth(id)
		if x > left && x+w > m.Width {
			x = left
			y += m.ChipHeight + m.LineGap
			line++
		}
		b.Chips = append(b.Chips, Chip{
			Axis:        a,
			DimensionID: id,
			Position:    i,
			Line:        line,
			Rect:        geom.Rect{Top: y, Left: x, Width: w, Height: m.ChipHeight},
		})
		x += w + m.ChipGap
		b.Width = max(b.Width, x-m.ChipGap)
	}

	height := y + m.ChipHeight - top
	width := m.Width - x0
	return Box{
		Axis:    a,
		Empty:   len(dims) == 0,
		Lines:   line + 1,
		Rect:    geom.Rect{Top: top, Left: x0, Width: width, Height: height},
		Content: geom.Rect{Top: top, Left: left, Width: width - m.LabelWidth, Height: height},
	}
}

// Targets returns the droppable targets of the board: one per axis and a
// before and an after half per chip. Sidebar chips are not droppable.
func (b Board) Targets() []dnd.Target {
	targets := make([]dnd.Target, 0, len(b.Axes)+2*len(b.Chips))
	for _, box := range b.Axes {
		r := box.Rect
		targets = append(targets, dnd.AxisTarget(box.Axis, box.Empty, &r))
	}
	for _, c := range b.Chips {
		half := c.Rect.Width / 2
		before := geom.Rect{Top: c.Rect.Top, Left: c.Rect.Left, Width: half, Height: c.Rect.Height}
		after := before.Translate(half, 0)
		targets = append(targets,
			dnd.ChipTarget(c.Axis, c.DimensionID, c.Position, false, &before),
			dnd.ChipTarget(c.Axis, c.DimensionID, c.Position, true, &after),
		)
	}
	return targets
}

// ChipAt returns the axis or sidebar chip under the point (x, y).
func (b Board) ChipAt(x, y float64) (Chip, bool) {
	for _, c := range b.Chips {
		if c.Rect.Contains(x, y) {
			return c, true
		}
	}
	for _, c := range b.Sidebar {
		if c.Rect.Contains(x, y) {
			return c, true
		}
	}
	return Chip{}, false
}

// Find returns the measured chip for id, searching axes then the sidebar.
func (b Board) Find(id string) (Chip, bool) {
	for _, c := range b.Chips {
		if c.DimensionID == id {
			return c, true
		}
	}
	for _, c := range b.Sidebar {
		if c.DimensionID == id {
			return c, true
		}
	}
	return Chip{}, false
}

// Axis returns the measured box of a.
func (b Board) Axis(a layout.Axis) (Box, bool) {
	for _, box := range b.Axes {
		if box.Axis == a {
			return box, true
		}
	}
	return Box{}, false
}
