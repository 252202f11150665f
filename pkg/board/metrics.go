package board

import "unicode/utf8"

// Metrics sizes the elements of a board.
type Metrics struct {
	// Width is the total width available, sidebar included.
	Width float64 `json:"width" toml:"width" yaml:"width"`
	// SidebarWidth is the width of the sidebar column; 0 hides it.
	SidebarWidth float64 `json:"sidebarWidth" toml:"sidebar_width" yaml:"sidebar_width"`
	// LabelWidth is reserved at the start of each axis for its title.
	LabelWidth float64 `json:"labelWidth" toml:"label_width" yaml:"label_width"`

	CharWidth   float64 `json:"charWidth" toml:"char_width" yaml:"char_width"`
	ChipHeight  float64 `json:"chipHeight" toml:"chip_height" yaml:"chip_height"`
	ChipPadding float64 `json:"chipPadding" toml:"chip_padding" yaml:"chip_padding"`
	ChipGap     float64 `json:"chipGap" toml:"chip_gap" yaml:"chip_gap"`
	LineGap     float64 `json:"lineGap" toml:"line_gap" yaml:"line_gap"`
	AxisGap     float64 `json:"axisGap" toml:"axis_gap" yaml:"axis_gap"`
}

// DefaultMetrics returns pixel-like metrics for an 800 unit wide surface.
func DefaultMetrics() Metrics {
	return Metrics{
		Width:        800,
		SidebarWidth: 160,
		LabelWidth:   80,
		CharWidth:    8,
		ChipHeight:   24,
		ChipPadding:  8,
		ChipGap:      4,
		LineGap:      4,
		AxisGap:      12,
	}
}

// Cell sizes used by CellMetrics.
const (
	CellWidth  = 8
	CellHeight = 16
)

// CellMetrics returns metrics for a terminal that is cols cells wide. Every
// edge falls on a cell boundary: x/CellWidth and y/CellHeight are cell
// coordinates.
func CellMetrics(cols int) Metrics {
	return Metrics{
		Width:        float64(cols * CellWidth),
		SidebarWidth: 18 * CellWidth,
		LabelWidth:   10 * CellWidth,
		CharWidth:    CellWidth,
		ChipHeight:   CellHeight,
		ChipPadding:  CellWidth,
		ChipGap:      CellWidth,
		LineGap:      0,
		AxisGap:      CellHeight,
	}
}

// ChipWidth returns the width of the chip labelled id.
func (m Metrics) ChipWidth(id string) float64 {
	return float64(utf8.RuneCountInString(id))*m.CharWidth + 2*m.ChipPadding
}

// WithDefaults fills zero sizes from DefaultMetrics. Gaps and the sidebar
// may legitimately be zero and are kept.
func (m Metrics) WithDefaults() Metrics {
	d := DefaultMetrics()
	if m.Width <= 0 {
		m.Width = d.Width
	}
	if m.CharWidth <= 0 {
		m.CharWidth = d.CharWidth
	}
	if m.ChipHeight <= 0 {
		m.ChipHeight = d.ChipHeight
	}
	return m
}
