package cli

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/vizlayout/pkg/board"
	"github.com/matzehuels/vizlayout/pkg/dnd"
	"github.com/matzehuels/vizlayout/pkg/errors"
	"github.com/matzehuels/vizlayout/pkg/geom"
	"github.com/matzehuels/vizlayout/pkg/layout"
)

// headerRows is the number of terminal rows above the board.
const headerRows = 3

// defaultEditorCols is the board width before the terminal reports its size.
const defaultEditorCols = 100

// layoutChangedMsg is sent when the store publishes a new layout.
type layoutChangedMsg struct {
	layout  layout.Layout
	version uint64
}

// layoutForwarder hands store notifications to a running program. Publish
// never blocks, so it is safe to call from a store listener while the
// program is inside Update. Only the newest pending layout is kept.
type layoutForwarder struct {
	mu     sync.Mutex
	latest *layoutChangedMsg
	wake   chan struct{}
}

func newLayoutForwarder() *layoutForwarder {
	return &layoutForwarder{wake: make(chan struct{}, 1)}
}

// publish records l unless a newer version is already pending.
func (f *layoutForwarder) publish(l layout.Layout, version uint64) {
	f.mu.Lock()
	if f.latest == nil || version > f.latest.version {
		f.latest = &layoutChangedMsg{layout: l, version: version}
	}
	f.mu.Unlock()

	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// run delivers pending layouts through send, in version order, until ctx
// is done.
func (f *layoutForwarder) run(ctx context.Context, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-f.wake:
		}

		f.mu.Lock()
		msg := f.latest
		f.latest = nil
		f.mu.Unlock()

		if msg != nil {
			send(*msg)
		}
	}
}

// =============================================================================
// EditorModel - Interactive drag-and-drop layout editor
// =============================================================================

// dragState is the chip held by the mouse and where it was grabbed.
type dragState struct {
	chip   board.Chip
	grabDX float64
	grabDY float64
	rect   geom.Rect
}

// EditorModel is the bubbletea model for the layout editor. Mouse events are
// converted to board units (board.CellWidth by board.CellHeight per cell) and
// fed to a dnd.Controller.
type EditorModel struct {
	ctx     context.Context
	store   *layout.Store
	ctrl    *dnd.Controller
	catalog []string

	cols    int
	board   board.Board
	version uint64
	drag    *dragState
	over    *dnd.Target
	status  string
	failed  bool
}

// NewEditorModel creates an editor over store. catalog lists the dimensions
// offered in the sidebar.
func NewEditorModel(ctx context.Context, store *layout.Store, ctrl *dnd.Controller, catalog []string) EditorModel {
	m := EditorModel{
		ctx:     ctx,
		store:   store,
		ctrl:    ctrl,
		catalog: catalog,
		cols:    defaultEditorCols,
	}
	m.refresh()
	return m
}

func (m EditorModel) measure(l layout.Layout) board.Board {
	return board.Measure(l, m.catalog, board.CellMetrics(m.cols))
}

// refresh re-measures the board from the store.
func (m *EditorModel) refresh() {
	l, v := m.store.Snapshot()
	m.board, m.version = m.measure(l), v
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.ctrl.Cancel(m.ctx)
			return m, tea.Quit
		case "esc":
			if m.ctrl.Cancel(m.ctx) {
				m.setStatus("drag cancelled", false)
			}
			m.drag, m.over = nil, nil
		}
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width, 40)
		m.refresh()
	case layoutChangedMsg:
		if m.drag == nil && msg.version > m.version {
			m.board, m.version = m.measure(msg.layout), msg.version
		}
	case tea.MouseMsg:
		return m.mouse(msg), nil
	}
	return m, nil
}

// point converts a terminal cell to the board units at its center.
func point(x, y int) (float64, float64) {
	return float64(x*board.CellWidth) + board.CellWidth/2,
		float64((y-headerRows)*board.CellHeight) + board.CellHeight/2
}

func (m EditorModel) mouse(msg tea.MouseMsg) EditorModel {
	x, y := point(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			return m.press(x, y)
		case tea.MouseButtonRight:
			return m.remove(x, y)
		}
	case tea.MouseActionMotion:
		if m.drag != nil {
			return m.motion(x, y)
		}
	case tea.MouseActionRelease:
		if m.drag != nil {
			return m.release()
		}
	}
	return m
}

func (m EditorModel) press(x, y float64) EditorModel {
	chip, ok := m.board.ChipAt(x, y)
	if !ok {
		return m
	}
	if _, err := m.ctrl.Start(m.ctx, chip.Active()); err != nil {
		m.setStatus(errors.UserMessage(err), true)
		return m
	}
	m.drag = &dragState{
		chip:   chip,
		grabDX: x - chip.Rect.Left,
		grabDY: y - chip.Rect.Top,
		rect:   chip.Rect,
	}
	m.over = nil
	m.setStatus(fmt.Sprintf("dragging %s", chip.DimensionID), false)
	return m
}

func (m EditorModel) motion(x, y float64) EditorModel {
	d := *m.drag
	d.rect = geom.Rect{Top: y - d.grabDY, Left: x - d.grabDX, Width: d.chip.Rect.Width, Height: d.chip.Rect.Height}
	m.drag = &d

	over, ok, err := m.ctrl.Over(m.ctx, &d.rect, m.board.Targets())
	if err != nil {
		m.setStatus(errors.UserMessage(err), true)
		return m
	}
	m.over = nil
	if ok {
		m.over = &over
	}
	return m
}

func (m EditorModel) release() EditorModel {
	id := m.drag.chip.DimensionID
	m.drag, m.over = nil, nil

	cmd, err := m.ctrl.End(m.ctx)
	m.refresh()
	switch {
	case err != nil:
		m.setStatus(errors.UserMessage(err), true)
	case cmd == nil:
		m.setStatus(fmt.Sprintf("%s dropped outside any axis", id), false)
	default:
		m.setStatus(fmt.Sprint(cmd), false)
	}
	return m
}

func (m EditorModel) remove(x, y float64) EditorModel {
	if m.drag != nil {
		return m
	}
	chip, ok := m.board.ChipAt(x, y)
	if !ok || chip.Axis == layout.NoAxis {
		return m
	}
	cmd := layout.Remove{Axis: chip.Axis, DimensionID: chip.DimensionID}
	if err := m.store.Dispatch(m.ctx, cmd); err != nil {
		m.setStatus(errors.UserMessage(err), true)
		return m
	}
	m.refresh()
	m.setStatus(fmt.Sprint(cmd), false)
	return m
}

func (m *EditorModel) setStatus(s string, failed bool) {
	m.status, m.failed = s, failed
}

// Layout returns the layout the editor currently shows.
func (m EditorModel) Layout() layout.Layout {
	return m.store.Layout()
}

// =============================================================================
// Rendering
// =============================================================================

// segment is a styled run of text starting at a terminal column.
type segment struct {
	col   int
	text  string
	style lipgloss.Style
}

func (s segment) end() int {
	return s.col + lipgloss.Width(s.text)
}

// canvas collects segments per board row.
type canvas [][]segment

func (c canvas) put(row int, s segment) {
	if row < 0 || row >= len(c) || s.col < 0 {
		return
	}
	c[row] = append(c[row], s)
}

// overlay places s on top of every segment it overlaps.
func (c canvas) overlay(row int, s segment) {
	if row < 0 || row >= len(c) {
		return
	}
	kept := c[row][:0]
	for _, o := range c[row] {
		if o.end() <= s.col || o.col >= s.end() {
			kept = append(kept, o)
		}
	}
	c[row] = append(kept, s)
}

func (c canvas) render(b *strings.Builder) {
	for _, segs := range c {
		sort.SliceStable(segs, func(i, j int) bool { return segs[i].col < segs[j].col })
		col := 0
		for _, s := range segs {
			if s.col < col {
				continue
			}
			b.WriteString(strings.Repeat(" ", s.col-col))
			b.WriteString(s.style.Render(s.text))
			col = s.end()
		}
		b.WriteString("\n")
	}
}

func cell(r geom.Rect) (row, col, width int) {
	return int(math.Round(r.Top / board.CellHeight)),
		int(math.Round(r.Left / board.CellWidth)),
		int(math.Round(r.Width / board.CellWidth))
}

// chipText pads id to a chip of width cells.
func chipText(id string, width int) string {
	s := " " + id + " "
	if r := []rune(s); len(r) > width {
		s = string(r[:max(width, 0)])
	}
	return s
}

func axisTitle(a layout.Axis) string {
	s := a.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

func (m EditorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("vizlayout"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render("drag to place · right-click removes · esc cancels · q quit"))
	b.WriteString("\n\n")

	rows := int(math.Ceil(m.board.Height/board.CellHeight)) + 1
	if m.drag != nil {
		if r, _, _ := cell(m.drag.rect); r+1 > rows {
			rows = r + 1
		}
	}
	c := make(canvas, rows)

	for _, chip := range m.board.Sidebar {
		row, col, w := cell(chip.Rect)
		c.put(row, segment{col: col, text: chipText(chip.DimensionID, w), style: styleChip})
	}

	for _, box := range m.board.Axes {
		row, col, _ := cell(box.Rect)
		style := styleAxisLabel
		if m.over != nil && m.over.Kind == dnd.KindAxis && m.over.Axis == box.Axis {
			style = styleAxisTarget
		}
		c.put(row, segment{col: col, text: axisTitle(box.Axis), style: style})
		if box.Empty {
			_, ccol, _ := cell(box.Content)
			c.put(row, segment{col: ccol, text: "drop here", style: StyleDim})
		}
	}

	for _, chip := range m.board.Chips {
		row, col, w := cell(chip.Rect)
		style := styleChip
		if m.drag != nil && m.drag.chip.ID() == chip.ID() {
			style = StyleDim
		}
		if o := m.over; o != nil && o.Kind == dnd.KindChip && o.Axis == chip.Axis && o.DimensionID == chip.DimensionID {
			style = styleChipTarget
			bar := col - 1
			if o.InsertAfter {
				bar = col + w
			}
			c.put(row, segment{col: bar, text: "│", style: styleAxisTarget})
		}
		c.put(row, segment{col: col, text: chipText(chip.DimensionID, w), style: style})
	}

	if d := m.drag; d != nil {
		row, col, w := cell(d.rect)
		c.overlay(row, segment{col: max(col, 0), text: chipText(d.chip.DimensionID, w), style: styleChipGhost})
	}

	c.render(&b)

	b.WriteString("\n")
	switch {
	case m.status == "":
		b.WriteString(StyleDim.Render(m.store.Layout().String()))
	case m.failed:
		b.WriteString(styleIconError.Render(iconError) + " " + m.status)
	default:
		b.WriteString(styleIconInfo.Render(iconInfo) + " " + m.status)
	}
	b.WriteString("\n")
	return b.String()
}
