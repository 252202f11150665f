package cli

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/vizlayout/pkg/dnd"
	"github.com/matzehuels/vizlayout/pkg/layout"
)

// newTestEditor returns an editor 100 cells wide with pe and ts in the
// sidebar and dx on the columns axis.
//
// In board units the sidebar chip pe spans x 0..32, y 0..16 (cells 0-3 of
// screen row 3), dx spans x 224..256 on the columns axis (cells 28-31 of
// row 3) and the empty rows axis spans y 32..48 (screen row 5).
func newTestEditor(t *testing.T) EditorModel {
	t.Helper()
	logger := log.New(io.Discard)
	store, err := layout.NewStore(layout.Layout{Columns: []string{"dx"}}, logger)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	ctrl := dnd.NewController(store, nil, logger)
	return NewEditorModel(context.Background(), store, ctrl, []string{"pe", "dx", "ts"})
}

func mouse(x, y int, action tea.MouseAction, button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func send(m EditorModel, msgs ...tea.Msg) EditorModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(EditorModel)
	}
	return m
}

func TestEditorDragFromSidebar(t *testing.T) {
	m := newTestEditor(t)

	m = send(m,
		mouse(1, 3, tea.MouseActionPress, tea.MouseButtonLeft),
		mouse(40, 5, tea.MouseActionMotion, tea.MouseButtonLeft),
	)
	if m.drag == nil {
		t.Fatal("expected a drag in progress")
	}
	if m.over == nil || m.over.ID != dnd.AxisTargetID(layout.Rows) {
		t.Fatalf("over = %+v, want the rows axis", m.over)
	}
	if !strings.Contains(m.View(), "pe") {
		t.Error("view does not show the dragged chip")
	}

	m = send(m, mouse(40, 5, tea.MouseActionRelease, tea.MouseButtonNone))
	if m.drag != nil || m.ctrl.Active() {
		t.Error("drag still active after release")
	}
	got := m.Layout()
	if len(got.Rows) != 1 || got.Rows[0] != "pe" {
		t.Errorf("rows = %v, want [pe]", got.Rows)
	}
	if _, ok := m.board.Find("pe"); !ok {
		t.Error("board not re-measured after drop")
	}
	if len(m.board.Sidebar) != 1 || m.board.Sidebar[0].DimensionID != "ts" {
		t.Errorf("sidebar = %+v, want only ts", m.board.Sidebar)
	}
}

func TestEditorRightClickRemoves(t *testing.T) {
	m := newTestEditor(t)

	m = send(m, mouse(29, 3, tea.MouseActionPress, tea.MouseButtonRight))
	if got := m.Layout().Columns; len(got) != 0 {
		t.Errorf("columns = %v, want empty", got)
	}
	if m.failed {
		t.Errorf("status = %q, want success", m.status)
	}
}

func TestEditorRightClickOnSidebarIgnored(t *testing.T) {
	m := newTestEditor(t)

	m = send(m, mouse(1, 3, tea.MouseActionPress, tea.MouseButtonRight))
	if got := m.Layout(); !got.Equal(layout.Layout{Columns: []string{"dx"}}) {
		t.Errorf("layout = %v, want unchanged", got)
	}
}

func TestEditorEscCancels(t *testing.T) {
	m := newTestEditor(t)

	m = send(m,
		mouse(1, 3, tea.MouseActionPress, tea.MouseButtonLeft),
		mouse(40, 5, tea.MouseActionMotion, tea.MouseButtonLeft),
		tea.KeyMsg{Type: tea.KeyEsc},
		mouse(40, 5, tea.MouseActionRelease, tea.MouseButtonNone),
	)
	if m.ctrl.Active() {
		t.Error("drag still active after esc")
	}
	if got := m.Layout(); len(got.Rows) != 0 {
		t.Errorf("rows = %v, want empty", got.Rows)
	}
	if m.status != "drag cancelled" {
		t.Errorf("status = %q", m.status)
	}
}

func TestEditorDropOutside(t *testing.T) {
	m := newTestEditor(t)

	m = send(m,
		mouse(1, 3, tea.MouseActionPress, tea.MouseButtonLeft),
		mouse(1, 20, tea.MouseActionMotion, tea.MouseButtonLeft),
		mouse(1, 20, tea.MouseActionRelease, tea.MouseButtonNone),
	)
	if got := m.Layout(); !got.Equal(layout.Layout{Columns: []string{"dx"}}) {
		t.Errorf("layout = %v, want unchanged", got)
	}
	if !strings.Contains(m.status, "outside") {
		t.Errorf("status = %q", m.status)
	}
}

func TestEditorPressOnNothing(t *testing.T) {
	m := newTestEditor(t)

	m = send(m, mouse(60, 0, tea.MouseActionPress, tea.MouseButtonLeft))
	if m.drag != nil || m.ctrl.Active() {
		t.Error("press outside any chip started a drag")
	}
}

func TestEditorWindowResize(t *testing.T) {
	m := newTestEditor(t)

	m = send(m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if m.board.Width != 60*8 {
		t.Errorf("board width = %v, want %v", m.board.Width, 60*8)
	}
}

func TestEditorLayoutChanged(t *testing.T) {
	m := newTestEditor(t)

	next := layout.Layout{Columns: []string{"dx", "pe"}}
	m = send(m, layoutChangedMsg{layout: next, version: 1})
	if _, ok := m.board.Find("pe"); !ok {
		t.Fatal("pe not measured")
	}
	if c, _ := m.board.Find("pe"); c.Axis != layout.Columns {
		t.Errorf("pe on %q, want columns", c.Axis)
	}
}

func TestEditorDropsStaleLayout(t *testing.T) {
	m := newTestEditor(t)

	newer := layout.Layout{Columns: []string{"dx", "pe"}}
	older := layout.Layout{Columns: []string{"dx"}, Rows: []string{"ts"}}
	m = send(m,
		layoutChangedMsg{layout: newer, version: 2},
		layoutChangedMsg{layout: older, version: 1},
	)
	if c, ok := m.board.Find("pe"); !ok || c.Axis != layout.Columns {
		t.Errorf("pe = %+v, want on columns from version 2", c)
	}
	if c, _ := m.board.Find("ts"); c.Axis != layout.NoAxis {
		t.Errorf("ts on %q, want the sidebar", c.Axis)
	}
	if m.version != 2 {
		t.Errorf("version = %d, want 2", m.version)
	}
}

func TestLayoutForwarderKeepsNewest(t *testing.T) {
	fwd := newLayoutForwarder()
	fwd.publish(layout.Layout{Columns: []string{"a"}}, 1)
	fwd.publish(layout.Layout{Columns: []string{"a", "b"}}, 3)
	fwd.publish(layout.Layout{Columns: []string{"b"}}, 2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan tea.Msg, 4)
	go fwd.run(ctx, func(msg tea.Msg) { got <- msg })

	msg := (<-got).(layoutChangedMsg)
	if msg.version != 3 || len(msg.layout.Columns) != 2 {
		t.Errorf("forwarded %+v, want version 3", msg)
	}

	fwd.publish(layout.Layout{Columns: []string{"c"}}, 4)
	if msg := (<-got).(layoutChangedMsg); msg.version != 4 {
		t.Errorf("forwarded version %d, want 4", msg.version)
	}
}

func TestLayoutForwarderFromStore(t *testing.T) {
	store, err := layout.NewStore(layout.Layout{}, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	fwd := newLayoutForwarder()
	defer store.Subscribe(fwd.publish)()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan tea.Msg, 8)
	go fwd.run(ctx, func(msg tea.Msg) { got <- msg })

	for _, id := range []string{"a", "b", "c"} {
		if err := store.Dispatch(ctx, layout.Add{Axis: layout.Rows, DimensionID: id}); err != nil {
			t.Fatalf("Dispatch: %v", err)
		}
	}

	var last uint64
	for last < 3 {
		msg := (<-got).(layoutChangedMsg)
		if msg.version <= last {
			t.Fatalf("version %d after %d", msg.version, last)
		}
		last = msg.version
	}
}

func TestEditorView(t *testing.T) {
	m := newTestEditor(t)

	view := m.View()
	for _, want := range []string{"Columns", "Rows", "Filters", "dx", "pe", "ts", "drop here"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestChipText(t *testing.T) {
	tests := []struct {
		id    string
		width int
		want  string
	}{
		{"dx", 4, " dx "},
		{"region", 8, " region "},
		{"region", 4, " reg"},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		if got := chipText(tt.id, tt.width); got != tt.want {
			t.Errorf("chipText(%q, %d) = %q, want %q", tt.id, tt.width, got, tt.want)
		}
	}
}
