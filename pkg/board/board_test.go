package board

import (
	"testing"

	"github.com/matzehuels/vizlayout/pkg/dnd"
	"github.com/matzehuels/vizlayout/pkg/geom"
	"github.com/matzehuels/vizlayout/pkg/layout"
)

// testMetrics gives 2-letter chips a width of 40 and 6 of them per line.
func testMetrics() Metrics {
	return Metrics{
		Width:        300,
		SidebarWidth: 50,
		LabelWidth:   10,
		CharWidth:    10,
		ChipHeight:   20,
		ChipPadding:  10,
		ChipGap:      0,
		LineGap:      10,
		AxisGap:      5,
	}
}

func TestMeasure(t *testing.T) {
	l := layout.Layout{
		Columns: []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7"},
		Filters: []string{"f1"},
	}
	b := Measure(l, []string{"c1", "s1", "f1", "s2"}, testMetrics())

	if len(b.Sidebar) != 2 || b.Sidebar[0].DimensionID != "s1" || b.Sidebar[1].DimensionID != "s2" {
		t.Fatalf("sidebar = %+v, want s1, s2", b.Sidebar)
	}
	if got := b.Sidebar[1].Rect; got.Top != 30 || got.Width != 40 {
		t.Errorf("sidebar[1] = %+v", got)
	}

	cols, _ := b.Axis(layout.Columns)
	if cols.Lines != 2 || cols.Empty {
		t.Errorf("columns box = %+v, want 2 lines", cols)
	}
	want := geom.Rect{Top: 0, Left: 50, Width: 250, Height: 50}
	if cols.Rect != want {
		t.Errorf("columns rect = %+v, want %+v", cols.Rect, want)
	}

	c7, ok := b.Find("c7")
	if !ok {
		t.Fatal("Find(c7) failed")
	}
	if c7.Line != 1 || c7.Position != 6 || c7.Rect.Left != 60 || c7.Rect.Top != 30 {
		t.Errorf("c7 = %+v, want wrapped to the second line", c7)
	}

	rows, _ := b.Axis(layout.Rows)
	if !rows.Empty || rows.Rect.Top != 55 || rows.Rect.Height != 20 {
		t.Errorf("rows box = %+v", rows)
	}
	filters, _ := b.Axis(layout.Filters)
	if filters.Empty || filters.Rect.Top != 80 {
		t.Errorf("filters box = %+v", filters)
	}
	if b.Height != 100 {
		t.Errorf("Height = %v, want 100", b.Height)
	}
}

func TestMeasureWithoutSidebar(t *testing.T) {
	m := testMetrics()
	m.SidebarWidth = 0
	b := Measure(layout.Layout{Rows: []string{"r1"}}, []string{"r1", "s1"}, m)

	if len(b.Sidebar) != 0 {
		t.Errorf("sidebar = %+v, want none", b.Sidebar)
	}
	r1, _ := b.Find("r1")
	if r1.Rect.Left != 10 {
		t.Errorf("r1 left = %v, want 10", r1.Rect.Left)
	}
}

func TestTargets(t *testing.T) {
	b := Measure(layout.Layout{Columns: []string{"ab"}}, nil, testMetrics())
	targets := b.Targets()

	if len(targets) != 3+2 {
		t.Fatalf("len(Targets()) = %d, want 5", len(targets))
	}

	var before, after dnd.Target
	for _, tg := range targets {
		if tg.Kind != dnd.KindChip {
			continue
		}
		if tg.InsertAfter {
			after = tg
		} else {
			before = tg
		}
	}
	if before.Index != 1 || after.Index != 1 {
		t.Errorf("chip indexes = %d, %d, want 1, 1", before.Index, after.Index)
	}
	if before.Rect.Left != 60 || before.Rect.Width != 20 || after.Rect.Left != 80 {
		t.Errorf("halves = %+v, %+v", *before.Rect, *after.Rect)
	}
}

func TestChipAt(t *testing.T) {
	b := Measure(layout.Layout{Columns: []string{"ab"}}, []string{"ab", "cd"}, testMetrics())

	tests := []struct {
		name string
		x, y float64
		want string
		ok   bool
	}{
		{"axis chip", 65, 5, "columns/ab", true},
		{"sidebar chip", 5, 5, "sidebar/cd", true},
		{"label column", 55, 5, "", false},
		{"empty space", 200, 200, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := b.ChipAt(tt.x, tt.y)
			if ok != tt.ok || (ok && c.ID() != tt.want) {
				t.Errorf("ChipAt(%v, %v) = %q, %v, want %q, %v", tt.x, tt.y, c.ID(), ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMeasuredDrop(t *testing.T) {
	l := layout.Layout{Columns: []string{"c1", "c2", "c3"}}
	b := Measure(l, []string{"s1"}, testMetrics())

	s1, _ := b.Find("s1")
	active := s1.Active()
	// Drag the sidebar chip to open space right of the last column chip.
	r := active.Rect.Translate(250, 0)
	active.Rect = &r

	over, ok := dnd.NewDetector().Detect(active, b.Targets())
	if !ok {
		t.Fatal("Detect() found nothing")
	}
	cmd, err := dnd.ResolveDrop(&active, &over)
	if err != nil {
		t.Fatalf("ResolveDrop() error: %v", err)
	}
	got, err := layout.Reduce(l, cmd)
	if err != nil {
		t.Fatalf("Reduce(%s) error: %v", cmd, err)
	}
	if want := []string{"c1", "c2", "c3", "s1"}; !equal(got.Columns, want) {
		t.Errorf("columns = %v, want %v", got.Columns, want)
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
