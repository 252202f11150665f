package dnd

import (
	"testing"

	"github.com/matzehuels/vizlayout/pkg/layout"
)

func TestDetectWithoutRect(t *testing.T) {
	d := NewDetector()
	targets := []Target{AxisTarget(layout.Columns, true, rect(0, 0, 100, 100))}

	if _, ok := d.Detect(Active{ID: "sidebar/dx", DimensionID: "dx"}, targets); ok {
		t.Error("Detect() without a dragged rect should find nothing")
	}
}

func TestDetectNothingOverlaps(t *testing.T) {
	d := NewDetector()
	active := Active{ID: "sidebar/dx", DimensionID: "dx", Rect: rect(500, 500, 10, 10)}
	targets := []Target{
		AxisTarget(layout.Columns, false, rect(0, 0, 100, 40)),
		chip(layout.Columns, "pe", 0, rect(10, 10, 30, 20)),
	}

	if got, ok := d.Detect(active, targets); ok {
		t.Errorf("Detect() = %s, want no collision", got.ID)
	}
}

func TestDetectChipBeatsAxis(t *testing.T) {
	d := NewDetector()
	// The dragged rect covers the axis far better than the chip, the chip
	// still wins.
	active := Active{ID: "sidebar/dx", DimensionID: "dx", Rect: rect(0, 0, 300, 40)}
	targets := []Target{
		AxisTarget(layout.Columns, false, rect(0, 0, 300, 40)),
		chip(layout.Columns, "pe", 0, rect(10, 10, 20, 20)),
	}

	got, ok := d.Detect(active, targets)
	if !ok {
		t.Fatal("Detect() found nothing")
	}
	if got.Kind != KindChip || got.DimensionID != "pe" {
		t.Errorf("Detect() = %s (%s), want chip pe", got.ID, got.Kind)
	}
}

func TestDetectBestChip(t *testing.T) {
	d := NewDetector(WithPadding(0))
	active := Active{ID: "sidebar/dx", DimensionID: "dx", Rect: rect(10, 45, 50, 20)}
	targets := []Target{
		chip(layout.Columns, "a", 0, rect(10, 0, 50, 20)),
		chip(layout.Columns, "b", 1, rect(10, 50, 50, 20)),
	}

	got, ok := d.Detect(active, targets)
	if !ok || got.DimensionID != "b" {
		t.Errorf("Detect() = %q, %v, want b", got.DimensionID, ok)
	}
}

func TestDetectTieGoesToLowerIndex(t *testing.T) {
	d := NewDetector(WithPadding(0))
	// Dragged rect straddles both chips symmetrically.
	active := Active{ID: "sidebar/dx", DimensionID: "dx", Rect: rect(0, 25, 50, 20)}
	a := chip(layout.Columns, "a", 0, rect(0, 0, 50, 20))
	b := chip(layout.Columns, "b", 1, rect(0, 50, 50, 20))

	for _, order := range [][]Target{{a, b}, {b, a}} {
		got, ok := d.Detect(active, order)
		if !ok || got.DimensionID != "a" {
			t.Errorf("Detect(%s, %s) = %q, want a", order[0].ID, order[1].ID, got.DimensionID)
		}
	}
}

func TestDetectSelfExclusion(t *testing.T) {
	d := NewDetector()
	active := Active{
		ID:          ChipID(layout.Columns, "dx"),
		DimensionID: "dx",
		SourceAxis:  layout.Columns,
		Rect:        rect(0, 0, 50, 20),
	}

	tests := []struct {
		name    string
		targets []Target
	}{
		{
			name:    "same id",
			targets: []Target{{ID: active.ID, Kind: KindChip, Axis: layout.Columns, Index: 1, Rect: rect(0, 0, 50, 20)}},
		},
		{
			name: "own chip halves",
			targets: []Target{
				ChipTarget(layout.Columns, "dx", 0, false, rect(0, 0, 25, 20)),
				ChipTarget(layout.Columns, "dx", 0, true, rect(0, 25, 25, 20)),
			},
		},
		{
			name:    "container with own id",
			targets: []Target{{ID: active.ID, Kind: KindAxis, Axis: layout.Columns, Rect: rect(0, 0, 50, 20)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := d.Detect(active, tt.targets); ok {
				t.Errorf("Detect() = %s, want no collision", got.ID)
			}
		})
	}
}

func TestDetectEmptyAxis(t *testing.T) {
	d := NewDetector()
	active := Active{ID: "sidebar/dx", DimensionID: "dx", Rect: rect(100, 20, 50, 20)}
	targets := []Target{
		AxisTarget(layout.Columns, false, rect(0, 0, 300, 40)),
		chip(layout.Columns, "pe", 0, rect(10, 10, 30, 20)),
		AxisTarget(layout.Rows, true, rect(90, 0, 300, 40)),
	}

	got, ok := d.Detect(active, targets)
	if !ok {
		t.Fatal("Detect() found nothing")
	}
	if got.Kind != KindAxis || got.Axis != layout.Rows || !got.IsEmptyAxis {
		t.Errorf("Detect() = %+v, want empty rows axis", got)
	}
}

func TestDetectAxisResolvesToLineEnd(t *testing.T) {
	d := NewDetector()
	axis := AxisTarget(layout.Columns, false, rect(0, 0, 400, 80))
	targets := []Target{
		axis,
		chip(layout.Columns, "a", 0, rect(10, 10, 60, 10)),
		chip(layout.Columns, "b", 1, rect(10, 80, 60, 10)),
		chip(layout.Columns, "c", 2, rect(40, 10, 60, 10)),
	}
	// Over whitespace to the right of the second line.
	active := Active{ID: "sidebar/dx", DimensionID: "dx", Rect: rect(40, 300, 50, 10)}

	got, ok := d.Detect(active, targets)
	if !ok {
		t.Fatal("Detect() found nothing")
	}
	if got.DimensionID != "c" || !got.InsertAfter {
		t.Errorf("Detect() = %+v, want after chip c", got)
	}

	// Over whitespace to the right of the first line.
	active.Rect = rect(10, 300, 50, 10)
	got, _ = d.Detect(active, targets)
	if got.DimensionID != "b" || !got.InsertAfter {
		t.Errorf("Detect() = %+v, want after chip b", got)
	}
}

func TestDetectAxisFallbackWhenChipsUnmeasured(t *testing.T) {
	d := NewDetector()
	axis := AxisTarget(layout.Columns, false, rect(0, 0, 400, 80))
	targets := []Target{axis, chip(layout.Columns, "a", 0, nil)}
	active := Active{ID: "sidebar/dx", DimensionID: "dx", Rect: rect(40, 300, 50, 10)}

	got, ok := d.Detect(active, targets)
	if !ok || got.ID != axis.ID {
		t.Errorf("Detect() = %q, %v, want axis fallback", got.ID, ok)
	}
}

func TestDetectOwnAxisWithOnlySelf(t *testing.T) {
	d := NewDetector()
	axis := AxisTarget(layout.Rows, false, rect(0, 0, 400, 40))
	targets := []Target{axis, chip(layout.Rows, "pe", 0, rect(10, 10, 60, 20))}
	active := Active{
		ID:          ChipID(layout.Rows, "pe"),
		DimensionID: "pe",
		SourceAxis:  layout.Rows,
		Rect:        rect(10, 200, 60, 20),
	}

	got, ok := d.Detect(active, targets)
	if !ok || got.ID != axis.ID {
		t.Errorf("Detect() = %q, %v, want own axis", got.ID, ok)
	}
}

func TestDetectPadding(t *testing.T) {
	// 5 units of vertical gap between the dragged rect and the chip.
	active := Active{ID: "sidebar/dx", DimensionID: "dx", Rect: rect(25, 0, 50, 20)}
	targets := []Target{chip(layout.Filters, "ou", 0, rect(0, 0, 50, 20))}

	if _, ok := NewDetector(WithPadding(0)).Detect(active, targets); ok {
		t.Error("unpadded Detect() should miss")
	}
	if got, ok := NewDetector().Detect(active, targets); !ok || got.DimensionID != "ou" {
		t.Errorf("padded Detect() = %q, %v, want ou", got.DimensionID, ok)
	}
}

func TestNewDetectorDefaults(t *testing.T) {
	if got := NewDetector().Padding(); got != DefaultPadding {
		t.Errorf("Padding() = %v, want %v", got, DefaultPadding)
	}
	if got := NewDetector(WithPadding(2)).Padding(); got != 2 {
		t.Errorf("Padding() = %v, want 2", got)
	}
}
