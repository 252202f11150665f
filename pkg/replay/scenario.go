package replay

import (
	"fmt"
	"strings"

	"github.com/matzehuels/vizlayout/pkg/board"
	"github.com/matzehuels/vizlayout/pkg/dnd"
	"github.com/matzehuels/vizlayout/pkg/errors"
	"github.com/matzehuels/vizlayout/pkg/geom"
	"github.com/matzehuels/vizlayout/pkg/layout"
)

// FromSidebar is the gesture origin for dimensions dragged from the sidebar.
const FromSidebar = "sidebar"

// Scenario is a recorded editing session.
type Scenario struct {
	Name string `json:"name,omitempty" toml:"name" yaml:"name"`
	// Padding overrides dnd.DefaultPadding.
	Padding *float64 `json:"padding,omitempty" toml:"padding" yaml:"padding"`
	// Metrics sizes the measured board for gestures without targets.
	Metrics *board.Metrics `json:"metrics,omitempty" toml:"metrics" yaml:"metrics"`
	// Catalog lists every known dimension; unplaced ones form the sidebar.
	Catalog  []string       `json:"catalog,omitempty" toml:"catalog" yaml:"catalog"`
	Layout   layout.Layout  `json:"layout" toml:"layout" yaml:"layout"`
	Gestures []Gesture      `json:"gestures" toml:"gesture" yaml:"gestures"`
	Expect   *layout.Layout `json:"expect,omitempty" toml:"expect" yaml:"expect"`
}

// Gesture is one drag from start to drop, or one direct command.
type Gesture struct {
	Name string `json:"name,omitempty" toml:"name" yaml:"name"`
	// Command is dispatched as is; the drag fields are then ignored.
	Command *layout.CommandSpec `json:"command,omitempty" toml:"command" yaml:"command"`

	Dimension string `json:"dimension,omitempty" toml:"dimension" yaml:"dimension"`
	// From is an axis name or FromSidebar. Empty means wherever the
	// dimension currently is.
	From    string       `json:"from,omitempty" toml:"from" yaml:"from"`
	Frames  []Frame      `json:"frames,omitempty" toml:"frame" yaml:"frames"`
	Targets []TargetSpec `json:"targets,omitempty" toml:"target" yaml:"targets"`
	Cancel  bool         `json:"cancel,omitempty" toml:"cancel" yaml:"cancel"`
}

// Label names the gesture in logs and reports.
func (g Gesture) Label(i int) string {
	if g.Name != "" {
		return g.Name
	}
	return fmt.Sprintf("#%d", i+1)
}

// Frame is one pointer update. Either Rect or a center point (X, Y) places
// the dragged rectangle; a point keeps the size of the measured chip.
type Frame struct {
	Rect    *geom.Rect   `json:"rect,omitempty" toml:"rect" yaml:"rect"`
	X       *float64     `json:"x,omitempty" toml:"x" yaml:"x"`
	Y       *float64     `json:"y,omitempty" toml:"y" yaml:"y"`
	Targets []TargetSpec `json:"targets,omitempty" toml:"target" yaml:"targets"`
}

// TargetSpec is a measured target as written in a scenario file.
type TargetSpec struct {
	ID        string      `json:"id,omitempty" toml:"id" yaml:"id"`
	Kind      string      `json:"kind" toml:"kind" yaml:"kind"`
	Axis      layout.Axis `json:"axis" toml:"axis" yaml:"axis"`
	Empty     bool        `json:"empty,omitempty" toml:"empty" yaml:"empty"`
	Dimension string      `json:"dimension,omitempty" toml:"dimension" yaml:"dimension"`
	// Index is the chip's sortable index: the first chip is 1.
	Index int       `json:"index,omitempty" toml:"index" yaml:"index"`
	After bool      `json:"after,omitempty" toml:"after" yaml:"after"`
	Rect  geom.Rect `json:"rect" toml:"rect" yaml:"rect"`
}

// Target converts the spec to a dnd.Target.
func (s TargetSpec) Target() (dnd.Target, error) {
	var kind dnd.Kind
	if err := kind.UnmarshalText([]byte(strings.ToLower(s.Kind))); err != nil {
		return dnd.Target{}, errors.Wrap(errors.ErrCodeInvalidScenario, err, "target %q", s.ID)
	}
	r := s.Rect

	var t dnd.Target
	switch kind {
	case dnd.KindAxis:
		t = dnd.AxisTarget(s.Axis, s.Empty, &r)
	case dnd.KindChip:
		t = dnd.ChipTarget(s.Axis, s.Dimension, s.Index-1, s.After, &r)
	}
	if s.ID != "" {
		t.ID = s.ID
	}
	return t, nil
}

func targetsOf(specs []TargetSpec) ([]dnd.Target, error) {
	out := make([]dnd.Target, 0, len(specs))
	for _, s := range specs {
		t, err := s.Target()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Validate checks the scenario before it is run.
func (s *Scenario) Validate() error {
	if err := s.Layout.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScenario, err, "initial layout")
	}
	if s.Padding != nil && *s.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidScenario, "padding must not be negative, got %v", *s.Padding)
	}
	if s.Expect != nil {
		if err := s.Expect.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScenario, err, "expected layout")
		}
	}
	for i, g := range s.Gestures {
		if err := g.validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScenario, err, "gesture %s", g.Label(i))
		}
	}
	return nil
}

func (g Gesture) validate() error {
	if g.Command != nil {
		_, err := g.Command.Command()
		return err
	}
	if err := errors.ValidateDimensionID(g.Dimension); err != nil {
		return err
	}
	if g.From != "" && g.From != FromSidebar {
		if _, err := layout.ParseAxis(g.From); err != nil {
			return err
		}
	}
	if len(g.Frames) == 0 && !g.Cancel {
		return errors.New(errors.ErrCodeInvalidScenario, "drag of %q has no frames", g.Dimension)
	}
	for i, f := range g.Frames {
		if f.Rect == nil && (f.X == nil || f.Y == nil) {
			return errors.New(errors.ErrCodeInvalidScenario, "frame %d needs a rect or both x and y", i+1)
		}
		for _, t := range f.Targets {
			if _, err := t.Target(); err != nil {
				return err
			}
		}
	}
	for _, t := range g.Targets {
		if _, err := t.Target(); err != nil {
			return err
		}
	}
	return nil
}
