package layout

import (
	"fmt"

	"github.com/matzehuels/vizlayout/pkg/errors"
)

// Command kinds as they appear in encoded commands, logs and hooks.
const (
	KindAdd    = "add"
	KindMove   = "move"
	KindRemove = "remove"
)

// Command is a layout mutation. The set of variants is closed: [Add],
// [Move] and [Remove].
type Command interface {
	// Kind returns the command kind (KindAdd, KindMove or KindRemove).
	Kind() string
	command()
}

// Add places a dimension that is not yet on any axis.
type Add struct {
	Axis        Axis
	DimensionID string
	// Index is the insertion slot; nil appends.
	Index *int
}

// Move moves a dimension from Source to Target, which may be the same axis.
type Move struct {
	DimensionID string
	Source      Axis
	Target      Axis
	// Index is the insertion slot in Target before the move; nil appends.
	Index *int
	// InsertAfter shifts the insertion slot one position to the right.
	InsertAfter bool
}

// Remove takes a dimension off an axis.
type Remove struct {
	Axis        Axis
	DimensionID string
}

func (Add) Kind() string    { return KindAdd }
func (Move) Kind() string   { return KindMove }
func (Remove) Kind() string { return KindRemove }

func (Add) command()    {}
func (Move) command()   {}
func (Remove) command() {}

func (c Add) String() string {
	return fmt.Sprintf("add %s to %s at %s", c.DimensionID, c.Axis, formatIndex(c.Index))
}

func (c Move) String() string {
	if c.InsertAfter && c.Index != nil {
		return fmt.Sprintf("move %s from %s to %s after %d", c.DimensionID, c.Source, c.Target, *c.Index)
	}
	return fmt.Sprintf("move %s from %s to %s at %s", c.DimensionID, c.Source, c.Target, formatIndex(c.Index))
}

func (c Remove) String() string {
	return fmt.Sprintf("remove %s from %s", c.DimensionID, c.Axis)
}

// At returns a pointer to i for use as an insertion index.
func At(i int) *int {
	return &i
}

func formatIndex(i *int) string {
	if i == nil {
		return "end"
	}
	return fmt.Sprint(*i)
}

// =============================================================================
// Encoding
// =============================================================================

// CommandSpec is the flat, serializable form of a Command used by scenario
// files and the HTTP bridge. Type selects the variant.
type CommandSpec struct {
	Type        string `json:"type" toml:"type" yaml:"type"`
	DimensionID string `json:"dimensionId" toml:"dimension" yaml:"dimension"`
	Axis        Axis   `json:"axis,omitempty" toml:"axis,omitempty" yaml:"axis,omitempty"`
	Source      Axis   `json:"source,omitempty" toml:"source,omitempty" yaml:"source,omitempty"`
	Target      Axis   `json:"target,omitempty" toml:"target,omitempty" yaml:"target,omitempty"`
	Index       *int   `json:"index,omitempty" toml:"index,omitempty" yaml:"index,omitempty"`
	InsertAfter bool   `json:"insertAfter,omitempty" toml:"insert_after,omitempty" yaml:"insert_after,omitempty"`
}

// SpecOf returns the serializable form of cmd.
func SpecOf(cmd Command) CommandSpec {
	switch c := cmd.(type) {
	case Add:
		return CommandSpec{Type: KindAdd, DimensionID: c.DimensionID, Axis: c.Axis, Index: c.Index}
	case Move:
		return CommandSpec{
			Type:        KindMove,
			DimensionID: c.DimensionID,
			Source:      c.Source,
			Target:      c.Target,
			Index:       c.Index,
			InsertAfter: c.InsertAfter,
		}
	case Remove:
		return CommandSpec{Type: KindRemove, DimensionID: c.DimensionID, Axis: c.Axis}
	}
	return CommandSpec{}
}

// Command converts the spec to its variant.
func (s CommandSpec) Command() (Command, error) {
	switch s.Type {
	case KindAdd:
		return Add{Axis: s.Axis, DimensionID: s.DimensionID, Index: s.Index}, nil
	case KindMove:
		return Move{
			DimensionID: s.DimensionID,
			Source:      s.Source,
			Target:      s.Target,
			Index:       s.Index,
			InsertAfter: s.InsertAfter,
		}, nil
	case KindRemove:
		return Remove{Axis: s.Axis, DimensionID: s.DimensionID}, nil
	case "":
		return nil, errors.New(errors.ErrCodeInvalidCommand, "command type is required")
	}
	return nil, errors.New(errors.ErrCodeInvalidCommand, "unknown command type %q", s.Type)
}
