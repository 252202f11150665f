package replay

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vizlayout/pkg/board"
	"github.com/matzehuels/vizlayout/pkg/dnd"
	"github.com/matzehuels/vizlayout/pkg/errors"
	"github.com/matzehuels/vizlayout/pkg/geom"
	"github.com/matzehuels/vizlayout/pkg/layout"
)

// Status is how a gesture ended.
type Status string

const (
	StatusApplied   Status = "applied"
	StatusIgnored   Status = "ignored"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
)

// Outcome records one played gesture.
type Outcome struct {
	Gesture   string `json:"gesture"`
	Dimension string `json:"dimension,omitempty"`
	Frames    int    `json:"frames,omitempty"`
	// Target is the ID of the target under the last frame.
	Target  string              `json:"target,omitempty"`
	Command *layout.CommandSpec `json:"command,omitempty"`
	Status  Status              `json:"status"`
	Code    errors.Code         `json:"code,omitempty"`
	Error   string              `json:"error,omitempty"`
	// Layout is the layout after the gesture.
	Layout layout.Layout `json:"layout"`

	Err error `json:"-"`
}

// Stats summarizes a run.
type Stats struct {
	Gestures  int           `json:"gestures"`
	Applied   int           `json:"applied"`
	Ignored   int           `json:"ignored"`
	Cancelled int           `json:"cancelled"`
	Rejected  int           `json:"rejected"`
	Duration  time.Duration `json:"duration"`
}

// Result is the outcome of a run.
type Result struct {
	Scenario string        `json:"scenario"`
	Outcomes []Outcome     `json:"outcomes"`
	Final    layout.Layout `json:"final"`
	Stats    Stats         `json:"stats"`
}

func (r *Result) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	r.Stats.Gestures++
	switch o.Status {
	case StatusApplied:
		r.Stats.Applied++
	case StatusIgnored:
		r.Stats.Ignored++
	case StatusCancelled:
		r.Stats.Cancelled++
	case StatusRejected:
		r.Stats.Rejected++
	}
}

// Runner plays scenarios. It holds no state between runs and may be used
// from several goroutines.
type Runner struct {
	Logger *log.Logger
	// Strict stops the run at the first rejected command.
	Strict bool
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Run plays every gesture of sc against a fresh store holding sc.Layout.
//
// The returned Result covers the gestures played so far even when an error
// is returned. Errors stop the run for invariant violations, for rejected
// commands in strict mode, for a cancelled ctx, and when the final layout
// differs from sc.Expect.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Result, error) {
	if sc == nil {
		return nil, errors.New(errors.ErrCodeInvalidScenario, "nil scenario")
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	store, err := layout.NewStore(sc.Layout, r.Logger)
	if err != nil {
		return nil, err
	}
	var opts []dnd.Option
	if sc.Padding != nil {
		opts = append(opts, dnd.WithPadding(*sc.Padding))
	}
	ctrl := dnd.NewController(store, dnd.NewDetector(opts...), r.Logger)

	res := &Result{Scenario: sc.Name, Outcomes: []Outcome{}}
	finish := func() {
		res.Final = store.Layout()
		res.Stats.Duration = time.Since(start)
	}

	for i, g := range sc.Gestures {
		if err := ctx.Err(); err != nil {
			finish()
			return res, err
		}

		out := r.play(ctx, sc, store, ctrl, g, i)
		res.add(out)

		if out.Err == nil {
			continue
		}
		if errors.IsInvariant(out.Err) || r.Strict {
			finish()
			return res, fmt.Errorf("gesture %s: %w", out.Gesture, out.Err)
		}
	}
	finish()

	r.Logger.Info("replayed scenario",
		"scenario", sc.Name,
		"gestures", res.Stats.Gestures,
		"applied", res.Stats.Applied,
		"rejected", res.Stats.Rejected,
		"duration", res.Stats.Duration)

	if sc.Expect != nil && !res.Final.Equal(*sc.Expect) {
		return res, errors.New(errors.ErrCodeExpectationFailed,
			"final layout is %s, expected %s", res.Final, *sc.Expect)
	}
	return res, nil
}

func (r *Runner) play(ctx context.Context, sc *Scenario, store *layout.Store, ctrl *dnd.Controller, g Gesture, i int) Outcome {
	out := Outcome{Gesture: g.Label(i), Dimension: g.Dimension}

	if g.Command != nil {
		cmd, err := g.Command.Command()
		if err == nil {
			spec := layout.SpecOf(cmd)
			out.Command = &spec
			out.Dimension = spec.DimensionID
			err = store.Dispatch(ctx, cmd)
		}
		return settle(out, store, err)
	}

	current := store.Layout()
	metrics := board.DefaultMetrics()
	if sc.Metrics != nil {
		metrics = *sc.Metrics
	}
	b := board.Measure(current, sc.Catalog, metrics)

	active := activeFor(g, current, b)
	base := *active.Rect
	if _, err := ctrl.Start(ctx, active); err != nil {
		return settle(out, store, err)
	}

	for n, f := range g.Frames {
		targets, err := frameTargets(f, g, b)
		if err != nil {
			ctrl.Cancel(ctx)
			return settle(out, store, err)
		}
		rect := frameRect(f, base)
		over, ok, err := ctrl.Over(ctx, &rect, targets)
		if err != nil {
			ctrl.Cancel(ctx)
			return settle(out, store, err)
		}
		out.Frames = n + 1
		out.Target = ""
		if ok {
			out.Target = over.ID
		}
	}

	if g.Cancel {
		ctrl.Cancel(ctx)
		out.Status = StatusCancelled
		out.Layout = store.Layout()
		return out
	}

	cmd, err := ctrl.End(ctx)
	if cmd != nil {
		spec := layout.SpecOf(cmd)
		out.Command = &spec
	}
	return settle(out, store, err)
}

func settle(out Outcome, store *layout.Store, err error) Outcome {
	out.Layout = store.Layout()
	switch {
	case err != nil:
		out.Status = StatusRejected
		out.Err = err
		out.Code = errors.GetCode(err)
		out.Error = err.Error()
	case out.Command == nil:
		out.Status = StatusIgnored
	default:
		out.Status = StatusApplied
	}
	return out
}

// activeFor builds the dragged item. Its rectangle starts at the measured
// chip, or at the origin with the chip's size when the chip is not on the
// board.
func activeFor(g Gesture, l layout.Layout, b board.Board) dnd.Active {
	from := layout.NoAxis
	switch g.From {
	case "":
		if a, _, ok := l.Find(g.Dimension); ok {
			from = a
		}
	case FromSidebar:
	default:
		from, _ = layout.ParseAxis(g.From)
	}

	active := dnd.Active{DimensionID: g.Dimension, SourceAxis: from}
	if from == layout.NoAxis {
		active.ID = dnd.SidebarID(g.Dimension)
	} else {
		active.ID = dnd.ChipID(from, g.Dimension)
		active.SourceIndex = l.IndexOf(from, g.Dimension)
	}

	rect := geom.Rect{Width: b.Metrics.ChipWidth(g.Dimension), Height: b.Metrics.ChipHeight}
	if c, ok := b.Find(g.Dimension); ok {
		rect = c.Rect
	}
	active.Rect = &rect
	return active
}

func frameRect(f Frame, base geom.Rect) geom.Rect {
	if f.Rect != nil {
		return *f.Rect
	}
	return geom.Rect{
		Top:    *f.Y - base.Height/2,
		Left:   *f.X - base.Width/2,
		Width:  base.Width,
		Height: base.Height,
	}
}

func frameTargets(f Frame, g Gesture, b board.Board) ([]dnd.Target, error) {
	switch {
	case len(f.Targets) > 0:
		return targetsOf(f.Targets)
	case len(g.Targets) > 0:
		return targetsOf(g.Targets)
	}
	return b.Targets(), nil
}
