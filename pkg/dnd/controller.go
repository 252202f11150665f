package dnd

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/vizlayout/pkg/errors"
	"github.com/matzehuels/vizlayout/pkg/geom"
	"github.com/matzehuels/vizlayout/pkg/layout"
	"github.com/matzehuels/vizlayout/pkg/observability"
)

// Dispatcher applies layout commands. *layout.Store implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd layout.Command) error
}

// Session is the transient state of one gesture.
type Session struct {
	ID      string
	Active  Active
	Over    *Target
	Started time.Time
}

// Controller runs drag gestures against a Dispatcher. At most one gesture
// is active at a time.
//
// Controller is safe for concurrent use.
type Controller struct {
	mu         sync.Mutex
	dispatcher Dispatcher
	detector   *Detector
	logger     *log.Logger
	session    *Session
}

// NewController creates a Controller. A nil detector uses NewDetector()
// and a nil logger uses log.Default().
func NewController(d Dispatcher, detector *Detector, logger *log.Logger) *Controller {
	if detector == nil {
		detector = NewDetector()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{dispatcher: d, detector: detector, logger: logger}
}

// Start begins a gesture for active.
func (c *Controller) Start(ctx context.Context, active Active) (Session, error) {
	if err := errors.ValidateDimensionID(active.DimensionID); err != nil {
		return Session{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		return Session{}, errors.New(errors.ErrCodeDragInProgress,
			"cannot drag %q: %q is still being dragged", active.DimensionID, c.session.Active.DimensionID)
	}

	s := &Session{
		ID:      uuid.NewString(),
		Active:  active,
		Started: time.Now(),
	}
	c.session = s

	c.logger.Debug("drag started", "session", s.ID, "dimension", active.DimensionID, "from", active.SourceAxis)
	observability.Drag().OnDragStart(ctx, s.ID, active.DimensionID)
	return *s, nil
}

// Over records the dragged rectangle for the current frame and returns the
// target the detector picks for it. rect may be nil while the host has not
// measured the dragged element.
func (c *Controller) Over(ctx context.Context, rect *geom.Rect, targets []Target) (Target, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.session
	if s == nil {
		return Target{}, false, errors.New(errors.ErrCodeNoActiveDrag, "no drag in progress")
	}
	s.Active.Rect = rect

	over, ok := c.detector.Detect(s.Active, targets)

	prevID := ""
	if s.Over != nil {
		prevID = s.Over.ID
	}
	nextID := ""
	if ok {
		nextID = over.ID
		s.Over = &over
	} else {
		s.Over = nil
	}
	if nextID != prevID {
		c.logger.Debug("drop target changed", "session", s.ID, "target", nextID)
		observability.Drag().OnTargetChange(ctx, s.ID, nextID)
	}
	return over, ok, nil
}

// Session returns a copy of the current gesture, if any.
func (c *Controller) Session() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Active reports whether a gesture is in progress.
func (c *Controller) Active() bool {
	_, ok := c.Session()
	return ok
}

// End finishes the gesture: the last target is resolved into a command and
// dispatched. The returned command is nil when the drop was a no-op. The
// gesture is over even when an error is returned.
func (c *Controller) End(ctx context.Context) (layout.Command, error) {
	c.mu.Lock()
	s := c.session
	c.session = nil
	c.mu.Unlock()

	if s == nil {
		return nil, errors.New(errors.ErrCodeNoActiveDrag, "no drag in progress")
	}

	cmd, err := ResolveDrop(&s.Active, s.Over)
	if err == nil && cmd != nil {
		err = c.dispatcher.Dispatch(ctx, cmd)
	}

	kind := ""
	if cmd != nil {
		kind = cmd.Kind()
	}
	observability.Drag().OnDrop(ctx, s.ID, kind, time.Since(s.Started), err)

	switch {
	case err != nil:
		c.logger.Error("drop failed", "session", s.ID, "dimension", s.Active.DimensionID, "err", err)
		return cmd, err
	case cmd == nil:
		c.logger.Debug("drop ignored", "session", s.ID, "dimension", s.Active.DimensionID)
	default:
		c.logger.Info("dropped", "dimension", s.Active.DimensionID, "command", cmd)
	}
	return cmd, nil
}

// Cancel discards the current gesture without touching the layout.
// It reports whether a gesture was in progress.
func (c *Controller) Cancel(ctx context.Context) bool {
	c.mu.Lock()
	s := c.session
	c.session = nil
	c.mu.Unlock()

	if s == nil {
		return false
	}
	c.logger.Debug("drag cancelled", "session", s.ID, "dimension", s.Active.DimensionID)
	observability.Drag().OnDragCancel(ctx, s.ID)
	return true
}
