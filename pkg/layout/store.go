package layout

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vizlayout/pkg/errors"
	"github.com/matzehuels/vizlayout/pkg/observability"
)

// Listener is called with a snapshot of the layout and its version after
// every successful dispatch. Calls arrive in version order, one at a time.
// All listeners share the snapshot and must not modify it. A listener must
// not call Dispatch on the same store.
type Listener func(l Layout, version uint64)

// Store owns the current layout. Commands are applied one at a time through
// Dispatch; readers receive snapshots that later dispatches never modify.
//
// Store is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	layout  Layout
	version uint64
	logger  *log.Logger

	// notifyMu is taken before mu is released so that notifications leave
	// in the order the dispatches were applied.
	notifyMu sync.Mutex

	listenersMu sync.Mutex
	listeners   []listenerEntry
	nextID      int
}

type listenerEntry struct {
	id int
	fn Listener
}

// NewStore creates a store holding initial. The layout is validated first.
// If logger is nil, log.Default() is used.
func NewStore(initial Layout, logger *log.Logger) (*Store, error) {
	if err := initial.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "initial layout")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{layout: initial.Clone(), logger: logger}, nil
}

// Layout returns a snapshot of the current layout.
func (s *Store) Layout() Layout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.layout.Clone()
}

// Snapshot returns the current layout together with its version.
func (s *Store) Snapshot() (Layout, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.layout.Clone(), s.version
}

// Version returns the number of commands applied so far.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Dispatch applies cmd. On error the layout is unchanged and the error is
// returned to the caller; invariant violations are logged at error level.
func (s *Store) Dispatch(ctx context.Context, cmd Command) error {
	start := time.Now()
	kind := ""
	if cmd != nil {
		kind = cmd.Kind()
	}

	s.mu.Lock()
	next, err := Reduce(s.layout, cmd)
	var version uint64
	if err == nil {
		s.layout = next
		s.version++
		version = s.version
		s.notifyMu.Lock()
	}
	s.mu.Unlock()

	observability.Layout().OnDispatch(ctx, kind, time.Since(start), err)

	if err != nil {
		if errors.IsInvariant(err) {
			s.logger.Error("layout invariant violated", "command", cmd, "err", err)
		} else {
			s.logger.Warn("command rejected", "command", cmd, "err", err)
		}
		return err
	}

	s.logger.Debug("applied command", "command", cmd, "version", version, "layout", next.String())
	s.notify(next.Clone(), version)
	s.notifyMu.Unlock()
	return nil
}

// Subscribe registers fn and returns a function that unregisters it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		for i, e := range s.listeners {
			if e.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(l Layout, version uint64) {
	s.listenersMu.Lock()
	fns := make([]Listener, len(s.listeners))
	for i, e := range s.listeners {
		fns[i] = e.fn
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn(l, version)
	}
}
