// Package server exposes a layout store over HTTP so that a browser host
// can measure its own elements and delegate collision detection, drop
// resolution and state changes to the engine.
//
// Routes:
//
//	GET  /version         build information
//	GET  /layout          current layout and version
//	POST /commands        dispatch a command
//	GET  /board           measured board and targets for the current layout
//	POST /drag/collision  stateless collision detection
//	POST /drag/drop       stateless drop resolution and dispatch
//	POST /drag/start      begin a gesture
//	POST /drag/over       report a pointer frame for the gesture
//	POST /drag/end        drop the gesture
//	POST /drag/cancel     discard the gesture
//
// Errors are returned as {"error": {"code": ..., "message": ...}}. Commands
// that contradict the layout answer 409 Conflict.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/vizlayout/pkg/board"
	"github.com/matzehuels/vizlayout/pkg/buildinfo"
	"github.com/matzehuels/vizlayout/pkg/dnd"
	"github.com/matzehuels/vizlayout/pkg/errors"
	"github.com/matzehuels/vizlayout/pkg/geom"
	"github.com/matzehuels/vizlayout/pkg/layout"
	"github.com/matzehuels/vizlayout/pkg/observability"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Options configures a Server.
type Options struct {
	// Catalog lists every known dimension for the board sidebar.
	Catalog []string
	// Metrics sizes GET /board; the zero value means board.DefaultMetrics.
	Metrics board.Metrics
	Padding float64
}

// Server serves one layout store.
type Server struct {
	store    *layout.Store
	detector *dnd.Detector
	ctrl     *dnd.Controller
	opts     Options
	logger   *log.Logger
}

// New creates a Server for store. If logger is nil, log.Default() is used.
func New(store *layout.Store, opts Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.Metrics == (board.Metrics{}) {
		opts.Metrics = board.DefaultMetrics()
	}
	detector := dnd.NewDetector(dnd.WithPadding(opts.Padding))
	return &Server{
		store:    store,
		detector: detector,
		ctrl:     dnd.NewController(store, detector, logger),
		opts:     opts,
		logger:   logger,
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/version", s.handleVersion)
	r.Get("/layout", s.handleLayout)
	r.Post("/commands", s.handleCommand)
	r.Get("/board", s.handleBoard)

	r.Route("/drag", func(r chi.Router) {
		r.Post("/collision", s.handleCollision)
		r.Post("/drop", s.handleDrop)
		r.Post("/start", s.handleStart)
		r.Post("/over", s.handleOver)
		r.Post("/end", s.handleEnd)
		r.Post("/cancel", s.handleCancel)
	})
	return r
}

// observe reports every request to the HTTP hooks and the debug log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// =============================================================================
// Payloads
// =============================================================================

type layoutResponse struct {
	Layout  layout.Layout `json:"layout"`
	Version uint64        `json:"version"`
}

type commandResponse struct {
	Command *layout.CommandSpec `json:"command"`
	Layout  layout.Layout       `json:"layout"`
	Version uint64              `json:"version"`
}

type collisionRequest struct {
	Active  dnd.Active   `json:"active"`
	Targets []dnd.Target `json:"targets"`
}

type overResponse struct {
	Over *dnd.Target `json:"over"`
}

type dropRequest struct {
	Active dnd.Active  `json:"active"`
	Over   *dnd.Target `json:"over"`
}

type overRequest struct {
	Rect    *geom.Rect   `json:"rect"`
	Targets []dnd.Target `json:"targets"`
}

type sessionResponse struct {
	Session string     `json:"session"`
	Active  dnd.Active `json:"active"`
}

type boardResponse struct {
	Board   board.Board  `json:"board"`
	Targets []dnd.Target `json:"targets"`
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var spec layout.CommandSpec
	if !s.decode(w, r, &spec) {
		return
	}
	cmd, err := spec.Command()
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.store.Dispatch(r.Context(), cmd); err != nil {
		s.fail(w, err)
		return
	}
	s.respondCommand(w, cmd)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	b := board.Measure(s.store.Layout(), s.opts.Catalog, s.opts.Metrics)
	writeJSON(w, http.StatusOK, boardResponse{Board: b, Targets: b.Targets()})
}

func (s *Server) handleCollision(w http.ResponseWriter, r *http.Request) {
	var req collisionRequest
	if !s.decode(w, r, &req) {
		return
	}
	var resp overResponse
	if over, ok := s.detector.Detect(req.Active, req.Targets); ok {
		resp.Over = &over
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	var req dropRequest
	if !s.decode(w, r, &req) {
		return
	}
	cmd, err := dnd.ResolveDrop(&req.Active, req.Over)
	if err == nil && cmd != nil {
		err = s.store.Dispatch(r.Context(), cmd)
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondCommand(w, cmd)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var active dnd.Active
	if !s.decode(w, r, &active) {
		return
	}
	sess, err := s.ctrl.Start(r.Context(), active)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Session: sess.ID, Active: sess.Active})
}

func (s *Server) handleOver(w http.ResponseWriter, r *http.Request) {
	var req overRequest
	if !s.decode(w, r, &req) {
		return
	}
	over, ok, err := s.ctrl.Over(r.Context(), req.Rect, req.Targets)
	if err != nil {
		s.fail(w, err)
		return
	}
	var resp overResponse
	if ok {
		resp.Over = &over
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	cmd, err := s.ctrl.End(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondCommand(w, cmd)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	if !s.ctrl.Cancel(r.Context()) {
		s.fail(w, errors.New(errors.ErrCodeNoActiveDrag, "no drag in progress"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) snapshot() layoutResponse {
	return layoutResponse{Layout: s.store.Layout(), Version: s.store.Version()}
}

func (s *Server) respondCommand(w http.ResponseWriter, cmd layout.Command) {
	snap := s.snapshot()
	resp := commandResponse{Layout: snap.Layout, Version: snap.Version}
	if cmd != nil {
		spec := layout.SpecOf(cmd)
		resp.Command = &spec
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.fail(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: errors.UserMessage(err)}})
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidAxis, errors.ErrCodeInvalidCommand,
		errors.ErrCodeInvalidDimension, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeDragInProgress, errors.ErrCodeNoActiveDrag:
		return http.StatusConflict
	}
	if errors.IsInvariant(err) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
