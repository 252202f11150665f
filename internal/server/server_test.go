package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vizlayout/pkg/buildinfo"
	"github.com/matzehuels/vizlayout/pkg/dnd"
	"github.com/matzehuels/vizlayout/pkg/errors"
	"github.com/matzehuels/vizlayout/pkg/layout"
	"github.com/matzehuels/vizlayout/pkg/observability"
)

func newTestServer(t *testing.T, l layout.Layout) (*httptest.Server, *layout.Store) {
	t.Helper()
	logger := log.New(&bytes.Buffer{})
	store, err := layout.NewStore(l, logger)
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	srv := httptest.NewServer(New(store, Options{Catalog: []string{"dx", "pe", "ou"}, Padding: dnd.DefaultPadding}, logger).Handler())
	t.Cleanup(srv.Close)
	return srv, store
}

func do(t *testing.T, srv *httptest.Server, method, path, body string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func TestGetLayout(t *testing.T) {
	srv, _ := newTestServer(t, layout.Layout{Columns: []string{"dx"}})

	var got layoutResponse
	if status := do(t, srv, http.MethodGet, "/layout", "", &got); status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if !slices.Equal(got.Layout.Columns, []string{"dx"}) || got.Layout.Rows == nil || got.Version != 0 {
		t.Errorf("got %+v", got)
	}
}

func TestGetVersion(t *testing.T) {
	srv, _ := newTestServer(t, layout.Layout{})

	var got buildinfo.Info
	if status := do(t, srv, http.MethodGet, "/version", "", &got); status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if got != buildinfo.Get() {
		t.Errorf("got %+v, want %+v", got, buildinfo.Get())
	}
}

func TestPostCommand(t *testing.T) {
	srv, store := newTestServer(t, layout.Layout{Columns: []string{"dx"}, Rows: []string{"pe"}})

	var got commandResponse
	body := `{"type": "move", "dimensionId": "pe", "source": "rows", "target": "columns", "index": 0}`
	if status := do(t, srv, http.MethodPost, "/commands", body, &got); status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if want := []string{"pe", "dx"}; !slices.Equal(got.Layout.Columns, want) {
		t.Errorf("columns = %v, want %v", got.Layout.Columns, want)
	}
	if got.Command == nil || got.Command.Type != layout.KindMove || got.Version != 1 {
		t.Errorf("got %+v", got)
	}
	if store.Version() != 1 {
		t.Errorf("store version = %d, want 1", store.Version())
	}
}

func TestPostCommandErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   errors.Code
	}{
		{"not found", `{"type": "remove", "dimensionId": "zz", "axis": "rows"}`, http.StatusConflict, errors.ErrCodeDimensionNotFound},
		{"duplicate", `{"type": "add", "dimensionId": "dx", "axis": "rows"}`, http.StatusConflict, errors.ErrCodeDuplicateDimension},
		{"out of range", `{"type": "add", "dimensionId": "ou", "axis": "rows", "index": 7}`, http.StatusConflict, errors.ErrCodeIndexOutOfRange},
		{"unknown type", `{"type": "swap", "dimensionId": "dx"}`, http.StatusBadRequest, errors.ErrCodeInvalidCommand},
		{"bad axis", `{"type": "add", "dimensionId": "ou", "axis": "pages"}`, http.StatusBadRequest, errors.ErrCodeInvalidAxis},
		{"unknown field", `{"type": "add", "dimension": "ou"}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"not json", `add ou`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, store := newTestServer(t, layout.Layout{Columns: []string{"dx"}})

			var got errorResponse
			if status := do(t, srv, http.MethodPost, "/commands", tt.body, &got); status != tt.status {
				t.Errorf("status = %d, want %d", status, tt.status)
			}
			if got.Error.Code != tt.code {
				t.Errorf("code = %q, want %q", got.Error.Code, tt.code)
			}
			if store.Version() != 0 {
				t.Errorf("store version = %d, want 0", store.Version())
			}
		})
	}
}

func TestCollision(t *testing.T) {
	srv, _ := newTestServer(t, layout.Layout{})

	body := `{
		"active": {"id": "sidebar/dx", "dimensionId": "dx", "rect": {"top": 60, "left": 10, "width": 30, "height": 20}},
		"targets": [
			{"id": "axis/columns", "kind": "axis", "axis": "columns", "isEmptyAxis": true, "rect": {"top": 0, "left": 0, "width": 400, "height": 30}},
			{"id": "axis/rows", "kind": "axis", "axis": "rows", "isEmptyAxis": true, "rect": {"top": 50, "left": 0, "width": 400, "height": 30}}
		]
	}`
	var got overResponse
	if status := do(t, srv, http.MethodPost, "/drag/collision", body, &got); status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if got.Over == nil || got.Over.ID != "axis/rows" || got.Over.Kind != dnd.KindAxis {
		t.Errorf("over = %+v, want axis/rows", got.Over)
	}

	body = `{"active": {"id": "sidebar/dx", "dimensionId": "dx"}, "targets": []}`
	got = overResponse{}
	do(t, srv, http.MethodPost, "/drag/collision", body, &got)
	if got.Over != nil {
		t.Errorf("over = %+v, want null", got.Over)
	}
}

func TestDrop(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		columns []string
		code    errors.Code
	}{
		{
			name:    "before chip",
			body:    `{"active": {"id": "sidebar/ou", "dimensionId": "ou"}, "over": {"id": "columns/pe:before", "kind": "chip", "axis": "columns", "dimensionId": "pe", "index": 2}}`,
			status:  http.StatusOK,
			columns: []string{"dx", "ou", "pe"},
		},
		{
			name:    "nowhere",
			body:    `{"active": {"id": "sidebar/ou", "dimensionId": "ou"}, "over": null}`,
			status:  http.StatusOK,
			columns: []string{"dx", "pe"},
		},
		{
			name:   "negative index",
			body:   `{"active": {"id": "sidebar/ou", "dimensionId": "ou"}, "over": {"id": "columns/dx:before", "kind": "chip", "axis": "columns", "dimensionId": "dx", "index": 0}}`,
			status: http.StatusConflict,
			code:   errors.ErrCodeInvariant,
		},
		{
			name:   "bad kind",
			body:   `{"active": {"id": "sidebar/ou", "dimensionId": "ou"}, "over": {"id": "x", "kind": "slot", "axis": "columns"}}`,
			status: http.StatusBadRequest,
			code:   errors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, store := newTestServer(t, layout.Layout{Columns: []string{"dx", "pe"}})

			var raw json.RawMessage
			status := do(t, srv, http.MethodPost, "/drag/drop", tt.body, &raw)
			if status != tt.status {
				t.Fatalf("status = %d, want %d (%s)", status, tt.status, raw)
			}
			if tt.code != "" {
				var e errorResponse
				if err := json.Unmarshal(raw, &e); err != nil || e.Error.Code != tt.code {
					t.Errorf("error = %s, want %s", raw, tt.code)
				}
				return
			}
			if got := store.Layout().Columns; !slices.Equal(got, tt.columns) {
				t.Errorf("columns = %v, want %v", got, tt.columns)
			}
		})
	}
}

func TestGestureLifecycle(t *testing.T) {
	srv, store := newTestServer(t, layout.Layout{Columns: []string{"dx"}})

	var board boardResponse
	if status := do(t, srv, http.MethodGet, "/board", "", &board); status != http.StatusOK {
		t.Fatalf("GET /board status = %d", status)
	}
	if len(board.Board.Sidebar) != 2 {
		t.Fatalf("sidebar = %+v, want pe and ou", board.Board.Sidebar)
	}
	rows, _ := board.Board.Axis(layout.Rows)
	targets, _ := json.Marshal(board.Targets)

	var sess sessionResponse
	if status := do(t, srv, http.MethodPost, "/drag/start", `{"id": "sidebar/pe", "dimensionId": "pe"}`, &sess); status != http.StatusOK {
		t.Fatalf("start status = %d", status)
	}
	if sess.Session == "" {
		t.Error("missing session id")
	}

	var errResp errorResponse
	if status := do(t, srv, http.MethodPost, "/drag/start", `{"id": "sidebar/ou", "dimensionId": "ou"}`, &errResp); status != http.StatusConflict {
		t.Errorf("second start status = %d, want 409", status)
	}
	if errResp.Error.Code != errors.ErrCodeDragInProgress {
		t.Errorf("code = %q", errResp.Error.Code)
	}

	rect, _ := json.Marshal(rows.Content)
	var over overResponse
	do(t, srv, http.MethodPost, "/drag/over", `{"rect": `+string(rect)+`, "targets": `+string(targets)+`}`, &over)
	if over.Over == nil || over.Over.ID != "axis/rows" {
		t.Fatalf("over = %+v, want axis/rows", over.Over)
	}

	var end commandResponse
	if status := do(t, srv, http.MethodPost, "/drag/end", "", &end); status != http.StatusOK {
		t.Fatalf("end status = %d", status)
	}
	if !slices.Equal(store.Layout().Rows, []string{"pe"}) {
		t.Errorf("rows = %v, want [pe]", store.Layout().Rows)
	}

	if status := do(t, srv, http.MethodPost, "/drag/cancel", "", &errResp); status != http.StatusConflict {
		t.Errorf("cancel without gesture status = %d, want 409", status)
	}
	do(t, srv, http.MethodPost, "/drag/start", `{"id": "sidebar/ou", "dimensionId": "ou"}`, &sess)
	if status := do(t, srv, http.MethodPost, "/drag/cancel", "", nil); status != http.StatusNoContent {
		t.Errorf("cancel status = %d, want 204", status)
	}
}

type recordingHTTPHooks struct {
	mu       sync.Mutex
	statuses []int
}

func (h *recordingHTTPHooks) OnRequest(context.Context, string, string) {}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	srv, _ := newTestServer(t, layout.Layout{})
	do(t, srv, http.MethodGet, "/layout", "", &layoutResponse{})
	do(t, srv, http.MethodPost, "/drag/end", "", &errorResponse{})

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if want := []int{http.StatusOK, http.StatusConflict}; !slices.Equal(hooks.statuses, want) {
		t.Errorf("statuses = %v, want %v", hooks.statuses, want)
	}
}
