package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/goccy/go-json"

	"github.com/spanview/spanview/pkg/hypergraph"
	"github.com/spanview/spanview/pkg/nav"
)

const validSnapshot = `{"nodes": [
	{"index": 0, "label": "a", "width": 1, "parents": [2]},
	{"index": 1, "label": "b", "width": 1, "parents": [2]},
	{"index": 2, "label": "ab", "width": 2, "children": [0, 1]}
]}`

func newTestServer(t *testing.T, withSnapshot bool) (*Server, http.Handler) {
	t.Helper()
	controller := nav.New(nil)
	if withSnapshot {
		snapshot := hypergraph.Snapshot{
			{Index: 0, Label: "a", Width: 1, Parents: []int{2}},
			{Index: 1, Label: "b", Width: 1, Parents: []int{2}},
			{Index: 2, Label: "ab", Width: 2, Children: []int{0, 1}},
		}
		if _, err := controller.ReplaceSnapshot(context.Background(), snapshot); err != nil {
			t.Fatalf("ReplaceSnapshot() error = %v", err)
		}
	}
	srv := New(controller, charmlog.New(io.Discard))
	return srv, srv.Router()
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return out
}

func TestLayoutEndpoint(t *testing.T) {
	_, h := newTestServer(t, true)

	rec := doRequest(t, h, http.MethodGet, "/api/layout", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["maxWidth"] != float64(2) {
		t.Errorf("maxWidth = %v, want 2", body["maxWidth"])
	}
	nodes, ok := body["nodes"].([]any)
	if !ok || len(nodes) != 3 {
		t.Errorf("nodes = %v, want 3 entries", body["nodes"])
	}
}

func TestLayoutEndpointNoSnapshot(t *testing.T) {
	_, h := newTestServer(t, false)

	rec := doRequest(t, h, http.MethodGet, "/api/layout", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body := decodeBody(t, rec); body["code"] != "NOT_FOUND" {
		t.Errorf("code = %v, want NOT_FOUND", body["code"])
	}
}

func TestNodeEndpoint(t *testing.T) {
	_, h := newTestServer(t, true)

	rec := doRequest(t, h, http.MethodGet, "/api/nodes/2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["label"] != "ab" || body["width"] != float64(2) {
		t.Errorf("node = %v, want label ab width 2", body)
	}
	if body["tier"] != "error" {
		t.Errorf("tier = %v, want error", body["tier"])
	}
}

func TestNodeEndpointErrors(t *testing.T) {
	_, h := newTestServer(t, true)

	tests := []struct {
		path       string
		wantStatus int
		wantCode   string
	}{
		{"/api/nodes/99", http.StatusNotFound, "NODE_NOT_FOUND"},
		{"/api/nodes/abc", http.StatusBadRequest, "INVALID_INDEX"},
		{"/api/nodes/-1", http.StatusBadRequest, "INVALID_INDEX"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := doRequest(t, h, http.MethodGet, tt.path, "")
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if body := decodeBody(t, rec); body["code"] != tt.wantCode {
				t.Errorf("code = %v, want %s", body["code"], tt.wantCode)
			}
		})
	}
}

func TestFocusEndpoint(t *testing.T) {
	_, h := newTestServer(t, true)

	rec := doRequest(t, h, http.MethodPost, "/api/nodes/2/focus", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	rec = doRequest(t, h, http.MethodGet, "/api/nodes/2/state", "")
	body := decodeBody(t, rec)
	tags, _ := body["tags"].([]any)
	if len(tags) != 1 || tags[0] != "selected" {
		t.Errorf("tags = %v, want [selected]", body["tags"])
	}
}

func TestFocusEndpointStaleNode(t *testing.T) {
	_, h := newTestServer(t, true)

	// Focus something first, then hit a stale index.
	doRequest(t, h, http.MethodPost, "/api/nodes/0/focus", "")

	rec := doRequest(t, h, http.MethodPost, "/api/nodes/99/focus", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body := decodeBody(t, rec); body["code"] != "NODE_NOT_FOUND" {
		t.Errorf("code = %v, want NODE_NOT_FOUND", body["code"])
	}

	// The failed focus leaves the previous selection in place.
	rec = doRequest(t, h, http.MethodGet, "/api/nodes/0/state", "")
	body := decodeBody(t, rec)
	tags, _ := body["tags"].([]any)
	if len(tags) != 1 || tags[0] != "selected" {
		t.Errorf("tags = %v, selection should survive a failed focus", body["tags"])
	}
}

func TestHoverEndpoint(t *testing.T) {
	_, h := newTestServer(t, true)

	if rec := doRequest(t, h, http.MethodPost, "/api/nodes/1/hover", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	rec := doRequest(t, h, http.MethodGet, "/api/nodes/1/state", "")
	body := decodeBody(t, rec)
	tags, _ := body["tags"].([]any)
	if len(tags) != 1 || tags[0] != "hovered" {
		t.Errorf("tags = %v, want [hovered]", body["tags"])
	}
}

func TestStateEndpointUnknownIndex(t *testing.T) {
	_, h := newTestServer(t, true)

	// Querying an unknown index is benign: 200 with no tags.
	rec := doRequest(t, h, http.MethodGet, "/api/nodes/777/state", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	tags, _ := body["tags"].([]any)
	if len(tags) != 0 {
		t.Errorf("tags = %v, want empty", body["tags"])
	}
}

func TestSnapshotEndpoint(t *testing.T) {
	_, h := newTestServer(t, false)

	rec := doRequest(t, h, http.MethodPost, "/api/snapshot", validSnapshot)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["nodes"] != float64(3) {
		t.Errorf("nodes = %v, want 3", body["nodes"])
	}

	rec = doRequest(t, h, http.MethodGet, "/api/layout", "")
	if rec.Code != http.StatusOK {
		t.Errorf("layout should be available after snapshot upload, got %d", rec.Code)
	}
}

func TestSnapshotEndpointRejectsStructuralErrors(t *testing.T) {
	_, h := newTestServer(t, true)

	cyclic := `{"nodes": [{"index": 0, "width": 2, "children": [0]}]}`
	rec := doRequest(t, h, http.MethodPost, "/api/snapshot", cyclic)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if body := decodeBody(t, rec); body["code"] != "INVALID_SNAPSHOT" {
		t.Errorf("code = %v, want INVALID_SNAPSHOT", body["code"])
	}

	// Previous layout keeps serving.
	rec = doRequest(t, h, http.MethodGet, "/api/nodes/2", "")
	if rec.Code != http.StatusOK {
		t.Errorf("previous layout should survive a rejected snapshot, got %d", rec.Code)
	}
}

func TestSnapshotEndpointMalformedBody(t *testing.T) {
	_, h := newTestServer(t, true)

	rec := doRequest(t, h, http.MethodPost, "/api/snapshot", "{broken")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["code"] != "INVALID_FORMAT" {
		t.Errorf("code = %v, want INVALID_FORMAT", body["code"])
	}
}

func TestStatsEndpoint(t *testing.T) {
	_, h := newTestServer(t, true)

	rec := doRequest(t, h, http.MethodGet, "/api/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["nodes"] != float64(3) || body["atoms"] != float64(2) || body["compounds"] != float64(1) {
		t.Errorf("stats = %v, want 3 nodes, 2 atoms, 1 compound", body)
	}

	tiers, ok := body["tiers"].(map[string]any)
	if !ok {
		t.Fatalf("tiers missing from stats: %v", body)
	}
	if tiers["info"] != float64(2) || tiers["error"] != float64(1) {
		t.Errorf("tiers = %v, want 2 info and 1 error", tiers)
	}
}
