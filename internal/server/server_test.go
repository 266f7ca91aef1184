package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/matzehuels/gatestack/pkg/errors"
	"github.com/matzehuels/gatestack/pkg/share"
)

const bellJSON = `{
  "wires": 2,
  "ops": [
    {"gate": "h", "on": [0]},
    {"gate": "cx", "from": [0], "to": [1]}
  ]
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := Config{
		StoreBackend: StoreMemory,
		ShareTTL:     time.Hour,
		MaxBodyBytes: 1 << 20,
	}
	s, err := New(context.Background(), cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v (body %q)", err, w.Body.String())
	}
	return resp
}

func TestHealthz(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Errorf("GET /healthz = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body = %q, want status ok", w.Body.String())
	}
}

func TestRender_DefaultSVG(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodPost, "/v1/render", bellJSON)
	if w.Code != http.StatusOK {
		t.Fatalf("POST /v1/render = %d, body %q", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", got)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("</svg>")) {
		t.Error("response is not an SVG document")
	}
}

func TestRender_Formats(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		format      string
		contentType string
		marker      string
	}{
		{"text", "text/plain; charset=utf-8", "H"},
		{"json", "application/json", `"gate"`},
		{"dot", "text/vnd.graphviz", "digraph"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/v1/render?format="+tt.format, bellJSON)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body %q", w.Code, w.Body.String())
			}
			if got := w.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if !strings.Contains(w.Body.String(), tt.marker) {
				t.Errorf("body missing %q:\n%s", tt.marker, w.Body.String())
			}
		})
	}
}

func TestRender_Errors(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   apperrors.Code
	}{
		{"malformed json", "/v1/render", `{"wires": `, http.StatusBadRequest, apperrors.ErrCodeInvalidDocument},
		{"unknown field", "/v1/render", `{"qubits": 2}`, http.StatusBadRequest, apperrors.ErrCodeInvalidDocument},
		{"unknown format", "/v1/render?format=png", bellJSON, http.StatusBadRequest, apperrors.ErrCodeInvalidFormat},
		{"bad wires param", "/v1/render?wires=-2", bellJSON, http.StatusBadRequest, apperrors.ErrCodeInvalidInput},
		{"wire out of range", "/v1/render?wires=1", bellJSON, http.StatusBadRequest, apperrors.ErrCodeWireRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, tt.path, tt.body)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %q)", w.Code, tt.status, w.Body.String())
			}
			if resp := decodeError(t, w); resp.Code != string(tt.code) {
				t.Errorf("error code = %q, want %q", resp.Code, tt.code)
			}
		})
	}
}

func TestPublishFetchDelete(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/v1/circuits", bellJSON)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /v1/circuits = %d, body %q", w.Code, w.Body.String())
	}
	var published struct {
		ID        string    `json:"id"`
		URL       string    `json:"url"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	if err := json.NewDecoder(w.Body).Decode(&published); err != nil {
		t.Fatalf("decode publish response: %v", err)
	}
	if published.ID == "" {
		t.Fatal("publish returned no ID")
	}
	if want := "/v1/circuits/" + published.ID + ".svg"; published.URL != want {
		t.Errorf("url = %q, want %q", published.URL, want)
	}
	if published.ExpiresAt.IsZero() {
		t.Error("publish with a TTL should set expires_at")
	}

	w = do(t, s, http.MethodGet, "/v1/circuits/"+published.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET circuit = %d, body %q", w.Code, w.Body.String())
	}
	var rec share.Record
	if err := json.NewDecoder(w.Body).Decode(&rec); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if rec.Document == nil || rec.Document.Wires != 2 {
		t.Errorf("record document = %+v, want the published circuit", rec.Document)
	}

	w = do(t, s, http.MethodGet, published.URL, "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET circuit SVG = %d, body %q", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("</svg>")) {
		t.Error("circuit SVG response is not an SVG document")
	}

	w = do(t, s, http.MethodDelete, "/v1/circuits/"+published.ID, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("DELETE circuit = %d", w.Code)
	}
	w = do(t, s, http.MethodGet, "/v1/circuits/"+published.ID, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("GET after delete = %d, want 404", w.Code)
	}
	if resp := decodeError(t, w); resp.Code != string(apperrors.ErrCodeCircuitNotFound) {
		t.Errorf("error code = %q, want %q", resp.Code, apperrors.ErrCodeCircuitNotFound)
	}
}

func TestPublish_RejectsUnplaceableCircuit(t *testing.T) {
	s := newTestServer(t)
	body := `{"wires": 2, "ops": [{"gate": "h", "on": [9]}]}`
	w := do(t, s, http.MethodPost, "/v1/circuits", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %q)", w.Code, w.Body.String())
	}
	if resp := decodeError(t, w); resp.Code != string(apperrors.ErrCodeWireRange) {
		t.Errorf("error code = %q, want %q", resp.Code, apperrors.ErrCodeWireRange)
	}
}

func TestGetCircuit_UnknownID(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodGet, "/v1/circuits/does-not-exist", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestMaxBodyBytes(t *testing.T) {
	cfg := Config{
		StoreBackend: StoreMemory,
		MaxBodyBytes: 16,
	}
	s, err := New(context.Background(), cfg, log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	w := do(t, s, http.MethodPost, "/v1/render", bellJSON)
	if w.Code != http.StatusBadRequest {
		t.Errorf("oversized body status = %d, want 400", w.Code)
	}
}
