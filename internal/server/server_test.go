package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	perrors "github.com/matzehuels/papg/pkg/errors"
	"github.com/matzehuels/papg/pkg/solver"
)

const twoCycle = "parity 1;\n0 0 0 1 \"A\";\n1 1 1 0 \"B\";\n"

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	cfg.Logger = log.New(io.Discard)
	ts := httptest.NewServer(New(cfg).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("response should carry a UUID request id, got %q", resp.Header.Get(RequestIDHeader))
	}
}

func TestRequestIDReused(t *testing.T) {
	ts := newTestServer(t, Config{})
	id := uuid.NewString()
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}
}

func TestStrategies(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp, err := http.Get(ts.URL + "/strategies")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got []string
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got) != len(solver.Strategies()) {
		t.Fatalf("got %d strategies, want %d", len(got), len(solver.Strategies()))
	}
	if got[0] != string(solver.Strategies()[0]) {
		t.Errorf("first strategy = %q, want %q", got[0], solver.Strategies()[0])
	}
}

func TestVersion(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp, err := http.Get(ts.URL + "/version")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["version"] == "" {
		t.Error("version should not be empty")
	}
}

func TestSolve(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		contentType string
		body        string
		want        []string
	}{
		{
			name:        "pgsolver default strategy",
			contentType: "text/plain",
			body:        twoCycle,
			want:        []string{"even", "even"},
		},
		{
			name:        "pgsolver with self-loop",
			query:       "?strategy=propagation&lock_policy=eager",
			contentType: "text/plain",
			body:        "0 0 0 1;\n1 1 1 0,1;\n",
			want:        []string{"odd", "odd"},
		},
		{
			name:        "json body",
			query:       "?strategy=random&seed=3",
			contentType: "application/json; charset=utf-8",
			body:        `{"vertices":[{"id":0,"owner":"odd","priority":1,"successors":[0]}]}`,
			want:        []string{"odd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, Config{})
			resp := post(t, ts.URL+"/solve"+tt.query, tt.contentType, tt.body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, body %+v", resp.StatusCode, decodeError(t, resp))
			}
			var got SolveResponse
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatal(err)
			}
			if len(got.Winners) != len(tt.want) {
				t.Fatalf("winners = %v, want %v", got.Winners, tt.want)
			}
			for i, w := range got.Winners {
				if w.String() != tt.want[i] {
					t.Errorf("winner[%d] = %s, want %s", i, w, tt.want[i])
				}
			}
			if got.Lifts <= 0 {
				t.Errorf("lifts = %d, want > 0", got.Lifts)
			}
			if got.ID != resp.Header.Get(RequestIDHeader) {
				t.Errorf("id = %q, want request id %q", got.ID, resp.Header.Get(RequestIDHeader))
			}
		})
	}
}

func TestSolveErrors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		body   string
		status int
		code   perrors.Code
	}{
		{"unknown strategy", "?strategy=fastest", twoCycle, http.StatusBadRequest, perrors.ErrCodeInvalidStrategy},
		{"unknown lock policy", "?lock_policy=never", twoCycle, http.StatusBadRequest, perrors.ErrCodeInvalidConfig},
		{"bad seed", "?seed=abc", twoCycle, http.StatusBadRequest, perrors.ErrCodeInvalidInput},
		{"dead end", "", "0 0 0 1;\n1 1 1;\n", http.StatusBadRequest, perrors.ErrCodeInvalidGame},
		{"syntax", "", "zero zero;\n", http.StatusBadRequest, perrors.ErrCodeInvalidGame},
		{"empty", "", "  \n", http.StatusBadRequest, perrors.ErrCodeInvalidInput},
		{"header beyond vertices", "", "parity 2000000000;\n0 0 0 0;\n", http.StatusBadRequest, perrors.ErrCodeInvalidGame},
		{"sparse ids", "", "0 0 0 0;\n2000000000 0 0 0;\n", http.StatusBadRequest, perrors.ErrCodeInvalidGame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, Config{})
			resp := post(t, ts.URL+"/solve"+tt.query, "text/plain", tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decodeError(t, resp)
			if body.Error.Code != tt.code {
				t.Errorf("code = %s, want %s (%s)", body.Error.Code, tt.code, body.Error.Message)
			}
			if body.RequestID == "" {
				t.Error("error body should carry the request id")
			}
		})
	}
}

func TestSolveBodyTooLarge(t *testing.T) {
	ts := newTestServer(t, Config{MaxBodyBytes: 16})
	resp := post(t, ts.URL+"/solve", "text/plain", twoCycle)
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", resp.StatusCode)
	}
	if body := decodeError(t, resp); body.Error.Code != perrors.ErrCodeGameTooLarge {
		t.Errorf("code = %s, want %s", body.Error.Code, perrors.ErrCodeGameTooLarge)
	}
}

func TestSolveTooManyVertices(t *testing.T) {
	ts := newTestServer(t, Config{MaxVertices: 1})
	resp := post(t, ts.URL+"/solve", "text/plain", twoCycle)
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", resp.StatusCode)
	}
	if body := decodeError(t, resp); !strings.Contains(body.Error.Message, "2 vertices") {
		t.Errorf("message = %q", body.Error.Message)
	}
}

func TestSolvePriorityTooLarge(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		body string
		want string
	}{
		{"default limit", Config{}, "0 50000000 0 0;\n", "priority 50000000"},
		{"configured limit", Config{MaxPriority: 1}, "0 2 0 0;\n", "priority 2"},
		{"measure size", Config{MaxMeasureCells: 3}, "parity 1;\n0 0 0 1;\n1 5 1 0;\n", "need 6 components"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, tt.cfg)
			resp := post(t, ts.URL+"/solve", "text/plain", tt.body)
			if resp.StatusCode != http.StatusRequestEntityTooLarge {
				t.Errorf("status = %d, want 413", resp.StatusCode)
			}
			body := decodeError(t, resp)
			if body.Error.Code != perrors.ErrCodeGameTooLarge {
				t.Errorf("code = %s, want %s", body.Error.Code, perrors.ErrCodeGameTooLarge)
			}
			if !strings.Contains(body.Error.Message, tt.want) {
				t.Errorf("message = %q, want it to mention %q", body.Error.Message, tt.want)
			}
		})
	}
}

func TestSolveWithinPriorityLimit(t *testing.T) {
	ts := newTestServer(t, Config{MaxPriority: 1, MaxMeasureCells: 2})
	resp := post(t, ts.URL+"/solve", "text/plain", twoCycle)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestRenderDOT(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp := post(t, ts.URL+"/render?format=dot&measures=true", "text/plain", twoCycle)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("Content-Type = %q", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(data), "digraph") {
		t.Errorf("body should be DOT:\n%s", data)
	}
}

func TestRenderBadFormat(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp := post(t, ts.URL+"/render?format=gif", "text/plain", twoCycle)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if body := decodeError(t, resp); body.Error.Code != perrors.ErrCodeInvalidFormat {
		t.Errorf("code = %s, want %s", body.Error.Code, perrors.ErrCodeInvalidFormat)
	}
}

func TestNotFound(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if body := decodeError(t, resp); body.Error.Code != perrors.ErrCodeNotFound {
		t.Errorf("code = %s, want %s", body.Error.Code, perrors.ErrCodeNotFound)
	}
}
