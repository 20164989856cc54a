package chi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	zapobserver "go.uber.org/zap/zaptest/observer"

	logpkg "github.com/theodi/ndlcore/internal/logger"
	"github.com/theodi/ndlcore/internal/mcpserver"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestHealth(t *testing.T) {
	r := NewRouter(okHandler(), zap.NewNop())

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, PathHealth, http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	var resp healthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status field: got %q, want ok", resp.Status)
	}
	if resp.Version == "" {
		t.Error("version should be set")
	}
}

func TestNotFound_JSON(t *testing.T) {
	r := NewRouter(okHandler(), nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/collections", http.NoBody))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
	var resp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != "not_found" {
		t.Errorf("code: got %q, want not_found", resp.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := NewRouter(okHandler(), nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, PathMetrics, http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Header().Get("Content-Type"), "text/plain") {
		t.Errorf("content type: got %q", rr.Header().Get("Content-Type"))
	}
}

func TestJSONRecoverer(t *testing.T) {
	core, logs := zapobserver.New(zapcore.ErrorLevel)
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	r := NewRouter(panicking, zap.New(core))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, PathMCP, http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	var resp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != "internal_error" {
		t.Errorf("code: got %q, want internal_error", resp.Code)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Errorf("expected one panic log entry, got %d", logs.Len())
	}
}

func TestWideEventMiddleware(t *testing.T) {
	core, logs := zapobserver.New(zapcore.InfoLevel)
	var ctxLogged bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logpkg.FromContext(r.Context()).Info("inside")
		ctxLogged = true
		w.WriteHeader(http.StatusAccepted)
	})
	r := NewRouter(h, zap.New(core))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, PathMCP, http.NoBody))

	if rr.Code != http.StatusAccepted {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusAccepted)
	}
	reqID := rr.Header().Get("X-Request-ID")
	if reqID == "" {
		t.Fatal("X-Request-ID header not set")
	}
	if !ctxLogged {
		t.Fatal("handler not called")
	}

	inside := logs.FilterMessage("inside").All()
	if len(inside) != 1 || inside[0].ContextMap()["request_id"] != reqID {
		t.Errorf("context logger should carry request_id %q: %+v", reqID, inside)
	}

	lines := logs.FilterMessage("http_request").All()
	if len(lines) != 1 {
		t.Fatalf("expected one access log line, got %d", len(lines))
	}
	fields := lines[0].ContextMap()
	if fields["status"] != int64(http.StatusAccepted) {
		t.Errorf("status field: got %v", fields["status"])
	}
	if fields["path"] != PathMCP {
		t.Errorf("path field: got %v", fields["path"])
	}
}

func TestMCPOverHTTP_Initialize(t *testing.T) {
	tools := mcpserver.New(mcpserver.Config{BaseURL: "http://127.0.0.1:1"})
	srv := httptest.NewServer(NewRouter(tools.HTTPHandler(), nil))
	defer srv.Close()

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}}}`
	req, err := http.NewRequest(http.MethodPost, srv.URL+PathMCP, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusOK)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), mcpserver.ServerName) {
		t.Errorf("initialize reply should name the server: %s", raw)
	}
}
