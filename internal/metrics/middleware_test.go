package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddleware_RecordsDurationAndCount(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest("GET", "/healthz", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if v := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/healthz", "200")); v < 1 {
		t.Errorf("expected http_requests_total >= 1, got %f", v)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
}

func TestMetricsMiddleware_StatusAndMethod(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/mcp", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	r.Delete("/mcp", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	tests := []struct {
		method string
		status string
	}{
		{"POST", "202"},
		{"DELETE", "400"},
	}
	for _, tc := range tests {
		t.Run(tc.method, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(tc.method, "/mcp", http.NoBody))

			if v := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, "/mcp", tc.status)); v < 1 {
				t.Errorf("expected requests_total for %s %s >= 1, got %f", tc.method, tc.status, v)
			}
		})
	}
}

func TestRoutePattern_WithoutRouter(t *testing.T) {
	req := httptest.NewRequest("GET", "/anything", http.NoBody)
	if got := routePattern(req); got != "unknown" {
		t.Errorf("routePattern() = %q, want unknown", got)
	}
}

func TestStatusWriter_Flush(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &statusWriter{ResponseWriter: rr, status: http.StatusOK}
	_, _ = w.Write([]byte("data: x\n\n"))
	w.Flush()
	if !rr.Flushed {
		t.Error("flush not forwarded")
	}
}
