package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHealthzEndpoint(t *testing.T) {
	srv := newTestServer(t)

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	var body healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if body.Status != "ok" {
		t.Errorf("status = %q, want %q", body.Status, "ok")
	}
	if body.MaxTimeoutMS != 0 {
		t.Errorf("max_timeout_ms = %d, want 0 for an uncapped engine", body.MaxTimeoutMS)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	// Make requests to generate metrics.
	for _, path := range []string{"/healthz", "/v1/factor/12"} {
		if r, err := http.Get(ts.URL + path); err == nil {
			r.Body.Close()
		}
	}

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/plain") && !strings.Contains(contentType, "text/openmetrics") {
		t.Errorf("Content-Type = %q, expected prometheus format", contentType)
	}

	bodyBytes, _ := io.ReadAll(resp.Body)
	body := string(bodyBytes)

	if !strings.Contains(body, "factor_http_requests_total") {
		t.Error("metrics output missing factor_http_requests_total")
	}
	for _, name := range []string{
		"factor_http_request_duration_seconds",
		"factor_runs_total",
		"factor_search_duration_seconds",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}

func TestRoutePatternLabelsNumbers(t *testing.T) {
	srv := newTestServer(t)

	var pattern string
	srv.Router().Get("/lookup/{n}", func(w http.ResponseWriter, r *http.Request) {
		pattern = routePattern(r)
	})

	srv.Router().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/lookup/12345", nil))

	if pattern != "/lookup/{n}" {
		t.Errorf("routePattern = %q, want %q", pattern, "/lookup/{n}")
	}
}
