package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"halcyon-hq/torii/pkg/config"
	"halcyon-hq/torii/pkg/gateway/types"
	"halcyon-hq/torii/pkg/telemetry/metrics"
)

// stubGenerator returns a fixed result for every request.
type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) GenerateText(ctx context.Context, req *types.GenerationRequest) (string, error) {
	return s.text, s.err
}

func testConfig() *config.Config {
	var cfg config.Config
	config.ApplyDefaults(&cfg)
	cfg.Upstream.APIKey = "test-key"
	return &cfg
}

func newTestServer(t *testing.T, cfg *config.Config, deps Dependencies) http.Handler {
	t.Helper()
	if deps.Generator == nil {
		deps.Generator = &stubGenerator{text: "hello"}
	}
	return NewServer(cfg, deps).Handler()
}

func TestServer_GenerateRoute(t *testing.T) {
	handler := newTestServer(t, testConfig(), Dependencies{
		Generator: &stubGenerator{text: "generated text"},
	})

	body := strings.NewReader(`{"parts":[{"text":"hi"}]}`)
	r := httptest.NewRequest(http.MethodPost, GeneratePath, body)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"text":"generated text"}` {
		t.Errorf("unexpected body: %s", got)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected request ID header through full chain")
	}
}

func TestServer_GenerateRoute_Misconfigured(t *testing.T) {
	cfg := testConfig()
	cfg.Upstream.APIKey = ""
	handler := newTestServer(t, cfg, Dependencies{})

	body := strings.NewReader(`{"parts":[{"text":"hi"}]}`)
	r := httptest.NewRequest(http.MethodPost, GeneratePath, body)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"error":"Service is not configured."}` {
		t.Errorf("unexpected body: %s", got)
	}
}

func TestServer_GenerateRoute_DegradedVerifierFailsClosed(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.Enabled = true
	handler := newTestServer(t, cfg, Dependencies{
		VerifierReady: func() bool { return false },
	})

	// No Authorization header: the configuration gate must fire before
	// the credential gate, so the caller is not asked for a token that
	// can never verify.
	body := strings.NewReader(`{"parts":[{"text":"hi"}]}`)
	r := httptest.NewRequest(http.MethodPost, GeneratePath, body)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"error":"Service is not configured."}` {
		t.Errorf("unexpected body: %s", got)
	}
}

func TestServer_HealthRoute(t *testing.T) {
	handler := newTestServer(t, testConfig(), Dependencies{})

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status = %v", resp["status"])
	}
}

func TestServer_ReadyRoute(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*config.Config)
		deps       Dependencies
		wantCode   int
		wantStatus string
	}{
		{
			name:       "ready when configured",
			mutate:     func(c *config.Config) {},
			wantCode:   http.StatusOK,
			wantStatus: "ready",
		},
		{
			name:       "not ready without upstream key",
			mutate:     func(c *config.Config) { c.Upstream.APIKey = "" },
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "not_ready",
		},
		{
			name:   "not ready with degraded verifier",
			mutate: func(c *config.Config) { c.Auth.Enabled = true },
			deps: Dependencies{
				VerifierReady: func() bool { return false },
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "not_ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			handler := newTestServer(t, cfg, tt.deps)

			r := httptest.NewRequest(http.MethodGet, "/ready", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, w.Code)
			}

			var resp map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if resp["status"] != tt.wantStatus {
				t.Errorf("status = %v, want %s", resp["status"], tt.wantStatus)
			}
		})
	}
}

func TestServer_MetricsRoute(t *testing.T) {
	cfg := testConfig()
	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	handler := newTestServer(t, cfg, Dependencies{Collector: collector})

	// Generate one request so counters have samples.
	body := strings.NewReader(`{"parts":[{"text":"hi"}]}`)
	r := httptest.NewRequest(http.MethodPost, GeneratePath, body)
	handler.ServeHTTP(httptest.NewRecorder(), r)

	r = httptest.NewRequest(http.MethodGet, cfg.Telemetry.Metrics.Path, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics endpoint, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "torii_requests_total") {
		t.Errorf("expected request counter in exposition, got:\n%s", w.Body.String())
	}
}

func TestServer_MetricsRouteDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Telemetry.Metrics.Enabled = false
	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	handler := newTestServer(t, cfg, Dependencies{Collector: collector})

	r := httptest.NewRequest(http.MethodGet, cfg.Telemetry.Metrics.Path, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 when metrics disabled, got %d", w.Code)
	}
}

func TestServer_CORSPreflight(t *testing.T) {
	handler := newTestServer(t, testConfig(), Dependencies{})

	r := httptest.NewRequest(http.MethodOptions, GeneratePath, nil)
	r.Header.Set("Origin", "https://app.example.com")
	r.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "POST") {
		t.Errorf("expected POST allowed, got %q", got)
	}
}

func TestServer_BareOptionsGets405(t *testing.T) {
	handler := newTestServer(t, testConfig(), Dependencies{})

	r := httptest.NewRequest(http.MethodOptions, GeneratePath, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for non-preflight OPTIONS, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"error":"Method Not Allowed"}` {
		t.Errorf("unexpected body: %s", got)
	}
}

func TestServer_UnknownRoute(t *testing.T) {
	handler := newTestServer(t, testConfig(), Dependencies{})

	r := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestServer_IsRunning(t *testing.T) {
	srv := NewServer(testConfig(), Dependencies{Generator: &stubGenerator{}})
	if srv.IsRunning() {
		t.Error("server should not report running before Start")
	}
}
