package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"halcyon-hq/torii/pkg/gateway/types"
)

// fakeObserver records attempt outcomes for assertions.
type fakeObserver struct {
	mu       sync.Mutex
	outcomes []string
	delays   []time.Duration
}

func (o *fakeObserver) ObserveAttempt(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func (o *fakeObserver) ObserveRetryDelay(d time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.delays = append(o.delays, d)
}

// noSleep is an injectable sleep that returns immediately.
func noSleep(ctx context.Context, d time.Duration) error { return nil }

func newTestClient(baseURL string, observer AttemptObserver) *Client {
	return NewClient(ClientConfig{
		BaseURL: baseURL,
		Model:   "test-model",
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
		Retry: RetryPolicy{
			MaxAttempts: 3,
			BaseDelay:   time.Second,
			Sleep:       noSleep,
		},
	}, observer)
}

func payload(t *testing.T, body string) *types.GenerationRequest {
	t.Helper()
	var req types.GenerationRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("failed to build payload: %v", err)
	}
	return &req
}

func TestClient_GenerateText_Success(t *testing.T) {
	var gotPath, gotQuery, gotContentType string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"generated text"}]}}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, nil)
	defer client.Close()

	text, err := client.GenerateText(context.Background(), payload(t, `{"parts":[{"text":"hi"}],"systemInstruction":"sys"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "generated text" {
		t.Errorf("expected extracted text, got %q", text)
	}

	if gotPath != "/test-model:generateContent" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotQuery != "key=test-key" {
		t.Errorf("expected API key in query, got %s", gotQuery)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected JSON content type, got %s", gotContentType)
	}

	want := `{"contents":[{"role":"user","parts":[{"text":"hi"}]}],"systemInstruction":{"parts":[{"text":"sys"}]}}`
	if string(gotBody) != want {
		t.Errorf("unexpected upstream body:\n got: %s\nwant: %s", gotBody, want)
	}
}

func TestClient_GenerateText_RetriesThenSucceeds(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"busy"}`))
			return
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	observer := &fakeObserver{}
	client := newTestClient(srv.URL, observer)
	defer client.Close()

	text, err := client.GenerateText(context.Background(), payload(t, `{"parts":[]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "ok" {
		t.Errorf("expected ok, got %q", text)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}

	wantOutcomes := []string{OutcomeHTTPError, OutcomeHTTPError, OutcomeSuccess}
	if len(observer.outcomes) != len(wantOutcomes) {
		t.Fatalf("expected %d outcomes, got %v", len(wantOutcomes), observer.outcomes)
	}
	for i, want := range wantOutcomes {
		if observer.outcomes[i] != want {
			t.Errorf("outcome[%d] = %q, want %q", i, observer.outcomes[i], want)
		}
	}

	// Backoff doubles: 1s after the first failure, 2s after the second.
	if len(observer.delays) != 2 || observer.delays[0] != time.Second || observer.delays[1] != 2*time.Second {
		t.Errorf("expected delays [1s 2s], got %v", observer.delays)
	}
}

func TestClient_GenerateText_ExhaustedRetriesReturnsServiceError(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, nil)
	defer client.Close()

	_, err := client.GenerateText(context.Background(), payload(t, `{"parts":[]}`))

	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if serviceErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected status 429 preserved, got %d", serviceErr.StatusCode)
	}
	if string(serviceErr.Body) != `{"error":{"code":429,"message":"quota"}}` {
		t.Errorf("expected final body preserved, got %s", serviceErr.Body)
	}
	if attempts != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", attempts)
	}
}

func TestClient_GenerateText_4xxAlsoRetried(t *testing.T) {
	// The retry loop treats every non-2xx alike; there are no per-status cases.
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad request"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, nil)
	defer client.Close()

	_, err := client.GenerateText(context.Background(), payload(t, `{"parts":[]}`))

	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if serviceErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", serviceErr.StatusCode)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts for 4xx, got %d", attempts)
	}
}

func TestClient_GenerateText_NetworkFailureReturnsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	observer := &fakeObserver{}
	client := newTestClient(srv.URL, observer)
	defer client.Close()

	_, err := client.GenerateText(context.Background(), payload(t, `{"parts":[]}`))

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}

	for _, outcome := range observer.outcomes {
		if outcome != OutcomeNetworkError {
			t.Errorf("expected network_error outcomes, got %v", observer.outcomes)
			break
		}
	}
}

func TestClient_GenerateText_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, nil)
	defer client.Close()

	_, err := client.GenerateText(context.Background(), payload(t, `{"parts":[]}`))

	var emptyErr *EmptyResponseError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected EmptyResponseError, got %v", err)
	}
}

func TestClient_GenerateText_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		BaseURL: srv.URL,
		Model:   "test-model",
		APIKey:  "test-key",
		Retry: RetryPolicy{
			MaxAttempts: 3,
			BaseDelay:   time.Second,
			Sleep: func(ctx context.Context, d time.Duration) error {
				return context.Canceled
			},
		},
	}, nil)
	defer client.Close()

	_, err := client.GenerateText(context.Background(), payload(t, `{"parts":[]}`))

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError on cancelled wait, got %v", err)
	}
}
