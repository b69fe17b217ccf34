package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"halcyon-hq/torii/pkg/gateway/types"
)

// AttemptObserver receives telemetry from the retry loop. Implementations
// must be safe for concurrent use. A nil observer disables observation.
type AttemptObserver interface {
	// ObserveAttempt records one upstream attempt with the given outcome
	// ("success", "http_error", or "network_error").
	ObserveAttempt(outcome string)

	// ObserveRetryDelay records the backoff delay taken before a retry.
	ObserveRetryDelay(d time.Duration)
}

// Attempt outcomes reported to the AttemptObserver.
const (
	OutcomeSuccess      = "success"
	OutcomeHTTPError    = "http_error"
	OutcomeNetworkError = "network_error"
)

// Client calls the upstream generateContent endpoint with connection pooling
// and a bounded retry policy. It is safe for concurrent use.
type Client struct {
	// config contains the upstream endpoint and transport configuration
	config ClientConfig

	// client is the HTTP client with connection pooling
	client *http.Client

	// retry is the normalized retry policy
	retry RetryPolicy

	// observer receives attempt telemetry (may be nil)
	observer AttemptObserver
}

// NewClient creates a new upstream client. The observer may be nil.
func NewClient(cfg ClientConfig, observer AttemptObserver) *Client {
	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		config: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		retry:    cfg.Retry.normalized(),
		observer: observer,
	}
}

// GenerateText forwards the payload to the upstream service and returns the
// extracted generated text.
//
// Failures are typed: a TransportError when the network failed on the final
// attempt, a ServiceError when the final attempt answered non-2xx, and an
// EmptyResponseError when a 2xx answer held no usable text.
func (c *Client) GenerateText(ctx context.Context, payload *types.GenerationRequest) (string, error) {
	req := BuildRequest(payload)

	body, err := json.Marshal(req)
	if err != nil {
		return "", &TransportError{
			Cause: fmt.Errorf("failed to marshal upstream request: %w", err),
		}
	}

	result, err := c.do(ctx, body)
	if err != nil {
		return "", err
	}

	if result.StatusCode < 200 || result.StatusCode >= 300 {
		return "", &ServiceError{
			StatusCode: result.StatusCode,
			Body:       result.Body,
		}
	}

	return ExtractText(result.Body)
}

// Close releases idle connections held by the client.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// do runs the retry loop. Every non-2xx answer takes the same
// backoff-and-retry path; the last received response or error determines
// the outcome. The final non-success body is logged when giving up.
func (c *Client) do(ctx context.Context, body []byte) (*Result, error) {
	endpoint := c.endpoint()

	var lastResult *Result
	var lastErr error

	for attempt := 0; attempt < c.retry.MaxAttempts; attempt++ {
		result, err := c.attempt(ctx, endpoint, body)
		if err != nil {
			lastResult = nil
			lastErr = err
			c.observeAttempt(OutcomeNetworkError)

			if ctx.Err() != nil {
				return nil, &TransportError{Cause: ctx.Err()}
			}

			slog.Warn("upstream attempt failed",
				"model", c.config.Model,
				"attempt", attempt+1,
				"max_attempts", c.retry.MaxAttempts,
				"error", err,
			)
		} else {
			lastResult = result
			lastErr = nil

			if result.StatusCode >= 200 && result.StatusCode < 300 {
				c.observeAttempt(OutcomeSuccess)
				return result, nil
			}

			c.observeAttempt(OutcomeHTTPError)
			slog.Warn("upstream returned non-success status",
				"model", c.config.Model,
				"status", result.StatusCode,
				"attempt", attempt+1,
				"max_attempts", c.retry.MaxAttempts,
			)
		}

		if attempt == c.retry.MaxAttempts-1 {
			break
		}

		delay := c.retry.Delay(attempt)
		slog.Debug("retrying upstream request",
			"model", c.config.Model,
			"attempt", attempt+1,
			"backoff", delay,
		)
		if werr := c.retry.Wait(ctx, attempt); werr != nil {
			return nil, &TransportError{Cause: werr}
		}
		if c.observer != nil {
			c.observer.ObserveRetryDelay(delay)
		}
	}

	if lastErr != nil {
		slog.Error("upstream unreachable after all attempts",
			"model", c.config.Model,
			"attempts", c.retry.MaxAttempts,
			"error", lastErr,
		)
		return nil, &TransportError{Cause: lastErr}
	}

	slog.Warn("upstream request failed after all attempts",
		"model", c.config.Model,
		"status", lastResult.StatusCode,
		"body", string(lastResult.Body),
	)
	return lastResult, nil
}

// attempt performs a single HTTP POST and drains the response body.
func (c *Client) attempt(ctx context.Context, endpoint string, body []byte) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Body:       respBody,
	}, nil
}

// endpoint builds the upstream URL with the model identifier and the API
// key as a transport-level credential.
func (c *Client) endpoint() string {
	base := strings.TrimSuffix(c.config.BaseURL, "/")
	return fmt.Sprintf("%s/%s:generateContent?key=%s",
		base, c.config.Model, url.QueryEscape(c.config.APIKey))
}

func (c *Client) observeAttempt(outcome string) {
	if c.observer != nil {
		c.observer.ObserveAttempt(outcome)
	}
}
