package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"halcyon-hq/torii/pkg/gateway/types"
)

const (
	// MaxRequestBodySize is the maximum allowed request body size (10MB).
	MaxRequestBodySize = 10 * 1024 * 1024

	// AuthorizationHeader is the HTTP header carrying the bearer credential.
	AuthorizationHeader = "Authorization"

	// RequestIDHeader is the HTTP header for request ID propagation.
	RequestIDHeader = "X-Request-ID"
)

// ParseGenerationRequest parses an HTTP request body into a
// GenerationRequest. The body is limited to MaxRequestBodySize, must be
// valid JSON, and must carry an array-typed "parts" field.
//
// All parse and shape failures are RequestErrors and surface to the caller
// as the 400 malformed-payload response.
func ParseGenerationRequest(r *http.Request) (*types.GenerationRequest, error) {
	limitedReader := io.LimitReader(r.Body, MaxRequestBodySize)

	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, &RequestError{
			Message: fmt.Sprintf("failed to read request body: %v", err),
		}
	}

	if len(body) >= MaxRequestBodySize {
		return nil, &RequestError{
			Message: fmt.Sprintf("request body exceeds maximum size of %d bytes", MaxRequestBodySize),
		}
	}

	var req types.GenerationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &RequestError{
			Message: fmt.Sprintf("invalid JSON: %v", err),
		}
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return &req, nil
}

// RequestError represents a request parsing failure. The message is logged
// server-side; the caller sees only the contract's 400 body.
type RequestError struct {
	Message string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return e.Message
}
