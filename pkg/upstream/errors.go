package upstream

import "fmt"

// ServiceError represents a non-2xx answer from the upstream service after
// retries were exhausted. Status and body are preserved verbatim so the
// gateway can pass them through to the caller for diagnostics.
type ServiceError struct {
	// StatusCode is the HTTP status of the final attempt.
	StatusCode int

	// Body is the raw error body of the final attempt.
	Body []byte
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("upstream error (status %d): %s", e.StatusCode, string(e.Body))
}

// EmptyResponseError indicates the upstream returned 2xx but the response
// held no extractable text at candidates[0].content.parts[0].text.
type EmptyResponseError struct{}

// Error implements the error interface.
func (e *EmptyResponseError) Error() string {
	return "upstream response contained no generated text"
}

// TransportError represents a network-level or parse failure anywhere in the
// call path, after retries were exhausted.
type TransportError struct {
	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream transport failure: %v", e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}
