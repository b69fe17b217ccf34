package types

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the caller-facing error body. Every failure the gateway
// can produce is serialized in this shape, paired with an explicit HTTP
// status code that is carried out-of-band (not part of the JSON body).
type ErrorResponse struct {
	// Error is a stable, human-readable error message.
	Error string `json:"error"`

	// Details carries the upstream error payload verbatim when the failure
	// originated from the upstream service. It is omitted otherwise.
	Details json.RawMessage `json:"details,omitempty"`

	// status is the HTTP status code to emit with this body.
	status int
}

// Caller-facing error messages. These are part of the external contract and
// must not change without versioning the API.
const (
	// MsgMethodNotAllowed is returned for any non-POST request.
	MsgMethodNotAllowed = "Method Not Allowed"

	// MsgServiceMisconfigured is returned when mandatory server configuration
	// (upstream API key, verifier credentials) is missing or unusable.
	MsgServiceMisconfigured = "Service is not configured."

	// MsgMissingCredential is returned when the Authorization header is
	// absent or not in "Bearer <token>" form.
	MsgMissingCredential = "Authorization header missing or invalid."

	// MsgAccessDenied is returned for every credential verification failure.
	// Expired, forged, and revoked tokens are deliberately indistinguishable
	// to the caller.
	MsgAccessDenied = "Access denied: Token verification failed."

	// MsgMalformedPayload is returned when the "parts" field is missing or
	// not an array.
	MsgMalformedPayload = "Missing content parts."

	// MsgUpstreamError is returned when the upstream service answered with a
	// non-2xx status after retries were exhausted.
	MsgUpstreamError = "AI Service Error"

	// MsgEmptyResponse is returned when the upstream succeeded but yielded
	// no extractable text.
	MsgEmptyResponse = "AI response was empty."

	// MsgTransportFailure is returned when the upstream could not be reached
	// or the call failed below the HTTP layer.
	MsgTransportFailure = "Internal server error during fetch."
)

// HTTPStatusCode returns the HTTP status code to emit with this error body.
func (e *ErrorResponse) HTTPStatusCode() int {
	if e.status == 0 {
		return http.StatusInternalServerError
	}
	return e.status
}

// NewErrorResponse creates an error response with an explicit status code.
func NewErrorResponse(status int, message string) *ErrorResponse {
	return &ErrorResponse{
		Error:  message,
		status: status,
	}
}

// NewMethodNotAllowedError creates the 405 response for non-POST requests.
func NewMethodNotAllowedError() *ErrorResponse {
	return NewErrorResponse(http.StatusMethodNotAllowed, MsgMethodNotAllowed)
}

// NewServiceMisconfiguredError creates the 500 response emitted while the
// gateway runs in degraded mode due to missing server secrets.
func NewServiceMisconfiguredError() *ErrorResponse {
	return NewErrorResponse(http.StatusInternalServerError, MsgServiceMisconfigured)
}

// NewMissingCredentialError creates the 401 response for a wholly absent or
// malformed Authorization header.
func NewMissingCredentialError() *ErrorResponse {
	return NewErrorResponse(http.StatusUnauthorized, MsgMissingCredential)
}

// NewAccessDeniedError creates the 403 response for any verification failure.
func NewAccessDeniedError() *ErrorResponse {
	return NewErrorResponse(http.StatusForbidden, MsgAccessDenied)
}

// NewMalformedPayloadError creates the 400 response for an invalid payload.
func NewMalformedPayloadError() *ErrorResponse {
	return NewErrorResponse(http.StatusBadRequest, MsgMalformedPayload)
}

// NewUpstreamServiceError creates an error response that passes the
// upstream's status code and raw body through to the caller.
func NewUpstreamServiceError(status int, upstreamBody []byte) *ErrorResponse {
	resp := NewErrorResponse(status, MsgUpstreamError)
	if len(upstreamBody) > 0 {
		if json.Valid(upstreamBody) {
			resp.Details = json.RawMessage(upstreamBody)
		} else {
			// Non-JSON upstream bodies are still surfaced for diagnostics,
			// wrapped as a JSON string so the response stays well-formed.
			quoted, err := json.Marshal(string(upstreamBody))
			if err == nil {
				resp.Details = quoted
			}
		}
	}
	return resp
}

// NewEmptyResponseError creates the 500 response for an upstream success
// that contained no extractable text.
func NewEmptyResponseError() *ErrorResponse {
	return NewErrorResponse(http.StatusInternalServerError, MsgEmptyResponse)
}

// NewTransportError creates the 500 response for network-level failures.
func NewTransportError() *ErrorResponse {
	return NewErrorResponse(http.StatusInternalServerError, MsgTransportFailure)
}
