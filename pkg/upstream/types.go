package upstream

import (
	"encoding/json"
	"time"
)

// Request is the upstream generateContent request body.
type Request struct {
	// Contents is the conversation content. The gateway always sends a
	// single user turn whose parts are the caller's parts, verbatim.
	Contents []Content `json:"contents"`

	// SystemInstruction carries the caller's system prompt.
	SystemInstruction SystemInstruction `json:"systemInstruction"`
}

// Content is a single conversation turn.
type Content struct {
	// Role identifies the author of the turn ("user" for forwarded requests).
	Role string `json:"role"`

	// Parts is the raw JSON array of content parts. It is forwarded without
	// inspection or mutation.
	Parts json.RawMessage `json:"parts"`
}

// SystemInstruction is the system-prompt wrapper of the upstream schema.
type SystemInstruction struct {
	Parts []TextPart `json:"parts"`
}

// TextPart is a text-only content part.
type TextPart struct {
	Text string `json:"text"`
}

// GenerateContentResponse is the subset of the upstream response schema the
// gateway needs for text extraction. All other fields are ignored.
type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is a single generated candidate.
type Candidate struct {
	Content CandidateContent `json:"content"`
}

// CandidateContent holds the parts of a generated candidate.
type CandidateContent struct {
	Parts []TextPart `json:"parts"`
}

// Result is the final outcome of the retry loop: the last received HTTP
// status and body, whether success or failure.
type Result struct {
	// StatusCode is the HTTP status of the last attempt.
	StatusCode int

	// Body is the raw response body of the last attempt.
	Body []byte
}

// ClientConfig contains configuration for the upstream client.
type ClientConfig struct {
	// BaseURL is the base URL of the upstream API, without a trailing slash.
	// Example: "https://generativelanguage.googleapis.com/v1beta/models"
	BaseURL string

	// Model is the model identifier appended to the base URL.
	// Example: "gemini-2.0-flash"
	Model string

	// APIKey is the upstream API key, sent as a query parameter.
	APIKey string

	// Timeout is the per-attempt HTTP timeout.
	Timeout time.Duration

	// Retry is the retry policy applied to every call.
	Retry RetryPolicy

	// MaxIdleConns controls the connection pool size.
	MaxIdleConns int

	// MaxIdleConnsPerHost controls per-host idle connections.
	MaxIdleConnsPerHost int

	// IdleConnTimeout controls how long idle connections are kept.
	IdleConnTimeout time.Duration
}
