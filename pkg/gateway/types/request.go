package types

import (
	"bytes"
	"encoding/json"
)

// GenerationRequest is the inbound payload accepted by the gateway.
//
// Parts is an ordered sequence of opaque content-part objects. The gateway
// never inspects individual parts; they are forwarded to the upstream API
// byte-for-byte. SystemInstruction is optional and passed through without
// validation (the upstream tolerates its absence).
type GenerationRequest struct {
	// Parts holds the raw JSON of the "parts" field. It is kept raw so the
	// presence and array-typed checks can be performed exactly, and so the
	// parts survive the round trip to the upstream unmodified.
	Parts json.RawMessage `json:"parts"`

	// SystemInstruction is an optional system prompt for the model.
	SystemInstruction string `json:"systemInstruction,omitempty"`
}

// Validate confirms the request satisfies the inbound contract: the "parts"
// field must be present and must be a JSON array. SystemInstruction is not
// validated.
func (r *GenerationRequest) Validate() error {
	if len(r.Parts) == 0 {
		return &ValidationError{
			Field:   "parts",
			Message: "required field is missing",
		}
	}

	trimmed := bytes.TrimSpace(r.Parts)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return &ValidationError{
			Field:   "parts",
			Message: "must be an array",
		}
	}

	return nil
}

// ValidationError represents a request validation failure.
type ValidationError struct {
	// Field is the name of the invalid field
	Field string

	// Message describes what is invalid about the field
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "validation error for field \"" + e.Field + "\": " + e.Message
}
