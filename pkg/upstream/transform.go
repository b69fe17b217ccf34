package upstream

import (
	"encoding/json"
	"fmt"

	"halcyon-hq/torii/pkg/gateway/types"
)

// BuildRequest maps a validated generation payload into the upstream
// generateContent schema. The caller's parts are embedded verbatim as a
// single user turn, and the system instruction is wrapped in the upstream's
// parts envelope.
//
// BuildRequest is deterministic and side-effect free: it performs no
// validation and never mutates its input.
func BuildRequest(payload *types.GenerationRequest) *Request {
	return &Request{
		Contents: []Content{
			{
				Role:  "user",
				Parts: payload.Parts,
			},
		},
		SystemInstruction: SystemInstruction{
			Parts: []TextPart{
				{Text: payload.SystemInstruction},
			},
		},
	}
}

// ExtractText pulls the generated text out of a successful upstream body.
//
// The text lives at candidates[0].content.parts[0].text. If any segment of
// that path is absent, or the text is empty, the upstream technically
// succeeded but yielded nothing usable and an EmptyResponseError is
// returned. A body that is not valid JSON is a TransportError: the call
// path broke below the application contract.
func ExtractText(body []byte) (string, error) {
	var resp GenerateContentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &TransportError{
			Cause: fmt.Errorf("failed to parse upstream response: %w", err),
		}
	}

	if len(resp.Candidates) == 0 {
		return "", &EmptyResponseError{}
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == "" {
		return "", &EmptyResponseError{}
	}

	return parts[0].Text, nil
}
