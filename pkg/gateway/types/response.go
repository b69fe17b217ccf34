package types

// GenerationResponse is the success body returned to the caller.
// It carries only the extracted text; upstream metadata (safety ratings,
// token usage, model version) is not exposed.
type GenerationResponse struct {
	// Text is the generated text extracted from the upstream response.
	Text string `json:"text"`
}
