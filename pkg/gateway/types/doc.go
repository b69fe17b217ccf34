// Package types defines the caller-facing request and response contracts
// for the Torii gateway.
//
// The inbound contract is a generation payload:
//
//	{"parts": [...], "systemInstruction": "..."}
//
// and the outbound contract is either a success body {"text": "..."} or a
// structured error body {"error": "...", "details": ...} paired with an
// explicit HTTP status code.
package types
