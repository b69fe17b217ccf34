// Package handlers provides HTTP request handlers for the gateway server.
//
// # Handler Types
//
// Generation handlers:
//   - GenerateHandler: authenticated text generation requests
//
// Health check handlers:
//   - HealthHandler: liveness probe (always returns 200)
//   - ReadyHandler: readiness probe (checks upstream and verifier state)
//
// # Request Flow
//
// The generation handler walks a fixed sequence of gates, and the first
// failing gate produces the response:
//
//  1. Method check (POST only)
//  2. Service configuration check
//  3. Credential extraction and verification
//  4. Payload parsing and validation
//  5. Upstream forwarding with retries
//  6. Response translation
//
// # Error Handling
//
// All failures are converted to the stable caller-facing contract by
// gateway.HandleError:
//
//	{"error": "Access denied: Token verification failed."}
//
// Internal causes are logged server-side and never leak into response
// bodies.
package handlers
