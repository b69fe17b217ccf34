/*
Package upstream implements the client for the third-party text-generation
API that the gateway forwards requests to.

The package has three concerns, kept deliberately separate:

  - Request building: BuildRequest deterministically maps a validated
    generation payload into the upstream generateContent schema. It is a
    pure function; identical input produces byte-identical output.

  - Resilient calling: Client sends the request over HTTP with a bounded
    retry policy. Every non-2xx response takes the same exponential
    backoff-and-retry path; the policy does not special-case status codes.
    The last received response or error decides the outcome.

  - Response translation: ExtractText pulls the generated text out of a
    successful upstream body, or reports that the upstream technically
    succeeded but yielded nothing usable.

Failures surface as typed errors (ServiceError, EmptyResponseError,
TransportError) so the gateway boundary can map each to its caller-facing
status and body.
*/
package upstream
