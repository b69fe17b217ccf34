/*
Package gateway implements request parsing, response writing, and boundary
error mapping for the Torii forwarding gateway.

Every failure in the request path is caught at this boundary and converted
by HandleError into the stable caller-facing contract: a JSON error body
with an explicit HTTP status. Internal diagnostic detail stays in the
server-side logs; the only pass-through is the upstream service's own error
payload, surfaced intentionally for caller diagnostics.
*/
package gateway
