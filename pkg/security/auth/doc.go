/*
Package auth implements bearer-credential verification for the gateway's
optional authentication stage.

A Verifier is built once at process start from a JSON-encoded credential
bundle and injected into the gateway handler. If the bundle is absent or
unusable the verifier runs in a permanent degraded mode: it is not Ready,
and every request on an authenticated route is rejected as misconfigured
until the process restarts. This keeps the degraded state explicit and
testable instead of hiding it behind ambient globals.

Verification failures carry an internal taxonomy (missing credential,
invalid credential, revoked principal) that is logged server-side, but the
gateway deliberately collapses all post-extraction failures into one
indistinguishable access-denied signal so callers cannot probe which tokens
are well-formed.
*/
package auth
