// Package middleware provides the HTTP middleware chain for the gateway
// server: panic recovery, structured request logging, request ID
// propagation, CORS, and per-request timeouts.
package middleware
