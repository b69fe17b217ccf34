// Package server provides the HTTP server for the Torii gateway.
//
// The server wires the generation handler, health endpoints, and the
// Prometheus metrics endpoint into a single http.ServeMux behind the
// middleware chain (recovery, logging, request ID, metrics, CORS,
// timeout), and manages the server lifecycle: startup, signal handling,
// and graceful shutdown.
//
// # Usage
//
//	srv := server.NewServer(cfg, verifier, client, collector)
//	if err := srv.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// Start blocks until the context is cancelled, a shutdown signal arrives,
// or the listener fails.
package server
