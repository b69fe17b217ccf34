// Package metrics provides Prometheus metrics collection for the Torii
// gateway.
//
// # Metrics Categories
//
//   - Request metrics: request count and duration by route and status
//   - Upstream metrics: attempt outcomes and retry backoff delays
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.Request().RecordRequest("/api/generate", 200, duration)
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// The upstream metrics satisfy the upstream package's AttemptObserver
// interface, so a collector can be handed directly to the upstream
// client:
//
//	client := upstream.NewClient(clientCfg, collector.Upstream())
package metrics
