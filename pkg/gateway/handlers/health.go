package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthHandler handles health check requests for liveness probes.
type HealthHandler struct{}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// ServeHTTP implements http.Handler for liveness checks.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// ReadyHandler handles readiness check requests. The gateway is ready when
// the upstream credential is present and, if authentication is enabled,
// the verifier holds usable material. A degraded gateway keeps serving
// (it answers every generation request with the misconfigured-service
// error) but reports not ready so orchestrators can route around it.
type ReadyHandler struct {
	// UpstreamConfigured reports whether the upstream API credential is present.
	UpstreamConfigured func() bool

	// VerifierReady reports whether the credential verifier is usable.
	// Nil when authentication is disabled.
	VerifierReady func() bool
}

// NewReadyHandler creates a new readiness check handler.
func NewReadyHandler(upstreamConfigured, verifierReady func() bool) *ReadyHandler {
	return &ReadyHandler{
		UpstreamConfigured: upstreamConfigured,
		VerifierReady:      verifierReady,
	}
}

// ServeHTTP implements http.Handler for readiness checks.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	upstreamOK := h.UpstreamConfigured == nil || h.UpstreamConfigured()
	verifierOK := h.VerifierReady == nil || h.VerifierReady()

	isReady := upstreamOK && verifierOK

	status := "ready"
	statusCode := http.StatusOK
	if !isReady {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	response := map[string]interface{}{
		"status": status,
		"checks": map[string]bool{
			"upstream": upstreamOK,
			"auth":     verifierOK,
		},
		"timestamp": time.Now().Unix(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}
