package handlers

import (
	"log/slog"
	"net/http"

	"halcyon-hq/torii/pkg/gateway"
	"halcyon-hq/torii/pkg/gateway/middleware"
	"halcyon-hq/torii/pkg/gateway/types"
	"halcyon-hq/torii/pkg/security/auth"
)

// GenerateHandler handles text generation requests. It owns the full
// request lifecycle: method and configuration gates, credential
// verification, payload validation, upstream forwarding, and response
// translation.
//
// Authentication runs inside the handler rather than as middleware so the
// gates fire in contract order: a non-POST request is answered 405 even
// when it carries no credential.
type GenerateHandler struct {
	// Generator forwards validated payloads upstream.
	Generator TextGenerator

	// Verifier validates bearer credentials. Ignored when AuthEnabled
	// is false.
	Verifier CredentialVerifier

	// AuthEnabled controls whether credentials are required.
	AuthEnabled bool

	// Configured reports whether the service holds usable configuration:
	// the upstream credential and, when authentication is enabled, a
	// verifier with usable material. When it returns false every request
	// is answered with the misconfigured-service error while the process
	// stays up.
	Configured func() bool
}

// NewGenerateHandler creates a new generation handler.
func NewGenerateHandler(generator TextGenerator, verifier CredentialVerifier, authEnabled bool, configured func() bool) *GenerateHandler {
	return &GenerateHandler{
		Generator:   generator,
		Verifier:    verifier,
		AuthEnabled: authEnabled,
		Configured:  configured,
	}
}

// ServeHTTP implements http.Handler.
func (h *GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	// Method gate
	if r.Method != http.MethodPost {
		writeError(w, types.NewMethodNotAllowedError())
		return
	}

	// Configuration gate
	if h.Configured != nil && !h.Configured() {
		slog.ErrorContext(ctx, "generation request rejected, service not configured",
			"request_id", requestID,
		)
		writeError(w, types.NewServiceMisconfiguredError())
		return
	}

	// Credential gate
	if h.AuthEnabled {
		principal, err := h.authenticate(r)
		if err != nil {
			slog.WarnContext(ctx, "credential verification failed",
				"request_id", requestID,
				"error", err,
			)
			writeError(w, gateway.HandleError(err))
			return
		}

		slog.DebugContext(ctx, "credential verified",
			"request_id", requestID,
			"subject", principal.SubjectID,
		)
	}

	// Payload gate
	payload, err := gateway.ParseGenerationRequest(r)
	if err != nil {
		slog.WarnContext(ctx, "payload rejected",
			"request_id", requestID,
			"error", err,
		)
		writeError(w, gateway.HandleError(err))
		return
	}

	// Upstream call
	text, err := h.Generator.GenerateText(ctx, payload)
	if err != nil {
		slog.ErrorContext(ctx, "upstream generation failed",
			"request_id", requestID,
			"error", err,
		)
		writeError(w, gateway.HandleError(err))
		return
	}

	if err := gateway.WriteJSONResponse(w, http.StatusOK, types.GenerationResponse{Text: text}); err != nil {
		slog.ErrorContext(ctx, "failed to write response",
			"request_id", requestID,
			"error", err,
		)
	}
}

// authenticate extracts and verifies the bearer credential.
func (h *GenerateHandler) authenticate(r *http.Request) (*auth.Principal, error) {
	token, err := auth.ExtractBearerToken(r)
	if err != nil {
		return nil, err
	}

	return h.Verifier.Verify(token)
}

func writeError(w http.ResponseWriter, errResp *types.ErrorResponse) {
	if err := gateway.WriteErrorResponse(w, errResp); err != nil {
		slog.Error("failed to write error response", "error", err)
	}
}
