package handlers

import (
	"context"

	"halcyon-hq/torii/pkg/gateway/types"
	"halcyon-hq/torii/pkg/security/auth"
)

// TextGenerator is the interface for forwarding a validated payload to the
// AI provider and extracting the generated text.
type TextGenerator interface {
	GenerateText(ctx context.Context, payload *types.GenerationRequest) (string, error)
}

// CredentialVerifier is the interface for validating bearer credentials.
type CredentialVerifier interface {
	Verify(tokenString string) (*auth.Principal, error)
}
