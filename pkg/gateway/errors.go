package gateway

import (
	"errors"

	"halcyon-hq/torii/pkg/gateway/types"
	"halcyon-hq/torii/pkg/security/auth"
	"halcyon-hq/torii/pkg/upstream"
)

// HandleError converts any failure from the request path into the stable
// caller-facing error contract.
//
// The mapping deliberately collapses all post-extraction credential
// failures (expired, forged, revoked) into the same 403 so callers cannot
// distinguish which tokens are syntactically well-formed but invalid. The
// distinct internal cause is logged where the failure occurred.
//
// Example usage:
//
//	if err != nil {
//	    errResp := HandleError(err)
//	    WriteErrorResponse(w, errResp)
//	    return
//	}
func HandleError(err error) *types.ErrorResponse {
	// Payload shape failures
	var valErr *types.ValidationError
	if errors.As(err, &valErr) {
		return types.NewMalformedPayloadError()
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return types.NewMalformedPayloadError()
	}

	// Credential failures
	var missingErr *auth.MissingCredentialError
	if errors.As(err, &missingErr) {
		return types.NewMissingCredentialError()
	}

	var misconfErr *auth.MisconfiguredError
	if errors.As(err, &misconfErr) {
		return types.NewServiceMisconfiguredError()
	}

	var invalidErr *auth.InvalidCredentialError
	if errors.As(err, &invalidErr) {
		return types.NewAccessDeniedError()
	}

	var revokedErr *auth.RevokedPrincipalError
	if errors.As(err, &revokedErr) {
		return types.NewAccessDeniedError()
	}

	// Upstream failures
	var serviceErr *upstream.ServiceError
	if errors.As(err, &serviceErr) {
		return types.NewUpstreamServiceError(serviceErr.StatusCode, serviceErr.Body)
	}

	var emptyErr *upstream.EmptyResponseError
	if errors.As(err, &emptyErr) {
		return types.NewEmptyResponseError()
	}

	var transportErr *upstream.TransportError
	if errors.As(err, &transportErr) {
		return types.NewTransportError()
	}

	// Anything unrecognized in the call path is reported as a transport
	// failure, matching the contract's catch-all.
	return types.NewTransportError()
}
