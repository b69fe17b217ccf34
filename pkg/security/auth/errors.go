package auth

import "fmt"

// MissingCredentialError indicates the Authorization header was absent or
// not in "Bearer <token>" form. This is the only verification failure that
// is distinguishable to the caller (401 instead of 403).
type MissingCredentialError struct{}

// Error implements the error interface.
func (e *MissingCredentialError) Error() string {
	return "authorization header missing or malformed"
}

// InvalidCredentialError indicates the token failed a signature, expiry, or
// issuer check. The cause is logged server-side only.
type InvalidCredentialError struct {
	// Cause is the underlying verification error.
	Cause error
}

// Error implements the error interface.
func (e *InvalidCredentialError) Error() string {
	return fmt.Sprintf("credential verification failed: %v", e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *InvalidCredentialError) Unwrap() error {
	return e.Cause
}

// RevokedPrincipalError indicates a cryptographically valid token whose
// subject is absent or explicitly disabled.
type RevokedPrincipalError struct {
	// Subject is the revoked subject identifier ("" when absent).
	Subject string
}

// Error implements the error interface.
func (e *RevokedPrincipalError) Error() string {
	if e.Subject == "" {
		return "principal revoked: token carries no subject"
	}
	return fmt.Sprintf("principal revoked: subject %q is disabled", e.Subject)
}

// MisconfiguredError indicates the verifier was built without a usable
// credential bundle and runs in degraded mode.
type MisconfiguredError struct {
	// Reason describes why the verifier is unusable.
	Reason string
}

// Error implements the error interface.
func (e *MisconfiguredError) Error() string {
	return fmt.Sprintf("verifier is not configured: %s", e.Reason)
}
