package auth

// Principal is the verified identity of a caller. It is created only on
// successful credential verification, never persisted, and lives for a
// single request.
type Principal struct {
	// SubjectID is the unique identifier of the verified subject.
	SubjectID string

	// Claims is the opaque claim set carried by the credential.
	Claims map[string]any
}

// CredentialBundle is the JSON-encoded verification material supplied via
// configuration. It is read once at process start and immutable thereafter.
type CredentialBundle struct {
	// Secret is the HMAC signing secret used to verify token signatures.
	Secret string `json:"secret"`

	// Issuer, when set, must match the token's "iss" claim.
	Issuer string `json:"issuer,omitempty"`

	// RevokedSubjects lists subject identifiers that are explicitly
	// disabled. Tokens for these subjects verify cryptographically but are
	// still denied.
	RevokedSubjects []string `json:"revoked_subjects,omitempty"`
}
