package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates bearer credentials against the configured bundle.
// It is built once at startup and safe for concurrent use; all fields are
// read-only after construction.
type Verifier struct {
	// bundle is the verification material (nil in degraded mode)
	bundle *CredentialBundle

	// revoked is the set of explicitly disabled subjects
	revoked map[string]struct{}

	// reason records why the verifier is degraded ("" when ready)
	reason string
}

// NewVerifier creates a verifier from a parsed credential bundle.
func NewVerifier(bundle *CredentialBundle) *Verifier {
	revoked := make(map[string]struct{}, len(bundle.RevokedSubjects))
	for _, sub := range bundle.RevokedSubjects {
		revoked[sub] = struct{}{}
	}

	return &Verifier{
		bundle:  bundle,
		revoked: revoked,
	}
}

// NewVerifierFromJSON builds a verifier from the raw JSON credential bundle.
// When the bundle is absent or unusable the returned verifier is degraded
// rather than nil: it reports not Ready and rejects every verification.
// The failure cause is logged once here and never surfaced to callers.
func NewVerifierFromJSON(raw string) *Verifier {
	bundle, err := ParseCredentialBundle(raw)
	if err != nil {
		slog.Error("credential verifier disabled, running in degraded mode", "error", err)
		return &Verifier{reason: err.Error()}
	}

	slog.Info("credential verifier initialized",
		"issuer", bundle.Issuer,
		"revoked_subjects", len(bundle.RevokedSubjects),
	)
	return NewVerifier(bundle)
}

// Ready reports whether the verifier holds usable credential material.
func (v *Verifier) Ready() bool {
	return v.bundle != nil
}

// Verify validates a raw bearer token and returns the verified principal.
//
// Failure kinds: MisconfiguredError (degraded verifier),
// InvalidCredentialError (signature/expiry/issuer failure), and
// RevokedPrincipalError (valid token, disabled or absent subject).
func (v *Verifier) Verify(tokenString string) (*Principal, error) {
	if !v.Ready() {
		return nil, &MisconfiguredError{Reason: v.reason}
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.bundle.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.bundle.Issuer))
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return []byte(v.bundle.Secret), nil
	}, opts...)
	if err != nil {
		return nil, &InvalidCredentialError{Cause: err}
	}
	if !token.Valid {
		return nil, &InvalidCredentialError{Cause: jwt.ErrTokenUnverifiable}
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, &RevokedPrincipalError{}
	}
	if _, disabled := v.revoked[subject]; disabled {
		return nil, &RevokedPrincipalError{Subject: subject}
	}

	return &Principal{
		SubjectID: subject,
		Claims:    claims,
	}, nil
}

// ExtractBearerToken pulls the bearer token out of an HTTP request.
// A missing Authorization header or one not in "Bearer <token>" form
// returns a MissingCredentialError.
func ExtractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", &MissingCredentialError{}
	}

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return "", &MissingCredentialError{}
	}

	return strings.TrimSpace(token), nil
}
