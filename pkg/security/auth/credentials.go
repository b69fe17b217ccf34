package auth

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseCredentialBundle decodes the JSON-encoded credential bundle supplied
// via configuration. An empty input, malformed JSON, or a bundle without a
// signing secret all make the bundle unusable.
func ParseCredentialBundle(raw string) (*CredentialBundle, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("credential bundle is empty")
	}

	var bundle CredentialBundle
	if err := json.Unmarshal([]byte(raw), &bundle); err != nil {
		return nil, fmt.Errorf("credential bundle is not valid JSON: %w", err)
	}

	if bundle.Secret == "" {
		return nil, fmt.Errorf("credential bundle has no signing secret")
	}

	return &bundle, nil
}
