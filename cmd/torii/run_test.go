package main

import (
	"testing"

	"halcyon-hq/torii/pkg/config"
)

func stateConfig(authEnabled bool, credentials string) *config.Config {
	var cfg config.Config
	config.ApplyDefaults(&cfg)
	cfg.Upstream.APIKey = "test-key"
	cfg.Auth.Enabled = authEnabled
	cfg.Auth.Credentials = credentials
	return &cfg
}

func TestGatewayState_Configured(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   bool
	}{
		{
			name:   "auth disabled with key",
			mutate: func(c *config.Config) {},
			want:   true,
		},
		{
			name:   "missing upstream key",
			mutate: func(c *config.Config) { c.Upstream.APIKey = "" },
			want:   false,
		},
		{
			name: "auth enabled with usable bundle",
			mutate: func(c *config.Config) {
				c.Auth.Enabled = true
				c.Auth.Credentials = `{"secret":"unit-test-secret"}`
			},
			want: true,
		},
		{
			name: "auth enabled with empty bundle",
			mutate: func(c *config.Config) {
				c.Auth.Enabled = true
				c.Auth.Credentials = ""
			},
			want: false,
		},
		{
			name: "auth enabled with malformed bundle",
			mutate: func(c *config.Config) {
				c.Auth.Enabled = true
				c.Auth.Credentials = `{"secret":`
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := stateConfig(false, "")
			tt.mutate(cfg)

			gw := newGatewayState(cfg, nil)
			defer gw.Close()

			if got := gw.Configured(); got != tt.want {
				t.Errorf("Configured() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestGatewayState_ApplySwapsVerifier(t *testing.T) {
	gw := newGatewayState(stateConfig(true, ""), nil)
	defer gw.Close()

	if gw.VerifierReady() {
		t.Error("verifier should start degraded with an empty bundle")
	}
	if gw.Configured() {
		t.Error("degraded verifier must count as not configured")
	}

	gw.Apply(stateConfig(true, `{"secret":"unit-test-secret"}`))

	if !gw.VerifierReady() {
		t.Error("reload with a usable bundle should make the verifier ready")
	}
	if !gw.Configured() {
		t.Error("gateway should be configured after the reload")
	}
}
