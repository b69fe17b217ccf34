package config

import (
	"testing"
)

func TestSetAndGetConfig(t *testing.T) {
	original := GetConfig()
	t.Cleanup(func() { SetConfig(original) })

	cfg := validConfig()
	cfg.Upstream.Model = "singleton-model"
	SetConfig(cfg)

	got := GetConfig()
	if got == nil {
		t.Fatal("GetConfig returned nil after SetConfig")
	}
	if got.Upstream.Model != "singleton-model" {
		t.Errorf("model = %q", got.Upstream.Model)
	}
}

func TestReloadConfig(t *testing.T) {
	original := GetConfig()
	t.Cleanup(func() { SetConfig(original) })

	path := writeConfigFile(t, `
upstream:
  model: "reloaded-model"
`)

	if err := ReloadConfig(path); err != nil {
		t.Fatalf("ReloadConfig failed: %v", err)
	}

	got := GetConfig()
	if got.Upstream.Model != "reloaded-model" {
		t.Errorf("model = %q", got.Upstream.Model)
	}
}

func TestReloadConfig_KeepsOldOnFailure(t *testing.T) {
	original := GetConfig()
	t.Cleanup(func() { SetConfig(original) })

	cfg := validConfig()
	cfg.Upstream.Model = "pre-reload-model"
	SetConfig(cfg)

	path := writeConfigFile(t, `
telemetry:
  logging:
    level: not-a-level
`)

	if err := ReloadConfig(path); err == nil {
		t.Fatal("expected reload failure for invalid config")
	}

	got := GetConfig()
	if got.Upstream.Model != "pre-reload-model" {
		t.Errorf("failed reload must keep previous config, model = %q", got.Upstream.Model)
	}
}
