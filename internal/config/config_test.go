package config

import (
	"strings"
	"testing"
)

// memBackend is an in-memory Backend for tests.
type memBackend struct {
	data map[string]any
}

func newMemBackend() *memBackend {
	return &memBackend{data: make(map[string]any)}
}

func (b *memBackend) GetString(key string) (string, bool, error) {
	v, ok := b.data[key]
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (b *memBackend) GetInt(key string) (int, bool, error) {
	v, ok := b.data[key]
	if !ok {
		return 0, false, nil
	}
	return v.(int), true, nil
}

func (b *memBackend) SetString(key, val string) error { b.data[key] = val; return nil }
func (b *memBackend) SetInt(key string, val int) error { b.data[key] = val; return nil }
func (b *memBackend) Delete(key string) error          { delete(b.data, key); return nil }

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RESUMEFORGE_HF_TOKEN", "hf_test")
	t.Setenv("HF_TOKEN", "")

	cfg, err := loadWith(newMemBackend())
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}
	if cfg.Server.Port != 4600 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.HF.Model != "meta-llama/Llama-3.1-8B-Instruct" {
		t.Errorf("model = %q", cfg.HF.Model)
	}
	if cfg.HF.Token != "hf_test" {
		t.Errorf("token = %q", cfg.HF.Token)
	}
	if cfg.Defaults.Template != "Modern" || cfg.Defaults.PortfolioTheme != "Modern" {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}
}

func TestLoad_BackendValues(t *testing.T) {
	t.Setenv("RESUMEFORGE_HF_TOKEN", "hf_test")

	b := newMemBackend()
	b.SetInt("server.port", 9090)
	b.SetString("hf.model", "mistralai/Mistral-7B-Instruct-v0.3")
	b.SetString("defaults.template", "Classic")

	cfg, err := loadWith(b)
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.HF.Model != "mistralai/Mistral-7B-Instruct-v0.3" {
		t.Errorf("model = %q", cfg.HF.Model)
	}
	if cfg.Defaults.Template != "Classic" {
		t.Errorf("template = %q", cfg.Defaults.Template)
	}
}

func TestLoad_EnvOverridesBackend(t *testing.T) {
	t.Setenv("RESUMEFORGE_HF_TOKEN", "hf_test")
	t.Setenv("RESUMEFORGE_SERVER_PORT", "7001")

	b := newMemBackend()
	b.SetInt("server.port", 9090)

	cfg, err := loadWith(b)
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("port = %d, want env override 7001", cfg.Server.Port)
	}
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("RESUMEFORGE_HF_TOKEN", "")
	t.Setenv("HF_TOKEN", "")

	_, err := loadWith(newMemBackend())
	if err == nil {
		t.Fatal("expected error without HF token")
	}
	if !strings.Contains(err.Error(), "RESUMEFORGE_HF_TOKEN") {
		t.Errorf("error does not name the env var: %v", err)
	}
}

func TestLoad_PlainHFTokenFallback(t *testing.T) {
	t.Setenv("RESUMEFORGE_HF_TOKEN", "")
	t.Setenv("HF_TOKEN", "hf_plain")

	cfg, err := loadWith(newMemBackend())
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}
	if cfg.HF.Token != "hf_plain" {
		t.Errorf("token = %q", cfg.HF.Token)
	}
}

func TestShowAll_HidesSecrets(t *testing.T) {
	cfg := defaults()
	cfg.HF.Token = "hf_secret"
	cfg.Server.AuthToken = "auth_secret"

	for _, info := range ShowAll(cfg) {
		if info.Key == "hf.token" || info.Key == "server.auth_token" {
			t.Errorf("secret key %s exposed by ShowAll", info.Key)
		}
		if strings.Contains(info.Value, "secret") {
			t.Errorf("secret value leaked via %s", info.Key)
		}
	}
}

func TestValidKeys_ExcludeSecrets(t *testing.T) {
	for _, k := range ValidKeys() {
		if k == "hf.token" || k == "server.auth_token" {
			t.Errorf("secret key %s listed as settable", k)
		}
	}
}
