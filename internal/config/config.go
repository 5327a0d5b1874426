package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

type Config struct {
	Server   ServerConfig
	HF       HFConfig
	Storage  StorageConfig
	Log      LogConfig
	Defaults DefaultsConfig
}

type ServerConfig struct {
	Port      int
	AuthToken string
}

type HFConfig struct {
	Token   string
	Model   string
	BaseURL string
}

type StorageConfig struct {
	DataDir string
}

type LogConfig struct {
	Level string
}

// DefaultsConfig holds the document template and portfolio theme used
// when a request doesn't name one.
type DefaultsConfig struct {
	Template       string
	PortfolioTheme string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 4600,
		},
		HF: HFConfig{
			Model:   "meta-llama/Llama-3.1-8B-Instruct",
			BaseURL: "https://router.huggingface.co/v1",
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Log: LogConfig{
			Level: "info",
		},
		Defaults: DefaultsConfig{
			Template:       "Modern",
			PortfolioTheme: "Modern",
		},
	}
}

// Load reads configuration from the JSON file backend at
// $XDG_CONFIG_HOME/resumeforge/config.json, then applies environment
// overrides (RESUMEFORGE_*). The Hugging Face token is required; the
// plain HF_TOKEN variable is accepted as a fallback.
func Load() (Config, error) {
	return loadWith(newPlatformBackend())
}

func loadWith(b Backend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	if cfg.HF.Token == "" {
		cfg.HF.Token = os.Getenv("HF_TOKEN")
	}
	if cfg.HF.Token == "" {
		return Config{}, fmt.Errorf("missing required config: Hugging Face token. Set it via environment variable RESUMEFORGE_HF_TOKEN (or HF_TOKEN)")
	}

	return cfg, nil
}

// EnsureAuthToken returns the API auth token, generating and persisting
// a fresh one on first use.
func EnsureAuthToken(cfg *Config) (string, error) {
	if cfg.Server.AuthToken != "" {
		return cfg.Server.AuthToken, nil
	}

	token := uuid.New().String()
	if err := newPlatformBackend().SetString("server.auth_token", token); err != nil {
		return "", fmt.Errorf("persisting auth token: %w", err)
	}
	cfg.Server.AuthToken = token
	return token, nil
}
