package config

import (
	"fmt"
	"os"
	"strconv"
)

type keyType int

const (
	kString keyType = iota
	kInt
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	secret  bool
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "server.port", typ: kInt, env: "RESUMEFORGE_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "server.auth_token", typ: kString, env: "RESUMEFORGE_SERVER_AUTH_TOKEN",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Server.AuthToken = v.(string) },
		extract: func(cfg Config) any { return cfg.Server.AuthToken },
	},
	{
		key: "hf.token", typ: kString, env: "RESUMEFORGE_HF_TOKEN",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.HF.Token = v.(string) },
		extract: func(cfg Config) any { return cfg.HF.Token },
	},
	{
		key: "hf.model", typ: kString, env: "RESUMEFORGE_HF_MODEL",
		apply:   func(cfg *Config, v any) { cfg.HF.Model = v.(string) },
		extract: func(cfg Config) any { return cfg.HF.Model },
	},
	{
		key: "hf.base_url", typ: kString, env: "RESUMEFORGE_HF_BASE_URL",
		apply:   func(cfg *Config, v any) { cfg.HF.BaseURL = v.(string) },
		extract: func(cfg Config) any { return cfg.HF.BaseURL },
	},
	{
		key: "storage.data_dir", typ: kString, env: "RESUMEFORGE_STORAGE_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
	{
		key: "log.level", typ: kString, env: "RESUMEFORGE_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
	{
		key: "defaults.template", typ: kString, env: "RESUMEFORGE_DEFAULTS_TEMPLATE",
		apply:   func(cfg *Config, v any) { cfg.Defaults.Template = v.(string) },
		extract: func(cfg Config) any { return cfg.Defaults.Template },
	},
	{
		key: "defaults.portfolio_theme", typ: kString, env: "RESUMEFORGE_DEFAULTS_PORTFOLIO_THEME",
		apply:   func(cfg *Config, v any) { cfg.Defaults.PortfolioTheme = v.(string) },
		extract: func(cfg Config) any { return cfg.Defaults.PortfolioTheme },
	},
}

func applyBackend(cfg *Config, b Backend) error {
	for _, s := range specs {
		switch s.typ {
		case kString:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kInt:
			v, ok, err := b.GetInt(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		if s.env == "" {
			continue
		}
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			if i, err := strconv.Atoi(raw); err == nil {
				s.apply(cfg, i)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse integer from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		}
	}
}
