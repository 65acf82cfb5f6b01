package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type keyType int

const (
	kString keyType = iota
	kInt
	kDuration
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
		key: "server.port", typ: kInt, env: "COMPASS_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "server.session_idle", typ: kDuration, env: "COMPASS_SERVER_SESSION_IDLE",
		apply:   func(cfg *Config, v any) { cfg.Server.SessionIdle = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Server.SessionIdle },
	},
	{
		key: "completion.base_url", typ: kString, env: "COMPASS_COMPLETION_BASE_URL",
		apply:   func(cfg *Config, v any) { cfg.Completion.BaseURL = v.(string) },
		extract: func(cfg Config) any { return cfg.Completion.BaseURL },
	},
	{
		key: "completion.model", typ: kString, env: "COMPASS_COMPLETION_MODEL",
		apply:   func(cfg *Config, v any) { cfg.Completion.Model = v.(string) },
		extract: func(cfg Config) any { return cfg.Completion.Model },
	},
	{
		key: "completion.auth_style", typ: kString, env: "COMPASS_COMPLETION_AUTH_STYLE",
		apply:   func(cfg *Config, v any) { cfg.Completion.AuthStyle = v.(string) },
		extract: func(cfg Config) any { return cfg.Completion.AuthStyle },
	},
	{
		key: "completion.rapidapi_host", typ: kString, env: "COMPASS_COMPLETION_RAPIDAPI_HOST",
		apply:   func(cfg *Config, v any) { cfg.Completion.RapidAPIHost = v.(string) },
		extract: func(cfg Config) any { return cfg.Completion.RapidAPIHost },
	},
	{
		key: "completion.timeout", typ: kDuration, env: "COMPASS_COMPLETION_TIMEOUT",
		apply:   func(cfg *Config, v any) { cfg.Completion.Timeout = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Completion.Timeout },
	},
	{
		key: "completion.api_key", typ: kString, env: "COMPASS_COMPLETION_API_KEY",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Completion.APIKey = v.(string) },
		extract: func(cfg Config) any { return cfg.Completion.APIKey },
	},
	{
		key: "storage.backend", typ: kString, env: "COMPASS_STORAGE_BACKEND",
		apply:   func(cfg *Config, v any) { cfg.Storage.Backend = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.Backend },
	},
	{
		key: "storage.data_dir", typ: kString, env: "COMPASS_STORAGE_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
	{
		key: "storage.redis_url", typ: kString, env: "COMPASS_STORAGE_REDIS_URL",
		apply:   func(cfg *Config, v any) { cfg.Storage.RedisURL = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.RedisURL },
	},
	{
		key: "personality.analyzer", typ: kString, env: "COMPASS_PERSONALITY_ANALYZER",
		apply:   func(cfg *Config, v any) { cfg.Personality.Analyzer = v.(string) },
		extract: func(cfg Config) any { return cfg.Personality.Analyzer },
	},
	{
		key: "limits.gateway_per_minute", typ: kInt, env: "COMPASS_LIMITS_GATEWAY_PER_MINUTE",
		apply:   func(cfg *Config, v any) { cfg.Limits.GatewayPerMinute = v.(int) },
		extract: func(cfg Config) any { return cfg.Limits.GatewayPerMinute },
	},
	{
		key: "log.level", typ: kString, env: "COMPASS_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
}

// parse converts raw text to the type apply expects.
func (s keySpec) parse(raw string) (any, error) {
	switch s.typ {
	case kInt:
		i, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer for %s: %w", s.key, err)
		}
		return i, nil
	case kDuration:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid duration for %s: %w", s.key, err)
		}
		return d, nil
	}
	return raw, nil
}

// applyStore copies stored values into cfg. A stored value that does not
// parse is an error: `config set` validates before saving.
func applyStore(cfg *Config, st Store) error {
	for _, s := range specs {
		if s.secret {
			continue
		}
		raw, ok, err := st.Lookup(s.key)
		if err != nil {
			return fmt.Errorf("reading %s: %w", s.key, err)
		}
		if !ok || raw == "" {
			continue
		}
		v, err := s.parse(raw)
		if err != nil {
			return err
		}
		s.apply(cfg, v)
	}
	return nil
}

// applyEnvOverrides lets COMPASS_* variables win. Bad values are reported
// and the previous value kept.
func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		v, err := s.parse(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] ignoring %s: %v\n", s.env, err)
			continue
		}
		s.apply(cfg, v)
	}
}
