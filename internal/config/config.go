package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	// AuthBearer and AuthRapidAPI are the accepted completion.auth_style values.
	AuthBearer   = "bearer"
	AuthRapidAPI = "rapidapi"

	BackendSQLite = "sqlite"
	BackendRedis  = "redis"

	AnalyzerStatic = "static"
	AnalyzerLLM    = "llm"
)

const (
	secretService = "compass"
	secretAccount = "completion_api_key"
)

type Config struct {
	Server      ServerConfig
	Completion  CompletionConfig
	Storage     StorageConfig
	Personality PersonalityConfig
	Limits      LimitsConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port int
	// SessionIdle is how long an untouched session stays in memory. Zero
	// keeps sessions until the server stops.
	SessionIdle time.Duration
}

type CompletionConfig struct {
	BaseURL      string
	Model        string
	AuthStyle    string
	RapidAPIHost string
	Timeout      time.Duration
	APIKey       string
}

// Offline reports whether no API key is configured, in which case the server
// answers from the built-in catalog.
func (c CompletionConfig) Offline() bool {
	return c.APIKey == ""
}

type StorageConfig struct {
	Backend  string
	DataDir  string
	RedisURL string
}

type PersonalityConfig struct {
	Analyzer string
}

type LimitsConfig struct {
	GatewayPerMinute int
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:        4100,
			SessionIdle: 30 * time.Minute,
		},
		Completion: CompletionConfig{
			BaseURL:   "https://openrouter.ai/api/v1",
			Model:     "openai/gpt-4o-mini",
			AuthStyle: AuthBearer,
			Timeout:   60 * time.Second,
		},
		Storage: StorageConfig{
			Backend: BackendSQLite,
			DataDir: defaultDataDir(),
		},
		Personality: PersonalityConfig{
			Analyzer: AnalyzerStatic,
		},
		Limits: LimitsConfig{
			GatewayPerMinute: 30,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the platform store, then COMPASS_*
// environment variables, then the platform secret store for the API key.
//
// On macOS keys live in UserDefaults (domain com.careercompass.app) and the
// API key in the login Keychain. Elsewhere keys live in
// $XDG_CONFIG_HOME/compass/config.json and the API key in secrets.json under
// the data directory.
func Load() (Config, error) {
	return loadWith(newPlatformStore(), platformSecrets{})
}

// secretReader looks up the API key; tests swap it out.
type secretReader interface {
	Get(service, account string) (string, error)
}

func loadWith(st Store, secrets secretReader) (Config, error) {
	cfg := defaults()

	if err := applyStore(&cfg, st); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	if cfg.Completion.APIKey == "" {
		if key, err := secrets.Get(secretService, secretAccount); err == nil && key != "" {
			cfg.Completion.APIKey = key
		}
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Completion.AuthStyle {
	case AuthBearer:
	case AuthRapidAPI:
		if c.Completion.RapidAPIHost == "" {
			return fmt.Errorf("invalid config: completion.auth_style %q requires completion.rapidapi_host (COMPASS_COMPLETION_RAPIDAPI_HOST)", AuthRapidAPI)
		}
	default:
		return fmt.Errorf("invalid config: completion.auth_style %q, want %q or %q", c.Completion.AuthStyle, AuthBearer, AuthRapidAPI)
	}

	switch c.Storage.Backend {
	case BackendSQLite:
	case BackendRedis:
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("invalid config: storage.backend %q requires storage.redis_url (COMPASS_STORAGE_REDIS_URL)", BackendRedis)
		}
	default:
		return fmt.Errorf("invalid config: storage.backend %q, want %q or %q", c.Storage.Backend, BackendSQLite, BackendRedis)
	}

	switch c.Personality.Analyzer {
	case AnalyzerStatic, AnalyzerLLM:
	default:
		return fmt.Errorf("invalid config: personality.analyzer %q, want %q or %q", c.Personality.Analyzer, AnalyzerStatic, AnalyzerLLM)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port %d out of range", c.Server.Port)
	}
	if c.Server.SessionIdle < 0 {
		return fmt.Errorf("invalid config: server.session_idle must not be negative")
	}
	if c.Completion.Timeout <= 0 {
		return fmt.Errorf("invalid config: completion.timeout must be positive")
	}
	if c.Limits.GatewayPerMinute < 0 {
		return fmt.Errorf("invalid config: limits.gateway_per_minute must not be negative")
	}
	return nil
}

// platformSecrets reads the Keychain on macOS and secrets.json elsewhere.
type platformSecrets struct{}

func (platformSecrets) Get(service, account string) (string, error) {
	out, err := readSecret(service, account)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// MissingKeyHint tells the user where the API key can be provided.
func MissingKeyHint() string {
	return "set COMPASS_COMPLETION_API_KEY or run `compass config set completion.api_key <key>`" + apiKeyHint()
}
