package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// mockSecrets is a test double for secretReader.
type mockSecrets struct {
	value string
	err   error
}

func (m mockSecrets) Get(service, account string) (string, error) {
	return m.value, m.err
}

// mapStore is an in-memory Store.
type mapStore struct {
	data map[string]string
	err  error
}

func newMapStore(kv map[string]string) *mapStore {
	if kv == nil {
		kv = map[string]string{}
	}
	return &mapStore{data: kv}
}

func (m *mapStore) Lookup(key string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapStore) Save(key, value string) error {
	m.data[key] = value
	return nil
}

// clearEnv blanks every COMPASS_* variable so the host environment cannot leak
// into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, s := range specs {
		t.Setenv(s.env, "")
	}
}

// TestDefaults verifies all default values are applied when nothing is configured.
func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := loadWith(newMapStore(nil), mockSecrets{err: errors.New("no keychain")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 4100 {
		t.Errorf("Server.Port = %d, want 4100", cfg.Server.Port)
	}
	if cfg.Server.SessionIdle != 30*time.Minute {
		t.Errorf("Server.SessionIdle = %v, want 30m", cfg.Server.SessionIdle)
	}
	if cfg.Completion.BaseURL != "https://openrouter.ai/api/v1" {
		t.Errorf("Completion.BaseURL = %q", cfg.Completion.BaseURL)
	}
	if cfg.Completion.Model != "openai/gpt-4o-mini" {
		t.Errorf("Completion.Model = %q", cfg.Completion.Model)
	}
	if cfg.Completion.AuthStyle != AuthBearer {
		t.Errorf("Completion.AuthStyle = %q, want %q", cfg.Completion.AuthStyle, AuthBearer)
	}
	if cfg.Completion.Timeout != 60*time.Second {
		t.Errorf("Completion.Timeout = %v, want 60s", cfg.Completion.Timeout)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Storage.Backend = %q, want %q", cfg.Storage.Backend, BackendSQLite)
	}
	if cfg.Storage.DataDir == "" {
		t.Error("Storage.DataDir is empty")
	}
	if cfg.Personality.Analyzer != AnalyzerStatic {
		t.Errorf("Personality.Analyzer = %q, want %q", cfg.Personality.Analyzer, AnalyzerStatic)
	}
	if cfg.Limits.GatewayPerMinute != 30 {
		t.Errorf("Limits.GatewayPerMinute = %d, want 30", cfg.Limits.GatewayPerMinute)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

// TestMissingAPIKeyIsOffline verifies that no key anywhere is not an error.
func TestMissingAPIKeyIsOffline(t *testing.T) {
	clearEnv(t)

	cfg, err := loadWith(newMapStore(nil), mockSecrets{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Completion.Offline() {
		t.Error("expected offline mode without an API key")
	}
}

// TestStoreValues verifies that every key is read from the store.
func TestStoreValues(t *testing.T) {
	clearEnv(t)

	b := newMapStore(map[string]string{
		"server.port":               "5000",
		"server.session_idle":       "5m",
		"completion.base_url":       "https://llm.example/v1",
		"completion.model":          "mistral/small",
		"completion.auth_style":     "rapidapi",
		"completion.rapidapi_host":  "gpt.p.rapidapi.com",
		"completion.timeout":        "15s",
		"storage.backend":           "redis",
		"storage.redis_url":         "redis://localhost:6379/2",
		"storage.data_dir":          "/tmp/compass-test",
		"personality.analyzer":      "llm",
		"limits.gateway_per_minute": "0",
		"log.level":                 "debug",
	})

	cfg, err := loadWith(b, mockSecrets{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Server.SessionIdle != 5*time.Minute {
		t.Errorf("Server.SessionIdle = %v, want 5m", cfg.Server.SessionIdle)
	}
	if cfg.Completion.BaseURL != "https://llm.example/v1" {
		t.Errorf("Completion.BaseURL = %q", cfg.Completion.BaseURL)
	}
	if cfg.Completion.Model != "mistral/small" {
		t.Errorf("Completion.Model = %q", cfg.Completion.Model)
	}
	if cfg.Completion.AuthStyle != AuthRapidAPI || cfg.Completion.RapidAPIHost != "gpt.p.rapidapi.com" {
		t.Errorf("Completion auth = %q/%q", cfg.Completion.AuthStyle, cfg.Completion.RapidAPIHost)
	}
	if cfg.Completion.Timeout != 15*time.Second {
		t.Errorf("Completion.Timeout = %v", cfg.Completion.Timeout)
	}
	if cfg.Storage.Backend != BackendRedis || cfg.Storage.RedisURL != "redis://localhost:6379/2" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if cfg.Storage.DataDir != "/tmp/compass-test" {
		t.Errorf("Storage.DataDir = %q", cfg.Storage.DataDir)
	}
	if cfg.Personality.Analyzer != AnalyzerLLM {
		t.Errorf("Personality.Analyzer = %q", cfg.Personality.Analyzer)
	}
	if cfg.Limits.GatewayPerMinute != 0 {
		t.Errorf("Limits.GatewayPerMinute = %d, want 0", cfg.Limits.GatewayPerMinute)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

// TestEnvOverride verifies that environment variables override stored values.
func TestEnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("COMPASS_SERVER_PORT", "6000")
	t.Setenv("COMPASS_COMPLETION_MODEL", "env-model")
	t.Setenv("COMPASS_COMPLETION_TIMEOUT", "2m")
	t.Setenv("COMPASS_COMPLETION_API_KEY", "env-key")

	b := newMapStore(map[string]string{
		"server.port":      "5000",
		"completion.model": "file-model",
	})
	cfg, err := loadWith(b, mockSecrets{value: "keychain-key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 6000 {
		t.Errorf("Server.Port = %d, want 6000", cfg.Server.Port)
	}
	if cfg.Completion.Model != "env-model" {
		t.Errorf("Completion.Model = %q, want env-model", cfg.Completion.Model)
	}
	if cfg.Completion.Timeout != 2*time.Minute {
		t.Errorf("Completion.Timeout = %v, want 2m", cfg.Completion.Timeout)
	}
	if cfg.Completion.APIKey != "env-key" {
		t.Errorf("Completion.APIKey = %q, want env-key", cfg.Completion.APIKey)
	}
}

// TestBadEnvValueKeepsDefault verifies unparseable env values are ignored.
func TestBadEnvValueKeepsDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("COMPASS_SERVER_PORT", "not-a-port")
	t.Setenv("COMPASS_COMPLETION_TIMEOUT", "soon")

	cfg, err := loadWith(newMapStore(nil), mockSecrets{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 4100 {
		t.Errorf("Server.Port = %d, want 4100", cfg.Server.Port)
	}
	if cfg.Completion.Timeout != 60*time.Second {
		t.Errorf("Completion.Timeout = %v, want 60s", cfg.Completion.Timeout)
	}
}

// TestSecretFallback verifies the secret store is consulted when no API key is in env.
func TestSecretFallback(t *testing.T) {
	clearEnv(t)

	cfg, err := loadWith(newMapStore(nil), mockSecrets{value: "keychain-secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Completion.APIKey != "keychain-secret" {
		t.Errorf("APIKey = %q, want %q", cfg.Completion.APIKey, "keychain-secret")
	}
	if cfg.Completion.Offline() {
		t.Error("expected online mode with a keychain key")
	}
}

// TestStoreError verifies store read errors are surfaced.
func TestStoreError(t *testing.T) {
	clearEnv(t)

	b := newMapStore(nil)
	b.err = errors.New("defaults exploded")
	_, err := loadWith(b, mockSecrets{})
	if err == nil || !strings.Contains(err.Error(), "defaults exploded") {
		t.Fatalf("err = %v, want store error", err)
	}
}

// TestStoredValueMustParse verifies a corrupt stored value fails the load.
func TestStoredValueMustParse(t *testing.T) {
	clearEnv(t)

	_, err := loadWith(newMapStore(map[string]string{"completion.timeout": "soon"}), mockSecrets{})
	if err == nil || !strings.Contains(err.Error(), "completion.timeout") {
		t.Fatalf("err = %v, want a parse error naming the key", err)
	}
}

// TestValidation verifies invalid combinations are rejected with the key name.
func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		kv   map[string]string
		want string
	}{
		{"unknown auth style", map[string]string{"completion.auth_style": "basic"}, "completion.auth_style"},
		{"rapidapi without host", map[string]string{"completion.auth_style": "rapidapi"}, "completion.rapidapi_host"},
		{"unknown backend", map[string]string{"storage.backend": "postgres"}, "storage.backend"},
		{"redis without url", map[string]string{"storage.backend": "redis"}, "storage.redis_url"},
		{"unknown analyzer", map[string]string{"personality.analyzer": "tarot"}, "personality.analyzer"},
		{"zero port", map[string]string{"server.port": "0"}, "server.port"},
		{"zero timeout", map[string]string{"completion.timeout": "0s"}, "completion.timeout"},
		{"negative session idle", map[string]string{"server.session_idle": "-1m"}, "server.session_idle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := loadWith(newMapStore(tt.kv), mockSecrets{})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestShowAllHidesSecret(t *testing.T) {
	cfg := defaults()
	cfg.Completion.APIKey = "sk-very-secret"

	var found bool
	for _, ki := range ShowAll(cfg) {
		if strings.Contains(ki.Value, "sk-very-secret") {
			t.Fatalf("secret leaked in %s", ki.Key)
		}
		if ki.Key == "completion.api_key" {
			found = true
			if ki.Value != "(set)" {
				t.Errorf("api key shown as %q, want (set)", ki.Value)
			}
		}
	}
	if !found {
		t.Error("completion.api_key missing from ShowAll")
	}
}

func TestSetKey(t *testing.T) {
	b := newMapStore(nil)
	var secret string
	setSecret := func(service, account, value string) error {
		if service != secretService || account != secretAccount {
			t.Errorf("secret stored under %s/%s", service, account)
		}
		secret = value
		return nil
	}

	if err := setKeyWith(b, setSecret, "completion.model", "x/y"); err != nil {
		t.Fatalf("set string: %v", err)
	}
	if err := setKeyWith(b, setSecret, "server.port", "4200"); err != nil {
		t.Fatalf("set int: %v", err)
	}
	if err := setKeyWith(b, setSecret, "completion.timeout", "30s"); err != nil {
		t.Fatalf("set duration: %v", err)
	}
	if err := setKeyWith(b, setSecret, "completion.api_key", "sk-1"); err != nil {
		t.Fatalf("set secret: %v", err)
	}

	if b.data["completion.model"] != "x/y" || b.data["server.port"] != "4200" || b.data["completion.timeout"] != "30s" {
		t.Errorf("store = %v", b.data)
	}
	if _, ok := b.data["completion.api_key"]; ok {
		t.Error("secret written to the plain store")
	}
	if secret != "sk-1" {
		t.Errorf("secret = %q, want sk-1", secret)
	}

	if err := setKeyWith(b, setSecret, "server.port", "many"); err == nil {
		t.Error("expected error for non-integer port")
	}
	if err := setKeyWith(b, setSecret, "completion.timeout", "soon"); err == nil {
		t.Error("expected error for bad duration")
	}
	if err := setKeyWith(b, setSecret, "nope.nope", "1"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestValidKeys(t *testing.T) {
	keys := ValidKeys()
	if len(keys) != len(specs) {
		t.Fatalf("ValidKeys() = %d keys, want %d", len(keys), len(specs))
	}
	seen := map[string]bool{}
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate key %q", k)
		}
		seen[k] = true
	}
}
