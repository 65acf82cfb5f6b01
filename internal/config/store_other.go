//go:build !darwin

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// xdgDir returns $env, or the fallback path under the home directory.
func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

func defaultDataDir() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", ".local", "share"), "compass")
}

func configFilePath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "compass", "config.json")
}

func secretsFilePath() string {
	return filepath.Join(defaultDataDir(), "secrets.json")
}

func apiKeyHint() string {
	return " (stored in " + secretsFilePath() + ")"
}

func newPlatformStore() Store {
	return openFileStore(configFilePath())
}

// fileStore is a flat JSON object of key to value. Numbers and booleans
// written by hand are read back as their literal text.
type fileStore struct {
	path   string
	values map[string]string
}

// openFileStore reads path once. A missing file is empty; an unreadable one
// is reported and treated as empty.
func openFileStore(path string) *fileStore {
	s := &fileStore{path: path, values: map[string]string{}}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s
	}
	if err == nil {
		err = s.decode(data)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] ignoring config file %s: %v\n", path, err)
		s.values = map[string]string{}
	}
	return s
}

func (s *fileStore) decode(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		var str string
		if json.Unmarshal(v, &str) == nil {
			s.values[k] = str
			continue
		}
		s.values[k] = string(v)
	}
	return nil
}

func (s *fileStore) Lookup(key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *fileStore) Save(key, value string) error {
	s.values[key] = value
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(s.path), err)
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Secrets share the file format, keyed "service/account".

func readSecret(service, account string) ([]byte, error) {
	path := secretsFilePath()
	v, ok, _ := openFileStore(path).Lookup(service + "/" + account)
	if !ok {
		return nil, fmt.Errorf("no %s/%s secret in %s", service, account, path)
	}
	return []byte(v), nil
}

func writeSecret(service, account, value string) error {
	return openFileStore(secretsFilePath()).Save(service+"/"+account, value)
}
