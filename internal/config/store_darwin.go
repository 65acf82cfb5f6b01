//go:build darwin

package config

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const defaultsDomain = "com.careercompass.app"

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "Library", "Application Support", "CareerCompass")
	}
	return "compass-data"
}

func apiKeyHint() string {
	return " (stored in the login Keychain, service " + secretService + ", account " + secretAccount + ")"
}

func newPlatformStore() Store {
	return defaultsStore{domain: defaultsDomain}
}

// defaultsStore keeps every key as a string in UserDefaults.
type defaultsStore struct {
	domain string
}

func (s defaultsStore) Lookup(key string) (string, bool, error) {
	out, err := exec.Command("defaults", "read", s.domain, key).CombinedOutput()
	v := strings.TrimSpace(string(out))
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr) && exitErr.ExitCode() == 1:
		// Key not set.
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("defaults read %s: %w: %s", key, err, v)
	}
	return v, true, nil
}

func (s defaultsStore) Save(key, value string) error {
	out, err := exec.Command("defaults", "write", s.domain, key, "-string", value).CombinedOutput()
	if err != nil {
		return fmt.Errorf("defaults write %s: %w: %s", key, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func readSecret(service, account string) ([]byte, error) {
	return exec.Command("security", "find-generic-password", "-s", service, "-a", account, "-w").Output()
}

func writeSecret(service, account, value string) error {
	return exec.Command("security", "add-generic-password", "-U", "-s", service, "-a", account, "-w", value).Run()
}
