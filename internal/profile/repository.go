package profile

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// StorageKey is the fixed key the profile record lives under.
const StorageKey = "careerCompassData"

// KV defines the storage operations the Repository needs.
// Implemented by storage.Store, storage.RedisKV and storage.Prefixed.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Repository loads and saves the whole profile record as one JSON value.
type Repository struct {
	kv KV
}

// NewRepository returns a Repository backed by kv.
func NewRepository(kv KV) *Repository {
	return &Repository{kv: kv}
}

// Load returns the stored profile. A missing record, an unreachable store, or
// a malformed value all yield Default(); the latter two are logged.
func (r *Repository) Load() Profile {
	raw, ok, err := r.kv.Get(StorageKey)
	if err != nil {
		slog.Warn("profile storage unavailable, using defaults", "error", err)
		return Default()
	}
	if !ok {
		return Default()
	}
	p, err := decodeProfile(raw)
	if err != nil {
		slog.Warn("malformed stored profile, using defaults", "key", StorageKey, "error", err)
		return Default()
	}
	return p
}

// Save writes the full record.
func (r *Repository) Save(p Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshalling profile: %w", err)
	}
	if err := r.kv.Set(StorageKey, string(b)); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// Clear removes the record.
func (r *Repository) Clear() error {
	if err := r.kv.Delete(StorageKey); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	return nil
}

// Parse decodes a profile record. Missing fields take their defaults, lists
// are deduplicated, and out-of-range preferences are rejected.
func Parse(raw string) (Profile, error) {
	return decodeProfile(raw)
}

func decodeProfile(raw string) (Profile, error) {
	p := Default()
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Profile{}, err
	}
	p.normalize()
	if err := p.Preferences.Validate(); err != nil {
		return Profile{}, err
	}
	p.Subjects = dedupe(p.Subjects)
	p.Interests = dedupe(p.Interests)
	p.Skills.Technical = dedupe(p.Skills.Technical)
	p.Skills.Soft = dedupe(p.Skills.Soft)
	return p, nil
}
