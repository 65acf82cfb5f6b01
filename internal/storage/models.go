package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Share is an immutable snapshot of a profile reachable by a short id.
type Share struct {
	ID          string
	SessionID   string
	ProfileJSON string
	CreatedAt   time.Time
}

// Run statuses.
const (
	RunOK               = "ok"
	RunTransportFailure = "transport_failure"
	RunMalformed        = "malformed"
)

// Run records one outbound gateway call.
type Run struct {
	ID        string
	SessionID string
	Kind      string // "careers", "skill_gap", "personality"
	Status    string
	Error     string
	CreatedAt time.Time
}
