package wizard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kalambet/careercompass/internal/notify"
	"github.com/kalambet/careercompass/internal/profile"
	"github.com/kalambet/careercompass/internal/storage"
)

// ErrUnknownSession is returned for ids that were never created.
var ErrUnknownSession = errors.New("unknown session")

// Session pairs a Controller with the notifications it has emitted and not
// yet been delivered.
type Session struct {
	ID         string
	Controller *Controller
	Events     *notify.Recorder

	lastUsed time.Time // guarded by Registry.mu
}

// Registry holds live sessions. Each session stores its profile under its own
// key namespace, so runs never see each other's data. Sessions left untouched
// for the idle timeout are dropped from memory by Evict; their profiles stay
// in storage and Get reopens them.
type Registry struct {
	kv   storage.KV
	idle time.Duration
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithIdleTimeout sets how long an unused session stays in memory. Zero, the
// default, disables eviction.
func WithIdleTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) { r.idle = d }
}

// NewRegistry creates a Registry over kv.
func NewRegistry(kv storage.KV, opts ...RegistryOption) *Registry {
	r := &Registry{
		kv:       kv,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create starts a new session with a fresh id and default profile. The
// default record is written right away so the session can be reopened.
func (r *Registry) Create() (*Session, error) {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.openLocked(id)
	if err := s.Controller.repo.Save(profile.Default()); err != nil {
		delete(r.sessions, id)
		return nil, err
	}
	return s, nil
}

// Get returns the session for id. A session unknown to this process is
// reopened when its profile exists in storage; the step restarts at welcome.
func (r *Registry) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrUnknownSession
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		s.lastUsed = r.now()
		return s, nil
	}
	_, ok, err := storage.Prefixed(r.kv, storage.SessionPrefix(id)).Get(profile.StorageKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownSession
	}
	return r.openLocked(id), nil
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) openLocked(id string) *Session {
	events := &notify.Recorder{}
	s := &Session{
		ID:         id,
		Controller: New(storage.Prefixed(r.kv, storage.SessionPrefix(id)), notify.Multi(events, notify.Log{})),
		Events:     events,
		lastUsed:   r.now(),
	}
	r.sessions[id] = s
	return s
}

// Evict drops sessions idle for longer than the idle timeout and reports how
// many it dropped. The step of an evicted session restarts at welcome when it
// is reopened.
func (r *Registry) Evict() int {
	if r.idle <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idle)
	n := 0
	for id, s := range r.sessions {
		if s.lastUsed.Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// RunEviction calls Evict every interval until ctx is done.
func (r *Registry) RunEviction(ctx context.Context, interval time.Duration) {
	if r.idle <= 0 || interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Evict(); n > 0 {
				slog.Debug("evicted idle sessions", "count", n, "remaining", r.Len())
			}
		}
	}
}
