// Package notify carries transient user-facing messages from the core to
// whatever presentation layer is attached.
package notify

import (
	"context"
	"log/slog"
	"sync"
)

// Kind classifies a notification.
type Kind string

const (
	KindInfo              Kind = "info"
	KindSuccess           Kind = "success"
	KindValidationBlocked Kind = "validation_blocked"
	KindTransportFailure  Kind = "transport_failure"
	KindMalformedResponse Kind = "malformed_response"
)

// Variant is the display style: "default" or "destructive".
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a short message shown to the user, e.g. a toast.
type Notification struct {
	Kind        Kind    `json:"kind"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Variant     Variant `json:"variant"`
}

// Notifier receives notifications. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a function to Notifier.
type Func func(Notification)

func (f Func) Notify(n Notification) { f(n) }

// Discard drops everything.
var Discard Notifier = Func(func(Notification) {})

// Recorder buffers notifications until drained. The HTTP layer attaches one
// per request and returns its contents with the response.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// Drain returns everything recorded so far and empties the buffer. The result
// is never nil.
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.items
	r.items = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}

// Log writes notifications to slog at debug level.
type Log struct{}

func (Log) Notify(n Notification) {
	slog.Debug("notification", "kind", n.Kind, "title", n.Title, "description", n.Description)
}

// Multi fans a notification out to several notifiers.
func Multi(ns ...Notifier) Notifier {
	return Func(func(n Notification) {
		for _, x := range ns {
			if x != nil {
				x.Notify(n)
			}
		}
	})
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying n.
func NewContext(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, ctxKey{}, n)
}

// FromContext returns the Notifier carried by ctx, or Discard.
func FromContext(ctx context.Context) Notifier {
	if n, ok := ctx.Value(ctxKey{}).(Notifier); ok && n != nil {
		return n
	}
	return Discard
}
