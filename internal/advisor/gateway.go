// Package advisor is the recommendation gateway: it turns a profile into a
// prompt, makes one completion call, extracts the JSON payload, and projects
// it into typed results.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kalambet/careercompass/internal/career"
	"github.com/kalambet/careercompass/internal/completion"
	"github.com/kalambet/careercompass/internal/extract"
	"github.com/kalambet/careercompass/internal/notify"
	"github.com/kalambet/careercompass/internal/profile"
	"github.com/kalambet/careercompass/internal/storage"
)

const (
	// FirstID is the id of the first suggestion in every batch.
	FirstID = 1000
	// Icon is shown on every gateway suggestion.
	Icon = "Cpu"
)

// Run kinds recorded in the run log.
const (
	KindCareers     = "careers"
	KindSkillGap    = "skill_gap"
	KindPersonality = "personality"
)

var (
	// ErrTransport wraps failures to reach the completion service or a
	// non-2xx answer from it.
	ErrTransport = errors.New("transport failure")
	// ErrMalformedResponse wraps replies without a usable JSON payload.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrEmptyCareer is returned when a skill gap is requested without a title.
	ErrEmptyCareer = errors.New("career title is required")
)

// Completer is the interface for single-turn chat completion.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// RunStore records outbound calls. Implemented by storage.Store.
type RunStore interface {
	SaveRun(r storage.Run) error
}

// Gateway talks to the completion service on behalf of the wizard.
type Gateway struct {
	client   Completer
	runs     RunStore
	notifier notify.Notifier
	now      func() time.Time
}

type Option func(*Gateway)

// WithRunStore records every call in rs.
func WithRunStore(rs RunStore) Option {
	return func(g *Gateway) { g.runs = rs }
}

// WithNotifier sends every notification to n as well as to the notifier
// carried by the call's context.
func WithNotifier(n notify.Notifier) Option {
	return func(g *Gateway) { g.notifier = n }
}

// NewGateway creates a Gateway using client for completions.
func NewGateway(client Completer, opts ...Option) *Gateway {
	g := &Gateway{
		client:   client,
		notifier: notify.Discard,
		now:      time.Now,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

type sessionKey struct{}

// WithSession tags ctx with the wizard session the call is made for. The id
// ends up in the run log.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

func sessionFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// CareerSuggestions returns suggestions for p. It never fails: on any error
// the result is empty, a warning is logged, and a notification is emitted.
func (g *Gateway) CareerSuggestions(ctx context.Context, p profile.Profile) []career.Suggestion {
	out, err := g.FetchCareerSuggestions(ctx, p)
	if err != nil {
		slog.Warn("career suggestions failed", "error", err)
		g.notify(ctx, failureNotification(err, "Error generating recommendations. Please try again."))
		return []career.Suggestion{}
	}
	g.notify(ctx, notify.Notification{
		Kind:    notify.KindSuccess,
		Title:   "AI career recommendations generated!",
		Variant: notify.VariantDefault,
	})
	return out
}

// FetchCareerSuggestions is CareerSuggestions without the swallowing: errors
// wrap ErrTransport or ErrMalformedResponse.
func (g *Gateway) FetchCareerSuggestions(ctx context.Context, p profile.Profile) ([]career.Suggestion, error) {
	var payload careersPayload
	if err := g.ask(ctx, KindCareers, BuildCareerPrompt(p), &payload, func() error {
		if payload.Careers == nil {
			return errors.New(`missing "careers"`)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return project(*payload.Careers), nil
}

// SkillGap returns the skills p lacks for careerTitle. On any error both
// lists are empty.
func (g *Gateway) SkillGap(ctx context.Context, p profile.Profile, careerTitle string) career.SkillGap {
	gap, err := g.FetchSkillGap(ctx, p, careerTitle)
	if err != nil {
		slog.Warn("skill gap analysis failed", "career", careerTitle, "error", err)
		g.notify(ctx, failureNotification(err, "Failed to analyze skill gap. Please try again."))
		return career.EmptySkillGap()
	}
	g.notify(ctx, notify.Notification{
		Kind:    notify.KindSuccess,
		Title:   "Skill gap analysis complete",
		Variant: notify.VariantDefault,
	})
	return gap
}

// FetchSkillGap is SkillGap without the swallowing.
func (g *Gateway) FetchSkillGap(ctx context.Context, p profile.Profile, careerTitle string) (career.SkillGap, error) {
	careerTitle = strings.TrimSpace(careerTitle)
	if careerTitle == "" {
		return career.EmptySkillGap(), ErrEmptyCareer
	}

	var payload skillGapPayload
	if err := g.ask(ctx, KindSkillGap, BuildSkillGapPrompt(p, careerTitle), &payload, func() error {
		if payload.MissingSkills == nil {
			return errors.New(`missing "missingSkills"`)
		}
		return nil
	}); err != nil {
		return career.EmptySkillGap(), err
	}

	gap := career.SkillGap{
		MissingSkills:     *payload.MissingSkills,
		LearningResources: projectResources(payload.LearningResources),
	}
	if gap.MissingSkills == nil {
		gap.MissingSkills = []string{}
	}
	return gap, nil
}

// ask performs the one outbound call, decodes the reply into v, runs check
// on the decoded value, and records the outcome.
func (g *Gateway) ask(ctx context.Context, kind, prompt string, v any, check func() error) error {
	text, err := g.client.Complete(ctx, prompt)
	if err != nil {
		if errors.Is(err, completion.ErrDecode) {
			err = fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		} else {
			err = fmt.Errorf("%w: %w", ErrTransport, err)
		}
		g.record(ctx, kind, err)
		return err
	}

	if err := extract.Decode(text, v); err != nil {
		err = fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		g.record(ctx, kind, err)
		return err
	}
	if check != nil {
		if err := check(); err != nil {
			err = fmt.Errorf("%w: %w", ErrMalformedResponse, err)
			g.record(ctx, kind, err)
			return err
		}
	}

	g.record(ctx, kind, nil)
	return nil
}

func (g *Gateway) record(ctx context.Context, kind string, err error) {
	if g.runs == nil {
		return
	}
	r := storage.Run{
		ID:        uuid.NewString(),
		SessionID: sessionFrom(ctx),
		Kind:      kind,
		Status:    storage.RunOK,
		CreatedAt: g.now(),
	}
	if err != nil {
		r.Status = runStatus(err)
		r.Error = err.Error()
	}
	if err := g.runs.SaveRun(r); err != nil {
		slog.Warn("recording gateway run failed", "error", err)
	}
}

func (g *Gateway) notify(ctx context.Context, n notify.Notification) {
	g.notifier.Notify(n)
	notify.FromContext(ctx).Notify(n)
}

func runStatus(err error) string {
	if errors.Is(err, ErrTransport) {
		return storage.RunTransportFailure
	}
	return storage.RunMalformed
}

func failureNotification(err error, title string) notify.Notification {
	n := notify.Notification{
		Kind:        notify.KindMalformedResponse,
		Title:       title,
		Description: "The recommendation service returned an unreadable answer.",
		Variant:     notify.VariantDestructive,
	}
	switch {
	case errors.Is(err, ErrTransport):
		n.Kind = notify.KindTransportFailure
		n.Description = "The recommendation service could not be reached."
	case errors.Is(err, ErrEmptyCareer):
		n.Kind = notify.KindValidationBlocked
		n.Description = "Choose a career to analyze."
	}
	return n
}
