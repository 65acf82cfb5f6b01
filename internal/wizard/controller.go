// Package wizard drives the questionnaire: step navigation, the name gate,
// and write-through persistence of the profile.
package wizard

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/kalambet/careercompass/internal/notify"
	"github.com/kalambet/careercompass/internal/profile"
)

// ErrValidationBlocked is returned by Advance when the current step's
// requirements are not met.
var ErrValidationBlocked = errors.New("validation blocked")

// Controller owns one wizard run. All methods are safe for concurrent use.
type Controller struct {
	repo     *profile.Repository
	notifier notify.Notifier

	mu      sync.Mutex
	step    Step
	profile profile.Profile
}

// New creates a Controller whose profile is loaded from kv. The step always
// starts at welcome. A nil notifier discards notifications.
func New(kv profile.KV, notifier notify.Notifier) *Controller {
	if notifier == nil {
		notifier = notify.Discard
	}
	repo := profile.NewRepository(kv)
	return &Controller{
		repo:     repo,
		notifier: notifier,
		step:     StepWelcome,
		profile:  repo.Load(),
	}
}

// Step returns the current step.
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Profile returns a copy of the current profile.
func (c *Controller) Profile() profile.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile.Clone()
}

// Advance moves to the next step. Leaving personal requires a name; otherwise
// the step is unchanged, a notification is emitted, and the returned error
// wraps ErrValidationBlocked. Advancing from results does nothing.
func (c *Controller) Advance() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step == StepPersonal && strings.TrimSpace(c.profile.Name) == "" {
		c.notifier.Notify(notify.Notification{
			Kind:        notify.KindValidationBlocked,
			Title:       "Name required",
			Description: "Please enter your name to continue.",
			Variant:     notify.VariantDestructive,
		})
		return fmt.Errorf("%w: name is required", ErrValidationBlocked)
	}
	if c.step.last() {
		return nil
	}
	c.step++
	return nil
}

// Retreat moves to the previous step. Retreating from welcome does nothing.
func (c *Controller) Retreat() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.step.first() {
		c.step--
	}
}

// UpdateProfile merges patch into the profile and persists the result. The
// in-memory update stands even when persisting fails; the error is returned.
func (c *Controller) UpdateProfile(patch profile.Patch) error {
	if err := patch.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyLocked(patch)
}

func (c *Controller) applyLocked(patch profile.Patch) error {
	c.profile = patch.Apply(c.profile)
	if err := c.repo.Save(c.profile); err != nil {
		slog.Warn("persisting profile failed", "error", err)
		return err
	}
	return nil
}

// AddTo inserts value into list l. Blank values and duplicates are ignored.
func (c *Controller) AddTo(l profile.List, value string) error {
	return c.editList(l, value, profile.Add)
}

// RemoveFrom drops value from list l.
func (c *Controller) RemoveFrom(l profile.List, value string) error {
	return c.editList(l, value, profile.Remove)
}

// Toggle adds or removes value in list l.
func (c *Controller) Toggle(l profile.List, value string) error {
	return c.editList(l, value, profile.Toggle)
}

func (c *Controller) editList(l profile.List, value string, edit func(profile.Profile, profile.List, string) (profile.Patch, bool)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	patch, ok := edit(c.profile, l, value)
	if !ok {
		return nil
	}
	return c.applyLocked(patch)
}

// Reset restores the default profile, returns to welcome, and deletes the
// stored record. Calling it twice leaves the same state as calling it once.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.profile = profile.Default()
	c.step = StepWelcome
	if err := c.repo.Clear(); err != nil {
		slog.Warn("clearing stored profile failed", "error", err)
		return err
	}
	c.notifier.Notify(notify.Notification{
		Kind:        notify.KindInfo,
		Title:       "Form reset",
		Description: "You can start again with a clean slate.",
		Variant:     notify.VariantDefault,
	})
	return nil
}

// Progress returns completion as a percentage: index/(len(Steps)-1)*100.
func (c *Controller) Progress() float64 {
	return progressOf(c.Step())
}

func progressOf(s Step) float64 {
	return float64(s.Index()) / float64(len(Steps)-1) * 100
}

// State is an immutable view for the presentation layer.
type State struct {
	Step       Step            `json:"step"`
	Title      string          `json:"title"`
	StepNumber int             `json:"stepNumber"`
	TotalSteps int             `json:"totalSteps"`
	Progress   float64         `json:"progress"`
	Profile    profile.Profile `json:"profile"`
}

// Snapshot returns the current state. StepNumber and TotalSteps are zero on
// welcome and results, where no counter is shown.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{
		Step:     c.step,
		Title:    c.step.Title(),
		Progress: progressOf(c.step),
		Profile:  c.profile.Clone(),
	}
	if !c.step.first() && !c.step.last() {
		st.StepNumber = c.step.Index()
		st.TotalSteps = questionSteps
	}
	return st
}
