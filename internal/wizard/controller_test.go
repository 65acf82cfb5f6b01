package wizard

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalambet/careercompass/internal/notify"
	"github.com/kalambet/careercompass/internal/profile"
)

type memKV struct {
	mu     sync.Mutex
	data   map[string]string
	setErr error
	sets   int
}

func newMemKV() *memKV { return &memKV{data: make(map[string]string)} }

func (m *memKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func newController(t *testing.T) (*Controller, *memKV, *notify.Recorder) {
	t.Helper()
	kv := newMemKV()
	rec := &notify.Recorder{}
	return New(kv, rec), kv, rec
}

func TestAdvance_StepOrder(t *testing.T) {
	c, _, _ := newController(t)
	require.NoError(t, c.UpdateProfile(profile.SetName("Ada")))

	var visited []Step
	for i := 0; i < len(Steps)+2; i++ {
		visited = append(visited, c.Step())
		require.NoError(t, c.Advance())
	}
	assert.Equal(t, Steps, visited[:len(Steps)])
	assert.Equal(t, StepResults, c.Step(), "advance at results is a no-op")
}

func TestAdvance_NameGate(t *testing.T) {
	c, _, rec := newController(t)
	require.NoError(t, c.Advance())
	require.Equal(t, StepPersonal, c.Step())

	err := c.Advance()
	assert.True(t, errors.Is(err, ErrValidationBlocked))
	assert.Equal(t, StepPersonal, c.Step())

	events := rec.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, notify.KindValidationBlocked, events[0].Kind)
	assert.Equal(t, "Name required", events[0].Title)
	assert.Equal(t, "Please enter your name to continue.", events[0].Description)
	assert.Equal(t, notify.VariantDestructive, events[0].Variant)

	require.NoError(t, c.UpdateProfile(profile.SetName("   ")))
	assert.ErrorIs(t, c.Advance(), ErrValidationBlocked, "whitespace-only name is still empty")

	require.NoError(t, c.UpdateProfile(profile.SetName("Ada")))
	require.NoError(t, c.Advance())
	assert.Equal(t, StepEducation, c.Step())
}

func TestAdvance_GateOnlyOnPersonal(t *testing.T) {
	c, _, _ := newController(t)
	assert.NoError(t, c.Advance(), "welcome has no gate")
}

func TestRetreat(t *testing.T) {
	c, _, _ := newController(t)
	c.Retreat()
	assert.Equal(t, StepWelcome, c.Step(), "retreat at welcome is a no-op")

	require.NoError(t, c.UpdateProfile(profile.SetName("Ada")))
	for i := 0; i < 3; i++ {
		require.NoError(t, c.Advance())
	}
	require.Equal(t, StepInterests, c.Step())
	c.Retreat()
	assert.Equal(t, StepEducation, c.Step())
}

func TestProgress(t *testing.T) {
	c, _, _ := newController(t)
	require.NoError(t, c.UpdateProfile(profile.SetName("Ada")))

	want := []float64{0, 100.0 / 6, 200.0 / 6, 50, 400.0 / 6, 500.0 / 6, 100}
	for i := range Steps {
		assert.InDelta(t, want[i], c.Progress(), 1e-9, "step %s", c.Step())
		require.NoError(t, c.Advance())
	}
}

func TestSnapshot_StepCounter(t *testing.T) {
	c, _, _ := newController(t)
	st := c.Snapshot()
	assert.Zero(t, st.StepNumber)
	assert.Equal(t, "Welcome to CareerCompass AI", st.Title)

	require.NoError(t, c.Advance())
	st = c.Snapshot()
	assert.Equal(t, 1, st.StepNumber)
	assert.Equal(t, 5, st.TotalSteps)

	require.NoError(t, c.UpdateProfile(profile.SetName("Ada")))
	for c.Step() != StepResults {
		require.NoError(t, c.Advance())
	}
	st = c.Snapshot()
	assert.Zero(t, st.StepNumber)
	assert.Zero(t, st.TotalSteps)
	assert.Equal(t, 100.0, st.Progress)
}

func TestUpdateProfile_PersistsEveryMutation(t *testing.T) {
	c, kv, _ := newController(t)

	require.NoError(t, c.UpdateProfile(profile.SetName("Ada")))
	require.NoError(t, c.AddTo(profile.ListSubjects, "Physics"))
	assert.Equal(t, 2, kv.sets)

	reloaded := New(kv, nil)
	assert.Equal(t, "Ada", reloaded.Profile().Name)
	assert.Equal(t, []string{"Physics"}, reloaded.Profile().Subjects)
	assert.Equal(t, StepWelcome, reloaded.Step(), "step is not persisted")
}

func TestUpdateProfile_RejectsBadPreference(t *testing.T) {
	c, kv, _ := newController(t)
	err := c.UpdateProfile(profile.SetPreferences(profile.Preferences{Environment: "space", WorkStyle: "solo", Pace: "fast"}))
	assert.ErrorIs(t, err, profile.ErrInvalidPreference)
	assert.Zero(t, kv.sets)
}

func TestUpdateProfile_PersistFailureKeepsMemory(t *testing.T) {
	c, kv, _ := newController(t)
	kv.setErr = errors.New("quota exceeded")

	assert.Error(t, c.UpdateProfile(profile.SetName("Ada")))
	assert.Equal(t, "Ada", c.Profile().Name)
}

func TestListEdits_Dedup(t *testing.T) {
	c, _, _ := newController(t)

	require.NoError(t, c.AddTo(profile.ListTechnical, "Programming"))
	require.NoError(t, c.AddTo(profile.ListTechnical, "Programming"))
	require.NoError(t, c.AddTo(profile.ListTechnical, ""))
	require.NoError(t, c.AddTo(profile.ListSoft, "Leadership"))
	require.NoError(t, c.Toggle(profile.ListInterests, "Art"))
	require.NoError(t, c.Toggle(profile.ListInterests, "Music"))
	require.NoError(t, c.Toggle(profile.ListInterests, "Art"))
	require.NoError(t, c.RemoveFrom(profile.ListSoft, "Leadership"))

	p := c.Profile()
	assert.Equal(t, []string{"Programming"}, p.Skills.Technical)
	assert.Empty(t, p.Skills.Soft)
	assert.Equal(t, []string{"Music"}, p.Interests)
}

func TestReset_Idempotent(t *testing.T) {
	c, kv, rec := newController(t)
	require.NoError(t, c.UpdateProfile(profile.SetName("Ada")))
	require.NoError(t, c.Advance())

	require.NoError(t, c.Reset())
	first := c.Snapshot()
	require.NoError(t, c.Reset())
	second := c.Snapshot()

	assert.Equal(t, first, second)
	assert.Equal(t, StepWelcome, second.Step)
	assert.Equal(t, profile.Default(), second.Profile)
	_, ok, _ := kv.Get(profile.StorageKey)
	assert.False(t, ok, "reset must delete the stored record")

	events := rec.Drain()
	require.NotEmpty(t, events)
	assert.Equal(t, "Form reset", events[0].Title)
}

func TestNew_MalformedStorageFallsBack(t *testing.T) {
	kv := newMemKV()
	kv.data[profile.StorageKey] = "not json at all"

	c := New(kv, nil)
	assert.Equal(t, profile.Default(), c.Profile())
}

func TestStepText(t *testing.T) {
	b, err := StepPreferences.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "preferences", string(b))

	var s Step
	require.NoError(t, s.UnmarshalText([]byte("skills")))
	assert.Equal(t, StepSkills, s)
	assert.Error(t, s.UnmarshalText([]byte("summary")))
}
