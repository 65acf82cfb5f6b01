package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalambet/careercompass/internal/notify"
)

func fullAnswers() Answers {
	a := Answers{}
	for _, q := range Questions() {
		a[q.Text] = q.Options[0].Label
	}
	return a
}

func TestQuestions(t *testing.T) {
	qs := Questions()
	require.Len(t, qs, 10)
	seen := map[string]bool{}
	for _, q := range qs {
		assert.Len(t, q.Options, 3, q.ID)
		assert.False(t, seen[q.ID], "duplicate id %s", q.ID)
		seen[q.ID] = true
	}
}

func TestAnswersValidate(t *testing.T) {
	assert.NoError(t, fullAnswers().Validate())

	missing := fullAnswers()
	delete(missing, Questions()[3].Text)
	assert.ErrorIs(t, missing.Validate(), ErrIncompleteAnswers)

	wrong := fullAnswers()
	wrong[Questions()[0].Text] = "Whatever works"
	assert.ErrorIs(t, wrong.Validate(), ErrIncompleteAnswers)
}

func TestStaticAnalyzer_IgnoresInput(t *testing.T) {
	var a StaticAnalyzer
	r1, err := a.Analyze(context.Background(), fullAnswers())
	require.NoError(t, err)
	r2, err := a.Analyze(context.Background(), Answers{})
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, "INTJ", r1.Type)
	assert.NotEmpty(t, r1.Strengths)
}

func TestLLMAnalyzer(t *testing.T) {
	mock := &mockCompleter{response: `Result: {"type":"ENFP","description":"Curious and warm","strengths":["Creative"],"suitableCareers":["Teacher"]}`}
	a := NewLLMAnalyzer(NewGateway(mock))

	got, err := a.Analyze(context.Background(), fullAnswers())
	require.NoError(t, err)
	assert.Equal(t, "ENFP", got.Type)
	assert.Equal(t, []string{"Creative"}, got.Strengths)
	assert.NotNil(t, got.Weaknesses)
	assert.Equal(t, 1, mock.calls())
}

func TestLLMAnalyzer_FallsBackToStatic(t *testing.T) {
	var rec notify.Recorder
	ctx := notify.NewContext(context.Background(), &rec)
	a := NewLLMAnalyzer(NewGateway(&mockCompleter{err: errors.New("offline")}))

	got, err := a.Analyze(ctx, fullAnswers())
	require.NoError(t, err)
	assert.Equal(t, staticResult(), got)

	events := rec.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, notify.KindTransportFailure, events[0].Kind)
}

func TestAnalyze_ValidatesAndAnnounces(t *testing.T) {
	var rec notify.Recorder
	ctx := notify.NewContext(context.Background(), &rec)

	_, err := Analyze(ctx, StaticAnalyzer{}, Answers{})
	assert.ErrorIs(t, err, ErrIncompleteAnswers)
	assert.Empty(t, rec.Drain())

	got, err := Analyze(ctx, StaticAnalyzer{}, fullAnswers())
	require.NoError(t, err)
	assert.Equal(t, "INTJ", got.Type)

	events := rec.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, "Analyzing your personality traits...", events[0].Title)
}
