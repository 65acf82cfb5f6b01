package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/kalambet/careercompass/internal/notify"
)

// QuizOption is one answer to a quiz question.
type QuizOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Question is one personality quiz question.
type Question struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Options []QuizOption `json:"options"`
}

// Answers maps question text to the chosen option label.
type Answers map[string]string

// PersonalityResult describes a personality type and the careers that suit it.
type PersonalityResult struct {
	Type            string   `json:"type"`
	Description     string   `json:"description"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	SuitableCareers []string `json:"suitableCareers"`
}

// ErrIncompleteAnswers is returned when a question is unanswered or answered
// with a label it does not offer.
var ErrIncompleteAnswers = errors.New("incomplete quiz answers")

// PersonalityAnalyzer turns quiz answers into a result.
type PersonalityAnalyzer interface {
	Analyze(ctx context.Context, answers Answers) (PersonalityResult, error)
}

// Questions returns the ten quiz questions in order.
func Questions() []Question {
	return []Question{
		{ID: "work_preference", Text: "How do you prefer to work on projects?", Options: []QuizOption{
			{"independently", "I prefer working independently"},
			{"team", "I prefer collaborating with a team"},
			{"mix", "A mix of both, depending on the task"},
		}},
		{ID: "decision_making", Text: "How do you typically make decisions?", Options: []QuizOption{
			{"analytical", "I analyze all data and facts carefully"},
			{"intuitive", "I trust my gut feeling and instincts"},
			{"considerate", "I consider how it affects everyone involved"},
		}},
		{ID: "social_energy", Text: "In social situations, how do you usually feel?", Options: []QuizOption{
			{"energized", "Energized by meeting and talking to people"},
			{"drained", "Drained and need alone time afterward"},
			{"selective", "It depends on the specific people and situation"},
		}},
		{ID: "learning_style", Text: "What's your preferred way to learn something new?", Options: []QuizOption{
			{"hands_on", "Hands-on practice and experimentation"},
			{"theoretical", "Reading about it and understanding the theory first"},
			{"observation", "Watching someone else demonstrate"},
		}},
		{ID: "problem_approach", Text: "When facing a complex problem, you typically:", Options: []QuizOption{
			{"creative", "Look for creative, outside-the-box solutions"},
			{"methodical", "Follow a systematic, step-by-step approach"},
			{"collaborative", "Discuss with others to find the best solution"},
		}},
		{ID: "feedback_preference", Text: "What kind of feedback do you prefer to receive?", Options: []QuizOption{
			{"direct", "Direct and straightforward, even if critical"},
			{"constructive", "Constructive with suggestions for improvement"},
			{"positive", "Focused on my strengths and what I did well"},
		}},
		{ID: "stress_response", Text: "When under stress, you tend to:", Options: []QuizOption{
			{"organize", "Create lists and organize to regain control"},
			{"retreat", "Step back and need time alone to process"},
			{"talk", "Talk it through with someone you trust"},
		}},
		{ID: "ideal_environment", Text: "What type of work environment helps you perform best?", Options: []QuizOption{
			{"structured", "Structured with clear expectations and deadlines"},
			{"flexible", "Flexible with room for creativity and autonomy"},
			{"supportive", "Supportive with strong team relationships"},
		}},
		{ID: "time_management", Text: "How do you approach deadlines and time management?", Options: []QuizOption{
			{"early", "I plan ahead and finish tasks early"},
			{"pressure", "I work best under pressure, close to deadlines"},
			{"adaptable", "I adapt based on the importance of the task"},
		}},
		{ID: "communication_style", Text: "What's your preferred communication style?", Options: []QuizOption{
			{"precise", "Direct and to-the-point"},
			{"diplomatic", "Diplomatic and considerate of others' feelings"},
			{"expressive", "Expressive and enthusiastic"},
		}},
	}
}

// Validate checks that every question has one of its own labels as answer.
func (a Answers) Validate() error {
	for _, q := range Questions() {
		got, ok := a[q.Text]
		if !ok {
			return fmt.Errorf("%w: %q unanswered", ErrIncompleteAnswers, q.ID)
		}
		if !slices.ContainsFunc(q.Options, func(o QuizOption) bool { return o.Label == got }) {
			return fmt.Errorf("%w: %q is not an option for %q", ErrIncompleteAnswers, got, q.ID)
		}
	}
	return nil
}

// StaticAnalyzer returns the same result for every input. It stands in until
// a real scoring model exists.
type StaticAnalyzer struct{}

func (StaticAnalyzer) Analyze(ctx context.Context, answers Answers) (PersonalityResult, error) {
	return staticResult(), nil
}

func staticResult() PersonalityResult {
	return PersonalityResult{
		Type:            "INTJ",
		Description:     "You are a strategic thinker who values logic and independence.",
		Strengths:       []string{"Analytical", "Strategic", "Independent"},
		Weaknesses:      []string{"Can be overly critical", "May neglect routine details"},
		SuitableCareers: []string{"Software Developer", "Data Scientist", "Research Scientist"},
	}
}

// LLMAnalyzer asks the completion service. Failures fall back to
// StaticAnalyzer's result after notifying.
type LLMAnalyzer struct {
	gw *Gateway
}

// NewLLMAnalyzer returns an analyzer that shares g's client and run log.
func NewLLMAnalyzer(g *Gateway) *LLMAnalyzer {
	return &LLMAnalyzer{gw: g}
}

func (a *LLMAnalyzer) Analyze(ctx context.Context, answers Answers) (PersonalityResult, error) {
	if err := answers.Validate(); err != nil {
		return PersonalityResult{}, err
	}

	var out PersonalityResult
	err := a.gw.ask(ctx, KindPersonality, BuildPersonalityPrompt(answers), &out, func() error {
		if out.Type == "" {
			return errors.New(`missing "type"`)
		}
		return nil
	})
	if err != nil {
		slog.Warn("personality analysis failed, using static result", "error", err)
		a.gw.notify(ctx, failureNotification(err, "Failed to analyze personality. Please try again."))
		return staticResult(), nil
	}
	for _, s := range []*[]string{&out.Strengths, &out.Weaknesses, &out.SuitableCareers} {
		if *s == nil {
			*s = []string{}
		}
	}
	return out, nil
}

// notifyAnalyzing is emitted before any analysis starts.
func notifyAnalyzing(ctx context.Context) {
	notify.FromContext(ctx).Notify(notify.Notification{
		Kind:    notify.KindInfo,
		Title:   "Analyzing your personality traits...",
		Variant: notify.VariantDefault,
	})
}

// Analyze validates answers, announces the analysis, and runs a.
func Analyze(ctx context.Context, a PersonalityAnalyzer, answers Answers) (PersonalityResult, error) {
	if err := answers.Validate(); err != nil {
		return PersonalityResult{}, err
	}
	notifyAnalyzing(ctx)
	return a.Analyze(ctx, answers)
}
