package wizard

import "fmt"

// Step is a position in the questionnaire.
type Step int

const (
	StepWelcome Step = iota
	StepPersonal
	StepEducation
	StepInterests
	StepSkills
	StepPreferences
	StepResults
)

// Steps lists every step in order.
var Steps = []Step{
	StepWelcome,
	StepPersonal,
	StepEducation,
	StepInterests,
	StepSkills,
	StepPreferences,
	StepResults,
}

var stepNames = map[Step]string{
	StepWelcome:     "welcome",
	StepPersonal:    "personal",
	StepEducation:   "education",
	StepInterests:   "interests",
	StepSkills:      "skills",
	StepPreferences: "preferences",
	StepResults:     "results",
}

var stepTitles = map[Step]string{
	StepWelcome:     "Welcome to CareerCompass AI",
	StepPersonal:    "Tell us about yourself",
	StepEducation:   "Education Background",
	StepInterests:   "Your Interests & Hobbies",
	StepSkills:      "Your Skills",
	StepPreferences: "Work Preferences",
	StepResults:     "Your AI Career Recommendations",
}

func (s Step) String() string {
	if n, ok := stepNames[s]; ok {
		return n
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Title is the heading shown for the step.
func (s Step) Title() string { return stepTitles[s] }

// Index is the position of s in Steps.
func (s Step) Index() int { return int(s) }

// ParseStep maps a step name back to its Step.
func ParseStep(name string) (Step, error) {
	for s, n := range stepNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown step %q", name)
}

func (s Step) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Step) UnmarshalText(b []byte) error {
	v, err := ParseStep(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s Step) first() bool { return s == Steps[0] }
func (s Step) last() bool  { return s == Steps[len(Steps)-1] }

// questionSteps is the count shown in the "Step N of M" counter: every step
// except welcome and results.
var questionSteps = len(Steps) - 2
