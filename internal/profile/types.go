package profile

import (
	"errors"
	"fmt"
)

// Profile is everything the questionnaire collects about one person. The JSON
// form is the persisted record.
type Profile struct {
	Name        string      `json:"name"`
	Age         string      `json:"age"`
	Location    string      `json:"location"`
	Education   string      `json:"education"`
	Subjects    []string    `json:"subjects"`
	Interests   []string    `json:"interests"`
	Skills      Skills      `json:"skills"`
	Preferences Preferences `json:"preferences"`
}

// Skills groups technical and soft skills. Both lists are deduplicated.
type Skills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
}

// Preferences captures the work-environment answers.
type Preferences struct {
	Environment Environment `json:"environment"`
	WorkStyle   WorkStyle   `json:"workStyle"`
	Pace        Pace        `json:"pace"`
}

type Environment string

const (
	EnvironmentIndoor  Environment = "indoor"
	EnvironmentOutdoor Environment = "outdoor"
	EnvironmentBoth    Environment = "both"
)

func (e Environment) Valid() bool {
	switch e {
	case EnvironmentIndoor, EnvironmentOutdoor, EnvironmentBoth:
		return true
	}
	return false
}

type WorkStyle string

const (
	WorkStyleSolo WorkStyle = "solo"
	WorkStyleTeam WorkStyle = "team"
	WorkStyleBoth WorkStyle = "both"
)

func (w WorkStyle) Valid() bool {
	switch w {
	case WorkStyleSolo, WorkStyleTeam, WorkStyleBoth:
		return true
	}
	return false
}

type Pace string

const (
	PaceFast   Pace = "fast"
	PaceSteady Pace = "steady"
	PaceBoth   Pace = "both"
)

func (p Pace) Valid() bool {
	switch p {
	case PaceFast, PaceSteady, PaceBoth:
		return true
	}
	return false
}

// ErrInvalidPreference is returned when a preference value is outside its enum.
var ErrInvalidPreference = errors.New("invalid preference")

// Validate reports whether every preference holds a known value.
func (p Preferences) Validate() error {
	if !p.Environment.Valid() {
		return fmt.Errorf("%w: environment %q", ErrInvalidPreference, p.Environment)
	}
	if !p.WorkStyle.Valid() {
		return fmt.Errorf("%w: workStyle %q", ErrInvalidPreference, p.WorkStyle)
	}
	if !p.Pace.Valid() {
		return fmt.Errorf("%w: pace %q", ErrInvalidPreference, p.Pace)
	}
	return nil
}

// Default returns the empty profile every wizard starts from.
func Default() Profile {
	return Profile{
		Subjects:  []string{},
		Interests: []string{},
		Skills: Skills{
			Technical: []string{},
			Soft:      []string{},
		},
		Preferences: Preferences{
			Environment: EnvironmentBoth,
			WorkStyle:   WorkStyleBoth,
			Pace:        PaceBoth,
		},
	}
}

// Clone returns a deep copy so callers can hand profiles across goroutines.
func (p Profile) Clone() Profile {
	cp := p
	cp.Subjects = cloneStrings(p.Subjects)
	cp.Interests = cloneStrings(p.Interests)
	cp.Skills.Technical = cloneStrings(p.Skills.Technical)
	cp.Skills.Soft = cloneStrings(p.Skills.Soft)
	return cp
}

// normalize replaces nil sequences with empty ones and fills blank
// preferences, so a partially stored record behaves like the default.
func (p *Profile) normalize() {
	if p.Subjects == nil {
		p.Subjects = []string{}
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	if p.Skills.Technical == nil {
		p.Skills.Technical = []string{}
	}
	if p.Skills.Soft == nil {
		p.Skills.Soft = []string{}
	}
	if p.Preferences.Environment == "" {
		p.Preferences.Environment = EnvironmentBoth
	}
	if p.Preferences.WorkStyle == "" {
		p.Preferences.WorkStyle = WorkStyleBoth
	}
	if p.Preferences.Pace == "" {
		p.Preferences.Pace = PaceBoth
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
