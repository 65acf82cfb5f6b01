// Package career defines the recommendation types shared by the gateway and
// the offline catalog.
package career

// Color is the accent color of a suggestion card.
type Color string

const (
	Blue   Color = "blue"
	Purple Color = "purple"
	Teal   Color = "teal"
	Pink   Color = "pink"
	Orange Color = "orange"
)

// Palette is assigned round-robin to projected suggestions.
var Palette = []Color{Blue, Purple, Teal, Pink, Orange}

// ColorAt returns Palette[i % len(Palette)].
func ColorAt(i int) Color {
	return Palette[i%len(Palette)]
}

type ResourceKind string

const (
	Course  ResourceKind = "course"
	Tool    ResourceKind = "tool"
	Book    ResourceKind = "book"
	Website ResourceKind = "website"
)

// ParseResourceKind maps free text to a kind; anything unknown is a website.
func ParseResourceKind(s string) ResourceKind {
	switch k := ResourceKind(s); k {
	case Course, Tool, Book, Website:
		return k
	}
	return Website
}

type OpportunityKind string

const (
	Job   OpportunityKind = "job"
	Study OpportunityKind = "study"
)

// ParseOpportunityKind maps free text to a kind; anything unknown is a job.
func ParseOpportunityKind(s string) OpportunityKind {
	if OpportunityKind(s) == Study {
		return Study
	}
	return Job
}

type Resource struct {
	Name string       `json:"name"`
	URL  string       `json:"url"`
	Kind ResourceKind `json:"type"`
}

type Opportunity struct {
	Title        string          `json:"title"`
	Organization string          `json:"organization"`
	Location     string          `json:"location"`
	URL          string          `json:"url"`
	Kind         OpportunityKind `json:"type"`
	Deadline     string          `json:"deadline,omitempty"`
}

// NotSpecified fills descriptive fields the source left out.
const NotSpecified = "Not specified"

// Suggestion is one recommended career.
type Suggestion struct {
	ID                    int           `json:"id"`
	Title                 string        `json:"title"`
	Description           string        `json:"description"`
	Match                 string        `json:"match"`
	Resources             []Resource    `json:"resources"`
	Opportunities         []Opportunity `json:"opportunities"`
	RequiredSkills        []string      `json:"requiredSkills"`
	SalaryRange           string        `json:"salaryRange"`
	GrowthProspects       string        `json:"growthProspects"`
	EducationRequirements string        `json:"educationRequirements"`
	Icon                  string        `json:"icon"`
	Color                 Color         `json:"color"`
	MatchScore            int           `json:"matchScore,omitempty"`
}

// SkillGap lists what a person lacks for a career and where to learn it.
type SkillGap struct {
	MissingSkills     []string   `json:"missingSkills"`
	LearningResources []Resource `json:"learningResources"`
}

// EmptySkillGap is the result returned when analysis fails.
func EmptySkillGap() SkillGap {
	return SkillGap{MissingSkills: []string{}, LearningResources: []Resource{}}
}
