package advisor

import "github.com/kalambet/careercompass/internal/career"

// Wire shapes of the service's JSON payloads. Pointers distinguish absent
// keys from empty values.

type careersPayload struct {
	Careers *[]rawCareer `json:"careers"`
}

type rawCareer struct {
	Title                 string           `json:"title"`
	Description           string           `json:"description"`
	Match                 string           `json:"match"`
	Resources             []rawResource    `json:"resources"`
	Opportunities         []rawOpportunity `json:"opportunities"`
	RequiredSkills        []string         `json:"requiredSkills"`
	SalaryRange           *string          `json:"salaryRange"`
	GrowthProspects       *string          `json:"growthProspects"`
	EducationRequirements *string          `json:"educationRequirements"`
}

type rawResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

type rawOpportunity struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Location     string `json:"location"`
	URL          string `json:"url"`
	Type         string `json:"type"`
	Deadline     string `json:"deadline"`
}

type skillGapPayload struct {
	MissingSkills     *[]string     `json:"missingSkills"`
	LearningResources []rawResource `json:"learningResources"`
}

// project turns raw careers into suggestions: ids count up from FirstID,
// colors cycle through the palette, and blank descriptive fields read
// "Not specified".
func project(raw []rawCareer) []career.Suggestion {
	out := make([]career.Suggestion, 0, len(raw))
	for i, c := range raw {
		s := career.Suggestion{
			ID:                    FirstID + i,
			Title:                 c.Title,
			Description:           c.Description,
			Match:                 c.Match,
			Resources:             projectResources(c.Resources),
			Opportunities:         projectOpportunities(c.Opportunities),
			RequiredSkills:        c.RequiredSkills,
			SalaryRange:           orNotSpecified(c.SalaryRange),
			GrowthProspects:       orNotSpecified(c.GrowthProspects),
			EducationRequirements: orNotSpecified(c.EducationRequirements),
			Icon:                  Icon,
			Color:                 career.ColorAt(i),
		}
		if s.RequiredSkills == nil {
			s.RequiredSkills = []string{}
		}
		out = append(out, s)
	}
	return out
}

func projectResources(raw []rawResource) []career.Resource {
	out := make([]career.Resource, 0, len(raw))
	for _, r := range raw {
		out = append(out, career.Resource{
			Name: r.Name,
			URL:  r.URL,
			Kind: career.ParseResourceKind(r.Type),
		})
	}
	return out
}

func projectOpportunities(raw []rawOpportunity) []career.Opportunity {
	out := make([]career.Opportunity, 0, len(raw))
	for _, o := range raw {
		out = append(out, career.Opportunity{
			Title:        o.Title,
			Organization: o.Organization,
			Location:     o.Location,
			URL:          o.URL,
			Kind:         career.ParseOpportunityKind(o.Type),
			Deadline:     o.Deadline,
		})
	}
	return out
}

func orNotSpecified(s *string) string {
	if s == nil || *s == "" {
		return career.NotSpecified
	}
	return *s
}
