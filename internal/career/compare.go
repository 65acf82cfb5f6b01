package career

import (
	"errors"
	"math"
)

const (
	MinCompare = 2
	MaxCompare = 3
)

var (
	ErrCompareTooFew  = errors.New("select at least 2 careers to compare")
	ErrCompareTooMany = errors.New("you can compare up to 3 careers at a time")
)

// Aspect names, in display order.
const (
	AspectRequiredSkills        = "Required Skills"
	AspectSalaryRange           = "Salary Range"
	AspectGrowthProspects       = "Growth Prospects"
	AspectEducationRequirements = "Education Requirements"
)

// ComparisonRow holds one aspect's value for each compared career, in input
// order. Required skills are a list; every other aspect is a single string.
type ComparisonRow struct {
	Aspect string     `json:"aspect"`
	Values [][]string `json:"values"`
}

// Comparison is a side-by-side table.
type Comparison struct {
	Titles []string        `json:"titles"`
	Rows   []ComparisonRow `json:"rows"`
}

// Compare builds the side-by-side table for 2 or 3 careers. Blank values read
// "Not specified".
func Compare(careers []Suggestion) (Comparison, error) {
	switch {
	case len(careers) < MinCompare:
		return Comparison{}, ErrCompareTooFew
	case len(careers) > MaxCompare:
		return Comparison{}, ErrCompareTooMany
	}

	cmp := Comparison{Titles: make([]string, len(careers))}
	for i, c := range careers {
		cmp.Titles[i] = c.Title
	}

	aspects := []struct {
		name string
		get  func(Suggestion) []string
	}{
		{AspectRequiredSkills, func(s Suggestion) []string {
			if s.RequiredSkills == nil {
				return []string{}
			}
			return s.RequiredSkills
		}},
		{AspectSalaryRange, func(s Suggestion) []string { return []string{orNotSpecified(s.SalaryRange)} }},
		{AspectGrowthProspects, func(s Suggestion) []string { return []string{orNotSpecified(s.GrowthProspects)} }},
		{AspectEducationRequirements, func(s Suggestion) []string { return []string{orNotSpecified(s.EducationRequirements)} }},
	}
	for _, a := range aspects {
		row := ComparisonRow{Aspect: a.name, Values: make([][]string, len(careers))}
		for i, c := range careers {
			row.Values[i] = a.get(c)
		}
		cmp.Rows = append(cmp.Rows, row)
	}
	return cmp, nil
}

// SkillMatch is the share of a career's required skills the person already
// has: round((required-missing)/required*100), clamped to 0..100. A career
// without required skills scores 0.
func SkillMatch(c Suggestion, gap SkillGap) int {
	required := len(c.RequiredSkills)
	if required == 0 {
		return 0
	}
	have := required - len(gap.MissingSkills)
	pct := int(math.Round(float64(have) / float64(required) * 100))
	return max(0, min(100, pct))
}

func orNotSpecified(s string) string {
	if s == "" {
		return NotSpecified
	}
	return s
}
