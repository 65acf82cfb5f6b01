package profile

import (
	"fmt"
	"strings"
)

// FormatForPrompt renders the profile as the labeled lines the career prompt
// embeds. Output is deterministic for a given profile.
func FormatForPrompt(p Profile) string {
	lines := []string{
		"Name: " + p.Name,
		"Age: " + p.Age,
		"Location: " + p.Location,
		"Education: " + p.Education,
		"Subjects: " + strings.Join(p.Subjects, ", "),
		"Interests: " + strings.Join(p.Interests, ", "),
		"Technical Skills: " + strings.Join(p.Skills.Technical, ", "),
		"Soft Skills: " + strings.Join(p.Skills.Soft, ", "),
		fmt.Sprintf("Preferences: %s, %s, %s",
			p.Preferences.Environment, p.Preferences.WorkStyle, p.Preferences.Pace),
	}
	return strings.Join(lines, "\n")
}

// AllSkills returns technical skills followed by soft skills.
func (p Profile) AllSkills() []string {
	out := make([]string, 0, len(p.Skills.Technical)+len(p.Skills.Soft))
	out = append(out, p.Skills.Technical...)
	return append(out, p.Skills.Soft...)
}
