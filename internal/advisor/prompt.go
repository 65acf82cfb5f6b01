package advisor

import (
	"fmt"
	"strings"

	"github.com/kalambet/careercompass/internal/profile"
)

const careerInstructions = `For each career include: title, brief description, match reason, resources, opportunities, required skills, salary range, growth prospects, education requirements.
Return JSON only:
{"careers":[{"title":"","description":"","match":"","resources":[{"name":"","url":"","type":""}],"opportunities":[{"title":"","organization":"","location":"","url":"","type":"","deadline":""}],"requiredSkills":[],"salaryRange":"","growthProspects":"","educationRequirements":""}]}`

const skillGapInstructions = `Return JSON only:
{"missingSkills":[],"learningResources":[{"name":"","url":"","type":""}]}`

const personalityInstructions = `Return JSON only:
{"type":"","description":"","strengths":[],"weaknesses":[],"suitableCareers":[]}`

// BuildCareerPrompt renders the recommendation request for p. The output is
// a pure function of the profile.
func BuildCareerPrompt(p profile.Profile) string {
	var sb strings.Builder
	sb.WriteString("Suggest 3 personalized career paths for this person:\n")
	sb.WriteString(profile.FormatForPrompt(p))
	sb.WriteString("\n")
	sb.WriteString(careerInstructions)
	return sb.String()
}

// BuildSkillGapPrompt renders the skill-gap request for p against careerTitle.
func BuildSkillGapPrompt(p profile.Profile, careerTitle string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Find skill gaps for the career: %s\n", careerTitle)
	fmt.Fprintf(&sb, "User Skills: %s\n", strings.Join(p.AllSkills(), ", "))
	fmt.Fprintf(&sb, "Education: %s\n", p.Education)
	fmt.Fprintf(&sb, "Interests: %s\n", strings.Join(p.Interests, ", "))
	sb.WriteString(skillGapInstructions)
	return sb.String()
}

// BuildPersonalityPrompt renders the quiz answers in question order.
func BuildPersonalityPrompt(answers Answers) string {
	var sb strings.Builder
	sb.WriteString("Determine the personality type of a person who answered this career quiz:\n")
	for _, q := range Questions() {
		if a, ok := answers[q.Text]; ok {
			fmt.Fprintf(&sb, "Q: %s\nA: %s\n", q.Text, a)
		}
	}
	sb.WriteString(personalityInstructions)
	return sb.String()
}
