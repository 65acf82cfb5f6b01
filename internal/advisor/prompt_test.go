package advisor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCareerPrompt(t *testing.T) {
	p := sampleProfile()
	got := BuildCareerPrompt(p)

	assert.True(t, strings.HasPrefix(got, "Suggest 3 personalized career paths for this person:\n"))
	for _, want := range []string{
		"Name: Ada",
		"Age: 29",
		"Education: bachelor",
		"Interests: Technology",
		"Technical Skills: Programming",
		"Soft Skills: Leadership",
		"Preferences: both, both, both",
		"Return JSON only:",
		`{"careers":[`,
	} {
		assert.Contains(t, got, want)
	}
	assert.Equal(t, got, BuildCareerPrompt(p), "prompt must be deterministic")
}

func TestBuildCareerPrompt_ReflectsChanges(t *testing.T) {
	a := sampleProfile()
	b := sampleProfile()
	b.Location = "Lagos"
	assert.NotEqual(t, BuildCareerPrompt(a), BuildCareerPrompt(b))
}

func TestBuildSkillGapPrompt(t *testing.T) {
	got := BuildSkillGapPrompt(sampleProfile(), "UX Designer")
	lines := strings.Split(got, "\n")

	assert.Equal(t, "Find skill gaps for the career: UX Designer", lines[0])
	assert.Equal(t, "User Skills: Programming, Leadership", lines[1])
	assert.Equal(t, "Education: bachelor", lines[2])
	assert.Equal(t, "Interests: Technology", lines[3])
	assert.Equal(t, "Return JSON only:", lines[4])
	assert.Contains(t, got, `"missingSkills"`)
}

func TestBuildPersonalityPrompt_QuestionOrder(t *testing.T) {
	qs := Questions()
	answers := Answers{
		qs[1].Text: qs[1].Options[0].Label,
		qs[0].Text: qs[0].Options[2].Label,
	}
	got := BuildPersonalityPrompt(answers)

	first := strings.Index(got, qs[0].Text)
	second := strings.Index(got, qs[1].Text)
	assert.True(t, first >= 0 && second > first, "answers follow question order")
	assert.Contains(t, got, "A: "+qs[0].Options[2].Label)
}
