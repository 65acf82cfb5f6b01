package profile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p := Default()
	assert.NotNil(t, p.Subjects, "default sequences must be empty, not nil")
	assert.NotNil(t, p.Interests)
	assert.NotNil(t, p.Skills.Technical)
	assert.NotNil(t, p.Skills.Soft)
	assert.Equal(t, Preferences{EnvironmentBoth, WorkStyleBoth, PaceBoth}, p.Preferences)
}

func TestAdd_Dedup(t *testing.T) {
	p := Default()
	for _, v := range []string{"Mathematics", "Mathematics", "Biology"} {
		if patch, ok := Add(p, ListSubjects, v); ok {
			p = patch.Apply(p)
		}
	}
	assert.Equal(t, []string{"Mathematics", "Biology"}, p.Subjects)
}

func TestAdd_IgnoresBlank(t *testing.T) {
	for _, v := range []string{"", "   ", "\t"} {
		_, ok := Add(Default(), ListSoft, v)
		assert.False(t, ok, "Add(%q) should be a no-op", v)
	}
}

func TestAdd_TrimsValue(t *testing.T) {
	patch, ok := Add(Default(), ListTechnical, "  Go  ")
	require.True(t, ok)
	assert.Equal(t, []string{"Go"}, patch.Apply(Default()).Skills.Technical)
}

func TestAddSkill_KeepsSibling(t *testing.T) {
	p := Default()
	p.Skills.Soft = []string{"Leadership"}

	patch, ok := Add(p, ListTechnical, "Programming")
	require.True(t, ok)
	require.NotNil(t, patch.Skills, "skill patches must carry the whole skills object")

	got := patch.Apply(p)
	assert.Equal(t, []string{"Leadership"}, got.Skills.Soft)
	assert.Equal(t, []string{"Programming"}, got.Skills.Technical)
}

func TestToggle(t *testing.T) {
	p := Default()
	patch, _ := Toggle(p, ListInterests, "Art")
	p = patch.Apply(p)
	require.Equal(t, []string{"Art"}, p.Interests)

	patch, _ = Toggle(p, ListInterests, "Art")
	p = patch.Apply(p)
	assert.NotNil(t, p.Interests)
	assert.Empty(t, p.Interests)
}

func TestRemove_Missing(t *testing.T) {
	_, ok := Remove(Default(), ListSubjects, "History")
	assert.False(t, ok, "Remove of absent value should be a no-op")
}

func TestPatch_ShallowMerge(t *testing.T) {
	p := Default()
	p.Skills = Skills{Technical: []string{"SEO"}, Soft: []string{"Teamwork"}}

	got := SetSkills(Skills{Technical: []string{"Go"}}).Apply(p)
	assert.Empty(t, got.Skills.Soft, "nested object must be replaced whole")
	assert.NotNil(t, got.Skills.Soft)
}

func TestPatch_DoesNotAliasInput(t *testing.T) {
	p := Default()
	p.Subjects = []string{"Art"}
	got := SetName("Ada").Apply(p)
	got.Subjects[0] = "Music"
	assert.Equal(t, "Art", p.Subjects[0], "Apply must not share slices with its input")
}

func TestPatch_DedupOnApply(t *testing.T) {
	got := SetInterests([]string{"Art", "Art", "Music", "Art"}).Apply(Default())
	assert.Equal(t, []string{"Art", "Music"}, got.Interests)
}

func TestPatch_JSON(t *testing.T) {
	var patch Patch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Ada","subjects":[]}`), &patch))

	p := Default()
	p.Subjects = []string{"Art"}
	p.Interests = []string{"Music"}

	got := patch.Apply(p)
	assert.Equal(t, "Ada", got.Name)
	assert.Empty(t, got.Subjects, "explicit [] should clear subjects")
	assert.Equal(t, []string{"Music"}, got.Interests, "absent interests should be kept")
}

func TestPatch_Validate(t *testing.T) {
	bad := SetPreferences(Preferences{Environment: "indoor", WorkStyle: "remote", Pace: "fast"})
	assert.ErrorIs(t, bad.Validate(), ErrInvalidPreference)

	good := SetPreferences(Preferences{Environment: "outdoor", WorkStyle: "team", Pace: "steady"})
	assert.NoError(t, good.Validate())
}

func TestPatch_Empty(t *testing.T) {
	assert.True(t, (Patch{}).Empty())
	assert.False(t, SetSubjects(nil).Empty(), "clearing subjects is a change")
}

func TestParseList(t *testing.T) {
	l, err := ParseList(" Technical ")
	require.NoError(t, err)
	assert.Equal(t, ListTechnical, l)

	_, err = ParseList("hobbies")
	assert.Error(t, err)
}

func TestFormatForPrompt(t *testing.T) {
	p := Default()
	p.Name = "Ada"
	p.Age = "29"
	p.Location = "London"
	p.Education = "bachelor"
	p.Subjects = []string{"Mathematics", "Physics"}
	p.Skills.Technical = []string{"Programming"}
	p.Preferences = Preferences{EnvironmentIndoor, WorkStyleTeam, PaceFast}

	got := FormatForPrompt(p)
	for _, want := range []string{
		"Name: Ada",
		"Age: 29",
		"Location: London",
		"Education: bachelor",
		"Subjects: Mathematics, Physics",
		"Technical Skills: Programming",
		"Soft Skills: ",
		"Preferences: indoor, team, fast",
	} {
		assert.Contains(t, got, want)
	}
	assert.Equal(t, got, FormatForPrompt(p), "FormatForPrompt must be deterministic")
}

func TestEducationVocabulary(t *testing.T) {
	assert.True(t, IsKnownEducation("phd"))
	assert.False(t, IsKnownEducation("bootcamp"))

	opts := Options()
	opts.Education[0] = "changed"
	assert.Equal(t, "high-school", EducationLevels[0], "Options must return a copy")
}
