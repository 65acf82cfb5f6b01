package profile

import "slices"

// EducationLevels is the vocabulary offered by the education step. Education
// stays free-form; values outside this list are accepted.
var EducationLevels = []string{"high-school", "associate", "bachelor", "master", "phd", "other"}

// IsKnownEducation reports whether v is one of EducationLevels.
func IsKnownEducation(v string) bool {
	return slices.Contains(EducationLevels, v)
}

// OptionSet holds the predefined choices each question step offers.
type OptionSet struct {
	Education       []string `json:"education"`
	Subjects        []string `json:"subjects"`
	Interests       []string `json:"interests"`
	TechnicalSkills []string `json:"technicalSkills"`
	SoftSkills      []string `json:"softSkills"`
}

// Options returns a fresh copy of the predefined choices.
func Options() OptionSet {
	return OptionSet{
		Education: cloneStrings(EducationLevels),
		Subjects: []string{
			"Mathematics", "Computer Science", "Biology", "Chemistry", "Physics",
			"Literature", "History", "Geography", "Art", "Music", "Economics",
			"Psychology", "Sociology", "Political Science", "Philosophy", "Engineering",
		},
		Interests: []string{
			"Technology", "Science", "Art", "Writing", "Reading", "Music", "Sports",
			"Travel", "Cooking", "Gaming", "Photography", "Nature", "Volunteering",
			"Business", "Teaching", "Healthcare", "Design", "Fashion",
		},
		TechnicalSkills: []string{
			"Programming", "Data Analysis", "Graphic Design", "Web Development",
			"Digital Marketing", "Project Management", "Research", "Financial Analysis",
			"Content Creation", "Video Editing", "SEO", "Database Management",
			"Mobile Development", "UI/UX Design", "Systems Administration",
		},
		SoftSkills: []string{
			"Communication", "Leadership", "Teamwork", "Problem Solving", "Critical Thinking",
			"Time Management", "Adaptability", "Creativity", "Emotional Intelligence",
			"Attention to Detail", "Organization", "Decision Making", "Negotiation",
			"Conflict Resolution", "Customer Service",
		},
	}
}
