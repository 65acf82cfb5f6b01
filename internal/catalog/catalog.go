// Package catalog is the offline recommender used when no completion service
// is configured. It scores a fixed set of careers against the profile.
package catalog

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/kalambet/careercompass/internal/career"
	"github.com/kalambet/careercompass/internal/notify"
	"github.com/kalambet/careercompass/internal/profile"
)

// MaxResults caps Recommend's output.
const MaxResults = 5

// StudyAgeLimit is the age below which study opportunities are shown instead
// of jobs.
const StudyAgeLimit = 25

var scoredInterests = []string{"Technology", "Science", "Art", "Business"}

// Matches reports whether p falls into category c.
func Matches(c Category, p profile.Profile) bool {
	switch c {
	case Tech:
		return len(p.Skills.Technical) > 0 ||
			slices.Contains(p.Subjects, "Computer Science") ||
			slices.Contains(p.Interests, "Technology")
	case Arts:
		return slices.Contains(p.Skills.Soft, "Creativity") ||
			slices.Contains(p.Interests, "Art") ||
			slices.Contains(p.Subjects, "Literature")
	case Science:
		return slices.Contains(p.Subjects, "Biology") ||
			slices.Contains(p.Subjects, "Chemistry") ||
			slices.Contains(p.Interests, "Science")
	case Business:
		return slices.Contains(p.Skills.Soft, "Leadership") ||
			slices.Contains(p.Interests, "Business") ||
			slices.Contains(p.Subjects, "Economics")
	}
	return false
}

// Score is the profile's match score. It depends on the profile only, so all
// candidates of one request share it.
func Score(p profile.Profile) int {
	score := 0
	if slices.ContainsFunc(p.Interests, func(s string) bool { return slices.Contains(scoredInterests, s) }) {
		score += 20
	}
	score += 5 * len(p.Skills.Technical)
	score += 3 * len(p.Skills.Soft)
	score += 4 * len(p.Subjects)
	return score
}

// Recommend returns up to MaxResults catalog careers for p, ordered by score.
// Without any matching category it falls back to the first two careers of
// every category.
func Recommend(p profile.Profile) []career.Suggestion {
	all := careers()

	var picked []career.Suggestion
	for _, c := range categories {
		if Matches(c, p) {
			picked = append(picked, all[c]...)
		}
	}
	if len(picked) == 0 {
		for _, c := range categories {
			picked = append(picked, all[c][:2]...)
		}
	}

	score := Score(p)
	for i := range picked {
		picked[i].MatchScore = score
	}
	slices.SortStableFunc(picked, func(a, b career.Suggestion) int {
		return b.MatchScore - a.MatchScore
	})
	if len(picked) > MaxResults {
		picked = picked[:MaxResults]
	}
	return picked
}

// FilterOpportunities keeps the opportunities near p's location that suit
// p's stage: study below StudyAgeLimit, jobs otherwise. An empty location
// matches everywhere. The input is not modified.
func FilterOpportunities(careers []career.Suggestion, p profile.Profile) []career.Suggestion {
	want := career.Job
	if age, ok := leadingInt(p.Age); ok && age < StudyAgeLimit {
		want = career.Study
	}
	loc := strings.ToLower(p.Location)

	out := make([]career.Suggestion, len(careers))
	for i, c := range careers {
		kept := make([]career.Opportunity, 0, len(c.Opportunities))
		for _, o := range c.Opportunities {
			if o.Kind != want {
				continue
			}
			if loc != "" && !strings.Contains(strings.ToLower(o.Location), loc) {
				continue
			}
			kept = append(kept, o)
		}
		c.Opportunities = kept
		out[i] = c
	}
	return out
}

// leadingInt parses the integer prefix of s, so "24 years" reads as 24.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Advisor serves recommendations from the catalog. It has the same method set
// the HTTP layer uses on the online gateway.
type Advisor struct{}

// CareerSuggestions returns Recommend(p) with opportunities filtered for p.
func (Advisor) CareerSuggestions(ctx context.Context, p profile.Profile) []career.Suggestion {
	out := FilterOpportunities(Recommend(p), p)
	notify.FromContext(ctx).Notify(notify.Notification{
		Kind:        notify.KindInfo,
		Title:       "Showing catalog recommendations",
		Description: "Configure a completion API key for personalised AI recommendations.",
		Variant:     notify.VariantDefault,
	})
	return out
}

// SkillGap has nothing to compare against offline and returns an empty
// result.
func (Advisor) SkillGap(ctx context.Context, p profile.Profile, careerTitle string) career.SkillGap {
	notify.FromContext(ctx).Notify(notify.Notification{
		Kind:        notify.KindInfo,
		Title:       "Skill gap analysis unavailable",
		Description: "Configure a completion API key to analyze skill gaps.",
		Variant:     notify.VariantDefault,
	})
	return career.EmptySkillGap()
}
