package profile

import (
	"fmt"
	"slices"
	"strings"
)

// List names one of the set-valued profile fields.
type List string

const (
	ListSubjects  List = "subjects"
	ListInterests List = "interests"
	ListTechnical List = "technical"
	ListSoft      List = "soft"
)

// ParseList maps a user-supplied list name to a List.
func ParseList(s string) (List, error) {
	switch l := List(strings.ToLower(strings.TrimSpace(s))); l {
	case ListSubjects, ListInterests, ListTechnical, ListSoft:
		return l, nil
	}
	return "", fmt.Errorf("unknown list %q (want subjects, interests, technical or soft)", s)
}

// Values returns the current contents of list l.
func (p Profile) Values(l List) []string {
	switch l {
	case ListSubjects:
		return p.Subjects
	case ListInterests:
		return p.Interests
	case ListTechnical:
		return p.Skills.Technical
	case ListSoft:
		return p.Skills.Soft
	}
	return nil
}

// Add returns the patch that inserts value into list l. The second result is
// false when there is nothing to do: blank input or a value already present.
func Add(p Profile, l List, value string) (Patch, bool) {
	value = strings.TrimSpace(value)
	current := p.Values(l)
	if value == "" || slices.Contains(current, value) {
		return Patch{}, false
	}
	next := append(cloneStrings(current), value)
	return listPatch(p, l, next), true
}

// Remove returns the patch that drops value from list l. The second result is
// false when the value is not present.
func Remove(p Profile, l List, value string) (Patch, bool) {
	current := p.Values(l)
	if !slices.Contains(current, value) {
		return Patch{}, false
	}
	next := make([]string, 0, len(current))
	for _, v := range current {
		if v != value {
			next = append(next, v)
		}
	}
	return listPatch(p, l, next), true
}

// Toggle adds value when absent and removes it when present. Interests are
// edited this way in the questionnaire.
func Toggle(p Profile, l List, value string) (Patch, bool) {
	if slices.Contains(p.Values(l), value) {
		return Remove(p, l, value)
	}
	return Add(p, l, value)
}

// listPatch builds the patch for a changed list. Skills travel as the whole
// nested object since the merge is shallow.
func listPatch(p Profile, l List, next []string) Patch {
	switch l {
	case ListSubjects:
		return SetSubjects(next)
	case ListInterests:
		return SetInterests(next)
	case ListTechnical:
		return SetSkills(Skills{Technical: next, Soft: cloneStrings(p.Skills.Soft)})
	case ListSoft:
		return SetSkills(Skills{Technical: cloneStrings(p.Skills.Technical), Soft: next})
	}
	return Patch{}
}
