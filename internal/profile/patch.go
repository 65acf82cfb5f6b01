package profile

// Patch is a partial profile update. Nil fields are left untouched. The merge
// is shallow: a non-nil Skills or Preferences replaces the whole nested object.
type Patch struct {
	Name        *string      `json:"name,omitempty"`
	Age         *string      `json:"age,omitempty"`
	Location    *string      `json:"location,omitempty"`
	Education   *string      `json:"education,omitempty"`
	Subjects    []string     `json:"subjects"`
	Interests   []string     `json:"interests"`
	Skills      *Skills      `json:"skills,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

// Validate checks enum-typed fields carried by the patch.
func (pt Patch) Validate() error {
	if pt.Preferences != nil {
		return pt.Preferences.Validate()
	}
	return nil
}

// Empty reports whether the patch changes nothing.
func (pt Patch) Empty() bool {
	return pt.Name == nil && pt.Age == nil && pt.Location == nil && pt.Education == nil &&
		!pt.hasSubjects() && !pt.hasInterests() && pt.Skills == nil && pt.Preferences == nil
}

// A non-nil empty slice clears a sequence; JSON "[]" decodes to one, "null"
// and absence do not.
func (pt Patch) hasSubjects() bool  { return pt.Subjects != nil }
func (pt Patch) hasInterests() bool { return pt.Interests != nil }

// Apply returns p with the patch merged in. Sequences are deduplicated so the
// set invariant holds whatever the caller sent.
func (pt Patch) Apply(p Profile) Profile {
	out := p.Clone()
	if pt.Name != nil {
		out.Name = *pt.Name
	}
	if pt.Age != nil {
		out.Age = *pt.Age
	}
	if pt.Location != nil {
		out.Location = *pt.Location
	}
	if pt.Education != nil {
		out.Education = *pt.Education
	}
	if pt.hasSubjects() {
		out.Subjects = dedupe(pt.Subjects)
	}
	if pt.hasInterests() {
		out.Interests = dedupe(pt.Interests)
	}
	if pt.Skills != nil {
		out.Skills = Skills{
			Technical: dedupe(pt.Skills.Technical),
			Soft:      dedupe(pt.Skills.Soft),
		}
	}
	if pt.Preferences != nil {
		out.Preferences = *pt.Preferences
	}
	return out
}

// SetName and friends build single-field patches.
func SetName(v string) Patch      { return Patch{Name: &v} }
func SetAge(v string) Patch       { return Patch{Age: &v} }
func SetLocation(v string) Patch  { return Patch{Location: &v} }
func SetEducation(v string) Patch { return Patch{Education: &v} }

// SetSubjects replaces the subject list; an empty slice clears it.
func SetSubjects(v []string) Patch {
	return Patch{Subjects: cloneStrings(v)}
}

// SetInterests replaces the interest list; an empty slice clears it.
func SetInterests(v []string) Patch {
	return Patch{Interests: cloneStrings(v)}
}

func SetSkills(v Skills) Patch           { return Patch{Skills: &v} }
func SetPreferences(v Preferences) Patch { return Patch{Preferences: &v} }

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
