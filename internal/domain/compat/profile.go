package compat

import "strings"

// SkillProvider exposes the skill names attached to a user record. Reads can
// fail when the underlying relation is only partially loaded; the profile
// builders treat any failure as an empty skill list.
type SkillProvider interface {
	SkillNames() ([]string, error)
}

// SkillNames is a ready-made SkillProvider for callers that already hold the
// names in memory.
type SkillNames []string

func (s SkillNames) SkillNames() ([]string, error) { return s, nil }

// SkillSet is a case-folded, deduplicated set of skill names.
type SkillSet map[string]struct{}

func NewSkillSet(names ...string) SkillSet {
	s := make(SkillSet, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

func (s SkillSet) Add(name string) {
	name = fold(name)
	if name == "" {
		return
	}
	s[name] = struct{}{}
}

func (s SkillSet) Has(name string) bool {
	_, ok := s[fold(name)]
	return ok
}

// Diff returns the entries of s that are not present in other.
func (s SkillSet) Diff(other SkillSet) SkillSet {
	out := make(SkillSet)
	for n := range s {
		if _, ok := other[n]; !ok {
			out[n] = struct{}{}
		}
	}
	return out
}

// Candidate is the point-in-time view of one user that the scorer consumes.
// Skills may be nil and Role may be empty; both degrade to neutral branches
// instead of errors.
type Candidate struct {
	Skills SkillProvider
	Role   string
	Ready  bool
}

// Profile is the normalized form of a Candidate.
type Profile struct {
	Skills SkillSet
	Role   string
}

// TeamProfile aggregates the normalized skills and roles present across a
// team's members.
type TeamProfile struct {
	Skills SkillSet
	Roles  SkillSet
}

// ProfileOf normalizes a candidate. A nil or failing skill provider yields an
// empty set; extraction never returns an error.
func ProfileOf(c Candidate) Profile {
	p := Profile{Skills: make(SkillSet), Role: fold(c.Role)}
	if c.Skills == nil {
		return p
	}
	names, err := c.Skills.SkillNames()
	if err != nil {
		return p
	}
	for _, n := range names {
		p.Skills.Add(n)
	}
	return p
}

// TeamProfileOf unions member skills and roles. A single corrupt member
// contributes nothing instead of aborting the aggregation.
func TeamProfileOf(members []Candidate) TeamProfile {
	tp := TeamProfile{Skills: make(SkillSet), Roles: make(SkillSet)}
	for _, m := range members {
		mp := ProfileOf(m)
		for n := range mp.Skills {
			tp.Skills[n] = struct{}{}
		}
		if mp.Role != "" {
			tp.Roles[mp.Role] = struct{}{}
		}
	}
	return tp
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
