package compat

import (
	"errors"
	"testing"
)

type failingSkills struct{}

func (failingSkills) SkillNames() ([]string, error) { return nil, errors.New("relation not loaded") }

func TestProfileOf_DeduplicatesCaseVariants(t *testing.T) {
	p := ProfileOf(Candidate{Skills: SkillNames{"Python", "python", " PYTHON ", "SQL"}, Role: "Backend"})

	if len(p.Skills) != 2 {
		t.Fatalf("expected 2 skills, got %d: %v", len(p.Skills), p.Skills)
	}
	if !p.Skills.Has("python") || !p.Skills.Has("sql") {
		t.Fatalf("expected folded python and sql, got %v", p.Skills)
	}
	if p.Role != "backend" {
		t.Fatalf("expected folded role backend, got %q", p.Role)
	}
}

func TestProfileOf_SkipsEmptyEntries(t *testing.T) {
	p := ProfileOf(Candidate{Skills: SkillNames{"", "  ", "go"}})
	if len(p.Skills) != 1 {
		t.Fatalf("expected 1 skill, got %d", len(p.Skills))
	}
}

func TestProfileOf_FailingProviderYieldsEmptySet(t *testing.T) {
	p := ProfileOf(Candidate{Skills: failingSkills{}, Role: "pm"})
	if len(p.Skills) != 0 {
		t.Fatalf("expected empty skill set, got %v", p.Skills)
	}
	if p.Role != "pm" {
		t.Fatalf("role should survive a skill read failure, got %q", p.Role)
	}
}

func TestProfileOf_NilProvider(t *testing.T) {
	p := ProfileOf(Candidate{})
	if len(p.Skills) != 0 {
		t.Fatalf("expected empty skill set, got %v", p.Skills)
	}
}

func TestTeamProfileOf_UnionsMembersAndSkipsCorrupt(t *testing.T) {
	tp := TeamProfileOf([]Candidate{
		{Skills: SkillNames{"Go", "SQL"}, Role: "backend"},
		{Skills: failingSkills{}, Role: "Design"},
		{Skills: SkillNames{"sql", "Figma"}},
	})

	for _, want := range []string{"go", "sql", "figma"} {
		if !tp.Skills.Has(want) {
			t.Fatalf("expected team skills to contain %q, got %v", want, tp.Skills)
		}
	}
	if len(tp.Skills) != 3 {
		t.Fatalf("expected 3 skills, got %d", len(tp.Skills))
	}
	if len(tp.Roles) != 2 || !tp.Roles.Has("backend") || !tp.Roles.Has("design") {
		t.Fatalf("expected roles backend and design, got %v", tp.Roles)
	}
}

func TestSkillSetDiff(t *testing.T) {
	a := NewSkillSet("go", "sql", "docker")
	b := NewSkillSet("SQL")

	d := a.Diff(b)
	if len(d) != 2 || !d.Has("go") || !d.Has("docker") {
		t.Fatalf("unexpected diff: %v", d)
	}
}
