package compat

import "testing"

func TestSkillCoverage(t *testing.T) {
	cases := []struct {
		name string
		have SkillSet
		need SkillSet
		want float64
	}{
		{"full coverage", NewSkillSet("go", "sql"), NewSkillSet("go", "sql"), 1.0},
		{"half coverage", NewSkillSet("go"), NewSkillSet("go", "sql"), 0.5},
		{"no coverage", NewSkillSet("figma"), NewSkillSet("go", "sql"), 0.0},
		{"empty need empty have", NewSkillSet(), NewSkillSet(), 1.0},
		{"empty need non-empty have", NewSkillSet("go"), NewSkillSet(), 0.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SkillCoverage(tc.have, tc.need)
			if got != tc.want {
				t.Fatalf("SkillCoverage = %v, want %v", got, tc.want)
			}
			if got < 0 || got > 1 {
				t.Fatalf("SkillCoverage out of [0,1]: %v", got)
			}
		})
	}
}

func TestRoleMatch_OnlyFourValues(t *testing.T) {
	cases := []struct {
		name   string
		role   string
		needed SkillSet
		want   float64
	}{
		{"requested role", "backend", NewSkillSet("backend", "pm"), 1.0},
		{"case-insensitive", "Backend", NewSkillSet("backend"), 1.0},
		{"present but not requested", "design", NewSkillSet("backend"), 0.3},
		{"absent with roles required", "", NewSkillSet("backend"), 0.0},
		{"no roles requested", "backend", NewSkillSet(), 0.5},
		{"no role and no request", "", NewSkillSet(), 0.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RoleMatch(tc.role, tc.needed)
			if got != tc.want {
				t.Fatalf("RoleMatch = %v, want %v", got, tc.want)
			}
			switch got {
			case 0.0, 0.3, 0.5, 1.0:
			default:
				t.Fatalf("RoleMatch returned a value outside its codomain: %v", got)
			}
		})
	}
}
