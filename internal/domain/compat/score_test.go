package compat

import (
	"math"
	"testing"
)

func approx(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("score = %v, want %v", got, want)
	}
}

func TestScoreTeamFit_UserFillsEveryGap(t *testing.T) {
	// Team has no backend member and lacks both of the user's skills.
	user := Candidate{Skills: SkillNames{"python", "sql"}, Role: "backend"}
	team := TeamProfileOf([]Candidate{
		{Skills: SkillNames{"figma"}, Role: "design"},
	})

	res := ScoreTeamFit(user, team, Preferences{})
	approx(t, res.Score, 1.0)
	if len(res.Reasons) != 2 {
		t.Fatalf("expected skill and role reasons, got %v", res.Reasons)
	}
}

func TestScoreTeamFit_ReadyBonusClampsAtOne(t *testing.T) {
	user := Candidate{Skills: SkillNames{"python"}, Role: "backend", Ready: true}
	team := TeamProfileOf(nil)

	res := ScoreTeamFit(user, team, Preferences{})
	approx(t, res.Score, 1.0)
	if res.Score > 1.0 {
		t.Fatalf("score not clamped: %v", res.Score)
	}
}

func TestScoreTeamFit_EmptyUserEmptyTeamIsNeutral(t *testing.T) {
	// skill_coverage(empty, empty) = 1.0; no role falls to the 0.3 branch.
	res := ScoreTeamFit(Candidate{}, TeamProfileOf(nil), Preferences{})
	approx(t, res.Score, 0.6*1.0+0.4*0.3)
	if len(res.Reasons) != 0 {
		t.Fatalf("expected no reasons, got %v", res.Reasons)
	}
}

func TestScoreTeamFit_UserAddsNothing(t *testing.T) {
	// All of the user's skills are already on the team: needed set is empty
	// while the user still has skills, so coverage is the 0.5 neutral.
	user := Candidate{Skills: SkillNames{"go"}}
	team := TeamProfileOf([]Candidate{{Skills: SkillNames{"go"}, Role: "backend"}})

	res := ScoreTeamFit(user, team, Preferences{})
	approx(t, res.Score, 0.6*0.5+0.4*0.3)
}

func TestScoreTeamFit_PreferredSkillsOverrideDiff(t *testing.T) {
	user := Candidate{Skills: SkillNames{"go", "sql"}}
	team := TeamProfileOf([]Candidate{{Skills: SkillNames{"go", "sql"}}})

	res := ScoreTeamFit(user, team, Preferences{Skills: []string{"go", "docker"}})
	approx(t, res.Score, 0.6*0.5+0.4*0.3)
	if len(res.Reasons) == 0 {
		t.Fatalf("expected a skill reason for the matched preferred skill")
	}
}

func TestScoreTeamFit_RequestedRoleWins(t *testing.T) {
	// Team already has a backend member, but the caller asked for one.
	user := Candidate{Role: "Backend"}
	team := TeamProfileOf([]Candidate{{Role: "backend"}})

	res := ScoreTeamFit(user, team, Preferences{Roles: []string{"backend"}})
	// needed = diff = empty, user has no skills -> coverage 1.0
	approx(t, res.Score, 0.6*1.0+0.4*1.0)
}

func TestScoreTeamFit_DuplicateRoleGetsPartialCredit(t *testing.T) {
	user := Candidate{Role: "backend"}
	team := TeamProfileOf([]Candidate{{Role: "backend"}})

	res := ScoreTeamFit(user, team, Preferences{})
	approx(t, res.Score, 0.6*1.0+0.4*0.3)
}

func TestScoreCandidate_PreferredSkillCoverage(t *testing.T) {
	cand := Candidate{Skills: SkillNames{"go", "sql"}}
	res := ScoreCandidate(cand, Preferences{Skills: []string{"go", "sql", "docker", "k8s"}})
	approx(t, res.Score, 0.6*0.5)
}

func TestScoreCandidate_FlatCreditsWithoutPreferences(t *testing.T) {
	res := ScoreCandidate(Candidate{Skills: SkillNames{"go"}, Role: "backend"}, Preferences{})
	approx(t, res.Score, 0.3+0.2)
	if len(res.Reasons) != 2 {
		t.Fatalf("expected skill and role reasons, got %v", res.Reasons)
	}

	res = ScoreCandidate(Candidate{}, Preferences{})
	approx(t, res.Score, 0)
	if len(res.Reasons) != 0 {
		t.Fatalf("expected no reasons for an empty candidate, got %v", res.Reasons)
	}
}

func TestScoreCandidate_RolePreferenceIsAllOrNothing(t *testing.T) {
	prefs := Preferences{Roles: []string{"backend"}}

	res := ScoreCandidate(Candidate{Role: "backend"}, prefs)
	approx(t, res.Score, 0.4)

	res = ScoreCandidate(Candidate{Role: "design"}, prefs)
	approx(t, res.Score, 0)
}

func TestScoreCandidate_ReadyBonusClamps(t *testing.T) {
	cand := Candidate{Skills: SkillNames{"go"}, Role: "backend", Ready: true}
	res := ScoreCandidate(cand, Preferences{Skills: []string{"go"}, Roles: []string{"backend"}})
	// 0.6 + 0.4 + 0.1 clamps to 1.0
	approx(t, res.Score, 1.0)
}

func TestScores_AlwaysInRange(t *testing.T) {
	candidates := []Candidate{
		{},
		{Skills: SkillNames{"go", "sql", "docker"}, Role: "backend", Ready: true},
		{Skills: failingSkills{}, Role: "pm", Ready: true},
	}
	prefSets := []Preferences{
		{},
		{Skills: []string{"go"}, Roles: []string{"backend"}},
		{Skills: []string{"rust", "haskell"}},
	}
	team := TeamProfileOf([]Candidate{{Skills: SkillNames{"go"}, Role: "backend"}})

	for _, c := range candidates {
		for _, p := range prefSets {
			if s := ScoreTeamFit(c, team, p).Score; s < 0 || s > 1 {
				t.Fatalf("ScoreTeamFit out of range: %v", s)
			}
			if s := ScoreCandidate(c, p).Score; s < 0 || s > 1 {
				t.Fatalf("ScoreCandidate out of range: %v", s)
			}
		}
	}
}
