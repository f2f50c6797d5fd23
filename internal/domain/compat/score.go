package compat

import "fmt"

const (
	skillWeight = 0.6
	roleWeight  = 0.4

	teamFitReadyBonus   = 0.05
	candidateReadyBonus = 0.1
)

// Preferences carries the caller's explicit wishes. Empty slices mean "no
// preference" and trigger the neutral-score branches.
type Preferences struct {
	Skills []string
	Roles  []string
}

// Result is one scored pairing: a clamped score plus ordered, advisory
// reason strings.
type Result struct {
	Score   float64
	Reasons []string
}

// ScoreTeamFit estimates how useful a candidate user would be to a team.
// Needed skills are the caller's preferred skills when supplied, otherwise
// the skills the user would uniquely add to the team.
func ScoreTeamFit(user Candidate, team TeamProfile, prefs Preferences) Result {
	up := ProfileOf(user)

	var needed SkillSet
	if len(prefs.Skills) > 0 {
		needed = NewSkillSet(prefs.Skills...)
	} else {
		needed = up.Skills.Diff(team.Skills)
	}

	skillCov := SkillCoverage(up.Skills, needed)

	prefRoles := NewSkillSet(prefs.Roles...)
	rolePart := 0.3
	roleReason := ""
	switch {
	case len(prefRoles) > 0 && RoleMatch(up.Role, prefRoles) == 1.0:
		rolePart = 1.0
		roleReason = fmt.Sprintf("role %s matches the requested roles", up.Role)
	case up.Role != "" && !teamHasRole(team, up.Role):
		rolePart = 1.0
		roleReason = fmt.Sprintf("fills the team's missing %s role", up.Role)
	}

	reasons := make([]string, 0, 3)
	if matched := countMatched(up.Skills, needed); matched > 0 {
		reasons = append(reasons, fmt.Sprintf("covers %d of %d needed skills", matched, len(needed)))
	}
	if roleReason != "" {
		reasons = append(reasons, roleReason)
	}

	score := skillWeight*skillCov + roleWeight*rolePart
	if user.Ready {
		score += teamFitReadyBonus
		reasons = append(reasons, "actively looking for a team")
	}

	return Result{Score: clamp01(score), Reasons: reasons}
}

// ScoreCandidate estimates how well a candidate satisfies an explicit
// requirement set, used when a captain asks for people. Without preferences
// the candidate gets flat credit for having any skills or any role at all.
func ScoreCandidate(cand Candidate, prefs Preferences) Result {
	cp := ProfileOf(cand)
	reasons := make([]string, 0, 3)

	var skillPart float64
	if len(prefs.Skills) > 0 {
		needed := NewSkillSet(prefs.Skills...)
		skillPart = skillWeight * SkillCoverage(cp.Skills, needed)
		if matched := countMatched(cp.Skills, needed); matched > 0 {
			reasons = append(reasons, fmt.Sprintf("has %d of %d preferred skills", matched, len(needed)))
		}
	} else if len(cp.Skills) > 0 {
		skillPart = 0.3
		reasons = append(reasons, fmt.Sprintf("brings %d skills", len(cp.Skills)))
	}

	var rolePart float64
	if len(prefs.Roles) > 0 {
		if NewSkillSet(prefs.Roles...).Has(cp.Role) {
			rolePart = roleWeight
			reasons = append(reasons, fmt.Sprintf("matches preferred role %s", cp.Role))
		}
	} else if cp.Role != "" {
		rolePart = 0.2
		reasons = append(reasons, fmt.Sprintf("brings the %s role", cp.Role))
	}

	score := skillPart + rolePart
	if cand.Ready {
		score += candidateReadyBonus
		reasons = append(reasons, "ready to join a team")
	}

	return Result{Score: clamp01(score), Reasons: reasons}
}

func teamHasRole(team TeamProfile, role string) bool {
	_, ok := team.Roles[fold(role)]
	return ok
}

func countMatched(have, need SkillSet) int {
	matched := 0
	for n := range need {
		if _, ok := have[n]; ok {
			matched++
		}
	}
	return matched
}
