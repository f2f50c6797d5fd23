package compat

// SkillCoverage reports the fraction of need present in have. An empty need
// set is neutral: 1.0 when have is also empty, 0.5 otherwise, so an
// unspecified requirement neither rewards nor punishes a candidate.
func SkillCoverage(have, need SkillSet) float64 {
	if len(need) == 0 {
		if len(have) == 0 {
			return 1.0
		}
		return 0.5
	}
	matched := 0
	for n := range need {
		if _, ok := have[n]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(need))
}

// RoleMatch scores a role against a needed-role set. The result is one of
// exactly four values: 1.0 for a requested role, 0.3 for a contributor
// outside the requested specialties, 0.0 for a missing role when roles are
// required, and 0.5 when no roles were requested at all.
func RoleMatch(role string, needed SkillSet) float64 {
	if len(needed) == 0 {
		return 0.5
	}
	role = fold(role)
	if role == "" {
		return 0.0
	}
	if _, ok := needed[role]; ok {
		return 1.0
	}
	return 0.3
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
