package compat

import (
	"sort"

	"github.com/google/uuid"
)

const (
	DefaultMinScore   = 0.3
	DefaultMaxResults = 10
)

// Recommendation is one ranked match. Exactly one of TargetUserID and
// TargetTeamID is set.
type Recommendation struct {
	TargetUserID uuid.UUID
	TargetTeamID uuid.UUID
	Score        float64
	Reasons      []string
}

func UserRecommendation(userID uuid.UUID, res Result) Recommendation {
	return Recommendation{TargetUserID: userID, Score: res.Score, Reasons: res.Reasons}
}

func TeamRecommendation(teamID uuid.UUID, res Result) Recommendation {
	return Recommendation{TargetTeamID: teamID, Score: res.Score, Reasons: res.Reasons}
}

// Rank drops items below minScore, stable-sorts the rest descending by score
// and truncates to maxResults. Ties keep encounter order. The returned count
// is the number of items actually returned after truncation.
func Rank(items []Recommendation, minScore float64, maxResults int) ([]Recommendation, int) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	kept := make([]Recommendation, 0, len(items))
	for _, it := range items {
		if it.Score < minScore {
			continue
		}
		kept = append(kept, it)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})

	if len(kept) > maxResults {
		kept = kept[:maxResults]
	}
	return kept, len(kept)
}
