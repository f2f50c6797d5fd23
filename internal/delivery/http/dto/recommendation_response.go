package dto

import "hackmatch/internal/usecase"

type RecommendationItemResponse struct {
	User    *UserResponse `json:"user,omitempty"`
	Team    *TeamResponse `json:"team,omitempty"`
	Score   float64       `json:"score"`
	Reasons []string      `json:"reasons"`
}

type RecommendationListResponse struct {
	Items      []RecommendationItemResponse `json:"items"`
	TotalFound int                          `json:"total_found"`
}

func FromRecommendations(res usecase.RecommendationResult) RecommendationListResponse {
	items := make([]RecommendationItemResponse, 0, len(res.Items))
	for _, it := range res.Items {
		item := RecommendationItemResponse{Score: it.Score, Reasons: it.Reasons}
		if it.User != nil {
			u := FromUser(*it.User, nil)
			item.User = &u
		}
		if it.Team != nil {
			t := FromTeam(*it.Team)
			item.Team = &t
		}
		items = append(items, item)
	}
	return RecommendationListResponse{Items: items, TotalFound: res.TotalFound}
}
