package usecase

import (
	"context"
	"errors"

	"hackmatch/internal/domain/compat"
	"hackmatch/internal/domain/team"
	"hackmatch/internal/domain/user"
	"hackmatch/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidDirection = errors.New("invalid recommendation direction")
	ErrNotTeamCaptain   = errors.New("user must be a team captain to get user recommendations")
)

type Direction string

const (
	DirectionForTeam Direction = "team"
	DirectionForUser Direction = "user"
)

const maxRecommendationResults = 50

type RecommendationParams struct {
	Direction       Direction
	HackathonID     uuid.UUID
	PreferredSkills []string
	PreferredRoles  []string
	ExcludeTeamIDs  []uuid.UUID
	ExcludeUserIDs  []uuid.UUID
	MinScore        float64
	MaxResults      int
}

// RecommendationItem targets a user or a team, never both.
type RecommendationItem struct {
	User    *user.User
	Team    *team.Team
	Score   float64
	Reasons []string
}

type RecommendationResult struct {
	Items      []RecommendationItem
	TotalFound int
}

type RecommendationUsecase interface {
	GetRecommendations(ctx context.Context, requesterID uuid.UUID, params RecommendationParams) (RecommendationResult, error)
}

type Recommendation struct {
	users repository.UserRepository
	teams repository.TeamRepository
}

func NewRecommendationUsecase(users repository.UserRepository, teams repository.TeamRepository) *Recommendation {
	return &Recommendation{users: users, teams: teams}
}

func (u *Recommendation) GetRecommendations(ctx context.Context, requesterID uuid.UUID, params RecommendationParams) (RecommendationResult, error) {
	if requesterID == uuid.Nil {
		return RecommendationResult{}, ErrUnauthorized
	}
	if params.Direction != DirectionForTeam && params.Direction != DirectionForUser {
		return RecommendationResult{}, ErrInvalidDirection
	}

	minScore := params.MinScore
	if minScore <= 0 {
		minScore = compat.DefaultMinScore
	}
	maxResults := params.MaxResults
	if maxResults <= 0 {
		maxResults = compat.DefaultMaxResults
	}
	if maxResults > maxRecommendationResults {
		maxResults = maxRecommendationResults
	}

	requester, err := u.users.GetByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return RecommendationResult{}, ErrUnauthorized
		}
		return RecommendationResult{}, ErrInternal
	}

	prefs := compat.Preferences{Skills: params.PreferredSkills, Roles: params.PreferredRoles}

	switch params.Direction {
	case DirectionForTeam:
		return u.recommendTeams(ctx, requester, params, prefs, minScore, maxResults)
	default:
		return u.recommendUsers(ctx, requester, params, prefs, minScore, maxResults)
	}
}

func (u *Recommendation) recommendTeams(ctx context.Context, requester user.User, params RecommendationParams, prefs compat.Preferences, minScore float64, maxResults int) (RecommendationResult, error) {
	pool, err := u.teams.ListCandidates(ctx, repository.CandidateTeamFilter{
		HackathonID:    params.HackathonID,
		RequesterID:    requester.ID,
		ExcludeTeamIDs: params.ExcludeTeamIDs,
	})
	if err != nil {
		return RecommendationResult{}, ErrInternal
	}

	requesterCand := u.candidateOf(ctx, requester)

	scored := make([]compat.Recommendation, 0, len(pool))
	byID := make(map[uuid.UUID]team.Team, len(pool))
	for _, t := range pool {
		members, err := u.teams.MembersByTeamID(ctx, t.ID)
		if err != nil {
			// one unreadable team must not abort the whole batch
			continue
		}
		memberCands := make([]compat.Candidate, 0, len(members))
		for _, m := range members {
			memberCands = append(memberCands, u.candidateOf(ctx, m))
		}

		res := compat.ScoreTeamFit(requesterCand, compat.TeamProfileOf(memberCands), prefs)
		scored = append(scored, compat.TeamRecommendation(t.ID, res))
		byID[t.ID] = t
	}

	ranked, total := compat.Rank(scored, minScore, maxResults)

	items := make([]RecommendationItem, 0, len(ranked))
	for _, rec := range ranked {
		t := byID[rec.TargetTeamID]
		items = append(items, RecommendationItem{Team: &t, Score: rec.Score, Reasons: rec.Reasons})
	}
	return RecommendationResult{Items: items, TotalFound: total}, nil
}

func (u *Recommendation) recommendUsers(ctx context.Context, requester user.User, params RecommendationParams, prefs compat.Preferences, minScore float64, maxResults int) (RecommendationResult, error) {
	captainTeam, err := u.teams.GetByCaptain(ctx, requester.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNoTeam) {
			return RecommendationResult{}, ErrNotTeamCaptain
		}
		return RecommendationResult{}, ErrInternal
	}

	pool, err := u.users.ListSeeking(ctx, repository.SeekingFilter{
		ExcludeTeamID:  &captainTeam.ID,
		ExcludeUserIDs: params.ExcludeUserIDs,
		RequesterID:    requester.ID,
	})
	if err != nil {
		return RecommendationResult{}, ErrInternal
	}

	scored := make([]compat.Recommendation, 0, len(pool))
	byID := make(map[uuid.UUID]user.User, len(pool))
	for _, cand := range pool {
		res := compat.ScoreCandidate(u.candidateOf(ctx, cand), prefs)
		scored = append(scored, compat.UserRecommendation(cand.ID, res))
		byID[cand.ID] = cand
	}

	ranked, total := compat.Rank(scored, minScore, maxResults)

	items := make([]RecommendationItem, 0, len(ranked))
	for _, rec := range ranked {
		usr := byID[rec.TargetUserID]
		items = append(items, RecommendationItem{User: &usr, Score: rec.Score, Reasons: rec.Reasons})
	}
	return RecommendationResult{Items: items, TotalFound: total}, nil
}

// candidateOf wires the lazy skill lookup into the scorer. A failing lookup
// reads as an empty skill set, per the scorer's contract.
func (u *Recommendation) candidateOf(ctx context.Context, usr user.User) compat.Candidate {
	userID := usr.ID
	return compat.Candidate{
		Skills: skillProviderFunc(func() ([]string, error) {
			return u.users.SkillNamesByUserID(ctx, userID)
		}),
		Role:  usr.MainRole,
		Ready: usr.ReadyToTeam,
	}
}

type skillProviderFunc func() ([]string, error)

func (f skillProviderFunc) SkillNames() ([]string, error) { return f() }
