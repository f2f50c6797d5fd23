package dto

import (
	"time"

	"hackmatch/internal/domain/request"
	"hackmatch/internal/domain/team"

	"github.com/google/uuid"
)

type TeamResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	HackathonID       uuid.UUID `json:"hackathon_id"`
	CaptainID         uuid.UUID `json:"captain_id"`
	LookingForMembers bool      `json:"looking_for_members"`
	CreatedAt         time.Time `json:"created_at"`
}

func FromTeam(t team.Team) TeamResponse {
	return TeamResponse{
		ID:                t.ID,
		Name:              t.Name,
		Description:       t.Description,
		HackathonID:       t.HackathonID,
		CaptainID:         t.CaptainID,
		LookingForMembers: t.LookingForMembers,
		CreatedAt:         t.CreatedAt,
	}
}

func FromTeams(teams []team.Team) []TeamResponse {
	out := make([]TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, FromTeam(t))
	}
	return out
}

type TeamDetailResponse struct {
	TeamResponse
	Members []UserResponse `json:"members"`
}

type TeamRequestResponse struct {
	ID          uuid.UUID `json:"id"`
	TeamID      uuid.UUID `json:"team_id"`
	UserID      uuid.UUID `json:"user_id"`
	InitiatorID uuid.UUID `json:"initiator_id"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Message     string    `json:"message,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromTeamRequest(rq request.TeamRequest) TeamRequestResponse {
	return TeamRequestResponse{
		ID:          rq.ID,
		TeamID:      rq.TeamID,
		UserID:      rq.UserID,
		InitiatorID: rq.InitiatorID,
		Type:        rq.Type,
		Status:      rq.Status,
		Message:     rq.Message,
		CreatedAt:   rq.CreatedAt,
	}
}

func FromTeamRequests(requests []request.TeamRequest) []TeamRequestResponse {
	out := make([]TeamRequestResponse, 0, len(requests))
	for _, rq := range requests {
		out = append(out, FromTeamRequest(rq))
	}
	return out
}
