package dto

import (
	"time"

	"hackmatch/internal/domain/user"
	"hackmatch/internal/repository"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	TgID        *int64     `json:"tg_id,omitempty"`
	Username    string     `json:"username"`
	Email       string     `json:"email,omitempty"`
	FullName    string     `json:"full_name"`
	MainRole    string     `json:"main_role"`
	ReadyToTeam bool       `json:"ready_to_team"`
	TeamID      *uuid.UUID `json:"team_id,omitempty"`
	Skills      []string   `json:"skills,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func FromUser(u user.User, skills []string) UserResponse {
	return UserResponse{
		ID:          u.ID,
		TgID:        u.TgID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		MainRole:    u.MainRole,
		ReadyToTeam: u.ReadyToTeam,
		TeamID:      u.TeamID,
		Skills:      skills,
		CreatedAt:   u.CreatedAt,
	}
}

func FromUsers(users []user.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u, nil))
	}
	return out
}

type SkillResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func FromSkills(skills []repository.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, SkillResponse{ID: s.ID, Name: s.Name})
	}
	return out
}
