package team

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID                uuid.UUID
	Name              string
	Description       string
	HackathonID       uuid.UUID
	CaptainID         uuid.UUID
	LookingForMembers bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
