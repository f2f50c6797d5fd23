package request

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeJoin   = "join"
	TypeInvite = "invite"

	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// TeamRequest is a join request (user asks the team) or an invite (captain
// asks the user). Type decides who may accept it.
type TeamRequest struct {
	ID          uuid.UUID
	TeamID      uuid.UUID
	UserID      uuid.UUID
	InitiatorID uuid.UUID
	Type        string
	Status      string
	Message     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r TeamRequest) IsPending() bool { return r.Status == StatusPending }
