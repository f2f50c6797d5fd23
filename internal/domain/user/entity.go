package user

import (
	"time"

	"github.com/google/uuid"
)

// Role labels are a fixed product enumeration, but comparisons elsewhere
// treat them as opaque case-insensitive strings so an unknown label is still
// matchable.
const (
	RoleBackend  = "backend"
	RoleFrontend = "frontend"
	RoleDesign   = "design"
	RolePM       = "pm"
	RoleAnalyst  = "analyst"
)

func KnownRoles() []string {
	return []string{RoleBackend, RoleFrontend, RoleDesign, RolePM, RoleAnalyst}
}

type User struct {
	ID           uuid.UUID
	TgID         *int64
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	MainRole     string
	ReadyToTeam  bool
	TeamID       *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
