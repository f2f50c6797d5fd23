package usecase

import (
	"context"
	"errors"
	"strings"

	"hackmatch/internal/domain/request"
	"hackmatch/internal/domain/team"
	"hackmatch/internal/domain/user"
	"hackmatch/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrHackathonNotFound  = errors.New("hackathon not found")
	ErrRequestNotFound    = errors.New("request not found")
	ErrNotCaptain         = errors.New("only the team captain may do this")
	ErrAlreadyInTeam      = errors.New("user already belongs to a team")
	ErrNotInTeam          = errors.New("user is not on a team")
	ErrCaptainCannotLeave = errors.New("captain cannot leave own team")
	ErrTeamNotLooking     = errors.New("team is not looking for members")
	ErrDuplicateRequest   = errors.New("pending request already exists")
	ErrRequestClosed      = errors.New("request already handled")
)

// TeamNotifier pushes team lifecycle events out-of-band (websocket hub).
// Implementations must be safe to call from request handlers.
type TeamNotifier interface {
	RequestCreated(rq request.TeamRequest)
	MemberJoined(teamID, userID uuid.UUID)
}

type CreateTeamInput struct {
	Name              string
	Description       string
	LookingForMembers bool
}

type UpdateTeamInput struct {
	Name              *string
	Description       *string
	LookingForMembers *bool
}

type TeamUsecase interface {
	Create(ctx context.Context, captainID, hackathonID uuid.UUID, in CreateTeamInput) (team.Team, error)
	Get(ctx context.Context, id uuid.UUID) (team.Team, []user.User, error)
	ListByHackathon(ctx context.Context, hackathonID uuid.UUID, limit, offset int) ([]team.Team, error)
	Update(ctx context.Context, callerID, teamID uuid.UUID, in UpdateTeamInput) (team.Team, error)
	Delete(ctx context.Context, callerID, teamID uuid.UUID) error
	RequestJoin(ctx context.Context, callerID, teamID uuid.UUID, message string) (request.TeamRequest, error)
	Invite(ctx context.Context, callerID, teamID, userID uuid.UUID, message string) (request.TeamRequest, error)
	Respond(ctx context.Context, callerID, requestID uuid.UUID, accept bool) (request.TeamRequest, error)
	ListRequests(ctx context.Context, callerID, teamID uuid.UUID) ([]request.TeamRequest, error)
	Leave(ctx context.Context, callerID uuid.UUID) error
}

type Teams struct {
	teams      repository.TeamRepository
	users      repository.UserRepository
	requests   repository.RequestRepository
	hackathons repository.HackathonRepository
	notifier   TeamNotifier
}

func NewTeamUsecase(
	teams repository.TeamRepository,
	users repository.UserRepository,
	requests repository.RequestRepository,
	hackathons repository.HackathonRepository,
	notifier TeamNotifier,
) *Teams {
	return &Teams{teams: teams, users: users, requests: requests, hackathons: hackathons, notifier: notifier}
}

func (u *Teams) Create(ctx context.Context, captainID, hackathonID uuid.UUID, in CreateTeamInput) (team.Team, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return team.Team{}, ErrInvalidInput
	}

	if _, err := u.hackathons.GetByID(ctx, hackathonID); err != nil {
		if errors.Is(err, repository.ErrHackathonNotFound) {
			return team.Team{}, ErrHackathonNotFound
		}
		return team.Team{}, ErrInternal
	}

	captain, err := u.users.GetByID(ctx, captainID)
	if err != nil {
		return team.Team{}, ErrInternal
	}
	if captain.TeamID != nil {
		return team.Team{}, ErrAlreadyInTeam
	}

	t := team.Team{
		ID:                uuid.New(),
		Name:              name,
		Description:       strings.TrimSpace(in.Description),
		HackathonID:       hackathonID,
		CaptainID:         captainID,
		LookingForMembers: in.LookingForMembers,
	}
	if err := u.teams.Create(ctx, t); err != nil {
		return team.Team{}, ErrInternal
	}
	if err := u.users.SetTeam(ctx, captainID, &t.ID); err != nil {
		return team.Team{}, ErrInternal
	}
	return t, nil
}

func (u *Teams) Get(ctx context.Context, id uuid.UUID) (team.Team, []user.User, error) {
	t, err := u.teams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return team.Team{}, nil, ErrTeamNotFound
		}
		return team.Team{}, nil, ErrInternal
	}

	members, err := u.teams.MembersByTeamID(ctx, id)
	if err != nil {
		members = []user.User{}
	}
	for i := range members {
		members[i] = sanitize(members[i])
	}
	return t, members, nil
}

func (u *Teams) ListByHackathon(ctx context.Context, hackathonID uuid.UUID, limit, offset int) ([]team.Team, error) {
	out, err := u.teams.ListByHackathon(ctx, hackathonID, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Teams) Update(ctx context.Context, callerID, teamID uuid.UUID, in UpdateTeamInput) (team.Team, error) {
	t, err := u.captainedTeam(ctx, callerID, teamID)
	if err != nil {
		return team.Team{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return team.Team{}, ErrInvalidInput
		}
		t.Name = name
	}
	if in.Description != nil {
		t.Description = strings.TrimSpace(*in.Description)
	}
	if in.LookingForMembers != nil {
		t.LookingForMembers = *in.LookingForMembers
	}

	if err := u.teams.Update(ctx, t); err != nil {
		return team.Team{}, ErrInternal
	}
	return t, nil
}

func (u *Teams) Delete(ctx context.Context, callerID, teamID uuid.UUID) error {
	if _, err := u.captainedTeam(ctx, callerID, teamID); err != nil {
		return err
	}
	if err := u.teams.Delete(ctx, teamID); err != nil {
		return ErrInternal
	}
	return nil
}

func (u *Teams) RequestJoin(ctx context.Context, callerID, teamID uuid.UUID, message string) (request.TeamRequest, error) {
	t, err := u.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return request.TeamRequest{}, ErrTeamNotFound
		}
		return request.TeamRequest{}, ErrInternal
	}
	if !t.LookingForMembers {
		return request.TeamRequest{}, ErrTeamNotLooking
	}

	caller, err := u.users.GetByID(ctx, callerID)
	if err != nil {
		return request.TeamRequest{}, ErrInternal
	}
	if caller.TeamID != nil {
		return request.TeamRequest{}, ErrAlreadyInTeam
	}

	return u.createRequest(ctx, request.TeamRequest{
		ID:          uuid.New(),
		TeamID:      teamID,
		UserID:      callerID,
		InitiatorID: callerID,
		Type:        request.TypeJoin,
		Status:      request.StatusPending,
		Message:     strings.TrimSpace(message),
	})
}

func (u *Teams) Invite(ctx context.Context, callerID, teamID, userID uuid.UUID, message string) (request.TeamRequest, error) {
	if _, err := u.captainedTeam(ctx, callerID, teamID); err != nil {
		return request.TeamRequest{}, err
	}

	invited, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return request.TeamRequest{}, ErrUserNotFound
		}
		return request.TeamRequest{}, ErrInternal
	}
	if invited.TeamID != nil {
		return request.TeamRequest{}, ErrAlreadyInTeam
	}

	return u.createRequest(ctx, request.TeamRequest{
		ID:          uuid.New(),
		TeamID:      teamID,
		UserID:      userID,
		InitiatorID: callerID,
		Type:        request.TypeInvite,
		Status:      request.StatusPending,
		Message:     strings.TrimSpace(message),
	})
}

func (u *Teams) Respond(ctx context.Context, callerID, requestID uuid.UUID, accept bool) (request.TeamRequest, error) {
	rq, err := u.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return request.TeamRequest{}, ErrRequestNotFound
		}
		return request.TeamRequest{}, ErrInternal
	}
	if !rq.IsPending() {
		return request.TeamRequest{}, ErrRequestClosed
	}

	// a join request is decided by the captain, an invite by the invited user
	switch rq.Type {
	case request.TypeJoin:
		if _, err := u.captainedTeam(ctx, callerID, rq.TeamID); err != nil {
			return request.TeamRequest{}, err
		}
	case request.TypeInvite:
		if rq.UserID != callerID {
			return request.TeamRequest{}, ErrForbidden
		}
	default:
		return request.TeamRequest{}, ErrInternal
	}

	if !accept {
		if err := u.requests.UpdateStatus(ctx, rq.ID, request.StatusDeclined); err != nil {
			return request.TeamRequest{}, ErrInternal
		}
		rq.Status = request.StatusDeclined
		return rq, nil
	}

	joining, err := u.users.GetByID(ctx, rq.UserID)
	if err != nil {
		return request.TeamRequest{}, ErrInternal
	}
	if joining.TeamID != nil {
		return request.TeamRequest{}, ErrAlreadyInTeam
	}

	if err := u.users.SetTeam(ctx, rq.UserID, &rq.TeamID); err != nil {
		return request.TeamRequest{}, ErrInternal
	}
	if err := u.requests.UpdateStatus(ctx, rq.ID, request.StatusAccepted); err != nil {
		return request.TeamRequest{}, ErrInternal
	}
	rq.Status = request.StatusAccepted

	if u.notifier != nil {
		u.notifier.MemberJoined(rq.TeamID, rq.UserID)
	}
	return rq, nil
}

func (u *Teams) ListRequests(ctx context.Context, callerID, teamID uuid.UUID) ([]request.TeamRequest, error) {
	if _, err := u.captainedTeam(ctx, callerID, teamID); err != nil {
		return nil, err
	}

	out, err := u.requests.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Teams) Leave(ctx context.Context, callerID uuid.UUID) error {
	caller, err := u.users.GetByID(ctx, callerID)
	if err != nil {
		return ErrInternal
	}
	if caller.TeamID == nil {
		return ErrNotInTeam
	}

	t, err := u.teams.GetByID(ctx, *caller.TeamID)
	if err == nil && t.CaptainID == callerID {
		return ErrCaptainCannotLeave
	}

	if err := u.users.SetTeam(ctx, callerID, nil); err != nil {
		return ErrInternal
	}
	return nil
}

func (u *Teams) createRequest(ctx context.Context, rq request.TeamRequest) (request.TeamRequest, error) {
	dup, err := u.requests.PendingExists(ctx, rq.TeamID, rq.UserID)
	if err != nil {
		return request.TeamRequest{}, ErrInternal
	}
	if dup {
		return request.TeamRequest{}, ErrDuplicateRequest
	}

	if err := u.requests.Create(ctx, rq); err != nil {
		return request.TeamRequest{}, ErrInternal
	}
	if u.notifier != nil {
		u.notifier.RequestCreated(rq)
	}
	return rq, nil
}

func (u *Teams) captainedTeam(ctx context.Context, callerID, teamID uuid.UUID) (team.Team, error) {
	t, err := u.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return team.Team{}, ErrTeamNotFound
		}
		return team.Team{}, ErrInternal
	}
	if t.CaptainID != callerID {
		return team.Team{}, ErrNotCaptain
	}
	return t, nil
}
