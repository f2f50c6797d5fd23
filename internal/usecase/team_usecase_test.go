package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"hackmatch/internal/domain/hackathon"
	"hackmatch/internal/domain/request"
	"hackmatch/internal/domain/team"
	"hackmatch/internal/domain/user"
	"hackmatch/internal/repository"

	"github.com/google/uuid"
)

type mockRequestRepo struct {
	byID map[uuid.UUID]request.TeamRequest
}

func (m *mockRequestRepo) Create(_ context.Context, rq request.TeamRequest) error {
	if m.byID == nil {
		m.byID = map[uuid.UUID]request.TeamRequest{}
	}
	m.byID[rq.ID] = rq
	return nil
}
func (m *mockRequestRepo) GetByID(_ context.Context, id uuid.UUID) (request.TeamRequest, error) {
	rq, ok := m.byID[id]
	if !ok {
		return request.TeamRequest{}, repository.ErrRequestNotFound
	}
	return rq, nil
}
func (m *mockRequestRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	rq, ok := m.byID[id]
	if !ok {
		return repository.ErrRequestNotFound
	}
	rq.Status = status
	m.byID[id] = rq
	return nil
}
func (m *mockRequestRepo) ListByTeam(_ context.Context, teamID uuid.UUID) ([]request.TeamRequest, error) {
	out := make([]request.TeamRequest, 0)
	for _, rq := range m.byID {
		if rq.TeamID == teamID {
			out = append(out, rq)
		}
	}
	return out, nil
}
func (m *mockRequestRepo) PendingExists(_ context.Context, teamID, userID uuid.UUID) (bool, error) {
	for _, rq := range m.byID {
		if rq.TeamID == teamID && rq.UserID == userID && rq.IsPending() {
			return true, nil
		}
	}
	return false, nil
}

type mockHackathonRepo struct {
	byID map[uuid.UUID]hackathon.Hackathon
}

func (m *mockHackathonRepo) Create(_ context.Context, h hackathon.Hackathon) error {
	if m.byID == nil {
		m.byID = map[uuid.UUID]hackathon.Hackathon{}
	}
	m.byID[h.ID] = h
	return nil
}
func (m *mockHackathonRepo) Upsert(ctx context.Context, h hackathon.Hackathon) error {
	return m.Create(ctx, h)
}
func (m *mockHackathonRepo) GetByID(_ context.Context, id uuid.UUID) (hackathon.Hackathon, error) {
	h, ok := m.byID[id]
	if !ok {
		return hackathon.Hackathon{}, repository.ErrHackathonNotFound
	}
	return h, nil
}
func (m *mockHackathonRepo) List(context.Context, int, int) ([]hackathon.Hackathon, error) {
	out := make([]hackathon.Hackathon, 0, len(m.byID))
	for _, h := range m.byID {
		out = append(out, h)
	}
	return out, nil
}
func (m *mockHackathonRepo) ListStartingBetween(_ context.Context, from, to time.Time) ([]hackathon.Hackathon, error) {
	out := make([]hackathon.Hackathon, 0)
	for _, h := range m.byID {
		if !h.StartDate.Before(from) && h.StartDate.Before(to) {
			out = append(out, h)
		}
	}
	return out, nil
}
func (m *mockHackathonRepo) NextUpcoming(_ context.Context, after time.Time) (hackathon.Hackathon, error) {
	var best hackathon.Hackathon
	found := false
	for _, h := range m.byID {
		if h.StartDate.After(after) && (!found || h.StartDate.Before(best.StartDate)) {
			best = h
			found = true
		}
	}
	if !found {
		return hackathon.Hackathon{}, repository.ErrHackathonNotFound
	}
	return best, nil
}

type recordingNotifier struct {
	requests []request.TeamRequest
	joins    []uuid.UUID
}

func (n *recordingNotifier) RequestCreated(rq request.TeamRequest) { n.requests = append(n.requests, rq) }
func (n *recordingNotifier) MemberJoined(_ uuid.UUID, userID uuid.UUID) {
	n.joins = append(n.joins, userID)
}

type teamFixture struct {
	uc         *Teams
	users      *mockUserRepo
	teams      *mockTeamRepo
	requests   *mockRequestRepo
	hackathons *mockHackathonRepo
	notifier   *recordingNotifier
}

func newTeamFixture() *teamFixture {
	f := &teamFixture{
		users:      &mockUserRepo{users: map[uuid.UUID]user.User{}, skills: map[uuid.UUID][]string{}},
		teams:      &mockTeamRepo{byID: map[uuid.UUID]team.Team{}},
		requests:   &mockRequestRepo{byID: map[uuid.UUID]request.TeamRequest{}},
		hackathons: &mockHackathonRepo{byID: map[uuid.UUID]hackathon.Hackathon{}},
		notifier:   &recordingNotifier{},
	}
	f.uc = NewTeamUsecase(f.teams, f.users, f.requests, f.hackathons, f.notifier)
	return f
}

func (f *teamFixture) addUser(teamID *uuid.UUID) user.User {
	u := user.User{ID: uuid.New(), TeamID: teamID, ReadyToTeam: true}
	f.users.users[u.ID] = u
	return u
}

func (f *teamFixture) addHackathon() hackathon.Hackathon {
	h := hackathon.Hackathon{ID: uuid.New(), Name: "demo", StartDate: time.Now().Add(24 * time.Hour)}
	f.hackathons.byID[h.ID] = h
	return h
}

func (f *teamFixture) addTeam(captainID uuid.UUID, looking bool) team.Team {
	t := team.Team{ID: uuid.New(), Name: "crew", CaptainID: captainID, LookingForMembers: looking}
	f.teams.byID[t.ID] = t
	tid := t.ID
	if u, ok := f.users.users[captainID]; ok {
		u.TeamID = &tid
		f.users.users[captainID] = u
	}
	return t
}

func TestTeams_Create(t *testing.T) {
	f := newTeamFixture()
	captain := f.addUser(nil)
	h := f.addHackathon()

	created, err := f.uc.Create(context.Background(), captain.ID, h.ID, CreateTeamInput{
		Name:              "  night shift  ",
		LookingForMembers: true,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Name != "night shift" || created.CaptainID != captain.ID {
		t.Fatalf("unexpected team: %+v", created)
	}
	if got := f.users.users[captain.ID].TeamID; got == nil || *got != created.ID {
		t.Fatalf("captain must be placed on the new team")
	}
}

func TestTeams_CreateRejectsSecondTeam(t *testing.T) {
	f := newTeamFixture()
	captain := f.addUser(nil)
	h := f.addHackathon()
	f.addTeam(captain.ID, true)

	_, err := f.uc.Create(context.Background(), captain.ID, h.ID, CreateTeamInput{Name: "another"})
	if !errors.Is(err, ErrAlreadyInTeam) {
		t.Fatalf("expected ErrAlreadyInTeam, got %v", err)
	}
}

func TestTeams_CreateUnknownHackathon(t *testing.T) {
	f := newTeamFixture()
	captain := f.addUser(nil)

	_, err := f.uc.Create(context.Background(), captain.ID, uuid.New(), CreateTeamInput{Name: "crew"})
	if !errors.Is(err, ErrHackathonNotFound) {
		t.Fatalf("expected ErrHackathonNotFound, got %v", err)
	}
}

func TestTeams_UpdateCaptainOnly(t *testing.T) {
	f := newTeamFixture()
	captain := f.addUser(nil)
	outsider := f.addUser(nil)
	tm := f.addTeam(captain.ID, true)

	name := "renamed"
	if _, err := f.uc.Update(context.Background(), outsider.ID, tm.ID, UpdateTeamInput{Name: &name}); !errors.Is(err, ErrNotCaptain) {
		t.Fatalf("expected ErrNotCaptain, got %v", err)
	}

	updated, err := f.uc.Update(context.Background(), captain.ID, tm.ID, UpdateTeamInput{Name: &name})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Name != "renamed" {
		t.Fatalf("rename not applied: %+v", updated)
	}
}

func TestTeams_RequestJoin(t *testing.T) {
	f := newTeamFixture()
	captain := f.addUser(nil)
	tm := f.addTeam(captain.ID, true)
	seeker := f.addUser(nil)

	rq, err := f.uc.RequestJoin(context.Background(), seeker.ID, tm.ID, "pick me")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rq.Type != request.TypeJoin || !rq.IsPending() || rq.InitiatorID != seeker.ID {
		t.Fatalf("unexpected request: %+v", rq)
	}
	if len(f.notifier.requests) != 1 {
		t.Fatalf("captain must be notified about the join request")
	}

	if _, err := f.uc.RequestJoin(context.Background(), seeker.ID, tm.ID, "again"); !errors.Is(err, ErrDuplicateRequest) {
		t.Fatalf("expected ErrDuplicateRequest, got %v", err)
	}
}

func TestTeams_RequestJoinClosedTeam(t *testing.T) {
	f := newTeamFixture()
	captain := f.addUser(nil)
	tm := f.addTeam(captain.ID, false)
	seeker := f.addUser(nil)

	if _, err := f.uc.RequestJoin(context.Background(), seeker.ID, tm.ID, ""); !errors.Is(err, ErrTeamNotLooking) {
		t.Fatalf("expected ErrTeamNotLooking, got %v", err)
	}
}

func TestTeams_RespondAcceptJoin(t *testing.T) {
	f := newTeamFixture()
	captain := f.addUser(nil)
	tm := f.addTeam(captain.ID, true)
	seeker := f.addUser(nil)

	rq, err := f.uc.RequestJoin(context.Background(), seeker.ID, tm.ID, "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// only the captain decides a join request
	if _, err := f.uc.Respond(context.Background(), seeker.ID, rq.ID, true); !errors.Is(err, ErrNotCaptain) {
		t.Fatalf("expected ErrNotCaptain, got %v", err)
	}

	done, err := f.uc.Respond(context.Background(), captain.ID, rq.ID, true)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if done.Status != request.StatusAccepted {
		t.Fatalf("expected accepted, got %s", done.Status)
	}
	if got := f.users.users[seeker.ID].TeamID; got == nil || *got != tm.ID {
		t.Fatalf("seeker must be placed on the team")
	}
	if len(f.notifier.joins) != 1 || f.notifier.joins[0] != seeker.ID {
		t.Fatalf("member join must be announced")
	}

	if _, err := f.uc.Respond(context.Background(), captain.ID, rq.ID, true); !errors.Is(err, ErrRequestClosed) {
		t.Fatalf("expected ErrRequestClosed on a second decision, got %v", err)
	}
}

func TestTeams_RespondInviteByInvitedUserOnly(t *testing.T) {
	f := newTeamFixture()
	captain := f.addUser(nil)
	tm := f.addTeam(captain.ID, true)
	invited := f.addUser(nil)
	stranger := f.addUser(nil)

	rq, err := f.uc.Invite(context.Background(), captain.ID, tm.ID, invited.ID, "join us")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, err := f.uc.Respond(context.Background(), stranger.ID, rq.ID, true); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	done, err := f.uc.Respond(context.Background(), invited.ID, rq.ID, false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if done.Status != request.StatusDeclined {
		t.Fatalf("expected declined, got %s", done.Status)
	}
	if f.users.users[invited.ID].TeamID != nil {
		t.Fatalf("declined invite must not move the user")
	}
}

func TestTeams_Leave(t *testing.T) {
	f := newTeamFixture()
	captain := f.addUser(nil)
	tm := f.addTeam(captain.ID, true)
	tid := tm.ID
	member := f.addUser(&tid)

	if err := f.uc.Leave(context.Background(), captain.ID); !errors.Is(err, ErrCaptainCannotLeave) {
		t.Fatalf("expected ErrCaptainCannotLeave, got %v", err)
	}

	if err := f.uc.Leave(context.Background(), member.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if f.users.users[member.ID].TeamID != nil {
		t.Fatalf("member must be detached from the team")
	}

	if err := f.uc.Leave(context.Background(), member.ID); !errors.Is(err, ErrNotInTeam) {
		t.Fatalf("expected ErrNotInTeam, got %v", err)
	}
}
