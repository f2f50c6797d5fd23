package repository

import (
	"context"
	"database/sql"
	"errors"

	"hackmatch/internal/database"
	"hackmatch/internal/domain/team"
	"hackmatch/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrTeamNotFound = errors.New("team not found")
	ErrNoTeam       = errors.New("user has no team")
)

// CandidateTeamFilter narrows the pool for team recommendations: teams in a
// hackathon that do not already contain the requester and are not excluded.
type CandidateTeamFilter struct {
	HackathonID    uuid.UUID
	RequesterID    uuid.UUID
	ExcludeTeamIDs []uuid.UUID
}

type TeamRepository interface {
	Create(ctx context.Context, t team.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (team.Team, error)
	GetByCaptain(ctx context.Context, captainID uuid.UUID) (team.Team, error)
	Update(ctx context.Context, t team.Team) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByHackathon(ctx context.Context, hackathonID uuid.UUID, limit, offset int) ([]team.Team, error)
	ListCandidates(ctx context.Context, f CandidateTeamFilter) ([]team.Team, error)
	MembersByTeamID(ctx context.Context, teamID uuid.UUID) ([]user.User, error)
}

type PostgresTeamRepository struct {
	db database.DB
}

func NewPostgresTeamRepository(db database.DB) *PostgresTeamRepository {
	return &PostgresTeamRepository{db: db}
}

const teamColumns = `id, name, COALESCE(description, ''), hackathon_id, captain_id, looking_for_members, created_at, updated_at`

func (r *PostgresTeamRepository) Create(ctx context.Context, t team.Team) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO teams (id, name, description, hackathon_id, captain_id, looking_for_members)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.Name, t.Description, t.HackathonID, t.CaptainID, t.LookingForMembers,
	)
	return err
}

func (r *PostgresTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (team.Team, error) {
	row := r.db.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, id)
	return scanTeam(row)
}

func (r *PostgresTeamRepository) GetByCaptain(ctx context.Context, captainID uuid.UUID) (team.Team, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE captain_id = $1 ORDER BY created_at DESC LIMIT 1`,
		captainID,
	)
	t, err := scanTeam(row)
	if errors.Is(err, ErrTeamNotFound) {
		return team.Team{}, ErrNoTeam
	}
	return t, err
}

func (r *PostgresTeamRepository) Update(ctx context.Context, t team.Team) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE teams
		 SET name = $1, description = $2, looking_for_members = $3, updated_at = now()
		 WHERE id = $4`,
		t.Name, t.Description, t.LookingForMembers, t.ID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (r *PostgresTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `UPDATE users SET team_id = NULL WHERE team_id = $1`, id); err != nil {
		return err
	}
	affected, err := tx.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTeamNotFound
	}
	return tx.Commit(ctx)
}

func (r *PostgresTeamRepository) ListByHackathon(ctx context.Context, hackathonID uuid.UUID, limit, offset int) ([]team.Team, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+teamColumns+`
		 FROM teams
		 WHERE hackathon_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		hackathonID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTeams(rows)
}

func (r *PostgresTeamRepository) ListCandidates(ctx context.Context, f CandidateTeamFilter) ([]team.Team, error) {
	exclude := f.ExcludeTeamIDs
	if exclude == nil {
		exclude = []uuid.UUID{}
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+teamColumns+`
		 FROM teams t
		 WHERE t.hackathon_id = $1
		   AND NOT (t.id = ANY($2))
		   AND NOT EXISTS (SELECT 1 FROM users u WHERE u.team_id = t.id AND u.id = $3)
		 ORDER BY t.created_at ASC`,
		f.HackathonID, exclude, f.RequesterID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTeams(rows)
}

func (r *PostgresTeamRepository) MembersByTeamID(ctx context.Context, teamID uuid.UUID) ([]user.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE team_id = $1 ORDER BY created_at ASC`,
		teamID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

type teamRow interface {
	Scan(dest ...any) error
}

func scanTeam(row teamRow) (team.Team, error) {
	var t team.Team
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.HackathonID, &t.CaptainID, &t.LookingForMembers, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return team.Team{}, ErrTeamNotFound
		}
		return team.Team{}, err
	}
	return t, nil
}

func scanTeams(rows database.Rows) ([]team.Team, error) {
	out := make([]team.Team, 0)
	for rows.Next() {
		var t team.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.HackathonID, &t.CaptainID, &t.LookingForMembers, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
