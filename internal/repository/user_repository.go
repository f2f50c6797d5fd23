package repository

import (
	"context"
	"database/sql"
	"errors"

	"hackmatch/internal/database"
	"hackmatch/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrUserNotFound = errors.New("user not found")

type UserListFilter struct {
	Role      string
	ReadyOnly bool
	Limit     int
	Offset    int
}

// SeekingFilter narrows the candidate pool for user recommendations: users
// actively seeking, not on the requesting captain's team, not excluded and
// not the requester.
type SeekingFilter struct {
	ExcludeTeamID  *uuid.UUID
	ExcludeUserIDs []uuid.UUID
	RequesterID    uuid.UUID
}

type UserRepository interface {
	Create(ctx context.Context, u user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByTgID(ctx context.Context, tgID int64) (user.User, error)
	Update(ctx context.Context, u user.User) error
	SetTeam(ctx context.Context, userID uuid.UUID, teamID *uuid.UUID) error
	List(ctx context.Context, f UserListFilter) ([]user.User, error)
	ListSeeking(ctx context.Context, f SeekingFilter) ([]user.User, error)
	SkillNamesByUserID(ctx context.Context, userID uuid.UUID) ([]string, error)
	ReplaceSkills(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID) error
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, tg_id, username, email, password_hash, COALESCE(full_name, ''), COALESCE(main_role, ''), ready_to_team, team_id, created_at, updated_at`

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, tg_id, username, email, password_hash, full_name, main_role, ready_to_team, team_id)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)`,
		u.ID, u.TgID, u.Username, u.Email, u.PasswordHash, u.FullName, u.MainRole, u.ReadyToTeam, u.TeamID,
	)
	return err
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByTgID(ctx context.Context, tgID int64) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE tg_id = $1`, tgID)
	return scanUser(row)
}

func (r *PostgresUserRepository) Update(ctx context.Context, u user.User) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE users
		 SET username = $1, email = $2, password_hash = $3, full_name = $4,
		     main_role = NULLIF($5, ''), ready_to_team = $6, team_id = $7, updated_at = now()
		 WHERE id = $8`,
		u.Username, u.Email, u.PasswordHash, u.FullName, u.MainRole, u.ReadyToTeam, u.TeamID, u.ID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *PostgresUserRepository) SetTeam(ctx context.Context, userID uuid.UUID, teamID *uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE users SET team_id = $1, updated_at = now() WHERE id = $2`,
		teamID, userID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *PostgresUserRepository) List(ctx context.Context, f UserListFilter) ([]user.User, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 WHERE ($1 = '' OR main_role = $1)
		   AND (NOT $2 OR ready_to_team)
		 ORDER BY created_at DESC
		 LIMIT $3 OFFSET $4`,
		f.Role, f.ReadyOnly, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *PostgresUserRepository) ListSeeking(ctx context.Context, f SeekingFilter) ([]user.User, error) {
	exclude := f.ExcludeUserIDs
	if exclude == nil {
		exclude = []uuid.UUID{}
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 WHERE ready_to_team
		   AND id <> $1
		   AND NOT (id = ANY($2))
		   AND ($3::uuid IS NULL OR team_id IS DISTINCT FROM $3)
		 ORDER BY created_at ASC`,
		f.RequesterID, exclude, f.ExcludeTeamID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *PostgresUserRepository) SkillNamesByUserID(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.name
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1
		 ORDER BY s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserRepository) ReplaceSkills(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1`, userID); err != nil {
		return err
	}
	for _, skillID := range skillIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_skills (user_id, skill_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, skillID,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

type userRow interface {
	Scan(dest ...any) error
}

func scanUser(row userRow) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.TgID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FullName, &u.MainRole, &u.ReadyToTeam, &u.TeamID,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func scanUsers(rows database.Rows) ([]user.User, error) {
	out := make([]user.User, 0)
	for rows.Next() {
		var u user.User
		if err := rows.Scan(
			&u.ID, &u.TgID, &u.Username, &u.Email, &u.PasswordHash,
			&u.FullName, &u.MainRole, &u.ReadyToTeam, &u.TeamID,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
