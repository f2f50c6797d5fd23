package repository

import (
	"context"
	"database/sql"
	"errors"

	"hackmatch/internal/database"
	"hackmatch/internal/domain/request"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrRequestNotFound = errors.New("request not found")

type RequestRepository interface {
	Create(ctx context.Context, rq request.TeamRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (request.TeamRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]request.TeamRequest, error)
	PendingExists(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
}

type PostgresRequestRepository struct {
	db database.DB
}

func NewPostgresRequestRepository(db database.DB) *PostgresRequestRepository {
	return &PostgresRequestRepository{db: db}
}

const requestColumns = `id, team_id, user_id, initiator_id, type, status, COALESCE(message, ''), created_at, updated_at`

func (r *PostgresRequestRepository) Create(ctx context.Context, rq request.TeamRequest) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO team_requests (id, team_id, user_id, initiator_id, type, status, message)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rq.ID, rq.TeamID, rq.UserID, rq.InitiatorID, rq.Type, rq.Status, rq.Message,
	)
	return err
}

func (r *PostgresRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (request.TeamRequest, error) {
	row := r.db.QueryRow(ctx, `SELECT `+requestColumns+` FROM team_requests WHERE id = $1`, id)

	var rq request.TeamRequest
	err := row.Scan(&rq.ID, &rq.TeamID, &rq.UserID, &rq.InitiatorID, &rq.Type, &rq.Status, &rq.Message, &rq.CreatedAt, &rq.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return request.TeamRequest{}, ErrRequestNotFound
		}
		return request.TeamRequest{}, err
	}
	return rq, nil
}

func (r *PostgresRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE team_requests SET status = $1, updated_at = now() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *PostgresRequestRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]request.TeamRequest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+requestColumns+` FROM team_requests WHERE team_id = $1 ORDER BY created_at DESC`,
		teamID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]request.TeamRequest, 0)
	for rows.Next() {
		var rq request.TeamRequest
		if err := rows.Scan(&rq.ID, &rq.TeamID, &rq.UserID, &rq.InitiatorID, &rq.Type, &rq.Status, &rq.Message, &rq.CreatedAt, &rq.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rq)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRequestRepository) PendingExists(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM team_requests WHERE team_id = $1 AND user_id = $2 AND status = 'pending')`,
		teamID, userID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
