package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hackmatch/internal/database"
	"hackmatch/internal/domain/hackathon"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrHackathonNotFound = errors.New("hackathon not found")

type HackathonRepository interface {
	Create(ctx context.Context, h hackathon.Hackathon) error
	Upsert(ctx context.Context, h hackathon.Hackathon) error
	GetByID(ctx context.Context, id uuid.UUID) (hackathon.Hackathon, error)
	List(ctx context.Context, limit, offset int) ([]hackathon.Hackathon, error)
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]hackathon.Hackathon, error)
	NextUpcoming(ctx context.Context, after time.Time) (hackathon.Hackathon, error)
}

type PostgresHackathonRepository struct {
	db database.DB
}

func NewPostgresHackathonRepository(db database.DB) *PostgresHackathonRepository {
	return &PostgresHackathonRepository{db: db}
}

const hackathonColumns = `id, name, COALESCE(description, ''), COALESCE(location, ''), COALESCE(url, ''), COALESCE(source, ''), start_date, end_date, created_at`

func (r *PostgresHackathonRepository) Create(ctx context.Context, h hackathon.Hackathon) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO hackathons (id, name, description, location, url, source, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		h.ID, h.Name, h.Description, h.Location, h.URL, h.Source, h.StartDate, h.EndDate,
	)
	return err
}

// Upsert keys scraped listings on (source, url) so re-running ingestion
// refreshes instead of duplicating.
func (r *PostgresHackathonRepository) Upsert(ctx context.Context, h hackathon.Hackathon) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO hackathons (id, name, description, location, url, source, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (source, url) DO UPDATE
		 SET name = EXCLUDED.name, description = EXCLUDED.description,
		     location = EXCLUDED.location, start_date = EXCLUDED.start_date, end_date = EXCLUDED.end_date`,
		h.ID, h.Name, h.Description, h.Location, h.URL, h.Source, h.StartDate, h.EndDate,
	)
	return err
}

func (r *PostgresHackathonRepository) GetByID(ctx context.Context, id uuid.UUID) (hackathon.Hackathon, error) {
	row := r.db.QueryRow(ctx, `SELECT `+hackathonColumns+` FROM hackathons WHERE id = $1`, id)
	return scanHackathon(row)
}

func (r *PostgresHackathonRepository) List(ctx context.Context, limit, offset int) ([]hackathon.Hackathon, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+hackathonColumns+` FROM hackathons ORDER BY start_date ASC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHackathons(rows)
}

func (r *PostgresHackathonRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]hackathon.Hackathon, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+hackathonColumns+`
		 FROM hackathons
		 WHERE start_date >= $1 AND start_date < $2
		 ORDER BY start_date ASC`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHackathons(rows)
}

func (r *PostgresHackathonRepository) NextUpcoming(ctx context.Context, after time.Time) (hackathon.Hackathon, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+hackathonColumns+` FROM hackathons WHERE start_date > $1 ORDER BY start_date ASC LIMIT 1`,
		after,
	)
	return scanHackathon(row)
}

type hackathonRow interface {
	Scan(dest ...any) error
}

func scanHackathon(row hackathonRow) (hackathon.Hackathon, error) {
	var h hackathon.Hackathon
	err := row.Scan(&h.ID, &h.Name, &h.Description, &h.Location, &h.URL, &h.Source, &h.StartDate, &h.EndDate, &h.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return hackathon.Hackathon{}, ErrHackathonNotFound
		}
		return hackathon.Hackathon{}, err
	}
	return h, nil
}

func scanHackathons(rows database.Rows) ([]hackathon.Hackathon, error) {
	out := make([]hackathon.Hackathon, 0)
	for rows.Next() {
		var h hackathon.Hackathon
		if err := rows.Scan(&h.ID, &h.Name, &h.Description, &h.Location, &h.URL, &h.Source, &h.StartDate, &h.EndDate, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
