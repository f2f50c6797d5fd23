package repository

import (
	"context"
	"errors"
	"strings"

	"hackmatch/internal/database"

	"github.com/google/uuid"
)

var ErrSkillNotFound = errors.New("skill not found")

type Skill struct {
	ID   uuid.UUID
	Name string
}

type SkillRepository interface {
	ListAll(ctx context.Context) ([]Skill, error)
	EnsureByName(ctx context.Context, name string) (Skill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) ListAll(ctx context.Context) ([]Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Skill, 0)
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// EnsureByName inserts the skill if the catalog does not have it yet. Names
// are stored as given but matched case-insensitively.
func (r *PostgresSkillRepository) EnsureByName(ctx context.Context, name string) (Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Skill{}, ErrSkillNotFound
	}

	_, _ = r.db.Exec(ctx,
		`INSERT INTO skills (id, name) VALUES ($1, $2) ON CONFLICT (lower(name)) DO NOTHING`,
		uuid.New(), name,
	)

	row := r.db.QueryRow(ctx, `SELECT id, name FROM skills WHERE lower(name) = lower($1)`, name)
	var s Skill
	if err := row.Scan(&s.ID, &s.Name); err != nil {
		return Skill{}, err
	}
	return s, nil
}
