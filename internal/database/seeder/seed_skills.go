package seeder

import (
	"context"
	"fmt"

	"hackmatch/internal/database"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	names := []string{
		"Go",
		"Python",
		"JavaScript",
		"TypeScript",
		"React",
		"PostgreSQL",
		"SQL",
		"Docker",
		"Figma",
		"Machine Learning",
		"Product Management",
		"Data Analysis",
	}

	for _, name := range names {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name) VALUES (gen_random_uuid(), $1) ON CONFLICT ((lower(name))) DO NOTHING`,
			name,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
