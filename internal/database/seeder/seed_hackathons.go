package seeder

import (
	"context"
	"fmt"
	"time"

	"hackmatch/internal/database"
)

type HackathonsSeeder struct{}

func (HackathonsSeeder) Name() string { return "hackathons" }

// Run inserts a small demo catalog so a fresh install has something to
// browse before the scraper runs.
func (HackathonsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "hackathons", "id", "name", "url", "source", "start_date", "end_date", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	base := time.Now().UTC().Truncate(24 * time.Hour)
	items := []struct {
		Name     string
		Location string
		URL      string
		Start    time.Time
		End      time.Time
	}{
		{
			Name:     "Demo City Hack",
			Location: "Online",
			URL:      "https://example.com/demo-city-hack",
			Start:    base.AddDate(0, 0, 14),
			End:      base.AddDate(0, 0, 16),
		},
		{
			Name:     "Open Data Weekend",
			Location: "Online",
			URL:      "https://example.com/open-data-weekend",
			Start:    base.AddDate(0, 1, 0),
			End:      base.AddDate(0, 1, 2),
		},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO hackathons (id, name, location, url, source, start_date, end_date)
			 VALUES (gen_random_uuid(), $1, $2, $3, 'seed', $4, $5)
			 ON CONFLICT (source, url) DO NOTHING`,
			it.Name, it.Location, it.URL, it.Start, it.End,
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
