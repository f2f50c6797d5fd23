package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hackmatch/internal/database"

	"github.com/google/uuid"
)

type rawHackathonInput struct {
	Name        string
	Description string
	Location    string
	URL         string
	StartDate   time.Time
	EndDate     time.Time
}

func createScrapeRun(ctx context.Context, db database.DB, source string) (uuid.UUID, error) {
	if db == nil {
		return uuid.Nil, fmt.Errorf("nil db")
	}
	source = strings.TrimSpace(source)
	if source == "" {
		return uuid.Nil, fmt.Errorf("empty source")
	}
	id := uuid.New()
	_, err := db.Exec(ctx,
		`INSERT INTO scrape_runs (id, source, started_at, status) VALUES ($1,$2,$3,$4)`,
		id, source, time.Now().UTC(), "running",
	)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func finishScrapeRun(ctx context.Context, db database.DB, runID uuid.UUID, status string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if runID == uuid.Nil {
		return nil
	}
	_, err := db.Exec(ctx,
		`UPDATE scrape_runs SET finished_at = $2, status = $3 WHERE id = $1`,
		runID, time.Now().UTC(), strings.TrimSpace(status),
	)
	return err
}

func logScrape(ctx context.Context, db database.DB, runID uuid.UUID, level string, message string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if runID == uuid.Nil {
		return nil
	}
	level = strings.TrimSpace(level)
	if level == "" {
		level = "info"
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}
	_, err := db.Exec(ctx,
		`INSERT INTO scrape_logs (id, scrape_run_id, level, message) VALUES ($1,$2,$3,$4)`,
		uuid.New(), runID, level, message,
	)
	return err
}

func insertRawHackathon(ctx context.Context, db database.DB, source string, runID uuid.UUID, in rawHackathonInput) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	source = strings.TrimSpace(source)
	if source == "" {
		return fmt.Errorf("empty source")
	}

	name := strings.TrimSpace(in.Name)
	url := normalizeURL(in.URL)
	if name == "" || url == "" {
		return fmt.Errorf("listing without name or url")
	}
	if in.StartDate.IsZero() {
		return fmt.Errorf("listing without start date: %s", url)
	}
	end := in.EndDate
	if end.IsZero() || end.Before(in.StartDate) {
		end = in.StartDate
	}

	_, err := db.Exec(ctx,
		`INSERT INTO hackathons (id, name, description, location, url, source, start_date, end_date)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT (source, url) DO UPDATE SET
			name = EXCLUDED.name,
			description = COALESCE(EXCLUDED.description, hackathons.description),
			location = COALESCE(EXCLUDED.location, hackathons.location),
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date`,
		uuid.New(),
		name,
		nullableText(in.Description),
		nullableText(in.Location),
		url,
		source,
		in.StartDate.UTC(),
		end.UTC(),
	)
	if err != nil {
		_ = logScrape(ctx, db, runID, "error", fmt.Sprintf("upsert hackathon url=%s: %v", url, err))
		return err
	}
	_ = logScrape(ctx, db, runID, "info", fmt.Sprintf("hackathon upserted url=%s name=%s", url, name))
	return nil
}

func httpGetWithRetry(ctx context.Context, client *http.Client, url string, attempts int) ([]byte, error) {
	if attempts <= 0 {
		attempts = 1
	}
	var body []byte
	var lastErr error
	for i := 0; i < attempts; i++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "HackmatchScraper/0.1")
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
			continue
		}
		func() {
			defer resp.Body.Close()
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				lastErr = fmt.Errorf("status %d", resp.StatusCode)
				return
			}
			b, err := readAllLimit(resp.Body, 5<<20)
			if err != nil {
				lastErr = err
				return
			}
			lastErr = nil
			body = b
		}()
		if lastErr == nil {
			return body, nil
		}
		time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
	}
	return nil, lastErr
}

func normalizeURL(u string) string {
	return strings.TrimSpace(u)
}

func pickNonEmpty(a, b string) string {
	a = strings.TrimSpace(a)
	if a != "" {
		return a
	}
	return strings.TrimSpace(b)
}

func nullableText(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

func readAllLimit(r io.Reader, max int64) ([]byte, error) {
	lr := &io.LimitedReader{R: r, N: max}
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if lr.N <= 0 {
		return nil, fmt.Errorf("response too large")
	}
	return b, nil
}
