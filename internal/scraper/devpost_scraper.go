package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hackmatch/internal/database"

	"github.com/google/uuid"
)

const devpostSource = "devpost"

type DevpostScraper struct {
	db      database.DB
	client  *http.Client
	apiBase string
}

func NewDevpostScraper(db database.DB) *DevpostScraper {
	return &DevpostScraper{
		db: db,
		client: &http.Client{
			Timeout: 25 * time.Second,
		},
		apiBase: "https://devpost.com",
	}
}

type devpostListing struct {
	Title             string `json:"title"`
	URL               string `json:"url"`
	TagLine           string `json:"tagline"`
	SubmissionPeriod  string `json:"submission_period_dates"`
	OpenState         string `json:"open_state"`
	DisplayedLocation struct {
		Location string `json:"location"`
	} `json:"displayed_location"`
}

type devpostSearchResponse struct {
	Hackathons []devpostListing `json:"hackathons"`
}

func (s *DevpostScraper) Scrape(ctx context.Context, pages int, workers int) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("nil scraper/db")
	}
	if pages <= 0 {
		pages = 1
	}

	runID, _ := createScrapeRun(ctx, s.db, devpostSource)
	if runID != uuid.Nil {
		defer func() {
			_ = finishScrapeRun(context.Background(), s.db, runID, "finished")
		}()
	}

	pool := NewWorkerPool(workers, workers*2)
	pool.SetRateLimit(4)
	results := pool.Run(ctx)

	for page := 1; page <= pages; page++ {
		listings, err := s.fetchListings(ctx, page)
		if err != nil {
			_ = logScrape(ctx, s.db, runID, "error", fmt.Sprintf("devpost listings page %d: %v", page, err))
			continue
		}
		for _, it := range listings {
			it := it
			if strings.TrimSpace(it.URL) == "" {
				continue
			}
			pool.Submit(func(ctx context.Context) error {
				start, end, ok := parseDateRange(it.SubmissionPeriod)
				if !ok {
					return fmt.Errorf("unparseable dates %q for %s", it.SubmissionPeriod, it.URL)
				}
				return insertRawHackathon(ctx, s.db, devpostSource, runID, rawHackathonInput{
					Name:        it.Title,
					Description: it.TagLine,
					Location:    it.DisplayedLocation.Location,
					URL:         it.URL,
					StartDate:   start,
					EndDate:     end,
				})
			})
		}
	}

	pool.Close()

	for res := range results {
		if res.Err != nil {
			_ = logScrape(ctx, s.db, runID, "error", fmt.Sprintf("devpost item: %v", res.Err))
		}
	}

	return nil
}

func (s *DevpostScraper) fetchListings(ctx context.Context, page int) ([]devpostListing, error) {
	url := fmt.Sprintf("%s/api/hackathons?page=%d", strings.TrimRight(s.apiBase, "/"), page)
	body, err := httpGetWithRetry(ctx, s.client, url, 3)
	if err != nil {
		return nil, err
	}
	var out devpostSearchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return out.Hackathons, nil
}
