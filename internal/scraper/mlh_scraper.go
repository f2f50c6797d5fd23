package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"hackmatch/internal/database"

	"github.com/gocolly/colly/v2"
	"github.com/google/uuid"
)

const mlhSource = "mlh"

// MLHScraper walks the season event listing. All fields live on the list
// page, so there is no per-event detail fetch.
type MLHScraper struct {
	db      database.DB
	baseURL string
	season  string
}

func NewMLHScraper(db database.DB, season string) *MLHScraper {
	return &MLHScraper{db: db, baseURL: "https://mlh.io", season: season}
}

func NewMLHScraperWithBaseURL(db database.DB, baseURL string, season string) *MLHScraper {
	return &MLHScraper{db: db, baseURL: baseURL, season: season}
}

func (s *MLHScraper) Scrape(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("nil scraper/db")
	}
	season := strings.TrimSpace(s.season)
	if season == "" {
		season = fmt.Sprintf("%d", time.Now().Year()+1)
	}

	runID, _ := createScrapeRun(ctx, s.db, mlhSource)
	if runID != uuid.Nil {
		defer func() {
			_ = finishScrapeRun(context.Background(), s.db, runID, "finished")
		}()
	}

	listURL := strings.TrimRight(s.baseURL, "/") + "/seasons/" + season + "/events"
	items, err := s.scrapeListingPage(ctx, listURL)
	if err != nil {
		_ = logScrape(ctx, s.db, runID, "error", fmt.Sprintf("mlh listing %s: %v", listURL, err))
		return err
	}

	for _, it := range items {
		if err := insertRawHackathon(ctx, s.db, mlhSource, runID, it); err != nil {
			_ = logScrape(ctx, s.db, runID, "error", fmt.Sprintf("mlh item %s: %v", it.URL, err))
		}
	}
	return nil
}

func (s *MLHScraper) scrapeListingPage(ctx context.Context, listURL string) ([]rawHackathonInput, error) {
	allowed := hostFromURL(listURL)
	var c *colly.Collector
	if allowed == "" {
		c = colly.NewCollector()
	} else {
		c = colly.NewCollector(colly.AllowedDomains(allowed))
	}
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, RandomDelay: 850 * time.Millisecond, Delay: 450 * time.Millisecond})

	items := make([]rawHackathonInput, 0)
	dedup := map[string]struct{}{}

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "HackmatchScraper/0.1")
	})

	c.OnHTML("div.event", func(e *colly.HTMLElement) {
		href := strings.TrimSpace(e.ChildAttr("a.event-link", "href"))
		if href == "" {
			return
		}
		abs := normalizeURL(e.Request.AbsoluteURL(href))
		if abs == "" {
			return
		}
		if _, ok := dedup[abs]; ok {
			return
		}
		dedup[abs] = struct{}{}

		start := parseISODate(e.ChildAttr(`meta[itemprop="startDate"]`, "content"))
		end := parseISODate(e.ChildAttr(`meta[itemprop="endDate"]`, "content"))

		items = append(items, rawHackathonInput{
			Name:      strings.TrimSpace(e.ChildText("h3.event-name")),
			Location:  strings.TrimSpace(e.ChildText("div.event-location")),
			URL:       abs,
			StartDate: start,
			EndDate:   end,
		})
	})

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := c.Visit(listURL); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	return items, nil
}

func parseISODate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

func hostFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return u.Hostname()
}
