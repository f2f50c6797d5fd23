package main

import (
	"context"
	"flag"
	"log"
	"strconv"
	"time"

	"hackmatch/internal/app"
	"hackmatch/internal/config"
	"hackmatch/internal/database/migration"
	"hackmatch/internal/scraper"
)

func main() {
	source := flag.String("source", "all", "source to scrape: all, devpost, mlh")
	pages := flag.Int("pages", 2, "devpost listing pages to fetch")
	workers := flag.Int("workers", 6, "devpost worker pool size")
	season := flag.String("season", "", "mlh season year, defaults to the next calendar year")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	r := migration.Runner{Dir: "migrations"}
	if err := r.Run(migCtx, c.DB.SQLDB()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	runDevpost := *source == "all" || *source == "devpost"
	runMLH := *source == "all" || *source == "mlh"
	if !runDevpost && !runMLH {
		log.Fatalf("unknown source %q", *source)
	}

	if runDevpost {
		if err := scraper.NewDevpostScraper(c.DB).Scrape(ctx, *pages, *workers); err != nil {
			log.Printf("devpost scrape failed: %v", err)
		}
	}
	if runMLH {
		s := *season
		if s == "" {
			s = strconv.Itoa(time.Now().Year() + 1)
		}
		if err := scraper.NewMLHScraper(c.DB, s).Scrape(ctx); err != nil {
			log.Printf("mlh scrape failed: %v", err)
		}
	}

	// Cached hackathon views go stale after ingestion.
	if c.Cache != nil {
		invCtx, invCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer invCancel()
		if err := c.Cache.InvalidateHackathonViews(invCtx); err != nil {
			log.Printf("cache invalidation failed: %v", err)
		}
	}
}
