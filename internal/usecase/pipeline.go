package usecase

import (
	"context"
	"log/slog"
	"time"

	"designdaily/internal/config"
	"designdaily/internal/domain"
	"designdaily/internal/ports"
	"designdaily/internal/scoring"
	"designdaily/internal/scraper"
)

// PipelineDeps wires the scraping batch together.
type PipelineDeps struct {
	Registry   *scraper.Registry
	Engine     *scoring.Engine
	Repository ports.InspirationRepository
	Retry      config.RetryConfig
	Logger     *slog.Logger
}

// Pipeline runs every registered scraper, scores the results, and ingests
// them. One failing source never aborts the batch.
type Pipeline struct {
	registry   *scraper.Registry
	engine     *scoring.Engine
	repository ports.InspirationRepository
	retry      config.RetryConfig
	logger     *slog.Logger
}

// SourceResult reports the outcome of a single platform scrape.
type SourceResult struct {
	Platform string
	Scraped  int
	Stored   int
	Skipped  int
	Err      error
}

// NewPipeline constructs the scraping batch component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		registry:   deps.Registry,
		engine:     deps.Engine,
		repository: deps.Repository,
		retry:      deps.Retry,
		logger:     logger,
	}
}

// ScrapeAll executes every registered scraper in registration order and
// returns per-source results. Failures are recorded, logged, and skipped.
func (p *Pipeline) ScrapeAll(ctx context.Context) []SourceResult {
	scrapers := p.registry.All()
	results := make([]SourceResult, 0, len(scrapers))

	for _, sc := range scrapers {
		result := p.runSource(ctx, sc)
		results = append(results, result)

		if result.Err != nil {
			p.logger.Error("source failed",
				"platform", result.Platform, "error", result.Err)
			continue
		}
		p.logger.Info("source completed",
			"platform", result.Platform,
			"scraped", result.Scraped,
			"stored", result.Stored,
			"skipped", result.Skipped)
	}

	return results
}

func (p *Pipeline) runSource(ctx context.Context, sc scraper.Scraper) SourceResult {
	result := SourceResult{Platform: sc.Name()}

	items, err := p.scrapeWithRetry(ctx, sc)
	if err != nil {
		result.Err = err
		return result
	}
	result.Scraped = len(items)

	for _, item := range items {
		item.Score = p.engine.Score(item)

		created, err := p.repository.SaveInspiration(ctx, item)
		if err != nil {
			// Transient ingest failures must not abort the batch.
			p.logger.Warn("ingest failed, continuing",
				"platform", sc.Name(), "content_url", item.ContentURL, "error", err)
			continue
		}
		if created {
			result.Stored++
		} else {
			result.Skipped++
		}
	}

	return result
}

// scrapeWithRetry applies the bounded retry envelope around one source.
func (p *Pipeline) scrapeWithRetry(ctx context.Context, sc scraper.Scraper) ([]domain.Inspiration, error) {
	attempts := p.retry.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		items, err := sc.Scrape(ctx)
		if err == nil {
			return items, nil
		}
		lastErr = err

		p.logger.Warn("scrape attempt failed",
			"platform", sc.Name(), "attempt", attempt, "error", err)

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.retry.Delay()):
		}
	}

	return nil, lastErr
}
