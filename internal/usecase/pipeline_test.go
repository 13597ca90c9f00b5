package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"designdaily/internal/config"
	"designdaily/internal/domain"
	"designdaily/internal/scoring"
	"designdaily/internal/scraper"
)

type stubScraper struct {
	name     string
	items    []domain.Inspiration
	failures int
	calls    int
}

func (s *stubScraper) Name() string { return s.name }

func (s *stubScraper) Scrape(_ context.Context) ([]domain.Inspiration, error) {
	s.calls++
	if s.calls <= s.failures {
		return nil, fmt.Errorf("upstream unavailable (call %d)", s.calls)
	}
	return s.items, nil
}

type memRepository struct {
	saved   []domain.Inspiration
	byURL   map[string]bool
	saveErr error
	pool    []domain.CandidateSummary
	poolErr error
}

func newMemRepository() *memRepository {
	return &memRepository{byURL: map[string]bool{}}
}

func (r *memRepository) SaveInspiration(_ context.Context, item domain.Inspiration) (bool, error) {
	if r.saveErr != nil {
		return false, r.saveErr
	}
	if r.byURL[item.ContentURL] {
		return false, nil
	}
	r.byURL[item.ContentURL] = true
	r.saved = append(r.saved, item)
	return true, nil
}

func (r *memRepository) FetchCandidatePool(_ context.Context) ([]domain.CandidateSummary, error) {
	return r.pool, r.poolErr
}

func (r *memRepository) CorpusStats(_ context.Context) (domain.CorpusStats, error) {
	return domain.CorpusStats{TotalInspirations: len(r.saved), ActiveInspirations: len(r.saved)}, nil
}

func item(url string, likes int) domain.Inspiration {
	return domain.Inspiration{
		Title:       "Palette Study",
		ContentURL:  url,
		Platform:    domain.PlatformDribbble,
		Tags:        []string{"UI Design"},
		Metrics:     domain.EngagementMetrics{Likes: likes},
		PublishedAt: time.Now(),
	}
}

func newTestPipeline(repo *memRepository, scrapers ...scraper.Scraper) *Pipeline {
	registry := scraper.NewRegistry()
	for _, s := range scrapers {
		registry.Register(s)
	}
	return NewPipeline(PipelineDeps{
		Registry:   registry,
		Engine:     scoring.NewEngine(nil),
		Repository: repo,
		Retry:      config.RetryConfig{Attempts: 3, DelaySeconds: 0},
	})
}

func TestPipelineScoresAndStores(t *testing.T) {
	t.Parallel()

	repo := newMemRepository()
	src := &stubScraper{name: "Dribbble", items: []domain.Inspiration{
		item("https://dribbble.com/shots/1", 400),
		item("https://dribbble.com/shots/2", 10),
	}}

	results := newTestPipeline(repo, src).ScrapeAll(context.Background())

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Err != nil {
		t.Fatalf("unexpected source error: %v", results[0].Err)
	}
	if results[0].Stored != 2 {
		t.Fatalf("stored = %d, want 2", results[0].Stored)
	}
	for _, saved := range repo.saved {
		if saved.Score <= 0 {
			t.Errorf("item %s stored without a score", saved.ContentURL)
		}
	}
}

func TestPipelineSkipsDuplicates(t *testing.T) {
	t.Parallel()

	repo := newMemRepository()
	repo.byURL["https://dribbble.com/shots/1"] = true
	src := &stubScraper{name: "Dribbble", items: []domain.Inspiration{
		item("https://dribbble.com/shots/1", 400),
		item("https://dribbble.com/shots/2", 10),
	}}

	results := newTestPipeline(repo, src).ScrapeAll(context.Background())

	if results[0].Stored != 1 || results[0].Skipped != 1 {
		t.Fatalf("stored/skipped = %d/%d, want 1/1", results[0].Stored, results[0].Skipped)
	}
}

func TestPipelineRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	repo := newMemRepository()
	src := &stubScraper{
		name:     "Behance",
		failures: 2,
		items:    []domain.Inspiration{item("https://behance.net/gallery/1", 50)},
	}

	results := newTestPipeline(repo, src).ScrapeAll(context.Background())

	if results[0].Err != nil {
		t.Fatalf("expected recovery after retries, got %v", results[0].Err)
	}
	if src.calls != 3 {
		t.Fatalf("scraper called %d times, want 3", src.calls)
	}
	if results[0].Stored != 1 {
		t.Fatalf("stored = %d, want 1", results[0].Stored)
	}
}

func TestPipelineGivesUpAfterAttempts(t *testing.T) {
	t.Parallel()

	repo := newMemRepository()
	src := &stubScraper{name: "Awwwards", failures: 10}

	results := newTestPipeline(repo, src).ScrapeAll(context.Background())

	if results[0].Err == nil {
		t.Fatal("expected an error once retries are exhausted")
	}
	if src.calls != 3 {
		t.Fatalf("scraper called %d times, want 3", src.calls)
	}
}

func TestPipelineIsolatesSourceFailures(t *testing.T) {
	t.Parallel()

	repo := newMemRepository()
	broken := &stubScraper{name: "Core77", failures: 10}
	healthy := &stubScraper{name: "Medium", items: []domain.Inspiration{
		item("https://medium.com/p/1", 30),
	}}

	results := newTestPipeline(repo, broken, healthy).ScrapeAll(context.Background())

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Err == nil {
		t.Fatal("expected the broken source to report an error")
	}
	if results[1].Err != nil || results[1].Stored != 1 {
		t.Fatalf("healthy source result = %+v, want one stored item", results[1])
	}
}

func TestPipelineContinuesPastIngestErrors(t *testing.T) {
	t.Parallel()

	repo := newMemRepository()
	repo.saveErr = errors.New("connection reset")
	src := &stubScraper{name: "Dribbble", items: []domain.Inspiration{
		item("https://dribbble.com/shots/1", 400),
		item("https://dribbble.com/shots/2", 10),
	}}

	results := newTestPipeline(repo, src).ScrapeAll(context.Background())

	if results[0].Err != nil {
		t.Fatalf("ingest errors must not fail the source: %v", results[0].Err)
	}
	if results[0].Stored != 0 {
		t.Fatalf("stored = %d, want 0", results[0].Stored)
	}
}
