package ports

import (
	"context"
	"time"

	"designdaily/internal/domain"
)

// InspirationRepository persists scraped inspirations and serves the
// bounded candidate pool for curation.
type InspirationRepository interface {
	// SaveInspiration inserts the item unless its content URL is already
	// stored. Returns false when the item was a duplicate and skipped.
	SaveInspiration(ctx context.Context, item domain.Inspiration) (bool, error)

	// FetchCandidatePool returns the pre-filtered, score-descending
	// working set. An empty corpus yields an empty slice, not an error.
	FetchCandidatePool(ctx context.Context) ([]domain.CandidateSummary, error)

	// CorpusStats reports aggregate counts for post-run logging.
	CorpusStats(ctx context.Context) (domain.CorpusStats, error)
}

// CurationStore reads and writes the one-record-per-date curation results.
type CurationStore interface {
	// SaveCuration upserts the record for the given calendar date.
	SaveCuration(ctx context.Context, date time.Time, sel domain.Selection) error

	// CurationByDate returns the record for the date, if any.
	CurationByDate(ctx context.Context, date time.Time) (domain.DailyCuration, error)
}

// Notifier streams curation digests to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when the daily run executes.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
