package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"designdaily/internal/domain"
	"designdaily/internal/ports"
)

// FunnelConfig carries the three-stage candidate funnel constants.
type FunnelConfig struct {
	QualityFloor float64
	PoolLimit    int
	PlatformCap  int
	AuthorCap    int
	WorkingSet   int
}

// PgRepository persists inspirations and curation records in Postgres.
type PgRepository struct {
	db      *sqlx.DB
	funnel  FunnelConfig
	builder sq.StatementBuilderType
}

var _ ports.InspirationRepository = (*PgRepository)(nil)
var _ ports.CurationStore = (*PgRepository)(nil)

// NewPgRepository wires a sql.DB with the funnel configuration.
func NewPgRepository(db *sql.DB, funnel FunnelConfig) *PgRepository {
	return &PgRepository{
		db:      sqlx.NewDb(db, "postgres"),
		funnel:  funnel,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// RunMigrations ensures tables and indexes exist. The partial index on
// (archived, score) is what keeps the funnel's stage-1 query off a full
// table scan as the corpus grows.
func RunMigrations(db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS inspirations (
  id UUID PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  content_url TEXT NOT NULL UNIQUE,
  thumbnail_url TEXT NOT NULL DEFAULT '',
  platform TEXT NOT NULL,
  author_name TEXT,
  author_url TEXT NOT NULL DEFAULT '',
  tags JSONB NOT NULL DEFAULT '[]',
  score DOUBLE PRECISION NOT NULL DEFAULT 0,
  published_at TIMESTAMPTZ NOT NULL,
  scraped_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  archived BOOLEAN NOT NULL DEFAULT FALSE,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_inspirations_archived_score
  ON inspirations (archived, score DESC);

CREATE TABLE IF NOT EXISTS daily_curations (
  id UUID PRIMARY KEY,
  date DATE NOT NULL UNIQUE,
  award_pick_id UUID NOT NULL,
  top10_ids JSONB NOT NULL DEFAULT '[]',
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// SaveInspiration inserts the item keyed by its content URL. A conflicting
// URL is a silent skip, reported through the bool, never an error.
func (r *PgRepository) SaveInspiration(ctx context.Context, item domain.Inspiration) (bool, error) {
	if item.ContentURL == "" {
		return false, fmt.Errorf("save inspiration: missing content url")
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	publishedAt := item.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = now
	}
	scrapedAt := item.ScrapedAt
	if scrapedAt.IsZero() {
		scrapedAt = now
	}

	query, args, err := r.builder.
		Insert("inspirations").
		Columns("id", "title", "description", "content_url", "thumbnail_url",
			"platform", "author_name", "author_url", "tags", "score",
			"published_at", "scraped_at").
		Values(item.ID, item.Title, item.Description, item.ContentURL, item.ThumbnailURL,
			item.Platform, nullString(item.AuthorName), item.AuthorURL, StringSlice(item.Tags), item.Score,
			publishedAt, scrapedAt).
		Suffix("ON CONFLICT (content_url) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build insert: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert inspiration: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	return affected > 0, nil
}

type candidateRow struct {
	ID          string         `db:"id"`
	Score       float64        `db:"score"`
	Platform    string         `db:"platform"`
	AuthorName  sql.NullString `db:"author_name"`
	PublishedAt sql.NullTime   `db:"published_at"`
}

// FetchCandidatePool implements the three-stage funnel. Only stage 1
// touches the corpus: an indexed, bounded, score-descending query. The
// platform and author caps then run in memory over that bounded set.
func (r *PgRepository) FetchCandidatePool(ctx context.Context) ([]domain.CandidateSummary, error) {
	query, args, err := r.builder.
		Select("id", "score", "platform", "author_name", "published_at").
		From("inspirations").
		Where(sq.Eq{"archived": false}).
		Where(sq.GtOrEq{"score": r.funnel.QualityFloor}).
		OrderBy("score DESC").
		Limit(uint64(r.funnel.PoolLimit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build pool query: %w", err)
	}

	var rows []candidateRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query candidate pool: %w", err)
	}

	pool := make([]domain.CandidateSummary, 0, len(rows))
	for _, row := range rows {
		c := domain.CandidateSummary{
			ID:       row.ID,
			Score:    row.Score,
			Platform: row.Platform,
		}
		if row.AuthorName.Valid {
			c.AuthorName = row.AuthorName.String
		}
		if row.PublishedAt.Valid {
			c.PublishedAt = row.PublishedAt.Time
		}
		pool = append(pool, c)
	}

	pool = capPerPlatform(pool, r.funnel.PlatformCap)
	pool = capPerAuthor(pool, r.funnel.AuthorCap)

	if r.funnel.WorkingSet > 0 && len(pool) > r.funnel.WorkingSet {
		pool = pool[:r.funnel.WorkingSet]
	}

	return pool, nil
}

// capPerPlatform keeps at most limit items per platform. The pool arrives
// score-descending, so the first occurrences are the highest-scoring ones.
func capPerPlatform(pool []domain.CandidateSummary, limit int) []domain.CandidateSummary {
	if limit <= 0 {
		return pool
	}

	counts := make(map[string]int, len(pool))
	kept := pool[:0:0]
	for _, c := range pool {
		if counts[c.Platform] >= limit {
			continue
		}
		counts[c.Platform]++
		kept = append(kept, c)
	}
	return kept
}

// capPerAuthor keeps at most limit items per author; authorless items are
// exempt from the cap.
func capPerAuthor(pool []domain.CandidateSummary, limit int) []domain.CandidateSummary {
	if limit <= 0 {
		return pool
	}

	counts := make(map[string]int, len(pool))
	kept := pool[:0:0]
	for _, c := range pool {
		if c.AuthorName == "" {
			kept = append(kept, c)
			continue
		}
		if counts[c.AuthorName] >= limit {
			continue
		}
		counts[c.AuthorName]++
		kept = append(kept, c)
	}
	return kept
}

// SaveCuration upserts the record for the given calendar date inside a
// transaction. The conflict clause keeps concurrent same-date runs safe;
// there is deliberately no exists-then-insert round trip.
func (r *PgRepository) SaveCuration(ctx context.Context, date time.Time, sel domain.Selection) error {
	query, args, err := r.builder.
		Insert("daily_curations").
		Columns("id", "date", "award_pick_id", "top10_ids").
		Values(uuid.New().String(), date.Format("2006-01-02"), sel.AwardPickID, StringSlice(sel.Top10IDs)).
		Suffix(`ON CONFLICT (date) DO UPDATE SET
  award_pick_id = EXCLUDED.award_pick_id,
  top10_ids = EXCLUDED.top10_ids,
  updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build curation upsert: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin curation tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("upsert curation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit curation: %w", err)
	}

	return nil
}

type curationRow struct {
	Date        time.Time   `db:"date"`
	AwardPickID string      `db:"award_pick_id"`
	Top10IDs    StringSlice `db:"top10_ids"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

// CurationByDate returns the stored record for the date; sql.ErrNoRows
// passes through when none exists.
func (r *PgRepository) CurationByDate(ctx context.Context, date time.Time) (domain.DailyCuration, error) {
	query, args, err := r.builder.
		Select("date", "award_pick_id", "top10_ids", "created_at", "updated_at").
		From("daily_curations").
		Where(sq.Eq{"date": date.Format("2006-01-02")}).
		ToSql()
	if err != nil {
		return domain.DailyCuration{}, fmt.Errorf("build curation query: %w", err)
	}

	var row curationRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return domain.DailyCuration{}, fmt.Errorf("query curation: %w", err)
	}

	return domain.DailyCuration{
		Date:        row.Date,
		AwardPickID: row.AwardPickID,
		Top10IDs:    row.Top10IDs,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

type statsRow struct {
	Total     int     `db:"total"`
	Active    int     `db:"active"`
	AvgScore  float64 `db:"avg_score"`
	Platforms int     `db:"platforms"`
	Authors   int     `db:"authors"`
}

// CorpusStats aggregates corpus counts for post-run reporting.
func (r *PgRepository) CorpusStats(ctx context.Context) (domain.CorpusStats, error) {
	const query = `
SELECT COUNT(*) AS total,
       COUNT(*) FILTER (WHERE archived = false) AS active,
       COALESCE(AVG(score), 0) AS avg_score,
       COUNT(DISTINCT platform) AS platforms,
       COUNT(DISTINCT author_name) AS authors
FROM inspirations`

	var row statsRow
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return domain.CorpusStats{}, fmt.Errorf("query corpus stats: %w", err)
	}

	return domain.CorpusStats{
		TotalInspirations:  row.Total,
		ActiveInspirations: row.Active,
		AverageScore:       row.AvgScore,
		Platforms:          row.Platforms,
		Authors:            row.Authors,
	}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
