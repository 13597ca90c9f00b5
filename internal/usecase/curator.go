package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"designdaily/internal/curation"
	"designdaily/internal/domain"
	"designdaily/internal/ports"
)

// CuratorDeps wires the daily curation component.
type CuratorDeps struct {
	Repository ports.InspirationRepository
	Store      ports.CurationStore
	Selector   *curation.Selector
	Notifier   ports.Notifier
	Logger     *slog.Logger
}

// Curator produces and persists the daily selection. The Notifier is
// optional; when present a digest is published after a successful save.
type Curator struct {
	repository ports.InspirationRepository
	store      ports.CurationStore
	selector   *curation.Selector
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCurator constructs the curation component.
func NewCurator(deps CuratorDeps) *Curator {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Curator{
		repository: deps.Repository,
		store:      deps.Store,
		selector:   deps.Selector,
		notifier:   deps.Notifier,
		logger:     logger,
	}
}

// CurateDay selects and stores the curation for the given calendar day.
// An empty candidate pool is not an error: the day is skipped with a
// warning and no record is written. Storage failures are returned so the
// caller can retry the run.
func (c *Curator) CurateDay(ctx context.Context, day time.Time) error {
	date := day.Format("2006-01-02")

	pool, err := c.repository.FetchCandidatePool(ctx)
	if err != nil {
		return fmt.Errorf("fetch candidate pool: %w", err)
	}
	if len(pool) == 0 {
		c.logger.Warn("no qualifying candidates, skipping curation", "date", date)
		return nil
	}

	selection, err := c.selector.Select(pool)
	if err != nil {
		if errors.Is(err, curation.ErrEmptyPool) {
			c.logger.Warn("empty selection pool, skipping curation", "date", date)
			return nil
		}
		return fmt.Errorf("select curation: %w", err)
	}

	if err := c.store.SaveCuration(ctx, day, selection); err != nil {
		return fmt.Errorf("save curation for %s: %w", date, err)
	}

	c.logger.Info("daily curation stored",
		"date", date,
		"award_pick", selection.AwardPickID,
		"top_count", len(selection.Top10IDs))

	if c.notifier != nil {
		if err := c.notifier.PublishDigest(ctx, digestText(date, selection)); err != nil {
			// Delivery is best effort; the curation itself is already saved.
			c.logger.Warn("digest delivery failed", "date", date, "error", err)
		}
	}

	return nil
}

func digestText(date string, sel domain.Selection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Design Daily %s*\n\n", date)
	fmt.Fprintf(&b, "Award pick: `%s`\n", sel.AwardPickID)
	if len(sel.Top10IDs) > 0 {
		b.WriteString("\nRunners-up:\n")
		for i, id := range sel.Top10IDs {
			fmt.Fprintf(&b, "%d. `%s`\n", i+1, id)
		}
	}
	return b.String()
}
