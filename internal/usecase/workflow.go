package usecase

import (
	"context"
	"log/slog"
	"time"

	"designdaily/internal/ports"
)

// Workflow is the full daily run: scrape every source, then curate.
type Workflow struct {
	pipeline   *Pipeline
	curator    *Curator
	repository ports.InspirationRepository
	logger     *slog.Logger
}

// NewWorkflow composes the scraping pipeline and the curator into one
// daily run.
func NewWorkflow(pipeline *Pipeline, curator *Curator, repo ports.InspirationRepository, logger *slog.Logger) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{pipeline: pipeline, curator: curator, repository: repo, logger: logger}
}

// RunDay executes scraping and curation for one trigger time.
func (w *Workflow) RunDay(ctx context.Context, day time.Time) error {
	started := time.Now()
	w.pipeline.ScrapeAll(ctx)

	if err := w.curator.CurateDay(ctx, day); err != nil {
		return err
	}

	stats, err := w.repository.CorpusStats(ctx)
	if err != nil {
		w.logger.Warn("corpus stats unavailable", "error", err)
	} else {
		w.logger.Info("daily run finished",
			"duration", time.Since(started).Round(time.Millisecond),
			"total_items", stats.TotalInspirations,
			"active_items", stats.ActiveInspirations,
			"avg_score", stats.AverageScore)
	}
	return nil
}
