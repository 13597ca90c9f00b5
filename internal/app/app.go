package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"designdaily/internal/config"
	"designdaily/internal/curation"
	"designdaily/internal/infrastructure/scheduler"
	"designdaily/internal/infrastructure/scrape"
	"designdaily/internal/infrastructure/storage"
	"designdaily/internal/infrastructure/telegram"
	"designdaily/internal/ports"
	"designdaily/internal/scoring"
	"designdaily/internal/scraper"
	"designdaily/internal/usecase"
)

// Application owns the wired object graph and the process lifecycle.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	db        *sql.DB
	pipeline  *usecase.Pipeline
	curator   *usecase.Curator
	workflow  *usecase.Workflow
	scheduler *usecase.Scheduler
}

// New connects to Postgres, runs migrations, and wires scrapers, scoring,
// curation, and scheduling from the configuration.
func New(cfg config.Config, logger *slog.Logger) (*Application, error) {
	db, err := openDatabase(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if err := storage.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := storage.NewPgRepository(db, storage.FunnelConfig{
		QualityFloor: cfg.Curation.QualityFloor,
		PoolLimit:    cfg.Curation.PoolLimit,
		PlatformCap:  cfg.Curation.PlatformCap,
		AuthorCap:    cfg.Curation.AuthorCap,
		WorkingSet:   cfg.Curation.WorkingSet,
	})

	httpClient := &http.Client{Timeout: 20 * time.Second}

	registry := scraper.NewRegistry()
	if cfg.Scrapers.Dribbble.AccessToken != "" {
		registry.Register(scrape.NewDribbble(cfg.Scrapers.Dribbble, httpClient))
	} else {
		logger.Info("dribbble scraper disabled: no access token configured")
	}
	if cfg.Scrapers.Behance.APIKey != "" {
		registry.Register(scrape.NewBehance(cfg.Scrapers.Behance, httpClient))
	} else {
		logger.Info("behance scraper disabled: no api key configured")
	}
	registry.Register(scrape.NewAwwwards(cfg.Scrapers.Awwwards, httpClient))
	registry.Register(scrape.NewCore77(cfg.Scrapers.Core77, httpClient))
	registry.Register(scrape.NewMedium(cfg.Scrapers.Medium, httpClient))

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Registry:   registry,
		Engine:     scoring.NewEngine(logger),
		Repository: repo,
		Retry:      cfg.Scrapers.Retry,
		Logger:     logger,
	})

	var notifier ports.Notifier
	if tg := cfg.Notifications.Telegram; tg.BotToken != "" && tg.ChatID != "" {
		notifier = telegram.NewNotifier(tg, httpClient)
	}

	curator := usecase.NewCurator(usecase.CuratorDeps{
		Repository: repo,
		Store:      repo,
		Selector:   curation.NewSelector(cfg.Curation.TopListSize),
		Notifier:   notifier,
		Logger:     logger,
	})

	workflow := usecase.NewWorkflow(pipeline, curator, repo, logger)
	daily := scheduler.NewDailyScheduler(cfg.Scheduler.Hour, cfg.Scheduler.Minute, cfg.Scheduler.Location())

	return &Application{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		pipeline:  pipeline,
		curator:   curator,
		workflow:  workflow,
		scheduler: usecase.NewScheduler(daily, workflow, logger),
	}, nil
}

// Run arms the daily schedule and blocks until the context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("scheduler armed",
		"hour", a.cfg.Scheduler.Hour,
		"minute", a.cfg.Scheduler.Minute,
		"timezone", a.cfg.Scheduler.Timezone)

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.scheduler.Stop(stopCtx)
}

// RunOnce performs a single scrape-and-curate cycle immediately.
func (a *Application) RunOnce(ctx context.Context) error {
	return a.workflow.RunDay(ctx, time.Now().In(a.cfg.Scheduler.Location()))
}

// ScrapeOnce runs every scraper once without curating. It fails only when
// no source produced anything.
func (a *Application) ScrapeOnce(ctx context.Context) error {
	results := a.pipeline.ScrapeAll(ctx)
	for _, r := range results {
		if r.Err == nil {
			return nil
		}
	}
	return errors.New("all sources failed")
}

// CurateOnce curates today's selection from the existing corpus.
func (a *Application) CurateOnce(ctx context.Context) error {
	return a.curator.CurateDay(ctx, time.Now().In(a.cfg.Scheduler.Location()))
}

// Close releases the database connection.
func (a *Application) Close() error {
	return a.db.Close()
}

func openDatabase(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	var pingErr error
	for attempt := 0; attempt < 5; attempt++ {
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		pingErr = db.PingContext(pingCtx)
		cancel()
		if pingErr == nil {
			return db, nil
		}
		time.Sleep(2 * time.Second)
	}

	db.Close()
	return nil, fmt.Errorf("ping database: %w", pingErr)
}
